package main

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/inkwell-blog/inkwell/internal/cache"
	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/db"
	"github.com/inkwell-blog/inkwell/internal/editor"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/render"
	"github.com/inkwell-blog/inkwell/internal/sse"
	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/internal/store"
	"github.com/inkwell-blog/inkwell/internal/theme"
	"github.com/inkwell-blog/inkwell/internal/util"
)

//go:embed static/* templates/*
var content embed.FS

var (
	log zerolog.Logger

	clients = sse.NewSSEClients()

	postStore  *store.PostStore
	themePrefs *theme.Prefs
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file loaded")
	}

	if err := config.LoadConfig("config.yaml"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log = logger.New(config.AppConfig.Logging.Level)
	config.SetLogger(log)
	db.SetLogger(log)
	storage.SetLogger(log)
	store.SetLogger(log)
	editor.SetLogger(log)
	theme.SetLogger(log)
	render.SetLogger(log)

	backend := newStorageBackend()

	postStore = store.NewPostStore(backend)
	postStore.Load()
	postStore.SetChangeNotifier(handlePostChanged)

	themePrefs = theme.LoadPrefs(backend)

	editorOpts := editor.Options{
		Quiesce:       time.Duration(config.AppConfig.Editor.AutoSaveDelayMs) * time.Millisecond,
		SavingVisible: time.Duration(config.AppConfig.Editor.SavingIndicatorMs) * time.Millisecond,
	}
	sessionTTL := time.Duration(config.AppConfig.Editor.SessionTTLMin) * time.Minute
	editorManager := editor.NewManager(postStore, editorOpts, sessionTTL)
	editorHandler := editor.NewHandler(editorManager, &content)

	// Calculate the hash of static content
	static, _ := fs.Sub(content, config.StaticLocalDir)
	staticHashes := make(map[string]string)
	fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if !d.IsDir() {
			staticHashes[config.StaticUrlPath+path] = util.ContentHash([]byte(path))
		}
		return nil
	})
	cache.SetStaticHashes(staticHashes)

	mux := http.NewServeMux()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCType, "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("User-agent: *\nDisallow:"))
	})

	mux.Handle(config.StaticUrlPath, http.StripPrefix(config.StaticUrlPath, http.FileServer(http.FS(static))))

	mux.HandleFunc("GET /{$}", serveIndex)
	mux.HandleFunc("GET /posts", servePosts)
	mux.HandleFunc("GET /posts/{slug}", servePost)
	mux.HandleFunc("GET /about", serveAbout)

	mux.HandleFunc("GET /dashboard", serveDashboard)
	mux.HandleFunc("POST /dashboard/delete/{id}", serveDashboardDelete)
	mux.HandleFunc("POST /dashboard/toggle/{id}", serveDashboardToggle)

	editorHandler.RegisterRoutes(mux)

	mux.HandleFunc("POST /theme/toggle", serveThemePostToggle)
	mux.HandleFunc("GET /theme/opposite-icon", serveThemeIcon)
	mux.HandleFunc("POST /syntax-theme/set", serveSyntaxThemePostSet)
	mux.HandleFunc("GET /syntax-theme/{theme}", serveSyntaxThemeGetTheme)
	mux.HandleFunc("/sse", eventsHandler)

	addr := config.AppConfig.Server.Host + ":" + config.AppConfig.Server.Port
	log.Info().Str("addr", addr).Msg("Listening")
	if err := http.ListenAndServe(addr, cacheIt(secureHeaders(mux.ServeHTTP))); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// newStorageBackend picks the durable key/value backend from config.
func newStorageBackend() storage.Store {
	cfg := config.AppConfig.Storage
	switch cfg.Backend {
	case "sqlite":
		database := db.NewSQLite(cfg.SQLitePath)
		if err := database.InitDb(); err != nil {
			log.Fatal().Err(err).Msg("Error initializing database")
		}
		return storage.NewDBStore(database)
	case "s3":
		return storage.NewS3Store(
			os.Getenv("S3_ACCESS_KEY_ID"),
			os.Getenv("S3_ACCESS_KEY_SECRET"),
			cfg.S3Endpoint,
			cfg.S3Bucket,
		)
	default:
		return storage.NewFileStore(cfg.DataDir, cfg.Compress)
	}
}

func handlePostChanged(postID model.PostID) {
	go clients.Broadcast(postID, "reload")
}

func renderPage(w http.ResponseWriter, page string, data any) {
	tmpl, err := template.ParseFS(content, config.TemplatesLocalDir+"/"+config.TemplateLayout, config.TemplatesLocalDir+"/"+page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	featured, recent, ok := store.Featured(postStore.GetAll(), config.AppConfig.Home.RecentPosts)

	data := struct {
		*model.PageData
		PostsPath   string
		HasFeatured bool
		Featured    model.Post
		Recent      []model.Post
	}{
		PageData:    model.NewPageData(r),
		PostsPath:   config.PostsUrlPath,
		HasFeatured: ok,
		Featured:    featured,
		Recent:      recent,
	}

	w.Header().Set(config.HETag, util.ContentHash([]byte(data.Theme+data.SyntaxTheme)))
	renderPage(w, config.TemplateIndex, data)
}

func servePosts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	posts := store.Search(store.Published(postStore.GetAll()), term)

	data := struct {
		*model.PageData
		PostsPath  string
		SearchTerm string
		Posts      []model.Post
	}{
		PageData:   model.NewPageData(r),
		PostsPath:  config.PostsUrlPath,
		SearchTerm: term,
		Posts:      posts,
	}

	renderPage(w, config.TemplatePosts, data)
}

func servePost(w http.ResponseWriter, r *http.Request) {
	post, ok := store.FindBySlug(postStore.GetAll(), r.PathValue("slug"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	syntaxTheme := theme.GetSyntaxThemeFromRequest(r)
	toc := render.TableOfContents(post.Content)

	data := struct {
		*model.PageData
		Post    model.Post
		Body    template.HTML
		TOC     []render.TOCEntry
		ShowTOC bool
	}{
		PageData: model.NewPageData(r),
		Post:     post,
		Body:     template.HTML(render.RenderPost(post, syntaxTheme)),
		TOC:      toc,
		ShowTOC:  len(toc) > 2,
	}

	renderPage(w, config.TemplatePost, data)
}

func serveAbout(w http.ResponseWriter, r *http.Request) {
	renderPage(w, config.TemplateAbout, model.NewPageData(r))
}

func serveDashboard(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")

	posts := postStore.GetAll()
	if tab == string(model.StatusDraft) || tab == string(model.StatusPublished) {
		filtered := posts[:0]
		for _, post := range posts {
			if string(post.Status) == tab {
				filtered = append(filtered, post)
			}
		}
		posts = filtered
	}

	data := struct {
		*model.PageData
		Tab   string
		Posts []model.Post
	}{
		PageData: model.NewPageData(r),
		Tab:      tab,
		Posts:    posts,
	}

	renderPage(w, config.TemplateDashboard, data)
}

func serveDashboardDelete(w http.ResponseWriter, r *http.Request) {
	if err := postStore.Delete(model.PostID(r.PathValue("id"))); err != nil {
		log.Warn().Err(err).Msg("Delete did not persist")
	}
	redirectDashboard(w, r)
}

func serveDashboardToggle(w http.ResponseWriter, r *http.Request) {
	if err := postStore.TogglePublish(model.PostID(r.PathValue("id"))); err != nil {
		log.Warn().Err(err).Msg("Status toggle did not persist")
	}
	redirectDashboard(w, r)
}

func redirectDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Add(config.HHxRedirect, "/dashboard")
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func serveThemePostToggle(w http.ResponseWriter, r *http.Request) {
	dark := themePrefs.Toggle()

	newTheme := config.LightTheme
	if dark {
		newTheme = config.DarkTheme
	}

	http.SetCookie(w, &http.Cookie{
		Name:  config.CookieTheme,
		Value: newTheme,
		Path:  "/",
	})

	syntaxTheme := theme.GetDefaultSyntaxTheme(newTheme)
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil {
		syntaxTheme = cookie.Value
	}

	w.Header().Set("Hx-Trigger", fmt.Sprintf(`{"themeChanged":{"value":"%s","syntaxTheme":"%s"}}`, newTheme, syntaxTheme))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(theme.GetThemeIcon(newTheme)))
}

func serveThemeIcon(w http.ResponseWriter, r *http.Request) {
	currTheme := r.URL.Query().Get("theme")
	if currTheme == "" {
		http.Error(w, "theme required", http.StatusBadRequest)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(theme.GetThemeIcon(currTheme)))
}

func serveSyntaxThemePostSet(w http.ResponseWriter, r *http.Request) {
	currTheme := r.FormValue("syntax-theme-select")
	if currTheme == "" {
		http.Error(w, "theme required", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieSyntaxTheme,
		Value:    currTheme,
		Path:     "/",
		HttpOnly: true,
	})

	themeStyle := []byte(theme.GenerateSyntaxCSS(currTheme))
	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(themeStyle))
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}

func serveSyntaxThemeGetTheme(w http.ResponseWriter, r *http.Request) {
	currTheme := r.PathValue("theme")

	themeStyle := []byte(theme.GenerateSyntaxCSS(currTheme))
	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(themeStyle))
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}

func eventsHandler(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("post")
	if postID == "" {
		http.Error(w, "Post parameter required", http.StatusBadRequest)
		return
	}

	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Del("X-Content-Type-Options")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	flusher.Flush()

	client := &sse.Client{
		Msg:    make(chan string),
		PostID: model.PostID(postID),
	}

	clients.Add(client)
	log.Debug().Str("post_id", postID).Msg("New SSE client connected")

	defer func() {
		clients.Delete(client)
		log.Debug().Str("post_id", postID).Msg("SSE client disconnected")
	}()

	notify := r.Context().Done()
	for {
		select {
		case msg := <-client.Msg:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-notify:
			return
		}
	}
}

func cacheIt(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")
		w.Header().Set("Vary", "Cookie")

		// Add etag header to response if it's a static file
		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
		}

		h(w, r)
	}
}

func secureHeaders(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-XSS-Protection", "1; mode=block")

		h(w, r)
	}
}
