package editor

import (
	"embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strings"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/markdown"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/store"
)

// Handler is the HTTP surface of the editor: the page itself plus the
// mutation endpoints the page calls while the author types.
type Handler struct {
	manager *Manager

	fs *embed.FS
}

func NewHandler(manager *Manager, fs *embed.FS) *Handler {
	return &Handler{
		manager: manager,
		fs:      fs,
	}
}

// RegisterRoutes wires the editor endpoints onto the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /editor", h.ServeEditor)
	mux.HandleFunc("GET /editor/{id}", h.ServeEditor)

	mux.HandleFunc("POST /api/editor/{sid}/title", h.handleTitle)
	mux.HandleFunc("POST /api/editor/{sid}/cover", h.handleCover)
	mux.HandleFunc("POST /api/editor/{sid}/tags", h.handleTags)
	mux.HandleFunc("POST /api/editor/{sid}/blocks", h.handleAddBlock)
	mux.HandleFunc("POST /api/editor/{sid}/blocks/{bid}", h.handleUpdateBlock)
	mux.HandleFunc("POST /api/editor/{sid}/save", h.handleSave)
	mux.HandleFunc("POST /api/editor/{sid}/publish", h.handlePublish)
	mux.HandleFunc("POST /api/editor/{sid}/import", h.handleImport)
	mux.HandleFunc("GET /api/editor/{sid}/status", h.handleStatus)
}

// ServeEditor opens a session for the requested post (or a blank draft)
// and renders the editor page. An unknown post id falls through to the
// new-post flow.
func (h *Handler) ServeEditor(w http.ResponseWriter, r *http.Request) {
	var previous SessionID
	if cookie, err := r.Cookie(config.CookieEditorSession); err == nil {
		previous = SessionID(cookie.Value)
	}

	postID := model.PostID(r.PathValue("id"))
	session, err := h.manager.Open(postID, previous)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			w.Header().Add(config.HHxRedirect, config.EditorUrlPath)
			http.Redirect(w, r, config.EditorUrlPath, http.StatusFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:  config.CookieEditorSession,
		Value: string(session.ID),
		Path:  "/",
	})

	tmpl, err := template.ParseFS(h.fs, config.TemplatesLocalDir+"/"+config.TemplateLayout, config.TemplatesLocalDir+"/"+config.TemplateEditor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		*model.PageData
		Post       model.Post
		SessionID  SessionID
		BlockTypes []model.BlockType
	}{
		PageData:   model.NewPageData(r),
		Post:       session.Post(),
		SessionID:  session.ID,
		BlockTypes: model.AllBlockTypes,
	}

	isEditor := true
	data.IsEditorPage = &isEditor

	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// session resolves the {sid} path segment; a miss means the session
// expired or the server restarted, and the page must be reloaded.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	session, ok := h.manager.Get(SessionID(r.PathValue("sid")))
	if !ok {
		http.Error(w, "Editor session expired, reload the page", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func (h *Handler) handleTitle(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.SetTitle(r.FormValue("title"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCover(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.SetCoverImage(r.FormValue("coverImage"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTags(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var tags []string
	for _, tag := range strings.Split(r.FormValue("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	session.SetTags(tags)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	typ := model.BlockType(r.FormValue("type"))
	if !typ.Valid() {
		http.Error(w, "Unknown block type", http.StatusBadRequest)
		return
	}

	block := session.AddBlock(typ)

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, EditableBlockHTML(session.ID, block))
}

func (h *Handler) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.UpdateBlockContent(model.BlockID(r.PathValue("bid")), r.FormValue("content"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	err := session.SaveDraft()
	h.writeStatus(w, session, err)
}

func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	postSlug, err := session.Publish()
	if err != nil {
		if errors.Is(err, ErrTitleRequired) {
			http.Error(w, "Please add a title before publishing.", http.StatusUnprocessableEntity)
			return
		}
		// The collection was updated in memory; the persistence problem
		// is a warning, not a reason to block navigation.
		editorLogger.Warn().Err(err).Msg("Publish persisted partially")
	}

	target := config.PostsUrlPath + postSlug
	w.Header().Add(config.HHxRedirect, target)
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	doc, err := markdown.Decode([]byte(r.FormValue("content")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if doc.Title != "" {
		session.SetTitle(doc.Title)
	}
	if doc.CoverImage != "" {
		session.SetCoverImage(doc.CoverImage)
	}
	if len(doc.Tags) > 0 {
		session.SetTags(doc.Tags)
	}
	session.SetBlocks(doc.Blocks)

	w.Header().Add(config.HHxRedirect, config.EditorUrlPath+"/"+string(session.Post().ID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeStatus(w, session, nil)
}

func (h *Handler) writeStatus(w http.ResponseWriter, session *Session, err error) {
	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)

	switch {
	case err != nil:
		fmt.Fprint(w, `<span class="save-status warning">Saved locally, storage unavailable</span>`)
	case session.Saving():
		fmt.Fprint(w, `<span class="save-status">Saving...</span>`)
	default:
		fmt.Fprint(w, `<span class="save-status">Saved</span>`)
	}
}

// EditableBlockHTML renders the editor widget for one block, returned
// as a fragment when blocks are appended without a full page reload.
func EditableBlockHTML(sid SessionID, block model.ContentBlock) string {
	action := fmt.Sprintf("/api/editor/%s/blocks/%s", sid, block.ID)
	escaped := html.EscapeString(block.Content)

	return fmt.Sprintf(
		`<div class="editor-block editor-block-%s">`+
			`<textarea name="content" hx-post="%s" hx-trigger="input changed delay:300ms" placeholder="%s">%s</textarea>`+
			`</div>`,
		block.Type, action, html.EscapeString(string(block.Type)), escaped)
}
