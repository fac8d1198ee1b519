// Command export dumps the persisted post collection to markdown files
// with TOML front matter, one file per post, named by slug.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/markdown"
	"github.com/inkwell-blog/inkwell/internal/slug"
	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/internal/store"
	"github.com/inkwell-blog/inkwell/internal/util/compression"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	fileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func main() {
	outDir := flag.String("out", "./export", "directory to write markdown files to")
	configPath := flag.String("config", "config.yaml", "path to config file")
	gzipped := flag.Bool("gzip", false, "gzip each exported file")
	flag.Parse()

	godotenv.Load()

	if err := config.LoadConfig(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New("warn")
	config.SetLogger(log)
	storage.SetLogger(log)
	store.SetLogger(log)

	cfg := config.AppConfig.Storage
	postStore := store.NewPostStore(storage.NewFileStore(cfg.DataDir, cfg.Compress))
	postStore.Load()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	posts := postStore.GetAll()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Exporting %d posts to %s", len(posts), *outDir)))

	for _, post := range posts {
		data, err := markdown.Encode(post)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		name := post.Slug
		if name == "" {
			name = slug.ForTitle(post.Title)
		}
		path := filepath.Join(*outDir, name+".md")

		if *gzipped {
			data, err = compression.GzipCompressor{}.Compress(data)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			path += ".gz"
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("%s %s\n", fileStyle.Render(path), countStyle.Render(fmt.Sprintf("(%d blocks)", len(post.Content))))
	}
}
