// Package render turns a post's block sequence into HTML, with chroma
// syntax highlighting for code blocks and anchors for the table of
// contents.
package render

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rs/zerolog"

	"github.com/inkwell-blog/inkwell/internal/cache"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/slug"
	"github.com/inkwell-blog/inkwell/internal/theme"
	"github.com/inkwell-blog/inkwell/internal/util"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

// TOCEntry is one table-of-contents row, derived from a heading block.
type TOCEntry struct {
	ID     model.BlockID
	Type   model.BlockType
	Title  string
	Anchor string
}

// TableOfContents lists the heading blocks with their anchors. Anchors
// reuse the slug derivation so they match the rendered heading ids.
func TableOfContents(blocks []model.ContentBlock) []TOCEntry {
	var entries []TOCEntry
	for _, block := range blocks {
		if !block.Type.IsHeading() {
			continue
		}
		entries = append(entries, TOCEntry{
			ID:     block.ID,
			Type:   block.Type,
			Title:  block.Content,
			Anchor: slug.Generate(block.Content),
		})
	}
	return entries
}

// RenderPost renders a post body, memoized by content hash and syntax
// theme.
func RenderPost(post model.Post, syntaxTheme string) []byte {
	contentHash := blocksHash(post.Content)
	if contentHash != "" {
		if rendered, ok := cache.GetRenderedPost(contentHash, syntaxTheme); ok {
			return rendered
		}
	}

	rendered := RenderBlocks(post.Content, syntaxTheme)
	if contentHash != "" {
		cache.SetRenderedPost(contentHash, syntaxTheme, rendered)
	}
	return rendered
}

func blocksHash(blocks []model.ContentBlock) string {
	data, err := json.Marshal(blocks)
	if err != nil {
		renderLogger.Warn().Err(err).Msg("Error hashing blocks, skipping render cache")
		return ""
	}
	return util.ContentHash(data)
}

// RenderBlocks renders the block sequence in order. Consecutive list
// item blocks of the same kind are folded into one list element.
func RenderBlocks(blocks []model.ContentBlock, syntaxTheme string) []byte {
	var buf strings.Builder

	var openList model.BlockType
	closeList := func() {
		switch openList {
		case model.BlockUListItem:
			buf.WriteString("</ul>\n")
		case model.BlockOListItem:
			buf.WriteString("</ol>\n")
		}
		openList = ""
	}

	for _, block := range blocks {
		if block.Type != openList {
			closeList()
		}

		switch block.Type {
		case model.BlockH1, model.BlockH2, model.BlockH3:
			writeHeading(&buf, block)
		case model.BlockParagraph:
			fmt.Fprintf(&buf, "<p>%s</p>\n", html.EscapeString(block.Content))
		case model.BlockQuote:
			fmt.Fprintf(&buf, "<blockquote>%s</blockquote>\n", html.EscapeString(block.Content))
		case model.BlockCode:
			buf.WriteString(HighlightCode(block.Content, block.Language, syntaxTheme))
			buf.WriteByte('\n')
		case model.BlockImage:
			fmt.Fprintf(&buf, `<img src="%s" alt="" loading="lazy">`+"\n", html.EscapeString(block.Content))
		case model.BlockVideo:
			fmt.Fprintf(&buf, `<iframe class="video-embed" src="%s" title="Embedded video" allowfullscreen></iframe>`+"\n", html.EscapeString(block.URL))
		case model.BlockDivider:
			buf.WriteString("<hr>\n")
		case model.BlockUListItem:
			if openList != model.BlockUListItem {
				buf.WriteString("<ul>\n")
				openList = model.BlockUListItem
			}
			fmt.Fprintf(&buf, "<li>%s</li>\n", html.EscapeString(block.Content))
		case model.BlockOListItem:
			if openList != model.BlockOListItem {
				buf.WriteString("<ol>\n")
				openList = model.BlockOListItem
			}
			fmt.Fprintf(&buf, "<li>%s</li>\n", html.EscapeString(block.Content))
		}
	}
	closeList()

	return []byte(buf.String())
}

func writeHeading(buf *strings.Builder, block model.ContentBlock) {
	level := map[model.BlockType]int{
		model.BlockH1: 1,
		model.BlockH2: 2,
		model.BlockH3: 3,
	}[block.Type]

	anchor := slug.Generate(block.Content)
	fmt.Fprintf(buf, `<h%d id="%s">%s</h%d>`+"\n", level, anchor, html.EscapeString(block.Content), level)
}

// HighlightCode renders source through chroma. Unknown languages fall
// back to the plaintext lexer; a tokenizer failure falls back to an
// escaped <pre> block.
func HighlightCode(code, language, highlightTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>"
	}

	var buf strings.Builder
	style := styles.Get(highlightTheme)
	formatter := theme.GetFormatter()
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>"
	}

	return buf.String()
}
