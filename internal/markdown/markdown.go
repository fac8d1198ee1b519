// Package markdown converts posts to and from markdown documents, so a
// collection can be exported to plain files and written back in. A
// document carries its post metadata in a TOML front matter fenced by
// %%% markers.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/inkwell-blog/inkwell/internal/model"
)

var frontMatterDelimiter = []byte("%%%")

// FrontMatter is the post metadata carried at the top of an exported
// document.
type FrontMatter struct {
	Title      string   `toml:"title"`
	Tags       []string `toml:"tags"`
	CoverImage string   `toml:"cover_image"`
	Status     string   `toml:"status"`
}

// Document is the decoded form of a markdown file: metadata plus the
// block sequence reconstructed from the markdown structure.
type Document struct {
	Title      string
	Tags       []string
	CoverImage string
	Status     model.PostStatus
	Blocks     []model.ContentBlock
}

// Decode parses a markdown document into post metadata and content
// blocks. Front matter is optional.
func Decode(data []byte) (*Document, error) {
	doc := &Document{Status: model.StatusDraft}

	front, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, err
	}
	if front != nil {
		var meta FrontMatter
		if _, err := toml.Decode(string(front), &meta); err != nil {
			return nil, fmt.Errorf("failed to decode front matter: %w", err)
		}
		doc.Title = meta.Title
		doc.Tags = meta.Tags
		doc.CoverImage = meta.CoverImage
		if meta.Status == string(model.StatusPublished) {
			doc.Status = model.StatusPublished
		}
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	root := p.Parse(markdown.NormalizeNewlines(body))
	doc.Blocks = blocksFromAST(root)

	return doc, nil
}

// splitFrontMatter returns the front matter payload (nil when absent)
// and the remaining markdown body.
func splitFrontMatter(data []byte) ([]byte, []byte, error) {
	trimmed := bytes.TrimLeft(data, "\n \t\r")
	if !bytes.HasPrefix(trimmed, frontMatterDelimiter) {
		return nil, data, nil
	}

	rest := trimmed[len(frontMatterDelimiter):]
	end := bytes.Index(rest, frontMatterDelimiter)
	if end == -1 {
		return nil, nil, fmt.Errorf("unterminated front matter")
	}

	return rest[:end], rest[end+len(frontMatterDelimiter):], nil
}

func blocksFromAST(root ast.Node) []model.ContentBlock {
	var blocks []model.ContentBlock

	for _, node := range root.GetChildren() {
		switch n := node.(type) {
		case *ast.Heading:
			typ := model.BlockH3
			switch n.Level {
			case 1:
				typ = model.BlockH1
			case 2:
				typ = model.BlockH2
			}
			blocks = appendBlock(blocks, typ, nodeText(n))
		case *ast.BlockQuote:
			blocks = appendBlock(blocks, model.BlockQuote, nodeText(n))
		case *ast.CodeBlock:
			block := model.NewBlock(model.BlockCode)
			block.Content = strings.TrimRight(string(n.Literal), "\n")
			block.Language = string(n.Info)
			blocks = append(blocks, block)
		case *ast.HorizontalRule:
			blocks = append(blocks, model.NewBlock(model.BlockDivider))
		case *ast.List:
			typ := model.BlockUListItem
			if n.ListFlags&ast.ListTypeOrdered != 0 {
				typ = model.BlockOListItem
			}
			for _, item := range n.GetChildren() {
				blocks = appendBlock(blocks, typ, nodeText(item))
			}
		case *ast.Paragraph:
			if image, ok := soleImage(n); ok {
				block := model.NewBlock(model.BlockImage)
				block.Content = string(image.Destination)
				blocks = append(blocks, block)
				continue
			}
			blocks = appendBlock(blocks, model.BlockParagraph, nodeText(n))
		default:
			if text := nodeText(node); text != "" {
				blocks = appendBlock(blocks, model.BlockParagraph, text)
			}
		}
	}

	return blocks
}

func appendBlock(blocks []model.ContentBlock, typ model.BlockType, content string) []model.ContentBlock {
	content = strings.TrimSpace(content)
	if content == "" {
		return blocks
	}
	block := model.NewBlock(typ)
	block.Content = content
	return append(blocks, block)
}

// soleImage reports whether the paragraph wraps nothing but one image.
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	children := p.GetChildren()
	var image *ast.Image
	for _, child := range children {
		switch c := child.(type) {
		case *ast.Image:
			if image != nil {
				return nil, false
			}
			image = c
		case *ast.Text:
			if len(bytes.TrimSpace(c.Literal)) > 0 {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return image, image != nil
}

func nodeText(node ast.Node) string {
	var buf strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Literal)
		case *ast.Code:
			buf.Write(t.Literal)
		}
		return ast.GoToNext
	})
	return buf.String()
}

// Encode renders a post as a markdown document with TOML front matter.
func Encode(post model.Post) ([]byte, error) {
	var buf bytes.Buffer

	meta := FrontMatter{
		Title:      post.Title,
		Tags:       post.Tags,
		CoverImage: post.CoverImage,
		Status:     string(post.Status),
	}

	buf.Write(frontMatterDelimiter)
	buf.WriteByte('\n')
	if err := toml.NewEncoder(&buf).Encode(meta); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}
	buf.Write(frontMatterDelimiter)
	buf.WriteString("\n\n")

	for _, block := range post.Content {
		writeBlock(&buf, block)
	}

	return buf.Bytes(), nil
}

func writeBlock(buf *bytes.Buffer, block model.ContentBlock) {
	switch block.Type {
	case model.BlockH1:
		fmt.Fprintf(buf, "# %s\n\n", block.Content)
	case model.BlockH2:
		fmt.Fprintf(buf, "## %s\n\n", block.Content)
	case model.BlockH3:
		fmt.Fprintf(buf, "### %s\n\n", block.Content)
	case model.BlockParagraph:
		fmt.Fprintf(buf, "%s\n\n", block.Content)
	case model.BlockQuote:
		fmt.Fprintf(buf, "> %s\n\n", block.Content)
	case model.BlockCode:
		fmt.Fprintf(buf, "```%s\n%s\n```\n\n", block.Language, block.Content)
	case model.BlockImage:
		fmt.Fprintf(buf, "![](%s)\n\n", block.Content)
	case model.BlockVideo:
		fmt.Fprintf(buf, "[video](%s)\n\n", block.URL)
	case model.BlockDivider:
		buf.WriteString("---\n\n")
	case model.BlockUListItem:
		fmt.Fprintf(buf, "- %s\n\n", block.Content)
	case model.BlockOListItem:
		fmt.Fprintf(buf, "1. %s\n\n", block.Content)
	}
}
