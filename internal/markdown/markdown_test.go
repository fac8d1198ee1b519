package markdown

import (
	"strings"
	"testing"

	"github.com/inkwell-blog/inkwell/internal/model"
)

const sampleDoc = `%%%
title = "Exploring the North"
tags = ["travel", "nature"]
cover_image = "https://example.com/cover.jpg"
status = "published"
%%%

# A Journey Begins

The crisp morning air filled my lungs.

> In every walk with nature, one receives far more than he seeks.

` + "```go\nfmt.Println(\"hi\")\n```" + `

![](https://example.com/forest.jpg)

- Use of negative space
- Limited color palettes

1. First
2. Second

---

Closing thoughts.
`

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	t.Run("Front matter", func(t *testing.T) {
		if doc.Title != "Exploring the North" {
			t.Errorf("Expected %q, got %q", "Exploring the North", doc.Title)
		}
		if len(doc.Tags) != 2 || doc.Tags[0] != "travel" {
			t.Errorf("Expected tags [travel nature], got %v", doc.Tags)
		}
		if doc.CoverImage != "https://example.com/cover.jpg" {
			t.Errorf("Expected cover image, got %q", doc.CoverImage)
		}
		if doc.Status != model.StatusPublished {
			t.Errorf("Expected status %q, got %q", model.StatusPublished, doc.Status)
		}
	})

	t.Run("Block sequence", func(t *testing.T) {
		wantTypes := []model.BlockType{
			model.BlockH1,
			model.BlockParagraph,
			model.BlockQuote,
			model.BlockCode,
			model.BlockImage,
			model.BlockUListItem,
			model.BlockUListItem,
			model.BlockOListItem,
			model.BlockOListItem,
			model.BlockDivider,
			model.BlockParagraph,
		}

		if len(doc.Blocks) != len(wantTypes) {
			for _, b := range doc.Blocks {
				t.Logf("block %s: %q", b.Type, b.Content)
			}
			t.Fatalf("Expected %d blocks, got %d", len(wantTypes), len(doc.Blocks))
		}
		for i, want := range wantTypes {
			if doc.Blocks[i].Type != want {
				t.Errorf("Block %d: expected type %q, got %q", i, want, doc.Blocks[i].Type)
			}
		}
	})

	t.Run("Block content", func(t *testing.T) {
		if doc.Blocks[0].Content != "A Journey Begins" {
			t.Errorf("Expected heading text, got %q", doc.Blocks[0].Content)
		}
		if doc.Blocks[3].Language != "go" {
			t.Errorf("Expected code language %q, got %q", "go", doc.Blocks[3].Language)
		}
		if doc.Blocks[3].Content != `fmt.Println("hi")` {
			t.Errorf("Expected code content, got %q", doc.Blocks[3].Content)
		}
		if doc.Blocks[4].Content != "https://example.com/forest.jpg" {
			t.Errorf("Expected image destination, got %q", doc.Blocks[4].Content)
		}
	})
}

func TestDecodeWithoutFrontMatter(t *testing.T) {
	doc, err := Decode([]byte("# Title Only\n\nBody text.\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if doc.Title != "" {
		t.Errorf("Expected no title, got %q", doc.Title)
	}
	if doc.Status != model.StatusDraft {
		t.Errorf("Expected default status %q, got %q", model.StatusDraft, doc.Status)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(doc.Blocks))
	}
}

func TestDecodeUnterminatedFrontMatter(t *testing.T) {
	if _, err := Decode([]byte("%%%\ntitle = \"broken\"\n")); err == nil {
		t.Error("Expected an error for unterminated front matter")
	}
}

func TestEncode(t *testing.T) {
	post := model.Post{
		Title:      "Exploring the North",
		Tags:       []string{"travel"},
		CoverImage: "https://example.com/cover.jpg",
		Status:     model.StatusPublished,
		Content: []model.ContentBlock{
			{ID: "1", Type: model.BlockH1, Content: "A Journey Begins"},
			{ID: "2", Type: model.BlockParagraph, Content: "Morning air."},
			{ID: "3", Type: model.BlockCode, Content: "print(1)", Language: "python"},
			{ID: "4", Type: model.BlockQuote, Content: "Less is more."},
			{ID: "5", Type: model.BlockImage, Content: "https://example.com/a.jpg"},
			{ID: "6", Type: model.BlockVideo, URL: "https://example.com/embed/1"},
			{ID: "7", Type: model.BlockDivider, Content: "---"},
		},
	}

	data, err := Encode(post)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`title = "Exploring the North"`,
		`status = "published"`,
		"# A Journey Begins",
		"```python\nprint(1)\n```",
		"> Less is more.",
		"![](https://example.com/a.jpg)",
		"[video](https://example.com/embed/1)",
		"\n---\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	post := model.Post{
		Title:  "Round Trip",
		Tags:   []string{"test"},
		Status: model.StatusDraft,
		Content: []model.ContentBlock{
			{ID: "1", Type: model.BlockH2, Content: "Section"},
			{ID: "2", Type: model.BlockParagraph, Content: "Plain paragraph text."},
			{ID: "3", Type: model.BlockUListItem, Content: "an item"},
		},
	}

	data, err := Encode(post)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if doc.Title != post.Title {
		t.Errorf("Expected title %q, got %q", post.Title, doc.Title)
	}
	if len(doc.Blocks) != len(post.Content) {
		t.Fatalf("Expected %d blocks, got %d", len(post.Content), len(doc.Blocks))
	}
	for i := range doc.Blocks {
		if doc.Blocks[i].Type != post.Content[i].Type {
			t.Errorf("Block %d: expected type %q, got %q", i, post.Content[i].Type, doc.Blocks[i].Type)
		}
		if doc.Blocks[i].Content != post.Content[i].Content {
			t.Errorf("Block %d: expected content %q, got %q", i, post.Content[i].Content, doc.Blocks[i].Content)
		}
	}
}
