// Package model defines core data structures and types for the blog application.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PostID string

type BlockID string

func NewPostID() PostID {
	return PostID(uuid.New().String())
}

func NewBlockID() BlockID {
	return BlockID(uuid.New().String())
}

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Post is one blog entry. ID is assigned at creation and immutable;
// Slug is derived from Title on every committed save and is the lookup
// key for public detail views.
type Post struct {
	ID         PostID         `json:"id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Content    []ContentBlock `json:"content"`
	CoverImage string         `json:"coverImage,omitempty"`
	Tags       []string       `json:"tags"`
	Status     PostStatus     `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`

	// Counters owned by external analytics. Never mutated here.
	Reads      int `json:"reads"`
	Engagement int `json:"engagement"`
}

// NewPost synthesizes a blank draft with a single placeholder paragraph.
func NewPost(now time.Time) Post {
	return Post{
		ID:    NewPostID(),
		Title: "",
		Slug:  "",
		Content: []ContentBlock{
			{ID: NewBlockID(), Type: BlockParagraph, Content: "Start writing your story..."},
		},
		CoverImage: "",
		Tags:       []string{},
		Status:     StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
		Reads:      0,
		Engagement: 0,
	}
}

// Clone returns a deep copy. The working copy of an editor session must
// not alias the store's block slice or tag slice.
func (p Post) Clone() Post {
	clone := p
	clone.Content = make([]ContentBlock, len(p.Content))
	copy(clone.Content, p.Content)
	clone.Tags = make([]string, len(p.Tags))
	copy(clone.Tags, p.Tags)
	return clone
}

// Excerpt returns the first paragraph trimmed to at most n runes,
// used by the home page hero and the post cards.
func (p Post) Excerpt(n int) string {
	for _, block := range p.Content {
		if block.Type != BlockParagraph {
			continue
		}
		text := strings.TrimSpace(block.Content)
		if text == "" {
			continue
		}
		runes := []rune(text)
		if len(runes) <= n {
			return text
		}
		return string(runes[:n]) + "..."
	}
	return ""
}

// TagList joins the tags for display in a single input field.
func (p Post) TagList() string {
	return strings.Join(p.Tags, ", ")
}

// HasTag reports whether any tag contains term, case-insensitively.
func (p Post) HasTag(term string) bool {
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
