package store

import (
	"slices"
	"strings"

	"github.com/inkwell-blog/inkwell/internal/model"
)

// Published filters to published posts sorted by createdAt descending,
// the ordering every public view uses.
func Published(posts []model.Post) []model.Post {
	var published []model.Post
	for _, post := range posts {
		if post.Status == model.StatusPublished {
			published = append(published, post)
		}
	}

	slices.SortStableFunc(published, func(a, b model.Post) int {
		return -a.CreatedAt.Compare(b.CreatedAt)
	})

	return published
}

// Search narrows posts to those whose title, tags, or block text
// contain term, case-insensitively. An empty term matches everything.
func Search(posts []model.Post, term string) []model.Post {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return posts
	}

	var matched []model.Post
	for _, post := range posts {
		if matchesTerm(post, term) {
			matched = append(matched, post)
		}
	}
	return matched
}

func matchesTerm(post model.Post, term string) bool {
	if strings.Contains(strings.ToLower(post.Title), term) {
		return true
	}
	if post.HasTag(term) {
		return true
	}
	for _, block := range post.Content {
		if strings.Contains(strings.ToLower(block.Content), term) {
			return true
		}
	}
	return false
}

// FindBySlug looks a post up by its derived slug. Slugs are not
// guaranteed unique; on collision the most recently updated post wins.
func FindBySlug(posts []model.Post, slug string) (model.Post, bool) {
	var (
		found model.Post
		ok    bool
	)
	for _, post := range posts {
		if post.Slug != slug {
			continue
		}
		if !ok || post.UpdatedAt.After(found.UpdatedAt) {
			found = post
			ok = true
		}
	}
	return found, ok
}

// Featured splits published posts into the hero entry and up to n
// recent posts for the home page.
func Featured(posts []model.Post, n int) (model.Post, []model.Post, bool) {
	published := Published(posts)
	if len(published) == 0 {
		return model.Post{}, nil, false
	}

	recent := published[1:]
	if len(recent) > n {
		recent = recent[:n]
	}
	return published[0], recent, true
}
