// Package slug provides URL-friendly slug generation from post titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRuns collapses any run of whitespace into one hyphen.
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// nonWord strips everything that isn't a word character or hyphen.
	nonWord = regexp.MustCompile(`[^\w-]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello World!!" → "hello-world"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = whitespaceRuns.ReplaceAllString(result, "-")
	result = nonWord.ReplaceAllString(result, "")
	return result
}

// Untitled is the slug of a post saved without a title.
const Untitled = "untitled"

// ForTitle derives the slug committed alongside a post. An empty title
// yields the fixed literal rather than an empty slug.
func ForTitle(title string) string {
	if title == "" {
		return Untitled
	}
	return Generate(title)
}
