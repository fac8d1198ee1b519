package cache

import "html/template"

// Static asset hashes, computed once at startup and served as ETags.
var staticCache = NewCache[string, string]()

func GetStaticHash(path string) (string, bool) {
	return staticCache.Get(path)
}

// SetStaticHashes swaps in the full hash table in one shot.
func SetStaticHashes(hashes map[string]string) {
	staticCache.SetTo(hashes)
}

// Generated chroma stylesheets, one entry per syntax theme. Generation
// walks the whole style so caching it pays off on every page render.
var syntaxCache = NewCache[string, template.CSS]()

func GetSyntaxCSS(theme string) (template.CSS, bool) {
	return syntaxCache.Get(theme)
}

func SetSyntaxCSS(theme string, css template.CSS) {
	syntaxCache.Set(theme, css)
}
