package config

const (
	HCType        = "Content-Type"
	HETag         = "ETag"
	HCacheControl = "Cache-Control"
	HHxRedirect   = "Hx-Redirect"

	CTypeCSS  = "text/css"
	CTypeHTML = "text/html"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)

const (
	CookieTheme         = "theme"
	CookieSyntaxTheme   = "syntax-theme"
	CookieEditorSession = "editor-session"
)
