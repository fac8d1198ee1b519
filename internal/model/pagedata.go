package model

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/theme"
)

type PageData struct {
	SiteName string
	Tagline  string

	PageURL string

	Theme string

	SyntaxCSS    template.CSS
	SyntaxTheme  string
	SyntaxThemes []string

	IsEditorPage *bool
}

func NewPageData(r *http.Request) *PageData {
	syntaxtheme := theme.GetSyntaxThemeFromRequest(r)
	return &PageData{
		SiteName:     config.AppConfig.Site.Name,
		Tagline:      config.AppConfig.Site.Tagline,
		PageURL:      r.URL.Path,
		Theme:        theme.GetThemeFromRequest(r),
		SyntaxTheme:  syntaxtheme,
		SyntaxThemes: theme.GetSyntaxThemes(),
		SyntaxCSS:    theme.GenerateSyntaxCSS(syntaxtheme),
	}
}

func (pd *PageData) IsPost() bool {
	return strings.HasPrefix(pd.PageURL, config.PostsUrlPath)
}

func (pd *PageData) IsEditor() bool {
	if pd.IsEditorPage == nil {
		return strings.HasPrefix(pd.PageURL, config.EditorUrlPath)
	}
	return *pd.IsEditorPage
}
