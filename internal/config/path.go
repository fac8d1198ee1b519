package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticUrlPath  = "/" + StaticLocalDir + "/"

	PostsUrlPath  = "/posts/"
	EditorUrlPath = "/editor"

	TemplatesLocalDir = "templates"

	TemplateLayout    = "layout.html"
	TemplateIndex     = "index.html"
	TemplatePosts     = "posts.html"
	TemplatePost      = "post.html"
	TemplateEditor    = "editor.html"
	TemplateDashboard = "dashboard.html"
	TemplateAbout     = "about.html"
)
