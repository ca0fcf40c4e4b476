package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates
var templateFS embed.FS

// Pages lists every page template under templates/.
var Pages = []string{
	"index.html",
	"register.html",
	"login.html",
	"dashboard.html",
	"profile.html",
	"edit_profile.html",
	"find_teammates.html",
	"friend_requests.html",
	"friends.html",
	"not_found.html",
}

// Page is the data every template receives.
type Page struct {
	Title   string
	UserID  uint // 0 when nobody is logged in
	Flashes []string
	Data    any
}

// LoggedIn reports whether the page is rendered for a logged in user.
func (p Page) LoggedIn() bool { return p.UserID != 0 }

var funcs = template.FuncMap{
	"join": strings.Join,
}

// PageRenderer renders pages, each wrapped in the base layout.
type PageRenderer struct {
	templates map[string]*template.Template
}

// NewPageRenderer parses every page in Pages together with the layouts.
func NewPageRenderer() (*PageRenderer, error) {
	templates := make(map[string]*template.Template, len(Pages))
	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layouts/*.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return &PageRenderer{templates: templates}, nil
}

// RenderTemplate renders page name. It returns an error if name is unknown.
func (pr *PageRenderer) RenderTemplate(wr io.Writer, name string, page Page) error {
	t, ok := pr.templates[name]
	if !ok {
		return fmt.Errorf("template is missing: %s", name)
	}
	return t.ExecuteTemplate(wr, "base", page)
}
