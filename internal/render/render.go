// Package render turns view data into HTML pages. Every page is parsed
// together with the shared layout once at startup and executed through
// echo's Renderer interface.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page wraps the data of one rendered page.
type Page struct {
	Title   string
	Path    string
	Flashes []flash.Message
	Data    echo.Map
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under templates/ with the layouts. Page names are
// paths relative to templates/ without the extension, e.g. "pages/venues".
func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") || strings.HasPrefix(path, "templates/layouts/") {
			return nil
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layouts/*.html", path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Names lists the loaded pages.
func (r *Renderer) Names() []string {
	out := make([]string, 0, len(r.pages))
	for name := range r.pages {
		out = append(out, name)
	}
	return out
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Static exposes the embedded stylesheet directory.
func Static() fs.FS {
	return echo.MustSubFS(staticFS, "static")
}
