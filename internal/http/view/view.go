// Package view renders the HTML pages. Templates and static assets are embedded in the binary.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"archiveweb/internal/model"
	"archiveweb/internal/viewer"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the binding every template receives.
type Page struct {
	Title     string
	User      *model.User
	RequestID string
	Data      any
}

// Authenticated reports whether the header should show the logged-in navigation.
func (p Page) Authenticated() bool {
	return p.User != nil
}

// Engine implements fiber.Views. Each page is parsed together with the shared layout.
type Engine struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

func New() *Engine {
	return &Engine{}
}

// Load parses every template. fiber calls it once when the app is created.
func (e *Engine) Load() error {
	base, err := template.New(path.Base(layoutFile)).Funcs(Funcs()).ParseFS(templateFS, layoutFile)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return err
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}

	e.mu.Lock()
	e.pages = pages
	e.mu.Unlock()
	return nil
}

// Render writes page name inside the layout. Layout arguments are ignored.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.RLock()
	t, ok := e.pages[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", binding)
}

// Static returns the embedded stylesheet directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"categoryClass": CategoryClass,
		"fileURL":       viewer.FileURL,
		"reasonLabel":   ReasonLabel,
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// CategoryClass picks the badge colour of a category.
func CategoryClass(category string) string {
	switch category {
	case "학술팀 보고서", "논문":
		return "badge-blue"
	case "미디어팀 보고서", "포스터":
		return "badge-green"
	case "미디어팀 미디어", "영상":
		return "badge-purple"
	case "DB":
		return "badge-yellow"
	default:
		return "badge-gray"
	}
}

// ReasonLabel returns the display label of a report reason value.
func ReasonLabel(value string) string {
	for _, r := range model.ReportReasons {
		if r.Value == value {
			return r.Label
		}
	}
	return value
}
