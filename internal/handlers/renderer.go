package handlers

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer is an html/template renderer for Echo.
// Each page gets its own clone of the layouts so pages can define their own blocks.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses layouts and partials under dir and clones them for every page
func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	templates := make(map[string]*template.Template)

	base, err := template.ParseGlob(filepath.Join(dir, "layouts", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parsing layouts: %w", err)
	}
	partials, err := filepath.Glob(filepath.Join(dir, "partials", "*.html"))
	if err != nil {
		return nil, err
	}
	if len(partials) > 0 {
		if _, err := base.ParseFiles(partials...); err != nil {
			return nil, fmt.Errorf("parsing partials: %w", err)
		}
	}

	pages, err := filepath.Glob(filepath.Join(dir, "pages", "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		pageTemplate, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := pageTemplate.ParseFiles(page); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		templates[filepath.Base(page)] = pageTemplate
	}

	return &TemplateRenderer{templates: templates}, nil
}

// Render renders a page template through the "base" layout
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
