package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rahul4469/compiler-craft/context"
	"github.com/rahul4469/compiler-craft/internal/render"
)

// Template wraps a parsed template with helper methods for rendering.
type Template struct {
	tmpl *template.Template
}

// TemplateData is the standard data structure passed to full pages.
type TemplateData struct {
	// CSRF token for the page meta tag; scripts send it as X-CSRF-Token
	CSRFToken string

	// Page-specific data
	Data any

	// Additional metadata
	Title       string
	Description string

	// Environment
	IsDevelopment bool
}

// DefaultFuncMap returns the template functions available in all templates.
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Relative analysis time
		"timeAgo": timeAgo,

		// Arithmetic for 1-based phase numbering
		"add": func(a, b int) int { return a + b },

		// Markdown rendering, sanitized
		"markdown": render.Markdown,

		// Default value
		"default": defaultValue,
	}
}

// ParseFS parses templates from fsys. It always includes the base layout
// and every partial, then the requested page files:
//
//	tmpl, err := views.ParseFS(templates.FS, "pages/home.gohtml")
//	// parses layouts/base.gohtml, partials/*.gohtml, pages/home.gohtml
func ParseFS(fsys fs.FS, patterns ...string) (*Template, error) {
	tmpl := template.New("").Funcs(DefaultFuncMap())

	// Parse base layout first
	baseContent, err := fs.ReadFile(fsys, "layouts/base.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to read base template: %w", err)
	}

	tmpl, err = tmpl.Parse(string(baseContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	// Partials define their own names with {{define "name"}}
	partialMatches, err := fs.Glob(fsys, "partials/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to glob partials: %w", err)
	}

	for _, match := range partialMatches {
		content, err := fs.ReadFile(fsys, match)
		if err != nil {
			return nil, fmt.Errorf("failed to read partial %s: %w", match, err)
		}

		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse partial %s: %w", match, err)
		}
	}

	// Pages define {{define "content"}} which the base layout renders
	for _, pattern := range patterns {
		content, err := fs.ReadFile(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", pattern, err)
		}

		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", pattern, err)
		}
	}

	return &Template{tmpl: tmpl}, nil
}

// MustParseFS is like ParseFS but panics on error.
// Use this during initialization when templates must be valid.
func MustParseFS(fsys fs.FS, patterns ...string) *Template {
	tmpl, err := ParseFS(fsys, patterns...)
	if err != nil {
		panic(fmt.Sprintf("failed to parse templates: %v", err))
	}
	return tmpl
}

// Execute renders the full page to the given writer.
func (t *Template) Execute(w io.Writer, data *TemplateData) error {
	return t.tmpl.ExecuteTemplate(w, "base", data)
}

// ExecuteHTTP renders the full page as an HTTP response.
func (t *Template) ExecuteHTTP(w http.ResponseWriter, r *http.Request, data *TemplateData) {
	t.ExecuteHTTPWithStatus(w, r, http.StatusOK, data)
}

// ExecuteHTTPWithStatus renders the full page with a custom HTTP status code.
func (t *Template) ExecuteHTTPWithStatus(w http.ResponseWriter, r *http.Request, status int, data *TemplateData) {
	// Render to buffer first to catch errors
	buf := &bytes.Buffer{}
	if err := t.Execute(buf, data); err != nil {
		context.ContextGetLogger(r.Context()).Error("Template execution error", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// ExecuteFragment renders a single named template without the layout.
// Used for HTML fragments swapped into an already loaded page.
func (t *Template) ExecuteFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	buf := &bytes.Buffer{}
	if err := t.tmpl.ExecuteTemplate(buf, name, data); err != nil {
		context.ContextGetLogger(r.Context()).Error("Template execution error", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// Template function implementations

func timeAgo(t time.Time) string {
	duration := time.Since(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		return t.Format("Jan 2, 2006 3:04 PM")
	}
}

func defaultValue(value, defaultVal any) any {
	if value == nil || value == "" || value == 0 {
		return defaultVal
	}
	return value
}
