package controllers

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/rahul4469/compiler-craft/internal/views"
)

// SampleCode is preloaded into the editor.
const SampleCode = "int main() {\n  int a = 5;\n  int b = 10;\n  int c = a + b;\n  return c;\n}"

// StaticController handles the home page, static assets and health checks.
type StaticController struct {
	templates     StaticTemplates
	assets        fs.FS
	modelName     string
	isDevelopment bool
}

// StaticTemplates holds templates for static pages.
type StaticTemplates struct {
	Home *views.Template
}

// NewStaticController creates a new StaticController. assets is served
// under /static/.
func NewStaticController(templates StaticTemplates, assets fs.FS, modelName string, isDevelopment bool) *StaticController {
	return &StaticController{
		templates:     templates,
		assets:        assets,
		modelName:     modelName,
		isDevelopment: isDevelopment,
	}
}

// HomeData holds data for the home page template.
type HomeData struct {
	SampleCode string
	ModelName  string
}

// GetHome renders the single-page UI.
func (c *StaticController) GetHome(w http.ResponseWriter, r *http.Request) {
	data := &views.TemplateData{
		Title:         "Compiler Craft - Interactive Compiler Tutor",
		Description:   "Walk any snippet through lexical analysis, parsing, semantic checks, IR, optimization and code generation.",
		CSRFToken:     csrf.Token(r),
		IsDevelopment: c.isDevelopment,
		Data: HomeData{
			SampleCode: SampleCode,
			ModelName:  c.modelName,
		},
	}

	c.templates.Home.ExecuteHTTP(w, r, data)
}

// Static serves the embedded assets.
func (c *StaticController) Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(c.assets)))
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthCheck returns a simple health status for monitoring. A nil db means
// the in-memory store is in use.
func HealthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Health(r.Context()); err != nil {
				writeError(w, r, http.StatusServiceUnavailable, "database unavailable", err)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}
