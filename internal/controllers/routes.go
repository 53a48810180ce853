package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rahul4469/compiler-craft/internal/middleware"
)

// RouterConfig collects the controllers and middleware behind the HTTP API.
type RouterConfig struct {
	Logger   *zap.Logger
	Analyze  *AnalyzeController
	Reports  *ReportController
	Sources  *SourceController
	Static   *StaticController
	Database Pinger
	// CSRF protects state-changing routes; nil disables it.
	CSRF func(http.Handler) http.Handler
}

// NewRouter wires every route of the server.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", HealthCheck(cfg.Database))
	r.Handle("/static/*", cfg.Static.Static())

	r.Group(func(r chi.Router) {
		if cfg.CSRF != nil {
			r.Use(cfg.CSRF)
		}

		r.Get("/", cfg.Static.GetHome)
		r.Get("/analyses/{id}/phases/{index}", cfg.Analyze.GetPhaseFragment)

		r.Route("/api", func(r chi.Router) {
			r.Post("/analyze", cfg.Analyze.PostAnalyze)
			r.Post("/explain", cfg.Analyze.PostExplain)
			r.Post("/chat", cfg.Analyze.PostChat)
			r.Post("/upload", cfg.Sources.PostUpload)
			r.Post("/source/github", cfg.Sources.PostGitHubSource)

			r.Get("/analyses/{id}", cfg.Analyze.GetAnalysis)
			r.Get("/analyses/{id}/report", cfg.Reports.GetReport)
			r.Get("/analyses/{id}/phases/{index}/download", cfg.Reports.GetPhaseDownload)
		})
	})

	return r
}
