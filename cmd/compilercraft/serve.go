package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rahul4469/compiler-craft/internal/config"
	"github.com/rahul4469/compiler-craft/internal/controllers"
	"github.com/rahul4469/compiler-craft/internal/middleware"
	"github.com/rahul4469/compiler-craft/internal/models"
	"github.com/rahul4469/compiler-craft/internal/report"
	"github.com/rahul4469/compiler-craft/internal/services"
	"github.com/rahul4469/compiler-craft/internal/views"
	"github.com/rahul4469/compiler-craft/migrations"
	"github.com/rahul4469/compiler-craft/templates"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and JSON API",
		Long: `Start the HTTP server. Configuration comes from the environment (and an
optional .env file): SERVER_PORT, DATABASE_URL, LLM_PROVIDER, GEMINI_API_KEY,
OPENAI_API_KEY, CSRF_SECRET and friends.

Without DATABASE_URL analyses are kept in memory for the life of the process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateModel(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	// Setup the store ---------------
	var (
		store    models.AnalysisStore
		dbHealth controllers.Pinger
	)
	if cfg.Database.URL != "" {
		logger.Info("Connecting to database...")
		db, err := models.NewDatabase(ctx, models.DefaultDatabaseConfig(cfg.Database.URL))
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(migrations.FS, "."); err != nil {
			return err
		}
		logger.Info("Database connected and migrated")

		store = models.NewAnalysisService(db.Pool)
		dbHealth = db
	} else {
		logger.Warn("DATABASE_URL not set; analyses are kept in memory",
			zap.Int("max_analyses", cfg.Limits.MemoryStoreSize))
		store = models.NewMemoryAnalysisStore(cfg.Limits.MemoryStoreSize)
	}

	// Setup services ---------------
	model, err := services.NewModel(ctx, services.ModelConfig{
		Provider: services.Provider(cfg.APIs.LLMProvider),
		APIKey:   cfg.ModelAPIKey(),
		Model:    cfg.ModelName(),
	})
	if err != nil {
		return err
	}

	reports := report.NewWriter(cfg.Limits.ReportPath, logger)
	tutor := services.NewTutor(model, store, reports, logger, cfg.Limits.ModelTimeout)

	github, err := services.NewGitHubSource(cfg.APIs.GitHubToken, cfg.APIs.GitHubAPIBaseURL, cfg.Limits.MaxSourceBytes)
	if err != nil {
		return err
	}

	// Setup controllers ---------------
	assets, err := fs.Sub(templates.FS, "static")
	if err != nil {
		return err
	}
	homeTpl, err := views.ParseFS(templates.FS, "pages/home.gohtml")
	if err != nil {
		return err
	}
	fragmentTpl, err := views.ParseFS(templates.FS)
	if err != nil {
		return err
	}

	router := controllers.NewRouter(controllers.RouterConfig{
		Logger:   logger,
		Analyze:  controllers.NewAnalyzeController(tutor, store, controllers.AnalyzeTemplates{Fragment: fragmentTpl}, cfg.Limits.MaxSourceBytes),
		Reports:  controllers.NewReportController(store),
		Sources:  controllers.NewSourceController(github, cfg.Limits.MaxSourceBytes),
		Static:   controllers.NewStaticController(controllers.StaticTemplates{Home: homeTpl}, assets, model.Name(), cfg.IsDevelopment()),
		Database: dbHealth,
		CSRF: middleware.CSRF(middleware.CSRFConfig{
			Secret:         cfg.Security.CSRFSecret,
			Secure:         cfg.Security.SecureCookies,
			TrustedOrigins: cfg.Security.CSRFTrustedOrigins,
		}),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server ---------------
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Compiler Craft listening",
			zap.String("addr", "http://localhost"+cfg.Addr()),
			zap.String("env", cfg.Server.Environment),
			zap.String("model", model.Name()),
			zap.String("report_path", reports.Path()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
