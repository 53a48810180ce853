package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/rahul4469/compiler-craft/internal/config"
	"github.com/rahul4469/compiler-craft/internal/models"
	"github.com/rahul4469/compiler-craft/internal/report"
	"github.com/rahul4469/compiler-craft/internal/services"
)

// newCLITutor builds a Tutor backed by an in-memory store. reportPath
// overrides the configured report location when set.
func newCLITutor(ctx context.Context, cfg *config.Config, reportPath string) (*services.Tutor, error) {
	if err := cfg.ValidateModel(); err != nil {
		return nil, err
	}

	model, err := services.NewModel(ctx, services.ModelConfig{
		Provider: services.Provider(cfg.APIs.LLMProvider),
		APIKey:   cfg.ModelAPIKey(),
		Model:    cfg.ModelName(),
	})
	if err != nil {
		return nil, err
	}

	if reportPath == "" {
		reportPath = cfg.Limits.ReportPath
	}
	reports := report.NewWriter(reportPath, logger)

	return services.NewTutor(model, models.NewMemoryAnalysisStore(cfg.Limits.MemoryStoreSize), reports, logger, cfg.Limits.ModelTimeout), nil
}

// readSourceFile reads a snippet from disk, or from stdin when path is "-".
func readSourceFile(path string, maxBytes int) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(io.LimitReader(os.Stdin, int64(maxBytes)+1))
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return services.DecodeSourceText(data, maxBytes)
}

// readAnalysisFile loads a saved analysis (the JSON written by
// "analyze -o json") and runs it through the validator.
func readAnalysisFile(path string) (*models.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}
	result, err := models.ValidateAnalysis(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// withSpinner runs fn while a spinner with suffix runs on w.
func withSpinner(w io.Writer, suffix string, fn func() error) error {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	err := fn()
	s.Stop()
	return err
}
