package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rahul4469/compiler-craft/internal/models"
)

// Provider names a hosted model backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

var ErrModelNotConfigured = errors.New("model API key not configured")

// Request is a single model call. History holds earlier chat turns and
// Prompt is the new user turn.
type Request struct {
	SystemInstruction string
	History           []models.ChatMessage
	Prompt            string
	// Analysis asks for a JSON object shaped like models.AnalysisResult.
	Analysis bool
}

// Model is a hosted language model. Implementations make exactly one
// network call per Generate and never retry.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// ModelConfig selects and configures a Model.
type ModelConfig struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string
}

// NewModel creates a Model for cfg.Provider.
func NewModel(ctx context.Context, cfg ModelConfig) (Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrModelNotConfigured)
	}

	switch Provider(strings.ToLower(string(cfg.Provider))) {
	case ProviderGemini, "":
		return NewGeminiModel(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		return NewOpenAIModel(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: gemini, openai)", cfg.Provider)
	}
}
