package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server config
	Server ServerConfig

	// database config; empty URL selects the in-memory store
	Database DatabaseConfig

	// CSRF config
	Security SecurityConfig

	// model provider and GitHub import
	APIs APIConfig

	// report file and input limits
	Limits LimitsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	Environment  string // development, staging, production
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	CSRFSecret         string
	CSRFTrustedOrigins []string
	SecureCookies      bool // true in production
}

// APIConfig holds external API configuration.
type APIConfig struct {
	LLMProvider      string
	GeminiAPIKey     string
	GeminiModel      string
	OpenAIAPIKey     string
	OpenAIModel      string
	GitHubToken      string
	GitHubAPIBaseURL string
}

// LimitsConfig holds report and input settings.
type LimitsConfig struct {
	ReportPath     string
	MaxSourceBytes  int
	ModelTimeout    time.Duration
	MemoryStoreSize int // analyses kept without a database
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// ModelAPIKey returns the key for the configured provider.
func (c *Config) ModelAPIKey() string {
	if c.APIs.LLMProvider == "openai" {
		return c.APIs.OpenAIAPIKey
	}
	return c.APIs.GeminiAPIKey
}

// ModelName returns the model for the configured provider.
func (c *Config) ModelName() string {
	if c.APIs.LLMProvider == "openai" {
		return c.APIs.OpenAIModel
	}
	return c.APIs.GeminiModel
}

func Load() (*Config, error) {
	// .env is optional; in production the variables come from the platform.
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	// Load server configuration
	cfg.Server = ServerConfig{
		Port:        getEnvOrDefault("SERVER_PORT", "3001"),
		Environment: getEnvOrDefault("APP_ENV", "development"),
	}
	if cfg.Server.ReadTimeout, err = getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	// Load database configuration
	cfg.Database = DatabaseConfig{
		URL: os.Getenv("DATABASE_URL"),
	}

	// Load security configuration
	cfg.Security = SecurityConfig{
		CSRFSecret:         os.Getenv("CSRF_SECRET"),
		CSRFTrustedOrigins: strings.Fields(os.Getenv("CSRF_TRUSTED_ORIGINS")),
		SecureCookies:      cfg.Server.Environment == "production",
	}
	if cfg.Security.CSRFSecret == "" && cfg.Server.Environment != "production" {
		// Outside production a per-process key is fine; tokens reset on restart.
		if cfg.Security.CSRFSecret, err = randomSecret(); err != nil {
			return nil, err
		}
	}

	// Load API configuration. API_KEY is the variable older setups used.
	cfg.APIs = APIConfig{
		LLMProvider:      strings.ToLower(getEnvOrDefault("LLM_PROVIDER", "gemini")),
		GeminiAPIKey:     getEnvOrDefault("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
		GitHubToken:      os.Getenv("GITHUB_TOKEN"),
		GitHubAPIBaseURL: getEnvOrDefault("GITHUB_API_BASE_URL", "https://api.github.com/"),
	}

	// Load limits configuration
	maxSource, err := strconv.Atoi(getEnvOrDefault("MAX_SOURCE_BYTES", "200000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_SOURCE_BYTES: %w", err)
	}
	modelTimeout, err := getDurationOrDefault("MODEL_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}
	memoryStoreSize, err := strconv.Atoi(getEnvOrDefault("MEMORY_STORE_SIZE", "256"))
	if err != nil {
		return nil, fmt.Errorf("invalid MEMORY_STORE_SIZE: %w", err)
	}

	cfg.Limits = LimitsConfig{
		ReportPath:     getEnvOrDefault("REPORT_PATH", "../compiler_report.txt"),
		MaxSourceBytes:  maxSource,
		ModelTimeout:    modelTimeout,
		MemoryStoreSize: memoryStoreSize,
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present and valid,
// so a bad deployment fails at startup instead of on first use.
func (c *Config) validate() error {
	var errs []error

	// CSRF secret must be set and sufficiently long
	if c.Security.CSRFSecret == "" {
		errs = append(errs, errors.New("CSRF_SECRET is required"))
	} else if len(c.Security.CSRFSecret) < 32 {
		errs = append(errs, errors.New("CSRF_SECRET must be at least 32 characters"))
	}

	if c.APIs.LLMProvider != "gemini" && c.APIs.LLMProvider != "openai" {
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be one of: gemini, openai (got: %s)", c.APIs.LLMProvider))
	}

	if c.Limits.MaxSourceBytes <= 0 {
		errs = append(errs, errors.New("MAX_SOURCE_BYTES must be positive"))
	}
	if c.Limits.MemoryStoreSize <= 0 {
		errs = append(errs, errors.New("MEMORY_STORE_SIZE must be positive"))
	}
	if c.Limits.ModelTimeout <= 0 {
		errs = append(errs, errors.New("MODEL_TIMEOUT must be positive"))
	}

	// Validate environment is a known value
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.Server.Environment] {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of: development, staging, production (got: %s)", c.Server.Environment))
	}

	// Combine all errors
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
	}

	return nil
}

// ValidateModel reports a missing API key for the configured provider.
// Only commands that call the model need it.
func (c *Config) ValidateModel() error {
	if c.ModelAPIKey() != "" {
		return nil
	}
	if c.APIs.LLMProvider == "openai" {
		return errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
	}
	return errors.New("GEMINI_API_KEY (or API_KEY) is required; export it in your environment or .env file and restart")
}

// getEnvOrDefault returns the .env value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
