package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "APP_ENV", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
		"DATABASE_URL", "CSRF_SECRET", "CSRF_TRUSTED_ORIGINS", "LLM_PROVIDER", "API_KEY",
		"GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL", "GITHUB_TOKEN",
		"GITHUB_API_BASE_URL", "REPORT_PATH", "MAX_SOURCE_BYTES", "MODEL_TIMEOUT",
		"MEMORY_STORE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "gemini", cfg.APIs.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName())
	assert.Equal(t, "../compiler_report.txt", cfg.Limits.ReportPath)
	assert.Equal(t, 200000, cfg.Limits.MaxSourceBytes)
	assert.Equal(t, 256, cfg.Limits.MemoryStoreSize)
	assert.Len(t, cfg.Security.CSRFSecret, 64)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_LegacyAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.ModelAPIKey())
	assert.NoError(t, cfg.ValidateModel())
}

func TestLoad_OpenAI(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("GEMINI_API_KEY", "g")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.ModelName())
	assert.ErrorContains(t, cfg.ValidateModel(), "OPENAI_API_KEY")
}

func TestLoad_ProductionRequiresCSRFSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "CSRF_SECRET is required")

	t.Setenv("CSRF_SECRET", "short")
	_, err = Load()
	assert.ErrorContains(t, err, "at least 32 characters")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"APP_ENV", "prod", "APP_ENV must be one of"},
		{"LLM_PROVIDER", "claude", "LLM_PROVIDER must be one of"},
		{"MAX_SOURCE_BYTES", "lots", "invalid MAX_SOURCE_BYTES"},
		{"MAX_SOURCE_BYTES", "0", "MAX_SOURCE_BYTES must be positive"},
		{"MODEL_TIMEOUT", "soon", "invalid MODEL_TIMEOUT"},
		{"MEMORY_STORE_SIZE", "many", "invalid MEMORY_STORE_SIZE"},
		{"MEMORY_STORE_SIZE", "-1", "MEMORY_STORE_SIZE must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
