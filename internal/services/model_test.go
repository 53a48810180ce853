package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/rahul4469/compiler-craft/internal/models"
)

func TestNewModel(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := NewModel(context.Background(), ModelConfig{Provider: ProviderGemini})
		assert.ErrorIs(t, err, ErrModelNotConfigured)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewModel(context.Background(), ModelConfig{Provider: "claude", APIKey: "k"})
		assert.ErrorContains(t, err, "unsupported LLM provider")
	})

	t.Run("openai default model", func(t *testing.T) {
		m, err := NewModel(context.Background(), ModelConfig{Provider: "OpenAI", APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, DefaultOpenAIModel, m.Name())
	})
}

func TestAnalysisSchema(t *testing.T) {
	schema := analysisSchema()

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.ElementsMatch(t, []string{"isValidCode", "error", "phases"}, schema.Required)

	errSchema := schema.Properties["error"]
	require.NotNil(t, errSchema.Nullable)
	assert.True(t, *errSchema.Nullable)
	assert.Equal(t, models.PhaseLabels(), errSchema.Properties["phase"].Enum)

	item := schema.Properties["phases"].Items
	assert.Equal(t, models.PhaseLabels(), item.Properties["name"].Enum)
	assert.ElementsMatch(t, []string{"name", "explanation", "inputDescription", "outputDescription"}, item.Required)
}

func TestRoleMapping(t *testing.T) {
	assert.Equal(t, genai.RoleModel, geminiRole(models.RoleModel))
	assert.Equal(t, genai.RoleUser, geminiRole(models.RoleUser))
	assert.Equal(t, "assistant", openAIRole(models.RoleModel))
	assert.Equal(t, "user", openAIRole(models.RoleUser))
}
