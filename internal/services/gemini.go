package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/rahul4469/compiler-craft/internal/models"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiModel calls the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{client: client, model: model}, nil
}

func (g *GeminiModel) Name() string {
	return g.model
}

func (g *GeminiModel) Generate(ctx context.Context, req Request) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, msg := range req.History {
		contents = append(contents, genai.NewContentFromText(msg.Content, geminiRole(msg.Role)))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}},
		Temperature:       genai.Ptr[float32](0),
	}
	if req.Analysis {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = analysisSchema()
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

func geminiRole(role models.ChatRole) genai.Role {
	if role == models.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// analysisSchema mirrors models.AnalysisResult. Phase names are restricted
// to the canonical labels and the error object is nullable.
func analysisSchema() *genai.Schema {
	phaseEnum := models.PhaseLabels()

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"isValidCode": {Type: genai.TypeBoolean},
			"error": {
				Type:     genai.TypeObject,
				Nullable: genai.Ptr(true),
				Properties: map[string]*genai.Schema{
					"phase":      {Type: genai.TypeString, Enum: phaseEnum},
					"message":    {Type: genai.TypeString},
					"suggestion": {Type: genai.TypeString},
				},
			},
			"phases": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":              {Type: genai.TypeString, Enum: phaseEnum},
						"explanation":       {Type: genai.TypeString},
						"inputDescription":  {Type: genai.TypeString},
						"outputDescription": {Type: genai.TypeString},
					},
					Required: []string{"name", "explanation", "inputDescription", "outputDescription"},
				},
			},
		},
		Required: []string{"isValidCode", "error", "phases"},
	}
}
