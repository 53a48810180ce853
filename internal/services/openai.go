package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/rahul4469/compiler-craft/internal/models"
)

const DefaultOpenAIModel = "gpt-4o"

// OpenAIModel calls the OpenAI chat completions API. Analysis requests use
// JSON mode; the response shape is enforced by the system instruction and
// the validator rather than a schema.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

func NewOpenAIModel(apiKey, model, baseURL string) *OpenAIModel {
	if model == "" {
		model = DefaultOpenAIModel
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIModel{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (o *OpenAIModel) Name() string {
	return o.model
}

func (o *OpenAIModel) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.SystemInstruction,
	})
	for _, msg := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openAIRole(msg.Role),
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: 0,
	}
	if req.Analysis {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// openAIRole maps the stored "model" role to OpenAI's "assistant".
func openAIRole(role models.ChatRole) string {
	if role == models.RoleModel {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}
