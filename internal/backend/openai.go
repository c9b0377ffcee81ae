package backend

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/webbrief/webbrief/internal/prompt"
)

// DefaultRemoteModel is the chat model used against the remote API.
const DefaultRemoteModel = "gpt-4o-mini"

// CredentialPrefix is the required prefix of a usable API key.
const CredentialPrefix = "sk-proj-"

// OpenAIBackend serves completions from an OpenAI-compatible API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend builds a remote backend from a credential. baseURL
// overrides the API endpoint and exists for tests against stub servers.
func NewOpenAIBackend(credential, model, baseURL string) *OpenAIBackend {
	cfg := openai.DefaultConfig(credential)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultRemoteModel
	}
	return &OpenAIBackend{client: openai.NewClientWithConfig(cfg), model: model}
}

func (b *OpenAIBackend) Complete(ctx context.Context, msgs prompt.Messages) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: msgs.System},
			{Role: openai.ChatMessageRoleUser, Content: msgs.User},
		},
		N: 1,
	})
	if err != nil {
		return "", &CallError{Backend: b.Name(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CallError{Backend: b.Name(), Err: errEmptyResponse}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (b *OpenAIBackend) Name() string { return "OpenAI " + b.model }

func (b *OpenAIBackend) Kind() Kind { return KindRemote }
