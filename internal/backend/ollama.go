package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog/log"

	"github.com/webbrief/webbrief/internal/prompt"
)

// DefaultLocalModel is the model served by the local runtime when no
// remote credential is usable.
const DefaultLocalModel = "llama3.2:latest"

// DefaultOllamaHost is where a stock Ollama install listens.
const DefaultOllamaHost = "http://localhost:11434"

// OllamaBackend serves completions from a local Ollama runtime.
type OllamaBackend struct {
	client *api.Client
	model  string
}

func newOllamaClient(host string, httpClient *http.Client) (*api.Client, error) {
	if host == "" {
		host = DefaultOllamaHost
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", host, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return api.NewClient(base, httpClient), nil
}

// ensureModel verifies the model is installed, pulling it once when the
// runtime reports it missing. A failed listing is not fatal on its own:
// the pull is still attempted, and only when that fails too is the
// local backend unusable.
func (b *OllamaBackend) ensureModel(ctx context.Context) error {
	list, err := b.client.List(ctx)
	if err != nil {
		log.Warn().Err(err).Str("model", b.model).Msg("listing local models failed, attempting pull")
		return b.pullModel(ctx)
	}
	for _, m := range list.Models {
		if m.Name == b.model || m.Model == b.model {
			return nil
		}
	}
	log.Info().Str("model", b.model).Msg("local model missing, pulling")
	return b.pullModel(ctx)
}

func (b *OllamaBackend) pullModel(ctx context.Context) error {
	err := b.client.Pull(ctx, &api.PullRequest{Model: b.model}, func(p api.ProgressResponse) error {
		if p.Total > 0 {
			log.Debug().Str("status", p.Status).Int64("completed", p.Completed).Int64("total", p.Total).Msg("pull progress")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pull model %s: %w", b.model, err)
	}
	return nil
}

func (b *OllamaBackend) Complete(ctx context.Context, msgs prompt.Messages) (string, error) {
	stream := false
	var out strings.Builder
	err := b.client.Chat(ctx, &api.ChatRequest{
		Model: b.model,
		Messages: []api.Message{
			{Role: "system", Content: msgs.System},
			{Role: "user", Content: msgs.User},
		},
		Stream: &stream,
	}, func(resp api.ChatResponse) error {
		out.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", &CallError{Backend: b.Name(), Err: err}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", &CallError{Backend: b.Name(), Err: errEmptyResponse}
	}
	return text, nil
}

func (b *OllamaBackend) Name() string { return "Ollama " + b.model }

func (b *OllamaBackend) Kind() Kind { return KindLocal }
