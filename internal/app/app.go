// Package app composes the summarization pipeline: fetch a page,
// reduce it to readable text, build the message pair, and make one
// completion call against the backend chosen at startup. The app adds
// no recovery of its own; every failure propagates to the caller with
// the URL and backend label attached.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/webbrief/webbrief/internal/backend"
	"github.com/webbrief/webbrief/internal/extract"
	"github.com/webbrief/webbrief/internal/fetch"
	"github.com/webbrief/webbrief/internal/prompt"
)

type App struct {
	cfg       Config
	fetcher   *fetch.Client
	extractor extract.Extractor
	backend   backend.Backend
}

// New wires the pipeline and resolves the model backend exactly once.
// The resolved choice holds for the process lifetime; a later call
// failure is surfaced, never answered by switching backends.
func New(ctx context.Context, cfg Config) (*App, error) {
	sel := &backend.Selector{
		Credential:  cfg.OpenAIAPIKey,
		RemoteModel: cfg.RemoteModel,
		LocalModel:  cfg.LocalModel,
		OllamaHost:  cfg.OllamaHost,
	}
	b, err := sel.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve backend: %w", err)
	}
	log.Info().Str("backend", b.Name()).Msg("model backend selected")

	var ex extract.Extractor = extract.HeuristicExtractor{}
	if cfg.UseReadability {
		ex = extract.ReadabilityExtractor{}
	}
	return &App{
		cfg:       cfg,
		fetcher:   &fetch.Client{UserAgent: cfg.UserAgent, Timeout: cfg.FetchTimeout},
		extractor: ex,
		backend:   b,
	}, nil
}

// Summarize fetches one URL and returns the backend's markdown summary
// verbatim.
func (a *App) Summarize(ctx context.Context, pageURL string) (string, error) {
	return a.summarize(ctx, pageURL, "", "")
}

// SummarizeCustom is Summarize with caller-supplied prompt overrides.
// An empty half keeps the default for that half.
func (a *App) SummarizeCustom(ctx context.Context, pageURL, systemPrompt, userPrompt string) (string, error) {
	return a.summarize(ctx, pageURL, systemPrompt, userPrompt)
}

func (a *App) summarize(ctx context.Context, pageURL, systemPrompt, userPrompt string) (string, error) {
	body, err := a.fetcher.Get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	doc, err := a.extractor.Extract(pageURL, body)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", pageURL, err)
	}
	log.Debug().Str("url", pageURL).Str("title", doc.Title).Int("chars", len(doc.Text)).Msg("page extracted")

	var msgs prompt.Messages
	if systemPrompt == "" && userPrompt == "" {
		msgs, err = prompt.Build(&doc)
	} else {
		msgs, err = prompt.BuildCustom(&doc, systemPrompt, userPrompt)
	}
	if err != nil {
		return "", err
	}

	summary, err := a.backend.Complete(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", pageURL, err)
	}
	return summary, nil
}

// UsingRemoteBackend reports whether the run is served by the remote API.
func (a *App) UsingRemoteBackend() bool {
	return a.backend.Kind() == backend.KindRemote
}

// BackendName is the human-readable label of the active backend.
func (a *App) BackendName() string {
	return a.backend.Name()
}
