package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Selector decides once, at startup, which backend serves the run.
// The credential is an explicit field rather than an ambient env read
// so tests can inject arbitrary values.
type Selector struct {
	// Credential is the remote API key, usually from OPENAI_API_KEY.
	Credential string
	// RemoteModel overrides DefaultRemoteModel when non-empty.
	RemoteModel string
	// LocalModel overrides DefaultLocalModel when non-empty.
	LocalModel string
	// OllamaHost overrides DefaultOllamaHost when non-empty.
	OllamaHost string
	// RemoteBaseURL overrides the remote API endpoint (tests only).
	RemoteBaseURL string
	// HTTPClient is used for local runtime calls. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Resolve picks the backend for this run. A syntactically valid
// credential selects the remote API without any network traffic; an
// absent or malformed credential falls back to the local runtime,
// which must be reachable and must hold (or successfully pull) the
// local model. An unreachable runtime at this point is the single
// unrecoverable condition: the error wraps ErrUnavailable.
//
// Resolve is deterministic for a given environment; calling it twice
// yields the same choice.
func (s *Selector) Resolve(ctx context.Context) (Backend, error) {
	if credentialValid(s.Credential) {
		log.Debug().Msg("remote API key found and looks valid")
		return NewOpenAIBackend(s.Credential, s.RemoteModel, s.RemoteBaseURL), nil
	}
	if s.Credential != "" {
		log.Warn().Msg("remote API key present but malformed, falling back to local runtime")
	} else {
		log.Debug().Msg("no remote API key, using local runtime")
	}

	model := s.LocalModel
	if model == "" {
		model = DefaultLocalModel
	}
	client, err := newOllamaClient(s.OllamaHost, s.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	b := &OllamaBackend{client: client, model: model}
	if err := b.ensureModel(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return b, nil
}

// credentialValid reports whether the key qualifies for the remote
// API: non-empty, free of surrounding whitespace, and carrying the
// expected prefix.
func credentialValid(key string) bool {
	if key == "" {
		return false
	}
	if strings.TrimSpace(key) != key {
		return false
	}
	return strings.HasPrefix(key, CredentialPrefix)
}
