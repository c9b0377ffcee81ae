// Package backend resolves and drives the model backend that turns a
// message pair into a summary. Exactly one backend serves a process:
// either a remote OpenAI-compatible API (when a valid credential is
// present) or a local Ollama runtime. The choice is made once at
// startup and never revisited mid-run.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/webbrief/webbrief/internal/prompt"
)

// Kind is the closed set of backend variants. Call sites switch on it
// exhaustively; there is no third case.
type Kind int

const (
	KindRemote Kind = iota
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindLocal:
		return "local"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Backend is a resolved model backend ready to serve completion calls.
type Backend interface {
	// Complete performs one round-trip: messages in, generated text out.
	// Failures are reported as *CallError and are never retried here.
	Complete(ctx context.Context, msgs prompt.Messages) (string, error)
	// Name is a human-readable label for diagnostics, e.g. "OpenAI gpt-4o-mini".
	Name() string
	// Kind reports which variant this backend is.
	Kind() Kind
}

// ErrUnavailable means no usable model backend exists: the credential
// did not qualify for the remote API and the local runtime could not
// be reached. Nothing downstream can succeed after this.
var ErrUnavailable = errors.New("no usable model backend")

var errEmptyResponse = errors.New("empty model response")

// CallError reports a failed completion request against the backend
// that was already chosen for this run. It is surfaced to the caller
// verbatim; the other backend is never tried as a substitute.
type CallError struct {
	Backend string
	Err     error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Backend, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
