package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/webbrief/webbrief/internal/prompt"
)

func TestOpenAIBackend_Complete(t *testing.T) {
	var gotModel string
	var gotMessages []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		defer r.Body.Close()
		var req struct {
			Model    string              `json:"model"`
			Messages []map[string]string `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		gotMessages = req.Messages
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "## Summary\n\nAcme builds widgets."}},
			},
		})
	}))
	defer srv.Close()

	b := NewOpenAIBackend("sk-proj-test", "", srv.URL+"/v1")
	out, err := b.Complete(context.Background(), prompt.Messages{System: "sys", User: "usr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "## Summary\n\nAcme builds widgets." {
		t.Fatalf("unexpected summary %q", out)
	}
	if gotModel != DefaultRemoteModel {
		t.Fatalf("expected default model, got %q", gotModel)
	}
	if len(gotMessages) != 2 || gotMessages[0]["role"] != "system" || gotMessages[1]["role"] != "user" {
		t.Fatalf("expected system+user messages, got %v", gotMessages)
	}
	if gotMessages[0]["content"] != "sys" || gotMessages[1]["content"] != "usr" {
		t.Fatalf("expected message contents to pass through, got %v", gotMessages)
	}
}

func TestOpenAIBackend_CallError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	b := NewOpenAIBackend("sk-proj-bad", "", srv.URL+"/v1")
	_, err := b.Complete(context.Background(), prompt.Messages{System: "s", User: "u"})
	if err == nil {
		t.Fatalf("expected error from rejected request")
	}
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CallError, got %T", err)
	}
	if ce.Backend == "" {
		t.Fatalf("expected error to carry backend label")
	}
}

func TestOpenAIBackend_EmptyChoicesIsCallError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	b := NewOpenAIBackend("sk-proj-test", "", srv.URL+"/v1")
	_, err := b.Complete(context.Background(), prompt.Messages{System: "s", User: "u"})
	if err == nil {
		t.Fatalf("expected error for response without choices")
	}
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CallError, got %T: %v", err, err)
	}
}

func TestOllamaBackend_EmptyMessageIsCallError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   DefaultLocalModel,
			"message": map[string]any{"role": "assistant", "content": "   "},
			"done":    true,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := newOllamaClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := &OllamaBackend{client: client, model: DefaultLocalModel}
	_, err = b.Complete(context.Background(), prompt.Messages{System: "s", User: "u"})
	if err == nil {
		t.Fatalf("expected error for blank model output")
	}
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CallError, got %T: %v", err, err)
	}
}

func TestOllamaBackend_Complete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 2 {
			t.Errorf("expected system+user messages, got %d", len(req.Messages))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   req.Model,
			"message": map[string]any{"role": "assistant", "content": "Local summary."},
			"done":    true,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := newOllamaClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := &OllamaBackend{client: client, model: DefaultLocalModel}
	out, err := b.Complete(context.Background(), prompt.Messages{System: "s", User: "u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Local summary." {
		t.Fatalf("unexpected summary %q", out)
	}
}

func TestOllamaBackend_CallError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	host := srv.URL
	srv.Close()

	client, err := newOllamaClient(host, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := &OllamaBackend{client: client, model: DefaultLocalModel}
	_, err = b.Complete(context.Background(), prompt.Messages{System: "s", User: "u"})
	if err == nil {
		t.Fatalf("expected error when runtime is down")
	}
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CallError, got %T", err)
	}
}

func TestKindString(t *testing.T) {
	if KindRemote.String() != "remote" || KindLocal.String() != "local" {
		t.Fatalf("unexpected kind strings: %v %v", KindRemote, KindLocal)
	}
}
