package prompt

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/webbrief/webbrief/internal/extract"
)

func TestBuild_EmbedsTitleAndTextVerbatim(t *testing.T) {
	doc := &extract.Document{
		URL:   "https://acme.test",
		Title: "Acme",
		Text:  "Acme builds widgets.",
	}

	m, err := Build(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.System != DefaultSystemPrompt {
		t.Fatalf("expected default system prompt")
	}
	if !strings.Contains(m.User, "Page title: Acme") {
		t.Fatalf("expected user message to contain page title, got %q", m.User)
	}
	if !strings.Contains(m.User, "Acme builds widgets.") {
		t.Fatalf("expected user message to contain page text, got %q", m.User)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	doc := &extract.Document{Title: "Same", Text: "Same text every time."}

	a, err := Build(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Build(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical messages for identical documents")
	}
}

func TestBuild_CapsOversizedText(t *testing.T) {
	doc := &extract.Document{Title: "Big", Text: strings.Repeat("a", MaxContentChars*2)}

	m, err := Build(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prefixLen := len(m.User) - len(doc.Text)
	if prefixLen >= 0 {
		t.Fatalf("expected text to be truncated")
	}
	if len(m.User) > MaxContentChars+512 {
		t.Fatalf("user message far exceeds cap: %d", len(m.User))
	}
}

func TestBuild_CapNeverSplitsRunes(t *testing.T) {
	// One leading ASCII byte misaligns the three-byte runes against the
	// cap, so a naive byte cut would land mid-rune.
	doc := &extract.Document{Title: "Unicode", Text: "a" + strings.Repeat("世", MaxContentChars)}

	m, err := Build(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utf8.ValidString(m.User) {
		t.Fatalf("expected valid UTF-8 after truncation")
	}
	if len(m.User) > MaxContentChars+512 {
		t.Fatalf("user message far exceeds cap: %d", len(m.User))
	}
}

func TestBuild_NilDocument(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if _, err := BuildCustom(nil, "s", "u"); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
}

func TestBuildCustom_OverridesBothHalves(t *testing.T) {
	doc := &extract.Document{Title: "T", Text: "body"}

	m, err := BuildCustom(doc, "custom system", "custom user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.System != "custom system" || m.User != "custom user" {
		t.Fatalf("expected overrides to win, got %+v", m)
	}
}

func TestBuildCustom_EmptyHalfFallsBackToDefault(t *testing.T) {
	doc := &extract.Document{Title: "T", Text: "body"}

	m, err := BuildCustom(doc, "custom system", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.System != "custom system" {
		t.Fatalf("expected custom system prompt")
	}
	if !strings.Contains(m.User, "Page title: T") {
		t.Fatalf("expected default user prompt, got %q", m.User)
	}

	m, err = BuildCustom(doc, "", "custom user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.System != DefaultSystemPrompt {
		t.Fatalf("expected default system prompt")
	}
	if m.User != "custom user" {
		t.Fatalf("expected custom user prompt, got %q", m.User)
	}
}
