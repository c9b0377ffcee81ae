// Package prompt turns a cleaned page into the system/user message
// pair sent to a model backend. Building is pure: no I/O, and the same
// document always produces the same messages.
package prompt

import (
	"errors"
	"strings"

	"github.com/webbrief/webbrief/internal/extract"
)

// DefaultSystemPrompt instructs the model to summarize and to skip
// navigation-style text.
const DefaultSystemPrompt = "You are an assistant that analyzes the contents of a website " +
	"and provides a short summary, ignoring text that might be navigation related. " +
	"Respond in markdown."

// MaxContentChars caps the page text embedded in the user message so a
// single oversized page cannot blow the token budget.
const MaxContentChars = 12000

// ErrNoDocument is returned when the builder is handed a nil document.
var ErrNoDocument = errors.New("prompt: no document")

// Messages is the system/user instruction pair consumed by a backend.
type Messages struct {
	System string
	User   string
}

// Build produces the default message pair for a document. The user
// message embeds the title and the (capped) text verbatim.
func Build(doc *extract.Document) (Messages, error) {
	if doc == nil {
		return Messages{}, ErrNoDocument
	}
	return Messages{System: DefaultSystemPrompt, User: defaultUserPrompt(doc)}, nil
}

// BuildCustom overrides either half of the message pair. An empty
// override falls back to the default for that half, so callers can
// replace just the system prompt or just the user prompt.
func BuildCustom(doc *extract.Document, systemPrompt, userPrompt string) (Messages, error) {
	if doc == nil {
		return Messages{}, ErrNoDocument
	}
	m := Messages{System: systemPrompt, User: userPrompt}
	if strings.TrimSpace(m.System) == "" {
		m.System = DefaultSystemPrompt
	}
	if strings.TrimSpace(m.User) == "" {
		m.User = defaultUserPrompt(doc)
	}
	return m, nil
}

func defaultUserPrompt(doc *extract.Document) string {
	var b strings.Builder
	b.WriteString("Please provide a short markdown summary of the following website. ")
	b.WriteString("If it includes news or announcements, summarize these too.\n")
	b.WriteString("Page title: ")
	b.WriteString(doc.Title)
	b.WriteString("\n\n")
	b.WriteString(capText(doc.Text, MaxContentChars))
	return b.String()
}

func capText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Cut on a rune boundary so truncation never splits UTF-8 sequences.
	cut := max
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }
