package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is the cleaned result of fetching one page: the <title>
// text plus the readable body text. Immutable once built.
type Document struct {
	URL   string
	Title string
	Text  string
}

// FallbackTitle is used when the page carries no <title> element.
const FallbackTitle = "No title found"

// removeSelector matches markup that must never reach the model:
// executable code, styling, binary-ish content, and form inputs.
const removeSelector = "script, style, noscript, img, input, select, textarea, button, iframe"

// Extractor defines a minimal interface for content extraction strategies.
// Implementations can swap readability tactics without changing callers.
type Extractor interface {
	// Extract converts raw HTML bytes into a cleaned Document.
	// Implementations should be deterministic and avoid side effects.
	Extract(pageURL string, input []byte) (Document, error)
}

// HeuristicExtractor strips non-content elements wholesale and keeps
// every remaining text node. This is the default strategy.
type HeuristicExtractor struct{}

func (HeuristicExtractor) Extract(pageURL string, input []byte) (Document, error) {
	return FromHTML(pageURL, input)
}

// FromHTML reduces raw HTML to a Document. The removed subtrees
// contribute neither text nor attribute content. A page with no text
// nodes yields an empty Text, which is a valid result rather than an
// error.
func FromHTML(pageURL string, input []byte) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = FallbackTitle
	}

	doc.Find(removeSelector).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	var b strings.Builder
	for _, n := range root.Nodes {
		collectText(&b, n)
	}
	return Document{URL: pageURL, Title: title, Text: normalizeWhitespace(b.String())}, nil
}

// blockTags separate their text onto their own lines, mirroring how a
// browser would break the flow.
var blockTags = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "br": {},
	"dd": {}, "div": {}, "dl": {}, "dt": {}, "fieldset": {}, "figcaption": {},
	"figure": {}, "footer": {}, "form": {}, "h1": {}, "h2": {}, "h3": {},
	"h4": {}, "h5": {}, "h6": {}, "header": {}, "hr": {}, "li": {},
	"main": {}, "nav": {}, "ol": {}, "p": {}, "pre": {}, "section": {},
	"table": {}, "td": {}, "th": {}, "tr": {}, "ul": {},
}

func collectText(b *strings.Builder, n *html.Node) {
	block := false
	if n.Type == html.ElementNode {
		// head-only metadata carries no readable text
		name := strings.ToLower(n.Data)
		if name == "head" || name == "title" {
			return
		}
		_, block = blockTags[name]
		if block {
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if block {
		b.WriteString("\n")
	}
}

func normalizeWhitespace(s string) string {
	// Collapse internal whitespace runs and drop repeated blank lines
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			if len(out) == 0 {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
