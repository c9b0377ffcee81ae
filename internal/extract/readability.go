package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// ReadabilityExtractor applies the go-readability article heuristics
// instead of wholesale element stripping. Works best on article-shaped
// pages; sparse pages may fail, so it is opt-in.
type ReadabilityExtractor struct{}

func (ReadabilityExtractor) Extract(pageURL string, input []byte) (Document, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return Document{}, fmt.Errorf("parse url: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(input), u)
	if err != nil {
		return Document{}, fmt.Errorf("readability: %w", err)
	}
	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = FallbackTitle
	}
	return Document{URL: pageURL, Title: title, Text: strings.TrimSpace(article.TextContent)}, nil
}
