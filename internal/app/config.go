package app

import "time"

// Config holds runtime configuration for one summarization run.
// Precedence is explicit values, then environment, then config file.
type Config struct {
	// OutputPath, when non-empty, receives the summary instead of stdout.
	OutputPath string

	// Backend
	OpenAIAPIKey string
	RemoteModel  string
	LocalModel   string
	OllamaHost   string

	// Prompt overrides; empty halves use the built-in defaults.
	SystemPrompt string
	UserPrompt   string

	// Fetch
	UserAgent    string
	FetchTimeout time.Duration

	// Behavior
	UseReadability bool
	Verbose        bool
}
