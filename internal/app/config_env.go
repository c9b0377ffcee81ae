package app

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	OpenAIAPIKey string        `env:"OPENAI_API_KEY"`
	RemoteModel  string        `env:"OPENAI_MODEL"`
	LocalModel   string        `env:"OLLAMA_MODEL"`
	OllamaHost   string        `env:"OLLAMA_HOST"`
	UserAgent    string        `env:"WEBBRIEF_USER_AGENT"`
	FetchTimeout time.Duration `env:"WEBBRIEF_TIMEOUT"`
}

// ApplyEnvToConfig populates unset fields of cfg from environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return err
	}
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = e.OpenAIAPIKey
	}
	if cfg.RemoteModel == "" {
		cfg.RemoteModel = e.RemoteModel
	}
	if cfg.LocalModel == "" {
		cfg.LocalModel = e.LocalModel
	}
	if cfg.OllamaHost == "" {
		cfg.OllamaHost = e.OllamaHost
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = e.UserAgent
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = e.FetchTimeout
	}
	return nil
}
