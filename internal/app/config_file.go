package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the optional single-file configuration schema.
// Nested sections map naturally to flags and env variables.
type FileConfig struct {
	Output string `yaml:"output" json:"output"`

	LLM struct {
		Key         string `yaml:"key" json:"key"`
		RemoteModel string `yaml:"remoteModel" json:"remoteModel"`
		LocalModel  string `yaml:"localModel" json:"localModel"`
		OllamaHost  string `yaml:"ollamaHost" json:"ollamaHost"`
	} `yaml:"llm" json:"llm"`

	Prompts struct {
		System string `yaml:"system" json:"system"`
		User   string `yaml:"user" json:"user"`
	} `yaml:"prompts" json:"prompts"`

	Fetch struct {
		UserAgent string `yaml:"userAgent" json:"userAgent"`
		// Timeout is a Go duration string, e.g. "10s".
		Timeout string `yaml:"timeout" json:"timeout"`
	} `yaml:"fetch" json:"fetch"`

	Readability bool `yaml:"readability" json:"readability"`
	Verbose     bool `yaml:"verbose" json:"verbose"`
}

// ApplyFileToConfig reads a YAML config file and fills only fields that
// are still unset, keeping flags and env ahead of the file.
func ApplyFileToConfig(cfg *Config, path string) error {
	if cfg == nil || path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = fc.LLM.Key
	}
	if cfg.RemoteModel == "" {
		cfg.RemoteModel = fc.LLM.RemoteModel
	}
	if cfg.LocalModel == "" {
		cfg.LocalModel = fc.LLM.LocalModel
	}
	if cfg.OllamaHost == "" {
		cfg.OllamaHost = fc.LLM.OllamaHost
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = fc.Prompts.System
	}
	if cfg.UserPrompt == "" {
		cfg.UserPrompt = fc.Prompts.User
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout != "" {
		d, err := time.ParseDuration(fc.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("parse config %s: fetch.timeout: %w", path, err)
		}
		cfg.FetchTimeout = d
	}
	if !cfg.UseReadability {
		cfg.UseReadability = fc.Readability
	}
	if !cfg.Verbose {
		cfg.Verbose = fc.Verbose
	}
	return nil
}
