package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/webbrief/webbrief/internal/app"
	"github.com/webbrief/webbrief/internal/backend"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is a convenience for the operator; absence is not an error.
	_ = godotenv.Load()

	var (
		outputPath       string
		configPath       string
		apiKey           string
		remoteModel      string
		localModel       string
		ollamaHost       string
		systemPrompt     string
		systemPromptFile string
		userPrompt       string
		userPromptFile   string
		userAgent        string
		fetchTimeout     time.Duration
		useReadability   bool
		verbose          bool
	)

	flag.StringVar(&outputPath, "output", "", "Write the summary to this file instead of stdout")
	flag.StringVar(&outputPath, "o", "", "Shorthand for -output")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&apiKey, "llm.key", "", "API key for the remote backend (default: OPENAI_API_KEY)")
	flag.StringVar(&remoteModel, "model.remote", "", "Remote model name (default gpt-4o-mini)")
	flag.StringVar(&localModel, "model.local", "", "Local model name (default llama3.2:latest)")
	flag.StringVar(&ollamaHost, "ollama.host", "", "Ollama base URL (default http://localhost:11434)")
	flag.StringVar(&systemPrompt, "system.prompt", "", "Override the system prompt (inline string)")
	flag.StringVar(&systemPromptFile, "system.promptFile", "", "Path to file containing the system prompt")
	flag.StringVar(&userPrompt, "user.prompt", "", "Override the user prompt (inline string)")
	flag.StringVar(&userPromptFile, "user.promptFile", "", "Path to file containing the user prompt")
	flag.StringVar(&userAgent, "fetch.ua", "", "Custom User-Agent for the page fetch")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Page fetch timeout (default 10s)")
	flag.BoolVar(&useReadability, "readability", false, "Use readability article extraction instead of element stripping")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <url>\n\nSummarize one web page with a remote or local language model.\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	pageURL := strings.TrimSpace(flag.Arg(0))
	if pageURL == "" {
		flag.Usage()
		os.Exit(2)
	}

	// File-based prompts take precedence over inline strings
	if strings.TrimSpace(systemPromptFile) != "" {
		b, err := os.ReadFile(systemPromptFile)
		if err != nil {
			log.Error().Err(err).Msg("read system prompt file")
			os.Exit(1)
		}
		systemPrompt = string(b)
	}
	if strings.TrimSpace(userPromptFile) != "" {
		b, err := os.ReadFile(userPromptFile)
		if err != nil {
			log.Error().Err(err).Msg("read user prompt file")
			os.Exit(1)
		}
		userPrompt = string(b)
	}

	cfg := app.Config{
		OutputPath:     outputPath,
		OpenAIAPIKey:   apiKey,
		RemoteModel:    remoteModel,
		LocalModel:     localModel,
		OllamaHost:     ollamaHost,
		SystemPrompt:   systemPrompt,
		UserPrompt:     userPrompt,
		UserAgent:      userAgent,
		FetchTimeout:   fetchTimeout,
		UseReadability: useReadability,
		Verbose:        verbose,
	}
	if err := app.ApplyEnvToConfig(&cfg); err != nil {
		log.Error().Err(err).Msg("read environment")
		os.Exit(1)
	}
	if err := app.ApplyFileToConfig(&cfg, configPath); err != nil {
		log.Error().Err(err).Msg("load config file")
		os.Exit(1)
	}

	if err := run(cfg, pageURL); err != nil {
		log.Error().Err(err).Str("url", pageURL).Msg("run failed")
		// Exit code policy: 2 when no model backend is usable at all,
		// 1 for every other failure.
		if errors.Is(err, backend.ErrUnavailable) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config, pageURL string) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.Info().Str("url", pageURL).Str("backend", a.BackendName()).Bool("remote", a.UsingRemoteBackend()).Msg("summarizing")
	}

	var summary string
	if cfg.SystemPrompt != "" || cfg.UserPrompt != "" {
		summary, err = a.SummarizeCustom(ctx, pageURL, cfg.SystemPrompt, cfg.UserPrompt)
	} else {
		summary, err = a.Summarize(ctx, pageURL)
	}
	if err != nil {
		return err
	}

	if cfg.OutputPath != "" {
		if err := os.WriteFile(cfg.OutputPath, []byte(summary+"\n"), 0o644); err != nil {
			return fmt.Errorf("save summary to %s: %w", cfg.OutputPath, err)
		}
		log.Info().Str("path", cfg.OutputPath).Msg("summary saved")
		return nil
	}
	fmt.Println(summary)
	return nil
}
