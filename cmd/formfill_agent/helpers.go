// Package main implements the formfill_agent CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/jonathan/formfill-agent/internal/config"
	"github.com/jonathan/formfill-agent/internal/fetch"
	"github.com/jonathan/formfill-agent/internal/llm"
	"github.com/jonathan/formfill-agent/internal/profile"
	"github.com/jonathan/formfill-agent/internal/storage"
)

const defaultProfilePath = "profile.json"

// settingsStore wraps a profile.Store with an optional close hook for
// backends that hold connections.
type settingsStore struct {
	profile.Store
	close func()
}

func (s *settingsStore) Close() {
	if s.close != nil {
		s.close()
	}
}

// loadCLIConfig reads the optional config file and overlays flag values on
// top of it. Flags win over file values, file values win over env vars.
func loadCLIConfig(configPath, profilePath, apiKey, model, mode, databaseURL string) (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := config.Config{
		ProfilePath: profilePath,
		APIKey:      apiKey,
		Model:       model,
		UsageMode:   mode,
		DatabaseURL: databaseURL,
	}
	merged := flags.MergeWithDefaults(*cfg)

	env := config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	merged = merged.MergeWithDefaults(env)

	if merged.ProfilePath == "" && merged.DatabaseURL == "" {
		merged.ProfilePath = defaultProfilePath
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// openStore builds the settings store named by the configuration: PostgreSQL
// when a database URL is set, otherwise a JSON file.
func openStore(ctx context.Context, cfg *config.Config) (*settingsStore, error) {
	if cfg.DatabaseURL != "" {
		pg, err := storage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &settingsStore{Store: pg, close: pg.Close}, nil
	}
	fs, err := profile.NewFileStore(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}
	return &settingsStore{Store: fs}, nil
}

// newLLMClient creates a generative client when an API key is configured.
// Without a key the engine runs in direct-mapping-only degraded mode.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg.Model = cfg.Model
	}
	return llm.NewClient(ctx, llmCfg, cfg.APIKey)
}

// newLogger builds the CLI logger. Verbose mode enables debug-level console
// output; otherwise only warnings and above reach stderr.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// loadDocument fetches a page (or reads a local file) and parses it. The
// returned string is the page URL used for prompt context, empty for files.
func loadDocument(ctx context.Context, urlStr, filePath string, useBrowser bool, log zerolog.Logger) (*goquery.Document, string, error) {
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read HTML file %s: %w", filePath, err)
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse HTML file %s: %w", filePath, err)
		}
		return doc, "", nil
	}

	platform := fetch.DetectPlatform(urlStr)
	log.Debug().Str("platform", string(platform)).Str("url", urlStr).Msg("fetching page")

	if useBrowser || platform.RequiresBrowser() {
		result, err := fetch.BrowserSimple(ctx, urlStr)
		if err != nil {
			return nil, "", err
		}
		doc, err := result.Document()
		if err != nil {
			return nil, "", err
		}
		return doc, urlStr, nil
	}

	result, err := fetch.Page(ctx, urlStr, nil)
	if err != nil {
		return nil, "", err
	}
	if fetch.ShouldUseBrowser(result.HTML) {
		log.Debug().Msg("no form markup in HTTP response, retrying with browser")
		if rendered, berr := fetch.BrowserSimple(ctx, urlStr); berr == nil {
			result = rendered
		}
	}
	doc, err := result.Document()
	if err != nil {
		return nil, "", err
	}
	return doc, urlStr, nil
}

// requirePageSource validates that exactly one of --url and --file was given.
func requirePageSource(urlStr, filePath string) error {
	if urlStr == "" && filePath == "" {
		return fmt.Errorf("either --url or --file is required")
	}
	if urlStr != "" && filePath != "" {
		return fmt.Errorf("--url and --file are mutually exclusive")
	}
	return nil
}
