package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/formfill-agent/internal/engine"
	"github.com/jonathan/formfill-agent/internal/observability"
	"github.com/jonathan/formfill-agent/internal/profile"
	"github.com/jonathan/formfill-agent/internal/types"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a form page from the stored profile",
	Long:  "Fetches a form page, resolves a value for every detected field from the stored profile (and the generative model where the usage mode allows it), writes the values into the document, and prints a fill report.",
	RunE:  runFill,
}

var (
	fillURL         string
	fillFile        string
	fillBrowser     bool
	fillConfigPath  string
	fillProfilePath string
	fillAPIKey      string
	fillModel       string
	fillMode        string
	fillDatabaseURL string
	fillOutput      string
	fillVerbose     bool
)

func init() {
	fillCmd.Flags().StringVarP(&fillURL, "url", "u", "", "Form page URL")
	fillCmd.Flags().StringVarP(&fillFile, "file", "f", "", "Local HTML file (alternative to --url)")
	fillCmd.Flags().BoolVar(&fillBrowser, "browser", false, "Render the page in a headless browser")
	fillCmd.Flags().StringVarP(&fillConfigPath, "config", "c", "", "JSON config file")
	fillCmd.Flags().StringVarP(&fillProfilePath, "profile", "p", "", "Profile store JSON file (default: profile.json)")
	fillCmd.Flags().StringVar(&fillAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	fillCmd.Flags().StringVar(&fillModel, "model", "", "Generative model override")
	fillCmd.Flags().StringVarP(&fillMode, "mode", "m", "", "Usage mode for this run: auto, conservative, or off")
	fillCmd.Flags().StringVar(&fillDatabaseURL, "database-url", "", "PostgreSQL settings store (overrides DATABASE_URL env var)")
	fillCmd.Flags().StringVarP(&fillOutput, "out", "o", "", "Write the filled HTML document to this file")
	fillCmd.Flags().BoolVarP(&fillVerbose, "verbose", "v", false, "Print a formatted summary instead of JSON")

	rootCmd.AddCommand(fillCmd)
}

// modeOverrideStore applies a per-run usage mode without persisting it.
type modeOverrideStore struct {
	profile.Store
	mode types.UsageMode
}

func (s *modeOverrideStore) UsageMode() (types.UsageMode, error) {
	return s.mode, nil
}

func runFill(_ *cobra.Command, _ []string) error {
	if err := requirePageSource(fillURL, fillFile); err != nil {
		return err
	}

	cfg, err := loadCLIConfig(fillConfigPath, fillProfilePath, fillAPIKey, fillModel, fillMode, fillDatabaseURL)
	if err != nil {
		return err
	}

	log := newLogger(fillVerbose)
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var engineStore profile.Store = store
	if cfg.UsageMode != "" {
		mode, err := types.ParseUsageMode(cfg.UsageMode)
		if err != nil {
			return err
		}
		engineStore = &modeOverrideStore{Store: store, mode: mode}
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	} else {
		log.Debug().Msg("no API key configured, generative calls disabled")
	}

	doc, pageURL, err := loadDocument(ctx, fillURL, fillFile, fillBrowser, log)
	if err != nil {
		return fmt.Errorf("failed to load page: %w", err)
	}

	eng := engine.New(engineStore, client, engine.WithLogger(log))
	report, err := eng.FillForm(ctx, doc, pageURL)
	if err != nil {
		return fmt.Errorf("fill pass failed: %w", err)
	}

	if fillOutput != "" {
		html, err := doc.Html()
		if err != nil {
			return fmt.Errorf("failed to serialize filled document: %w", err)
		}
		if err := os.WriteFile(fillOutput, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", fillOutput, err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Filled document written to %s\n", fillOutput)
	}

	if fillVerbose {
		observability.NewPrinter(os.Stdout).PrintFillReport(report)
		return nil
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fill report: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))
	return nil
}
