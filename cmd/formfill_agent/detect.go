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

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect fillable fields on a form page",
	Long:  "Fetches a form page, discovers fillable fields, resolves their labels, and prints the result as JSON. No profile data is read and no generative calls are made.",
	RunE:  runDetect,
}

var (
	detectURL     string
	detectFile    string
	detectBrowser bool
	detectVerbose bool
)

func init() {
	detectCmd.Flags().StringVarP(&detectURL, "url", "u", "", "Form page URL")
	detectCmd.Flags().StringVarP(&detectFile, "file", "f", "", "Local HTML file (alternative to --url)")
	detectCmd.Flags().BoolVar(&detectBrowser, "browser", false, "Render the page in a headless browser")
	detectCmd.Flags().BoolVarP(&detectVerbose, "verbose", "v", false, "Print a formatted summary instead of JSON")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(_ *cobra.Command, _ []string) error {
	if err := requirePageSource(detectURL, detectFile); err != nil {
		return err
	}

	log := newLogger(detectVerbose)
	ctx := context.Background()

	doc, _, err := loadDocument(ctx, detectURL, detectFile, detectBrowser, log)
	if err != nil {
		return fmt.Errorf("failed to load page: %w", err)
	}

	// Detection needs no settings; an in-memory store satisfies the engine.
	eng := engine.New(profile.NewMemoryStore(&types.Profile{}), nil, engine.WithLogger(log))
	result := eng.DetectFields(doc)

	if detectVerbose {
		observability.NewPrinter(os.Stdout).PrintDetectResult(result)
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal detect result: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))
	return nil
}
