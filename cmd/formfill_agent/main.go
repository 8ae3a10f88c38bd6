// Package main provides the entry point for the formfill agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formfill_agent",
	Short: "LLM-assisted web form autofill",
	Long:  "Formfill Agent detects fillable fields on application form pages and fills them from a stored profile, using a generative model for questions the profile cannot answer directly.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
