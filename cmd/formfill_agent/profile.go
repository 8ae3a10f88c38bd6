package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/formfill-agent/internal/engine"
	"github.com/jonathan/formfill-agent/internal/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the stored profile and settings",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile and settings as JSON",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set key=value [key=value ...]",
	Short: "Set profile values",
	Long:  "Merges the given key=value pairs into the stored profile. Known keys map to profile fields; unknown keys are kept as extra values.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfileSet,
}

var profileSensitiveCmd = &cobra.Command{
	Use:   "sensitive [key ...]",
	Short: "Replace the sensitive-key set",
	Long:  "Replaces the set of profile keys excluded from learned suggestions. Called with no arguments it clears the set.",
	RunE:  runProfileSensitive,
}

var profileModeCmd = &cobra.Command{
	Use:   "mode <auto|conservative|off>",
	Short: "Set the generative-call usage mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileMode,
}

var (
	profilePath        string
	profileDatabaseURL string
)

func init() {
	profileCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "Profile store JSON file (default: profile.json)")
	profileCmd.PersistentFlags().StringVar(&profileDatabaseURL, "database-url", "", "PostgreSQL settings store (overrides DATABASE_URL env var)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileSensitiveCmd)
	profileCmd.AddCommand(profileModeCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig("", profilePath, "", "", "", profileDatabaseURL)
	if err != nil {
		return err
	}
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	prof, err := store.Profile()
	if err != nil {
		return err
	}
	mode, err := store.UsageMode()
	if err != nil {
		return err
	}
	sensitive, err := store.SensitiveKeys()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(sensitive))
	for k := range sensitive {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out, err := json.MarshalIndent(map[string]any{
		"profile":        prof,
		"usage_mode":     mode,
		"sensitive_keys": keys,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))
	return nil
}

func runProfileSet(_ *cobra.Command, args []string) error {
	partial := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		partial[key] = value
	}

	cfg, err := loadCLIConfig("", profilePath, "", "", "", profileDatabaseURL)
	if err != nil {
		return err
	}
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	eng := engine.New(store, nil)
	if err := eng.UpdateProfile(partial); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Updated %d profile value(s)\n", len(partial))
	return nil
}

func runProfileSensitive(_ *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig("", profilePath, "", "", "", profileDatabaseURL)
	if err != nil {
		return err
	}
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetSensitiveKeys(args); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Sensitive keys set (%d)\n", len(args))
	return nil
}

func runProfileMode(_ *cobra.Command, args []string) error {
	mode, err := types.ParseUsageMode(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadCLIConfig("", profilePath, "", "", "", profileDatabaseURL)
	if err != nil {
		return err
	}
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetUsageMode(mode); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Usage mode set to %s\n", mode)
	return nil
}
