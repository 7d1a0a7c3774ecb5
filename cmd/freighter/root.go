// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for freighter.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"freighter/internal/config"
	"freighter/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "freighter",
		Short: "A package manifest interpreter",
		Long: TitleStyle.Render("freighter") + SubtitleStyle.Render(" - A package manifest interpreter") + `

freighter reads Cargo.toml package manifests and turns them into a
fully validated description of the package: its identity, build
targets, dependencies, profiles and workspace membership. Lenient
inputs are accepted with deprecation warnings; invalid ones are
rejected with precise errors.

` + SubtitleStyle.Render("Examples:") + `
  freighter read              Interpret the manifest in the current directory
  freighter read path/to/pkg  Interpret a manifest elsewhere
  freighter check             Interpret and report every warning
  freighter config show       Show current configuration`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/freighter/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(newReadCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newReadmeCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig loads the configuration, honoring the --config flag. A load
// failure is reported as a warning and the defaults are used instead.
func loadConfig(ctx context.Context) *config.Config {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return config.DefaultConfig()
	}
	if cfg.UI.Verbose {
		verbose = true
	}
	return cfg
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
