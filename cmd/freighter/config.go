// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"freighter/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `freighter config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage freighter configuration",
		Long: `Manage freighter configuration.

Configuration is stored in:
  - Linux: ~/.config/freighter/config.cue
  - macOS: ~/Library/Application Support/freighter/config.cue
  - Windows: %APPDATA%\freighter\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := config.LoadWithPath(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render("freighter configuration"))
			if path != "" {
				fmt.Fprintln(out, SubtitleStyle.Render("loaded from "+path))
			} else {
				fmt.Fprintln(out, SubtitleStyle.Render("defaults (no config file found)"))
			}
			fmt.Fprintf(out, "  registry.index    %s\n", displayIndex(cfg.Registry.Index))
			fmt.Fprintf(out, "  ui.color_scheme   %s\n", cfg.UI.ColorScheme)
			fmt.Fprintf(out, "  ui.verbose        %t\n", cfg.UI.Verbose)
			fmt.Fprintf(out, "  warnings.deny     %t\n", cfg.Warnings.Deny)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	return cfgCmd
}

// displayIndex renders the registry index, falling back to the default label.
func displayIndex(index config.IndexURL) string {
	if index == "" {
		return SubtitleStyle.Render("(default registry)")
	}
	return string(index)
}
