// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"freighter/internal/config"
	"freighter/internal/issue"
	"freighter/pkg/manifest"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newReadCommand creates the `freighter read` command.
func newReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read [path]",
		Short: "Interpret a package manifest and print its contents",
		Long: `Interpret a package manifest and print what it declares.

The path may be a directory containing a ` + manifest.Filename + ` or the
manifest file itself. With no argument the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd.Context())

			path, err := resolveManifestPath(args)
			if err != nil {
				return err
			}

			logger := newLogger()
			logger.Debug("interpreting manifest", "path", path)

			interp, err := manifest.InterpretFile(path, manifest.PathSource(filepath.Dir(path)))
			if err != nil {
				return &ExitError{Code: 1, Err: issue.NewErrorContext().
					WithOperation("interpret manifest").
					WithResource(path).
					WithSuggestion("Run 'freighter check' with --verbose for the full error chain").
					Wrap(err).
					Build()}
			}

			renderInterpretation(cmd, interp, registryIndexFor(cfg))
			printWarnings(interp.Warnings())
			return nil
		},
	}
}

// resolveManifestPath turns the optional positional argument into the path
// of a manifest file. Directories are resolved to the manifest inside them.
func resolveManifestPath(args []string) (string, error) {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("locating manifest: %w", err)
	}
	if info.IsDir() {
		abs = filepath.Join(abs, manifest.Filename)
	}
	return abs, nil
}

// registryIndexFor reports the index URL that dependencies without an
// explicit source resolve against, honoring the configured override.
func registryIndexFor(cfg *config.Config) string {
	if idx := string(cfg.Registry.Index); idx != "" {
		return idx
	}
	return manifest.CratesIOIndex
}

// renderInterpretation prints a human-readable view of the interpretation.
// registryIndex names the index that default-registry dependencies come from.
func renderInterpretation(cmd *cobra.Command, interp *manifest.Interpretation, registryIndex string) {
	out := cmd.OutOrStdout()

	if v := interp.Virtual; v != nil {
		fmt.Fprintln(out, TitleStyle.Render("virtual manifest"))
		fmt.Fprintln(out, SubtitleStyle.Render("workspace root"))
		if members, ok := v.Workspace.Members(); ok {
			for _, m := range members {
				fmt.Fprintf(out, "  member %s\n", NameStyle.Render(m))
			}
		}
		return
	}

	m := interp.Manifest
	fmt.Fprintln(out, TitleStyle.Render(m.ID.Name)+" "+SubtitleStyle.Render(m.ID.Version.String()))
	if m.Metadata.Description != "" {
		fmt.Fprintln(out, SubtitleStyle.Render(m.Metadata.Description))
	}
	if usesDefaultRegistry(m) {
		fmt.Fprintln(out, SubtitleStyle.Render("registry "+registryIndex))
	}

	for _, t := range m.Targets {
		fmt.Fprintf(out, "  %-12s %s (%s)\n", t.Kind, NameStyle.Render(t.Name), t.SrcPath)
	}
	for _, d := range m.Dependencies {
		line := fmt.Sprintf("  %-12s %s %s", d.Kind, NameStyle.Render(d.Name), d.Req.String())
		if d.Platform != nil {
			line += SubtitleStyle.Render(" [" + d.Platform.String() + "]")
		}
		if d.Optional {
			line += SubtitleStyle.Render(" (optional)")
		}
		fmt.Fprintln(out, line)
	}
	for _, r := range m.Replace {
		fmt.Fprintf(out, "  %-12s %s\n", "replace", NameStyle.Render(r.Spec.String()))
	}
	if len(interp.NestedPaths) > 0 && verbose {
		for _, p := range interp.NestedPaths {
			fmt.Fprintln(out, VerboseStyle.Render("  nested path "+p))
		}
	}
}

// usesDefaultRegistry reports whether any dependency resolves from the
// default registry index.
func usesDefaultRegistry(m *manifest.Manifest) bool {
	for _, d := range m.Dependencies {
		if d.Source.IsDefaultRegistry() {
			return true
		}
	}
	return false
}

// printWarnings writes each interpretation warning to stderr.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("warning: ")+w)
	}
}

// newLogger builds the CLI logger, honoring the verbose flag.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "freighter",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
