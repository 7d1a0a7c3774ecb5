// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"freighter/internal/config"
	"freighter/internal/issue"
	"freighter/pkg/manifest"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newReadmeCommand creates the `freighter readme` command.
func newReadmeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "readme [path]",
		Short: "Render the readme declared by a package manifest",
		Long: `Render the readme file declared by a package manifest.

The manifest's package.readme key names the file to render. The output
style follows ui.color_scheme from the configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd.Context())

			path, err := resolveManifestPath(args)
			if err != nil {
				return err
			}

			interp, err := manifest.InterpretFile(path, manifest.PathSource(filepath.Dir(path)))
			if err != nil {
				return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "interpret manifest", path)}
			}
			if interp.Manifest == nil {
				return fmt.Errorf("virtual manifests do not declare a readme")
			}

			readme := interp.Manifest.Metadata.Readme
			if readme == "" {
				return issue.NewErrorContext().
					WithOperation("locate readme").
					WithResource(path).
					WithSuggestion("Add a readme key to the [package] section").
					Build()
			}

			readmePath := filepath.Join(filepath.Dir(path), filepath.FromSlash(readme))
			content, err := os.ReadFile(readmePath)
			if err != nil {
				return issue.WrapWithContext(err, "read readme", readmePath)
			}

			rendered, err := renderMarkdown(string(content), cfg.UI.ColorScheme)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", readmePath, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}

// renderMarkdown renders markdown for the terminal using the configured scheme.
func renderMarkdown(md string, scheme config.ColorScheme) (string, error) {
	switch scheme {
	case config.ColorSchemeDark:
		return glamour.Render(md, "dark")
	case config.ColorSchemeLight:
		return glamour.Render(md, "light")
	default:
		return glamour.RenderWithEnvironmentConfig(md)
	}
}
