// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"freighter/internal/issue"
	"freighter/pkg/manifest"

	"github.com/spf13/cobra"
)

// newCheckCommand creates the `freighter check` command.
func newCheckCommand() *cobra.Command {
	var denyWarnings bool

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Interpret a package manifest and report every warning",
		Long: `Interpret a package manifest and report every warning it produces.

The command exits non-zero when the manifest is invalid. With
--deny-warnings (or warnings.deny in the configuration) warnings are
treated as errors too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd.Context())
			deny := denyWarnings || cfg.Warnings.Deny

			path, err := resolveManifestPath(args)
			if err != nil {
				return err
			}

			interp, err := manifest.InterpretFile(path, manifest.PathSource(filepath.Dir(path)))
			if err != nil {
				return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "interpret manifest", path)}
			}

			warnings := interp.Warnings()
			printWarnings(warnings)
			if deny && len(warnings) > 0 {
				return &ExitError{
					Code: 1,
					Err:  fmt.Errorf("manifest produced %d warning(s) and warnings are denied", len(warnings)),
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("ok: ")+describeOutcome(interp, len(warnings)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&denyWarnings, "deny-warnings", false, "treat warnings as errors")
	return cmd
}

// describeOutcome summarizes what was interpreted, for the success line.
func describeOutcome(interp *manifest.Interpretation, warningCount int) string {
	subject := "virtual manifest"
	if m := interp.Manifest; m != nil {
		subject = m.ID.String()
	}
	if warningCount == 0 {
		return subject
	}
	return fmt.Sprintf("%s (%d warning(s))", subject, warningCount)
}
