// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/pelletier/go-toml/v2"
)

// tableHeaderLine matches a table header followed by more content on the
// same line, the one legacy syntax deviation still tolerated.
var tableHeaderLine = regexp.MustCompile(`(?m)^(\s*\[\[?[^][]+\]\]?)[ \t]+(\S.*)$`)

// parseTree parses manifest text into a generic key/value tree. Documents
// written before the newline-after-table-header rule was enforced get a
// lenient second pass and a deprecation warning instead of a failure.
func parseTree(data []byte, file string, warnings warningSink) (map[string]any, error) {
	tree := map[string]any{}
	err := toml.Unmarshal(data, &tree)
	if err == nil {
		return tree, nil
	}

	if tableHeaderLine.Match(data) {
		relaxed := tableHeaderLine.ReplaceAll(data, []byte("$1\n$2"))
		tree = map[string]any{}
		if lenientErr := toml.Unmarshal(relaxed, &tree); lenientErr == nil {
			warnings.AddWarning(fmt.Sprintf(
				"TOML file found which contains invalid syntax and will soon not parse at `%s`.\n\n"+
					"The TOML spec requires newlines after table definitions (e.g., `[a] b = 1` is "+
					"invalid), but this file has a table header which does not have a newline after "+
					"it. A newline needs to be added and this warning will soon become a hard error "+
					"in the future.",
				file))
			return tree, nil
		}
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return nil, fmt.Errorf("could not parse input as TOML: %s at line %d column %d",
			decodeErr.Error(), row, col)
	}
	return nil, fmt.Errorf("could not parse input as TOML: %w", err)
}
