// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// decodeDocument maps the generic key/value tree onto the intermediate
// model. Unknown keys are collected as dotted paths rather than rejected;
// they become non-fatal warnings after a successful interpretation. The
// reserved package.metadata subtree is consumed wholesale and therefore
// never appears among the unused keys.
func decodeDocument(tree map[string]any) (*tomlManifest, []string, error) {
	var doc tomlManifest
	var md mapstructure.Metadata

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &doc,
		Metadata: &md,
		TagName:  "toml",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			dependencyShorthandHook,
			optLevelHook,
			intOrBoolHook,
			stringOrBoolHook,
		),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("internal error: building manifest decoder: %w", err)
	}

	if err := dec.Decode(tree); err != nil {
		return nil, nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	unused := make([]string, 0, len(md.Unused))
	for _, key := range md.Unused {
		unused = append(unused, normalizeKeyPath(key))
	}
	sort.Strings(unused)

	return &doc, unused, nil
}

// normalizeKeyPath rewrites mapstructure's bracketed map-element paths
// ("target[cfg(unix)].foo") into the dotted form keys are written in the
// document.
func normalizeKeyPath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '[':
			b.WriteByte('.')
		case ']':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var (
	dependencyType   = reflect.TypeOf(tomlDependency{})
	optLevelType     = reflect.TypeOf(optLevel{})
	intOrBoolType    = reflect.TypeOf(intOrBool{})
	stringOrBoolType = reflect.TypeOf(stringOrBool{})
)

// dependencyShorthandHook normalizes the bare version-requirement string
// form of a dependency declaration ("0.9.8") into the detailed table form
// ({version = "0.9.8"}) before struct decoding.
func dependencyShorthandHook(from, to reflect.Type, data any) (any, error) {
	if to != dependencyType || from.Kind() != reflect.String {
		return data, nil
	}
	return map[string]any{"version": data}, nil
}

// optLevelHook accepts an integer or the letters "s"/"z" for an
// optimization level.
func optLevelHook(from, to reflect.Type, data any) (any, error) {
	if to != optLevelType {
		return data, nil
	}
	switch v := data.(type) {
	case int64:
		return optLevel{Value: strconv.FormatInt(v, 10)}, nil
	case int:
		return optLevel{Value: strconv.Itoa(v)}, nil
	case string:
		if v == "s" || v == "z" {
			return optLevel{Value: v}, nil
		}
		return nil, fmt.Errorf("must be an integer, `z`, or `s`, but found: %s", v)
	default:
		return nil, fmt.Errorf("must be an integer, `z`, or `s`, but found: %v", data)
	}
}

// intOrBoolHook accepts an integer or a boolean.
func intOrBoolHook(from, to reflect.Type, data any) (any, error) {
	if to != intOrBoolType {
		return data, nil
	}
	switch v := data.(type) {
	case int64:
		if v < 0 {
			return nil, fmt.Errorf("expected a boolean or a non-negative integer, found: %d", v)
		}
		return intOrBool{IsInt: true, Int: v}, nil
	case int:
		if v < 0 {
			return nil, fmt.Errorf("expected a boolean or a non-negative integer, found: %d", v)
		}
		return intOrBool{IsInt: true, Int: int64(v)}, nil
	case bool:
		return intOrBool{Bool: v}, nil
	default:
		return nil, fmt.Errorf("expected a boolean or an integer, found: %v", data)
	}
}

// stringOrBoolHook accepts a string or a boolean.
func stringOrBoolHook(from, to reflect.Type, data any) (any, error) {
	if to != stringOrBoolType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return stringOrBool{IsString: true, String: v}, nil
	case bool:
		return stringOrBool{Bool: v}, nil
	default:
		return nil, fmt.Errorf("expected a boolean or a string, found: %v", data)
	}
}
