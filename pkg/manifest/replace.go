// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode"

	"freighter/pkg/version"
)

// sortedKeys returns the map's keys in lexical order so that table
// iteration is deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// PackageIDSpec designates one package to be replaced, by name, optional
// exact version, and optional source URL. The textual forms are
// `name`, `name:1.2.3`, and a URL with an optional `#name` or
// `#name:1.2.3` fragment.
type PackageIDSpec struct {
	Name    string
	Version *version.Version
	URL     string
}

// Replacement pairs a package spec with the dependency that stands in
// for it.
type Replacement struct {
	Spec PackageIDSpec
	Dep  Dependency
}

// ParsePackageIDSpec parses the textual package-spec form.
func ParsePackageIDSpec(spec string) (PackageIDSpec, error) {
	if strings.Contains(spec, "://") {
		return specFromURL(spec)
	}

	name, ver, hasVersion := strings.Cut(spec, ":")
	parsed := PackageIDSpec{Name: name}
	if hasVersion {
		v, err := version.Parse(ver)
		if err != nil {
			return PackageIDSpec{}, err
		}
		parsed.Version = &v
	}
	for _, ch := range name {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '_' && ch != '-' {
			return PackageIDSpec{}, fmt.Errorf(
				"invalid character in pkgid `%s`: `%c`", spec, ch)
		}
	}
	return parsed, nil
}

// specFromURL parses the URL spec form. The fragment, when present,
// holds either a name, a name:version pair, or a bare version attached
// to the name implied by the URL's last path segment.
func specFromURL(spec string) (PackageIDSpec, error) {
	u, err := url.Parse(spec)
	if err != nil {
		return PackageIDSpec{}, fmt.Errorf("invalid url `%s`: %w", spec, err)
	}

	frag := u.Fragment
	u.Fragment = ""

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	name := segments[len(segments)-1]

	parsed := PackageIDSpec{Name: name, URL: u.String()}
	if frag == "" {
		return parsed, nil
	}

	if fragName, ver, hasVersion := strings.Cut(frag, ":"); hasVersion {
		v, err := version.Parse(ver)
		if err != nil {
			return PackageIDSpec{}, err
		}
		parsed.Name = fragName
		parsed.Version = &v
	} else if len(frag) > 0 && unicode.IsDigit(rune(frag[0])) {
		v, err := version.Parse(frag)
		if err != nil {
			return PackageIDSpec{}, err
		}
		parsed.Version = &v
	} else {
		parsed.Name = frag
	}
	return parsed, nil
}

// String renders the spec back to its textual form.
func (s PackageIDSpec) String() string {
	if s.URL == "" {
		if s.Version != nil {
			return s.Name + ":" + s.Version.String()
		}
		return s.Name
	}
	out := s.URL + "#" + s.Name
	if s.Version != nil {
		out += ":" + s.Version.String()
	}
	return out
}

// buildReplacements resolves the document's replacement table. Each spec
// without a source defaults to the default registry; the replacement
// itself must not carry a version requirement, and the spec must pin the
// exact version being replaced, which becomes an exact requirement on
// the replacement dependency.
func buildReplacements(entries map[string]tomlDependency, cx depContext) ([]Replacement, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	keys := sortedKeys(entries)
	replacements := make([]Replacement, 0, len(entries))
	for _, key := range keys {
		spec, err := ParsePackageIDSpec(key)
		if err != nil {
			return nil, fmt.Errorf("replacements must specify a valid semver version to replace, "+
				"but `%s` does not: %w", key, err)
		}
		if spec.URL == "" {
			spec.URL = CratesIOIndex
		}

		decl := entries[key]
		if decl.Version != nil {
			return nil, fmt.Errorf(
				"replacements cannot specify a version requirement, but found one for `%s`", spec)
		}
		if spec.Version == nil {
			return nil, fmt.Errorf(
				"replacements must specify a version to replace, but `%s` does not", spec)
		}

		dep, err := decl.toDependency(spec.Name, cx)
		if err != nil {
			return nil, err
		}
		dep.Req = version.Exact(*spec.Version)
		replacements = append(replacements, Replacement{Spec: spec, Dep: dep})
	}
	return replacements, nil
}
