// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"path/filepath"

	"freighter/pkg/platform"
	"freighter/pkg/version"
)

// warningSink collects non-fatal interpretation diagnostics.
type warningSink interface {
	AddWarning(msg string)
}

// depContext carries the ambient state one dependency declaration is
// resolved against.
type depContext struct {
	// source is the owning package's identity, nil for a virtual
	// manifest.
	source *SourceID
	// root is the absolute package root directory.
	root string
	// platform scopes the dependency to a build target, nil for the
	// default tables.
	platform *platform.Predicate
	kind     DepKind
	warnings warningSink
	// nestedPaths accumulates raw path-dependency strings for the caller
	// to interpret recursively.
	nestedPaths *[]string
}

// toDependency resolves one declaration into a canonical dependency
// record bound to a canonical source identity.
func (d *tomlDependency) toDependency(name string, cx depContext) (Dependency, error) {
	if d.Version == nil && d.Path == nil && d.Git == nil {
		cx.warnings.AddWarning(fmt.Sprintf(
			"dependency (%s) specified without providing a local path, Git repository, or version "+
				"to use. This will be considered an error when this functionality is stabilized.",
			name))
	}

	if d.Git == nil {
		gitOnly := []struct {
			key   string
			value *string
		}{
			{"branch", d.Branch},
			{"tag", d.Tag},
			{"rev", d.Rev},
		}
		for _, field := range gitOnly {
			if field.value != nil {
				cx.warnings.AddWarning(fmt.Sprintf(
					"key `%s` is ignored for dependency (%s). This will be considered an error "+
						"when this functionality is stabilized.",
					field.key, name))
			}
		}
	}

	source, err := d.sourceID(name, cx)
	if err != nil {
		return Dependency{}, err
	}

	req := version.Any()
	if d.Version != nil {
		req, err = version.ParseReq(*d.Version)
		if err != nil {
			return Dependency{}, fmt.Errorf(
				"dependency (%s) has an invalid version requirement: %w", name, err)
		}
	}

	defaultFeatures := d.defaultFeatures()
	return Dependency{
		Name:            name,
		Req:             req,
		Source:          source,
		Features:        d.Features,
		DefaultFeatures: defaultFeatures == nil || *defaultFeatures,
		Optional:        d.Optional != nil && *d.Optional,
		Kind:            cx.kind,
		Platform:        cx.platform,
	}, nil
}

func (d *tomlDependency) sourceID(name string, cx depContext) (SourceID, error) {
	switch {
	case d.Git != nil:
		if d.Path != nil {
			cx.warnings.AddWarning(fmt.Sprintf(
				"dependency (%s) specification is ambiguous. Only one of `git` or `path` is "+
					"allowed. This will be considered an error when this functionality is "+
					"stabilized.",
				name))
		}

		refs := 0
		for _, r := range []*string{d.Branch, d.Tag, d.Rev} {
			if r != nil {
				refs++
			}
		}
		if refs > 1 {
			cx.warnings.AddWarning(fmt.Sprintf(
				"dependency (%s) specification is ambiguous. Only one of `branch`, `tag` or "+
					"`rev` is allowed. This will be considered an error when this functionality "+
					"is stabilized.",
				name))
		}

		ref := DefaultGitReference()
		switch {
		case d.Branch != nil:
			ref = GitReference{Kind: GitBranch, Value: *d.Branch}
		case d.Tag != nil:
			ref = GitReference{Kind: GitTag, Value: *d.Tag}
		case d.Rev != nil:
			ref = GitReference{Kind: GitRev, Value: *d.Rev}
		}

		source, err := GitSource(*d.Git, ref)
		if err != nil {
			return SourceID{}, fmt.Errorf("dependency (%s) has an invalid git URL: %w", name, err)
		}
		return source, nil

	case d.Path != nil:
		*cx.nestedPaths = append(*cx.nestedPaths, *d.Path)

		// A path dependency of a local package resolves against the
		// filesystem so equivalent spellings of one directory map to one
		// identity. Inside any other source kind the owning identity is
		// inherited verbatim.
		if cx.source == nil || cx.source.IsPath() {
			abs := filepath.FromSlash(*d.Path)
			if !filepath.IsAbs(abs) {
				abs = filepath.Join(cx.root, abs)
			}
			return PathSource(abs), nil
		}
		return *cx.source, nil

	default:
		return RegistrySource(""), nil
	}
}
