// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// CratesIOIndex is the default registry used when a dependency names
// neither a path nor a git repository and no registry override is given.
const CratesIOIndex = "https://github.com/rust-lang/crates.io-index"

// ErrInvalidGitURL is the sentinel error wrapped by git URL parse failures.
var ErrInvalidGitURL = errors.New("invalid git url")

// SourceKind discriminates the closed SourceID variant.
type SourceKind int

const (
	// SourceRegistry identifies a package registry index.
	SourceRegistry SourceKind = iota
	// SourcePath identifies a local filesystem directory.
	SourcePath
	// SourceGit identifies a git repository at a reference.
	SourceGit
)

// GitRefKind discriminates the closed GitReference variant.
type GitRefKind int

const (
	// GitBranch names a branch.
	GitBranch GitRefKind = iota
	// GitTag names a tag.
	GitTag
	// GitRev names a specific revision.
	GitRev
)

type (
	// GitReference selects what to check out of a git repository. The zero
	// value is not meaningful; use DefaultGitReference for the default
	// branch.
	GitReference struct {
		Kind  GitRefKind
		Value string
	}

	// SourceID canonically identifies where a dependency's code comes from.
	// Two declarations that denote the same physical source always compare
	// equal (the struct is comparable and all fields are canonicalized on
	// construction) because downstream build caching keys on this value.
	SourceID struct {
		kind SourceKind
		// url is the registry index URL, the canonicalized git URL, or the
		// normalized filesystem path depending on kind.
		url string
		ref GitReference
	}
)

// DefaultGitReference is the reference used when a git source names none of
// branch, tag or rev.
func DefaultGitReference() GitReference {
	return GitReference{Kind: GitBranch, Value: "master"}
}

// RegistrySource returns the SourceID for a registry index URL. An empty
// URL means the default registry.
func RegistrySource(indexURL string) SourceID {
	if indexURL == "" {
		indexURL = CratesIOIndex
	}
	return SourceID{kind: SourceRegistry, url: indexURL}
}

// PathSource returns the SourceID for a local directory. The path is
// lexically normalized so that different spellings of one directory
// canonicalize to an equal SourceID.
func PathSource(path string) SourceID {
	return SourceID{kind: SourcePath, url: normalizePath(path)}
}

// GitSource returns the SourceID for a git repository URL at a reference.
// The URL is canonicalized; a malformed URL is a hard error.
func GitSource(rawURL string, ref GitReference) (SourceID, error) {
	canonical, err := canonicalGitURL(rawURL)
	if err != nil {
		return SourceID{}, err
	}
	return SourceID{kind: SourceGit, url: canonical, ref: ref}, nil
}

// Kind returns the variant discriminator.
func (s SourceID) Kind() SourceKind {
	return s.kind
}

// IsPath reports whether the source is a local directory.
func (s SourceID) IsPath() bool {
	return s.kind == SourcePath
}

// URL returns the canonical index URL, git URL or filesystem path.
func (s SourceID) URL() string {
	return s.url
}

// GitRef returns the git reference; only meaningful for git sources.
func (s SourceID) GitRef() GitReference {
	return s.ref
}

// IsDefaultRegistry reports whether the source is the default registry.
func (s SourceID) IsDefaultRegistry() bool {
	return s.kind == SourceRegistry && s.url == CratesIOIndex
}

// String renders the source for error messages and debug output.
func (s SourceID) String() string {
	switch s.kind {
	case SourcePath:
		return "path+" + s.url
	case SourceGit:
		return fmt.Sprintf("git+%s?%s", s.url, s.ref)
	default:
		return "registry+" + s.url
	}
}

// String renders the reference in query form.
func (r GitReference) String() string {
	switch r.Kind {
	case GitTag:
		return "tag=" + r.Value
	case GitRev:
		return "rev=" + r.Value
	default:
		return "branch=" + r.Value
	}
}

// canonicalGitURL validates and normalizes a git repository URL so that
// trivially different spellings of one repository compare equal: the
// trailing slash and ".git" suffix are dropped, the scheme and host are
// lowercased, and GitHub repository paths are case-folded (GitHub treats
// them case-insensitively).
func canonicalGitURL(raw string) (string, error) {
	trimmed := strings.TrimPrefix(raw, "git+")

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidGitURL, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %s: relative URL without a base", ErrInvalidGitURL, raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.Path = strings.TrimSuffix(u.Path, ".git")
	if u.Host == "github.com" {
		u.Path = strings.ToLower(u.Path)
	}
	u.Fragment = ""

	return u.String(), nil
}

// normalizePath resolves "." and ".." components lexically and converts to
// slash form. Symlinks are deliberately not resolved: the normalization
// must be a pure function of the spelling so that interpretation never
// depends on filesystem state beyond the layout probe.
func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
}
