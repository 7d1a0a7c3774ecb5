// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"

	"freighter/pkg/version"
)

type (
	// PackageID is the identity of the package being interpreted: a
	// non-blank name, a full semantic version and the source it comes from.
	// It is computed once per interpretation pass and never mutated.
	PackageID struct {
		Name    string
		Version version.Version
		Source  SourceID
	}

	// Metadata is the user-facing package metadata carried on the manifest
	// for registry publication and documentation. None of it affects the
	// build.
	Metadata struct {
		Description   string
		Homepage      string
		Documentation string
		Readme        string
		Authors       []string
		License       string
		LicenseFile   string
		Repository    string
		Keywords      []string
		Categories    []string
		Badges        map[string]map[string]string
	}

	// Manifest is the canonical, validated package description. It is
	// constructed once per interpretation call; afterwards only warnings
	// may be appended.
	Manifest struct {
		ID           PackageID
		Targets      []Target
		Dependencies []Dependency
		Features     map[string][]string
		Exclude      []string
		Include      []string
		Links        string
		Metadata     Metadata
		Profiles     Profiles
		Publish      bool
		Replace      []Replacement
		Workspace    WorkspaceConfig

		warnings []string
	}

	// VirtualManifest is the workspace-root-only description produced when
	// the document has no package section. It carries no build targets.
	VirtualManifest struct {
		Replace   []Replacement
		Workspace WorkspaceConfig
		Profiles  Profiles

		warnings []string
	}

	// Interpretation is the outcome of one successful interpretation call.
	// Exactly one of Manifest and Virtual is non-nil. NestedPaths lists the
	// raw path strings of path dependencies, in declaration processing
	// order, for the caller to interpret recursively out of band.
	Interpretation struct {
		Manifest    *Manifest
		Virtual     *VirtualManifest
		NestedPaths []string
	}
)

// AddWarning appends a non-fatal warning to the manifest.
func (m *Manifest) AddWarning(msg string) {
	m.warnings = append(m.warnings, msg)
}

// Warnings returns the accumulated non-fatal warnings in the order they
// were discovered.
func (m *Manifest) Warnings() []string {
	return m.warnings
}

// AddWarning appends a non-fatal warning to the virtual manifest.
func (m *VirtualManifest) AddWarning(msg string) {
	m.warnings = append(m.warnings, msg)
}

// Warnings returns the accumulated non-fatal warnings.
func (m *VirtualManifest) Warnings() []string {
	return m.warnings
}

// Warnings returns the warnings of whichever manifest form was produced.
func (i *Interpretation) Warnings() []string {
	if i.Manifest != nil {
		return i.Manifest.Warnings()
	}
	if i.Virtual != nil {
		return i.Virtual.Warnings()
	}
	return nil
}

// String renders the identity as name, version and source.
func (id PackageID) String() string {
	return fmt.Sprintf("%s v%s (%s)", id.Name, id.Version, id.Source)
}
