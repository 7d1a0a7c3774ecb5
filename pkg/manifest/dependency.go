// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"freighter/pkg/platform"
	"freighter/pkg/version"
)

// DepKind classifies which dependency table a declaration came from.
type DepKind int

const (
	// DepNormal is a regular [dependencies] entry.
	DepNormal DepKind = iota
	// DepDevelopment is a [dev-dependencies] entry, only needed for tests,
	// examples and benchmarks.
	DepDevelopment
	// DepBuild is a [build-dependencies] entry, only needed by the build
	// script.
	DepBuild
)

// String returns the table name for the kind.
func (k DepKind) String() string {
	switch k {
	case DepDevelopment:
		return "dev-dependencies"
	case DepBuild:
		return "build-dependencies"
	default:
		return "dependencies"
	}
}

// Dependency is one canonical dependency record: a package name bound to a
// version requirement and an exactly-resolved source identity, plus the
// feature and kind flags from the declaration.
type Dependency struct {
	Name            string
	Req             version.Req
	Source          SourceID
	Features        []string
	DefaultFeatures bool
	Optional        bool
	Kind            DepKind
	// Platform restricts the dependency to targets matching the predicate;
	// nil means the dependency always applies.
	Platform *platform.Predicate
}
