// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"strings"
	"testing"
)

func TestProfileDefaults(t *testing.T) {
	t.Parallel()

	profiles := buildProfiles(nil)

	if profiles.Dev.OptLevel != "0" || profiles.Release.OptLevel != "3" {
		t.Errorf("dev/release opt levels = %s/%s, want 0/3",
			profiles.Dev.OptLevel, profiles.Release.OptLevel)
	}
	if profiles.Dev.DebugInfo == nil || *profiles.Dev.DebugInfo != 2 {
		t.Errorf("dev debug info = %v, want 2", profiles.Dev.DebugInfo)
	}
	if profiles.Release.DebugInfo != nil {
		t.Errorf("release debug info = %v, want none", profiles.Release.DebugInfo)
	}
	if !profiles.Dev.DebugAssertions || !profiles.Dev.OverflowChecks {
		t.Error("dev profile must enable debug assertions and overflow checks")
	}
	if !profiles.Test.Test || !profiles.Bench.Test {
		t.Error("test and bench profiles must carry the test marker")
	}
	if profiles.Bench.OptLevel != "3" {
		t.Errorf("bench opt level = %s, want the release default", profiles.Bench.OptLevel)
	}
	if !profiles.Doc.Doc || !profiles.Doctest.Doc || !profiles.Doctest.Test {
		t.Error("doc markers missing on doc and doctest profiles")
	}
	if !profiles.CustomBuild.RunCustomBuild || !profiles.Check.Check {
		t.Error("custom-build and check markers missing")
	}
}

func TestProfileOverrides(t *testing.T) {
	t.Parallel()

	lto := true
	units := uint32(4)
	overrides := &tomlProfiles{
		Dev: &tomlProfile{
			OptLevel:     &optLevel{Value: "s"},
			LTO:          &lto,
			CodegenUnits: &units,
			Debug:        &intOrBool{Bool: false},
		},
		Release: &tomlProfile{
			Debug: &intOrBool{IsInt: true, Int: 1},
		},
	}

	profiles := buildProfiles(overrides)

	if profiles.Dev.OptLevel != "s" {
		t.Errorf("dev opt level = %s, want s", profiles.Dev.OptLevel)
	}
	if !profiles.Dev.LTO {
		t.Error("dev LTO = false, want true")
	}
	if profiles.Dev.CodegenUnits == nil || *profiles.Dev.CodegenUnits != 4 {
		t.Errorf("dev codegen units = %v, want 4", profiles.Dev.CodegenUnits)
	}
	if profiles.Dev.DebugInfo != nil {
		t.Errorf("dev debug info = %v, want none after debug = false", profiles.Dev.DebugInfo)
	}
	if profiles.Release.DebugInfo == nil || *profiles.Release.DebugInfo != 1 {
		t.Errorf("release debug info = %v, want 1", profiles.Release.DebugInfo)
	}
	if profiles.TestDeps.OptLevel != "s" {
		t.Errorf("test-deps opt level = %s, want the dev override", profiles.TestDeps.OptLevel)
	}
	if profiles.BenchDeps.DebugInfo == nil || *profiles.BenchDeps.DebugInfo != 1 {
		t.Errorf("bench-deps debug info = %v, want the release override", profiles.BenchDeps.DebugInfo)
	}
}

func TestProfilePanicForcing(t *testing.T) {
	t.Parallel()

	abort := "abort"
	overrides := &tomlProfiles{
		Dev:     &tomlProfile{Panic: &abort},
		Release: &tomlProfile{Panic: &abort},
		Test:    &tomlProfile{Panic: &abort},
		Bench:   &tomlProfile{Panic: &abort},
	}

	profiles := buildProfiles(overrides)

	if profiles.Dev.Panic != "abort" || profiles.Release.Panic != "abort" {
		t.Errorf("dev/release panic = %s/%s, want abort",
			profiles.Dev.Panic, profiles.Release.Panic)
	}
	for name, p := range map[string]Profile{
		"test":       profiles.Test,
		"bench":      profiles.Bench,
		"test-deps":  profiles.TestDeps,
		"bench-deps": profiles.BenchDeps,
	} {
		if p.Panic != "" {
			t.Errorf("%s panic = %q, want the harness default", name, p.Panic)
		}
	}
}

func TestProfileInvalidOptLevel(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	_, err := interpretAt(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[profile.dev]
		opt-level = "x"
	`)
	if err == nil || !strings.Contains(err.Error(), "must be an integer, `z`, or `s`") {
		t.Errorf("Interpret() error = %v, want opt-level rejection", err)
	}
}

func TestProfileNegativeDebug(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	_, err := interpretAt(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[profile.dev]
		debug = -1
	`)
	if err == nil || !strings.Contains(err.Error(), "non-negative integer") {
		t.Errorf("Interpret() error = %v, want negative debug rejection", err)
	}
}

func TestProfileOptLevelLetters(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	m := mustInterpret(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[profile.release]
		opt-level = "z"

		[profile.dev]
		opt-level = 2
		debug = true
	`).Manifest

	if m.Profiles.Release.OptLevel != "z" {
		t.Errorf("release opt level = %s, want z", m.Profiles.Release.OptLevel)
	}
	if m.Profiles.Dev.OptLevel != "2" {
		t.Errorf("dev opt level = %s, want 2", m.Profiles.Dev.OptLevel)
	}
	if m.Profiles.Dev.DebugInfo == nil || *m.Profiles.Dev.DebugInfo != 2 {
		t.Errorf("dev debug info = %v, want 2 from debug = true", m.Profiles.Dev.DebugInfo)
	}
}
