// SPDX-License-Identifier: MPL-2.0

package manifest

// Profile is one named set of build-quality knobs. The test, doc,
// run-custom-build and check markers are fixed per profile and cannot be
// overridden from the manifest.
type Profile struct {
	OptLevel     string
	LTO          bool
	CodegenUnits *uint32
	RustcArgs    []string
	RustdocArgs  []string
	// DebugInfo is the debug info level; nil means none.
	DebugInfo       *uint32
	DebugAssertions bool
	OverflowChecks  bool
	RPath           bool
	Test            bool
	Doc             bool
	RunCustomBuild  bool
	Check           bool
	// Panic is the panic strategy; empty means the compiler default
	// (unwind).
	Panic string
}

// Profiles is the full set of named profiles, each seeded from its
// compiled-in default and overridden field-by-field from the manifest's
// [profile] section.
type Profiles struct {
	Dev         Profile
	Release     Profile
	Test        Profile
	TestDeps    Profile
	Bench       Profile
	BenchDeps   Profile
	Doc         Profile
	CustomBuild Profile
	Check       Profile
	Doctest     Profile
}

// defaultDebugLevel is the debug info level meant by `debug = true`.
const defaultDebugLevel uint32 = 2

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func defaultDevProfile() Profile {
	return Profile{
		OptLevel:        "0",
		DebugInfo:       uint32Ptr(defaultDebugLevel),
		DebugAssertions: true,
		OverflowChecks:  true,
	}
}

func defaultReleaseProfile() Profile {
	return Profile{OptLevel: "3"}
}

func defaultTestProfile() Profile {
	p := defaultDevProfile()
	p.Test = true
	return p
}

func defaultBenchProfile() Profile {
	p := defaultReleaseProfile()
	p.Test = true
	return p
}

func defaultDocProfile() Profile {
	p := defaultDevProfile()
	p.Doc = true
	return p
}

func defaultCustomBuildProfile() Profile {
	p := defaultDevProfile()
	p.RunCustomBuild = true
	return p
}

func defaultCheckProfile() Profile {
	p := defaultDevProfile()
	p.Check = true
	return p
}

func defaultDoctestProfile() Profile {
	p := defaultDevProfile()
	p.Test = true
	p.Doc = true
	return p
}

// buildProfiles merges the optional [profile] overrides over the
// compiled-in defaults. It never fails: every override field replaces its
// default independently, and absent overrides leave the default untouched.
// Dependency-side profiles (test-deps, bench-deps) take the dev and release
// overrides respectively; check follows dev; custom-build and doctest take
// no overrides at all.
func buildProfiles(overrides *tomlProfiles) Profiles {
	var test, doc, bench, dev, release *tomlProfile
	if overrides != nil {
		test, doc, bench = overrides.Test, overrides.Doc, overrides.Bench
		dev, release = overrides.Dev, overrides.Release
	}

	profiles := Profiles{
		Release:     mergeProfile(defaultReleaseProfile(), release),
		Dev:         mergeProfile(defaultDevProfile(), dev),
		Test:        mergeProfile(defaultTestProfile(), test),
		TestDeps:    mergeProfile(defaultDevProfile(), dev),
		Bench:       mergeProfile(defaultBenchProfile(), bench),
		BenchDeps:   mergeProfile(defaultReleaseProfile(), release),
		Doc:         mergeProfile(defaultDocProfile(), doc),
		CustomBuild: defaultCustomBuildProfile(),
		Check:       mergeProfile(defaultCheckProfile(), dev),
		Doctest:     defaultDoctestProfile(),
	}

	// Test and bench targets are compiled in harness mode, which requires
	// the unwind runtime; a user panic strategy cannot apply to them.
	profiles.Test.Panic = ""
	profiles.Bench.Panic = ""
	profiles.TestDeps.Panic = ""
	profiles.BenchDeps.Panic = ""

	return profiles
}

func mergeProfile(profile Profile, overrides *tomlProfile) Profile {
	if overrides == nil {
		return profile
	}

	if overrides.OptLevel != nil {
		profile.OptLevel = overrides.OptLevel.Value
	}
	if overrides.LTO != nil {
		profile.LTO = *overrides.LTO
	}
	profile.CodegenUnits = overrides.CodegenUnits
	if overrides.Debug != nil {
		switch {
		case overrides.Debug.IsInt:
			profile.DebugInfo = uint32Ptr(uint32(overrides.Debug.Int))
		case overrides.Debug.Bool:
			profile.DebugInfo = uint32Ptr(defaultDebugLevel)
		default:
			profile.DebugInfo = nil
		}
	}
	if overrides.DebugAssertions != nil {
		profile.DebugAssertions = *overrides.DebugAssertions
	}
	if overrides.OverflowChecks != nil {
		profile.OverflowChecks = *overrides.OverflowChecks
	}
	if overrides.RPath != nil {
		profile.RPath = *overrides.RPath
	}
	if overrides.Panic != nil {
		profile.Panic = *overrides.Panic
	}
	return profile
}
