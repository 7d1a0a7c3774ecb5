// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"strings"
	"testing"
)

func TestTargetsDuplicateNames(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	_, err := interpretAt(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[[bin]]
		name = "tool"
		path = "src/a.rs"

		[[bin]]
		name = "tool"
		path = "src/b.rs"
	`)
	if err == nil || !strings.Contains(err.Error(), "found duplicate binary name tool") {
		t.Errorf("Interpret() error = %v, want duplicate-name failure naming tool", err)
	}
}

func TestTargetsForbiddenBinaryName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	for _, name := range []string{"build", "deps", "examples", "native"} {
		_, err := interpretAt(t, root, `
			[package]
			name = "hello"
			version = "0.1.0"

			[[bin]]
			name = "`+name+`"
		`)
		if err == nil || !strings.Contains(err.Error(), "the binary target name `"+name+"` is forbidden") {
			t.Errorf("Interpret() with bin %q error = %v, want forbidden-name failure", name, err)
		}
	}
}

func TestTargetsLibraryNameRules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	_, err := interpretAt(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[lib]
		name = "my-lib"
	`)
	if err == nil || !strings.Contains(err.Error(), "library target names cannot contain hyphens") {
		t.Errorf("Interpret() error = %v, want hyphen rejection", err)
	}
}

func TestTargetsMissingBinName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	_, err := interpretAt(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[[bin]]
		path = "src/tool.rs"
	`)
	if err == nil || !strings.Contains(err.Error(), "binary target bin.name is required") {
		t.Errorf("Interpret() error = %v, want missing-name failure", err)
	}
}

func TestTargetsPluginProcMacroExclusive(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	_, err := interpretAt(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[lib]
		plugin = true
		proc-macro = true
	`)
	if err == nil || !strings.Contains(err.Error(), "cannot both be true") {
		t.Errorf("Interpret() error = %v, want exclusivity failure", err)
	}
}

func TestTargetsDuplicateSourcePathWarns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")
	writeSource(t, root, "src/shared.rs")

	m := mustInterpret(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[[bin]]
		name = "one"
		path = "src/shared.rs"

		[[example]]
		name = "two"
		path = "src/shared.rs"
	`).Manifest

	if !hasWarning(m.Warnings(), "file found to be present in multiple build targets") {
		t.Errorf("Warnings() = %v, want the shared-path warning", m.Warnings())
	}
}

func TestTargetsBinPathInference(t *testing.T) {
	t.Parallel()

	t.Run("single bin prefers the main entry", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSource(t, root, "src/main.rs")

		m := mustInterpret(t, root, `
			[package]
			name = "hello"
			version = "0.1.0"

			[[bin]]
			name = "tool"
		`).Manifest

		if len(m.Targets) != 1 || m.Targets[0].SrcPath != "src/main.rs" {
			t.Errorf("Targets = %+v, want one bin at src/main.rs", m.Targets)
		}
	})

	t.Run("single bin falls back to its stem file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSource(t, root, "src/tool.rs")

		m := mustInterpret(t, root, `
			[package]
			name = "hello"
			version = "0.1.0"

			[[bin]]
			name = "tool"
		`).Manifest

		if len(m.Targets) != 1 || m.Targets[0].SrcPath != "src/tool.rs" {
			t.Errorf("Targets = %+v, want one bin at src/tool.rs", m.Targets)
		}
	})

	t.Run("multiple bins live under the binaries directory", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSource(t, root, "src/bin/a.rs")
		writeSource(t, root, "src/bin/b.rs")

		m := mustInterpret(t, root, `
			[package]
			name = "hello"
			version = "0.1.0"

			[[bin]]
			name = "a"

			[[bin]]
			name = "b"
		`).Manifest

		paths := map[string]string{}
		for _, target := range m.Targets {
			paths[target.Name] = target.SrcPath
		}
		if paths["a"] != "src/bin/a.rs" || paths["b"] != "src/bin/b.rs" {
			t.Errorf("paths = %v", paths)
		}
	})
}

func TestTargetsLegacyTestAndBenchPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	m := mustInterpret(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[[test]]
		name = "test"

		[[bench]]
		name = "bench"

		[[test]]
		name = "integration"
	`).Manifest

	paths := map[string]string{}
	for _, target := range m.Targets {
		paths[target.Kind.String()+"/"+target.Name] = target.SrcPath
	}
	if paths["test/test"] != "src/test.rs" {
		t.Errorf("test named test at %q, want src/test.rs", paths["test/test"])
	}
	if paths["bench/bench"] != "src/bench.rs" {
		t.Errorf("bench named bench at %q, want src/bench.rs", paths["bench/bench"])
	}
	if paths["test/integration"] != "tests/integration.rs" {
		t.Errorf("test named integration at %q, want tests/integration.rs", paths["test/integration"])
	}
}

func TestTargetsCustomBuild(t *testing.T) {
	t.Parallel()

	findBuild := func(targets []Target) *Target {
		for i := range targets {
			if targets[i].IsCustomBuild() {
				return &targets[i]
			}
		}
		return nil
	}

	t.Run("probed from the conventional path", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSource(t, root, "src/lib.rs")
		writeSource(t, root, "build.rs")

		m := mustInterpret(t, root, `
			[package]
			name = "hello"
			version = "0.1.0"
		`).Manifest

		build := findBuild(m.Targets)
		if build == nil {
			t.Fatal("no custom-build target")
		}
		if build.Name != "build-script-build" || build.SrcPath != "build.rs" {
			t.Errorf("custom-build target = %+v", build)
		}
		if !build.ForHost {
			t.Error("ForHost = false, want true for the build script")
		}
	})

	t.Run("disabled by build = false", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSource(t, root, "src/lib.rs")
		writeSource(t, root, "build.rs")

		m := mustInterpret(t, root, `
			[package]
			name = "hello"
			version = "0.1.0"
			build = false
		`).Manifest

		if findBuild(m.Targets) != nil {
			t.Error("custom-build target present despite build = false")
		}
	})

	t.Run("explicit script path", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSource(t, root, "src/lib.rs")

		m := mustInterpret(t, root, `
			[package]
			name = "hello"
			version = "0.1.0"
			build = "scripts/gen.rs"
		`).Manifest

		build := findBuild(m.Targets)
		if build == nil {
			t.Fatal("no custom-build target")
		}
		if build.Name != "build-script-gen" || build.SrcPath != "scripts/gen.rs" {
			t.Errorf("custom-build target = %+v", build)
		}
	})
}

func TestTargetsFlagDefaults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")
	writeSource(t, root, "examples/demo.rs")
	writeSource(t, root, "benches/speed.rs")

	m := mustInterpret(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"
	`).Manifest

	byKind := map[TargetKind]Target{}
	for _, target := range m.Targets {
		byKind[target.Kind] = target
	}

	lib := byKind[TargetLib]
	if !lib.Tested || !lib.Documented || !lib.Doctested || !lib.Benched || !lib.Harness {
		t.Errorf("library flags = %+v", lib)
	}
	example := byKind[TargetExample]
	if example.Benched || example.Documented {
		t.Errorf("example flags = %+v", example)
	}
	bench := byKind[TargetBench]
	if bench.Tested || !bench.Benched {
		t.Errorf("bench flags = %+v", bench)
	}
}

func TestTargetsProcMacroRunsOnHost(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/lib.rs")

	m := mustInterpret(t, root, `
		[package]
		name = "hello"
		version = "0.1.0"

		[lib]
		proc-macro = true
	`).Manifest

	lib := m.Targets[0]
	if !lib.ForHost {
		t.Error("ForHost = false, want true for a proc-macro library")
	}
	if len(lib.LibKinds) != 1 || lib.LibKinds[0] != LibKindProcMacro {
		t.Errorf("LibKinds = %v, want [proc-macro]", lib.LibKinds)
	}
}
