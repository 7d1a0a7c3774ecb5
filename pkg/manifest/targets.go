// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"freighter/internal/layout"
)

// TargetKind classifies one compilable unit.
type TargetKind int

const (
	// TargetLib is the package's library.
	TargetLib TargetKind = iota
	// TargetBin is an executable.
	TargetBin
	// TargetExample is an example program.
	TargetExample
	// TargetTest is an integration test.
	TargetTest
	// TargetBench is a benchmark.
	TargetBench
	// TargetCustomBuild is the build script.
	TargetCustomBuild
)

// String returns the kind's name as used in diagnostics.
func (k TargetKind) String() string {
	switch k {
	case TargetLib:
		return "lib"
	case TargetBin:
		return "bin"
	case TargetExample:
		return "example"
	case TargetTest:
		return "test"
	case TargetBench:
		return "bench"
	default:
		return "custom-build"
	}
}

// LibKind is one library output kind.
type LibKind string

const (
	// LibKindLib is the default library output.
	LibKindLib LibKind = "lib"
	// LibKindDylib is a dynamic library.
	LibKindDylib LibKind = "dylib"
	// LibKindProcMacro is a procedural macro library, compiled for and
	// loaded by the host compiler.
	LibKindProcMacro LibKind = "proc-macro"
)

// Target is one build target with its resolved source path, output kinds
// and per-target flags.
type Target struct {
	Kind    TargetKind
	Name    string
	SrcPath string
	// LibKinds is the output kind list for libraries and examples.
	LibKinds         []LibKind
	RequiredFeatures []string

	Tested     bool
	Documented bool
	Doctested  bool
	Benched    bool
	Harness    bool
	// ForHost marks targets compiled for the host rather than the build
	// target (plugins, procedural macros, build scripts).
	ForHost bool
}

// IsCustomBuild reports whether the target is the build script.
func (t Target) IsCustomBuild() bool {
	return t.Kind == TargetCustomBuild
}

// blankTarget carries the flag defaults shared by all kinds before
// kind-specific adjustment.
func blankTarget(kind TargetKind, name, srcPath string) Target {
	return Target{
		Kind:    kind,
		Name:    name,
		SrcPath: srcPath,
		Tested:  true,
		Benched: true,
		Harness: true,
	}
}

func libTarget(name string, kinds []LibKind, srcPath string) Target {
	t := blankTarget(TargetLib, name, srcPath)
	t.LibKinds = kinds
	t.Documented = true
	t.Doctested = true
	return t
}

func binTarget(name, srcPath string, requiredFeatures []string) Target {
	t := blankTarget(TargetBin, name, srcPath)
	t.RequiredFeatures = requiredFeatures
	t.Documented = true
	return t
}

func exampleTarget(name string, kinds []LibKind, srcPath string, requiredFeatures []string) Target {
	t := blankTarget(TargetExample, name, srcPath)
	t.LibKinds = kinds
	t.RequiredFeatures = requiredFeatures
	t.Benched = false
	return t
}

func testTarget(name, srcPath string, requiredFeatures []string) Target {
	t := blankTarget(TargetTest, name, srcPath)
	t.RequiredFeatures = requiredFeatures
	t.Benched = false
	return t
}

func benchTarget(name, srcPath string, requiredFeatures []string) Target {
	t := blankTarget(TargetBench, name, srcPath)
	t.RequiredFeatures = requiredFeatures
	t.Tested = false
	return t
}

func customBuildTarget(name, srcPath string) Target {
	t := blankTarget(TargetCustomBuild, name, srcPath)
	t.Tested = false
	t.Benched = false
	t.ForHost = true
	return t
}

// binNameBlocklist holds binary names that collide with reserved output
// directory names.
var binNameBlocklist = []string{"build", "deps", "examples", "native"}

// name returns the declared target name, empty when absent.
func (t *tomlTarget) name() string {
	if t.Name == nil {
		return ""
	}
	return *t.Name
}

func (t *tomlTarget) validateLibraryName() error {
	if t.Name == nil {
		return nil
	}
	name := *t.Name
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("library target names cannot be empty")
	}
	if strings.Contains(name, "-") {
		return fmt.Errorf("library target names cannot contain hyphens: %s", name)
	}
	return nil
}

func (t *tomlTarget) validateTargetName(human, key string) error {
	if t.Name == nil {
		return fmt.Errorf("%s target %s.name is required", human, key)
	}
	if strings.TrimSpace(*t.Name) == "" {
		return fmt.Errorf("%s target names cannot be empty", human)
	}
	return nil
}

// validateCrateTypes rejects the plugin/proc-macro combination: a
// procedural macro crate may only export its macro entry points, while a
// plugin must export a registrar, so one crate cannot be both.
func (t *tomlTarget) validateCrateTypes() error {
	if boolValue(t.Plugin) && boolValue(t.procMacro()) {
		return fmt.Errorf("lib.plugin and lib.proc-macro cannot both be true")
	}
	return nil
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

// uniqueNamesInTargets returns the first duplicated name in the list, if
// any.
func uniqueNamesInTargets(targets []tomlTarget) (string, bool) {
	seen := make(map[string]bool, len(targets))
	for i := range targets {
		name := targets[i].name()
		if seen[name] {
			return name, false
		}
		seen[name] = true
	}
	return "", true
}

// uniqueBuildTargets returns the first source path shared by two resolved
// targets, if any, with paths compared under the package root.
func uniqueBuildTargets(targets []Target, root string) (string, bool) {
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		path := filepath.Join(root, filepath.FromSlash(t.SrcPath))
		if seen[path] {
			return path, false
		}
		seen[path] = true
	}
	return "", true
}

// inferredLibTarget synthesizes a [lib] section from the prober's library
// entry, named after the package.
func inferredLibTarget(name string, lay *layout.Layout) *tomlTarget {
	if !lay.HasLib() {
		return nil
	}
	lib := lay.Lib
	return &tomlTarget{Name: &name, Path: &lib}
}

// inferredBinTargets synthesizes [[bin]] sections from the prober's
// executable entries: the conventional main entry is named after the
// package, every other entry after its file stem.
func inferredBinTargets(name string, lay *layout.Layout) []tomlTarget {
	var bins []tomlTarget
	for _, bin := range lay.Bins {
		binName := layout.Stem(bin)
		if bin == layout.MainEntry {
			binName = name
		}
		path := bin
		bins = append(bins, tomlTarget{Name: &binName, Path: &path})
	}
	return bins
}

// inferredTargetsFrom synthesizes target sections from one prober list,
// named by file stem.
func inferredTargetsFrom(paths []string) []tomlTarget {
	var targets []tomlTarget
	for _, p := range paths {
		name := layout.Stem(p)
		path := p
		targets = append(targets, tomlTarget{Name: &name, Path: &path})
	}
	return targets
}

// resolveTargets merges the document's explicit target sections with the
// layout prober's inventory, validates names against the kind-specific
// rules and produces the final ordered target list.
func resolveTargets(doc *tomlManifest, project *tomlProject, pkgName, root string,
	lay *layout.Layout, warnings warningSink) ([]Target, error) {

	var lib *tomlTarget
	if doc.Lib != nil {
		if err := doc.Lib.validateLibraryName(); err != nil {
			return nil, err
		}
		if err := doc.Lib.validateCrateTypes(); err != nil {
			return nil, err
		}
		merged := *doc.Lib
		if merged.Name == nil {
			name := pkgName
			merged.Name = &name
		}
		if merged.Path == nil && lay.HasLib() {
			path := lay.Lib
			merged.Path = &path
		}
		lib = &merged
	} else {
		lib = inferredLibTarget(pkgName, lay)
	}

	bins := doc.Bin
	if bins == nil {
		bins = inferredBinTargets(pkgName, lay)
	} else {
		for i := range bins {
			if err := bins[i].validateTargetName("binary", "bin"); err != nil {
				return nil, err
			}
			if slices.Contains(binNameBlocklist, bins[i].name()) {
				return nil, fmt.Errorf(
					"the binary target name `%s` is forbidden", bins[i].name())
			}
		}
	}

	examples, err := explicitOrInferred(doc.Example, lay.Examples, "example", "example")
	if err != nil {
		return nil, err
	}
	tests, err := explicitOrInferred(doc.Test, lay.Tests, "test", "test")
	if err != nil {
		return nil, err
	}
	benches, err := explicitOrInferred(doc.Bench, lay.Benches, "bench", "bench")
	if err != nil {
		return nil, err
	}

	for _, group := range []struct {
		human   string
		targets []tomlTarget
	}{
		{"binary", bins},
		{"example", examples},
		{"test", tests},
		{"bench", benches},
	} {
		if name, ok := uniqueNamesInTargets(group.targets); !ok {
			return nil, fmt.Errorf(
				"found duplicate %s name %s, but all %s targets must have a unique name",
				group.human, name, group.human)
		}
	}

	customBuild := resolveCustomBuild(project.Build, root)

	targets := normalizeTargets(root, lay, lib, bins, customBuild, examples, tests, benches)

	hasBuildable := false
	for _, t := range targets {
		if !t.IsCustomBuild() {
			hasBuildable = true
			break
		}
	}
	if !hasBuildable {
		return nil, fmt.Errorf("no targets specified in the manifest\n" +
			"  either src/lib.rs, src/main.rs, a [lib] section, or [[bin]] section must be present")
	}

	if path, ok := uniqueBuildTargets(targets, root); !ok {
		warnings.AddWarning(fmt.Sprintf(
			"file found to be present in multiple build targets: %s", path))
	}

	return targets, nil
}

// explicitOrInferred uses the declared sections when present, after name
// validation, and otherwise synthesizes sections from the prober's list.
func explicitOrInferred(declared []tomlTarget, probed []string, human, key string) ([]tomlTarget, error) {
	if declared == nil {
		return inferredTargetsFrom(probed), nil
	}
	for i := range declared {
		if err := declared[i].validateTargetName(human, key); err != nil {
			return nil, err
		}
	}
	return declared, nil
}

// resolveCustomBuild determines the build-script path: an explicit string
// overrides, an explicit boolean enables or disables the conventional
// path, and absence falls back to probing for it.
func resolveCustomBuild(build *stringOrBool, root string) string {
	switch {
	case build == nil:
		if rootFileExists(root, "build"+layout.SourceExt) {
			return "build" + layout.SourceExt
		}
		return ""
	case build.IsString:
		return build.String
	case build.Bool:
		return "build" + layout.SourceExt
	default:
		return ""
	}
}

// normalizeTargets produces the final ordered target list from the
// explicit-or-inferred sections. Paths left unset fall back to the
// kind-specific inference strategy; flags resolve explicit value first,
// then the kind default.
func normalizeTargets(root string, lay *layout.Layout,
	lib *tomlTarget,
	bins []tomlTarget,
	customBuild string,
	examples, tests, benches []tomlTarget) []Target {

	var ret []Target

	if lib != nil {
		ret = append(ret, makeLibTarget(lib))
	}
	for i := range bins {
		ret = append(ret, makeBinTarget(&bins[i], root, lay, lib != nil, len(bins)))
	}

	if customBuild != "" {
		name := "build-script-" + layout.Stem(customBuild)
		ret = append(ret, customBuildTarget(name, customBuild))
	}

	for i := range examples {
		ret = append(ret, makeExampleTarget(&examples[i]))
	}
	for i := range tests {
		ret = append(ret, makeTestTarget(&tests[i]))
	}
	for i := range benches {
		ret = append(ret, makeBenchTarget(&benches[i]))
	}

	return ret
}

// configureTarget applies the per-target boolean configuration: explicit
// value when present, kind default otherwise. runs-on-host additionally
// derives from the historical plugin and proc-macro flags.
func configureTarget(decl *tomlTarget, target *Target) {
	if decl.Test != nil {
		target.Tested = *decl.Test
	}
	if decl.Doc != nil {
		target.Documented = *decl.Doc
	}
	if decl.Doctest != nil {
		target.Doctested = *decl.Doctest
	}
	if decl.Bench != nil {
		target.Benched = *decl.Bench
	}
	if decl.Harness != nil {
		target.Harness = *decl.Harness
	}

	plugin, procMacro := decl.Plugin, decl.procMacro()
	switch {
	case plugin == nil && procMacro == nil:
		// keep the kind default
	case boolValue(plugin) || boolValue(procMacro):
		target.ForHost = true
	default:
		target.ForHost = false
	}
}

func makeLibTarget(decl *tomlTarget) Target {
	path := "src/" + decl.name() + layout.SourceExt
	if decl.Path != nil {
		path = *decl.Path
	}

	var kinds []LibKind
	if declared := decl.crateTypes(); declared != nil {
		for _, k := range declared {
			kinds = append(kinds, LibKind(k))
		}
	} else {
		switch {
		case boolValue(decl.Plugin):
			kinds = []LibKind{LibKindDylib}
		case boolValue(decl.procMacro()):
			kinds = []LibKind{LibKindProcMacro}
		default:
			kinds = []LibKind{LibKindLib}
		}
	}

	target := libTarget(decl.name(), kinds, path)
	configureTarget(decl, &target)
	return target
}

func makeBinTarget(decl *tomlTarget, root string, lay *layout.Layout, hasLib bool, binCount int) Target {
	resolved := ""
	if decl.Path != nil {
		resolved = *decl.Path
	} else {
		resolved = inferredBinPath(decl, root, lay, hasLib, binCount)
	}

	target := binTarget(decl.name(), resolved, decl.RequiredFeatures)
	configureTarget(decl, &target)
	return target
}

func makeExampleTarget(decl *tomlTarget) Target {
	path := layout.ExamplesDir + "/" + decl.name() + layout.SourceExt
	if decl.Path != nil {
		path = *decl.Path
	}

	var kinds []LibKind
	for _, k := range decl.crateTypes() {
		kinds = append(kinds, LibKind(k))
	}

	target := exampleTarget(decl.name(), kinds, path, decl.RequiredFeatures)
	configureTarget(decl, &target)
	return target
}

func makeTestTarget(decl *tomlTarget) Target {
	// A test literally named "test" keeps its legacy single-file location
	// under src.
	path := layout.TestsDir + "/" + decl.name() + layout.SourceExt
	if decl.name() == "test" {
		path = "src/test" + layout.SourceExt
	}
	if decl.Path != nil {
		path = *decl.Path
	}

	target := testTarget(decl.name(), path, decl.RequiredFeatures)
	configureTarget(decl, &target)
	return target
}

func makeBenchTarget(decl *tomlTarget) Target {
	path := layout.BenchesDir + "/" + decl.name() + layout.SourceExt
	if decl.name() == "bench" {
		path = "src/bench" + layout.SourceExt
	}
	if decl.Path != nil {
		path = *decl.Path
	}

	target := benchTarget(decl.name(), path, decl.RequiredFeatures)
	configureTarget(decl, &target)
	return target
}

// inferredBinPath picks the source path for a binary declared without
// one. The priority order preserves legacy single-binary package layouts
// while keeping multi-binary layouts unambiguous. Everything the layout
// prober inventories is answered from the inventory; only the legacy
// src/<name> fallback needs one extra existence check.
func inferredBinPath(decl *tomlTarget, root string, lay *layout.Layout, hasLib bool, binCount int) string {
	name := decl.name()
	binEntry := layout.BinDir + "/" + name + layout.SourceExt
	fallback := layout.BinDir + "/main" + layout.SourceExt

	// Any multi-binary layout keeps every bin under src/bin.
	if binCount > 1 {
		return binEntry
	}

	if slices.Contains(lay.Bins, layout.MainEntry) {
		return layout.MainEntry
	}
	if !hasLib {
		rootEntry := "src/" + name + layout.SourceExt
		if rootFileExists(root, rootEntry) {
			return rootEntry
		}
	}
	if slices.Contains(lay.Bins, binEntry) {
		return binEntry
	}
	return fallback
}

func rootFileExists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}
