// SPDX-License-Identifier: MPL-2.0

package manifest

// The intermediate document model: a semantically loose, optional-everywhere
// mirror of the recognized manifest sections. Decoding from the generic TOML
// tree into these types is mechanical; all validation and inference happens
// afterwards, in the interpretation pass. Keys with a historical underscore
// spelling are declared twice and merged first-match-wins at read time.

type tomlManifest struct {
	Package            *tomlProject                 `toml:"package"`
	Project            *tomlProject                 `toml:"project"`
	Profile            *tomlProfiles                `toml:"profile"`
	Lib                *tomlTarget                  `toml:"lib"`
	Bin                []tomlTarget                 `toml:"bin"`
	Example            []tomlTarget                 `toml:"example"`
	Test               []tomlTarget                 `toml:"test"`
	Bench              []tomlTarget                 `toml:"bench"`
	Dependencies       map[string]tomlDependency    `toml:"dependencies"`
	DevDependencies    map[string]tomlDependency    `toml:"dev-dependencies"`
	DevDependencies2   map[string]tomlDependency    `toml:"dev_dependencies"`
	BuildDependencies  map[string]tomlDependency    `toml:"build-dependencies"`
	BuildDependencies2 map[string]tomlDependency    `toml:"build_dependencies"`
	Features           map[string][]string          `toml:"features"`
	Target             map[string]tomlPlatform      `toml:"target"`
	Replace            map[string]tomlDependency    `toml:"replace"`
	Workspace          *tomlWorkspace               `toml:"workspace"`
	Badges             map[string]map[string]string `toml:"badges"`
}

// tomlProject is the [package] (or legacy [project]) section.
type tomlProject struct {
	Name      string        `toml:"name"`
	Version   string        `toml:"version"`
	Authors   []string      `toml:"authors"`
	Build     *stringOrBool `toml:"build"`
	Links     *string       `toml:"links"`
	Exclude   []string      `toml:"exclude"`
	Include   []string      `toml:"include"`
	Publish   *bool         `toml:"publish"`
	Workspace *string       `toml:"workspace"`

	Description   *string  `toml:"description"`
	Homepage      *string  `toml:"homepage"`
	Documentation *string  `toml:"documentation"`
	Readme        *string  `toml:"readme"`
	Keywords      []string `toml:"keywords"`
	Categories    []string `toml:"categories"`
	License       *string  `toml:"license"`
	LicenseFile   *string  `toml:"license-file"`
	Repository    *string  `toml:"repository"`

	// Metadata is the reserved free-form subtree for external tools; it is
	// always accepted and never contributes unknown-key warnings.
	Metadata map[string]any `toml:"metadata"`
}

// tomlDependency is one dependency declaration. A bare version-requirement
// string is normalized to the table form with only Version set by a decode
// hook, so the rest of the pipeline sees a single shape.
type tomlDependency struct {
	Version          *string  `toml:"version"`
	Path             *string  `toml:"path"`
	Git              *string  `toml:"git"`
	Branch           *string  `toml:"branch"`
	Tag              *string  `toml:"tag"`
	Rev              *string  `toml:"rev"`
	Features         []string `toml:"features"`
	Optional         *bool    `toml:"optional"`
	DefaultFeatures  *bool    `toml:"default-features"`
	DefaultFeatures2 *bool    `toml:"default_features"`
}

// defaultFeatures merges the two accepted spellings, hyphen form first.
func (d *tomlDependency) defaultFeatures() *bool {
	if d.DefaultFeatures != nil {
		return d.DefaultFeatures
	}
	return d.DefaultFeatures2
}

// tomlTarget is one [lib], [[bin]], [[example]], [[test]] or [[bench]]
// section.
type tomlTarget struct {
	Name             *string  `toml:"name"`
	CrateType        []string `toml:"crate-type"`
	CrateType2       []string `toml:"crate_type"`
	Path             *string  `toml:"path"`
	Test             *bool    `toml:"test"`
	Doctest          *bool    `toml:"doctest"`
	Bench            *bool    `toml:"bench"`
	Doc              *bool    `toml:"doc"`
	Plugin           *bool    `toml:"plugin"`
	ProcMacro        *bool    `toml:"proc-macro"`
	ProcMacro2       *bool    `toml:"proc_macro"`
	Harness          *bool    `toml:"harness"`
	RequiredFeatures []string `toml:"required-features"`
}

// crateTypes merges the two accepted spellings.
func (t *tomlTarget) crateTypes() []string {
	if t.CrateType != nil {
		return t.CrateType
	}
	return t.CrateType2
}

// procMacro merges the two accepted spellings.
func (t *tomlTarget) procMacro() *bool {
	if t.ProcMacro != nil {
		return t.ProcMacro
	}
	return t.ProcMacro2
}

// tomlPlatform is one platform-scoped table: target.<predicate>.<tables>.
type tomlPlatform struct {
	Dependencies       map[string]tomlDependency `toml:"dependencies"`
	DevDependencies    map[string]tomlDependency `toml:"dev-dependencies"`
	DevDependencies2   map[string]tomlDependency `toml:"dev_dependencies"`
	BuildDependencies  map[string]tomlDependency `toml:"build-dependencies"`
	BuildDependencies2 map[string]tomlDependency `toml:"build_dependencies"`
}

// tomlWorkspace is the [workspace] section.
type tomlWorkspace struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude"`
}

// tomlProfiles is the [profile] section; only these five profiles accept
// user overrides.
type tomlProfiles struct {
	Test    *tomlProfile `toml:"test"`
	Doc     *tomlProfile `toml:"doc"`
	Bench   *tomlProfile `toml:"bench"`
	Dev     *tomlProfile `toml:"dev"`
	Release *tomlProfile `toml:"release"`
}

// tomlProfile is one profile override block. Every field is optional and
// overrides the compiled-in default independently.
type tomlProfile struct {
	OptLevel        *optLevel  `toml:"opt-level"`
	LTO             *bool      `toml:"lto"`
	CodegenUnits    *uint32    `toml:"codegen-units"`
	Debug           *intOrBool `toml:"debug"`
	DebugAssertions *bool      `toml:"debug-assertions"`
	RPath           *bool      `toml:"rpath"`
	Panic           *string    `toml:"panic"`
	OverflowChecks  *bool      `toml:"overflow-checks"`
}

// optLevel is an optimization level: an integer, or one of the size-tuned
// letter levels "s" and "z". Stored in string form.
type optLevel struct {
	Value string
}

// intOrBool accepts either an integer or a boolean TOML value; used by the
// debug level, where `true` means a fixed default level and `false` means
// no debug info.
type intOrBool struct {
	IsInt bool
	Int   int64
	Bool  bool
}

// stringOrBool accepts either a string or a boolean TOML value; used by the
// build-script specifier, where a boolean enables or disables the
// conventional path and a string overrides it.
type stringOrBool struct {
	IsString bool
	String   string
	Bool     bool
}

// project returns the package section under either accepted name, the
// legacy [project] spelling taking precedence.
func (m *tomlManifest) project() *tomlProject {
	if m.Project != nil {
		return m.Project
	}
	return m.Package
}

// devDependencies merges the two accepted spellings.
func (m *tomlManifest) devDependencies() map[string]tomlDependency {
	if m.DevDependencies != nil {
		return m.DevDependencies
	}
	return m.DevDependencies2
}

// buildDependencies merges the two accepted spellings.
func (m *tomlManifest) buildDependencies() map[string]tomlDependency {
	if m.BuildDependencies != nil {
		return m.BuildDependencies
	}
	return m.BuildDependencies2
}

func (p *tomlPlatform) devDependencies() map[string]tomlDependency {
	if p.DevDependencies != nil {
		return p.DevDependencies
	}
	return p.DevDependencies2
}

func (p *tomlPlatform) buildDependencies() map[string]tomlDependency {
	if p.BuildDependencies != nil {
		return p.BuildDependencies
	}
	return p.BuildDependencies2
}
