// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"freighter/internal/layout"
	"freighter/pkg/platform"
	"freighter/pkg/version"
)

// Filename is the manifest's fixed filename in the package root.
const Filename = "Cargo.toml"

// collector accumulates warnings before a manifest value exists to hold
// them.
type collector struct {
	msgs []string
}

func (c *collector) AddWarning(msg string) {
	c.msgs = append(c.msgs, msg)
}

// InterpretFile reads and interprets the manifest at path. source is the
// identity of the package being interpreted.
func InterpretFile(path string, source SourceID) (*Interpretation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Interpret(data, path, source)
}

// Interpret parses and interprets manifest text. manifestPath locates the
// package root for layout probing and path-dependency resolution; it does
// not need to exist on disk. The document is interpreted as a package
// manifest when it carries a package section; otherwise, or when package
// interpretation fails, the virtual-manifest form is attempted, and its
// failure propagates the original package error.
func Interpret(data []byte, manifestPath string, source SourceID) (*Interpretation, error) {
	warnings := &collector{}

	tree, err := parseTree(data, manifestPath, warnings)
	if err != nil {
		return nil, err
	}

	doc, unused, err := decodeDocument(tree)
	if err != nil {
		return nil, err
	}

	// Warnings raised by a failed package interpretation must not leak
	// into the virtual fallback.
	base := len(warnings.msgs)

	interp, pkgErr := toManifest(doc, manifestPath, source, warnings, unused)
	if pkgErr == nil {
		return interp, nil
	}

	warnings.msgs = warnings.msgs[:base]
	interp, virtErr := toVirtualManifest(doc, manifestPath, warnings, unused)
	if virtErr != nil {
		return nil, pkgErr
	}
	return interp, nil
}

func toManifest(doc *tomlManifest, manifestPath string, source SourceID,
	warnings *collector, unused []string) (*Interpretation, error) {

	project := doc.project()
	if project == nil {
		return nil, fmt.Errorf("no `package` section found.")
	}
	if strings.TrimSpace(project.Name) == "" {
		return nil, fmt.Errorf("package name cannot be an empty string.")
	}

	pkgRoot := filepath.Dir(manifestPath)

	ver, err := version.Parse(project.Version)
	if err != nil {
		return nil, err
	}

	lay := layout.FromProjectPath(pkgRoot)

	targets, err := resolveTargets(doc, project, project.Name, pkgRoot, &lay, warnings)
	if err != nil {
		return nil, err
	}

	var nested []string
	cx := depContext{
		source:      &source,
		root:        pkgRoot,
		warnings:    warnings,
		nestedPaths: &nested,
	}

	var deps []Dependency
	appendDeps := func(table map[string]tomlDependency, kind DepKind, pred *platform.Predicate) error {
		cx.kind = kind
		cx.platform = pred
		for _, name := range sortedKeys(table) {
			decl := table[name]
			dep, err := decl.toDependency(name, cx)
			if err != nil {
				return err
			}
			deps = append(deps, dep)
		}
		return nil
	}

	if err := appendDeps(doc.Dependencies, DepNormal, nil); err != nil {
		return nil, err
	}
	if err := appendDeps(doc.devDependencies(), DepDevelopment, nil); err != nil {
		return nil, err
	}
	if err := appendDeps(doc.buildDependencies(), DepBuild, nil); err != nil {
		return nil, err
	}

	for _, spec := range sortedKeys(doc.Target) {
		pred, err := platform.Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to parse `%s` as a cfg expression: %w", spec, err)
		}
		scoped := doc.Target[spec]
		if err := appendDeps(scoped.Dependencies, DepNormal, &pred); err != nil {
			return nil, err
		}
		if err := appendDeps(scoped.devDependencies(), DepDevelopment, &pred); err != nil {
			return nil, err
		}
		if err := appendDeps(scoped.buildDependencies(), DepBuild, &pred); err != nil {
			return nil, err
		}
	}

	if err := checkDepSourceConsistency(deps); err != nil {
		return nil, err
	}

	cx.kind = DepNormal
	cx.platform = nil
	replace, err := buildReplacements(doc.Replace, cx)
	if err != nil {
		return nil, err
	}

	workspace, err := resolveWorkspace(doc.Workspace, project.Workspace)
	if err != nil {
		return nil, err
	}

	features := doc.Features
	if features == nil {
		features = map[string][]string{}
	}

	m := &Manifest{
		ID:           PackageID{Name: project.Name, Version: ver, Source: source},
		Targets:      targets,
		Dependencies: deps,
		Features:     features,
		Exclude:      project.Exclude,
		Include:      project.Include,
		Links:        stringValue(project.Links),
		Metadata: Metadata{
			Description:   stringValue(project.Description),
			Homepage:      stringValue(project.Homepage),
			Documentation: stringValue(project.Documentation),
			Readme:        stringValue(project.Readme),
			Authors:       project.Authors,
			License:       stringValue(project.License),
			LicenseFile:   stringValue(project.LicenseFile),
			Repository:    stringValue(project.Repository),
			Keywords:      project.Keywords,
			Categories:    project.Categories,
			Badges:        doc.Badges,
		},
		Profiles:  buildProfiles(doc.Profile),
		Publish:   project.Publish == nil || *project.Publish,
		Replace:   replace,
		Workspace: workspace,
	}

	if project.License != nil && project.LicenseFile != nil {
		m.AddWarning("only one of `license` or `license-file` is necessary")
	}
	m.warnings = append(warnings.msgs, m.warnings...)
	for _, key := range unused {
		m.AddWarning(fmt.Sprintf("unused manifest key: %s", key))
	}

	return &Interpretation{Manifest: m, NestedPaths: nested}, nil
}

// toVirtualManifest interprets a workspace-root-only document: no package
// section and no build targets, only a replacement table, a workspace
// root and profiles.
func toVirtualManifest(doc *tomlManifest, manifestPath string,
	warnings *collector, unused []string) (*Interpretation, error) {

	if doc.Project != nil {
		return nil, fmt.Errorf("virtual manifests do not define [project]")
	}
	if doc.Package != nil {
		return nil, fmt.Errorf("virtual manifests do not define [package]")
	}
	if doc.Lib != nil {
		return nil, fmt.Errorf("virtual manifests do not specify [lib]")
	}
	if doc.Bin != nil {
		return nil, fmt.Errorf("virtual manifests do not specify [[bin]]")
	}
	if doc.Example != nil {
		return nil, fmt.Errorf("virtual manifests do not specify [[example]]")
	}
	if doc.Test != nil {
		return nil, fmt.Errorf("virtual manifests do not specify [[test]]")
	}
	if doc.Bench != nil {
		return nil, fmt.Errorf("virtual manifests do not specify [[bench]]")
	}
	if doc.Workspace == nil {
		return nil, fmt.Errorf("virtual manifests must be configured with [workspace]")
	}

	var nested []string
	cx := depContext{
		root:        filepath.Dir(manifestPath),
		kind:        DepNormal,
		warnings:    warnings,
		nestedPaths: &nested,
	}
	replace, err := buildReplacements(doc.Replace, cx)
	if err != nil {
		return nil, err
	}

	m := &VirtualManifest{
		Replace: replace,
		Workspace: RootWorkspace(doc.Workspace.Members, doc.Workspace.Members != nil,
			doc.Workspace.Exclude),
		Profiles: buildProfiles(doc.Profile),
	}
	m.warnings = append(warnings.msgs, m.warnings...)
	for _, key := range unused {
		m.AddWarning(fmt.Sprintf("unused manifest key: %s", key))
	}

	return &Interpretation{Virtual: m, NestedPaths: nested}, nil
}

// checkDepSourceConsistency enforces that every declaration of one
// dependency name resolves to the same canonical source, regardless of
// which kind or platform table it came from. SourceID equality is a
// build cache key, so one name with two identities cannot be represented.
func checkDepSourceConsistency(deps []Dependency) error {
	seen := make(map[string]SourceID, len(deps))
	for _, dep := range deps {
		prev, ok := seen[dep.Name]
		if !ok {
			seen[dep.Name] = dep.Source
			continue
		}
		if prev != dep.Source {
			return fmt.Errorf("Dependency '%s' has different source paths depending on the build "+
				"target. Each dependency must have a single canonical source path irrespective "+
				"of build target.", dep.Name)
		}
	}
	return nil
}

// resolveWorkspace turns the two workspace-related declarations into one
// WorkspaceConfig. Declaring both is a hard error.
func resolveWorkspace(section *tomlWorkspace, memberOf *string) (WorkspaceConfig, error) {
	switch {
	case section != nil && memberOf != nil:
		return WorkspaceConfig{}, fmt.Errorf(
			"cannot configure both `package.workspace` and `[workspace]`, only one can be specified")
	case section != nil:
		return RootWorkspace(section.Members, section.Members != nil, section.Exclude), nil
	default:
		return MemberWorkspace(stringValue(memberOf)), nil
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
