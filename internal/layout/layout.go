// SPDX-License-Identifier: MPL-2.0

// Package layout probes a package root directory for source files matching
// the fixed directory conventions: src/lib.rs, src/main.rs, src/bin/*.rs,
// examples/*.rs, tests/*.rs and benches/*.rs. It only lists and stats files;
// nothing is opened or parsed, and no inference happens here.
package layout

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// SourceExt is the source file extension recognized by the prober.
	SourceExt = ".rs"

	// LibEntry is the conventional library entry file, relative to the root.
	LibEntry = "src/lib.rs"
	// MainEntry is the conventional executable entry file.
	MainEntry = "src/main.rs"
	// BinDir is the subdirectory holding additional executable entry files.
	BinDir = "src/bin"
	// ExamplesDir holds example entry files.
	ExamplesDir = "examples"
	// TestsDir holds integration test entry files.
	TestsDir = "tests"
	// BenchesDir holds benchmark entry files.
	BenchesDir = "benches"
)

// Layout is the inventory of candidate source files found under a package
// root. All paths are slash-separated and relative to Root.
type Layout struct {
	Root     string
	Lib      string // empty when no conventional library entry exists
	Bins     []string
	Examples []string
	Tests    []string
	Benches  []string
}

// FromProjectPath probes the directory containing the manifest and returns
// the discovered inventory. It is a pure function of the filesystem
// snapshot; missing directories simply contribute nothing.
func FromProjectPath(root string) Layout {
	l := Layout{Root: root}

	if fileExists(filepath.Join(root, filepath.FromSlash(LibEntry))) {
		l.Lib = LibEntry
	}

	if fileExists(filepath.Join(root, filepath.FromSlash(MainEntry))) {
		l.Bins = append(l.Bins, MainEntry)
	}
	l.Bins = append(l.Bins, sourceFilesIn(root, BinDir)...)

	l.Examples = sourceFilesIn(root, ExamplesDir)
	l.Tests = sourceFilesIn(root, TestsDir)
	l.Benches = sourceFilesIn(root, BenchesDir)

	return l
}

// HasLib reports whether the conventional library entry file was found.
func (l Layout) HasLib() bool {
	return l.Lib != ""
}

// sourceFilesIn lists source files directly inside dir (non-recursive),
// skipping dotfiles. Editors drop temporary dotfiles next to sources; those
// are rarely valid source files, so they must be explicitly declared in the
// manifest to be built.
func sourceFilesIn(root, dir string) []string {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dir)))
	if err != nil {
		return nil
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, SourceExt) {
			continue
		}
		files = append(files, dir+"/"+name)
	}
	return files
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Stem returns the file name of path without its extension, the default
// name for targets inferred from the prober's lists.
func Stem(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
