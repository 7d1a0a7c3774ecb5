// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"testing"
)

func TestGitSourceCanonicalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
	}{
		{
			name: "git suffix",
			a:    "https://github.com/rust-lang/cargo",
			b:    "https://github.com/rust-lang/cargo.git",
		},
		{
			name: "trailing slash",
			a:    "https://example.com/repo",
			b:    "https://example.com/repo/",
		},
		{
			name: "host case",
			a:    "https://Example.COM/repo",
			b:    "https://example.com/repo",
		},
		{
			name: "github path case",
			a:    "https://github.com/Rust-Lang/Cargo",
			b:    "https://github.com/rust-lang/cargo",
		},
		{
			name: "git plus prefix",
			a:    "git+https://example.com/repo",
			b:    "https://example.com/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref := DefaultGitReference()
			a, err := GitSource(tt.a, ref)
			if err != nil {
				t.Fatalf("GitSource(%q) error = %v", tt.a, err)
			}
			b, err := GitSource(tt.b, ref)
			if err != nil {
				t.Fatalf("GitSource(%q) error = %v", tt.b, err)
			}
			if a != b {
				t.Errorf("sources differ: %s vs %s", a, b)
			}
		})
	}
}

func TestGitSourceRejectsRelativeURL(t *testing.T) {
	t.Parallel()

	_, err := GitSource("example.com/repo", DefaultGitReference())
	if !errors.Is(err, ErrInvalidGitURL) {
		t.Errorf("GitSource() error = %v, want ErrInvalidGitURL", err)
	}
}

func TestGitSourceDistinguishesReferences(t *testing.T) {
	t.Parallel()

	branch, err := GitSource("https://example.com/repo", GitReference{Kind: GitBranch, Value: "main"})
	if err != nil {
		t.Fatalf("GitSource() error = %v", err)
	}
	tag, err := GitSource("https://example.com/repo", GitReference{Kind: GitTag, Value: "main"})
	if err != nil {
		t.Fatalf("GitSource() error = %v", err)
	}
	if branch == tag {
		t.Error("branch and tag references compare equal")
	}
}

func TestPathSourceNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "trailing dot segment", a: "/work/lib/.", b: "/work/lib"},
		{name: "parent segment", a: "/work/app/../lib", b: "/work/lib"},
		{name: "doubled separator", a: "/work//lib", b: "/work/lib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if a, b := PathSource(tt.a), PathSource(tt.b); a != b {
				t.Errorf("PathSource(%q) = %s, PathSource(%q) = %s, want equal",
					tt.a, a, tt.b, b)
			}
		})
	}
}

func TestRegistrySourceDefault(t *testing.T) {
	t.Parallel()

	if src := RegistrySource(""); !src.IsDefaultRegistry() {
		t.Errorf("RegistrySource(\"\") = %s, want the default registry", src)
	}
	if src := RegistrySource("https://example.com/index"); src.IsDefaultRegistry() {
		t.Errorf("RegistrySource(custom) = %s, claims to be the default registry", src)
	}
}
