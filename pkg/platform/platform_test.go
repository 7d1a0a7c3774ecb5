// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantCfg bool
		wantErr bool
	}{
		{
			name:  "plain triple",
			input: "x86_64-unknown-linux-gnu",
		},
		{
			name:    "bare ident cfg",
			input:   "cfg(unix)",
			wantCfg: true,
		},
		{
			name:    "key value cfg",
			input:   `cfg(target_os = "windows")`,
			wantCfg: true,
		},
		{
			name:    "nested combinators",
			input:   `cfg(all(unix, not(target_os = "macos"), any(foo, bar)))`,
			wantCfg: true,
		},
		{
			name:    "empty all",
			input:   "cfg(all())",
			wantCfg: true,
		},
		{
			name:    "empty predicate",
			input:   "  ",
			wantErr: true,
		},
		{
			name:    "unbalanced paren",
			input:   "cfg(all(unix)",
			wantErr: true,
		},
		{
			name:    "missing value string",
			input:   "cfg(target_os = )",
			wantErr: true,
		},
		{
			name:    "unterminated string",
			input:   `cfg(target_os = "win)`,
			wantErr: true,
		},
		{
			name:    "unterminated cfg",
			input:   "cfg(unix",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			input:   "cfg(unix) extra",
			wantErr: true,
		},
		{
			name:    "number where ident expected",
			input:   `cfg(= "linux")`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, p)
				}
				if !errors.Is(err, ErrInvalidPredicate) {
					t.Errorf("Parse(%q) error does not wrap ErrInvalidPredicate: %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if p.IsCfg() != tt.wantCfg {
				t.Errorf("Parse(%q).IsCfg() = %v, want %v", tt.input, p.IsCfg(), tt.wantCfg)
			}
		})
	}
}

func TestPredicateStringRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []string{
		"x86_64-pc-windows-gnu",
		"cfg(unix)",
		`cfg(target_os = "linux")`,
		`cfg(all(unix, target_os = "linux"))`,
		"cfg(not(windows))",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			p := MustParse(input)
			again := MustParse(p.String())
			if p.String() != again.String() {
				t.Errorf("round trip changed predicate: %q -> %q", p.String(), again.String())
			}
		})
	}
}

func TestPredicateMatches(t *testing.T) {
	t.Parallel()

	opts := map[string][]string{
		"unix":                 nil,
		"target_os":            {"linux"},
		"target_family":        {"unix"},
		"target_pointer_width": {"64"},
		"target_has_atomic":    {"8", "16", "32", "64", "ptr"},
		"debug_assertions":     nil,
	}

	tests := []struct {
		name      string
		predicate string
		want      bool
	}{
		{name: "matching triple", predicate: "x86_64-unknown-linux-gnu", want: true},
		{name: "other triple", predicate: "i686-pc-windows-msvc", want: false},
		{name: "bare option present", predicate: "cfg(unix)", want: true},
		{name: "bare option absent", predicate: "cfg(windows)", want: false},
		{name: "pair match", predicate: `cfg(target_os = "linux")`, want: true},
		{name: "pair mismatch", predicate: `cfg(target_os = "macos")`, want: false},
		{name: "multi-valued option", predicate: `cfg(target_has_atomic = "ptr")`, want: true},
		{name: "all", predicate: `cfg(all(unix, target_os = "linux"))`, want: true},
		{name: "all short circuit", predicate: `cfg(all(windows, target_os = "linux"))`, want: false},
		{name: "any", predicate: `cfg(any(windows, target_os = "linux"))`, want: true},
		{name: "not", predicate: "cfg(not(windows))", want: true},
		{name: "empty all is true", predicate: "cfg(all())", want: true},
		{name: "empty any is false", predicate: "cfg(any())", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := MustParse(tt.predicate)
			got := p.MatchesTriple("x86_64-unknown-linux-gnu", opts)
			if got != tt.want {
				t.Errorf("%q.MatchesTriple(...) = %v, want %v", tt.predicate, got, tt.want)
			}
		})
	}
}
