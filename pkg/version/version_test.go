// SPDX-License-Identifier: MPL-2.0

package version

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{
			name:  "plain version",
			input: "1.2.3",
			want:  Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:  "leading v accepted",
			input: "v0.10.0",
			want:  Version{Major: 0, Minor: 10, Patch: 0},
		},
		{
			name:  "prerelease",
			input: "1.0.0-beta.2",
			want:  Version{Major: 1, Minor: 0, Patch: 0, Prerelease: "beta.2"},
		},
		{
			name:  "build metadata",
			input: "1.0.0+20130313144700",
			want:  Version{Major: 1, Minor: 0, Patch: 0, Build: "20130313144700"},
		},
		{
			name:    "partial version rejected",
			input:   "1.2",
			wantErr: true,
		},
		{
			name:    "garbage rejected",
			input:   "not-a-version",
			wantErr: true,
		},
		{
			name:    "empty rejected",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", want: 0},
		{name: "major ordering", a: "2.0.0", b: "1.9.9", want: 1},
		{name: "minor ordering", a: "1.2.0", b: "1.3.0", want: -1},
		{name: "patch ordering", a: "1.2.4", b: "1.2.3", want: 1},
		{name: "prerelease before release", a: "1.0.0-alpha", b: "1.0.0", want: -1},
		{name: "build metadata ignored", a: "1.0.0+a", b: "1.0.0+b", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := mustParse(t, tt.a)
			b := mustParse(t, tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func mustParse(t *testing.T, s string) Version {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return v
}
