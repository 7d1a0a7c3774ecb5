// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Registry: {
	index?: string
	token?: string
}

#Config: {
	registry?: #Registry
	verbose?:  bool
	members?: [...string]
}
`

type testConfig struct {
	Registry struct {
		Index string `json:"index"`
		Token string `json:"token"`
	} `json:"registry"`
	Verbose bool     `json:"verbose"`
	Members []string `json:"members"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	data := []byte(`
registry: index: "https://example.com/index"
verbose: true
members: ["a", "b"]
`)

	result, err := ParseAndDecode[testConfig]([]byte(testSchema), data, "#Config",
		WithConcrete(false), WithFilename("config.cue"))
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	cfg := result.Value
	if cfg.Registry.Index != "https://example.com/index" {
		t.Errorf("Registry.Index = %q", cfg.Registry.Index)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	if len(cfg.Members) != 2 {
		t.Errorf("Members = %v, want two entries", cfg.Members)
	}
}

func TestParseAndDecodeTypeMismatch(t *testing.T) {
	t.Parallel()

	data := []byte(`verbose: "yes"`)

	_, err := ParseAndDecode[testConfig]([]byte(testSchema), data, "#Config",
		WithConcrete(false), WithFilename("config.cue"))
	if err == nil {
		t.Fatal("ParseAndDecode() succeeded with a type mismatch")
	}
	if !strings.Contains(err.Error(), "config.cue") {
		t.Errorf("error %q does not name the input file", err)
	}
	if !strings.Contains(err.Error(), "verbose") {
		t.Errorf("error %q does not name the offending field", err)
	}
}

func TestParseAndDecodeSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testConfig]([]byte(testSchema), []byte(`registry: {`), "#Config",
		WithConcrete(false))
	if err == nil {
		t.Fatal("ParseAndDecode() succeeded with broken syntax")
	}
}

func TestParseAndDecodeMissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testConfig]([]byte(testSchema), []byte(`verbose: true`), "#Missing",
		WithConcrete(false))
	if err == nil || !strings.Contains(err.Error(), "#Missing") {
		t.Errorf("ParseAndDecode() error = %v, want missing-definition failure", err)
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 50), 100, "test.cue"); err != nil {
		t.Errorf("CheckFileSize(under limit) error = %v", err)
	}
	if err := CheckFileSize(make([]byte, 101), 100, "test.cue"); err == nil {
		t.Error("CheckFileSize(over limit) returned nil")
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"registry"}, "registry"},
		{[]string{"registry", "index"}, "registry.index"},
		{[]string{"members", "0"}, "members[0]"},
		{[]string{"members", "2", "name"}, "members[2].name"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
