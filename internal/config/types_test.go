// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorSchemeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value     ColorScheme
		wantValid bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"sepia", false},
		{"", false},
	}

	for _, tt := range tests {
		err := tt.value.Validate()
		if (err == nil) != tt.wantValid {
			t.Errorf("ColorScheme(%q).Validate() error = %v, wantValid %v", tt.value, err, tt.wantValid)
		}
		if !tt.wantValid && !errors.Is(err, ErrInvalidColorScheme) {
			t.Errorf("error does not wrap ErrInvalidColorScheme: %v", err)
		}
	}
}

func TestIndexURLValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     IndexURL
		wantValid bool
	}{
		{name: "empty means default", value: "", wantValid: true},
		{name: "https", value: "https://example.com/index", wantValid: true},
		{name: "http", value: "http://example.com/index", wantValid: true},
		{name: "whitespace only", value: "   ", wantValid: false},
		{name: "unsupported scheme", value: "ftp://example.com", wantValid: false},
		{name: "missing host", value: "https://", wantValid: false},
		{name: "relative", value: "example.com/index", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err == nil) != tt.wantValid {
				t.Errorf("IndexURL(%q).Validate() error = %v, wantValid %v", tt.value, err, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidIndexURL) {
				t.Errorf("error does not wrap ErrInvalidIndexURL: %v", err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := DefaultConfig()
	if err := valid.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}

	invalid := &Config{
		Registry: RegistryConfig{Index: "ftp://example.com"},
		UI:       UIConfig{ColorScheme: "sepia"},
	}
	err := invalid.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, ErrInvalidColorScheme) || !errors.Is(err, ErrInvalidIndexURL) {
		t.Errorf("aggregated error = %v, want both field failures reachable", err)
	}
}
