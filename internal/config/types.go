// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidIndexURL is returned when a registry index URL cannot be used.
	ErrInvalidIndexURL = errors.New("invalid registry index url")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// IndexURL is a registry index URL override. The zero value ("") is
	// valid and means "use the default registry index".
	IndexURL string

	// InvalidIndexURLError is returned when an IndexURL value is not an
	// absolute http(s) URL. It wraps ErrInvalidIndexURL for errors.Is().
	InvalidIndexURLError struct {
		Value  IndexURL
		Reason string
	}

	// RegistryConfig selects which registry index dependencies without an
	// explicit source resolve against.
	RegistryConfig struct {
		Index IndexURL `mapstructure:"index"`
	}

	// UIConfig holds terminal presentation settings.
	UIConfig struct {
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		Verbose     bool        `mapstructure:"verbose"`
	}

	// WarningsConfig controls how non-fatal manifest warnings are treated.
	WarningsConfig struct {
		// Deny makes warnings fail the check command.
		Deny bool `mapstructure:"deny"`
	}

	// Config is the full tool configuration.
	Config struct {
		Registry RegistryConfig `mapstructure:"registry"`
		UI       UIConfig       `mapstructure:"ui"`
		Warnings WarningsConfig `mapstructure:"warnings"`
	}

	// InvalidConfigError aggregates the validation failures of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Errors []error
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", string(e.Value))
}

// Unwrap returns the sentinel for errors.Is.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// Validate checks that the color scheme is one of the recognized values.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// Error implements the error interface.
func (e *InvalidIndexURLError) Error() string {
	return fmt.Sprintf("invalid registry index url %q: %s", string(e.Value), e.Reason)
}

// Unwrap returns the sentinel for errors.Is.
func (e *InvalidIndexURLError) Unwrap() error {
	return ErrInvalidIndexURL
}

// Validate checks that the index URL is empty or an absolute http(s) URL.
func (u IndexURL) Validate() error {
	if u == "" {
		return nil
	}
	if strings.TrimSpace(string(u)) == "" {
		return &InvalidIndexURLError{Value: u, Reason: "must not be whitespace-only"}
	}
	parsed, err := url.Parse(string(u))
	if err != nil {
		return &InvalidIndexURLError{Value: u, Reason: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &InvalidIndexURLError{Value: u, Reason: "scheme must be http or https"}
	}
	if parsed.Host == "" {
		return &InvalidIndexURLError{Value: u, Reason: "missing host"}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns the sentinel plus the individual failures for errors.Is.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.Errors...)
}

// Validate checks every field-level constraint the CUE schema cannot
// express.
func (c *Config) Validate() error {
	var errs []error
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Registry.Index.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{Errors: errs}
	}
	return nil
}

// DefaultConfig returns the compiled-in defaults used when no config file
// is present.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
