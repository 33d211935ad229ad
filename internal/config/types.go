// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/fpgawars/icm/internal/remote"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark styles.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light styles.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidBaseURL is returned when a BaseURL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL")
	// ErrInvalidTimeout is returned when a Timeout is not a positive duration.
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidChunkSize is returned for non-positive chunk sizes.
	ErrInvalidChunkSize = errors.New("invalid chunk size")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects light or dark terminal styles.
	ColorScheme string

	// BaseURL is the owner URL collection repositories live under.
	BaseURL string

	// Timeout is a Go duration string such as "10s".
	Timeout string

	// FieldError describes one invalid configuration value.
	FieldError struct {
		Field string
		Value any
		Err   error
	}

	// InvalidConfigError collects every invalid field of a Config.
	// It wraps ErrInvalidConfig and every field error.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// CollectionsDir is the local collection store; empty selects the default.
		CollectionsDir string `json:"collections_dir" mapstructure:"collections_dir"`
		// Remote configures where and how collections are fetched.
		Remote RemoteConfig `json:"remote" mapstructure:"remote"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// RemoteConfig configures the collection hosting service.
	RemoteConfig struct {
		BaseURL   BaseURL `json:"base_url" mapstructure:"base_url"`
		Timeout   Timeout `json:"timeout" mapstructure:"timeout"`
		ChunkSize int     `json:"chunk_size" mapstructure:"chunk_size"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Progress renders progress bars for downloads and extraction.
		Progress bool `json:"progress" mapstructure:"progress"`
		// ColorScheme picks the style for rendered help pages.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{
			BaseURL:   remote.DefaultBaseURL,
			Timeout:   Timeout(remote.DefaultTimeout.String()),
			ChunkSize: remote.DefaultChunkSize,
		},
		UI: UIConfig{
			Progress:    true,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid returns whether every field holds a usable value, and the field
// errors when not.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.Remote.BaseURL.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Remote.Timeout.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if c.Remote.ChunkSize <= 0 {
		errs = append(errs, &FieldError{Field: "remote.chunk_size", Value: c.Remote.ChunkSize, Err: ErrInvalidChunkSize})
	}
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msg := fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msg += "\n  " + fe.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so both
// the umbrella sentinel and each field's sentinel match errors.Is().
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v (got %q)", e.Field, e.Err, fmt.Sprint(e.Value))
}

// Unwrap returns the field's sentinel error.
func (e *FieldError) Unwrap() error { return e.Err }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&FieldError{Field: "ui.color_scheme", Value: cs, Err: ErrInvalidColorScheme}}
	}
}

// String returns the string representation of the BaseURL.
func (u BaseURL) String() string { return string(u) }

// IsValid returns whether the URL is absolute with an http or https scheme.
func (u BaseURL) IsValid() (bool, []error) {
	parsed, err := url.Parse(string(u))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return false, []error{&FieldError{Field: "remote.base_url", Value: u, Err: ErrInvalidBaseURL}}
	}
	return true, nil
}

// String returns the string representation of the Timeout.
func (t Timeout) String() string { return string(t) }

// Duration parses the timeout, falling back to the remote default when the
// value is not a positive duration.
func (t Timeout) Duration() time.Duration {
	d, err := time.ParseDuration(string(t))
	if err != nil || d <= 0 {
		return remote.DefaultTimeout
	}
	return d
}

// IsValid returns whether the timeout is a positive Go duration.
func (t Timeout) IsValid() (bool, []error) {
	d, err := time.ParseDuration(string(t))
	if err != nil || d <= 0 {
		return false, []error{&FieldError{Field: "remote.timeout", Value: t, Err: ErrInvalidTimeout}}
	}
	return true, nil
}
