// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const (
	// BackendNative runs check commands in the host system shell.
	// Defined locally to avoid coupling config to internal/engine;
	// the CLI casts to engine.BackendName at the boundary.
	BackendNative BackendMode = "native"
	// BackendVirtual runs check commands in the embedded mvdan/sh interpreter.
	BackendVirtual BackendMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultPackageManager provisions environments when none is configured.
	DefaultPackageManager PackageManagerName = "uv"

	// maxDefaultJobs caps the derived worker count on large machines.
	maxDefaultJobs = 4
)

var (
	// ErrInvalidBackendMode is returned when a BackendMode value is not recognized.
	ErrInvalidBackendMode = errors.New("invalid backend mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPackageManager is returned when a PackageManagerName is whitespace-only.
	ErrInvalidPackageManager = errors.New("invalid package manager")
	// ErrInvalidJobs is returned when a job count is negative.
	ErrInvalidJobs = errors.New("invalid job count")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// BackendMode selects the execution backend for check commands.
	BackendMode string

	// InvalidBackendModeError is returned when a BackendMode value is not
	// recognized. It wraps ErrInvalidBackendMode for errors.Is() compatibility.
	InvalidBackendModeError struct {
		Value BackendMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// PackageManagerName is the executable used to provision environments.
	// A valid name must be non-empty and not whitespace-only.
	PackageManagerName string

	// InvalidPackageManagerError is returned when a PackageManagerName is
	// empty or whitespace-only. It wraps ErrInvalidPackageManager.
	InvalidPackageManagerError struct {
		Value PackageManagerName
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// ColorScheme controls colored output: auto, dark, or light.
		ColorScheme ColorScheme `toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug-level logging.
		Verbose bool `toml:"verbose" mapstructure:"verbose"`
	}

	// Config holds the application configuration.
	Config struct {
		// PackageManager is the executable used to provision environments.
		PackageManager PackageManagerName `toml:"package_manager" mapstructure:"package_manager"`
		// Backend sets the default execution backend for check commands.
		Backend BackendMode `toml:"backend" mapstructure:"backend"`
		// Jobs bounds concurrently running checks. Zero derives a default
		// from the machine's CPU count.
		Jobs int `toml:"jobs" mapstructure:"jobs"`
		// WorkRoot is where per-check environment directories are created.
		// Empty means the system temporary directory.
		WorkRoot string `toml:"work_root" mapstructure:"work_root"`
		// UI configures terminal output.
		UI UIConfig `toml:"ui" mapstructure:"ui"`
	}
)

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		PackageManager: DefaultPackageManager,
		Backend:        BackendNative,
		Jobs:           defaultJobs(),
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// defaultJobs derives the worker count from the CPU count, capped so a
// big machine does not spawn one package-manager process per core.
func defaultJobs() int {
	n := runtime.NumCPU()
	if n > maxDefaultJobs {
		n = maxDefaultJobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Error implements the error interface.
func (e *InvalidBackendModeError) Error() string {
	return fmt.Sprintf("invalid backend mode %q (must be %q or %q)", e.Value, BackendNative, BackendVirtual)
}

// Unwrap returns ErrInvalidBackendMode so callers can use errors.Is.
func (e *InvalidBackendModeError) Unwrap() error { return ErrInvalidBackendMode }

// IsValid returns whether the BackendMode is a recognized backend, and a
// list of validation errors if it is not.
func (m BackendMode) IsValid() (bool, []error) {
	switch m {
	case BackendNative, BackendVirtual:
		return true, nil
	}
	return false, []error{&InvalidBackendModeError{Value: m}}
}

// String returns the backend mode as a plain string.
func (m BackendMode) String() string { return string(m) }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be %q, %q or %q)",
		e.Value, ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the ColorScheme is recognized, and a list of
// validation errors if it is not.
func (s ColorScheme) IsValid() (bool, []error) {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	}
	return false, []error{&InvalidColorSchemeError{Value: s}}
}

// String returns the color scheme as a plain string.
func (s ColorScheme) String() string { return string(s) }

// Error implements the error interface.
func (e *InvalidPackageManagerError) Error() string {
	return fmt.Sprintf("invalid package manager %q (must be a non-empty executable name)", e.Value)
}

// Unwrap returns ErrInvalidPackageManager so callers can use errors.Is.
func (e *InvalidPackageManagerError) Unwrap() error { return ErrInvalidPackageManager }

// IsValid returns whether the PackageManagerName is non-empty, and a list
// of validation errors if it is not.
func (n PackageManagerName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidPackageManagerError{Value: n}}
	}
	return true, nil
}

// String returns the package manager name as a plain string.
func (n PackageManagerName) String() string { return string(n) }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether every Config field is valid, and the collected
// field-level validation errors if not.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.PackageManager.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Backend.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("%w: %d (must not be negative)", ErrInvalidJobs, c.Jobs))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}
