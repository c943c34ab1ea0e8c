// SPDX-License-Identifier: MPL-2.0

package checkfile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Validation limits for user-provided checkfile fields.
const (
	// MaxCheckIDLength is the maximum allowed length for check identifiers.
	MaxCheckIDLength = 256
	// MaxCommandLength is the maximum allowed length for command templates.
	MaxCommandLength = 4096
	// MaxGlobLength is the maximum allowed length for file glob patterns.
	MaxGlobLength = 1024
)

// FilesPlaceholder is the token in a command template that is replaced
// with the expanded file set at execution time.
const FilesPlaceholder = "{files}"

var (
	// ErrInvalidCheckID is the sentinel error wrapped by InvalidCheckIDError.
	ErrInvalidCheckID = errors.New("invalid check id")
	// ErrInvalidToolName is the sentinel error wrapped by InvalidToolNameError.
	ErrInvalidToolName = errors.New("invalid tool name")
	// ErrInvalidToolVersion is the sentinel error wrapped by InvalidToolVersionError.
	ErrInvalidToolVersion = errors.New("invalid tool version")
	// ErrInvalidCommandTemplate is the sentinel error wrapped by InvalidCommandTemplateError.
	ErrInvalidCommandTemplate = errors.New("invalid command template")
	// ErrInvalidFileGlob is the sentinel error wrapped by InvalidFileGlobError.
	ErrInvalidFileGlob = errors.New("invalid file glob")
	// ErrInvalidInterpreterVersion is the sentinel error wrapped by InvalidInterpreterVersionError.
	ErrInvalidInterpreterVersion = errors.New("invalid interpreter version")

	// checkIDRegex validates check identifiers. Identifiers must start with
	// a letter and can include letters, digits, underscores, and hyphens.
	checkIDRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

	// toolNameRegex validates tool names for safe argv construction.
	// Tool names must start with alphanumeric and can include . _ + -
	toolNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)
)

type (
	// CheckID is the unique identifier of a check (e.g. "format_check").
	CheckID string

	// InvalidCheckIDError is returned when a CheckID value is not recognized.
	// It wraps ErrInvalidCheckID for errors.Is() compatibility.
	InvalidCheckIDError struct {
		Value  CheckID
		Reason string
	}

	// ToolName is the name of the verification tool a check installs and
	// invokes (e.g. "isort", "pylint").
	ToolName string

	// InvalidToolNameError is returned when a ToolName value is malformed.
	// It wraps ErrInvalidToolName for errors.Is() compatibility.
	InvalidToolNameError struct {
		Value  ToolName
		Reason string
	}

	// ToolVersion is a pinned tool version. The empty string means "latest";
	// anything else must be valid semver (loose two-part versions like
	// "5.13" are accepted).
	ToolVersion string

	// InvalidToolVersionError is returned when a ToolVersion value does not
	// parse as a version. It wraps ErrInvalidToolVersion for errors.Is().
	InvalidToolVersionError struct {
		Value ToolVersion
		Cause error
	}

	// CommandTemplate is the command line a check executes, parameterized by
	// the {files} placeholder.
	CommandTemplate string

	// InvalidCommandTemplateError is returned when a CommandTemplate is empty,
	// oversized, or missing the {files} placeholder. It wraps
	// ErrInvalidCommandTemplate for errors.Is() compatibility.
	InvalidCommandTemplateError struct {
		Value  CommandTemplate
		Reason string
	}

	// FileGlob is the path pattern a check is evaluated against
	// (e.g. "src/**/*.py"). Recursive ** segments are supported.
	FileGlob string

	// InvalidFileGlobError is returned when a FileGlob value is empty or
	// oversized. It wraps ErrInvalidFileGlob for errors.Is() compatibility.
	InvalidFileGlobError struct {
		Value  FileGlob
		Reason string
	}

	// InterpreterVersion is the pinned interpreter version every environment
	// is provisioned with (e.g. "3.12").
	InterpreterVersion string

	// InvalidInterpreterVersionError is returned when an InterpreterVersion
	// does not parse as a version. It wraps ErrInvalidInterpreterVersion.
	InvalidInterpreterVersionError struct {
		Value InterpreterVersion
		Cause error
	}
)

// Error implements the error interface.
func (e *InvalidCheckIDError) Error() string {
	return fmt.Sprintf("invalid check id %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidCheckID so callers can use errors.Is.
func (e *InvalidCheckIDError) Unwrap() error { return ErrInvalidCheckID }

// Error implements the error interface.
func (e *InvalidToolNameError) Error() string {
	return fmt.Sprintf("invalid tool name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidToolName so callers can use errors.Is.
func (e *InvalidToolNameError) Unwrap() error { return ErrInvalidToolName }

// Error implements the error interface.
func (e *InvalidToolVersionError) Error() string {
	return fmt.Sprintf("invalid tool version %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidToolVersion so callers can use errors.Is.
func (e *InvalidToolVersionError) Unwrap() error { return ErrInvalidToolVersion }

// Error implements the error interface.
func (e *InvalidCommandTemplateError) Error() string {
	return fmt.Sprintf("invalid command template %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidCommandTemplate so callers can use errors.Is.
func (e *InvalidCommandTemplateError) Unwrap() error { return ErrInvalidCommandTemplate }

// Error implements the error interface.
func (e *InvalidFileGlobError) Error() string {
	return fmt.Sprintf("invalid file glob %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidFileGlob so callers can use errors.Is.
func (e *InvalidFileGlobError) Unwrap() error { return ErrInvalidFileGlob }

// Error implements the error interface.
func (e *InvalidInterpreterVersionError) Error() string {
	return fmt.Sprintf("invalid interpreter version %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidInterpreterVersion so callers can use errors.Is.
func (e *InvalidInterpreterVersionError) Unwrap() error { return ErrInvalidInterpreterVersion }

// IsValid returns whether the CheckID is well formed, and a list of
// validation errors if it is not.
func (id CheckID) IsValid() (bool, []error) {
	if strings.TrimSpace(string(id)) == "" {
		return false, []error{&InvalidCheckIDError{Value: id, Reason: "must not be empty"}}
	}
	if len(id) > MaxCheckIDLength {
		return false, []error{&InvalidCheckIDError{Value: id, Reason: fmt.Sprintf("exceeds %d characters", MaxCheckIDLength)}}
	}
	if !checkIDRegex.MatchString(string(id)) {
		return false, []error{&InvalidCheckIDError{Value: id, Reason: "must start with a letter and contain only letters, digits, underscores, and hyphens"}}
	}
	return true, nil
}

// String returns the check id as a plain string.
func (id CheckID) String() string { return string(id) }

// IsValid returns whether the ToolName is well formed, and a list of
// validation errors if it is not.
func (n ToolName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidToolNameError{Value: n, Reason: "must not be empty"}}
	}
	if !toolNameRegex.MatchString(string(n)) {
		return false, []error{&InvalidToolNameError{Value: n, Reason: "must start with an alphanumeric and contain only alphanumerics, dots, underscores, pluses, and hyphens"}}
	}
	return true, nil
}

// String returns the tool name as a plain string.
func (n ToolName) String() string { return string(n) }

// IsValid returns whether the ToolVersion is empty (latest) or parses as a
// version, and a list of validation errors if it is not.
func (v ToolVersion) IsValid() (bool, []error) {
	if v == "" {
		return true, nil
	}
	if _, err := semver.NewVersion(string(v)); err != nil {
		return false, []error{&InvalidToolVersionError{Value: v, Cause: err}}
	}
	return true, nil
}

// IsPinned returns true if the version is pinned rather than "latest".
func (v ToolVersion) IsPinned() bool { return v != "" }

// String returns the tool version as a plain string.
func (v ToolVersion) String() string { return string(v) }

// IsValid returns whether the CommandTemplate is well formed, and a list of
// validation errors if it is not.
func (t CommandTemplate) IsValid() (bool, []error) {
	if strings.TrimSpace(string(t)) == "" {
		return false, []error{&InvalidCommandTemplateError{Value: t, Reason: "must not be empty"}}
	}
	if len(t) > MaxCommandLength {
		return false, []error{&InvalidCommandTemplateError{Value: t, Reason: fmt.Sprintf("exceeds %d characters", MaxCommandLength)}}
	}
	if !strings.Contains(string(t), FilesPlaceholder) {
		return false, []error{&InvalidCommandTemplateError{Value: t, Reason: "must contain the " + FilesPlaceholder + " placeholder"}}
	}
	return true, nil
}

// String returns the command template as a plain string.
func (t CommandTemplate) String() string { return string(t) }

// IsValid returns whether the FileGlob is well formed, and a list of
// validation errors if it is not.
func (g FileGlob) IsValid() (bool, []error) {
	if strings.TrimSpace(string(g)) == "" {
		return false, []error{&InvalidFileGlobError{Value: g, Reason: "must not be empty"}}
	}
	if len(g) > MaxGlobLength {
		return false, []error{&InvalidFileGlobError{Value: g, Reason: fmt.Sprintf("exceeds %d characters", MaxGlobLength)}}
	}
	return true, nil
}

// String returns the file glob as a plain string.
func (g FileGlob) String() string { return string(g) }

// IsValid returns whether the InterpreterVersion parses as a version, and a
// list of validation errors if it is not. Unlike ToolVersion, the
// interpreter version must always be pinned.
func (v InterpreterVersion) IsValid() (bool, []error) {
	if v == "" {
		return false, []error{&InvalidInterpreterVersionError{Value: v, Cause: errors.New("must not be empty")}}
	}
	if _, err := semver.NewVersion(string(v)); err != nil {
		return false, []error{&InvalidInterpreterVersionError{Value: v, Cause: err}}
	}
	return true, nil
}

// String returns the interpreter version as a plain string.
func (v InterpreterVersion) String() string { return string(v) }
