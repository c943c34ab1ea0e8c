// SPDX-License-Identifier: MPL-2.0

package checkfile

import (
	"errors"
	"fmt"
)

// CheckfileName is the base name for checkfile configuration files.
const CheckfileName = "checkfile"

var (
	// ErrInvalidCheck is the sentinel error wrapped by InvalidCheckError.
	ErrInvalidCheck = errors.New("invalid check definition")
	// ErrInvalidCheckfile is the sentinel error wrapped by InvalidCheckfileError.
	ErrInvalidCheckfile = errors.New("invalid checkfile")
	// ErrDuplicateCheckID is returned when two checks share the same id.
	ErrDuplicateCheckID = errors.New("duplicate check id")
)

type (
	// Tool names the single verification tool a check requires, optionally
	// pinned to a version.
	Tool struct {
		// Name is the tool's package name as known to the package manager.
		Name ToolName `json:"name" toml:"name"`
		// Version pins the tool; empty installs the latest release.
		Version ToolVersion `json:"version,omitempty" toml:"version,omitempty"`
	}

	// Check is one registered quality check: an identifier bound to a tool
	// and the command template that invokes it. Checks are immutable after
	// parse; the registry hands out pointers into the parsed Checkfile.
	Check struct {
		// ID uniquely identifies the check within the checkfile.
		ID CheckID `json:"id" toml:"id"`
		// Description is optional human-readable context for listings.
		Description string `json:"description,omitempty" toml:"description,omitempty"`
		// Tool is the one tool provisioned into the check's environment.
		Tool Tool `json:"tool" toml:"tool"`
		// Command is the invocation template, parameterized by {files}.
		Command CommandTemplate `json:"command" toml:"command"`
		// Files is the glob the check's file set is expanded from.
		Files FileGlob `json:"files" toml:"files"`
	}

	// Toolchain describes the interpreter every environment is provisioned
	// with. One toolchain applies to the whole checkfile.
	Toolchain struct {
		// Python is the pinned interpreter version (e.g. "3.12").
		Python InterpreterVersion `json:"python" toml:"python"`
	}

	// Checkfile is the parsed, validated registry source.
	Checkfile struct {
		// Toolchain is the shared interpreter configuration.
		Toolchain Toolchain `json:"toolchain" toml:"toolchain"`
		// Checks lists the registered checks in file order.
		Checks []Check `json:"checks" toml:"checks"`

		// FilePath stores the path this checkfile was loaded from (not in CUE).
		FilePath string `json:"-" toml:"-"`
	}

	// InvalidCheckError is returned when a check definition fails Go-level
	// validation. It wraps ErrInvalidCheck for errors.Is() compatibility and
	// collects field-level validation errors.
	InvalidCheckError struct {
		ID          CheckID
		FieldErrors []error
	}

	// InvalidCheckfileError is returned when the checkfile as a whole fails
	// validation. It wraps ErrInvalidCheckfile and collects per-check errors.
	InvalidCheckfileError struct {
		FilePath string
		Errors   []error
	}
)

// Error implements the error interface.
func (e *InvalidCheckError) Error() string {
	return fmt.Sprintf("check %q: %v", e.ID, errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidCheck so callers can use errors.Is.
func (e *InvalidCheckError) Unwrap() error { return ErrInvalidCheck }

// Error implements the error interface.
func (e *InvalidCheckfileError) Error() string {
	return fmt.Sprintf("checkfile %s: %v", e.FilePath, errors.Join(e.Errors...))
}

// Unwrap returns ErrInvalidCheckfile so callers can use errors.Is.
func (e *InvalidCheckfileError) Unwrap() error { return ErrInvalidCheckfile }

// IsValid returns whether the check definition is well formed, and a list
// of validation errors if it is not.
func (c *Check) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.ID.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Tool.Name.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Tool.Version.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Command.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Files.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidCheckError{ID: c.ID, FieldErrors: errs}}
	}
	return true, nil
}

// GetCheck finds a check by id. Returns nil if no such check is registered.
func (cf *Checkfile) GetCheck(id CheckID) *Check {
	for i := range cf.Checks {
		if cf.Checks[i].ID == id {
			return &cf.Checks[i]
		}
	}
	return nil
}

// validate performs Go-level validation of the whole checkfile: field
// validity of every check, toolchain pinning, and check id uniqueness.
// CUE-sourced checkfiles have already passed schema validation; TOML
// checkfiles rely entirely on this pass.
func (cf *Checkfile) validate() error {
	var errs []error

	if ok, fieldErrs := cf.Toolchain.Python.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}

	if len(cf.Checks) == 0 {
		errs = append(errs, fmt.Errorf("no checks defined"))
	}

	seen := make(map[CheckID]struct{}, len(cf.Checks))
	for i := range cf.Checks {
		c := &cf.Checks[i]
		if ok, checkErrs := c.IsValid(); !ok {
			errs = append(errs, checkErrs...)
		}
		if _, dup := seen[c.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateCheckID, c.ID))
		}
		seen[c.ID] = struct{}{}
	}

	if len(errs) > 0 {
		return &InvalidCheckfileError{FilePath: cf.FilePath, Errors: errs}
	}
	return nil
}
