// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "load checkfile"},
			want: "failed to load checkfile",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "load checkfile", Resource: "./checkfile.cue"},
			want: "failed to load checkfile: ./checkfile.cue",
		},
		{
			name: "operation, resource and cause",
			err: &ActionableError{
				Operation: "load checkfile",
				Resource:  "./checkfile.cue",
				Cause:     errors.New("no such file"),
			},
			want: "failed to load checkfile: ./checkfile.cue: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapWithOperation(cause, "run check")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestWrapWithOperation_NilError(t *testing.T) {
	if WrapWithOperation(nil, "run check") != nil {
		t.Error("WrapWithOperation(nil, ...) should return nil")
	}
	if WrapWithContext(nil, "run check", "lint_check") != nil {
		t.Error("WrapWithContext(nil, ...) should return nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	err := NewErrorContext().
		WithOperation("provision environment").
		WithResource("lint_check").
		WithSuggestion("Check the tool name and version").
		WithSuggestion("Verify network access to the package index").
		Wrap(errors.New("uv exited with status 2")).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "failed to provision environment: lint_check") {
		t.Errorf("Format(false) missing main message:\n%s", short)
	}
	if !strings.Contains(short, "• Check the tool name and version") {
		t.Errorf("Format(false) missing suggestion:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "uv exited with status 2") {
		t.Errorf("Format(true) missing cause in chain:\n%s", verbose)
	}
}

func TestErrorContext_Build_RequiresOperation(t *testing.T) {
	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().WithResource("x").BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestErrorContext_WithSuggestions(t *testing.T) {
	err := NewErrorContext().
		WithOperation("parse checkfile").
		WithSuggestions("Run 'checkgate validate'", "Check for duplicate check ids").
		Build()

	if !err.HasSuggestions() {
		t.Fatal("HasSuggestions() = false, want true")
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("len(Suggestions) = %d, want 2", len(err.Suggestions))
	}
}
