// SPDX-License-Identifier: MPL-2.0

package checkfile_test

import (
	"errors"
	"testing"

	"checkgate/pkg/checkfile"
)

func TestCheckID_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      checkfile.CheckID
		wantOK  bool
		wantErr error
	}{
		{name: "simple id", id: "lint_check", wantOK: true},
		{name: "hyphenated id", id: "format-check", wantOK: true},
		{name: "empty", id: "", wantOK: false, wantErr: checkfile.ErrInvalidCheckID},
		{name: "whitespace only", id: "   ", wantOK: false, wantErr: checkfile.ErrInvalidCheckID},
		{name: "leading digit", id: "1check", wantOK: false, wantErr: checkfile.ErrInvalidCheckID},
		{name: "contains space", id: "lint check", wantOK: false, wantErr: checkfile.ErrInvalidCheckID},
		{name: "contains slash", id: "lint/check", wantOK: false, wantErr: checkfile.ErrInvalidCheckID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.id.IsValid()
			if ok != tt.wantOK {
				t.Errorf("CheckID(%q).IsValid() = %v, want %v (errs: %v)", tt.id, ok, tt.wantOK, errs)
			}
			if !tt.wantOK && !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("CheckID(%q).IsValid() error does not wrap %v", tt.id, tt.wantErr)
			}
		})
	}
}

func TestToolVersion_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		v      checkfile.ToolVersion
		wantOK bool
	}{
		{name: "empty means latest", v: "", wantOK: true},
		{name: "full semver", v: "5.13.2", wantOK: true},
		{name: "two part", v: "5.13", wantOK: true},
		{name: "garbage", v: "not-a-version", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.v.IsValid()
			if ok != tt.wantOK {
				t.Errorf("ToolVersion(%q).IsValid() = %v, want %v (errs: %v)", tt.v, ok, tt.wantOK, errs)
			}
			if !tt.wantOK && !errors.Is(errs[0], checkfile.ErrInvalidToolVersion) {
				t.Errorf("ToolVersion(%q).IsValid() error does not wrap ErrInvalidToolVersion", tt.v)
			}
		})
	}

	if checkfile.ToolVersion("").IsPinned() {
		t.Error("empty ToolVersion reported as pinned")
	}
	if !checkfile.ToolVersion("5.13.2").IsPinned() {
		t.Error("pinned ToolVersion reported as latest")
	}
}

func TestCommandTemplate_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tmpl   checkfile.CommandTemplate
		wantOK bool
	}{
		{name: "with placeholder", tmpl: "isort --check-only {files}", wantOK: true},
		{name: "missing placeholder", tmpl: "isort --check-only src/", wantOK: false},
		{name: "empty", tmpl: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.tmpl.IsValid()
			if ok != tt.wantOK {
				t.Errorf("CommandTemplate(%q).IsValid() = %v, want %v (errs: %v)", tt.tmpl, ok, tt.wantOK, errs)
			}
			if !tt.wantOK && !errors.Is(errs[0], checkfile.ErrInvalidCommandTemplate) {
				t.Errorf("CommandTemplate(%q).IsValid() error does not wrap ErrInvalidCommandTemplate", tt.tmpl)
			}
		})
	}
}

func TestInterpreterVersion_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		v      checkfile.InterpreterVersion
		wantOK bool
	}{
		{name: "minor version", v: "3.12", wantOK: true},
		{name: "patch version", v: "3.12.1", wantOK: true},
		{name: "empty not allowed", v: "", wantOK: false},
		{name: "garbage", v: "latest", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.v.IsValid()
			if ok != tt.wantOK {
				t.Errorf("InterpreterVersion(%q).IsValid() = %v, want %v (errs: %v)", tt.v, ok, tt.wantOK, errs)
			}
			if !tt.wantOK && !errors.Is(errs[0], checkfile.ErrInvalidInterpreterVersion) {
				t.Errorf("InterpreterVersion(%q).IsValid() error does not wrap ErrInvalidInterpreterVersion", tt.v)
			}
		})
	}
}

func TestCheck_IsValid_CollectsFieldErrors(t *testing.T) {
	t.Parallel()

	c := &checkfile.Check{
		ID:      "",
		Tool:    checkfile.Tool{Name: "", Version: "bogus"},
		Command: "no placeholder",
		Files:   "",
	}

	ok, errs := c.IsValid()
	if ok {
		t.Fatal("Check.IsValid() = true for fully invalid check")
	}
	if len(errs) != 1 {
		t.Fatalf("Check.IsValid() returned %d errors, want 1 wrapper", len(errs))
	}
	if !errors.Is(errs[0], checkfile.ErrInvalidCheck) {
		t.Error("Check.IsValid() error does not wrap ErrInvalidCheck")
	}

	var checkErr *checkfile.InvalidCheckError
	if !errors.As(errs[0], &checkErr) {
		t.Fatal("Check.IsValid() error is not *InvalidCheckError")
	}
	if len(checkErr.FieldErrors) != 5 {
		t.Errorf("InvalidCheckError.FieldErrors has %d entries, want 5", len(checkErr.FieldErrors))
	}
}
