// SPDX-License-Identifier: MPL-2.0

package checkfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"checkgate/pkg/checkfile"
)

const validCUE = `
toolchain: python: "3.12"

checks: [
	{
		id:          "format_check"
		description: "import ordering"
		tool: {name: "isort", version: "5.13.2"}
		command: "isort --check-only {files}"
		files:   "src/**/*.py"
	},
	{
		id: "lint_check"
		tool: {name: "pylint"}
		command: "pylint {files}"
		files:   "src/**/*.py"
	},
]
`

const validTOML = `
[toolchain]
python = "3.12"

[[checks]]
id = "type_check"
command = "mypy {files}"
files = "src/**/*.py"

[checks.tool]
name = "mypy"
version = "1.11"
`

func TestParseBytes_CUE(t *testing.T) {
	t.Parallel()

	cf, err := checkfile.ParseBytes([]byte(validCUE), "checkfile.cue")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if got := len(cf.Checks); got != 2 {
		t.Fatalf("len(Checks) = %d, want 2", got)
	}
	if cf.Toolchain.Python != "3.12" {
		t.Errorf("Toolchain.Python = %q, want %q", cf.Toolchain.Python, "3.12")
	}

	c := cf.GetCheck("format_check")
	if c == nil {
		t.Fatal("GetCheck(format_check) = nil")
	}
	if c.Tool.Name != "isort" || c.Tool.Version != "5.13.2" {
		t.Errorf("format_check tool = %s@%s, want isort@5.13.2", c.Tool.Name, c.Tool.Version)
	}
	if cf.GetCheck("nope") != nil {
		t.Error("GetCheck(nope) returned a check")
	}
}

func TestParseBytes_CUE_SchemaViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "bad check id",
			src: `
toolchain: python: "3.12"
checks: [{id: "9lives", tool: {name: "isort"}, command: "isort {files}", files: "**/*.py"}]
`,
			want: "id",
		},
		{
			name: "missing command",
			src: `
toolchain: python: "3.12"
checks: [{id: "lint_check", tool: {name: "pylint"}, files: "**/*.py"}]
`,
			want: "command",
		},
		{
			name: "missing toolchain",
			src:  `checks: []`,
			want: "toolchain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := checkfile.ParseBytes([]byte(tt.src), "checkfile.cue")
			if err == nil {
				t.Fatal("ParseBytes() error = nil, want schema violation")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseBytes() error = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestParseBytes_CUE_DuplicateIDs(t *testing.T) {
	t.Parallel()

	src := `
toolchain: python: "3.12"
checks: [
	{id: "lint_check", tool: {name: "pylint"}, command: "pylint {files}", files: "**/*.py"},
	{id: "lint_check", tool: {name: "flake8"}, command: "flake8 {files}", files: "**/*.py"},
]
`
	_, err := checkfile.ParseBytes([]byte(src), "checkfile.cue")
	if err == nil {
		t.Fatal("ParseBytes() error = nil, want duplicate id error")
	}
	if !errors.Is(err, checkfile.ErrDuplicateCheckID) {
		t.Errorf("ParseBytes() error does not wrap ErrDuplicateCheckID: %v", err)
	}
}

func TestParseBytes_CUE_MissingFilesPlaceholder(t *testing.T) {
	t.Parallel()

	src := `
toolchain: python: "3.12"
checks: [{id: "lint_check", tool: {name: "pylint"}, command: "pylint src/", files: "**/*.py"}]
`
	_, err := checkfile.ParseBytes([]byte(src), "checkfile.cue")
	if err == nil {
		t.Fatal("ParseBytes() error = nil, want template error")
	}
	if !errors.Is(err, checkfile.ErrInvalidCommandTemplate) {
		t.Errorf("ParseBytes() error does not wrap ErrInvalidCommandTemplate: %v", err)
	}
}

func TestParseBytes_TOML(t *testing.T) {
	t.Parallel()

	cf, err := checkfile.ParseBytes([]byte(validTOML), "checkfile.toml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	c := cf.GetCheck("type_check")
	if c == nil {
		t.Fatal("GetCheck(type_check) = nil")
	}
	if c.Tool.Name != "mypy" {
		t.Errorf("type_check tool = %q, want mypy", c.Tool.Name)
	}
}

func TestParseBytes_TOML_UnknownField(t *testing.T) {
	t.Parallel()

	src := validTOML + "\nretries = 3\n"
	_, err := checkfile.ParseBytes([]byte(src), "checkfile.toml")
	if err == nil {
		t.Fatal("ParseBytes() error = nil, want unknown field error")
	}
}

func TestParse_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := checkfile.Parse(filepath.Join(t.TempDir(), "checkfile.cue"))
	if err == nil {
		t.Fatal("Parse() error = nil for missing file")
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("prefers cue over toml", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		for _, name := range []string{"checkfile.cue", "checkfile.toml"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		got, err := checkfile.Discover(dir)
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if filepath.Base(got) != "checkfile.cue" {
			t.Errorf("Discover() = %s, want checkfile.cue", got)
		}
	})

	t.Run("empty dir", func(t *testing.T) {
		t.Parallel()
		_, err := checkfile.Discover(t.TempDir())
		if err == nil {
			t.Fatal("Discover() error = nil for empty dir")
		}
	})
}
