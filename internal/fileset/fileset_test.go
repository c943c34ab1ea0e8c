// SPDX-License-Identifier: MPL-2.0

package fileset_test

import (
	"os"
	"path/filepath"
	"testing"

	"checkgate/internal/fileset"
	"checkgate/pkg/checkfile"
)

// writeTree creates the given relative files under dir.
func writeTree(t *testing.T, dir string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"src/pkg/a.py",
		"src/pkg/sub/b.py",
		"src/readme.md",
		"tests/c.py",
	)

	tests := []struct {
		name string
		glob string
		want []string
	}{
		{
			name: "recursive python sources",
			glob: "src/**/*.py",
			want: []string{"src/pkg/a.py", "src/pkg/sub/b.py"},
		},
		{
			name: "everything python",
			glob: "**/*.py",
			want: []string{"src/pkg/a.py", "src/pkg/sub/b.py", "tests/c.py"},
		},
		{
			name: "no matches",
			glob: "src/**/*.go",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fileset.Expand(dir, checkfile.FileGlob(tt.glob))
			if err != nil {
				t.Fatalf("Expand(%q) error = %v", tt.glob, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expand(%q) = %v, want %v", tt.glob, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != filepath.FromSlash(tt.want[i]) {
					t.Errorf("Expand(%q)[%d] = %q, want %q", tt.glob, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExpand_DirectoriesExcluded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "src/a.py")
	if err := os.MkdirAll(filepath.Join(dir, "src", "b.py"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := fileset.Expand(dir, "src/*.py")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(got) != 1 || got[0] != filepath.FromSlash("src/a.py") {
		t.Errorf("Expand() = %v, want only src/a.py", got)
	}
}

func TestExpand_InvalidGlob(t *testing.T) {
	t.Parallel()

	if _, err := fileset.Expand(t.TempDir(), ""); err == nil {
		t.Fatal("Expand(\"\") error = nil, want validation error")
	}
}

func TestFileSet_Empty(t *testing.T) {
	t.Parallel()

	if !(fileset.FileSet{}).Empty() {
		t.Error("empty FileSet reported as non-empty")
	}
	if (fileset.FileSet{"a.py"}).Empty() {
		t.Error("non-empty FileSet reported as empty")
	}
}
