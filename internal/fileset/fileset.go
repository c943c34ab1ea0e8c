// SPDX-License-Identifier: MPL-2.0

// Package fileset expands path globs into the ordered file sets checks
// are evaluated against.
package fileset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"checkgate/pkg/checkfile"
)

// FileSet is an ordered collection of source file paths. The order is
// stable (lexical) so repeated runs see identical input.
type FileSet []string

// Expand resolves a glob pattern relative to root into a FileSet.
// Recursive ** segments are supported. Only regular files are included;
// matches are returned sorted and relative to root. An empty result is
// valid: a check over zero files simply has nothing to report.
func Expand(root string, glob checkfile.FileGlob) (FileSet, error) {
	if ok, errs := glob.IsValid(); !ok {
		return nil, errs[0]
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, string(glob))
	if err != nil {
		return nil, fmt.Errorf("failed to expand glob %q under %s: %w", glob, root, err)
	}

	files := make(FileSet, 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", m, err)
		}
		if info.Mode().IsRegular() {
			files = append(files, filepath.FromSlash(m))
		}
	}

	sort.Strings(files)
	return files, nil
}

// Empty returns true if the set contains no files.
func (f FileSet) Empty() bool { return len(f) == 0 }
