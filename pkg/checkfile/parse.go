// SPDX-License-Identifier: MPL-2.0

package checkfile

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"checkgate/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
)

//go:embed checkfile_schema.cue
var checkfileSchema string

// Parse reads and parses a checkfile from the given path. The format is
// chosen by extension: .cue (schema-validated) or .toml.
func Parse(path string) (*Checkfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkfile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses checkfile content from bytes. The path determines the
// format and is recorded on the result for error reporting.
func ParseBytes(data []byte, path string) (*Checkfile, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return parseTOML(data, path)
	default:
		return parseCUE(data, path)
	}
}

// parseCUE runs the schema-unify-decode flow against the embedded schema,
// then applies the shared Go-level validation.
func parseCUE(data []byte, path string) (*Checkfile, error) {
	cf, err := cueutil.Decode[Checkfile](
		checkfileSchema,
		data,
		"#Checkfile",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	cf.FilePath = path
	if err := cf.validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

// parseTOML decodes a TOML checkfile. TOML input has no schema pass, so
// the Go-level validation is the only gate.
func parseTOML(data []byte, path string) (*Checkfile, error) {
	var cf Checkfile
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cf.FilePath = path
	if err := cf.validate(); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Discover locates a checkfile starting from dir: checkfile.cue is
// preferred, checkfile.toml is the fallback. Returns the path of the first
// match or an error naming the candidates.
func Discover(dir string) (string, error) {
	candidates := []string{
		filepath.Join(dir, CheckfileName+".cue"),
		filepath.Join(dir, CheckfileName+".toml"),
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("no checkfile found in %s (looked for %s.cue, %s.toml)", dir, CheckfileName, CheckfileName)
}
