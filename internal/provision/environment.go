// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"checkgate/pkg/checkfile"
)

// Environment is one isolated interpreter-plus-tool installation, owned
// exclusively by a single check for the duration of one execution.
type Environment struct {
	root   string
	tool   checkfile.Tool
	python checkfile.InterpreterVersion

	releaseOnce sync.Once
	releaseErr  error
}

// NewEnvironment wraps an existing directory as an Environment. It is the
// constructor alternate Provisioner implementations use; the directory
// becomes owned by the returned Environment and is removed on Release.
func NewEnvironment(root string, tool checkfile.Tool, python checkfile.InterpreterVersion) *Environment {
	return &Environment{root: root, tool: tool, python: python}
}

// Root returns the environment's private directory. All filesystem writes
// made during provisioning are scoped beneath it.
func (e *Environment) Root() string { return e.root }

// BinDir returns the directory holding the environment's executables.
func (e *Environment) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.root, "Scripts")
	}
	return filepath.Join(e.root, "bin")
}

// PythonPath returns the environment's interpreter executable.
func (e *Environment) PythonPath() string {
	name := "python"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(e.BinDir(), name)
}

// Tool returns the one tool installed into this environment.
func (e *Environment) Tool() checkfile.Tool { return e.tool }

// Python returns the pinned interpreter version.
func (e *Environment) Python() checkfile.InterpreterVersion { return e.python }

// Release removes the environment's directory. It is idempotent: repeated
// calls return the first removal's error without touching the filesystem
// again.
func (e *Environment) Release() error {
	e.releaseOnce.Do(func() {
		e.releaseErr = os.RemoveAll(e.root)
	})
	return e.releaseErr
}
