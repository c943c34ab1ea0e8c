// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Backend name constants for the built-in execution backends.
const (
	// BackendNative runs commands through the system shell.
	BackendNative BackendName = "native"
	// BackendVirtual runs commands through the embedded mvdan/sh interpreter.
	BackendVirtual BackendName = "virtual"
)

type (
	// BackendName identifies an execution backend.
	BackendName string

	// Invocation contains everything a backend needs to execute one check
	// command inside a provisioned environment.
	Invocation struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Command is the fully expanded command line (no placeholders left).
		Command string
		// BinDir is the environment's executable directory; it is prepended
		// to PATH so the provisioned tool shadows any host installation.
		BinDir string
		// EnvRoot is the environment's root directory, exported as
		// VIRTUAL_ENV for interpreter tooling that keys off it.
		EnvRoot string
		// WorkDir is the directory the command runs in.
		WorkDir string
		// ExtraEnv contains additional environment variables.
		ExtraEnv map[string]string
		// Stdout is where standard output is written.
		Stdout io.Writer
		// Stderr is where standard error is written.
		Stderr io.Writer
	}

	// Result contains the result of a check command execution.
	Result struct {
		// ExitCode is the exit code of the command.
		ExitCode ExitCode
		// Error contains any infrastructure error. A nonzero ExitCode with
		// a nil Error means the command ran and reported findings.
		Error error
	}

	// Backend defines the interface for check command execution.
	Backend interface {
		// Name returns the backend name.
		Name() BackendName
		// Available returns whether this backend is usable on the current system.
		Available() bool
		// Execute runs a command in this backend.
		Execute(inv *Invocation) *Result
	}

	// Registry holds the available backends.
	Registry struct {
		backends map[BackendName]Backend
	}
)

// IsValid returns whether the BackendName is one of the known backends,
// and a list of validation errors if it is not.
func (n BackendName) IsValid() (bool, []error) {
	switch n {
	case BackendNative, BackendVirtual:
		return true, nil
	}
	return false, []error{fmt.Errorf("unknown backend %q (known: %s, %s)", n, BackendNative, BackendVirtual)}
}

// String returns the backend name as a plain string.
func (n BackendName) String() string { return string(n) }

// Success returns true if the command executed and exited zero.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewErrorResult creates a Result for an infrastructure failure.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result for a normal process exit. Use this
// for nonzero exits that represent findings rather than failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// NewRegistry creates a registry with the built-in backends registered.
func NewRegistry() *Registry {
	r := &Registry{backends: make(map[BackendName]Backend)}
	r.Register(NewNativeBackend())
	r.Register(NewVirtualBackend())
	return r
}

// Register adds a backend to the registry.
func (r *Registry) Register(b Backend) {
	r.backends[b.Name()] = b
}

// Get returns a backend by name.
func (r *Registry) Get(name BackendName) (Backend, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("backend %q not registered", name)
	}
	return b, nil
}

// Environ builds the process environment for an invocation: the host
// environment with PATH prefixed by the environment's bin directory and
// VIRTUAL_ENV pointing at its root, plus any extra variables.
func (inv *Invocation) Environ() []string {
	env := os.Environ()
	out := make([]string, 0, len(env)+len(inv.ExtraEnv)+2)

	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") || strings.HasPrefix(e, "VIRTUAL_ENV=") {
			continue
		}
		out = append(out, e)
	}

	path := os.Getenv("PATH")
	if inv.BinDir != "" {
		if path == "" {
			path = inv.BinDir
		} else {
			path = inv.BinDir + string(filepath.ListSeparator) + path
		}
	}
	out = append(out, "PATH="+path)

	if inv.EnvRoot != "" {
		out = append(out, "VIRTUAL_ENV="+inv.EnvRoot)
	}

	for k, v := range inv.ExtraEnv {
		out = append(out, k+"="+v)
	}

	return out
}
