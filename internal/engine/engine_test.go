// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// backendsUnderTest returns both built-in backends, skipping native when no
// shell is available (e.g. minimal CI images on Windows).
func backendsUnderTest(t *testing.T) []Backend {
	t.Helper()
	var out []Backend
	native := NewNativeBackend()
	if native.Available() {
		out = append(out, native)
	}
	return append(out, NewVirtualBackend())
}

func TestBackendName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backend BackendName
		wantOK  bool
	}{
		{name: "native", backend: BackendNative, wantOK: true},
		{name: "virtual", backend: BackendVirtual, wantOK: true},
		{name: "unknown", backend: "container", wantOK: false},
		{name: "empty", backend: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.backend.IsValid()
			if ok != tt.wantOK {
				t.Errorf("BackendName(%q).IsValid() = %v, want %v (errs: %v)", tt.backend, ok, tt.wantOK, errs)
			}
		})
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, name := range []BackendName{BackendNative, BackendVirtual} {
		b, err := r.Get(name)
		if err != nil {
			t.Errorf("Get(%s) error = %v", name, err)
			continue
		}
		if b.Name() != name {
			t.Errorf("Get(%s).Name() = %s", name, b.Name())
		}
	}

	if _, err := r.Get("container"); err == nil {
		t.Error("Get(container) error = nil, want not-registered error")
	}
}

func TestBackend_Execute_Success(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX command lines")
	}

	for _, b := range backendsUnderTest(t) {
		t.Run(string(b.Name()), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			res := b.Execute(&Invocation{
				Context: context.Background(),
				Command: "echo hello",
				WorkDir: t.TempDir(),
				Stdout:  &stdout,
				Stderr:  &stderr,
			})

			if !res.Success() {
				t.Fatalf("Execute() = exit %s, err %v", res.ExitCode, res.Error)
			}
			if got := strings.TrimSpace(stdout.String()); got != "hello" {
				t.Errorf("stdout = %q, want hello", got)
			}
		})
	}
}

func TestBackend_Execute_NonzeroExitIsNotError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX command lines")
	}

	for _, b := range backendsUnderTest(t) {
		t.Run(string(b.Name()), func(t *testing.T) {
			res := b.Execute(&Invocation{
				Context: context.Background(),
				Command: "exit 4",
				WorkDir: t.TempDir(),
				Stdout:  &bytes.Buffer{},
				Stderr:  &bytes.Buffer{},
			})

			if res.ExitCode != 4 {
				t.Errorf("ExitCode = %s, want 4", res.ExitCode)
			}
			if res.Error != nil {
				t.Errorf("Error = %v, want nil for a normal nonzero exit", res.Error)
			}
		})
	}
}

func TestBackend_Execute_BinDirShadowsPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shim script")
	}

	binDir := t.TempDir()
	shim := filepath.Join(binDir, "gatetool")
	if err := os.WriteFile(shim, []byte("#!/bin/sh\necho from-env\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	for _, b := range backendsUnderTest(t) {
		t.Run(string(b.Name()), func(t *testing.T) {
			var stdout bytes.Buffer
			res := b.Execute(&Invocation{
				Context: context.Background(),
				Command: "gatetool",
				BinDir:  binDir,
				WorkDir: t.TempDir(),
				Stdout:  &stdout,
				Stderr:  &bytes.Buffer{},
			})

			if !res.Success() {
				t.Fatalf("Execute() = exit %s, err %v", res.ExitCode, res.Error)
			}
			if got := strings.TrimSpace(stdout.String()); got != "from-env" {
				t.Errorf("stdout = %q, want from-env", got)
			}
		})
	}
}

func TestBackend_Execute_Cancellation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX command lines")
	}

	for _, b := range backendsUnderTest(t) {
		t.Run(string(b.Name()), func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			start := time.Now()
			res := b.Execute(&Invocation{
				Context: ctx,
				Command: "sleep 30",
				WorkDir: t.TempDir(),
				Stdout:  &bytes.Buffer{},
				Stderr:  &bytes.Buffer{},
			})

			if time.Since(start) > 10*time.Second {
				t.Fatal("Execute() did not honor context cancellation")
			}
			if res.Success() {
				t.Error("Execute() reported success for a cancelled command")
			}
		})
	}
}

func TestInvocation_Environ(t *testing.T) {
	inv := &Invocation{
		BinDir:   "/env/bin",
		EnvRoot:  "/env",
		ExtraEnv: map[string]string{"CHECKGATE_TEST_MARKER": "1"},
	}

	var path, venv, marker string
	for _, e := range inv.Environ() {
		switch {
		case strings.HasPrefix(e, "PATH="):
			path = e
		case strings.HasPrefix(e, "VIRTUAL_ENV="):
			venv = e
		case strings.HasPrefix(e, "CHECKGATE_TEST_MARKER="):
			marker = e
		}
	}

	if !strings.HasPrefix(path, "PATH=/env/bin"+string(filepath.ListSeparator)) && path != "PATH=/env/bin" {
		t.Errorf("PATH not prefixed with bin dir: %q", path)
	}
	if venv != "VIRTUAL_ENV=/env" {
		t.Errorf("VIRTUAL_ENV = %q, want /env", venv)
	}
	if marker != "CHECKGATE_TEST_MARKER=1" {
		t.Errorf("extra env missing: %q", marker)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if ok, _ := ExitCode(0).IsValid(); !ok {
		t.Error("ExitCode(0).IsValid() = false")
	}
	if ok, _ := ExitCode(256).IsValid(); ok {
		t.Error("ExitCode(256).IsValid() = true")
	}
	if ok, _ := ExitCode(-1).IsValid(); ok {
		t.Error("ExitCode(-1).IsValid() = true")
	}
	if !ExitCode(0).IsSuccess() || ExitCode(1).IsSuccess() {
		t.Error("ExitCode.IsSuccess() misreports")
	}
	if ExitCode(42).String() != "42" {
		t.Error("ExitCode.String() != 42")
	}
}
