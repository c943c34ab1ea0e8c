// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// NativeBackend executes check commands through the system's default shell.
type NativeBackend struct {
	// Shell overrides the default shell.
	Shell string
}

// NewNativeBackend creates a new native backend.
func NewNativeBackend() *NativeBackend {
	return &NativeBackend{}
}

// Name returns the backend name.
func (b *NativeBackend) Name() BackendName {
	return BackendNative
}

// Available returns whether a usable shell exists on this system.
func (b *NativeBackend) Available() bool {
	_, err := b.getShell()
	return err == nil
}

// Execute runs a check command using the system shell.
func (b *NativeBackend) Execute(inv *Invocation) *Result {
	shell, err := b.getShell()
	if err != nil {
		return NewErrorResult(1, err)
	}

	args := append(shellArgs(shell), inv.Command)
	cmd := exec.CommandContext(inv.Context, shell, args...)
	cmd.Dir = inv.WorkDir
	cmd.Env = inv.Environ()
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(1, fmt.Errorf("failed to execute command: %w", err))
	}

	return NewExitCodeResult(0)
}

// getShell determines which shell to use.
func (b *NativeBackend) getShell() (string, error) {
	if b.Shell != "" {
		return b.Shell, nil
	}

	switch runtime.GOOS {
	case "windows":
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

// shellArgs returns the flag that makes the shell run a command string.
func shellArgs(shell string) []string {
	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		return []string{"-c"}
	}
}
