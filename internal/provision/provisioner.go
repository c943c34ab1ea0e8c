// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"checkgate/pkg/checkfile"

	"github.com/charmbracelet/log"
)

// DefaultPackageManager is the package manager binary used when the
// configuration names none. uv handles both interpreter pinning and tool
// installs with a single binary.
const DefaultPackageManager = "uv"

// ErrProvision is the sentinel error wrapped by ProvisionError.
var ErrProvision = errors.New("provisioning failed")

type (
	// Provisioner prepares isolated environments for checks.
	Provisioner interface {
		// Provision creates a fresh environment holding the toolchain's
		// pinned interpreter and exactly the one tool the check names.
		// On failure the partially created environment is already removed.
		Provision(ctx context.Context, check *checkfile.Check, tc checkfile.Toolchain) (*Environment, error)
	}

	// ProvisionError is returned when environment or tool installation
	// fails. It wraps ErrProvision for errors.Is() compatibility and
	// carries the installer's output for diagnosis.
	ProvisionError struct {
		CheckID checkfile.CheckID
		Tool    checkfile.Tool
		Stage   string
		Output  string
		Cause   error
	}

	// Config holds ToolchainProvisioner settings.
	Config struct {
		// PackageManager is the binary invoked to create environments and
		// install tools. Defaults to "uv".
		PackageManager string
		// WorkRoot is the directory environments are created under.
		// Defaults to os.TempDir().
		WorkRoot string
		// Logger receives provisioning progress at debug level.
		Logger *log.Logger
	}

	// ToolchainProvisioner provisions environments by shelling out to the
	// package manager. The package manager is an opaque collaborator: only
	// its exit status and output are consumed.
	ToolchainProvisioner struct {
		cfg    Config
		runner commandRunner
	}

	// commandRunner abstracts process invocation so tests can stub the
	// package manager.
	commandRunner interface {
		run(ctx context.Context, name string, args ...string) ([]byte, error)
	}
)

// Error implements the error interface.
func (e *ProvisionError) Error() string {
	msg := fmt.Sprintf("check %q: failed to %s for tool %q", e.CheckID, e.Stage, e.Tool.Name)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

// Unwrap returns ErrProvision so callers can use errors.Is.
func (e *ProvisionError) Unwrap() error { return ErrProvision }

// NewToolchainProvisioner creates a provisioner with defaults applied.
func NewToolchainProvisioner(cfg Config) *ToolchainProvisioner {
	if cfg.PackageManager == "" {
		cfg.PackageManager = DefaultPackageManager
	}
	if cfg.WorkRoot == "" {
		cfg.WorkRoot = os.TempDir()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "provision"})
	}
	return &ToolchainProvisioner{cfg: cfg, runner: &execRunner{}}
}

// Provision creates the environment directory, installs the pinned
// interpreter, then installs the check's tool. Every failure path removes
// the directory before returning, so a non-nil error never leaks state.
func (p *ToolchainProvisioner) Provision(ctx context.Context, check *checkfile.Check, tc checkfile.Toolchain) (*Environment, error) {
	root, err := os.MkdirTemp(p.cfg.WorkRoot, fmt.Sprintf("checkgate-%s-*", check.ID))
	if err != nil {
		return nil, &ProvisionError{CheckID: check.ID, Tool: check.Tool, Stage: "create environment directory", Cause: err}
	}

	env := &Environment{root: root, tool: check.Tool, python: tc.Python}

	p.cfg.Logger.Debug("creating environment", "check", check.ID, "python", tc.Python, "root", root)
	out, err := p.runner.run(ctx, p.cfg.PackageManager,
		"venv", "--python", tc.Python.String(), root)
	if err != nil {
		_ = env.Release()
		return nil, &ProvisionError{CheckID: check.ID, Tool: check.Tool, Stage: "install interpreter", Output: string(out), Cause: err}
	}

	p.cfg.Logger.Debug("installing tool", "check", check.ID, "tool", toolSpec(check.Tool))
	out, err = p.runner.run(ctx, p.cfg.PackageManager,
		"pip", "install", "--python", env.PythonPath(), toolSpec(check.Tool))
	if err != nil {
		_ = env.Release()
		return nil, &ProvisionError{CheckID: check.ID, Tool: check.Tool, Stage: "install tool", Output: string(out), Cause: err}
	}

	return env, nil
}

// toolSpec renders the package manager requirement string for a tool.
func toolSpec(t checkfile.Tool) string {
	if t.Version.IsPinned() {
		return fmt.Sprintf("%s==%s", t.Name, t.Version)
	}
	return t.Name.String()
}
