// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualBackend executes check commands with the embedded mvdan/sh
// interpreter. It needs no shell on the host and is always available.
type VirtualBackend struct{}

// NewVirtualBackend creates a new virtual backend.
func NewVirtualBackend() *VirtualBackend {
	return &VirtualBackend{}
}

// Name returns the backend name.
func (b *VirtualBackend) Name() BackendName {
	return BackendVirtual
}

// Available returns whether this backend is usable. The interpreter is
// built in, so it always is.
func (b *VirtualBackend) Available() bool {
	return true
}

// Execute runs a check command in the embedded interpreter.
func (b *VirtualBackend) Execute(inv *Invocation) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(inv.Command), "command")
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse command: %w", err))
	}

	runner, err := interp.New(
		interp.Dir(inv.WorkDir),
		interp.Env(expand.ListEnviron(inv.Environ()...)),
		interp.StdIO(nil, inv.Stdout, inv.Stderr),
	)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	execCtx := inv.Context
	if execCtx == nil {
		execCtx = context.Background()
	}

	if err := runner.Run(execCtx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("command execution failed: %w", err))
	}

	return NewExitCodeResult(0)
}
