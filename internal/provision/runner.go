// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"os/exec"
)

// execRunner is the production commandRunner: it invokes the package
// manager as a child process and returns its combined output.
type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
