// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a new checkfile
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new checkfile in the current directory",
		Long: `Create a new checkfile in the current directory with a starter set of
checks (import sorting, linting, type checking) to help you get started
quickly.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing checkfile")
}

// starterCheckfile is the scaffold written by 'checkgate init'.
const starterCheckfile = `toolchain: python: "3.12"

checks: [
	{
		id:          "format_check"
		description: "Verify import ordering"
		tool: {name: "isort", version: "5.13.2"}
		command: "isort --check-only {files}"
		files:   "src/**/*.py"
	},
	{
		id:          "lint_check"
		description: "Lint for code smells and errors"
		tool: {name: "pylint"}
		command: "pylint {files}"
		files:   "src/**/*.py"
	},
	{
		id:          "type_check"
		description: "Static type checking"
		tool: {name: "mypy"}
		command: "mypy {files}"
		files:   "src/**/*.py"
	},
]
`

func runInit(cmd *cobra.Command, args []string) error {
	filename := "checkfile.cue"
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	if err := os.WriteFile(filename, []byte(starterCheckfile), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(out, "  1. Adjust the checks and pin the tool versions you use")
	fmt.Fprintln(out, "  2. Run 'checkgate list' to see the declared checks")
	fmt.Fprintln(out, "  3. Run 'checkgate run' to run them all")

	return nil
}
