// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd parses the checkfile without running anything
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the checkfile without running any checks",
	Long: `Parse and validate the checkfile, reporting every field-level problem:
malformed check ids, command templates missing the {files} placeholder,
unpinned interpreter versions, duplicate check ids.

Exits zero when the checkfile is valid.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cf, err := loadCheckfile()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid (%d checks)\n",
		SuccessStyle.Render("✓"), cf.FilePath, len(cf.Checks))
	return nil
}
