// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"checkgate/internal/registry"

	"github.com/spf13/cobra"
)

// listCmd prints the declared checks
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the checks declared in the checkfile",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cf, err := loadCheckfile()
	if err != nil {
		return err
	}

	reg := registry.New(cf)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, TitleStyle.Render("Checks")+SubtitleStyle.Render(
		fmt.Sprintf(" (%d declared, python %s)", reg.Len(), reg.Toolchain().Python)))
	fmt.Fprintln(out)

	for _, check := range reg.All() {
		version := "latest"
		if check.Tool.Version.IsPinned() {
			version = string(check.Tool.Version)
		}
		fmt.Fprintf(out, "  %s %s\n",
			CmdStyle.Render(string(check.ID)),
			SubtitleStyle.Render(fmt.Sprintf("(%s %s)", check.Tool.Name, version)))
		if check.Description != "" {
			fmt.Fprintf(out, "      %s\n", check.Description)
		}
		fmt.Fprintf(out, "      %s\n", SubtitleStyle.Render("files: "+string(check.Files)))
	}

	return nil
}
