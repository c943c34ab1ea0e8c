// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"checkgate/internal/config"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration subcommands
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage checkgate configuration",
	}

	// configShowCmd prints the effective configuration
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after defaults, the config file, and
CHECKGATE_* environment overrides have been applied.`,
		RunE: runConfigShow,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	source := appConfigPath
	if source == "" {
		source = "defaults (no config file found)"
	}
	fmt.Fprintln(out, SubtitleStyle.Render("# source: "+source))
	fmt.Fprint(out, config.GenerateTOML(appConfig))

	return nil
}
