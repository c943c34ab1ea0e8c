// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"checkgate/internal/config"
	"checkgate/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// checkfilePath allows specifying a custom checkfile
	checkfilePath string
	// backendFlag overrides the configured execution backend
	backendFlag string
	// jobsFlag overrides the configured worker count
	jobsFlag int

	// appConfig is the loaded configuration, populated by initRootConfig.
	appConfig *config.Config
	// appConfigPath is the resolved config file path ("" = defaults only).
	appConfigPath string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "checkgate",
		Short: "A quality gate runner for per-check isolated tool environments",
		Long: TitleStyle.Render("checkgate") + SubtitleStyle.Render(" - A quality gate runner") + `

checkgate runs the quality checks declared in a 'checkfile': each check
names a tool (formatter, linter, type checker), a command template, and
a file pattern. Every check gets its own freshly provisioned environment
with exactly that tool installed, so pinned versions never collide.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a checkfile in your project root: checkgate init
  2. Declare your checks and pin their tool versions
  3. Run them all with: checkgate run

` + SubtitleStyle.Render("Examples:") + `
  checkgate run                 Run every declared check
  checkgate run lint_check      Run one check, exit code passes through
  checkgate list                List declared checks
  checkgate validate            Validate the checkfile without running
  checkgate config show         Show the effective configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/checkgate/checkgate.toml)")
	rootCmd.PersistentFlags().StringVar(&checkfilePath, "checkfile", "", "checkfile path (default is ./checkfile.cue or ./checkfile.toml)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "execution backend: native or virtual (default from config)")
	rootCmd.PersistentFlags().IntVarP(&jobsFlag, "jobs", "j", 0, "max concurrently running checks (default from config)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file and environment overrides.
func initRootConfig() {
	cfg, path, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		// Surface config loading errors but keep going on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}
	appConfig = cfg
	appConfigPath = path

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
