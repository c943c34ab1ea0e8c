// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"checkgate/internal/engine"
	"checkgate/internal/fileset"
	"checkgate/internal/issue"
	"checkgate/internal/provision"
	"checkgate/internal/registry"
	"checkgate/internal/report"
	"checkgate/internal/runner"
	"checkgate/pkg/checkfile"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	runWorkDir string

	// runCmd executes declared checks
	runCmd = &cobra.Command{
		Use:   "run [check-id...]",
		Short: "Run declared checks in isolated environments",
		Long: `Run the given checks, or every declared check when no id is given.

Each check gets its own freshly provisioned environment holding the
pinned interpreter and exactly the one tool it names. Checks run
concurrently and a failure in one never aborts the others.

When a single check id is given, the process exit code mirrors the
underlying tool's exit code, so checkgate can stand in for the tool in
CI pipelines.`,
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVarP(&runWorkDir, "workdir", "w", ".", "project root checks run against")
}

func runRun(cmd *cobra.Command, args []string) error {
	cf, err := loadCheckfile()
	if err != nil {
		return err
	}

	reg := registry.New(cf)

	ids := make([]checkfile.CheckID, 0, len(args))
	for _, arg := range args {
		ids = append(ids, checkfile.CheckID(arg))
	}

	// Single check: mirror the tool's output and exit code.
	if len(ids) == 1 {
		r, err := buildRunner(reg, true)
		if err != nil {
			return err
		}
		return runSingle(cmd, r, reg, ids[0])
	}

	r, err := buildRunner(reg, false)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		ids = reg.IDs()
	}

	discover := func(glob checkfile.FileGlob) (fileset.FileSet, error) {
		return fileset.Expand(runWorkDir, glob)
	}
	reports := r.RunAll(cmd.Context(), ids, discover)

	report.Render(cmd.OutOrStdout(), reports)

	if code := report.ExitCodeFor(reports); !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

// runSingle runs one check with the tool's output mirrored to the
// terminal and its exit code carried out of the process.
func runSingle(cmd *cobra.Command, r *runner.Runner, reg *registry.Registry, id checkfile.CheckID) error {
	check, err := reg.Lookup(id)
	if err != nil {
		renderIssueToStderr(issue.UnknownCheckId)
		return &ExitError{Code: report.ExitUnknownCheck, Err: err}
	}

	files, err := fileset.Expand(runWorkDir, check.Files)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if files.Empty() {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+
			fmt.Sprintf("pattern %q matched no files", check.Files))
	}

	result, err := r.Run(cmd.Context(), id, files)
	if err != nil {
		if errors.Is(err, provision.ErrProvision) {
			renderIssueToStderr(issue.ProvisionFailedId)
			return &ExitError{Code: report.ExitProvisionFailed, Err: err}
		}
		return &ExitError{Code: 1, Err: err}
	}

	if !result.Passed() {
		// Output was already mirrored while the tool ran.
		return &ExitError{Code: result.ExitCode, Err: fmt.Errorf("check %q failed with exit code %s", id, result.ExitCode)}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		SuccessStyle.Render("✓"), id, SubtitleStyle.Render(result.Duration.String()))
	return nil
}

// buildRunner wires the runner from the loaded configuration and flags.
// Mirroring streams the tool's output to the terminal as it runs and is
// only wanted in single-check mode, where checkgate stands in for the tool.
func buildRunner(reg *registry.Registry, mirror bool) (*runner.Runner, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "checkgate"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	backend, err := selectBackend()
	if err != nil {
		return nil, err
	}

	jobs := appConfig.Jobs
	if jobsFlag > 0 {
		jobs = jobsFlag
	}

	prov := provision.NewToolchainProvisioner(provision.Config{
		PackageManager: appConfig.PackageManager.String(),
		WorkRoot:       appConfig.WorkRoot,
		Logger:         logger.WithPrefix("provision"),
	})

	opts := runner.Options{
		Registry:    reg,
		Provisioner: prov,
		Backend:     backend,
		WorkDir:     runWorkDir,
		Jobs:        jobs,
		Logger:      logger,
	}
	if mirror {
		opts.MirrorStdout = os.Stdout
		opts.MirrorStderr = os.Stderr
	}
	return runner.New(opts), nil
}

// selectBackend resolves the execution backend from the --backend flag,
// falling back to the configured default.
func selectBackend() (engine.Backend, error) {
	name := engine.BackendName(appConfig.Backend)
	if backendFlag != "" {
		name = engine.BackendName(backendFlag)
	}
	if ok, errs := name.IsValid(); !ok {
		return nil, errs[0]
	}

	backend, err := engine.NewRegistry().Get(name)
	if err != nil {
		return nil, err
	}
	if !backend.Available() {
		if name == engine.BackendNative {
			renderIssueToStderr(issue.ShellNotFoundId)
		}
		return nil, fmt.Errorf("backend %q is not available on this system", name)
	}
	return backend, nil
}

// loadCheckfile resolves and parses the checkfile, honoring --checkfile.
func loadCheckfile() (*checkfile.Checkfile, error) {
	path := checkfilePath
	if path == "" {
		discovered, err := checkfile.Discover(".")
		if err != nil {
			renderIssueToStderr(issue.CheckfileNotFoundId)
			return nil, issue.NewErrorContext().
				WithOperation("locate checkfile").
				WithSuggestion("Run 'checkgate init' to create one").
				WithSuggestion("Or pass --checkfile with an explicit path").
				Wrap(err).
				BuildError()
		}
		path = discovered
	}

	cf, err := checkfile.Parse(path)
	if err != nil {
		renderIssueToStderr(issue.CheckfileParseErrorId)
		return nil, issue.NewErrorContext().
			WithOperation("parse checkfile").
			WithResource(path).
			WithSuggestion("Run 'checkgate validate' for field-level details").
			Wrap(err).
			BuildError()
	}
	return cf, nil
}

// renderIssueToStderr prints curated guidance for a known failure mode.
// Rendering problems are swallowed: guidance must never mask the error.
func renderIssueToStderr(id issue.Id) {
	is := issue.Get(id)
	if is == nil {
		return
	}
	rendered, err := is.Render(glamourStyle())
	if err != nil {
		return
	}
	fmt.Fprintln(os.Stderr, rendered)
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle() string {
	if appConfig == nil {
		return "auto"
	}
	switch appConfig.UI.ColorScheme {
	case "dark":
		return "dark"
	case "light":
		return "light"
	default:
		return "auto"
	}
}
