// SPDX-License-Identifier: MPL-2.0

// Package runner executes checks: it resolves identifiers through the
// registry, acquires an isolated environment per check, runs the check's
// command against its file set, and reports structured results.
//
// Checks are independent units of work. They share no mutable state, so
// RunAll fans them out across workers; a system error in one check never
// aborts its siblings.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"checkgate/internal/engine"
	"checkgate/internal/fileset"
	"checkgate/internal/provision"
	"checkgate/internal/registry"
	"checkgate/pkg/checkfile"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultJobs bounds concurrent checks when the configuration names no
// worker count.
const DefaultJobs = 4

type (
	// Options configures a Runner. Registry and Provisioner are required;
	// everything else has defaults.
	Options struct {
		// Registry resolves check identifiers.
		Registry *registry.Registry
		// Provisioner acquires one environment per check.
		Provisioner provision.Provisioner
		// Backend executes expanded commands. Defaults to the virtual
		// backend, which is always available.
		Backend engine.Backend
		// WorkDir is the directory commands run in (the project root).
		// Defaults to the current directory.
		WorkDir string
		// Jobs bounds concurrent checks in RunAll. Defaults to DefaultJobs.
		Jobs int
		// Logger receives per-check progress at debug level.
		Logger *log.Logger
		// MirrorStdout, when set, additionally receives the tool's stdout
		// as it is produced (single-check CLI mode). Output is always
		// captured on the result regardless.
		MirrorStdout io.Writer
		// MirrorStderr mirrors the tool's stderr, like MirrorStdout.
		MirrorStderr io.Writer
	}

	// Runner orchestrates check execution.
	Runner struct {
		opts Options
	}
)

// New creates a Runner with defaults applied.
func New(opts Options) *Runner {
	if opts.Backend == nil {
		opts.Backend = engine.NewVirtualBackend()
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.Jobs <= 0 {
		opts.Jobs = DefaultJobs
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "runner"})
	}
	return &Runner{opts: opts}
}

// Run executes a single check against the given file set.
//
// Resolution failures propagate as *registry.UnknownCheckError and
// provisioning failures as *provision.ProvisionError, both unchanged and
// without a CheckResult. A check that runs and exits nonzero is not an
// error: it yields a CheckResult with OutcomeFail.
//
// The check's environment is released exactly once on every path,
// including cancellation and execution errors.
func (r *Runner) Run(ctx context.Context, id checkfile.CheckID, files fileset.FileSet) (*CheckResult, error) {
	result, _, err := r.run(ctx, id, files)
	return result, err
}

// run is Run plus the phase the pipeline reached, for RunAll's reports.
func (r *Runner) run(ctx context.Context, id checkfile.CheckID, files fileset.FileSet) (*CheckResult, Phase, error) {
	phase := PhaseResolving
	check, err := r.opts.Registry.Lookup(id)
	if err != nil {
		return nil, phase, err
	}

	start := time.Now()

	phase = PhaseProvisioning
	r.opts.Logger.Debug("provisioning environment", "check", id, "tool", check.Tool.Name)
	env, err := r.opts.Provisioner.Provision(ctx, check, r.opts.Registry.Toolchain())
	if err != nil {
		return nil, phase, err
	}
	defer func() {
		if releaseErr := env.Release(); releaseErr != nil {
			r.opts.Logger.Warn("failed to release environment", "check", id, "error", releaseErr)
		}
	}()

	phase = PhaseExecuting
	command, err := ExpandCommand(check.Command, files)
	if err != nil {
		return nil, phase, fmt.Errorf("check %q: %w", id, err)
	}

	var stdout, stderr bytes.Buffer
	outW := io.Writer(&stdout)
	errW := io.Writer(&stderr)
	if r.opts.MirrorStdout != nil {
		outW = io.MultiWriter(&stdout, r.opts.MirrorStdout)
	}
	if r.opts.MirrorStderr != nil {
		errW = io.MultiWriter(&stderr, r.opts.MirrorStderr)
	}

	r.opts.Logger.Debug("executing", "check", id, "command", command, "backend", r.opts.Backend.Name())
	res := r.opts.Backend.Execute(&engine.Invocation{
		Context: ctx,
		Command: command,
		BinDir:  env.BinDir(),
		EnvRoot: env.Root(),
		WorkDir: r.opts.WorkDir,
		Stdout:  outW,
		Stderr:  errW,
	})
	if res.Error != nil {
		return nil, phase, fmt.Errorf("check %q: execution failed: %w", id, res.Error)
	}

	phase = PhaseReporting
	outcome := OutcomeFail
	if res.ExitCode.IsSuccess() {
		outcome = OutcomePass
	}
	result := &CheckResult{
		ID:        id,
		Outcome:   outcome,
		ExitCode:  res.ExitCode,
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
		Duration:  time.Since(start),
	}

	r.opts.Logger.Debug("check finished", "check", id, "outcome", outcome, "exit", res.ExitCode, "duration", result.Duration)
	return result, PhaseDone, nil
}

// RunAll executes the given checks concurrently, one isolated environment
// per check, bounded by the configured job count. System errors abort only
// their own check. Reports are returned sorted by check identifier.
func (r *Runner) RunAll(ctx context.Context, ids []checkfile.CheckID, discover func(checkfile.FileGlob) (fileset.FileSet, error)) []RunReport {
	reports := make([]RunReport, len(ids))
	sem := make(chan struct{}, r.opts.Jobs)

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id checkfile.CheckID) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			reports[i] = r.runOne(ctx, id, discover)
		}(i, id)
	}
	wg.Wait()

	sort.Slice(reports, func(i, j int) bool { return reports[i].ID < reports[j].ID })
	return reports
}

// runOne resolves a check's file set and runs it, folding any system
// error into the report.
func (r *Runner) runOne(ctx context.Context, id checkfile.CheckID, discover func(checkfile.FileGlob) (fileset.FileSet, error)) RunReport {
	check, err := r.opts.Registry.Lookup(id)
	if err != nil {
		return RunReport{ID: id, Phase: PhaseResolving, Err: err}
	}

	files, err := discover(check.Files)
	if err != nil {
		return RunReport{ID: id, Phase: PhaseResolving, Err: err}
	}

	result, phase, err := r.run(ctx, id, files)
	if err != nil {
		return RunReport{ID: id, Phase: phase, Err: err}
	}
	return RunReport{ID: id, Phase: phase, Result: result}
}

// ExpandCommand substitutes the file set into a command template. Paths
// are shell-quoted individually, so file names with spaces survive both
// backends.
func ExpandCommand(tmpl checkfile.CommandTemplate, files fileset.FileSet) (string, error) {
	quoted := make([]string, len(files))
	for i, f := range files {
		q, err := syntax.Quote(f, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote path %q: %w", f, err)
		}
		quoted[i] = q
	}
	return strings.ReplaceAll(string(tmpl), checkfile.FilesPlaceholder, strings.Join(quoted, " ")), nil
}
