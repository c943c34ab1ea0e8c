// SPDX-License-Identifier: MPL-2.0

// Package report renders check results for the terminal and derives the
// process exit code from them.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"checkgate/internal/engine"
	"checkgate/internal/provision"
	"checkgate/internal/registry"
	"checkgate/internal/runner"

	"github.com/charmbracelet/lipgloss"
)

// Reserved exit codes for system errors. Tool exit codes pass through
// unchanged in single-check mode, so these sit outside the range common
// linters use for findings.
const (
	// ExitUnknownCheck is returned when an identifier fails resolution.
	ExitUnknownCheck engine.ExitCode = 2
	// ExitProvisionFailed is returned when environment provisioning fails.
	ExitProvisionFailed engine.ExitCode = 3
)

// Color palette shared by all summary output, tuned for dark terminals.
const (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	errStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// Render writes the per-check summary. Reports arrive sorted by check
// identifier from the runner; rendering preserves that order so output is
// reproducible. Output of failing checks is echoed beneath the summary
// line for diagnosis.
func Render(w io.Writer, reports []runner.RunReport) {
	var pass, fail, errCount int

	for _, rep := range reports {
		switch rep.Outcome() {
		case runner.OutcomePass:
			pass++
			fmt.Fprintf(w, "%s %s %s\n",
				passStyle.Render("PASS"), rep.ID, mutedStyle.Render(rep.Result.Duration.Round(durationPrecision).String()))
		case runner.OutcomeFail:
			fail++
			fmt.Fprintf(w, "%s %s %s %s\n",
				failStyle.Render("FAIL"), rep.ID,
				mutedStyle.Render("exit "+rep.Result.ExitCode.String()),
				mutedStyle.Render(rep.Result.Duration.Round(durationPrecision).String()))
			writeIndented(w, rep.Result.Output)
			writeIndented(w, rep.Result.ErrOutput)
		case runner.OutcomeError:
			errCount++
			fmt.Fprintf(w, "%s %s %s\n",
				errStyle.Render("ERROR"), rep.ID, mutedStyle.Render(string(rep.Phase)))
			writeIndented(w, rep.Err.Error())
		}
	}

	fmt.Fprintf(w, "\n%s\n", summaryStyle.Render(
		fmt.Sprintf("%d passed, %d failed, %d errored", pass, fail, errCount)))
}

// ExitCodeFor derives the overall process exit code from a set of reports.
//
// All checks passing yields 0. A single report lets the underlying tool's
// exit code pass through; with several reports a failure collapses to 1.
// System errors take precedence over failures and map to the reserved
// codes above.
func ExitCodeFor(reports []runner.RunReport) engine.ExitCode {
	var code engine.ExitCode

	for _, rep := range reports {
		switch rep.Outcome() {
		case runner.OutcomeError:
			if errors.Is(rep.Err, registry.ErrUnknownCheck) {
				return ExitUnknownCheck
			}
			if errors.Is(rep.Err, provision.ErrProvision) {
				return ExitProvisionFailed
			}
			return 1
		case runner.OutcomeFail:
			if len(reports) == 1 {
				code = rep.Result.ExitCode
			} else {
				code = 1
			}
		}
	}

	return code
}

const durationPrecision = 1e7 // 10ms, enough resolution for tool runs

// writeIndented writes non-empty text indented beneath a summary line.
func writeIndented(w io.Writer, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}
