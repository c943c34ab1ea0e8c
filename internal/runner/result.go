// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"fmt"
	"time"

	"checkgate/internal/engine"
	"checkgate/pkg/checkfile"
)

// Phases of a single check run, in order. A check never moves backwards
// and never retries: a failed phase is terminal.
const (
	PhasePending      Phase = "pending"
	PhaseResolving    Phase = "resolving"
	PhaseProvisioning Phase = "provisioning"
	PhaseExecuting    Phase = "executing"
	PhaseReporting    Phase = "reporting"
	PhaseDone         Phase = "done"
)

// Check outcomes. Pass and fail are both normal results of a completed
// run; error means the check's pipeline was aborted by a system error
// before a verdict existed.
const (
	OutcomePass  Outcome = "pass"
	OutcomeFail  Outcome = "fail"
	OutcomeError Outcome = "error"
)

type (
	// Phase identifies how far a check's pipeline has progressed.
	Phase string

	// Outcome is the verdict of one check run.
	Outcome string

	// CheckResult is the immutable record of one completed check
	// execution. It is only produced when the check actually ran;
	// resolution and provisioning failures surface as errors instead.
	CheckResult struct {
		// ID is the check identifier.
		ID checkfile.CheckID
		// Outcome is pass or fail (exit code zero or not).
		Outcome Outcome
		// ExitCode is the underlying tool's exit code.
		ExitCode engine.ExitCode
		// Output is the captured standard output.
		Output string
		// ErrOutput is the captured standard error.
		ErrOutput string
		// Duration covers provisioning through execution.
		Duration time.Duration
	}

	// RunReport pairs a check identifier with either its result or the
	// system error that aborted its pipeline. Exactly one of Result and
	// Err is set.
	RunReport struct {
		ID     checkfile.CheckID
		Phase  Phase
		Result *CheckResult
		Err    error
	}
)

// IsValid returns whether the Phase is one of the defined pipeline
// phases, and a list of validation errors if it is not.
func (p Phase) IsValid() (bool, []error) {
	switch p {
	case PhasePending, PhaseResolving, PhaseProvisioning, PhaseExecuting, PhaseReporting, PhaseDone:
		return true, nil
	}
	return false, []error{fmt.Errorf("unknown phase %q", p)}
}

// String returns the phase as a plain string.
func (p Phase) String() string { return string(p) }

// IsValid returns whether the Outcome is one of the defined verdicts,
// and a list of validation errors if it is not.
func (o Outcome) IsValid() (bool, []error) {
	switch o {
	case OutcomePass, OutcomeFail, OutcomeError:
		return true, nil
	}
	return false, []error{fmt.Errorf("unknown outcome %q", o)}
}

// String returns the outcome as a plain string.
func (o Outcome) String() string { return string(o) }

// Passed returns true if the check ran and exited zero.
func (r *CheckResult) Passed() bool { return r.Outcome == OutcomePass }

// Outcome returns the report's verdict: the result's outcome when the
// check ran, OutcomeError when a system error aborted it.
func (r *RunReport) Outcome() Outcome {
	if r.Err != nil {
		return OutcomeError
	}
	return r.Result.Outcome
}
