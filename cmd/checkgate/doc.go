// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for checkgate.
//
// This package implements the Cobra command hierarchy for the checkgate
// CLI: the root command plus subcommands for running checks, listing and
// validating the checkfile, scaffolding a new one, and inspecting the
// effective configuration.
package cmd
