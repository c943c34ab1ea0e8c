// SPDX-License-Identifier: MPL-2.0

// Package engine provides the check execution backends.
//
// A Backend runs one already-expanded check command inside a provisioned
// environment. Two backends exist: "native" uses the system shell, and
// "virtual" uses the embedded mvdan/sh interpreter (always available, no
// shell dependency). Backends report a Result; a nonzero exit code is a
// normal outcome, not an error.
package engine
