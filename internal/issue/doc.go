// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting: structured
// actionable errors for the CLI surface, and curated markdown guidance
// rendered with glamour for the failure modes users hit most.
package issue
