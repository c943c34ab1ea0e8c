// SPDX-License-Identifier: MPL-2.0

// Package checkfile defines the checkfile format: the static list of
// quality checks a project runs, plus the toolchain they run against.
//
// A checkfile pairs each check identifier with exactly one verification
// tool and a command template, e.g.:
//
//	toolchain: python: "3.12"
//	checks: [
//	    {
//	        id:      "format_check"
//	        tool:    {name: "isort", version: "5.13.2"}
//	        command: "isort --check-only {files}"
//	        files:   "src/**/*.py"
//	    },
//	]
//
// Checkfiles are written in CUE (validated against the embedded schema) or
// TOML (decoded and run through the same Go-level validation). The parsed
// Checkfile is immutable by convention: it is built once at process start
// and handed to the registry.
package checkfile
