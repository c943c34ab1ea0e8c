// SPDX-License-Identifier: MPL-2.0

// Package config loads the checkgate configuration file and applies
// defaults and environment overrides. Configuration is optional: every
// field has a usable default, and a missing file is not an error.
package config
