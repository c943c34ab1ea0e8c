// SPDX-License-Identifier: MPL-2.0

// Package provision creates the isolated environments checks run in.
//
// Each environment is a private directory holding a pinned interpreter and
// exactly one verification tool, created through the external package
// manager (uv by default) and destroyed after the check completes.
// Environments are never shared between checks; that one-tool guarantee is
// what keeps checks from contaminating each other through transitive
// dependencies.
//
// The main entry point is the Provisioner interface, implemented by
// ToolchainProvisioner:
//
//	p := provision.NewToolchainProvisioner(cfg)
//	env, err := p.Provision(ctx, check, toolchain)
//	if err != nil { ... }
//	defer env.Release()
//
// Release is safe to call on every exit path; it runs at most once.
package provision
