// SPDX-License-Identifier: MPL-2.0

// Package registry holds the immutable check registry.
//
// The registry is built once at process start from a parsed checkfile and
// never mutated afterwards, so concurrent readers need no synchronization.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"checkgate/pkg/checkfile"
)

// ErrUnknownCheck is the sentinel error wrapped by UnknownCheckError.
var ErrUnknownCheck = errors.New("unknown check")

type (
	// Registry maps check identifiers to their definitions.
	Registry struct {
		checks    map[checkfile.CheckID]*checkfile.Check
		toolchain checkfile.Toolchain
	}

	// UnknownCheckError is returned by Lookup when an identifier is not
	// registered. It wraps ErrUnknownCheck for errors.Is() compatibility
	// and carries the known identifiers for the error message.
	UnknownCheckError struct {
		ID    checkfile.CheckID
		Known []checkfile.CheckID
	}
)

// Error implements the error interface.
func (e *UnknownCheckError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown check %q (no checks registered)", e.ID)
	}
	ids := make([]string, len(e.Known))
	for i, id := range e.Known {
		ids[i] = string(id)
	}
	return fmt.Sprintf("unknown check %q (registered: %s)", e.ID, strings.Join(ids, ", "))
}

// Unwrap returns ErrUnknownCheck so callers can use errors.Is.
func (e *UnknownCheckError) Unwrap() error { return ErrUnknownCheck }

// New builds a registry from a parsed checkfile. The checkfile has already
// been validated at parse time; New only indexes it.
func New(cf *checkfile.Checkfile) *Registry {
	checks := make(map[checkfile.CheckID]*checkfile.Check, len(cf.Checks))
	for i := range cf.Checks {
		checks[cf.Checks[i].ID] = &cf.Checks[i]
	}
	return &Registry{checks: checks, toolchain: cf.Toolchain}
}

// Lookup resolves a check identifier to its definition. Fails with
// *UnknownCheckError if the identifier is not registered. No side effects.
func (r *Registry) Lookup(id checkfile.CheckID) (*checkfile.Check, error) {
	c, ok := r.checks[id]
	if !ok {
		return nil, &UnknownCheckError{ID: id, Known: r.IDs()}
	}
	return c, nil
}

// Toolchain returns the shared toolchain configuration.
func (r *Registry) Toolchain() checkfile.Toolchain { return r.toolchain }

// IDs returns all registered identifiers sorted lexically.
func (r *Registry) IDs() []checkfile.CheckID {
	ids := make([]checkfile.CheckID, 0, len(r.checks))
	for id := range r.checks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// All returns all registered definitions sorted by identifier.
func (r *Registry) All() []*checkfile.Check {
	ids := r.IDs()
	checks := make([]*checkfile.Check, len(ids))
	for i, id := range ids {
		checks[i] = r.checks[id]
	}
	return checks
}

// Len returns the number of registered checks.
func (r *Registry) Len() int { return len(r.checks) }
