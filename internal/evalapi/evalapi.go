// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evalapi defines the narrow interface shared between the
// compiled validator procedures (internal/engine) and the reference
// registry (internal/registry), so that neither package needs to import
// the other: registry stores ValidatorFunc values by identifier and
// hands back a resolver; engine calls that resolver from the $ref filter.
package evalapi

import (
	"errors"

	"github.com/quietloop/schemaforge/internal/evalerr"
	"github.com/quietloop/schemaforge/internal/format"
	"github.com/quietloop/schemaforge/internal/notes"
	"github.com/quietloop/schemaforge/pkg/pointer"
)

// ValidatorFunc is a compiled validator procedure for one schema subtree.
// It reports success by returning nil, and failure by returning a
// structured *evalerr.Error.
type ValidatorFunc func(value any, state *EvalState) *evalerr.Error

// Options carries the small set of validation-time options exposed to
// callers of the public compiler entrypoint.
type Options struct {
	ApplyDefaults  bool
	ValidateFormat bool
	// Formats maps a schema pointer or a format name to a format.Override,
	// letting a caller disable, replace, or (for date-time) tighten a
	// format check either everywhere a name is used or at one specific
	// occurrence. A name not present here, and not overridden at its
	// occurrence's own pointer, falls back to whether it is one of the
	// five draft-mandated defaults (date-time, date, time, ipv4, ipv6),
	// which run whenever ValidateFormat is set.
	Formats map[string]format.Override
}

// ErrRecursionTooDeep is returned when EvalState.Child exceeds the
// maximum nesting depth, guarding against unbounded recursion through a
// cyclic (but individually well-formed) $ref graph.
var ErrRecursionTooDeep = errors.New("jsonschema: recursion while validating too deep")

const maxDepth = 2000

// EvalState is the validation-time context threaded through a single
// top-level Validate call. It is the runtime counterpart of the
// per-artifact compile-time Context, carrying the instance path, the
// accumulator notes for the subtree currently being folded, and the
// resolver used by the $ref filter to reach other compiled validators.
type EvalState struct {
	InstancePath pointer.Pointer
	Notes        notes.Notes
	Depth        int
	Resolve      func(funID string) (ValidatorFunc, bool)
	Options      *Options
}

// Child returns a new EvalState suitable for validating a subschema
// in-place against the same instance value (combinators, $ref): same
// instance path, fresh notes, depth incremented.
func (s *EvalState) Child() (*EvalState, error) {
	if s.Depth > maxDepth {
		return nil, ErrRecursionTooDeep
	}
	return &EvalState{
		InstancePath: s.InstancePath,
		Depth:        s.Depth + 1,
		Resolve:      s.Resolve,
		Options:      s.Options,
	}, nil
}

// PushToken descends the instance path by one token, in place.
func (s *EvalState) PushToken(tok string) {
	s.InstancePath = s.InstancePath.Join(tok)
}

// PopToken restores the instance path to before the last PushToken.
func (s *EvalState) PopToken() {
	if n := len(s.InstancePath); n > 0 {
		s.InstancePath = s.InstancePath[:n-1]
	}
}

// InstancePointer renders the current instance path as a JSON Pointer.
func (s *EvalState) InstancePointer() string {
	return s.InstancePath.String()
}

// ValidatesFormat reports whether format validation is enabled. Exported as
// a method so filters don't need to nil-check Options themselves.
func (s *EvalState) ValidatesFormat() bool {
	return s.Options != nil && s.Options.ValidateFormat
}

// AppliesDefaults reports whether default-value application is enabled.
func (s *EvalState) AppliesDefaults() bool {
	return s.Options != nil && s.Options.ApplyDefaults
}

// ResolveFormat decides whether and how the "format" filter compiled at
// schemaPointer, checking the named format, should run: it consults
// Options.Formats for an override keyed first by schemaPointer and then
// by name, falling back to defaultCheck when there is no override and
// byDefault is true. run is false when the check should be skipped
// entirely (format validation is off, or an override disabled it, or
// neither an override nor the draft-mandated defaults apply).
func (s *EvalState) ResolveFormat(schemaPointer, name string, defaultCheck format.Checker, byDefault bool) (check format.Checker, utc bool, run bool) {
	if !s.ValidatesFormat() {
		return nil, false, false
	}
	if s.Options != nil && s.Options.Formats != nil {
		if ov, ok := s.Options.Formats[schemaPointer]; ok {
			return resolveFormatOverride(ov, defaultCheck)
		}
		if ov, ok := s.Options.Formats[name]; ok {
			return resolveFormatOverride(ov, defaultCheck)
		}
	}
	if byDefault {
		return defaultCheck, false, true
	}
	return nil, false, false
}

func resolveFormatOverride(ov format.Override, defaultCheck format.Checker) (check format.Checker, utc bool, run bool) {
	if ov.Disable {
		return nil, false, false
	}
	check = defaultCheck
	if ov.Check != nil {
		check = ov.Check
	}
	return check, ov.UTC, true
}
