// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format implements the checkers registered for the "format"
// keyword. The five checkers the draft specifications name as generally
// applicable (date-time, date, time, ipv4, ipv6) run whenever format
// validation is turned on; the rest are registered here too but only
// run when a caller names them explicitly, since most of them encode a
// vocabulary extension rather than a universally expected assertion.
package format

import "sync"

// Checker validates a string instance against one named format,
// returning nil if it matches.
type Checker func(s string) error

type entry struct {
	check     Checker
	byDefault bool
}

var (
	mu       sync.Mutex
	registry = map[string]entry{}
)

// Register adds a format checker under name. byDefault marks it as one
// of the checkers that runs whenever format validation is enabled,
// without the caller needing to name it.
func Register(name string, byDefault bool, check Checker) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = entry{check: check, byDefault: byDefault}
}

// Lookup returns the checker registered for name, if any, and whether it
// is one of the checkers enabled by default.
func Lookup(name string) (check Checker, byDefault bool, ok bool) {
	mu.Lock()
	defer mu.Unlock()
	e, ok := registry[name]
	return e.check, e.byDefault, ok
}

// Override customizes how a "format" occurrence is validated, keyed in
// Options.Format by either the schema pointer of the occurrence or the
// format name itself (a pointer match takes precedence over a name
// match). The zero value runs the registered default checker unchanged.
type Override struct {
	// Disable turns the format check off for this key, regardless of
	// whether the named format is one of the always-on defaults.
	Disable bool
	// Check, if non-nil, replaces the registered checker. A caller that
	// wants the effect of the teacher corpus's "(module, function,
	// args)" triple builds the equivalent closure directly, since Go
	// has no runtime mechanism for resolving a function by name the
	// way that triple implies.
	Check Checker
	// UTC requires a trailing "Z"/"z" offset. Only meaningful when the
	// format name (or the format at the overridden pointer) is
	// "date-time"; ignored otherwise.
	UTC bool
}
