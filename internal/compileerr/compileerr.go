// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compileerr wraps build-time compilation failures with a stack
// trace: compile-time errors are diagnostics for a developer, not a
// first-class return value, so they are worth paying the allocation
// cost of a trace.
package compileerr

import (
	"fmt"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"
)

// Unresolved wraps an unresolvable $ref.
func Unresolved(authority, ref string) error {
	return motmedelErrors.NewWithTrace(fmt.Errorf("jsonschema: unresolved reference %q in %q", ref, authority))
}

// Malformed wraps a keyword whose value has the wrong JSON type for its
// draft, or an otherwise structurally invalid schema node.
func Malformed(pointer, detail string) error {
	return motmedelErrors.NewWithTrace(fmt.Errorf("jsonschema: malformed schema at %q: %s", pointer, detail))
}

// Decode wraps a failure to decode schema text into a JSON value.
func Decode(path string, err error) error {
	return motmedelErrors.NewWithTrace(fmt.Errorf("jsonschema: decode %q: %w", path, err))
}

// UnsupportedKeyword wraps a keyword that is not part of the selected
// draft's vocabulary, or a combination of keywords the draft forbids.
func UnsupportedKeyword(draft, pointer, keyword string) error {
	return motmedelErrors.NewWithTrace(fmt.Errorf("jsonschema: keyword %q at %q is not supported by draft %q", keyword, pointer, draft))
}

// Wrap attaches a stack trace to an arbitrary compile-time error.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return motmedelErrors.NewWithTrace(err)
}
