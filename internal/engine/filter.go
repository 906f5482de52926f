// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/evalerr"
)

// Filter is a compiled keyword check: the result of parsing one keyword
// out of a schema node. A Filter self-guards against the instance's
// runtime kind — a filter compiled for "minLength" silently passes a
// non-string instance, rather than the driver consulting a type table
// before calling it — mirroring how each per-type Check function in the
// corpus no-ops on a value of the wrong Go kind.
type Filter interface {
	// Keyword names the JSON Schema keyword this filter checks, for
	// building the SchemaPointer on a reported failure.
	Keyword() string
	// Check runs the filter against value, returning nil on success or
	// a structured failure. Check may write to state.Notes even on
	// success, so that later filters in the same Artifact (additionalProperties
	// after properties, unevaluatedItems after items) can see what an
	// earlier filter already evaluated.
	Check(value any, state *evalapi.EvalState) *evalerr.Error
}

// FilterFactory parses one keyword's value out of a schema node into a
// Filter, or into a nil Filter when the keyword imposes no check (for
// example "uniqueItems": false). Every present keyword is parsed once,
// whatever instance types it applies to, so that a malformed keyword
// value is still a compile error even if the rest of the schema never
// applies to a matching instance.
type FilterFactory struct {
	Keyword string
	// Parse receives the keyword's own value plus the full sibling
	// object it was found in, since a few keywords (minimum/maximum
	// beside a draft-4 boolean exclusiveMinimum/exclusiveMaximum,
	// contains beside minContains, if beside then/else) change meaning
	// depending on what else is present at the same level.
	Parse func(pc *ParseContext, value any, siblings map[string]any) (Filter, error)
}

// filterFunc adapts a Check closure and a keyword name into a Filter,
// for factories that have no state worth a named type.
type filterFunc struct {
	keyword string
	check   func(value any, state *evalapi.EvalState) *evalerr.Error
}

func (f filterFunc) Keyword() string { return f.keyword }

func (f filterFunc) Check(value any, state *evalapi.EvalState) *evalerr.Error {
	return f.check(value, state)
}

func newFilter(keyword string, check func(value any, state *evalapi.EvalState) *evalerr.Error) Filter {
	return filterFunc{keyword: keyword, check: check}
}
