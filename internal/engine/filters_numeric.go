// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"math"

	"github.com/quietloop/schemaforge/internal/compileerr"
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/evalerr"
	"github.com/quietloop/schemaforge/internal/rawschema"
)

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// boolExclusive reports whether siblings carries a draft-4-style boolean
// exclusiveMinimum/exclusiveMaximum for the given bound keyword.
func boolExclusive(pc *ParseContext, siblings map[string]any, keyword string) bool {
	if !pc.Ctx.Draft.BoolExclusiveBounds() {
		return false
	}
	b, ok := siblings[keyword].(bool)
	return ok && b
}

var minimumFactory = FilterFactory{
	Keyword: "minimum",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		bound, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		strict := boolExclusive(pc, siblings, "exclusiveMinimum")
		return newFilter("minimum", func(value any, state *evalapi.EvalState) *evalerr.Error {
			n, ok := asNumber(value)
			if !ok {
				return nil
			}
			if (strict && n > bound) || (!strict && n >= bound) {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonRangeViolation,
				Message:    fmt.Sprintf("%v is less than the minimum of %v", n, bound),
			}
		}), nil
	},
}

var maximumFactory = FilterFactory{
	Keyword: "maximum",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		bound, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		strict := boolExclusive(pc, siblings, "exclusiveMaximum")
		return newFilter("maximum", func(value any, state *evalapi.EvalState) *evalerr.Error {
			n, ok := asNumber(value)
			if !ok {
				return nil
			}
			if (strict && n < bound) || (!strict && n <= bound) {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonRangeViolation,
				Message:    fmt.Sprintf("%v is greater than the maximum of %v", n, bound),
			}
		}), nil
	},
}

// exclusiveMinimumFactory compiles "exclusiveMinimum" for draft 6 onward,
// where it is a standalone numeric bound rather than a boolean modifier
// on "minimum". Under draft 4, a boolean value here is consumed entirely
// by minimumFactory, so Parse returns a nil Filter to avoid double
// compiling it.
var exclusiveMinimumFactory = FilterFactory{
	Keyword: "exclusiveMinimum",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		if pc.Ctx.Draft.BoolExclusiveBounds() {
			if _, ok := node.(bool); ok {
				return nil, nil
			}
		}
		bound, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		return newFilter("exclusiveMinimum", func(value any, state *evalapi.EvalState) *evalerr.Error {
			n, ok := asNumber(value)
			if !ok {
				return nil
			}
			if n > bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonRangeViolation,
				Message:    fmt.Sprintf("%v is not greater than the exclusive minimum of %v", n, bound),
			}
		}), nil
	},
}

var exclusiveMaximumFactory = FilterFactory{
	Keyword: "exclusiveMaximum",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		if pc.Ctx.Draft.BoolExclusiveBounds() {
			if _, ok := node.(bool); ok {
				return nil, nil
			}
		}
		bound, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		return newFilter("exclusiveMaximum", func(value any, state *evalapi.EvalState) *evalerr.Error {
			n, ok := asNumber(value)
			if !ok {
				return nil
			}
			if n < bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonRangeViolation,
				Message:    fmt.Sprintf("%v is not less than the exclusive maximum of %v", n, bound),
			}
		}), nil
	},
}

// multipleOfFactory compiles "multipleOf". The check is done in floating
// point with a small relative tolerance, since JSON numbers carry no
// fixed-point representation to divide exactly.
var multipleOfFactory = FilterFactory{
	Keyword: "multipleOf",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		divisor, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		if divisor == 0 {
			return nil, compileerr.Malformed(pc.Pointer.String(), "multipleOf must not be zero")
		}
		return newFilter("multipleOf", func(value any, state *evalapi.EvalState) *evalerr.Error {
			n, ok := asNumber(value)
			if !ok {
				return nil
			}
			quotient := n / divisor
			if math.Abs(quotient-math.Round(quotient)) <= 1e-9*math.Max(1, math.Abs(quotient)) {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonRangeViolation,
				Message:    fmt.Sprintf("%v is not a multiple of %v", n, divisor),
			}
		}), nil
	},
}
