// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"github.com/quietloop/schemaforge/internal/compileerr"
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/evalerr"
	"github.com/quietloop/schemaforge/internal/rawschema"
)

// typeFactory compiles the "type" keyword: either a single type name or
// an array of names, any one of which the instance must match.
var typeFactory = FilterFactory{
	Keyword: "type",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		var wanted []PrimitiveType
		switch v := node.(type) {
		case string:
			wanted = []PrimitiveType{PrimitiveType(v)}
		case []any:
			names, err := rawschema.AsStringArray(node, pc.Pointer.String())
			if err != nil {
				return nil, compileerr.Wrap(err)
			}
			for _, n := range names {
				wanted = append(wanted, PrimitiveType(n))
			}
		default:
			return nil, compileerr.Malformed(pc.Pointer.String(), fmt.Sprintf("type must be a string or array of strings, got %T", v))
		}

		return newFilter("type", func(value any, state *evalapi.EvalState) *evalerr.Error {
			kind, isInt := Classify(value)
			for _, w := range wanted {
				if matchesType(w, kind, isInt) {
					return nil
				}
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonTypeMismatch,
				Message:    fmt.Sprintf("value is of type %q, want %v", kind, wanted),
			}
		}), nil
	},
}

// enumFactory compiles "enum": the instance must equal one of a fixed
// list of allowed values.
var enumFactory = FilterFactory{
	Keyword: "enum",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		allowed, err := rawschema.AsArray(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		return newFilter("enum", func(value any, state *evalapi.EvalState) *evalerr.Error {
			for _, candidate := range allowed {
				if jsonEqual(value, candidate) {
					return nil
				}
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonEnumMismatch,
				Message:    "value is not one of the enumerated values",
			}
		}), nil
	},
}

// constFactory compiles "const": the instance must equal exactly one value.
var constFactory = FilterFactory{
	Keyword: "const",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		want := node
		return newFilter("const", func(value any, state *evalapi.EvalState) *evalerr.Error {
			if jsonEqual(value, want) {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonConstMismatch,
				Message:    "value does not equal the required constant",
			}
		}), nil
	},
}
