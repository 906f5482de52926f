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

// prefixItemsFactory compiles "prefixItems" (2020-12): one schema per
// leading position. It records how many leading positions it consumed
// in state.Notes under "prefixCount", so "items" (2020-12 meaning) and
// "unevaluatedItems" know where the tuple portion ends.
var prefixItemsFactory = FilterFactory{
	Keyword: "prefixItems",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		raw, err := rawschema.AsArray(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		subs := make([]evalapi.ValidatorFunc, len(raw))
		for i, n := range raw {
			v, err := pc.Build(pc.Pointer.JoinIndex(i), n)
			if err != nil {
				return nil, err
			}
			subs[i] = v
		}
		return newFilter("prefixItems", func(value any, state *evalapi.EvalState) *evalerr.Error {
			arr, ok := value.([]any)
			if !ok {
				return nil
			}
			setPrefixCount(state, len(subs))
			for i, sub := range subs {
				if i >= len(arr) {
					break
				}
				state.PushToken(fmt.Sprint(i))
				err := sub(arr[i], state)
				state.PopToken()
				if err != nil {
					return err
				}
			}
			return nil
		}), nil
	},
}

// itemsFactory compiles "items". Under 2020-12 it validates every
// element past the prefixItems tuple against one schema; under earlier
// drafts it is overloaded: an array value means positional/tuple
// validation (with "additionalItems" governing the remainder), and a
// single schema means every element is checked against it.
var itemsFactory = FilterFactory{
	Keyword: "items",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		if pc.Ctx.Draft.HasPrefixItems() {
			return parseItemsAfterPrefix(pc, node)
		}
		if arr, ok := node.([]any); ok {
			return parseItemsTuple(pc, arr)
		}
		return parseItemsUniform(pc, node)
	},
}

func parseItemsAfterPrefix(pc *ParseContext, node any) (Filter, error) {
	sub, err := pc.Build(pc.Pointer, node)
	if err != nil {
		return nil, err
	}
	return newFilter("items", func(value any, state *evalapi.EvalState) *evalerr.Error {
		arr, ok := value.([]any)
		if !ok {
			return nil
		}
		start := prefixCount(state)
		if start < len(arr) {
			setItemsExhausted(state)
		}
		for i := start; i < len(arr); i++ {
			state.PushToken(fmt.Sprint(i))
			err := sub(arr[i], state)
			state.PopToken()
			if err != nil {
				return err
			}
		}
		return nil
	}), nil
}

func parseItemsTuple(pc *ParseContext, arr []any) (Filter, error) {
	subs := make([]evalapi.ValidatorFunc, len(arr))
	for i, n := range arr {
		v, err := pc.Build(pc.Pointer.JoinIndex(i), n)
		if err != nil {
			return nil, err
		}
		subs[i] = v
	}
	return newFilter("items", func(value any, state *evalapi.EvalState) *evalerr.Error {
		a, ok := value.([]any)
		if !ok {
			return nil
		}
		setPrefixCount(state, len(subs))
		for i, sub := range subs {
			if i >= len(a) {
				break
			}
			state.PushToken(fmt.Sprint(i))
			err := sub(a[i], state)
			state.PopToken()
			if err != nil {
				return err
			}
		}
		return nil
	}), nil
}

func parseItemsUniform(pc *ParseContext, node any) (Filter, error) {
	sub, err := pc.Build(pc.Pointer, node)
	if err != nil {
		return nil, err
	}
	return newFilter("items", func(value any, state *evalapi.EvalState) *evalerr.Error {
		a, ok := value.([]any)
		if !ok {
			return nil
		}
		if len(a) > 0 {
			setItemsExhausted(state)
		}
		for i, e := range a {
			state.PushToken(fmt.Sprint(i))
			err := sub(e, state)
			state.PopToken()
			if err != nil {
				return err
			}
		}
		return nil
	}), nil
}

// additionalItemsFactory compiles "additionalItems" (draft 4 through
// 2019-09): applies to array elements past the positional tuple that
// "items" consumed.
var additionalItemsFactory = FilterFactory{
	Keyword: "additionalItems",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		sub, err := pc.Build(pc.Pointer, node)
		if err != nil {
			return nil, err
		}
		return newFilter("additionalItems", func(value any, state *evalapi.EvalState) *evalerr.Error {
			arr, ok := value.([]any)
			if !ok {
				return nil
			}
			start := prefixCount(state)
			for i := start; i < len(arr); i++ {
				state.PushToken(fmt.Sprint(i))
				err := sub(arr[i], state)
				state.PopToken()
				if err != nil {
					return err
				}
			}
			return nil
		}), nil
	},
}

var minItemsFactory = FilterFactory{
	Keyword: "minItems",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		n, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		bound := int(n)
		return newFilter("minItems", func(value any, state *evalapi.EvalState) *evalerr.Error {
			arr, ok := value.([]any)
			if !ok {
				return nil
			}
			if len(arr) >= bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonLengthViolation,
				Message:    fmt.Sprintf("array has fewer than the minimum of %d items", bound),
			}
		}), nil
	},
}

var maxItemsFactory = FilterFactory{
	Keyword: "maxItems",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		n, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		bound := int(n)
		return newFilter("maxItems", func(value any, state *evalapi.EvalState) *evalerr.Error {
			arr, ok := value.([]any)
			if !ok {
				return nil
			}
			if len(arr) <= bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonLengthViolation,
				Message:    fmt.Sprintf("array has more than the maximum of %d items", bound),
			}
		}), nil
	},
}

var uniqueItemsFactory = FilterFactory{
	Keyword: "uniqueItems",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		want, ok := rawschema.AsBool(node)
		if !ok {
			return nil, compileerr.Malformed(pc.Pointer.String(), "uniqueItems must be a boolean")
		}
		if !want {
			return nil, nil
		}
		return newFilter("uniqueItems", func(value any, state *evalapi.EvalState) *evalerr.Error {
			arr, ok := value.([]any)
			if !ok {
				return nil
			}
			for i := 0; i < len(arr); i++ {
				for j := i + 1; j < len(arr); j++ {
					if jsonEqual(arr[i], arr[j]) {
						return &evalerr.Error{
							ErrorValue: value,
							Reason:     evalerr.ReasonUnique,
							Message:    fmt.Sprintf("items at index %d and %d are equal", i, j),
						}
					}
				}
			}
			return nil
		}), nil
	},
}

// containsFactory compiles "contains". It records, in state.Notes under
// "containsMatched", which indices satisfied the subschema, so
// minContains/maxContains (and unevaluatedItems) can read it back.
var containsFactory = FilterFactory{
	Keyword: "contains",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		sub, err := pc.Build(pc.Pointer, node)
		if err != nil {
			return nil, err
		}
		minContainsZero := false
		if n, ok := siblings["minContains"]; ok {
			if f, ferr := rawschema.AsNumber(n, ""); ferr == nil && f == 0 {
				minContainsZero = true
			}
		}
		return newFilter("contains", func(value any, state *evalapi.EvalState) *evalerr.Error {
			arr, ok := value.([]any)
			if !ok {
				return nil
			}
			var matched []int
			for i, e := range arr {
				child, cerr := state.Child()
				if cerr != nil {
					return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonContains, Message: cerr.Error()}
				}
				if sub(e, child) == nil {
					matched = append(matched, i)
				}
			}
			setContainsMatched(state, matched)
			if len(matched) == 0 && !minContainsZero {
				return &evalerr.Error{
					ErrorValue: value,
					Reason:     evalerr.ReasonContains,
					Message:    "no array element matches the contains schema",
				}
			}
			return nil
		}), nil
	},
}

var minContainsFactory = FilterFactory{
	Keyword: "minContains",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		n, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		bound := int(n)
		return newFilter("minContains", func(value any, state *evalapi.EvalState) *evalerr.Error {
			if _, ok := value.([]any); !ok {
				return nil
			}
			matched := containsMatched(state)
			if len(matched) >= bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonContains,
				Message:    fmt.Sprintf("only %d elements matched contains, want at least %d", len(matched), bound),
			}
		}), nil
	},
}

var maxContainsFactory = FilterFactory{
	Keyword: "maxContains",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		n, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		bound := int(n)
		return newFilter("maxContains", func(value any, state *evalapi.EvalState) *evalerr.Error {
			if _, ok := value.([]any); !ok {
				return nil
			}
			matched := containsMatched(state)
			if len(matched) <= bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonContains,
				Message:    fmt.Sprintf("%d elements matched contains, want at most %d", len(matched), bound),
			}
		}), nil
	},
}

// unevaluatedItemsFactory compiles "unevaluatedItems" (2019-09 onward):
// applies to any array element that neither the tuple portion
// (prefixItems/positional items) nor contains already accounted for.
var unevaluatedItemsFactory = FilterFactory{
	Keyword: "unevaluatedItems",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		sub, err := pc.Build(pc.Pointer, node)
		if err != nil {
			return nil, err
		}
		return newFilter("unevaluatedItems", func(value any, state *evalapi.EvalState) *evalerr.Error {
			arr, ok := value.([]any)
			if !ok {
				return nil
			}
			if itemsExhausted(state) {
				return nil
			}
			start := prefixCount(state)
			matched := containsMatched(state)
			isMatched := func(i int) bool {
				for _, m := range matched {
					if m == i {
						return true
					}
				}
				return false
			}
			if start < len(arr) {
				setItemsExhausted(state)
			}
			for i := start; i < len(arr); i++ {
				if isMatched(i) {
					continue
				}
				state.PushToken(fmt.Sprint(i))
				err := sub(arr[i], state)
				state.PopToken()
				if err != nil {
					return err
				}
			}
			return nil
		}), nil
	},
}
