// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"strings"

	"github.com/quietloop/schemaforge/internal/compileerr"
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/evalerr"
	"github.com/quietloop/schemaforge/internal/rawschema"
	"github.com/quietloop/schemaforge/pkg/pointer"
)

// allOfFactory compiles "allOf": the instance must satisfy every branch.
var allOfFactory = FilterFactory{
	Keyword: "allOf",
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
		return newFilter("allOf", func(value any, state *evalapi.EvalState) *evalerr.Error {
			for i, sub := range subs {
				child, cerr := state.Child()
				if cerr != nil {
					return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonCombinator, Message: cerr.Error()}
				}
				if err := sub(value, child); err != nil {
					state.Notes.Merge(child.Notes)
					return &evalerr.Error{
						ErrorValue: value,
						Reason:     evalerr.ReasonCombinator,
						Message:    fmt.Sprintf("branch %d of allOf did not validate", i),
						Failures:   []*evalerr.Error{err},
					}
				}
				state.Notes.Merge(child.Notes)
			}
			return nil
		}), nil
	},
}

// anyOfFactory compiles "anyOf": the instance must satisfy at least one
// branch.
var anyOfFactory = FilterFactory{
	Keyword: "anyOf",
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
		return newFilter("anyOf", func(value any, state *evalapi.EvalState) *evalerr.Error {
			var failures []*evalerr.Error
			for _, sub := range subs {
				child, cerr := state.Child()
				if cerr != nil {
					return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonCombinator, Message: cerr.Error()}
				}
				if err := sub(value, child); err == nil {
					state.Notes.Merge(child.Notes)
					return nil
				} else {
					failures = append(failures, err)
				}
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonCombinator,
				Message:    "no branch of anyOf validated",
				Failures:   failures,
			}
		}), nil
	},
}

// oneOfFactory compiles "oneOf": the instance must satisfy exactly one
// branch.
var oneOfFactory = FilterFactory{
	Keyword: "oneOf",
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
		return newFilter("oneOf", func(value any, state *evalapi.EvalState) *evalerr.Error {
			var matched []int
			var failures []*evalerr.Error
			var matchedNotes evalapi.EvalState
			for i, sub := range subs {
				child, cerr := state.Child()
				if cerr != nil {
					return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonCombinator, Message: cerr.Error()}
				}
				if err := sub(value, child); err == nil {
					matched = append(matched, i)
					matchedNotes = *child
				} else {
					failures = append(failures, err)
				}
			}
			if len(matched) == 1 {
				state.Notes.Merge(matchedNotes.Notes)
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonCombinator,
				Message:    fmt.Sprintf("%d branches of oneOf matched, want exactly 1", len(matched)),
				Matches:    matched,
				Failures:   failures,
			}
		}), nil
	},
}

// notFactory compiles "not": the instance must not satisfy the subschema.
var notFactory = FilterFactory{
	Keyword: "not",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		sub, err := pc.Build(pc.Pointer, node)
		if err != nil {
			return nil, err
		}
		return newFilter("not", func(value any, state *evalapi.EvalState) *evalerr.Error {
			child, cerr := state.Child()
			if cerr != nil {
				return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonCombinator, Message: cerr.Error()}
			}
			if sub(value, child) == nil {
				return &evalerr.Error{
					ErrorValue: value,
					Reason:     evalerr.ReasonCombinator,
					Message:    "value satisfies the not schema",
				}
			}
			return nil
		}), nil
	},
}

// ifThenElseFactory compiles "if" together with its sibling "then"/"else":
// the three keywords form one conditional filter, since what "then"/"else"
// means depends entirely on whether "if" validated.
var ifThenElseFactory = FilterFactory{
	Keyword: "if",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		condition, err := pc.Build(pc.Pointer, node)
		if err != nil {
			return nil, err
		}
		// "then"/"else" are siblings of "if", so their pointers extend the
		// parent node's pointer, not "if"'s own.
		parent := pc.Pointer[:len(pc.Pointer)-1]
		var thenBranch, elseBranch evalapi.ValidatorFunc
		if thenNode, ok := siblings["then"]; ok {
			thenBranch, err = pc.Build(parent.Join("then"), thenNode)
			if err != nil {
				return nil, err
			}
		}
		if elseNode, ok := siblings["else"]; ok {
			elseBranch, err = pc.Build(parent.Join("else"), elseNode)
			if err != nil {
				return nil, err
			}
		}
		if thenBranch == nil && elseBranch == nil {
			return nil, nil
		}
		return newFilter("if", func(value any, state *evalapi.EvalState) *evalerr.Error {
			child, cerr := state.Child()
			if cerr != nil {
				return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonCombinator, Message: cerr.Error()}
			}
			if condition(value, child) == nil {
				state.Notes.Merge(child.Notes)
				if thenBranch == nil {
					return nil
				}
				return thenBranch(value, state)
			}
			if elseBranch == nil {
				return nil
			}
			return elseBranch(value, state)
		}), nil
	},
}

// thenFactory and elseFactory are no-ops on their own: ifThenElseFactory
// consumes "then"/"else" as siblings of "if". They are registered so that
// a schema using "then"/"else" without "if" is not silently ignored as an
// unknown keyword, and so that keyword iteration order does not matter.
var thenFactory = FilterFactory{
	Keyword: "then",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		return nil, nil
	},
}

var elseFactory = FilterFactory{
	Keyword: "else",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		return nil, nil
	},
}

// refFactory compiles "$ref": the instance must satisfy the schema the
// reference resolves to. Resolution happens at compile time, against
// the registry's same-document anchors and the compiling context's
// authority; the actual validator is fetched lazily through the
// registry's resolver, since the referenced subtree may not have been
// materialized yet when $ref itself is parsed.
var refFactory = FilterFactory{
	Keyword: "$ref",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		ref, err := rawschema.AsString(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}

		authority, frag, _ := strings.Cut(ref, "#")
		if authority == "" {
			authority = pc.Ctx.Authority
		}

		var target pointer.Pointer
		switch {
		case frag == "" || strings.HasPrefix(frag, "/"):
			target = pointer.FromURI("#" + frag)
		default:
			p, ok := pc.Ctx.Registry.LookupAnchor(authority, frag)
			if !ok {
				return nil, compileerr.Unresolved(authority, ref)
			}
			target = p
		}

		funID := pc.Ctx.Registry.Request(authority, target)
		referringPointer := pc.Pointer.String()

		return newFilter("$ref", func(value any, state *evalapi.EvalState) *evalerr.Error {
			resolved, ok := state.Resolve(funID)
			if !ok {
				return &evalerr.Error{
					ErrorValue: value,
					Reason:     evalerr.ReasonRef,
					Message:    fmt.Sprintf("reference %q did not resolve to a compiled schema", ref),
				}
			}
			child, cerr := state.Child()
			if cerr != nil {
				return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonRef, Message: cerr.Error()}
			}
			err := resolved(value, child)
			state.Notes.Merge(child.Notes)
			if err != nil {
				return err.CrossRef(referringPointer)
			}
			return nil
		}), nil
	},
}
