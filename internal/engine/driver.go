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
	"github.com/quietloop/schemaforge/pkg/pointer"
)

// Driver compiles schema nodes into validators, one Artifact per node.
// It is the component that ties the type dispatcher, the filter set,
// and the per-keyword type modules together into one closure-based
// validator, in place of a separately linked program.
type Driver struct {
	Ctx *Context
}

// NewDriver returns a Driver compiling for the given context.
func NewDriver(ctx *Context) *Driver {
	return &Driver{Ctx: ctx}
}

// Artifact is the compiled form of one schema node: an ordered sequence
// of Filters plus enough identity to annotate their failures.
type Artifact struct {
	Pointer pointer.Pointer
	Filters []Filter
}

// alwaysValid is the compiled form of the boolean schema "true".
func alwaysValid(value any, state *evalapi.EvalState) *evalerr.Error { return nil }

// alwaysInvalidAt returns the compiled form of the boolean schema "false"
// found at ptr.
func alwaysInvalidAt(ptr pointer.Pointer) evalapi.ValidatorFunc {
	schemaPtr := ptr.String()
	return func(value any, state *evalapi.EvalState) *evalerr.Error {
		return (&evalerr.Error{
			SchemaPointer: schemaPtr,
			ErrorValue:    value,
			Reason:        evalerr.ReasonTypeMismatch,
			Message:       "false schema rejects every instance",
		}).WithInstanceLocation(state.InstancePointer())
	}
}

// Build compiles the schema node at ptr into a validator function. Every
// recursive call a filter's Parse makes — into properties, items, allOf
// branches, $ref targets — flows back through this same method, keeping
// one compilation strategy for the whole tree.
func (d *Driver) Build(ptr pointer.Pointer, node rawschema.Node) (evalapi.ValidatorFunc, error) {
	if rawschema.IsTrueSchema(node) {
		return alwaysValid, nil
	}
	if rawschema.IsFalseSchema(node) {
		return alwaysInvalidAt(ptr), nil
	}

	obj, ok := rawschema.AsObject(node)
	if !ok {
		return nil, compileerr.Malformed(ptr.String(), fmt.Sprintf("schema node must be an object or boolean, got %T", node))
	}

	if id, ok := obj["$anchor"].(string); ok && id != "" {
		d.Ctx.Registry.RegisterAnchor(d.Ctx.Authority, id, ptr)
	}

	pc := &ParseContext{Ctx: d.Ctx, Pointer: ptr, Build: d.Build}

	art := &Artifact{Pointer: ptr}
	for _, kw := range keywordOrder(d.Ctx.Draft) {
		raw, present := obj[kw]
		if !present {
			continue
		}
		factory, ok := filterTable[kw]
		if !ok {
			continue // unknown keyword: ignored per the annotation-only vocabulary model
		}
		filter, err := factory.Parse(pc.Child(kw), raw, obj)
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		if filter == nil {
			continue
		}
		art.Filters = append(art.Filters, filter)
	}

	return art.compile(), nil
}

// compile returns the ValidatorFunc for this artifact: run every filter
// in keyword order, stop and return the first failure.
func (art *Artifact) compile() evalapi.ValidatorFunc {
	ptr := art.Pointer
	filters := art.Filters
	return func(value any, state *evalapi.EvalState) *evalerr.Error {
		for _, f := range filters {
			if err := f.Check(value, state); err != nil {
				if err.SchemaPointer == "" {
					err.SchemaPointer = ptr.Join(f.Keyword()).String()
				}
				return err.WithInstanceLocation(state.InstancePointer())
			}
		}
		return nil
	}
}

// keywordOrder and filterTable are provided by keywordtable.go.
