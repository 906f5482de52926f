// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/quietloop/schemaforge/internal/draft"
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/registry"
	"github.com/quietloop/schemaforge/pkg/pointer"
)

// Context carries the state shared across an entire compilation: which
// draft's vocabulary is in force, which document is being compiled (its
// authority, for $ref resolution across documents), and the registry
// used to request and materialize validators for referenced subtrees.
type Context struct {
	Authority string
	Draft     draft.Draft
	Registry  *registry.Registry
}

// ParseContext is passed to a FilterFactory's Parse function: it names
// the schema pointer of the node currently being compiled and exposes a
// Build callback so a combinator filter (allOf, if, $ref's sibling
// keywords, and so on) can recursively compile a nested or sibling
// subschema.
type ParseContext struct {
	Ctx     *Context
	Pointer pointer.Pointer
	Build   BuildFunc
}

// BuildFunc compiles the schema node at ptr into a validator. Filters
// that embed subschemas (allOf, properties, items, and so on) call this
// to compile each child, passing the pointer extended with the
// appropriate keyword/index segment.
type BuildFunc func(ptr pointer.Pointer, node any) (evalapi.ValidatorFunc, error)

// Child returns a ParseContext for a nested pointer, sharing Ctx and Build.
func (pc *ParseContext) Child(seg string) *ParseContext {
	return &ParseContext{Ctx: pc.Ctx, Pointer: pc.Pointer.Join(seg), Build: pc.Build}
}

// ChildIndex is the array-index analogue of Child.
func (pc *ParseContext) ChildIndex(i int) *ParseContext {
	return &ParseContext{Ctx: pc.Ctx, Pointer: pc.Pointer.JoinIndex(i), Build: pc.Build}
}
