// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonschema compiles a JSON Schema document into an executable
// validator. Compile walks the schema once at build time and produces a
// tree of closures; Validate then runs those closures directly against a
// decoded JSON value, with no further parsing of the schema on the
// validation path.
package jsonschema

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/quietloop/schemaforge/internal/compileerr"
	"github.com/quietloop/schemaforge/internal/draft"
	"github.com/quietloop/schemaforge/internal/engine"
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/evalerr"
	"github.com/quietloop/schemaforge/internal/format"
	"github.com/quietloop/schemaforge/internal/rawschema"
	"github.com/quietloop/schemaforge/internal/registry"
	"github.com/quietloop/schemaforge/pkg/pointer"
)

// Options configures a Compiler. The zero value selects a standard JSON
// decoder, the 2020-12 draft, root as the entrypoint, and an authority
// equal to the name passed to Compile.
type Options struct {
	// Format maps a schema pointer to a "format" keyword occurrence
	// (e.g. "#/properties/email/format") or a format name (e.g. "email",
	// "date-time") to a format.Override: set
	// Disable to turn a check off, set Check to replace the registered
	// checker, or set UTC on "date-time" to additionally require a
	// trailing "Z" offset. A pointer key overrides a name key. Naming a
	// non-default checker here without Disable turns it on; the five
	// draft-mandated defaults (date-time, date, time, ipv4, ipv6) are
	// on unless named here with Disable set.
	Format map[string]format.Override
	// Entrypoint is a JSON Pointer into the schema document naming the
	// subtree to compile as the public entrypoint. Defaults to root.
	Entrypoint string
	// Decoder turns schema text into a decoded JSON value. Defaults to
	// encoding/json's standard decoding into map[string]any/[]any/etc.
	Decoder func([]byte) (any, error)
	// Draft selects the keyword vocabulary: "4", "6", "7", "2019", or
	// "2020" (default).
	Draft string
	// Authority names this document for $ref resolution and validator
	// identifiers. Defaults to the name passed to Compile.
	Authority string
	// ApplyDefaults is passed through to the validation state, where
	// EvalState.AppliesDefaults reports it. No filter reads it: default
	// values are not applied, and setting it does not change any
	// validation result.
	ApplyDefaults bool
}

// Compiler compiles schema documents sharing one registry, so that a
// document loaded via Precache can be the target of a $ref from a
// document compiled afterward.
type Compiler struct {
	opts     Options
	draft    draft.Draft
	registry *registry.Registry

	mu   sync.Mutex
	docs map[string]rawschema.Node // authority -> decoded document root
}

// NewCompiler returns a Compiler configured by opts.
func NewCompiler(opts Options) (*Compiler, error) {
	d, err := draft.Parse(opts.Draft)
	if err != nil {
		return nil, compileerr.Wrap(err)
	}
	return &Compiler{
		opts:     opts,
		draft:    d,
		registry: registry.New(),
		docs:     make(map[string]rawschema.Node),
	}, nil
}

func (c *Compiler) decode(data []byte) (rawschema.Node, error) {
	if c.opts.Decoder != nil {
		return c.opts.Decoder(data)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Precache loads and decodes the schema document at path, making it
// available as the target of a $ref whose authority is path, without
// itself being compiled. Schema text is cached: calling Precache twice
// with the same path reads the file only once.
func (c *Compiler) Precache(path string) error {
	text, err := c.registry.GetFile(path, func(p string) (string, error) {
		b, err := os.ReadFile(p)
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
	if err != nil {
		return compileerr.Wrap(err)
	}
	node, err := c.decode([]byte(text))
	if err != nil {
		return compileerr.Decode(path, err)
	}
	c.mu.Lock()
	c.docs[path] = node
	c.mu.Unlock()
	return nil
}

// Compile compiles schemaBytes under name, returning the resulting
// Schema's public entrypoint. It decodes the document, compiles the
// subtree named by Options.Entrypoint, and then drains the registry's
// pending $ref requests until none remain, compiling each one in turn.
func (c *Compiler) Compile(name string, schemaBytes []byte) (*Schema, error) {
	authority := c.opts.Authority
	if authority == "" {
		authority = name
	}

	root, err := c.decode(schemaBytes)
	if err != nil {
		return nil, compileerr.Decode(name, err)
	}
	c.mu.Lock()
	c.docs[authority] = root
	c.mu.Unlock()

	entrypointPtr := pointer.FromURI(c.opts.Entrypoint)
	entrypointNode, ok := navigate(root, entrypointPtr)
	if !ok {
		return nil, compileerr.Malformed(entrypointPtr.String(), "entrypoint does not address a node in the document")
	}

	ctx := &engine.Context{Authority: authority, Draft: c.draft, Registry: c.registry}
	validate, err := engine.NewDriver(ctx).Build(entrypointPtr, entrypointNode)
	if err != nil {
		return nil, err
	}
	c.registry.MarkMaterialized(entrypointPtr.FunID(authority), validate)

	if err := c.drainFixpoint(); err != nil {
		return nil, err
	}

	evalOpts := &evalapi.Options{
		ApplyDefaults:  c.opts.ApplyDefaults,
		ValidateFormat: true,
		Formats:        c.opts.Format,
	}

	return &Schema{
		validate: validate,
		resolve:  c.registry.Resolver(),
		options:  evalOpts,
		root:     entrypointNode,
	}, nil
}

// drainFixpoint compiles every pending $ref request, in turn, until the
// registry reports none remain. A request naming an authority this
// Compiler has not seen a document for (neither Compile'd nor
// Precache'd) is an unresolved reference, since remote fetching over a
// network is out of scope.
func (c *Compiler) drainFixpoint() error {
	for {
		refs := c.registry.Drain()
		if len(refs) == 0 {
			return nil
		}
		slog.Debug("jsonschema: draining pending references", "count", len(refs))
		for _, ref := range refs {
			if c.registry.IsMaterialized(ref.Authority, ref.Pointer) {
				continue
			}
			c.mu.Lock()
			doc, ok := c.docs[ref.Authority]
			c.mu.Unlock()
			if !ok {
				return compileerr.Unresolved(ref.Authority, ref.Pointer.String())
			}
			node, ok := navigate(doc, ref.Pointer)
			if !ok {
				return compileerr.Unresolved(ref.Authority, ref.Pointer.String())
			}
			ctx := &engine.Context{Authority: ref.Authority, Draft: c.draft, Registry: c.registry}
			v, err := engine.NewDriver(ctx).Build(ref.Pointer, node)
			if err != nil {
				return err
			}
			c.registry.MarkMaterialized(ref.Pointer.FunID(ref.Authority), v)
		}
	}
}

// navigate walks root along ptr, following map keys and array indices.
func navigate(root rawschema.Node, ptr pointer.Pointer) (rawschema.Node, bool) {
	cur := root
	for _, seg := range ptr {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Schema is a compiled validator for one schema document's entrypoint.
type Schema struct {
	validate evalapi.ValidatorFunc
	resolve  func(string) (evalapi.ValidatorFunc, bool)
	options  *evalapi.Options
	root     rawschema.Node
}

// Validate checks value against the compiled schema, returning nil on
// success or a *evalerr.Error describing the first mismatch.
func (s *Schema) Validate(value any) error {
	state := &evalapi.EvalState{Resolve: s.resolve, Options: s.options}
	if err := s.validate(value, state); err != nil {
		return err
	}
	return nil
}

// AsValidationError unwraps err into the structured failure record
// Validate returns, if it is one.
func AsValidationError(err error) (*evalerr.Error, bool) {
	ve, ok := err.(*evalerr.Error)
	return ve, ok
}

func (s *Schema) lookup(keyword string) (any, bool) {
	obj, ok := rawschema.AsObject(s.root)
	if !ok {
		return nil, false
	}
	v, ok := obj[keyword]
	return v, ok
}

// ID returns the entrypoint's $id, if present.
func (s *Schema) ID() (string, bool) {
	v, ok := s.lookup("$id")
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// SchemaURI returns the entrypoint's $schema, if present.
func (s *Schema) SchemaURI() (string, bool) {
	v, ok := s.lookup("$schema")
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Default returns the entrypoint's default value, if present.
func (s *Schema) Default() (any, bool) {
	return s.lookup("default")
}

// Examples returns the entrypoint's examples, if present.
func (s *Schema) Examples() ([]any, bool) {
	v, ok := s.lookup("examples")
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// Description returns the entrypoint's description, if present.
func (s *Schema) Description() (string, bool) {
	v, ok := s.lookup("description")
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Title returns the entrypoint's title, if present.
func (s *Schema) Title() (string, bool) {
	v, ok := s.lookup("title")
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}
