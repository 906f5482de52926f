// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry implements the process-wide mapping from
// (authority, pointer) to validator identifier: it records which
// subtrees still need compiling, caches loaded schema text, and tracks
// which identifiers have already been materialized so that each one is
// compiled at most once.
//
// Generalized from a path-keyed schema cache into a fuller registry
// that also tracks pending compilation requests and same-document
// anchors.
package registry

import (
	"sync"

	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/pkg/pointer"
)

// Ref is a pending compilation request: a subtree identified by
// authority and pointer that some $ref has referenced but that has not
// yet been materialized into a validator.
type Ref struct {
	Authority string
	Pointer   pointer.Pointer
}

// Registry is the compilation-time registry. It is not safe for use
// across concurrent compilations of independent schemas; callers that
// want to compile schemas in parallel must use separate Registry values.
type Registry struct {
	mu sync.Mutex

	loadOrder []string
	loaded    map[string]string // path -> schema text, idempotent load

	needed       []Ref
	materialized map[string]bool              // FunID -> true
	validators   map[string]evalapi.ValidatorFunc // FunID -> compiled validator

	anchors map[string]map[string]pointer.Pointer // authority -> $anchor name -> pointer
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		loaded:       make(map[string]string),
		materialized: make(map[string]bool),
		validators:   make(map[string]evalapi.ValidatorFunc),
		anchors:      make(map[string]map[string]pointer.Pointer),
	}
}

// GetFile loads path through loadFn exactly once, caching the result.
// It records the file as an external resource dependency in load order
// on first load, and returns the cached text on subsequent calls.
func (r *Registry) GetFile(path string, loadFn func(path string) (string, error)) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if text, ok := r.loaded[path]; ok {
		return text, nil
	}
	text, err := loadFn(path)
	if err != nil {
		return "", err
	}
	r.loaded[path] = text
	r.loadOrder = append(r.loadOrder, path)
	return text, nil
}

// LoadedPaths returns the paths loaded via GetFile, in insertion order.
func (r *Registry) LoadedPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.loadOrder...)
}

// Request returns the validator identifier for (authority, ptr). If that
// identifier has not yet been materialized, it is recorded in needed so
// a fixpoint pass can compile it; the identifier is returned either way,
// so a $ref may name a subtree before that subtree has been compiled.
func (r *Registry) Request(authority string, ptr pointer.Pointer) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	funID := ptr.FunID(authority)
	if r.materialized[funID] {
		return funID
	}
	r.needed = append(r.needed, Ref{Authority: authority, Pointer: ptr})
	return funID
}

// Drain returns the currently pending requests and clears the queue,
// for the top-level compiler's "while needed is non-empty" fixpoint loop.
func (r *Registry) Drain() []Ref {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.needed) == 0 {
		return nil
	}
	refs := r.needed
	r.needed = nil
	return refs
}

// MarkMaterialized records that funID is now compiled, storing v so the
// resolver returned by Resolver can find it. Calling this twice with the
// same funID indicates every identifier is no longer being materialized
// at most once, which is a compiler bug; the second call is a silent
// no-op rather than a panic, since there is no user-facing way to
// observe the violation once it has already happened.
func (r *Registry) MarkMaterialized(funID string, v evalapi.ValidatorFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.materialized[funID] {
		return
	}
	r.materialized[funID] = true
	r.validators[funID] = v
}

// IsMaterialized reports whether the validator for (authority, ptr) has
// already been compiled.
func (r *Registry) IsMaterialized(authority string, ptr pointer.Pointer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.materialized[ptr.FunID(authority)]
}

// Resolver returns the function the generated $ref filter calls to
// reach another subtree's compiled validator by identifier.
func (r *Registry) Resolver() func(string) (evalapi.ValidatorFunc, bool) {
	return func(funID string) (evalapi.ValidatorFunc, bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		v, ok := r.validators[funID]
		return v, ok
	}
}

// RegisterAnchor records a same-document $anchor found while walking a
// schema, so that a $ref of the form "#name" can be
// resolved to a pointer without a positional JSON Pointer.
func (r *Registry) RegisterAnchor(authority, name string, ptr pointer.Pointer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.anchors[authority]
	if m == nil {
		m = make(map[string]pointer.Pointer)
		r.anchors[authority] = m
	}
	if _, exists := m[name]; !exists {
		m[name] = ptr
	}
}

// LookupAnchor returns the pointer registered for a same-document
// anchor, if any.
func (r *Registry) LookupAnchor(authority, name string) (pointer.Pointer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.anchors[authority][name]
	return p, ok
}
