// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package notes implements per-subtree accumulator state: bookkeeping
// that lets one filter's result influence a later filter evaluated
// against the same instance (e.g. "properties" records which keys it
// touched, so "unevaluatedProperties" can skip them).
//
// Trimmed down to the operations the array/object accumulator pipeline
// and the if/then/else combinator actually use.
package notes

import "reflect"

// Notes is a set of named values threaded through validation of one
// schema subtree against one instance value. The zero value is ready
// to use. Notes must not be shared across goroutines.
type Notes struct {
	m map[string]any
}

// Set records a note, replacing any previous value under the same name.
func (n *Notes) Set(name string, val any) {
	if n.m == nil {
		n.m = make(map[string]any)
	}
	n.m[name] = val
}

// Get retrieves a note.
func (n *Notes) Get(name string) (any, bool) {
	v, ok := n.m[name]
	return v, ok
}

// Append appends values to a slice-typed note, creating it if absent.
func Append[E any](n *Notes, name string, val ...E) {
	if n.m == nil {
		n.m = make(map[string]any)
	}
	var s []E
	if old := n.m[name]; old != nil {
		s, _ = old.([]E)
	}
	n.m[name] = append(s, val...)
}

// Merge folds the notes in others into n: scalar values replace, and
// slice-typed values are appended. A type mismatch between an existing
// note and an incoming one indicates a filter bug, but the accumulator
// pipeline runs against attacker-controlled instance shapes on every
// validation call, so Merge resolves a mismatch by replacing rather than
// panicking.
func (n *Notes) Merge(others ...Notes) {
	for _, other := range others {
		for k, v := range other.m {
			cur, ok := n.Get(k)
			if !ok || reflect.TypeOf(v) == nil || reflect.TypeOf(v).Kind() != reflect.Slice {
				n.Set(k, v)
				continue
			}
			curVal := reflect.ValueOf(cur)
			if !curVal.IsValid() || curVal.Kind() != reflect.Slice || curVal.Type() != reflect.TypeOf(v) {
				n.Set(k, v)
				continue
			}
			n.Set(k, reflect.AppendSlice(curVal, reflect.ValueOf(v)).Interface())
		}
	}
}

// Clear discards all notes.
func (n *Notes) Clear() {
	n.m = nil
}

// IsEmpty reports whether there are no notes.
func (n *Notes) IsEmpty() bool {
	return len(n.m) == 0
}
