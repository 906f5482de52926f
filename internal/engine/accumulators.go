// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/notes"
)

// The functions below read and write the small set of named notes the
// array and object filters pass between themselves within one Artifact:
// which positions or keys an earlier filter already evaluated, so a
// later filter (additionalItems, unevaluatedProperties, and so on) knows
// what is left over.

func setPrefixCount(state *evalapi.EvalState, n int) {
	state.Notes.Set("prefixCount", n)
}

func prefixCount(state *evalapi.EvalState) int {
	v, ok := state.Notes.Get("prefixCount")
	if !ok {
		return 0
	}
	return v.(int)
}

func setItemsExhausted(state *evalapi.EvalState) {
	state.Notes.Set("itemsExhausted", true)
}

func itemsExhausted(state *evalapi.EvalState) bool {
	v, ok := state.Notes.Get("itemsExhausted")
	return ok && v.(bool)
}

func setContainsMatched(state *evalapi.EvalState, matched []int) {
	state.Notes.Set("containsMatched", matched)
}

func containsMatched(state *evalapi.EvalState) []int {
	v, ok := state.Notes.Get("containsMatched")
	if !ok {
		return nil
	}
	return v.([]int)
}

func addEvaluatedProperty(state *evalapi.EvalState, name string) {
	notes.Append(&state.Notes, "propertiesEvaluated", name)
}

func evaluatedProperties(state *evalapi.EvalState) map[string]bool {
	v, ok := state.Notes.Get("propertiesEvaluated")
	if !ok {
		return nil
	}
	names := v.([]string)
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
