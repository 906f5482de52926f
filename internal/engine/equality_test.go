// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "testing"

func TestJSONEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil/nil", nil, nil, true},
		{"nil/string", nil, "x", false},
		{"bool match", true, true, true},
		{"bool mismatch", true, false, false},
		{"string match", "a", "a", true},
		{"int/float cross-type", 1, 1.0, true},
		{"int64/float cross-type", int64(2), 2.0, true},
		{"numeric mismatch", 1.0, 2.0, false},
		{"array elementwise", []any{1.0, "a"}, []any{1.0, "a"}, true},
		{"array length mismatch", []any{1.0}, []any{1.0, 2.0}, false},
		{"array order matters", []any{1.0, 2.0}, []any{2.0, 1.0}, false},
		{
			"object key order independent",
			map[string]any{"a": 1.0, "b": 2.0},
			map[string]any{"b": 2.0, "a": 1.0},
			true,
		},
		{
			"object missing key",
			map[string]any{"a": 1.0},
			map[string]any{"a": 1.0, "b": 2.0},
			false,
		},
		{"type mismatch string vs number", "1", 1.0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jsonEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("jsonEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
