// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notes

import (
	"reflect"
	"testing"
)

func checkGet(t *testing.T, n *Notes, key string, want any) {
	t.Helper()
	got, ok := n.Get(key)
	if !ok {
		if want != nil {
			t.Errorf("n.Get(%q) = _, false, want %v, true", key, want)
		}
		return
	}
	if want == nil {
		t.Errorf("n.Get(%q) = %v, true, want _, false", key, got)
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("n.Get(%q) = %v, want %v", key, got, want)
	}
}

func TestSetGet(t *testing.T) {
	var n Notes
	checkGet(t, &n, "key1", nil)
	if !n.IsEmpty() {
		t.Error("IsEmpty() = false on zero value, want true")
	}
	n.Set("key1", "val1")
	checkGet(t, &n, "key1", "val1")
	if n.IsEmpty() {
		t.Error("IsEmpty() = true after Set, want false")
	}
	n.Set("key1", "val2")
	checkGet(t, &n, "key1", "val2")
}

func TestAppend(t *testing.T) {
	var n Notes
	Append(&n, "key", "a")
	Append(&n, "key", "b", "c")
	checkGet(t, &n, "key", []string{"a", "b", "c"})
}

func TestMerge(t *testing.T) {
	var n Notes
	n.Set("scalar", "base")
	Append(&n, "list", "a")

	var other Notes
	other.Set("scalar", "override")
	Append(&other, "list", "b", "c")
	other.Set("onlyOther", 1)

	n.Merge(other)

	checkGet(t, &n, "scalar", "override")
	checkGet(t, &n, "list", []string{"a", "b", "c"})
	checkGet(t, &n, "onlyOther", 1)
}

func TestMergeTypeMismatchReplaces(t *testing.T) {
	var n Notes
	n.Set("key", []string{"a"})

	var other Notes
	other.Set("key", 5)

	n.Merge(other)
	checkGet(t, &n, "key", 5)
}

func TestClear(t *testing.T) {
	var n Notes
	n.Set("key1", "val1")
	n.Clear()
	checkGet(t, &n, "key1", nil)
	if !n.IsEmpty() {
		t.Error("IsEmpty() = false after Clear, want true")
	}
}
