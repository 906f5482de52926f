// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

import "testing"

func TestFromURI(t *testing.T) {
	tests := []struct {
		in   string
		want Pointer
	}{
		{"", nil},
		{"#", nil},
		{"/", nil},
		{"#/a/b/0", Pointer{"a", "b", "0"}},
		{"/a/b/0", Pointer{"a", "b", "0"}},
		{"#/a~1b/c~0d", Pointer{"a/b", "c~d"}},
	}
	for _, tt := range tests {
		got := FromURI(tt.in)
		if !Equal(got, tt.want) {
			t.Errorf("FromURI(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		p    Pointer
		want string
	}{
		{nil, "#"},
		{Pointer{"a", "b", "0"}, "#/a/b/0"},
		{Pointer{"a/b", "c~d"}, "#/a~1b/c~0d"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestJoinAndJoinIndex(t *testing.T) {
	p := Root.Join("properties").Join("name")
	if got, want := p.String(), "#/properties/name"; got != want {
		t.Errorf("Join chain = %q, want %q", got, want)
	}
	p2 := p.JoinIndex(3)
	if got, want := p2.String(), "#/properties/name/3"; got != want {
		t.Errorf("JoinIndex = %q, want %q", got, want)
	}
	// Join must not mutate the receiver.
	if got, want := p.String(), "#/properties/name"; got != want {
		t.Errorf("Join mutated receiver: got %q, want %q", got, want)
	}
}

func TestFunID(t *testing.T) {
	p := Pointer{"properties", "name"}
	got := p.FunID("root")
	want := "root#/properties/name"
	if got != want {
		t.Errorf("FunID() = %q, want %q", got, want)
	}

	if (Pointer{"a"}).FunID("x") == (Pointer{"b"}).FunID("x") {
		t.Error("FunID not injective for distinct pointers under the same authority")
	}
	if (Pointer{"a"}).FunID("x") == (Pointer{"a"}).FunID("y") {
		t.Error("FunID not injective for distinct authorities")
	}
}
