// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pointer implements JSON Pointers (RFC 6901) as used to address
// both schema subtrees and instance locations, and derives the stable
// identifiers used to name compiled validators.
//
// This is not a fully general RFC 6901 implementation: it only supports the
// operations the compiler and the error-reporting protocol need.
package pointer

import (
	"strconv"
	"strings"
)

// Pointer is a sequence of unescaped JSON Pointer segments.
// The empty Pointer refers to the document root.
type Pointer []string

// Root is the empty pointer, referring to the document root.
var Root = Pointer(nil)

// FromURI parses a JSON Pointer given in one of its external forms:
// "", "/", "#", "#/a/b/0", or "/a/b/0". It unescapes "~1" to "/" and
// "~0" to "~" in each segment.
func FromURI(s string) Pointer {
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return nil
	}
	toks := strings.Split(s, "/")
	p := make(Pointer, len(toks))
	for i, t := range toks {
		p[i] = decodeSegment(t)
	}
	return p
}

// String renders p in URI-fragment form ("#/a/b/0"), escaping each
// segment per RFC 6901 ("~" -> "~0", "/" -> "~1").
func (p Pointer) String() string {
	if len(p) == 0 {
		return "#"
	}
	var sb strings.Builder
	sb.WriteByte('#')
	for _, seg := range p {
		sb.WriteByte('/')
		sb.WriteString(encodeSegment(seg))
	}
	return sb.String()
}

// RFC6901 renders p in plain JSON Pointer form ("/a/b/0"), without the
// leading "#". The root pointer renders as "".
func (p Pointer) RFC6901() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, seg := range p {
		sb.WriteByte('/')
		sb.WriteString(encodeSegment(seg))
	}
	return sb.String()
}

// Join returns a new Pointer that extends p by exactly one segment.
// seg is a plain, unescaped string — Join takes care of any escaping
// needed when the pointer is later rendered.
func (p Pointer) Join(seg string) Pointer {
	next := make(Pointer, len(p)+1)
	copy(next, p)
	next[len(p)] = seg
	return next
}

// JoinIndex is a convenience wrapper around Join for array indices.
func (p Pointer) JoinIndex(i int) Pointer {
	return p.Join(strconv.Itoa(i))
}

// FunID returns a stable identifier for the validator compiled for the
// subtree at p under authority. FunID is injective for distinct
// (authority, p) pairs and is the only name by which generated validators
// are ever addressed, whether that address is a map key (interpreter
// mode) or a linker symbol (codegen mode).
func (p Pointer) FunID(authority string) string {
	var sb strings.Builder
	sb.WriteString(authority)
	sb.WriteByte('#')
	for _, seg := range p {
		sb.WriteByte('/')
		sb.WriteString(encodeSegment(seg))
	}
	return sb.String()
}

// Equal reports whether p and q denote the same pointer.
func Equal(p, q Pointer) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func decodeSegment(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

func encodeSegment(seg string) string {
	if !strings.ContainsAny(seg, "~/") {
		return seg
	}
	seg = strings.ReplaceAll(seg, "~", "~0")
	return strings.ReplaceAll(seg, "/", "~1")
}
