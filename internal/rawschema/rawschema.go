// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rawschema names the decoded-JSON representation of a schema
// node and provides the handful of accessors the validator driver and
// filters need to read keyword values out of it.
//
// A schema node is whatever the configured decoder produced: a
// map[string]any, a []any, a bool, a string, a float64/int, or nil —
// the same shape as a decoded JSON instance. Schemas are always compiled
// from decoded JSON text rather than assembled programmatically from Go
// values, so there is no typed Part/PartValue encoding here: a filter's
// Parse method reads directly out of the map returned by the decoder.
package rawschema

import "fmt"

// Node is a decoded JSON Schema node.
type Node = any

// AsObject returns n as a keyword map, and whether n is an object node.
// True-schema/false-schema (AsBool) nodes are not objects.
func AsObject(n Node) (map[string]any, bool) {
	m, ok := n.(map[string]any)
	return m, ok
}

// AsBool returns n as a boolean shortcut schema ("true"/"false" at a
// schema position), and whether n is one.
func AsBool(n Node) (bool, bool) {
	b, ok := n.(bool)
	return b, ok
}

// Lookup returns the value of keyword in the object node n, and whether
// it was present. It returns false for any non-object node.
func Lookup(n Node, keyword string) (Node, bool) {
	m, ok := AsObject(n)
	if !ok {
		return nil, false
	}
	v, ok := m[keyword]
	return v, ok
}

// Keys returns the keyword names present in the object node n, or nil
// for any non-object node.
func Keys(n Node) []string {
	m, ok := AsObject(n)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// AsString type-asserts n as a string, returning an error naming path
// if it is not one.
func AsString(n Node, path string) (string, error) {
	s, ok := n.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", path, n)
	}
	return s, nil
}

// AsNumber returns n as a float64, accepting any JSON numeric
// representation the decoder produced (float64 is what encoding/json
// yields by default; json.Number and int/int64 are accepted too, for
// decoders configured with json.Decoder.UseNumber or that otherwise
// prefer not to lose integer precision).
func AsNumber(n Node, path string) (float64, error) {
	switch v := n.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case fmt.Stringer:
		var f float64
		if _, err := fmt.Sscanf(v.String(), "%g", &f); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%s: expected number, got %T", path, n)
}

// AsArray type-asserts n as a []any.
func AsArray(n Node, path string) ([]any, error) {
	a, ok := n.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected array, got %T", path, n)
	}
	return a, nil
}

// AsStringArray type-asserts n as an array of strings.
func AsStringArray(n Node, path string) ([]string, error) {
	a, err := AsArray(n, path)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(a))
	for i, e := range a {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected string, got %T", path, i, e)
		}
		out[i] = s
	}
	return out, nil
}

// IsTrueSchema reports whether n is the boolean "accept anything"
// schema true. An empty object node is not reported here, although it
// also accepts every instance once compiled.
func IsTrueSchema(n Node) bool {
	b, ok := AsBool(n)
	return ok && b
}

// IsFalseSchema reports whether n is the "reject everything" schema.
func IsFalseSchema(n Node) bool {
	b, ok := AsBool(n)
	return ok && !b
}
