// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine lowers a decoded schema node into an executable
// evalapi.ValidatorFunc: it is the Type dispatcher, the Filter set, the
// Type modules, and the Validator driver together, since in an
// interpreter-tree compilation these four pieces share one closure-based
// representation rather than four separately linked artifacts.
package engine

// PrimitiveType is one of the seven JSON value kinds the "type" keyword
// names.
type PrimitiveType string

const (
	TypeNull    PrimitiveType = "null"
	TypeBoolean PrimitiveType = "boolean"
	TypeString  PrimitiveType = "string"
	TypeInteger PrimitiveType = "integer"
	TypeNumber  PrimitiveType = "number"
	TypeArray   PrimitiveType = "array"
	TypeObject  PrimitiveType = "object"
)

// Classify reports the primitive kind of a decoded instance value, plus
// whether a numeric value additionally has no fractional part (so it
// also satisfies "integer", per the JSON Schema type model where integer
// is a subset of number rather than a distinct wire representation).
func Classify(value any) (kind PrimitiveType, isIntegerValued bool) {
	switch v := value.(type) {
	case nil:
		return TypeNull, false
	case bool:
		return TypeBoolean, false
	case string:
		return TypeString, false
	case float64:
		return TypeNumber, v == float64(int64(v))
	case int, int32, int64:
		return TypeNumber, true
	case []any:
		return TypeArray, false
	case map[string]any:
		return TypeObject, false
	default:
		return "", false
	}
}

// matchesType reports whether kind satisfies the named type keyword
// value, honoring the integer-is-a-number-subset relationship.
func matchesType(want PrimitiveType, kind PrimitiveType, isIntegerValued bool) bool {
	if want == kind {
		return true
	}
	return want == TypeInteger && kind == TypeNumber && isIntegerValued
}
