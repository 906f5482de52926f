// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package draft identifies which JSON Schema draft a compilation targets
// and exposes the small set of draft-dependent behavior switches the
// filter set needs: draft-4 boolean-exclusive-bound coercion, the
// items/prefixItems split, dependencies vs dependentRequired +
// dependentSchemas, and whether unevaluatedItems/unevaluatedProperties
// exist.
package draft

import "fmt"

// Draft is one of the five supported JSON Schema drafts.
type Draft string

const (
	Draft4      Draft = "4"
	Draft6      Draft = "6"
	Draft7      Draft = "7"
	Draft2019   Draft = "2019"
	Draft2020   Draft = "2020"
	DraftLatest       = Draft2020
)

// Parse validates and returns a Draft, defaulting to DraftLatest for "".
func Parse(s string) (Draft, error) {
	switch Draft(s) {
	case "":
		return DraftLatest, nil
	case Draft4, Draft6, Draft7, Draft2019, Draft2020:
		return Draft(s), nil
	default:
		return "", fmt.Errorf("jsonschema: unknown draft %q", s)
	}
}

// BoolExclusiveBounds reports whether exclusiveMinimum/exclusiveMaximum
// are booleans that modify minimum/maximum (draft 4) rather than
// standalone numeric bounds (draft 6 onward).
func (d Draft) BoolExclusiveBounds() bool {
	return d == Draft4
}

// HasPrefixItems reports whether "items" + "prefixItems" (2020-12) is
// used instead of the positional-array form of "items" + "additionalItems"
// (draft 4 through 2019-09).
func (d Draft) HasPrefixItems() bool {
	return d == Draft2020
}

// HasDependentKeywords reports whether "dependentRequired" and
// "dependentSchemas" (2019-09 onward) are used instead of the combined
// draft-7-and-earlier "dependencies" keyword. Only one form is compiled
// per draft: a 2019-09/2020-12 document's "dependencies" keyword, like an
// earlier draft's "dependentRequired"/"dependentSchemas", is ignored.
func (d Draft) HasDependentKeywords() bool {
	switch d {
	case Draft2019, Draft2020:
		return true
	default:
		return false
	}
}

// HasUnevaluated reports whether unevaluatedItems/unevaluatedProperties
// are part of the vocabulary (2019-09 onward).
func (d Draft) HasUnevaluated() bool {
	switch d {
	case Draft2019, Draft2020:
		return true
	default:
		return false
	}
}

// SchemaURI returns the canonical $schema value for d.
func (d Draft) SchemaURI() string {
	switch d {
	case Draft4:
		return "http://json-schema.org/draft-04/schema#"
	case Draft6:
		return "http://json-schema.org/draft-06/schema#"
	case Draft7:
		return "http://json-schema.org/draft-07/schema#"
	case Draft2019:
		return "https://json-schema.org/draft/2019-09/schema"
	case Draft2020:
		return "https://json-schema.org/draft/2020-12/schema"
	default:
		return ""
	}
}
