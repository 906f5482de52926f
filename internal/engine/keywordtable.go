// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "github.com/quietloop/schemaforge/internal/draft"

// filterTable maps every supported keyword to the factory that parses
// it. Driver.Build consults it once per keyword present in a schema
// node; a keyword with no entry is treated as an annotation and
// ignored, per the open vocabulary model every draft from 4 onward
// shares.
var filterTable = map[string]FilterFactory{
	"type":  typeFactory,
	"enum":  enumFactory,
	"const": constFactory,

	"minimum":          minimumFactory,
	"maximum":          maximumFactory,
	"exclusiveMinimum": exclusiveMinimumFactory,
	"exclusiveMaximum": exclusiveMaximumFactory,
	"multipleOf":       multipleOfFactory,

	"minLength": minLengthFactory,
	"maxLength": maxLengthFactory,
	"pattern":   patternFactory,
	"format":    formatFactory,

	"prefixItems":      prefixItemsFactory,
	"items":            itemsFactory,
	"additionalItems":  additionalItemsFactory,
	"minItems":         minItemsFactory,
	"maxItems":         maxItemsFactory,
	"uniqueItems":      uniqueItemsFactory,
	"contains":         containsFactory,
	"minContains":      minContainsFactory,
	"maxContains":      maxContainsFactory,
	"unevaluatedItems": unevaluatedItemsFactory,

	"properties":            propertiesFactory,
	"patternProperties":     patternPropertiesFactory,
	"additionalProperties":  additionalPropertiesFactory,
	"propertyNames":         propertyNamesFactory,
	"minProperties":         minPropertiesFactory,
	"maxProperties":         maxPropertiesFactory,
	"required":              requiredFactory,
	"dependencies":          dependenciesFactory,
	"dependentRequired":     dependentRequiredFactory,
	"dependentSchemas":      dependentSchemasFactory,
	"unevaluatedProperties": unevaluatedPropertiesFactory,

	"allOf": allOfFactory,
	"anyOf": anyOfFactory,
	"oneOf": oneOfFactory,
	"not":   notFactory,
	"if":    ifThenElseFactory,
	"then":  thenFactory,
	"else":  elseFactory,
	"$ref":  refFactory,
}

// keywordOrder returns the keywords to parse, in an order that respects
// the accumulator dependencies built into the filter set: a keyword
// that reads a note must come after the keyword that writes it. In
// particular, "unevaluatedItems"/"unevaluatedProperties" must come
// after "allOf"/"anyOf"/"oneOf"/"if" (see HasUnevaluated below), since
// those combinators only merge a branch's accumulator notes into the
// parent state once the branch validator itself has returned.
// Keywords this draft's vocabulary does not define are otherwise
// included harmlessly — they are only ever looked up against a schema
// node that presumably does not contain them, and filterTable has an
// entry for every one of them regardless of draft. "unevaluatedItems"
// and "unevaluatedProperties" are the exception: drafts before 2019-09
// never defined them, so they are omitted from the order entirely
// rather than merely trusted not to appear, matching how
// HasPrefixItems and HasDependentKeywords gate their own keywords.
func keywordOrder(d draft.Draft) []string {
	order := []string{
		"$ref",
		"type", "enum", "const",
		"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
		"minLength", "maxLength", "pattern", "format",
	}
	if d.HasPrefixItems() {
		order = append(order, "prefixItems", "items")
	} else {
		order = append(order, "items", "additionalItems")
	}
	order = append(order,
		"contains", "minContains", "maxContains",
		"minItems", "maxItems", "uniqueItems",

		"properties", "patternProperties", "additionalProperties",
		"propertyNames", "minProperties", "maxProperties", "required",
	)
	if d.HasDependentKeywords() {
		order = append(order, "dependentRequired", "dependentSchemas")
	} else {
		order = append(order, "dependencies")
	}
	order = append(order,
		"allOf", "anyOf", "oneOf", "not",
		"if", "then", "else",
	)
	if d.HasUnevaluated() {
		order = append(order, "unevaluatedItems", "unevaluatedProperties")
	}
	return order
}
