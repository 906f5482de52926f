// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/quietloop/schemaforge/internal/format"
	"github.com/quietloop/schemaforge/pkg/jsonschema"
)

func compile(t *testing.T, opts jsonschema.Options, schemaJSON string) *jsonschema.Schema {
	t.Helper()
	c, err := jsonschema.NewCompiler(opts)
	if err != nil {
		t.Fatalf("NewCompiler: %v", err)
	}
	s, err := c.Compile("test", []byte(schemaJSON))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return s
}

func decode(t *testing.T, jsonText string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(jsonText), &v); err != nil {
		t.Fatalf("unmarshal instance: %v", err)
	}
	return v
}

func TestTypeAndRange(t *testing.T) {
	s := compile(t, jsonschema.Options{}, `{
		"type": "integer",
		"minimum": 0,
		"maximum": 10
	}`)

	if err := s.Validate(decode(t, `5`)); err != nil {
		t.Errorf("Validate(5) = %v, want nil", err)
	}
	if err := s.Validate(decode(t, `11`)); err == nil {
		t.Error("Validate(11) = nil, want a range violation")
	}
	if err := s.Validate(decode(t, `"nope"`)); err == nil {
		t.Error("Validate(\"nope\") = nil, want a type mismatch")
	}
}

func TestDraft4BooleanExclusiveBounds(t *testing.T) {
	s := compile(t, jsonschema.Options{Draft: "4"}, `{
		"minimum": 0,
		"exclusiveMinimum": true
	}`)

	if err := s.Validate(decode(t, `0`)); err == nil {
		t.Error("Validate(0) with exclusiveMinimum=true = nil, want a range violation")
	}
	if err := s.Validate(decode(t, `0.5`)); err != nil {
		t.Errorf("Validate(0.5) = %v, want nil", err)
	}
}

func TestProperties(t *testing.T) {
	s := compile(t, jsonschema.Options{}, `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"],
		"additionalProperties": false
	}`)

	if err := s.Validate(decode(t, `{"name": "a", "age": 3}`)); err != nil {
		t.Errorf("valid instance rejected: %v", err)
	}
	if err := s.Validate(decode(t, `{"age": 3}`)); err == nil {
		t.Error("missing required property accepted")
	}
	if err := s.Validate(decode(t, `{"name": "a", "extra": 1}`)); err == nil {
		t.Error("additionalProperties=false did not reject an unknown key")
	}
}

func TestRequiredSchemaPointerNamesTheMissingIndex(t *testing.T) {
	s := compile(t, jsonschema.Options{}, `{
		"type": "object",
		"required": ["name", "email"]
	}`)

	err := s.Validate(decode(t, `{"name": "W", "address": "H"}`))
	verr, ok := jsonschema.AsValidationError(err)
	if !ok {
		t.Fatal("Validate error is not a *evalerr.Error")
	}
	if want := "#/required/1"; verr.SchemaPointer != want {
		t.Errorf("SchemaPointer = %q, want %q", verr.SchemaPointer, want)
	}
}

func TestUnevaluatedProperties(t *testing.T) {
	s := compile(t, jsonschema.Options{Draft: "2020"}, `{
		"allOf": [
			{"properties": {"a": {"type": "string"}}}
		],
		"unevaluatedProperties": false
	}`)

	if err := s.Validate(decode(t, `{"a": "x"}`)); err != nil {
		t.Errorf("valid instance rejected: %v", err)
	}
	if err := s.Validate(decode(t, `{"a": "x", "b": 1}`)); err == nil {
		t.Error("unevaluatedProperties=false did not reject an unevaluated key")
	}
}

func TestArrayPrefixItemsAndContains(t *testing.T) {
	s := compile(t, jsonschema.Options{Draft: "2020"}, `{
		"prefixItems": [{"type": "string"}, {"type": "integer"}],
		"items": {"type": "boolean"},
		"contains": {"const": true},
		"minContains": 1
	}`)

	if err := s.Validate(decode(t, `["a", 1, true, false]`)); err != nil {
		t.Errorf("valid instance rejected: %v", err)
	}
	if err := s.Validate(decode(t, `["a", 1, false]`)); err == nil {
		t.Error("contains with minContains=1 did not reject an array with no match")
	}
	if err := s.Validate(decode(t, `["a", "not-an-int", true]`)); err == nil {
		t.Error("prefixItems type mismatch not rejected")
	}
}

func TestCombinators(t *testing.T) {
	s := compile(t, jsonschema.Options{}, `{
		"oneOf": [
			{"type": "string", "maxLength": 3},
			{"type": "integer"}
		]
	}`)

	if err := s.Validate(decode(t, `"ab"`)); err != nil {
		t.Errorf("matches exactly one branch, got %v", err)
	}
	if err := s.Validate(decode(t, `5`)); err != nil {
		t.Errorf("matches exactly one branch, got %v", err)
	}
	if err := s.Validate(decode(t, `"toolong"`)); err == nil {
		t.Error("matches zero branches, want a failure")
	}
}

func TestIfThenElse(t *testing.T) {
	s := compile(t, jsonschema.Options{}, `{
		"if": {"properties": {"kind": {"const": "a"}}},
		"then": {"required": ["valueA"]},
		"else": {"required": ["valueB"]}
	}`)

	if err := s.Validate(decode(t, `{"kind": "a", "valueA": 1}`)); err != nil {
		t.Errorf("then branch rejected: %v", err)
	}
	if err := s.Validate(decode(t, `{"kind": "a"}`)); err == nil {
		t.Error("then branch's required property not enforced")
	}
	if err := s.Validate(decode(t, `{"kind": "b", "valueB": 1}`)); err != nil {
		t.Errorf("else branch rejected: %v", err)
	}
}

func TestRef(t *testing.T) {
	s := compile(t, jsonschema.Options{}, `{
		"$defs": {
			"positiveInt": {"type": "integer", "minimum": 1}
		},
		"type": "object",
		"properties": {
			"count": {"$ref": "#/$defs/positiveInt"}
		}
	}`)

	if err := s.Validate(decode(t, `{"count": 3}`)); err != nil {
		t.Errorf("valid $ref target rejected: %v", err)
	}
	if err := s.Validate(decode(t, `{"count": 0}`)); err == nil {
		t.Error("$ref target's minimum not enforced")
	}

	verr, ok := jsonschema.AsValidationError(s.Validate(decode(t, `{"count": 0}`)))
	if !ok {
		t.Fatal("Validate error is not a *evalerr.Error")
	}
	if len(verr.RefTrace) == 0 {
		t.Error("RefTrace not populated when a $ref boundary was crossed")
	}
}

func TestFormat(t *testing.T) {
	s := compile(t, jsonschema.Options{}, `{"type": "string", "format": "date"}`)

	if err := s.Validate(decode(t, `"2024-01-02"`)); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	if err := s.Validate(decode(t, `"not-a-date"`)); err == nil {
		t.Error("invalid date accepted")
	}
}

func TestFormatExtraRequiresOptIn(t *testing.T) {
	schemaJSON := `{"type": "string", "format": "email"}`

	s := compile(t, jsonschema.Options{}, schemaJSON)
	if err := s.Validate(decode(t, `"not an email"`)); err != nil {
		t.Errorf("email format should be disabled by default, got %v", err)
	}

	s = compile(t, jsonschema.Options{Format: map[string]format.Override{"email": {}}}, schemaJSON)
	if err := s.Validate(decode(t, `"not an email"`)); err == nil {
		t.Error("email format named in Options.Format did not reject an invalid address")
	}
	if err := s.Validate(decode(t, `"a@b.com"`)); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
}

func TestFormatDisableByPointer(t *testing.T) {
	s := compile(t, jsonschema.Options{
		Format: map[string]format.Override{"#/properties/note/format": {Disable: true}},
	}, `{
		"type": "object",
		"properties": {
			"note": {"type": "string", "format": "date"}
		}
	}`)

	if err := s.Validate(decode(t, `{"note": "not-a-date"}`)); err != nil {
		t.Errorf("format disabled at its pointer still rejected the value: %v", err)
	}
}

func TestFormatDisableByNameOverridesDefault(t *testing.T) {
	s := compile(t, jsonschema.Options{
		Format: map[string]format.Override{"date": {Disable: true}},
	}, `{"type": "string", "format": "date"}`)

	if err := s.Validate(decode(t, `"not-a-date"`)); err != nil {
		t.Errorf("date format disabled by name still rejected the value: %v", err)
	}
}

func TestFormatCustomChecker(t *testing.T) {
	s := compile(t, jsonschema.Options{
		Format: map[string]format.Override{
			"email": {Check: func(s string) error {
				if s == "ok" {
					return nil
				}
				return fmt.Errorf("only %q passes this checker", "ok")
			}},
		},
	}, `{"type": "string", "format": "email"}`)

	if err := s.Validate(decode(t, `"ok"`)); err != nil {
		t.Errorf("custom checker rejected its one accepted value: %v", err)
	}
	if err := s.Validate(decode(t, `"user@example.com"`)); err == nil {
		t.Error("custom checker accepted a value only the default email checker would pass")
	}
}

func TestFormatDateTimeUTC(t *testing.T) {
	s := compile(t, jsonschema.Options{
		Format: map[string]format.Override{"date-time": {UTC: true}},
	}, `{"type": "string", "format": "date-time"}`)

	if err := s.Validate(decode(t, `"2024-01-02T03:04:05Z"`)); err != nil {
		t.Errorf("UTC date-time rejected: %v", err)
	}
	if err := s.Validate(decode(t, `"2024-01-02T03:04:05+01:00"`)); err == nil {
		t.Error("date-time with a non-UTC offset accepted when UTC was required")
	}
}

func TestMetadataAccessors(t *testing.T) {
	s := compile(t, jsonschema.Options{}, `{
		"$id": "https://example.com/schema",
		"title": "Example",
		"description": "An example schema",
		"default": 42,
		"examples": [1, 2]
	}`)

	if id, ok := s.ID(); !ok || id != "https://example.com/schema" {
		t.Errorf("ID() = %q, %v, want %q, true", id, ok, "https://example.com/schema")
	}
	if title, ok := s.Title(); !ok || title != "Example" {
		t.Errorf("Title() = %q, %v, want %q, true", title, ok, "Example")
	}
	if desc, ok := s.Description(); !ok || desc != "An example schema" {
		t.Errorf("Description() = %q, %v", desc, ok)
	}
	if def, ok := s.Default(); !ok || def != 42.0 {
		t.Errorf("Default() = %v, %v, want 42, true", def, ok)
	}
	if examples, ok := s.Examples(); !ok || len(examples) != 2 {
		t.Errorf("Examples() = %v, %v, want 2 elements", examples, ok)
	}
}

func TestFalseAndTrueSchema(t *testing.T) {
	trueSchema := compile(t, jsonschema.Options{}, `true`)
	if err := trueSchema.Validate(decode(t, `"anything"`)); err != nil {
		t.Errorf("true schema rejected a value: %v", err)
	}

	falseSchema := compile(t, jsonschema.Options{}, `false`)
	if err := falseSchema.Validate(decode(t, `"anything"`)); err == nil {
		t.Error("false schema accepted a value")
	}
}
