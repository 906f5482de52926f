// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evalerr defines the structured validation-failure record thrown
// by filters and caught at combinator and entrypoint boundaries.
//
// This is deliberately a plain struct with no stack trace: it is a data
// result returned on every failed validation, not a diagnostic, so it must
// stay cheap to construct. Compile-time failures use internal/compileerr
// instead, which carries a trace.
package evalerr

import "fmt"

// Reason enumerates the validation-failure taxonomy.
type Reason string

const (
	ReasonTypeMismatch       Reason = "type_mismatch"
	ReasonEnumMismatch       Reason = "enum_mismatch"
	ReasonConstMismatch      Reason = "const_mismatch"
	ReasonRangeViolation     Reason = "range_violation"
	ReasonLengthViolation    Reason = "length_violation"
	ReasonPatternMismatch    Reason = "pattern_mismatch"
	ReasonFormatMismatch     Reason = "format_mismatch"
	ReasonRequiredMissing    Reason = "required_missing"
	ReasonAdditionalRejected Reason = "additional_rejected"
	ReasonPropertyName       Reason = "property_name_mismatch"
	ReasonDependency         Reason = "dependency_unsatisfied"
	ReasonContains           Reason = "contains_unsatisfied"
	ReasonUnique             Reason = "unique_violation"
	ReasonCombinator         Reason = "combinator_mismatch"
	ReasonRef                Reason = "ref_mismatch"
)

// Error is the structured record returned by a failed validation.
// It is also used, nested, to report the branches of a failed logical
// combinator (Failures) and the member that matched in a successful
// exclusive-or case (Matches is populated only by callers that want to
// surface a successful branch alongside a failure, e.g. "2 matched
// oneOf").
type Error struct {
	// SchemaPointer identifies the failing keyword within the schema.
	SchemaPointer string
	// ErrorValue is the offending JSON subvalue.
	ErrorValue any
	// JSONPointer identifies the offending location within the instance.
	JSONPointer string
	// Reason classifies the failure; see the Reason* constants.
	Reason Reason
	// RefTrace records every $ref pointer crossed, innermost first.
	// It is appended to lazily — only present once a $ref boundary has
	// actually been crossed — to avoid allocation on the common path.
	RefTrace []string
	// Message is a human-readable explanation.
	Message string
	// Failures holds the sub-errors of a failed allOf/anyOf/oneOf: one
	// per branch that did not validate for anyOf and oneOf, and the first
	// failing branch's for allOf. A failed not carries none.
	Failures []*Error
	// Matches holds the indices of schema branches that did validate,
	// for oneOf reporting ("N matched, want exactly 1").
	Matches []int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.SchemaPointer, e.Message)
	}
	return fmt.Sprintf("%s: validation failed (%s)", e.SchemaPointer, e.Reason)
}

// CrossRef appends referringSchemaPointer to the RefTrace and returns e,
// for use at a $ref boundary: the callee's error is caught, annotated
// with the referring pointer, and rethrown. Since the innermost $ref
// catches the error first, the trace reads innermost first.
func (e *Error) CrossRef(referringSchemaPointer string) *Error {
	e.RefTrace = append(e.RefTrace, referringSchemaPointer)
	return e
}

// WithInstanceLocation sets e's JSONPointer in place, if it was not
// already populated by a more specific nested failure, and returns e.
func (e *Error) WithInstanceLocation(ptr string) *Error {
	if e.JSONPointer == "" {
		e.JSONPointer = ptr
	}
	return e
}
