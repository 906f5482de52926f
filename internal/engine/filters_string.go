// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/quietloop/schemaforge/internal/compileerr"
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/evalerr"
	"github.com/quietloop/schemaforge/internal/format"
	"github.com/quietloop/schemaforge/internal/rawschema"
)

var minLengthFactory = FilterFactory{
	Keyword: "minLength",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		n, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		bound := int(n)
		return newFilter("minLength", func(value any, state *evalapi.EvalState) *evalerr.Error {
			s, ok := value.(string)
			if !ok {
				return nil
			}
			if utf8.RuneCountInString(s) >= bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonLengthViolation,
				Message:    fmt.Sprintf("string is shorter than the minimum length of %d", bound),
			}
		}), nil
	},
}

var maxLengthFactory = FilterFactory{
	Keyword: "maxLength",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		n, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		bound := int(n)
		return newFilter("maxLength", func(value any, state *evalapi.EvalState) *evalerr.Error {
			s, ok := value.(string)
			if !ok {
				return nil
			}
			if utf8.RuneCountInString(s) <= bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonLengthViolation,
				Message:    fmt.Sprintf("string is longer than the maximum length of %d", bound),
			}
		}), nil
	},
}

// patternFactory compiles "pattern" to a regexp once, at compile time,
// rather than on every validation call.
var patternFactory = FilterFactory{
	Keyword: "pattern",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		s, err := rawschema.AsString(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		re, err := regexp.Compile(s)
		if err != nil {
			return nil, compileerr.Malformed(pc.Pointer.String(), fmt.Sprintf("pattern %q failed to compile: %v", s, err))
		}
		return newFilter("pattern", func(value any, state *evalapi.EvalState) *evalerr.Error {
			str, ok := value.(string)
			if !ok {
				return nil
			}
			if re.MatchString(str) {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonPatternMismatch,
				Message:    fmt.Sprintf("value does not match pattern %q", s),
			}
		}), nil
	},
}

// formatFactory compiles "format". Which checker runs, and whether it
// runs at all, is decided at validation time from the EvalState's
// options, since format is the one keyword whose enforcement is a
// caller-configured policy rather than a fixed part of the vocabulary.
var formatFactory = FilterFactory{
	Keyword: "format",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		name, err := rawschema.AsString(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		defaultCheck, byDefault, ok := format.Lookup(name)
		if !ok {
			return nil, nil // unrecognized format name: treated as annotation-only
		}
		schemaPtr := pc.Pointer.String()
		return newFilter("format", func(value any, state *evalapi.EvalState) *evalerr.Error {
			s, ok := value.(string)
			if !ok {
				return nil
			}
			check, utc, run := state.ResolveFormat(schemaPtr, name, defaultCheck, byDefault)
			if !run {
				return nil
			}
			if utc && name == "date-time" && !hasUTCOffset(s) {
				return &evalerr.Error{
					ErrorValue: value,
					Reason:     evalerr.ReasonFormatMismatch,
					Message:    fmt.Sprintf("%q is not a UTC date-time (missing a trailing Z offset)", s),
				}
			}
			if err := check(s); err != nil {
				return &evalerr.Error{
					ErrorValue: value,
					Reason:     evalerr.ReasonFormatMismatch,
					Message:    err.Error(),
				}
			}
			return nil
		}), nil
	},
}

// hasUTCOffset reports whether s, an RFC3339 date-time, ends in a "Z"/"z"
// offset rather than a numeric "+HH:MM"/"-HH:MM" one.
func hasUTCOffset(s string) bool {
	return len(s) > 0 && (s[len(s)-1] == 'Z' || s[len(s)-1] == 'z')
}
