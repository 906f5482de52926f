// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"regexp"

	"github.com/quietloop/schemaforge/internal/compileerr"
	"github.com/quietloop/schemaforge/internal/evalapi"
	"github.com/quietloop/schemaforge/internal/evalerr"
	"github.com/quietloop/schemaforge/internal/rawschema"
)

// propertiesFactory compiles "properties": one schema per named member.
// Members it validates are recorded in state.Notes under
// "propertiesEvaluated" so additionalProperties/unevaluatedProperties
// know what is already accounted for.
var propertiesFactory = FilterFactory{
	Keyword: "properties",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		obj, ok := rawschema.AsObject(node)
		if !ok {
			return nil, compileerr.Malformed(pc.Pointer.String(), "properties must be an object")
		}
		subs := make(map[string]evalapi.ValidatorFunc, len(obj))
		for name, n := range obj {
			v, err := pc.Build(pc.Pointer.Join(name), n)
			if err != nil {
				return nil, err
			}
			subs[name] = v
		}
		return newFilter("properties", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for name, sub := range subs {
				addEvaluatedProperty(state, name)
				member, present := m[name]
				if !present {
					continue
				}
				state.PushToken(name)
				err := sub(member, state)
				state.PopToken()
				if err != nil {
					return err
				}
			}
			return nil
		}), nil
	},
}

// patternPropertiesFactory compiles "patternProperties": one schema per
// regexp, applied to every member whose name matches it.
var patternPropertiesFactory = FilterFactory{
	Keyword: "patternProperties",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		obj, ok := rawschema.AsObject(node)
		if !ok {
			return nil, compileerr.Malformed(pc.Pointer.String(), "patternProperties must be an object")
		}
		type entry struct {
			re  *regexp.Regexp
			sub evalapi.ValidatorFunc
		}
		var entries []entry
		for pattern, n := range obj {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, compileerr.Malformed(pc.Pointer.String(), fmt.Sprintf("patternProperties regexp %q failed to compile: %v", pattern, err))
			}
			v, err := pc.Build(pc.Pointer.Join(pattern), n)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{re: re, sub: v})
		}
		return newFilter("patternProperties", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for name, member := range m {
				for _, e := range entries {
					if !e.re.MatchString(name) {
						continue
					}
					addEvaluatedProperty(state, name)
					state.PushToken(name)
					err := e.sub(member, state)
					state.PopToken()
					if err != nil {
						return err
					}
				}
			}
			return nil
		}), nil
	},
}

// additionalPropertiesFactory compiles "additionalProperties": applies
// to every member that "properties" and "patternProperties" did not
// already evaluate.
var additionalPropertiesFactory = FilterFactory{
	Keyword: "additionalProperties",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		sub, err := pc.Build(pc.Pointer, node)
		if err != nil {
			return nil, err
		}
		return newFilter("additionalProperties", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			evaluated := evaluatedProperties(state)
			for name, member := range m {
				if evaluated[name] {
					continue
				}
				addEvaluatedProperty(state, name)
				state.PushToken(name)
				err := sub(member, state)
				state.PopToken()
				if err != nil {
					return err
				}
			}
			return nil
		}), nil
	},
}

// propertyNamesFactory compiles "propertyNames": every member name,
// treated as a string instance, must satisfy the subschema.
var propertyNamesFactory = FilterFactory{
	Keyword: "propertyNames",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		sub, err := pc.Build(pc.Pointer, node)
		if err != nil {
			return nil, err
		}
		return newFilter("propertyNames", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for name := range m {
				if err := sub(name, state); err != nil {
					err.Reason = evalerr.ReasonPropertyName
					return err
				}
			}
			return nil
		}), nil
	},
}

var minPropertiesFactory = FilterFactory{
	Keyword: "minProperties",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		n, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		bound := int(n)
		return newFilter("minProperties", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			if len(m) >= bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonLengthViolation,
				Message:    fmt.Sprintf("object has fewer than the minimum of %d properties", bound),
			}
		}), nil
	},
}

var maxPropertiesFactory = FilterFactory{
	Keyword: "maxProperties",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		n, err := rawschema.AsNumber(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		bound := int(n)
		return newFilter("maxProperties", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			if len(m) <= bound {
				return nil
			}
			return &evalerr.Error{
				ErrorValue: value,
				Reason:     evalerr.ReasonLengthViolation,
				Message:    fmt.Sprintf("object has more than the maximum of %d properties", bound),
			}
		}), nil
	},
}

var requiredFactory = FilterFactory{
	Keyword: "required",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		names, err := rawschema.AsStringArray(node, pc.Pointer.String())
		if err != nil {
			return nil, compileerr.Wrap(err)
		}
		return newFilter("required", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for i, name := range names {
				if _, present := m[name]; !present {
					return &evalerr.Error{
						SchemaPointer: pc.Pointer.JoinIndex(i).String(),
						ErrorValue:    value,
						Reason:        evalerr.ReasonRequiredMissing,
						Message:       fmt.Sprintf("missing required property %q", name),
					}
				}
			}
			return nil
		}), nil
	},
}

// dependentRequiredFactory compiles "dependentRequired" (2019-09
// onward): a map from property name to a list of property names that
// must also be present whenever the first one is.
var dependentRequiredFactory = FilterFactory{
	Keyword: "dependentRequired",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		obj, ok := rawschema.AsObject(node)
		if !ok {
			return nil, compileerr.Malformed(pc.Pointer.String(), "dependentRequired must be an object")
		}
		deps := make(map[string][]string, len(obj))
		for name, n := range obj {
			names, err := rawschema.AsStringArray(n, pc.Pointer.Join(name).String())
			if err != nil {
				return nil, compileerr.Wrap(err)
			}
			deps[name] = names
		}
		return newFilter("dependentRequired", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for name, need := range deps {
				if _, present := m[name]; !present {
					continue
				}
				for _, n := range need {
					if _, present := m[n]; !present {
						return &evalerr.Error{
							ErrorValue: value,
							Reason:     evalerr.ReasonDependency,
							Message:    fmt.Sprintf("property %q requires property %q", name, n),
						}
					}
				}
			}
			return nil
		}), nil
	},
}

// dependentSchemasFactory compiles "dependentSchemas" (2019-09 onward):
// a map from property name to a schema that the whole object must
// satisfy whenever that property is present.
var dependentSchemasFactory = FilterFactory{
	Keyword: "dependentSchemas",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		obj, ok := rawschema.AsObject(node)
		if !ok {
			return nil, compileerr.Malformed(pc.Pointer.String(), "dependentSchemas must be an object")
		}
		subs := make(map[string]evalapi.ValidatorFunc, len(obj))
		for name, n := range obj {
			v, err := pc.Build(pc.Pointer.Join(name), n)
			if err != nil {
				return nil, err
			}
			subs[name] = v
		}
		return newFilter("dependentSchemas", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for name, sub := range subs {
				if _, present := m[name]; !present {
					continue
				}
				child, err := state.Child()
				if err != nil {
					return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonDependency, Message: err.Error()}
				}
				if cerr := sub(value, child); cerr != nil {
					return cerr
				}
			}
			return nil
		}), nil
	},
}

// dependenciesFactory compiles "dependencies" (draft 4 through
// draft 7): each entry is either an array of property names
// (dependentRequired's meaning) or a schema (dependentSchemas' meaning).
var dependenciesFactory = FilterFactory{
	Keyword: "dependencies",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		obj, ok := rawschema.AsObject(node)
		if !ok {
			return nil, compileerr.Malformed(pc.Pointer.String(), "dependencies must be an object")
		}
		requiredDeps := make(map[string][]string)
		schemaDeps := make(map[string]evalapi.ValidatorFunc)
		for name, n := range obj {
			if arr, ok := n.([]any); ok {
				names := make([]string, len(arr))
				for i, e := range arr {
					s, ok := e.(string)
					if !ok {
						return nil, compileerr.Malformed(pc.Pointer.Join(name).String(), "dependencies array entries must be strings")
					}
					names[i] = s
				}
				requiredDeps[name] = names
				continue
			}
			v, err := pc.Build(pc.Pointer.Join(name), n)
			if err != nil {
				return nil, err
			}
			schemaDeps[name] = v
		}
		return newFilter("dependencies", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for name, need := range requiredDeps {
				if _, present := m[name]; !present {
					continue
				}
				for _, n := range need {
					if _, present := m[n]; !present {
						return &evalerr.Error{
							ErrorValue: value,
							Reason:     evalerr.ReasonDependency,
							Message:    fmt.Sprintf("property %q requires property %q", name, n),
						}
					}
				}
			}
			for name, sub := range schemaDeps {
				if _, present := m[name]; !present {
					continue
				}
				child, err := state.Child()
				if err != nil {
					return &evalerr.Error{ErrorValue: value, Reason: evalerr.ReasonDependency, Message: err.Error()}
				}
				if cerr := sub(value, child); cerr != nil {
					return cerr
				}
			}
			return nil
		}), nil
	},
}

// unevaluatedPropertiesFactory compiles "unevaluatedProperties"
// (2019-09 onward): applies to any member that properties,
// patternProperties, and additionalProperties did not already evaluate.
var unevaluatedPropertiesFactory = FilterFactory{
	Keyword: "unevaluatedProperties",
	Parse: func(pc *ParseContext, node any, siblings map[string]any) (Filter, error) {
		sub, err := pc.Build(pc.Pointer, node)
		if err != nil {
			return nil, err
		}
		return newFilter("unevaluatedProperties", func(value any, state *evalapi.EvalState) *evalerr.Error {
			m, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			evaluated := evaluatedProperties(state)
			for name, member := range m {
				if evaluated[name] {
					continue
				}
				addEvaluatedProperty(state, name)
				state.PushToken(name)
				err := sub(member, state)
				state.PopToken()
				if err != nil {
					return err
				}
			}
			return nil
		}), nil
	},
}
