// Copyright 2025 The Strada Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"strings"

	"strada.dev/router/query"
	"strada.dev/router/routeerr"
)

// Value is one resolved route level: the descriptor it was parsed by, the
// converted path parameters, the converted query values this level declared,
// and the sub-resolution state. A fresh Value is produced per parse and
// owned by the caller.
type Value struct {
	def         *Def
	params      map[string]any
	queryParams map[string]any
	rawQuery    *query.Values
	state       State
}

// Def returns the descriptor this value was parsed by.
func (v *Value) Def() *Def {
	return v.def
}

// Param returns the converted value of the named path parameter.
func (v *Value) Param(name string) (any, bool) {
	val, ok := v.params[name]
	return val, ok
}

// Query returns the converted value of the named declared query key. Multi
// keys yield []any.
func (v *Value) Query(key string) (any, bool) {
	val, ok := v.queryParams[key]
	return val, ok
}

// RawQuery returns the decoded query parameters of the URL this value was
// parsed from, including keys the route does not declare. Values built with
// NewValue carry an empty set.
func (v *Value) RawQuery() *query.Values {
	return v.rawQuery
}

// State returns the sub-resolution outcome.
func (v *Value) State() State {
	return v.state
}

// SetSub attaches a nested value, for composing routes by hand before
// formatting. Passing nil resets the state to NoSubRoute.
func (v *Value) SetSub(sub *Value) {
	if sub == nil {
		v.state = NoSubRoute()
		return
	}
	v.state = SubRoute(sub)
}

// Format renders this level alone: the pattern with parameters substituted
// and escaped, plus this level's declared query values ('?'-prefixed when
// any are set). Nested levels are ignored; use FormatWithSub for the full
// URL.
func (v *Value) Format() (string, error) {
	raw := make(map[string]string, len(v.params))
	for name, val := range v.params {
		s, err := v.def.converterFor(name).Format(val)
		if err != nil {
			return "", err
		}
		raw[name] = s
	}

	path, err := v.def.pattern.Format(raw)
	if err != nil {
		return "", err
	}

	qs, err := v.encodeQuery()
	if err != nil {
		return "", err
	}
	return path + qs, nil
}

// encodeQuery renders the declared query bindings that carry values, in
// declaration order, as a '?'-prefixed string (empty when none are set).
func (v *Value) encodeQuery() (string, error) {
	b := query.NewBuilder()
	for _, qb := range v.def.queries {
		val, ok := v.queryParams[qb.key]
		if !ok || val == nil {
			continue
		}
		if qb.multi {
			items, ok := val.([]any)
			if !ok {
				return "", routeerr.InvalidQuery("query key '%s' expects a list", qb.key)
			}
			for _, item := range items {
				s, err := qb.conv.Format(item)
				if err != nil {
					return "", err
				}
				b.Add(qb.key, s)
			}
			continue
		}
		s, err := qb.conv.Format(val)
		if err != nil {
			return "", err
		}
		b.Add(qb.key, s)
	}
	return b.EncodeWithPrefix(), nil
}

// FormatWithSub renders the full URL: this level's path joined with the
// nested levels'. Each level contributes its own query portion; a level in
// the ParseFailed or NoSubRoute state terminates the walk.
func (v *Value) FormatWithSub() (string, error) {
	own, err := v.Format()
	if err != nil {
		return "", err
	}

	sub, ok := v.state.Sub()
	if !ok {
		return own, nil
	}

	rest, err := sub.FormatWithSub()
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(own, "/") + rest, nil
}
