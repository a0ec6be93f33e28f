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
	"strada.dev/router/codec"
	"strada.dev/router/convert"
	"strada.dev/router/pattern"
	"strada.dev/router/query"
	"strada.dev/router/routeerr"
)

// queryBinding declares one query key a route reads, with its converter and
// cardinality.
type queryBinding struct {
	key      string
	conv     convert.Converter
	required bool
	multi    bool
}

// Def is an immutable route descriptor: a tag name, a compiled pattern,
// converters for path parameters and query keys, and an optional nested
// matcher for the path remainder. Build one Def per route type at startup
// and share it freely; parsing never mutates it.
type Def struct {
	name       string
	pattern    *pattern.Pattern
	paramConvs map[string]convert.Converter
	queries    []queryBinding
	sub        *Matcher
}

// DefOption configures a Def during construction.
type DefOption func(*Def)

// WithParam sets the converter for the named path parameter. Parameters
// without an explicit converter default to convert.String. Naming a
// parameter the pattern does not declare fails NewDef with InvalidPath.
func WithParam(name string, conv convert.Converter) DefOption {
	return func(d *Def) {
		d.paramConvs[name] = conv
	}
}

// WithQuery declares an optional query key. An absent key parses to no
// value; a present one must convert.
func WithQuery(key string, conv convert.Converter) DefOption {
	return func(d *Def) {
		d.queries = append(d.queries, queryBinding{key: key, conv: conv})
	}
}

// WithRequiredQuery declares a query key that must be present; parsing a URL
// without it fails with MissingParameter.
func WithRequiredQuery(key string, conv convert.Converter) DefOption {
	return func(d *Def) {
		d.queries = append(d.queries, queryBinding{key: key, conv: conv, required: true})
	}
}

// WithMultiQuery declares a repeatable query key; all occurrences are
// converted and collected into a slice.
func WithMultiQuery(key string, conv convert.Converter) DefOption {
	return func(d *Def) {
		d.queries = append(d.queries, queryBinding{key: key, conv: conv, multi: true})
	}
}

// WithSub attaches a nested matcher that resolves whatever path remains
// after this route's own pattern.
func WithSub(sub *Matcher) DefOption {
	return func(d *Def) {
		d.sub = sub
	}
}

// NewDef compiles pat and builds a route descriptor. The tag name labels the
// route in diagnostics and observer events.
func NewDef(name, pat string, opts ...DefOption) (*Def, error) {
	p, err := pattern.Compile(pat)
	if err != nil {
		return nil, err
	}

	d := &Def{
		name:       name,
		pattern:    p,
		paramConvs: make(map[string]convert.Converter),
	}
	for _, opt := range opts {
		opt(d)
	}

	declared := make(map[string]bool)
	for _, n := range p.ParameterNames() {
		declared[n] = true
	}
	for n := range d.paramConvs {
		if !declared[n] {
			return nil, routeerr.InvalidPath("pattern '%s' declares no parameter '%s'", pat, n)
		}
	}
	return d, nil
}

// MustDef is NewDef for descriptors known to be valid at startup; it panics
// on error.
func MustDef(name, pat string, opts ...DefOption) *Def {
	d, err := NewDef(name, pat, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the route's tag name.
func (d *Def) Name() string {
	return d.name
}

// Pattern returns the route's pattern string.
func (d *Def) Pattern() string {
	return d.pattern.String()
}

// QueryKeys returns the declared query keys in declaration order.
func (d *Def) QueryKeys() []string {
	keys := make([]string, 0, len(d.queries))
	for _, qb := range d.queries {
		keys = append(keys, qb.key)
	}
	return keys
}

// converterFor returns the converter bound to the named path parameter,
// defaulting to convert.String.
func (d *Def) converterFor(name string) convert.Converter {
	if conv, ok := d.paramConvs[name]; ok {
		return conv
	}
	return convert.String
}

// parseLevel matches the route's own pattern against the non-query portion
// of url and decodes this level's parameters and query bindings. The
// resulting value starts in the NoSubRoute state.
func (d *Def) parseLevel(url string) (*Value, error) {
	pathOnly, rawQuery, _ := codec.SplitPathQuery(url)

	raw, err := d.pattern.Match(pathOnly)
	if err != nil {
		return nil, err
	}

	params := make(map[string]any, len(raw))
	for name, value := range raw {
		converted, err := d.converterFor(name).Parse(value)
		if err != nil {
			return nil, err
		}
		params[name] = converted
	}

	values, err := query.Parse(rawQuery)
	if err != nil {
		return nil, err
	}

	queryParams := make(map[string]any, len(d.queries))
	for _, qb := range d.queries {
		switch {
		case qb.multi:
			parsed, err := values.GetAllParsed(qb.key, qb.conv)
			if err != nil {
				return nil, err
			}
			queryParams[qb.key] = parsed
		case qb.required:
			parsed, err := values.GetParsed(qb.key, qb.conv)
			if err != nil {
				return nil, err
			}
			queryParams[qb.key] = parsed
		default:
			parsed, err := values.GetOptional(qb.key, qb.conv)
			if err != nil {
				return nil, err
			}
			if parsed != nil {
				queryParams[qb.key] = parsed
			}
		}
	}

	return &Value{
		def:         d,
		params:      params,
		queryParams: queryParams,
		rawQuery:    values,
		state:       NoSubRoute(),
	}, nil
}

// Parse matches the route's own pattern against the entire non-query
// portion of url, ignoring any nested matcher. Use ParseWithSub when the
// route should hand a path remainder to its sub-routes.
func (d *Def) Parse(url string) (*Value, error) {
	return d.parseLevel(url)
}

// ConsumedLength returns how many leading characters of url's non-query
// portion this route consumes. A route without a nested matcher claims the
// whole matched path; one with a nested matcher claims exactly the prefix
// its own pattern covers.
func (d *Def) ConsumedLength(url string) (int, error) {
	pathOnly, _, _ := codec.SplitPathQuery(url)
	if d.sub == nil {
		if _, err := d.pattern.Match(pathOnly); err != nil {
			return 0, err
		}
		return len(pathOnly), nil
	}
	return d.pattern.ConsumedLength(pathOnly)
}

// ParseWithSub matches the route's own pattern against the leading portion
// of url and resolves the remainder through the nested matcher. The query
// portion is visible to every level; each decodes only its declared keys.
// For a route without a nested matcher this is identical to Parse.
//
// The returned value's state reports the sub-resolution: NoSubRoute when
// nothing remained, SubRoute on nested success, and ParseFailed (with the
// remainder and the attempted patterns) when the remainder matched nothing.
func (d *Def) ParseWithSub(url string) (*Value, error) {
	if d.sub == nil {
		return d.parseLevel(url)
	}

	pathOnly, rawQuery, hasQuery := codec.SplitPathQuery(url)

	consumed, err := d.pattern.ConsumedLength(pathOnly)
	if err != nil {
		return nil, err
	}

	own := pathOnly[:consumed]
	if hasQuery {
		own += "?" + rawQuery
	}
	v, err := d.parseLevel(own)
	if err != nil {
		return nil, err
	}

	remaining := pathOnly[consumed:]
	if remaining == "" {
		return v, nil
	}

	subURL := remaining
	if hasQuery {
		subURL += "?" + rawQuery
	}
	if sub, err := d.sub.TryParse(subURL); err == nil {
		v.state = SubRoute(sub)
		return v, nil
	}

	v.state = ParseFailed(&Failure{
		RemainingPath:     remaining,
		AttemptedPatterns: d.sub.Patterns(),
	})
	return v, nil
}

// NewValue builds a value for formatting, the inverse of parsing. params
// supplies converted path parameter values by name; queryParams supplies
// converted query values by declared key (multi keys take []any). Values for
// undeclared names fail with InvalidPath. Compose nesting with SetSub before
// calling FormatWithSub.
func (d *Def) NewValue(params, queryParams map[string]any) (*Value, error) {
	declared := make(map[string]bool)
	for _, n := range d.pattern.ParameterNames() {
		declared[n] = true
	}
	for n := range params {
		if !declared[n] {
			return nil, routeerr.InvalidPath("pattern '%s' declares no parameter '%s'", d.pattern.String(), n)
		}
	}

	boundKeys := make(map[string]bool, len(d.queries))
	for _, qb := range d.queries {
		boundKeys[qb.key] = true
	}
	for k := range queryParams {
		if !boundKeys[k] {
			return nil, routeerr.InvalidQuery("route '%s' declares no query key '%s'", d.name, k)
		}
	}

	p := make(map[string]any, len(params))
	for k, val := range params {
		p[k] = val
	}
	q := make(map[string]any, len(queryParams))
	for k, val := range queryParams {
		q[k] = val
	}

	return &Value{
		def:         d,
		params:      p,
		queryParams: q,
		rawQuery:    query.New(),
		state:       NoSubRoute(),
	}, nil
}
