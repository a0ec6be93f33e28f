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

// Package convert implements the bidirectional string↔value conversion layer
// used for typed path parameters and query values.
//
// A Converter is a symmetric pair of capabilities: Parse turns the decoded
// string form of a parameter into a value, Format turns the value back into
// the string that would reproduce it. Route descriptors hold a Converter per
// bound parameter; the stock set covers the primitive shapes and two
// combinators (optional-of and comma-separated list-of).
package convert

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"strada.dev/router/routeerr"
)

// Converter converts one parameter shape between its string and value forms.
// Parse failures are TypeConversion errors; Format failures indicate a value
// of the wrong dynamic type was supplied.
type Converter interface {
	// Parse converts the decoded string form into a value.
	Parse(s string) (any, error)

	// Format converts a value back into its string form.
	Format(v any) (string, error)
}

// Stock converters for the primitive parameter shapes.
var (
	String Converter = stringConverter{}
	Int    Converter = intConverter{}
	Uint   Converter = uintConverter{}
	Float  Converter = floatConverter{}
	Bool   Converter = boolConverter{}
	Char   Converter = charConverter{}
)

func badFormat(conv string, v any) error {
	return routeerr.TypeConversion("Cannot format %T as %s", v, conv)
}

type stringConverter struct{}

func (stringConverter) Parse(s string) (any, error) { return s, nil }

func (stringConverter) Format(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", badFormat("string", v)
	}
	return s, nil
}

type intConverter struct{}

func (intConverter) Parse(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, routeerr.TypeConversion("Cannot convert '%s' to int", s)
	}
	return n, nil
}

func (intConverter) Format(v any) (string, error) {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10), nil
	case int:
		return strconv.Itoa(n), nil
	}
	return "", badFormat("int", v)
}

type uintConverter struct{}

func (uintConverter) Parse(s string) (any, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, routeerr.TypeConversion("Cannot convert '%s' to uint", s)
	}
	return n, nil
}

func (uintConverter) Format(v any) (string, error) {
	switch n := v.(type) {
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	}
	return "", badFormat("uint", v)
}

type floatConverter struct{}

func (floatConverter) Parse(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, routeerr.TypeConversion("Cannot convert '%s' to float", s)
	}
	return f, nil
}

func (floatConverter) Format(v any) (string, error) {
	f, ok := v.(float64)
	if !ok {
		return "", badFormat("float", v)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

type boolConverter struct{}

func (boolConverter) Parse(s string) (any, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return nil, routeerr.TypeConversion(
		"Cannot convert '%s' to bool. Valid values: true/false, 1/0, yes/no, on/off", s)
}

func (boolConverter) Format(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", badFormat("bool", v)
	}
	return strconv.FormatBool(b), nil
}

type charConverter struct{}

func (charConverter) Parse(s string) (any, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError && size == 1 {
		return nil, routeerr.TypeConversion(
			"Cannot convert '%s' to char. Expected exactly one character", s)
	}
	return r, nil
}

func (charConverter) Format(v any) (string, error) {
	r, ok := v.(rune)
	if !ok {
		return "", badFormat("char", v)
	}
	return string(r), nil
}

// OptionalOf wraps elem so that the empty string round-trips with an absent
// value: Parse("") yields nil, Format(nil) yields "". Non-empty strings and
// non-nil values delegate to elem.
func OptionalOf(elem Converter) Converter {
	return optionalConverter{elem: elem}
}

type optionalConverter struct {
	elem Converter
}

func (c optionalConverter) Parse(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	return c.elem.Parse(s)
}

func (c optionalConverter) Format(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	return c.elem.Format(v)
}

// ListOf wraps elem into a comma-separated list converter. Parse splits on
// ',' and trims surrounding whitespace per item; the empty string parses to
// an empty list. Format joins the items' formatted forms with ','.
//
// This encodes multiple items inside a single value and is distinct from the
// query codec's repeated-key mechanism.
func ListOf(elem Converter) Converter {
	return listConverter{elem: elem}
}

type listConverter struct {
	elem Converter
}

func (c listConverter) Parse(s string) (any, error) {
	if s == "" {
		return []any{}, nil
	}
	parts := strings.Split(s, ",")
	items := make([]any, 0, len(parts))
	for _, part := range parts {
		item, err := c.elem.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c listConverter) Format(v any) (string, error) {
	items, ok := v.([]any)
	if !ok {
		return "", badFormat("list", v)
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s, err := c.elem.Format(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ","), nil
}
