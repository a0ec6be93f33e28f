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

// Package query parses and formats URL query strings as an ordered
// multi-value map, with typed accessors layered on the convert package.
package query

import (
	"strings"

	"strada.dev/router/codec"
	"strada.dev/router/convert"
	"strada.dev/router/routeerr"
)

// Values holds decoded query parameters. A key may carry several values;
// per-key value order and key insertion order are both preserved, so Encode
// is deterministic. The zero value is not usable; call New or Parse.
type Values struct {
	values map[string][]string
	order  []string
}

// New returns an empty Values.
func New() *Values {
	return &Values{values: make(map[string][]string)}
}

// Parse decodes a raw query string (without the leading '?') into Values.
// Fragments are split on '&'; empty fragments are skipped; each fragment
// splits on the first '=' (a fragment without '=' yields an empty value).
// Keys and values are percent-decoded; a malformed escape fails the whole
// parse with a URLEncoding error.
func Parse(raw string) (*Values, error) {
	v := New()
	if raw == "" {
		return v, nil
	}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := codec.Unescape(rawKey)
		if err != nil {
			return nil, err
		}
		value, err := codec.Unescape(rawValue)
		if err != nil {
			return nil, err
		}
		v.Add(key, value)
	}
	return v, nil
}

// MustParse is Parse for query strings known to be valid; it panics on error.
func MustParse(raw string) *Values {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Get returns the first value for key and whether the key is present.
func (v *Values) Get(key string) (string, bool) {
	vals, ok := v.values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// GetAll returns all values for key in insertion order. The returned slice
// is owned by v; callers must not modify it.
func (v *Values) GetAll(key string) []string {
	return v.values[key]
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

// Keys returns all keys in insertion order.
func (v *Values) Keys() []string {
	keys := make([]string, len(v.order))
	copy(keys, v.order)
	return keys
}

// Len returns the number of distinct keys.
func (v *Values) Len() int {
	return len(v.values)
}

// IsEmpty reports whether no parameters are set.
func (v *Values) IsEmpty() bool {
	return len(v.values) == 0
}

// Set replaces all values for key with the single value.
func (v *Values) Set(key, value string) {
	if _, ok := v.values[key]; !ok {
		v.order = append(v.order, key)
	}
	v.values[key] = []string{value}
}

// Add appends value to key, keeping existing values.
func (v *Values) Add(key, value string) {
	if _, ok := v.values[key]; !ok {
		v.order = append(v.order, key)
	}
	v.values[key] = append(v.values[key], value)
}

// Del removes key and all its values.
func (v *Values) Del(key string) {
	if _, ok := v.values[key]; !ok {
		return
	}
	delete(v.values, key)
	for i, k := range v.order {
		if k == key {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

// Clear removes all keys.
func (v *Values) Clear() {
	v.values = make(map[string][]string)
	v.order = nil
}

// Encode formats the parameters as a query string without a leading '?'.
// Each value becomes "key=value" with both sides percent-encoded; an empty
// value emits the bare key. Keys appear in insertion order.
func (v *Values) Encode() string {
	if v.IsEmpty() {
		return ""
	}

	var b strings.Builder
	for _, key := range v.order {
		for _, value := range v.values[key] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(codec.Escape(key))
			if value != "" {
				b.WriteByte('=')
				b.WriteString(codec.Escape(value))
			}
		}
	}
	return b.String()
}

// EncodeWithPrefix is Encode with a leading '?', or the empty string when
// there are no parameters.
func (v *Values) EncodeWithPrefix() string {
	encoded := v.Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

// GetParsed converts the first value for key using conv. A missing key is a
// MissingParameter error; a value conv rejects is a TypeConversion error.
func (v *Values) GetParsed(key string, conv convert.Converter) (any, error) {
	raw, ok := v.Get(key)
	if !ok {
		return nil, routeerr.MissingParameter(key)
	}
	return conv.Parse(raw)
}

// GetOptional converts the first value for key using conv, or returns nil
// when the key is absent. Conversion failures are still errors.
func (v *Values) GetOptional(key string, conv convert.Converter) (any, error) {
	raw, ok := v.Get(key)
	if !ok {
		return nil, nil
	}
	return conv.Parse(raw)
}

// GetDefault converts the first value for key using conv, falling back to
// def when the key is absent. Conversion failures are still errors.
func (v *Values) GetDefault(key string, conv convert.Converter, def any) (any, error) {
	raw, ok := v.Get(key)
	if !ok {
		return def, nil
	}
	return conv.Parse(raw)
}

// GetAllParsed converts every value for key using conv, failing on the first
// value conv rejects. An absent key yields an empty slice.
func (v *Values) GetAllParsed(key string, conv convert.Converter) ([]any, error) {
	raws := v.values[key]
	parsed := make([]any, 0, len(raws))
	for _, raw := range raws {
		value, err := conv.Parse(raw)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, value)
	}
	return parsed, nil
}
