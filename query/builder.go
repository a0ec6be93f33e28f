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

package query

// Builder assembles a query string through chained calls:
//
//	q := query.NewBuilder().Set("page", "2").Add("tag", "go").Add("tag", "web").Encode()
type Builder struct {
	values *Values
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{values: New()}
}

// Set replaces all values for key and returns the builder.
func (b *Builder) Set(key, value string) *Builder {
	b.values.Set(key, value)
	return b
}

// Add appends a value for key and returns the builder.
func (b *Builder) Add(key, value string) *Builder {
	b.values.Add(key, value)
	return b
}

// SetAll replaces the values for key with vals and returns the builder.
func (b *Builder) SetAll(key string, vals []string) *Builder {
	b.values.Del(key)
	for _, v := range vals {
		b.values.Add(key, v)
	}
	return b
}

// Del removes key and returns the builder.
func (b *Builder) Del(key string) *Builder {
	b.values.Del(key)
	return b
}

// Values returns the accumulated parameters. The builder and its caller
// share the returned Values.
func (b *Builder) Values() *Values {
	return b.values
}

// Encode formats the accumulated parameters without a leading '?'.
func (b *Builder) Encode() string {
	return b.values.Encode()
}

// EncodeWithPrefix formats the accumulated parameters with a leading '?',
// or returns the empty string when nothing was set.
func (b *Builder) EncodeWithPrefix() string {
	return b.values.EncodeWithPrefix()
}
