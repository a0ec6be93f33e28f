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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strada.dev/router/convert"
	"strada.dev/router/routeerr"
)

func TestParse(t *testing.T) {
	t.Parallel()

	v, err := Parse("a=1&b=2&a=3")
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())

	got, ok := v.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", got)
	assert.Equal(t, []string{"1", "3"}, v.GetAll("a"))

	got, ok = v.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", got)

	_, ok = v.Get("c")
	assert.False(t, ok)
}

func TestParseEdgeCases(t *testing.T) {
	t.Parallel()

	// Empty input yields an empty set.
	v, err := Parse("")
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
	assert.Empty(t, v.Encode())

	// Empty fragments between separators are skipped.
	v, err = Parse("a=1&&b=2&")
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())

	// A fragment without '=' keeps the key with an empty value.
	v, err = Parse("flag")
	require.NoError(t, err)
	got, ok := v.Get("flag")
	assert.True(t, ok)
	assert.Empty(t, got)

	// Keys and values are decoded; '+' means space.
	v, err = Parse("full%20name=rust+lang")
	require.NoError(t, err)
	got, ok = v.Get("full name")
	assert.True(t, ok)
	assert.Equal(t, "rust lang", got)

	// Malformed escapes fail the whole parse.
	_, err = Parse("a=%ZZ")
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindURLEncoding))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	v := New()
	v.Set("page", "2")
	v.Add("tag", "go")
	v.Add("tag", "web dev")
	assert.Equal(t, "page=2&tag=go&tag=web%20dev", v.Encode())
	assert.Equal(t, "?page=2&tag=go&tag=web%20dev", v.EncodeWithPrefix())

	// Empty values emit the bare key.
	v = New()
	v.Set("flag", "")
	assert.Equal(t, "flag", v.Encode())

	assert.Empty(t, New().EncodeWithPrefix())
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := Parse("q=rust%20lang&page=2&tag=a&tag=b")
	require.NoError(t, err)

	back, err := Parse(v.Encode())
	require.NoError(t, err)

	assert.Equal(t, v.Keys(), back.Keys())
	for _, key := range v.Keys() {
		assert.Equal(t, v.GetAll(key), back.GetAll(key), "key %q", key)
	}
}

func TestMutation(t *testing.T) {
	t.Parallel()

	v := New()
	v.Add("a", "1")
	v.Add("a", "2")
	v.Set("a", "3")
	assert.Equal(t, []string{"3"}, v.GetAll("a"))

	v.Set("b", "x")
	assert.Equal(t, []string{"a", "b"}, v.Keys())

	v.Del("a")
	assert.False(t, v.Has("a"))
	assert.Equal(t, []string{"b"}, v.Keys())

	v.Clear()
	assert.True(t, v.IsEmpty())
	assert.Empty(t, v.Keys())
}

func TestTypedAccessors(t *testing.T) {
	t.Parallel()

	v := MustParse("page=2&active=true&tag=1&tag=2&bad=x")

	got, err := v.GetParsed("page", convert.Int)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	got, err = v.GetParsed("active", convert.Bool)
	require.NoError(t, err)
	assert.Equal(t, true, got)

	_, err = v.GetParsed("missing", convert.Int)
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindMissingParameter))

	_, err = v.GetParsed("bad", convert.Int)
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindTypeConversion))
}

func TestGetOptionalAndDefault(t *testing.T) {
	t.Parallel()

	v := MustParse("page=2")

	got, err := v.GetOptional("page", convert.Int)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	got, err = v.GetOptional("missing", convert.Int)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = v.GetDefault("missing", convert.Int, int64(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = v.GetDefault("page", convert.Int, int64(1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestGetAllParsed(t *testing.T) {
	t.Parallel()

	v := MustParse("tag=1&tag=2&tag=3&mixed=1&mixed=x")

	got, err := v.GetAllParsed("tag", convert.Int)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got)

	got, err = v.GetAllParsed("missing", convert.Int)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = v.GetAllParsed("mixed", convert.Int)
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindTypeConversion))
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	got := NewBuilder().
		Set("page", "2").
		Add("tag", "go").
		Add("tag", "web").
		Encode()
	assert.Equal(t, "page=2&tag=go&tag=web", got)

	b := NewBuilder().SetAll("id", []string{"1", "2"}).Set("x", "y").Del("x")
	assert.Equal(t, "id=1&id=2", b.Encode())
	assert.Equal(t, "?id=1&id=2", b.EncodeWithPrefix())
	assert.Equal(t, []string{"1", "2"}, b.Values().GetAll("id"))

	assert.Empty(t, NewBuilder().EncodeWithPrefix())
}
