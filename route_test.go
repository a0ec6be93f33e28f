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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strada.dev/router/convert"
	"strada.dev/router/routeerr"
)

func TestDefParse(t *testing.T) {
	t.Parallel()

	d := MustDef("user", "/user/:id",
		WithParam("id", convert.Int),
		WithQuery("format", convert.String),
	)

	v, err := d.Parse("/user/42?format=json")
	require.NoError(t, err)

	id, ok := v.Param("id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	format, ok := v.Query("format")
	assert.True(t, ok)
	assert.Equal(t, "json", format)

	assert.Equal(t, StateNoSubRoute, v.State().Kind())
	assert.Equal(t, "user", v.Def().Name())
	assert.Equal(t, "/user/:id", v.Def().Pattern())
}

func TestDefParseErrors(t *testing.T) {
	t.Parallel()

	d := MustDef("user", "/user/:id", WithParam("id", convert.Int))

	// Parameter fails conversion.
	_, err := d.Parse("/user/abc")
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindTypeConversion))

	// Wrong shape.
	_, err = d.Parse("/user/1/extra")
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindSegmentCountMismatch))

	_, err = d.Parse("/admin/1")
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindSegmentMismatch))
}

func TestNewDefRejectsUnknownParam(t *testing.T) {
	t.Parallel()

	_, err := NewDef("user", "/user/:id", WithParam("nope", convert.Int))
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindInvalidPath))

	// Bad patterns surface at construction too.
	_, err = NewDef("bad", "/user/:")
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindInvalidPath))
}

func TestQueryBindings(t *testing.T) {
	t.Parallel()

	d := MustDef("search", "/search",
		WithRequiredQuery("q", convert.String),
		WithQuery("page", convert.Int),
		WithMultiQuery("tag", convert.Int),
	)

	v, err := d.Parse("/search?q=rust+lang&page=2&tag=1&tag=2")
	require.NoError(t, err)

	q, _ := v.Query("q")
	assert.Equal(t, "rust lang", q)
	page, _ := v.Query("page")
	assert.Equal(t, int64(2), page)
	tags, _ := v.Query("tag")
	assert.Equal(t, []any{int64(1), int64(2)}, tags)

	// Optional key absent: no value, no error.
	v, err = d.Parse("/search?q=x")
	require.NoError(t, err)
	_, ok := v.Query("page")
	assert.False(t, ok)
	tags, _ = v.Query("tag")
	assert.Empty(t, tags)

	// Required key absent: error.
	_, err = d.Parse("/search?page=2")
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindMissingParameter))

	// Undeclared keys are still visible raw.
	v, err = d.Parse("/search?q=x&debug=1")
	require.NoError(t, err)
	raw, ok := v.RawQuery().Get("debug")
	assert.True(t, ok)
	assert.Equal(t, "1", raw)
	_, ok = v.Query("debug")
	assert.False(t, ok)
}

func TestValueFormat(t *testing.T) {
	t.Parallel()

	d := MustDef("user", "/user/:id",
		WithParam("id", convert.Int),
		WithQuery("format", convert.String),
	)

	v, err := d.Parse("/user/42?format=json")
	require.NoError(t, err)

	got, err := v.Format()
	require.NoError(t, err)
	assert.Equal(t, "/user/42?format=json", got)

	// Without the optional query key the path stands alone.
	v, err = d.Parse("/user/42")
	require.NoError(t, err)
	got, err = v.Format()
	require.NoError(t, err)
	assert.Equal(t, "/user/42", got)
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	d := MustDef("search", "/search/:q",
		WithParam("q", convert.String),
		WithQuery("page", convert.Int),
		WithMultiQuery("tag", convert.String),
	)

	const url = "/search/rust%20lang?page=2&tag=a&tag=b"
	v, err := d.Parse(url)
	require.NoError(t, err)

	got, err := v.Format()
	require.NoError(t, err)
	assert.Equal(t, url, got)
}

func TestNewValue(t *testing.T) {
	t.Parallel()

	d := MustDef("user", "/user/:id",
		WithParam("id", convert.Int),
		WithQuery("format", convert.String),
	)

	v, err := d.NewValue(
		map[string]any{"id": int64(7)},
		map[string]any{"format": "json"},
	)
	require.NoError(t, err)

	got, err := v.Format()
	require.NoError(t, err)
	assert.Equal(t, "/user/7?format=json", got)

	// Undeclared names are rejected.
	_, err = d.NewValue(map[string]any{"nope": 1}, nil)
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindInvalidPath))

	_, err = d.NewValue(nil, map[string]any{"nope": 1})
	require.Error(t, err)
	assert.True(t, routeerr.IsKind(err, routeerr.KindInvalidQuery))
}

func TestParseWithSub(t *testing.T) {
	t.Parallel()

	posts := MustDef("posts", "/posts/:post_id", WithParam("post_id", convert.Int))
	user := MustDef("user", "/user/:id",
		WithParam("id", convert.Int),
		WithSub(MustMatcher([]*Def{posts})),
	)

	// Remainder resolves through the nested matcher.
	v, err := user.ParseWithSub("/user/42/posts/7")
	require.NoError(t, err)
	id, _ := v.Param("id")
	assert.Equal(t, int64(42), id)

	sub, ok := v.State().Sub()
	require.True(t, ok)
	assert.Equal(t, "posts", sub.Def().Name())
	postID, _ := sub.Param("post_id")
	assert.Equal(t, int64(7), postID)

	// Nothing remains: NoSubRoute.
	v, err = user.ParseWithSub("/user/42")
	require.NoError(t, err)
	assert.Equal(t, StateNoSubRoute, v.State().Kind())

	// Remainder matches nothing: ParseFailed with the evidence.
	v, err = user.ParseWithSub("/user/42/bogus")
	require.NoError(t, err)
	f, ok := v.State().Failure()
	require.True(t, ok)
	assert.Equal(t, "/bogus", f.RemainingPath)
	assert.Equal(t, []string{"/posts/:post_id"}, f.AttemptedPatterns)
	assert.Nil(t, f.Closest)
}

func TestParseWithSubQueryPerLevel(t *testing.T) {
	t.Parallel()

	posts := MustDef("posts", "/posts/:post_id",
		WithParam("post_id", convert.Int),
		WithQuery("draft", convert.Bool),
	)
	user := MustDef("user", "/user/:id",
		WithParam("id", convert.Int),
		WithQuery("format", convert.String),
		WithSub(MustMatcher([]*Def{posts})),
	)

	// Every level sees the query portion and decodes only its own keys.
	v, err := user.ParseWithSub("/user/42/posts/7?format=json&draft=true")
	require.NoError(t, err)

	format, _ := v.Query("format")
	assert.Equal(t, "json", format)

	sub, ok := v.State().Sub()
	require.True(t, ok)
	draft, _ := sub.Query("draft")
	assert.Equal(t, true, draft)
	_, ok = sub.Query("format")
	assert.False(t, ok)
}

func TestParseWithSubTrailingSlash(t *testing.T) {
	t.Parallel()

	index := MustDef("index", "/")
	posts := MustDef("posts", "/posts/:post_id", WithParam("post_id", convert.Int))
	user := MustDef("user", "/user/:id",
		WithParam("id", convert.Int),
		WithSub(MustMatcher([]*Def{posts, index})),
	)

	// A trailing slash leaves "/" as the remainder, which the nested matcher
	// resolves like any other path.
	v, err := user.ParseWithSub("/user/42/")
	require.NoError(t, err)
	sub, ok := v.State().Sub()
	require.True(t, ok)
	assert.Equal(t, "index", sub.Def().Name())

	// Without the trailing slash nothing remains.
	v, err = user.ParseWithSub("/user/42")
	require.NoError(t, err)
	assert.Equal(t, StateNoSubRoute, v.State().Kind())

	// A sub set without a "/" route records the "/" remainder as a failure.
	bare := MustDef("user", "/user/:id",
		WithParam("id", convert.Int),
		WithSub(MustMatcher([]*Def{posts})),
	)
	v, err = bare.ParseWithSub("/user/42/")
	require.NoError(t, err)
	f, ok := v.State().Failure()
	require.True(t, ok)
	assert.Equal(t, "/", f.RemainingPath)
}

func TestParseWithSubWithoutMatcher(t *testing.T) {
	t.Parallel()

	// A leaf route never partially matches a longer path.
	d := MustDef("user", "/user/:id", WithParam("id", convert.Int))
	_, err := d.ParseWithSub("/user/42/extra")
	assert.Error(t, err)

	v, err := d.ParseWithSub("/user/42")
	require.NoError(t, err)
	assert.Equal(t, StateNoSubRoute, v.State().Kind())
}

func TestConsumedLength(t *testing.T) {
	t.Parallel()

	posts := MustDef("posts", "/posts/:post_id", WithParam("post_id", convert.Int))

	// With a nested matcher the route claims only its own prefix.
	nested := MustDef("user", "/user/:id", WithSub(MustMatcher([]*Def{posts})))
	n, err := nested.ConsumedLength("/user/42/posts/7")
	require.NoError(t, err)
	assert.Equal(t, len("/user/42"), n)

	// A leaf claims the whole matched path and rejects longer ones.
	leaf := MustDef("user", "/user/:id")
	n, err = leaf.ConsumedLength("/user/42?format=json")
	require.NoError(t, err)
	assert.Equal(t, len("/user/42"), n)

	_, err = leaf.ConsumedLength("/user/42/extra")
	assert.Error(t, err)
}

func TestFormatWithSub(t *testing.T) {
	t.Parallel()

	posts := MustDef("posts", "/posts/:post_id", WithParam("post_id", convert.Int))
	user := MustDef("user", "/user/:id",
		WithParam("id", convert.Int),
		WithSub(MustMatcher([]*Def{posts})),
	)

	v, err := user.ParseWithSub("/user/42/posts/7")
	require.NoError(t, err)

	got, err := v.FormatWithSub()
	require.NoError(t, err)
	assert.Equal(t, "/user/42/posts/7", got)

	// Composing by hand formats the same URL.
	parent, err := user.NewValue(map[string]any{"id": int64(42)}, nil)
	require.NoError(t, err)
	child, err := posts.NewValue(map[string]any{"post_id": int64(7)}, nil)
	require.NoError(t, err)
	parent.SetSub(child)

	got, err = parent.FormatWithSub()
	require.NoError(t, err)
	assert.Equal(t, "/user/42/posts/7", got)

	parent.SetSub(nil)
	got, err = parent.FormatWithSub()
	require.NoError(t, err)
	assert.Equal(t, "/user/42", got)
}
