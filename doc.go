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

// Package router resolves URL paths against declarative route descriptors
// and formats them back, bidirectionally: every parse has a matching format
// that reconstructs an equivalent URL.
//
// Routes are plain values built once at startup. A [Def] binds a pattern to
// typed parameter and query converters; a [Matcher] tries an ordered set of
// Defs; nesting a Matcher inside a Def with [WithSub] resolves hierarchical
// paths level by level.
//
// # Declaring Routes
//
//	user := router.MustDef("user", "/user/:id",
//		router.WithParam("id", convert.Int),
//		router.WithQuery("format", convert.String),
//	)
//	home := router.MustDef("home", "/")
//	m := router.MustMatcher([]*router.Def{user, home})
//
//	v, err := m.TryParse("/user/42?format=json")
//
// Patterns use ':name' (or '{name}') for required parameters, '?:name' for
// optional ones, '*name' for a trailing wildcard, and ':a?:b' for a required
// parameter followed by an optional one in adjacent segments. See the
// pattern package for the full micro-syntax.
//
// # Nested Routes
//
// A Def with a nested matcher consumes only its own pattern's prefix and
// hands the remainder down:
//
//	posts := router.MustDef("posts", "/posts/:post_id",
//		router.WithParam("post_id", convert.Int))
//	user := router.MustDef("user", "/user/:id",
//		router.WithParam("id", convert.Int),
//		router.WithSub(router.MustMatcher([]*router.Def{posts})),
//	)
//
// Parsing "/user/42/posts/7" yields a user Value whose [State] carries the
// posts Value. The query portion of the URL is visible to every level; each
// decodes only the keys it declares. Cross-level query merging is
// deliberately unsupported.
//
// # Resolution Order
//
// A Matcher tries alternatives strictly in declaration order and the first
// success wins. Place specific patterns before general ones; a trailing
// catch-all wildcard route goes last.
//
// # Formatting
//
// [Value.Format] renders one level; [Value.FormatWithSub] renders the whole
// chain. Build values for URL generation with [Def.NewValue] and compose
// nesting with [Value.SetSub]. [Value.DebugFormat] renders the resolved
// chain as an indented tree for debug output.
//
// # Observability
//
// Matchers are silent by default. [WithObserver] installs an [Observer]
// that receives one [ResolveEvent] per top-level resolution; [OTelObserver]
// and [PrometheusObserver] are ready-made exporters, and
// [Matcher.TryParseContext] annotates a recording OpenTelemetry span with
// the outcome. Callers that want logs wire their own:
//
//	m := router.MustMatcher(defs, router.WithObserver(
//		router.ObserverFunc(func(e router.ResolveEvent) {
//			slog.Debug("route resolved",
//				"path", e.Path, "route", e.Route, "outcome", string(e.Outcome))
//		}),
//	))
//
// # Concurrency
//
// Def and Matcher are immutable after construction and safe for concurrent
// use. Each parse produces a fresh Value owned by the caller.
package router
