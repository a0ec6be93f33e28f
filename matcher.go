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
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"strada.dev/router/codec"
	"strada.dev/router/routeerr"
)

// Matcher is a closed, ordered set of route alternatives. Resolution tries
// each alternative in declaration order and the first success wins, so more
// specific patterns belong before more general ones. Immutable after
// NewMatcher and safe for concurrent use.
type Matcher struct {
	defs     []*Def
	observer Observer
}

// MatcherOption configures a Matcher during construction.
type MatcherOption func(*Matcher)

// WithObserver installs an observer that receives one ResolveEvent per
// top-level TryParse call. Resolution behaves identically without one.
func WithObserver(o Observer) MatcherOption {
	return func(m *Matcher) {
		m.observer = o
	}
}

// NewMatcher builds a matcher over defs. At least one alternative is
// required.
func NewMatcher(defs []*Def, opts ...MatcherOption) (*Matcher, error) {
	if len(defs) == 0 {
		return nil, routeerr.InvalidPath("matcher requires at least one route")
	}
	m := &Matcher{defs: defs}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// MustMatcher is NewMatcher for sets known to be valid at startup; it panics
// on error.
func MustMatcher(defs []*Def, opts ...MatcherOption) *Matcher {
	m, err := NewMatcher(defs, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Patterns returns the pattern strings of all alternatives in declaration
// order.
func (m *Matcher) Patterns() []string {
	pats := make([]string, len(m.defs))
	for i, d := range m.defs {
		pats[i] = d.Pattern()
	}
	return pats
}

// Format renders v's full URL, nested levels included. A convenience mirror
// of Value.FormatWithSub for callers holding the matcher.
func (m *Matcher) Format(v *Value) (string, error) {
	return v.FormatWithSub()
}

// resolve runs the alternative loop: literal-prefix check, then nested
// resolution, then a plain whole-path match as fallback. Individual
// alternative failures are absorbed; only total failure surfaces.
func (m *Matcher) resolve(url string) (*Value, error) {
	pathOnly, _, _ := codec.SplitPathQuery(url)

	for _, d := range m.defs {
		if prefix := d.pattern.LiteralPrefix(); prefix != "" && !strings.HasPrefix(pathOnly, prefix) {
			continue
		}
		if v, err := d.ParseWithSub(url); err == nil {
			return v, nil
		}
		if v, err := d.Parse(url); err == nil {
			return v, nil
		}
	}
	return nil, routeerr.InvalidPath("No matching route found for path: %s", url)
}

// TryParse resolves url against the alternatives and returns the first
// match. All alternatives failing yields a single InvalidPath error naming
// the path.
func (m *Matcher) TryParse(url string) (*Value, error) {
	if m.observer == nil {
		return m.resolve(url)
	}

	start := time.Now()
	v, err := m.resolve(url)
	m.observer.ObserveResolve(newResolveEvent(url, v, err, time.Since(start)))
	return v, err
}

// TryParseWithRemaining resolves url like TryParse and additionally returns
// the path suffix no level consumed: empty on full resolution, the failing
// remainder when any level's sub-resolution ended in ParseFailed. Parent
// resolvers use the remainder to continue past this matcher.
func (m *Matcher) TryParseWithRemaining(url string) (*Value, string, error) {
	v, err := m.TryParse(url)
	if err != nil {
		return nil, "", err
	}

	// The failure, if any, sits at the deepest resolved level.
	deepest := v
	for {
		sub, ok := deepest.state.Sub()
		if !ok {
			break
		}
		deepest = sub
	}
	if f, ok := deepest.state.Failure(); ok {
		return v, f.RemainingPath, nil
	}
	return v, "", nil
}

// TryParseContext is TryParse that also annotates any recording span in ctx
// with the resolution outcome.
func (m *Matcher) TryParseContext(ctx context.Context, url string) (*Value, error) {
	v, err := m.TryParse(url)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		attrs := []attribute.KeyValue{
			attribute.String("router.path", url),
		}
		if err != nil {
			attrs = append(attrs, attribute.String("router.outcome", string(OutcomeUnmatched)))
		} else {
			attrs = append(attrs,
				attribute.String("router.outcome", string(OutcomeMatched)),
				attribute.String("router.route", v.def.Name()),
				attribute.String("router.pattern", v.def.Pattern()),
			)
		}
		span.AddEvent("router.resolve", trace.WithAttributes(attrs...))
	}
	return v, err
}
