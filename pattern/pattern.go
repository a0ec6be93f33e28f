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

// Package pattern compiles route pattern strings into immutable segment
// descriptors and matches or formats concrete paths against them.
//
// # Pattern Micro-Syntax
//
// Patterns are '/'-separated segments using four constructs:
//
//	/users          literal segment
//	/users/:id      required parameter (":id")
//	/users/{id}     required parameter, brace form
//	/user/?:format  optional parameter
//	/files/*path    wildcard, consumes the whole remainder
//	/user/:id?:fmt  compound: required parameter then optional parameter
//
// Compilation happens once per route type at startup; a compiled Pattern is
// read-only afterwards and safe for concurrent use.
package pattern

import (
	"strings"

	"strada.dev/router/codec"
	"strada.dev/router/routeerr"
)

// SegmentKind discriminates the pattern segment variants.
type SegmentKind uint8

const (
	// KindLiteral matches its text verbatim.
	KindLiteral SegmentKind = iota

	// KindParameter captures exactly one path segment.
	KindParameter

	// KindOptionalParameter captures one path segment if any remains.
	KindOptionalParameter

	// KindWildcard captures all remaining path segments.
	KindWildcard
)

// Segment is one compiled unit of a pattern. For KindLiteral, Value is the
// literal text; for the other kinds it is the parameter name.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// Pattern is a compiled route pattern: the ordered segment sequence plus the
// original pattern string. Immutable after Compile.
type Pattern struct {
	raw      string
	segments []Segment
}

// Compile parses a pattern string into a Pattern. Parameter, optional, and
// wildcard names must be non-empty and unique within the pattern; violations
// return an InvalidPath error. Callers compile each distinct pattern once and
// reuse the result.
func Compile(raw string) (*Pattern, error) {
	var segments []Segment
	seen := map[string]bool{}

	addNamed := func(kind SegmentKind, name, what string) error {
		if name == "" {
			return routeerr.InvalidPath("%s must have a name", what)
		}
		if seen[name] {
			return routeerr.InvalidPath("duplicate parameter name '%s'", name)
		}
		seen[name] = true
		segments = append(segments, Segment{Kind: kind, Value: name})
		return nil
	}

	for _, seg := range codec.SplitSegments(raw) {
		// Compound form ":name?:name2" expands to a required parameter
		// followed by an optional one.
		if strings.HasPrefix(seg, ":") && strings.Contains(seg, "?:") {
			parts := strings.SplitN(seg, "?:", 2)
			if len(parts) == 2 {
				if err := addNamed(KindParameter, strings.TrimPrefix(parts[0], ":"), "Parameter"); err != nil {
					return nil, err
				}
				if err := addNamed(KindOptionalParameter, parts[1], "Optional parameter"); err != nil {
					return nil, err
				}
				continue
			}
		}

		switch {
		case strings.HasPrefix(seg, "*"):
			if err := addNamed(KindWildcard, seg[1:], "Wildcard segment"); err != nil {
				return nil, err
			}
		case strings.HasPrefix(seg, "?:"):
			if err := addNamed(KindOptionalParameter, seg[2:], "Optional parameter"); err != nil {
				return nil, err
			}
		case strings.HasPrefix(seg, ":"):
			if err := addNamed(KindParameter, seg[1:], "Parameter"); err != nil {
				return nil, err
			}
		case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}"):
			if err := addNamed(KindParameter, seg[1:len(seg)-1], "Parameter"); err != nil {
				return nil, err
			}
		default:
			segments = append(segments, Segment{Kind: KindLiteral, Value: seg})
		}
	}

	return &Pattern{raw: raw, segments: segments}, nil
}

// MustCompile is Compile for patterns known to be valid at startup; it
// panics on error.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original pattern string.
func (p *Pattern) String() string {
	return p.raw
}

// Segments returns the compiled segment sequence. Callers must not modify
// the returned slice.
func (p *Pattern) Segments() []Segment {
	return p.segments
}

// ParameterNames returns the names of all parameter, optional, and wildcard
// segments in declaration order.
func (p *Pattern) ParameterNames() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.Kind != KindLiteral {
			names = append(names, seg.Value)
		}
	}
	return names
}

// HasWildcard reports whether the pattern contains a wildcard segment.
func (p *Pattern) HasWildcard() bool {
	for _, seg := range p.segments {
		if seg.Kind == KindWildcard {
			return true
		}
	}
	return false
}

// LiteralPrefix returns the leading literal segments as a '/'-prefixed path,
// e.g. "/users" for "/users/:id". A pattern that starts with a non-literal
// segment has the empty prefix.
func (p *Pattern) LiteralPrefix() string {
	var b strings.Builder
	for _, seg := range p.segments {
		if seg.Kind != KindLiteral {
			break
		}
		b.WriteByte('/')
		b.WriteString(seg.Value)
	}
	return b.String()
}
