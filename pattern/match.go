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

package pattern

import (
	"strings"

	"strada.dev/router/codec"
	"strada.dev/router/routeerr"
)

// Params maps parameter names to their decoded string values for one match.
// A fresh map is built per Match call and owned by the caller.
type Params map[string]string

// Match walks the pattern against path in a single forward pass and extracts
// parameter values. There is no backtracking: patterns are assumed
// unambiguous by construction. Either the whole pattern consumes the whole
// path (modulo optional/wildcard rules) or Match fails — it never partially
// matches.
//
// Literal segments compare raw, without percent-decoding; parameter and
// wildcard values are decoded before they are stored.
func (p *Pattern) Match(path string) (Params, error) {
	pathSegs := codec.SplitSegments(path)
	params := make(Params, len(p.segments))
	idx := 0

	for pos, seg := range p.segments {
		switch seg.Kind {
		case KindLiteral:
			if idx >= len(pathSegs) {
				return nil, routeerr.SegmentCountMismatch(len(p.segments), len(pathSegs))
			}
			if pathSegs[idx] != seg.Value {
				return nil, routeerr.SegmentMismatch(seg.Value, pathSegs[idx], pos)
			}
			idx++

		case KindParameter:
			if idx >= len(pathSegs) {
				return nil, routeerr.MissingParameter(seg.Value)
			}
			value, err := codec.Unescape(pathSegs[idx])
			if err != nil {
				return nil, err
			}
			params[seg.Value] = value
			idx++

		case KindOptionalParameter:
			if idx < len(pathSegs) {
				value, err := codec.Unescape(pathSegs[idx])
				if err != nil {
					return nil, err
				}
				params[seg.Value] = value
				idx++
			}

		case KindWildcard:
			// The wildcard takes everything left; segments after it are
			// unreachable by construction.
			rest := make([]string, 0, len(pathSegs)-idx)
			for _, raw := range pathSegs[idx:] {
				value, err := codec.Unescape(raw)
				if err != nil {
					return nil, err
				}
				rest = append(rest, value)
			}
			params[seg.Value] = strings.Join(rest, "/")
			return params, nil
		}
	}

	if idx < len(pathSegs) {
		return nil, routeerr.SegmentCountMismatch(len(p.segments), len(pathSegs))
	}
	return params, nil
}

// ConsumedLength returns how many leading characters of path (which must not
// contain a query string) this pattern consumes: the sum, over each consumed
// segment, of one separator plus the segment's original undecoded length.
// Nested resolvers use this to compute the exact remainder handed to a
// sub-router.
func (p *Pattern) ConsumedLength(path string) (int, error) {
	pathSegs := codec.SplitSegments(path)
	consumed := 0
	idx := 0

	for pos, seg := range p.segments {
		switch seg.Kind {
		case KindLiteral:
			if idx >= len(pathSegs) {
				return 0, routeerr.SegmentCountMismatch(len(p.segments), len(pathSegs))
			}
			if pathSegs[idx] != seg.Value {
				return 0, routeerr.SegmentMismatch(seg.Value, pathSegs[idx], pos)
			}
			consumed += 1 + len(pathSegs[idx])
			idx++

		case KindParameter:
			if idx >= len(pathSegs) {
				return 0, routeerr.MissingParameter(seg.Value)
			}
			consumed += 1 + len(pathSegs[idx])
			idx++

		case KindOptionalParameter:
			if idx < len(pathSegs) {
				consumed += 1 + len(pathSegs[idx])
				idx++
			}

		case KindWildcard:
			return len(path), nil
		}
	}

	// Paths without a leading slash or with doubled slashes can make the
	// separator arithmetic overshoot; the consumed prefix never exceeds the
	// input.
	return min(consumed, len(path)), nil
}
