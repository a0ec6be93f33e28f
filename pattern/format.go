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

// Format substitutes params into the pattern and returns the resulting path.
// Literals are emitted verbatim; parameter and wildcard values are
// percent-encoded and required (a missing one fails with MissingParameter);
// optional parameters are emitted only when present. The result always
// carries a leading '/'; an empty pattern formats to "/".
//
// Wildcard values are encoded like any other parameter, so a value that
// should span several segments must embed its own '/' separators before
// encoding policy is applied by the caller.
func (p *Pattern) Format(params map[string]string) (string, error) {
	segs := make([]string, 0, len(p.segments))

	for _, seg := range p.segments {
		switch seg.Kind {
		case KindLiteral:
			segs = append(segs, seg.Value)

		case KindParameter, KindWildcard:
			value, ok := params[seg.Value]
			if !ok {
				return "", routeerr.MissingParameter(seg.Value)
			}
			segs = append(segs, codec.Escape(value))

		case KindOptionalParameter:
			if value, ok := params[seg.Value]; ok {
				segs = append(segs, codec.Escape(value))
			}
		}
	}

	if len(segs) == 0 {
		return "/", nil
	}
	return "/" + strings.Join(segs, "/"), nil
}
