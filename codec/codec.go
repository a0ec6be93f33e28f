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

// Package codec provides the low-level URL plumbing shared by the pattern
// and query layers: RFC 3986 percent-encoding, path segmentation, and
// path/query splitting.
//
// Encoding is deliberately asymmetric: Unescape accepts both %20 and + for
// a space (form-encoding compatibility), while Escape only ever emits %20.
package codec

import (
	"strings"
	"unicode/utf8"

	"strada.dev/router/routeerr"
)

const upperhex = "0123456789ABCDEF"

// isUnreserved reports whether b passes through Escape unchanged
// (RFC 3986 unreserved characters).
func isUnreserved(b byte) bool {
	return b >= 'A' && b <= 'Z' ||
		b >= 'a' && b <= 'z' ||
		b >= '0' && b <= '9' ||
		b == '-' || b == '_' || b == '.' || b == '~'
}

// Escape percent-encodes s. Unreserved characters pass through unchanged;
// every other byte of the UTF-8 encoding becomes %XX with uppercase hex.
func Escape(s string) string {
	var hexCount int
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*hexCount)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Unescape decodes percent-encoded s. A '+' decodes to a space. The decoded
// byte sequence is re-validated as UTF-8; truncated or non-hex escapes and
// invalid UTF-8 both return a URLEncoding error. Input without any escapes
// is held to the same UTF-8 requirement.
func Unescape(s string) (string, error) {
	if !strings.ContainsAny(s, "%+") {
		if !utf8.ValidString(s) {
			return "", routeerr.URLEncoding("Invalid UTF-8 sequence after URL decoding")
		}
		return s, nil
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%':
			if i+2 >= len(s) {
				return "", routeerr.URLEncoding("Incomplete percent encoding")
			}
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if !ok1 || !ok2 {
				return "", routeerr.URLEncoding("Invalid hex in percent encoding: %s", s[i+1:i+3])
			}
			buf = append(buf, hi<<4|lo)
			i += 2
		case '+':
			buf = append(buf, ' ')
		default:
			buf = append(buf, s[i])
		}
	}

	if !utf8.Valid(buf) {
		return "", routeerr.URLEncoding("Invalid UTF-8 sequence after URL decoding")
	}
	return string(buf), nil
}

// SplitPathQuery splits a URL path at the first '?'. The query part excludes
// the '?' itself; ok reports whether a query portion was present.
func SplitPathQuery(url string) (path, query string, ok bool) {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i], url[i+1:], true
	}
	return url, "", false
}

// SplitSegments splits a path into its non-empty '/'-delimited segments.
// "/" and "" both yield no segments.
func SplitSegments(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// NormalizePath collapses duplicate slashes and guarantees a single leading
// slash. Empty input normalizes to "/".
func NormalizePath(path string) string {
	segs := SplitSegments(path)
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}
