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

// Package routeerr defines the error taxonomy shared by every layer of the
// router: pattern compilation, path matching, query decoding, and typed
// parameter conversion all report failures through the same structured type.
//
// Errors are plain values. Compilation errors (KindInvalidPath) are raised
// once at route construction time and are fatal for that route type;
// per-parse errors are ordinary return values that callers inspect with
// [IsKind] or errors.As.
package routeerr

import (
	"errors"
	"fmt"
)

// Kind classifies a routing error.
type Kind uint8

const (
	// KindInvalidPath indicates a malformed route pattern or an input path
	// that no declared route can represent.
	KindInvalidPath Kind = iota + 1

	// KindMissingParameter indicates a required path parameter or query key
	// was absent.
	KindMissingParameter

	// KindTypeConversion indicates a string value could not be converted to
	// the declared parameter type.
	KindTypeConversion

	// KindInvalidQuery indicates a query string that could not be decoded.
	KindInvalidQuery

	// KindURLEncoding indicates malformed percent-encoding or a decoded byte
	// sequence that is not valid UTF-8.
	KindURLEncoding

	// KindSegmentCountMismatch indicates the path has a different number of
	// segments than the pattern requires.
	KindSegmentCountMismatch

	// KindSegmentMismatch indicates a literal pattern segment did not match
	// the path segment at the same position.
	KindSegmentMismatch
)

// String returns the kind's name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInvalidPath:
		return "invalid_path"
	case KindMissingParameter:
		return "missing_parameter"
	case KindTypeConversion:
		return "type_conversion"
	case KindInvalidQuery:
		return "invalid_query"
	case KindURLEncoding:
		return "url_encoding"
	case KindSegmentCountMismatch:
		return "segment_count_mismatch"
	case KindSegmentMismatch:
		return "segment_mismatch"
	default:
		return "unknown"
	}
}

// Error is a structured routing error. Only the fields relevant to its Kind
// are populated.
type Error struct {
	Kind    Kind
	Message string // free-form detail for message-carrying kinds

	Param string // KindMissingParameter: the absent parameter name

	Expected string // KindSegmentMismatch: expected literal
	Actual   string // KindSegmentMismatch: path segment found
	Position int    // KindSegmentMismatch: pattern segment index

	ExpectedCount int // KindSegmentCountMismatch
	ActualCount   int // KindSegmentCountMismatch
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidPath:
		return fmt.Sprintf("Invalid path: %s", e.Message)
	case KindMissingParameter:
		return fmt.Sprintf("Missing required parameter: %s", e.Param)
	case KindTypeConversion:
		return fmt.Sprintf("Type conversion error: %s", e.Message)
	case KindInvalidQuery:
		return fmt.Sprintf("Invalid query parameter: %s", e.Message)
	case KindURLEncoding:
		return fmt.Sprintf("URL encoding error: %s", e.Message)
	case KindSegmentCountMismatch:
		return fmt.Sprintf("Path segment count mismatch: expected %d segments, found %d",
			e.ExpectedCount, e.ActualCount)
	case KindSegmentMismatch:
		return fmt.Sprintf("Path segment mismatch at position %d: expected '%s', found '%s'",
			e.Position, e.Expected, e.Actual)
	default:
		return e.Message
	}
}

// InvalidPath reports a malformed pattern or an unroutable path.
func InvalidPath(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidPath, Message: fmt.Sprintf(format, args...)}
}

// MissingParameter reports an absent required parameter or query key.
func MissingParameter(name string) *Error {
	return &Error{Kind: KindMissingParameter, Param: name}
}

// TypeConversion reports a failed string-to-value conversion.
func TypeConversion(format string, args ...any) *Error {
	return &Error{Kind: KindTypeConversion, Message: fmt.Sprintf(format, args...)}
}

// InvalidQuery reports an undecodable query string.
func InvalidQuery(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidQuery, Message: fmt.Sprintf(format, args...)}
}

// URLEncoding reports malformed percent-encoding.
func URLEncoding(format string, args ...any) *Error {
	return &Error{Kind: KindURLEncoding, Message: fmt.Sprintf(format, args...)}
}

// SegmentCountMismatch reports a path with the wrong number of segments.
func SegmentCountMismatch(expected, actual int) *Error {
	return &Error{Kind: KindSegmentCountMismatch, ExpectedCount: expected, ActualCount: actual}
}

// SegmentMismatch reports a literal segment that did not match.
func SegmentMismatch(expected, actual string, position int) *Error {
	return &Error{Kind: KindSegmentMismatch, Expected: expected, Actual: actual, Position: position}
}

// IsKind reports whether err is (or wraps) a routing *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == kind
}
