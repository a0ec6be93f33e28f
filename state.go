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

// StateKind discriminates the three sub-resolution outcomes of a parsed
// route level.
type StateKind uint8

const (
	// StateNoSubRoute means this level consumed the entire path.
	StateNoSubRoute StateKind = iota

	// StateSubRoute means a nested route resolved the remaining path.
	StateSubRoute

	// StateParseFailed means path remained after this level but no nested
	// route could resolve it.
	StateParseFailed
)

// String returns the kind's name for diagnostics.
func (k StateKind) String() string {
	switch k {
	case StateNoSubRoute:
		return "no_sub_route"
	case StateSubRoute:
		return "sub_route"
	case StateParseFailed:
		return "parse_failed"
	default:
		return "unknown"
	}
}

// State is the sub-resolution outcome attached to a parsed route level.
// It is immutable after creation.
type State struct {
	kind    StateKind
	sub     *Value
	failure *Failure
}

// NoSubRoute returns the state of a level that consumed the whole path.
func NoSubRoute() State {
	return State{kind: StateNoSubRoute}
}

// SubRoute returns the state carrying a resolved nested route value.
func SubRoute(sub *Value) State {
	return State{kind: StateSubRoute, sub: sub}
}

// ParseFailed returns the state recording that the remaining path matched
// no nested route.
func ParseFailed(f *Failure) State {
	return State{kind: StateParseFailed, failure: f}
}

// Kind returns the outcome discriminator.
func (s State) Kind() StateKind {
	return s.kind
}

// Sub returns the nested route value when the kind is StateSubRoute.
func (s State) Sub() (*Value, bool) {
	return s.sub, s.kind == StateSubRoute
}

// Failure returns the failure record when the kind is StateParseFailed.
func (s State) Failure() (*Failure, bool) {
	return s.failure, s.kind == StateParseFailed
}

// Failure records why the remaining path resolved to no nested route. It
// preserves enough context to report the problem without re-parsing.
type Failure struct {
	// RemainingPath is the unconsumed portion that no nested route accepted.
	RemainingPath string

	// AttemptedPatterns lists the patterns tried against RemainingPath, in
	// declaration order.
	AttemptedPatterns []string

	// Closest optionally identifies the nearest miss. The core resolution
	// path never fills it in; external tooling may.
	Closest *ClosestMatch
}

// ClosestMatch describes the pattern that came nearest to accepting a
// remaining path.
type ClosestMatch struct {
	Pattern       string
	MatchedLength int
	Reason        string
}
