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
	"strings"
)

// RouteInfo is a plain snapshot of a resolved route chain: each level's
// pattern, its formatted path, and the nested level, if any. Useful for
// logging a resolution without holding on to the Value.
type RouteInfo struct {
	Pattern   string
	Formatted string
	Sub       *RouteInfo
}

// Info snapshots this value and its resolved nesting. Levels that fail to
// format render an empty Formatted field rather than failing the snapshot.
func (v *Value) Info() *RouteInfo {
	formatted, err := v.Format()
	if err != nil {
		formatted = ""
	}
	info := &RouteInfo{
		Pattern:   v.def.Pattern(),
		Formatted: formatted,
	}
	if sub, ok := v.state.Sub(); ok {
		info.Sub = sub.Info()
	}
	return info
}

// DebugFormat renders the resolved route chain as an indented tree for
// debug output, starting at the given indent level (two spaces per level):
//
//	├─ user
//	  ├─ Pattern: /user/:id
//	  ├─ Formatted: /user/42?format=json
//	  ├─ Query: format
//	  └─ Sub:
//	    ├─ posts
//	    ...
//
// A level that consumed the whole path closes with "└─ ◉"; so does a level
// whose remainder matched no nested route.
func (v *Value) DebugFormat(indent int) string {
	var b strings.Builder
	v.writeDebug(&b, indent)
	return b.String()
}

func (v *Value) writeDebug(b *strings.Builder, indent int) {
	outer := strings.Repeat("  ", indent)
	inner := outer + "  "

	formatted, err := v.Format()
	if err != nil {
		formatted = "<unformattable: " + err.Error() + ">"
	}

	b.WriteString(outer + "├─ " + v.def.Name() + "\n")
	b.WriteString(inner + "├─ Pattern: " + v.def.Pattern() + "\n")
	b.WriteString(inner + "├─ Formatted: " + formatted + "\n")

	if strings.Contains(formatted, "?") {
		var keys []string
		for _, qb := range v.def.queries {
			if _, ok := v.queryParams[qb.key]; ok {
				keys = append(keys, qb.key)
			}
		}
		b.WriteString(inner + "├─ Query: " + strings.Join(keys, ", ") + "\n")
	}

	if sub, ok := v.state.Sub(); ok {
		b.WriteString(inner + "└─ Sub:\n")
		sub.writeDebug(b, indent+2)
		return
	}
	b.WriteString(inner + "└─ ◉\n")
}
