// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package lattice

import (
	"github.com/wdamron/lattice/types"
)

// Rules select the acceptance rule set.
type Rules struct {
	// Exact requires every field of a destination aggregate to be present in the source, and
	// every literal of a source enum to be present in the destination.
	Exact bool
	// LegacyDateTime lets Number accept the date/time kinds.
	LegacyDateTime bool
	// V1 disables the cross-kind acceptances between distinct primitive kinds.
	V1 bool
}

// DefaultRules are exact, with the legacy (non-V1) cross-kind acceptances enabled.
var DefaultRules = Rules{Exact: true}

// Checker evaluates the type algebra under a rule set. A Checker holds no mutable state and
// may be used concurrently.
type Checker struct {
	Rules
	// Entities expands DataEntity annotations. It may be nil, in which case an entity only
	// accepts other entities.
	Entities types.EntityResolver
}

// Create a checker with the given rules and entity resolver, which may be nil.
func NewChecker(rules Rules, entities types.EntityResolver) *Checker {
	return &Checker{Rules: rules, Entities: entities}
}

var defaultChecker = NewChecker(DefaultRules, nil)

// exact returns a copy of c in exact mode, used by the derived lattice operations.
func (c *Checker) exact() *Checker {
	if c.Exact {
		return c
	}
	ex := *c
	ex.Exact = true
	return &ex
}

// Accepts reports whether dst accepts src under DefaultRules.
func Accepts(dst, src *types.Type) bool { return defaultChecker.Accepts(dst, src) }

// Supertype returns the least upper bound of a and b under DefaultRules.
func Supertype(a, b *types.Type) *types.Type { return defaultChecker.Supertype(a, b) }

// Union merges a and b under DefaultRules.
func Union(a, b *types.Type) (*types.Type, bool) { return defaultChecker.Union(a, b) }

// Intersection retains the common shape of a and b under DefaultRules.
func Intersection(a, b *types.Type) *types.Type { return defaultChecker.Intersection(a, b) }

// CoercesTo reports whether values of src convert to dst under DefaultRules.
func CoercesTo(src, dst *types.Type, flags CoerceFlags) Coercion {
	return defaultChecker.CoercesTo(src, dst, flags)
}
