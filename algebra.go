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

var errorType = types.Of(types.Error)

// chainKind is the kind used to walk the superkind chain; enums walk from their superkind.
func chainKind(t *types.Type) types.Kind {
	if t.Kind() == types.Enum {
		return t.EnumSuperkind()
	}
	return t.Kind()
}

// aggregateLike builds the result of a field-wise operation on a and b: an aggregate of a's
// kind carrying the given fields, optional if either input is, annotated with the entity both
// inputs share and carrying both inputs' sources.
func aggregateLike(a, b *types.Type, fields types.FieldMap) *types.Type {
	t := types.AggregateOf(a.Kind(), fields)
	if a.FieldsOptional() || b.FieldsOptional() {
		t = t.WithFieldsOptional(true)
	}
	if a.Annotation() != nil && types.SameAnnotation(a.Annotation(), b.Annotation()) {
		t = t.WithEntity(a.Annotation())
	}
	return t.WithSourcesOf(a).WithSourcesOf(b)
}

// expandPair eagerly expands a and b when either is lazy and both are aggregates of the same
// record/table shape.
func expandPair(a, b *types.Type) (*types.Type, *types.Type, bool) {
	if !a.IsAggregate() || !b.IsAggregate() || a.IsTable() != b.IsTable() {
		return nil, nil, false
	}
	ea, ok := a.Expand()
	if !ok {
		return nil, nil, false
	}
	eb, ok := b.Expand()
	if !ok {
		return nil, nil, false
	}
	return ea, eb, true
}

// Supertype returns the least upper bound of a and b. Aggregates of equal kind keep the fields
// present in both, each widened to its own supertype; fields widening to Error are dropped.
// Unrelated kinds meet at the nearest common superkind, which may be Error.
func (c *Checker) Supertype(a, b *types.Type) *types.Type {
	if a.Equal(b) {
		return a.WithSourcesOf(b)
	}
	if a.IsEagerAggregate() && b.IsEagerAggregate() {
		if a.Kind() != b.Kind() {
			return errorType
		}
		return c.aggregateSupertype(a, b)
	}

	ex := c.exact()
	aAcc, bAcc := ex.Accepts(a, b), ex.Accepts(b, a)
	switch {
	case aAcc && bAcc:
		return mutualBound(a, b)
	case aAcc:
		return a.WithSourcesOf(b)
	case bAcc:
		return b.WithSourcesOf(a)
	}

	if a.IsLazy() || b.IsLazy() {
		if ea, eb, ok := expandPair(a, b); ok {
			return c.Supertype(ea, eb)
		}
		return errorType
	}

	k := types.CommonSuperkind(chainKind(a), chainKind(b))
	if k.IsAggregate() || k == types.Enum || k.IsOpaque() {
		// Only distinct aggregates, enums or annotations of one kind get here.
		if k.IsOpaque() && a.Kind() == k && b.Kind() == k {
			return types.Of(k).WithSourcesOf(a).WithSourcesOf(b)
		}
		return errorType
	}
	return types.Of(k).WithSourcesOf(a).WithSourcesOf(b)
}

// mutualBound picks the bound of two unequal types that accept each other. The result does not
// depend on argument order. Eager beats lazy. Opaque kinds collapse to their payload-free node.
// Otherwise the unannotated side wins, then the lower kind, then the lower hash.
func mutualBound(a, b *types.Type) *types.Type {
	switch {
	case a.IsLazy() != b.IsLazy():
		if a.IsLazy() {
			a, b = b, a
		}
	case a.Kind() == b.Kind() && a.Kind().IsOpaque():
		return types.Of(a.Kind()).WithSourcesOf(a).WithSourcesOf(b)
	case (a.Annotation() == nil) != (b.Annotation() == nil):
		if a.Annotation() != nil {
			a, b = b, a
		}
	case a.Kind() != b.Kind():
		if b.Kind() < a.Kind() {
			a, b = b, a
		}
	case b.Hash() < a.Hash():
		a, b = b, a
	}
	return a.WithSourcesOf(b)
}

func (c *Checker) aggregateSupertype(a, b *types.Type) *types.Type {
	fields := types.NewFieldMapBuilder()
	bf := b.Fields()
	a.Fields().Range(func(name string, fa *types.Type) bool {
		fb, ok := bf.Get(name)
		if !ok {
			return true
		}
		if s := c.Supertype(fa, fb); s.Kind() != types.Error {
			fields.Set(name, s)
		}
		return true
	})
	return aggregateLike(a, b, fields.Build())
}

// Union merges a and b. Aggregates of equal kind keep every field of both sides, merging the
// fields they share. The boolean is false if any conflict could not be resolved; the merged
// shape is still returned, with Error in place of each unresolved field.
func (c *Checker) Union(a, b *types.Type) (*types.Type, bool) {
	switch {
	case a.Kind() == types.ObjNull && b.Kind() != types.Void:
		return b.WithSourcesOf(a), true
	case b.Kind() == types.ObjNull && a.Kind() != types.Void:
		return a.WithSourcesOf(b), true
	}
	if a.IsEagerAggregate() && b.IsEagerAggregate() {
		if a.Kind() != b.Kind() {
			return errorType, false
		}
		return c.unionFields(a, b)
	}

	ex := c.exact()
	aAcc, bAcc := ex.Accepts(a, b), ex.Accepts(b, a)
	switch {
	case aAcc && bAcc:
		return mutualBound(a, b), true
	case aAcc:
		return a.WithSourcesOf(b), true
	case bAcc:
		return b.WithSourcesOf(a), true
	}
	if a.IsLazy() || b.IsLazy() {
		if ea, eb, ok := expandPair(a, b); ok {
			return c.Union(ea, eb)
		}
		return errorType, false
	}
	s := c.Supertype(a, b)
	return s, s.Kind() != types.Error
}

func (c *Checker) unionFields(a, b *types.Type) (*types.Type, bool) {
	ok := true
	fields := a.Fields()
	b.Fields().Range(func(name string, fb *types.Type) bool {
		fa, found := fields.Get(name)
		if !found {
			fields = fields.Set(name, fb)
			return true
		}
		ft, fok := c.unionField(fa, fb)
		ok = ok && fok
		if ft != fa {
			fields = fields.Set(name, ft)
		}
		return true
	})
	return aggregateLike(a, b, fields), ok
}

func (c *Checker) unionField(fa, fb *types.Type) (*types.Type, bool) {
	switch {
	case fa.Kind() == types.ObjNull:
		return fb, true
	case fb.Kind() == types.ObjNull:
		return fa, true
	case fa.IsEagerAggregate() && fb.IsEagerAggregate():
		return c.Union(fa, fb)
	case isExpansionOf(fa, fb):
		return fb, true
	case isExpansionOf(fb, fa):
		return fa, true
	}
	s := c.Supertype(fa, fb)
	return s, s.Kind() != types.Error || fa.Kind() == types.Error || fb.Kind() == types.Error
}

// isExpansionOf reports whether the aggregate agg was expanded from the entity ent.
func isExpansionOf(agg, ent *types.Type) bool {
	return agg.IsAggregate() && ent.Kind() == types.DataEntity &&
		agg.Annotation() != nil && types.SameAnnotation(agg.Annotation(), ent.Annotation())
}

// Intersection retains the shape common to a and b. Aggregates of equal kind keep the fields
// present in both: nested aggregates intersect, identical leaf kinds are kept and anything
// else is dropped. Non-aggregates of equal kind intersect to that kind; anything else is Error.
func (c *Checker) Intersection(a, b *types.Type) *types.Type {
	if a.Equal(b) {
		return a.WithSourcesOf(b)
	}
	if a.IsLazy() || b.IsLazy() {
		if ea, eb, ok := expandPair(a, b); ok {
			return c.Intersection(ea, eb)
		}
		return errorType
	}
	if a.Kind() != b.Kind() {
		return errorType
	}
	if !a.IsAggregate() {
		return a.WithSourcesOf(b)
	}
	fields := types.NewFieldMapBuilder()
	bf := b.Fields()
	a.Fields().Range(func(name string, fa *types.Type) bool {
		fb, ok := bf.Get(name)
		switch {
		case !ok:
		case fa.IsAggregate() && fb.IsAggregate():
			if r := c.Intersection(fa, fb); r.Kind() != types.Error {
				fields.Set(name, r)
			}
		case fa.Kind() == fb.Kind():
			fields.Set(name, fa)
		}
		return true
	})
	return aggregateLike(a, b, fields.Build())
}
