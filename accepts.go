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
	"github.com/wdamron/lattice/internal/typeutil"
	"github.com/wdamron/lattice/types"
)

// SchemaDiff describes the first mismatch found by Compare.
type SchemaDiff struct {
	// Path is the dotted path to the mismatching field; empty when the mismatch is at the top.
	Path string
	// Expected is the destination type at Path.
	Expected *types.Type
	// Actual is the source type at Path, or nil when the source lacks the field.
	Actual *types.Type
}

// Result is the outcome of Compare.
type Result struct {
	Accepted bool
	// Diff is set when Accepted is false.
	Diff *SchemaDiff
}

// Accepts reports whether a value of type src may be used where dst is expected.
func (c *Checker) Accepts(dst, src *types.Type) bool {
	a := acceptor{c: c}
	return a.accepts(dst, src)
}

// Compare is Accepts with a diagnostic describing the first mismatch.
func (c *Checker) Compare(dst, src *types.Type) Result {
	a := acceptor{c: c}
	if a.accepts(dst, src) {
		return Result{Accepted: true}
	}
	if a.diff == nil {
		a.diff = &SchemaDiff{Expected: dst, Actual: src}
	}
	return Result{Diff: a.diff}
}

type acceptor struct {
	c    *Checker
	path typeutil.FieldPath
	diff *SchemaDiff
}

// fail records the innermost mismatch; outer frames keep the first one recorded.
func (a *acceptor) fail(dst, src *types.Type) bool {
	if a.diff == nil {
		a.diff = &SchemaDiff{Path: a.path.String(), Expected: dst, Actual: src}
	}
	return false
}

func (a *acceptor) accepts(dst, src *types.Type) bool {
	dk, sk := dst.Kind(), src.Kind()
	switch {
	case dk == types.Void || sk == types.Void:
		return a.fail(dst, src)
	case sk == types.ObjNull, dk == types.Error, sk == types.Unknown:
		return true
	case sk == types.Deferred:
		if dk == types.Unknown {
			return a.fail(dst, src)
		}
		return true
	}

	// An enum is a restricted version of its superkind.
	if sk == types.Enum && dk != types.Enum {
		if a.accepts(dst, types.Of(src.EnumSuperkind())) {
			return true
		}
		a.diff = nil
		return a.fail(dst, src)
	}

	switch dk {
	case types.Record, types.Table, types.File, types.LargeImage:
		return a.aggregateAccepts(dst, src)

	case types.LazyRecord, types.LazyTable:
		return a.lazyAccepts(dst, src)

	case types.Enum:
		if sk != types.Enum || dst.EnumSuperkind() != src.EnumSuperkind() || !a.enumAccepts(dst, src) {
			return a.fail(dst, src)
		}
		return true

	case types.DataEntity:
		if sk == types.DataEntity && types.CompatibleAnnotation(dst.Annotation(), src.Annotation()) {
			return true
		}
		if src.IsEagerAggregate() && a.c.Entities != nil {
			if expanded, ok := dst.ExpandEntity(a.c.Entities); ok {
				if !src.IsTable() {
					expanded = expanded.ToRecord(nil)
				}
				return a.accepts(expanded, src)
			}
		}
		return a.fail(dst, src)

	case types.Metadata, types.OptionSet, types.OptionSetValue, types.View, types.ViewValue,
		types.NamedValue, types.Control:
		if sk == dk && types.CompatibleAnnotation(dst.Annotation(), src.Annotation()) {
			return true
		}
		return a.fail(dst, src)

	case types.Polymorphic:
		if sk == types.Polymorphic || sk == types.Record {
			return true
		}
		return a.fail(dst, src)
	}

	if primitiveAccepts(dk, sk, a.c.Rules) {
		return true
	}
	return a.fail(dst, src)
}

// primitiveAccepts applies the kind-to-kind rules between payload-free kinds.
func primitiveAccepts(dk, sk types.Kind, r Rules) bool {
	if dk == sk {
		return true
	}
	if dk == types.Number && sk.IsDateTime() && r.LegacyDateTime {
		return true
	}
	if r.V1 {
		return false
	}
	switch dk {
	case types.String:
		switch sk {
		case types.Hyperlink, types.Image, types.PenImage, types.Media, types.Blob, types.Guid:
			return true
		}
	case types.Hyperlink:
		switch sk {
		case types.Image, types.PenImage, types.Media, types.Blob:
			return true
		}
	case types.Image:
		return sk == types.PenImage || sk == types.Blob
	case types.Media:
		return sk == types.Blob
	case types.Number:
		return sk == types.Currency
	}
	return false
}

// sameShape reports whether an eager and a lazy aggregate kind are both records or both tables.
func sameShape(eager, lazy types.Kind) bool {
	return (eager == types.Record && lazy == types.LazyRecord) ||
		(eager == types.Table && lazy == types.LazyTable)
}

func (a *acceptor) aggregateAccepts(dst, src *types.Type) bool {
	sk := src.Kind()
	if src.IsLazy() {
		if !sameShape(dst.Kind(), sk) {
			return a.fail(dst, src)
		}
		return a.fieldsAccept(dst, src)
	}
	if sk == types.OptionSetValue && dst.IsMultiSelectOptionSet() {
		_, col := dst.Fields().First()
		if types.CompatibleAnnotation(col.Annotation(), src.Annotation()) {
			return true
		}
	}
	if dst.Kind() != sk {
		return a.fail(dst, src)
	}
	return a.fieldsAccept(dst, src)
}

// lazyAccepts handles a lazy destination.
func (a *acceptor) lazyAccepts(dst, src *types.Type) bool {
	if src.IsLazy() {
		if src.Kind() == dst.Kind() && dst.Lazy().SameShape(src.Lazy()) {
			return true
		}
		return a.fail(dst, src)
	}
	if !sameShape(src.Kind(), dst.Kind()) {
		return a.fail(dst, src)
	}
	expanded, ok := dst.Expand()
	if !ok {
		return a.fail(dst, src)
	}
	return a.fieldsAccept(expanded, src)
}

// fieldsAccept compares the fields of an eager destination aggregate against src, which may
// be lazy; lazy fields are resolved only when compared.
func (a *acceptor) fieldsAccept(dst, src *types.Type) bool {
	if !src.IsLazy() && dst.Fields().Equal(src.Fields()) {
		return true
	}
	exact := a.c.Exact && !dst.FieldsOptional()
	ok := true
	dst.Fields().Range(func(name string, dt *types.Type) bool {
		if dt.Kind() == types.Error {
			return true
		}
		a.path.Push(name)
		defer a.path.Pop()
		st, found := src.Field(name)
		if !found {
			if exact {
				ok = a.fail(dt, nil)
			}
			return ok
		}
		ok = a.accepts(dt, st)
		return ok
	})
	if !ok {
		return a.fail(dst, src)
	}
	return true
}

// enumAccepts checks every literal of src against dst. Missing literals are ignored unless the
// checker is exact.
func (a *acceptor) enumAccepts(dst, src *types.Type) bool {
	if dst.Values().Equal(src.Values()) {
		return true
	}
	ok := true
	dvals := dst.Values()
	src.Values().Range(func(name string, sv interface{}) bool {
		dv, found := dvals.Get(name)
		if !found {
			ok = !a.c.Exact
		} else {
			ok = types.LiteralsEqual(dv, sv)
		}
		return ok
	})
	return ok
}
