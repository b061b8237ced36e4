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

// CoerceFlags control aggregate handling in CoercesTo.
type CoerceFlags uint8

const (
	// AggregateCoercion allows a record to be promoted to a single-row table.
	AggregateCoercion CoerceFlags = 1 << iota
	// TopLevel marks the outermost coercion. Record-to-table promotion happens only there;
	// nested field coercions never carry this flag.
	TopLevel
)

// Coercion is the outcome of CoercesTo.
type Coercion struct {
	OK bool
	// Safe is false when the conversion may fail at run time, such as parsing a string.
	Safe bool
	// Type is the type the value has after conversion.
	Type *types.Type
}

var noCoercion = Coercion{}

// Kinds an untyped object may be converted to, always unsafely.
var untypedTargets = map[types.Kind]bool{
	types.Boolean:            true,
	types.Number:             true,
	types.Decimal:            true,
	types.Currency:           true,
	types.String:             true,
	types.Hyperlink:          true,
	types.Guid:               true,
	types.Date:               true,
	types.Time:               true,
	types.DateTime:           true,
	types.DateTimeNoTimeZone: true,
}

// Leaf conversions by destination kind; the value reports whether the conversion is safe.
// String destinations and option set values are handled separately.
var leafCoercions = map[types.Kind]map[types.Kind]bool{
	types.Number: {
		types.String: false, types.Boolean: true, types.Currency: true, types.Decimal: true,
		types.Date: true, types.Time: true, types.DateTime: true, types.DateTimeNoTimeZone: true,
	},
	types.Decimal: {
		types.String: false, types.Boolean: true, types.Number: true, types.Currency: true,
		types.Date: true, types.Time: true, types.DateTime: true, types.DateTimeNoTimeZone: true,
	},
	types.Currency: {
		types.String: false, types.Boolean: true, types.Number: true, types.Decimal: true,
	},
	types.Boolean: {
		types.String: false, types.Number: true, types.Decimal: true, types.Currency: true,
	},
	types.DateTime:           dateTimeSources(types.DateTime),
	types.Date:               dateTimeSources(types.Date),
	types.Time:               dateTimeSources(types.Time),
	types.DateTimeNoTimeZone: dateTimeSources(types.DateTimeNoTimeZone),
	types.Image: {
		types.String: true, types.Hyperlink: true, types.PenImage: true, types.Blob: true,
	},
	types.Hyperlink: {
		types.String: true, types.Image: true, types.PenImage: true, types.Media: true, types.Blob: true,
	},
	types.Media: {
		types.String: true, types.Hyperlink: true, types.Blob: true,
	},
	types.Blob: {
		types.String: true, types.Hyperlink: true, types.Image: true, types.PenImage: true, types.Media: true,
	},
	types.PenImage: {
		types.String: true, types.Hyperlink: true, types.Image: true,
	},
	types.Guid: {
		types.String: false,
	},
}

func dateTimeSources(dst types.Kind) map[types.Kind]bool {
	m := map[types.Kind]bool{
		types.String: false, types.Number: true, types.Decimal: true, types.Currency: true,
	}
	for _, k := range []types.Kind{types.Date, types.Time, types.DateTime, types.DateTimeNoTimeZone} {
		if k != dst {
			m[k] = true
		}
	}
	return m
}

// Sources that never convert to String.
var notStringable = map[types.Kind]bool{
	types.Color:       true,
	types.Control:     true,
	types.DataEntity:  true,
	types.OptionSet:   true,
	types.View:        true,
	types.Polymorphic: true,
	types.File:        true,
	types.LargeImage:  true,
	types.Metadata:    true,
	types.NamedValue:  true,
	types.Void:        true,
}

// CoercesTo reports whether a value of type src can be converted to dst, whether the
// conversion is safe, and the type the value has afterwards.
func (c *Checker) CoercesTo(src, dst *types.Type, flags CoerceFlags) Coercion {
	sk, dk := src.Kind(), dst.Kind()
	if sk == types.Error {
		return noCoercion
	}
	if c.Accepts(dst, src) {
		return Coercion{OK: true, Safe: true, Type: dst}
	}
	switch {
	case sk == types.NamedValue, dk == types.NamedValue, sk == types.Void, dk == types.Void, dk == types.Error:
		return noCoercion
	case sk == types.ObjNull, sk == types.Deferred:
		return Coercion{OK: true, Safe: true, Type: dst}
	case sk == types.Enum:
		return c.CoercesTo(types.Of(src.EnumSuperkind()), dst, flags)
	case sk == types.UntypedObject:
		if untypedTargets[dk] {
			return Coercion{OK: true, Safe: false, Type: dst}
		}
		return noCoercion
	case dst.IsAggregate():
		return c.aggregateCoercion(src, dst, flags)
	case src.IsAggregate():
		return noCoercion
	}
	if ok, safe := leafCoercion(src, dk); ok {
		return Coercion{OK: true, Safe: safe, Type: dst}
	}
	return noCoercion
}

func leafCoercion(src *types.Type, dk types.Kind) (ok, safe bool) {
	sk := src.Kind()
	if sk == types.OptionSetValue {
		// Option set values convert to their backing kind, which is the only way to a Color.
		if backing := types.BackingKindOf(src.Annotation()); backing != types.Invalid && backing == dk {
			return true, true
		}
	}
	if dk == types.String {
		return !notStringable[sk], true
	}
	safe, ok = leafCoercions[dk][sk]
	return ok, safe
}

// coercibleShape promotes src to dst's record/table shape, if allowed.
func coercibleShape(src, dst *types.Type, flags CoerceFlags) (*types.Type, bool) {
	switch {
	case src.IsTable() == dst.IsTable():
		return src, true
	case dst.IsTable() && flags&AggregateCoercion != 0 && flags&TopLevel != 0:
		return src.ToTable(nil), true
	}
	return nil, false
}

func (c *Checker) aggregateCoercion(src, dst *types.Type, flags CoerceFlags) Coercion {
	if !src.IsAggregate() || (src.IsLazy() && dst.IsLazy()) {
		return noCoercion
	}
	if dst.IsLazy() {
		expanded, ok := dst.Expand()
		if !ok {
			return noCoercion
		}
		dst = expanded
	}
	src, ok := coercibleShape(src, dst, flags)
	if !ok {
		return noCoercion
	}
	if (dst.IsFile() || dst.IsLargeImage()) && src.Kind() != dst.Kind() {
		return noCoercion
	}

	nested := flags &^ TopLevel
	safe := true
	fields := types.NewFieldMapBuilder()
	dst.Fields().Range(func(name string, df *types.Type) bool {
		sf, found := src.Field(name)
		if !found {
			ok = dst.FieldsOptional()
			return ok
		}
		r := c.CoercesTo(sf, df, nested)
		if !r.OK {
			ok = false
			return false
		}
		safe = safe && r.Safe
		fields.Set(name, r.Type)
		return true
	})
	if !ok {
		return noCoercion
	}
	t := types.AggregateOf(dst.Kind(), fields.Build())
	if dst.FieldsOptional() {
		t = t.WithFieldsOptional(true)
	}
	return Coercion{OK: true, Safe: safe, Type: t}
}

// CoercionSubtype returns the shape a value of type src must be converted into to satisfy dst.
// Unlike CoercesTo, fields of src that dst does not mention are kept. When dst already accepts
// src, src itself is returned.
func (c *Checker) CoercionSubtype(src, dst *types.Type, flags CoerceFlags) (*types.Type, bool) {
	if c.Accepts(dst, src) {
		return src, true
	}
	r := c.CoercesTo(src, dst, flags)
	if !r.OK {
		return nil, false
	}
	if !src.IsAggregate() || !dst.IsAggregate() {
		return r.Type, true
	}
	eager, ok := src.Expand()
	if !ok {
		return r.Type, true
	}
	if dst.IsLazy() {
		if dst, ok = dst.Expand(); !ok {
			return r.Type, true
		}
	}
	if eager, ok = coercibleShape(eager, dst, flags); !ok {
		return r.Type, true
	}
	nested := flags &^ TopLevel
	fields := eager.Fields()
	dst.Fields().Range(func(name string, df *types.Type) bool {
		sf, found := fields.Get(name)
		if !found {
			return true
		}
		if sub, ok := c.CoercionSubtype(sf, df, nested); ok {
			fields = fields.Set(name, sub)
		}
		return true
	})
	return types.AggregateOf(eager.Kind(), fields).WithSourcesOf(src), true
}
