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

// construct provides terse builders for type nodes.
package construct

import (
	"github.com/wdamron/lattice/types"
)

// Payload-free types:
var (
	TUnknown       = types.Of(types.Unknown)
	TError         = types.Of(types.Error)
	TBoolean       = types.Of(types.Boolean)
	TNumber        = types.Of(types.Number)
	TDecimal       = types.Of(types.Decimal)
	TCurrency      = types.Of(types.Currency)
	TString        = types.Of(types.String)
	THyperlink     = types.Of(types.Hyperlink)
	TDate          = types.Of(types.Date)
	TTime          = types.Of(types.Time)
	TDateTime      = types.Of(types.DateTime)
	TDateTimeNoTZ  = types.Of(types.DateTimeNoTimeZone)
	TGuid          = types.Of(types.Guid)
	TColor         = types.Of(types.Color)
	TImage         = types.Of(types.Image)
	TPenImage      = types.Of(types.PenImage)
	TMedia         = types.Of(types.Media)
	TBlob          = types.Of(types.Blob)
	TObjNull       = types.Of(types.ObjNull)
	TDeferred      = types.Of(types.Deferred)
	TVoid          = types.Of(types.Void)
	TUntypedObject = types.Of(types.UntypedObject)
	TPolymorphic   = types.Of(types.Polymorphic)
)

// Named field: `a:n`
func F(name string, t *types.Type) types.Field {
	return types.Field{Name: name, Type: t}
}

// Record type: `![a:n, b:s]`
func TRecord(fields ...types.Field) *types.Type {
	return types.NewRecord(fields...)
}

// Table type: `*[a:n, b:s]`
func TTable(fields ...types.Field) *types.Type {
	return types.NewTable(fields...)
}

// Enum literal: `Red:1`
func V(name string, literal interface{}) types.EnumValue {
	return types.EnumValue{Name: name, Value: literal}
}

// Enum type: `%n[Red:1, Green:2]`
func TEnum(superkind types.Kind, values ...types.EnumValue) *types.Type {
	return types.NewEnum(superkind, values...)
}

// Lazy provider resolving each field to the given type.
func Lazy(identity string, policy types.ExpansionPolicy, fields ...types.Field) *types.LazyFields {
	p := types.NewLazyFields(identity, policy)
	for _, f := range fields {
		ft := f.Type
		p = p.With(f.Name, func() *types.Type { return ft })
	}
	return p
}

// Lazy record type
func TLazyRecord(p *types.LazyFields) *types.Type {
	return types.NewLazy(p, false)
}

// Lazy table type
func TLazyTable(p *types.LazyFields) *types.Type {
	return types.NewLazy(p, true)
}

// Entity reference: `E`
func TEntity(name string) *types.Type {
	return types.NewOpaque(types.DataEntity, types.Token{Name: name})
}

// Option set value: `l`
func TOptionSetValue(name string, backing types.Kind) *types.Type {
	return types.NewOpaque(types.OptionSetValue, types.Token{Name: name, Backing: backing})
}

// Named value: `V`
func TNamedValue(discriminator string) *types.Type {
	return types.NewOpaque(types.NamedValue, types.Token{Name: discriminator})
}
