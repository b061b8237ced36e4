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

package types

import (
	"fmt"
	"sort"

	set "github.com/hashicorp/go-set/v2"
	"github.com/wdamron/lattice/internal/util"
)

// Type is an immutable type node: a Kind plus the payload that kind carries. Nodes are built
// with the factory functions in this package and never modified; every method that "changes"
// a node returns a new one.
type Type struct {
	kind Kind
	// Enum only: the primitive kind the enum's literals belong to.
	superkind Kind
	// Aggregates only: fields missing from a source are tolerated even in exact mode.
	optional bool

	fields FieldMap
	values ValueMap
	lazy   *LazyFields
	annot  Annotation

	// Opaque host bookkeeping, carried through the algebra but never interpreted.
	sources *set.Set[string]
}

// Field is a named field used by the record and table factories.
type Field struct {
	Name string
	Type *Type
}

// DebugValidate enables payload validation after every construction. Violations panic.
var DebugValidate = false

var singletons [kindLim]*Type

// EmptyRecord and EmptyTable are the aggregates without fields.
var (
	EmptyRecord *Type
	EmptyTable  *Type
)

func init() {
	for k := kindMin; k < kindLim; k++ {
		if k.IsLazy() || k == Enum {
			continue
		}
		singletons[k] = &Type{kind: k}
	}
	EmptyRecord, EmptyTable = singletons[Record], singletons[Table]
}

// Of returns the shared node for a kind without payload. Aggregate kinds yield their empty
// node. Of panics for Enum and the lazy kinds, which cannot exist without a payload.
func Of(k Kind) *Type {
	if !k.IsValid() || singletons[k] == nil {
		panic(fmt.Sprintf("types: no payload-free node for kind %v", k))
	}
	return singletons[k]
}

func buildFields(fields []Field) FieldMap {
	b := NewFieldMapBuilder()
	for _, f := range fields {
		b.Set(f.Name, f.Type)
	}
	return b.Build()
}

// NewRecord creates a record from fields. Duplicate names resolve to the last entry.
func NewRecord(fields ...Field) *Type { return RecordOf(buildFields(fields)) }

// NewTable creates a table from fields. Duplicate names resolve to the last entry.
func NewTable(fields ...Field) *Type { return TableOf(buildFields(fields)) }

func RecordOf(fields FieldMap) *Type { return newAggregate(Record, fields) }
func TableOf(fields FieldMap) *Type  { return newAggregate(Table, fields) }

// NewFile creates a file node, a record specialization with its own kind.
func NewFile(fields ...Field) *Type { return newAggregate(File, buildFields(fields)) }

// NewLargeImage creates a large image node, a record specialization with its own kind.
func NewLargeImage(fields ...Field) *Type { return newAggregate(LargeImage, buildFields(fields)) }

// AggregateOf creates an eager aggregate of kind k, which must be Record, Table, File or
// LargeImage.
func AggregateOf(k Kind, fields FieldMap) *Type {
	switch k {
	case Record, Table, File, LargeImage:
		return newAggregate(k, fields)
	}
	panic(fmt.Sprintf("types: AggregateOf %v", k))
}

func newAggregate(k Kind, fields FieldMap) *Type {
	if fields.Len() == 0 {
		return singletons[k]
	}
	return assertValid(&Type{kind: k, fields: fields})
}

// NewEnum creates an enumeration whose literals belong to superkind.
func NewEnum(superkind Kind, values ...EnumValue) *Type {
	return EnumOf(superkind, NewValueMap(values...))
}

func EnumOf(superkind Kind, values ValueMap) *Type {
	return assertValid(&Type{kind: Enum, superkind: superkind, values: values})
}

// NewLazy creates a lazy record or table backed by p.
func NewLazy(p *LazyFields, isTable bool) *Type {
	k := LazyRecord
	if isTable {
		k = LazyTable
	}
	return assertValid(&Type{kind: k, lazy: p})
}

// NewOpaque creates a node of an opaque kind carrying the host token a, which may be nil.
func NewOpaque(k Kind, a Annotation) *Type {
	if a == nil {
		return Of(k)
	}
	return assertValid(&Type{kind: k, annot: a})
}

// NewOptionSet creates an option set carrying its values as fields.
func NewOptionSet(a Annotation, fields ...Field) *Type {
	return assertValid(&Type{kind: OptionSet, annot: a, fields: buildFields(fields)})
}

// NewView creates a view carrying its values as fields.
func NewView(a Annotation, fields ...Field) *Type {
	return assertValid(&Type{kind: View, annot: a, fields: buildFields(fields)})
}

// MultiSelectColumn is the single column of a multi-select option set table.
const MultiSelectColumn = "Value"

// NewMultiSelectOptionSet creates a single-column table of option set values.
func NewMultiSelectOptionSet(a Annotation) *Type {
	return NewTable(Field{MultiSelectColumn, NewOpaque(OptionSetValue, a)})
}

func (t *Type) Kind() Kind { return t.kind }

// Fields returns the eager field map. Lazy nodes report an empty map.
func (t *Type) Fields() FieldMap {
	if t.fields.n == nil {
		return EmptyFieldMap
	}
	return t.fields
}

func (t *Type) Values() ValueMap {
	if t.values.n == nil {
		return EmptyValueMap
	}
	return t.values
}

// EnumSuperkind returns the kind an enum's literals belong to, or Invalid for other kinds.
func (t *Type) EnumSuperkind() Kind    { return t.superkind }
func (t *Type) Lazy() *LazyFields      { return t.lazy }
func (t *Type) Annotation() Annotation { return t.annot }
func (t *Type) FieldsOptional() bool   { return t.optional }
func (t *Type) IsAggregate() bool      { return t.kind.IsAggregate() }
func (t *Type) IsLazy() bool           { return t.kind.IsLazy() }
func (t *Type) IsFile() bool           { return t.kind == File }
func (t *Type) IsLargeImage() bool     { return t.kind == LargeImage }
func (t *Type) IsTable() bool          { return t.kind == Table || t.kind == LazyTable }
func (t *Type) IsRecord() bool {
	return t.kind == Record || t.kind == LazyRecord || t.kind == File || t.kind == LargeImage
}
func (t *Type) IsEagerAggregate() bool { return t.kind.IsAggregate() && !t.kind.IsLazy() }
func (t *Type) String() string         { return TypeString(t) }

// Field looks up a field by name, resolving it on demand for lazy nodes.
func (t *Type) Field(name string) (*Type, bool) {
	if t.lazy != nil {
		return t.lazy.Get(name)
	}
	return t.Fields().Get(name)
}

// FieldNames returns the field names in sorted order without resolving lazy fields.
func (t *Type) FieldNames() []string {
	if t.lazy != nil {
		return t.lazy.Names()
	}
	return t.Fields().Names()
}

// FieldCount returns the number of fields without resolving lazy fields.
func (t *Type) FieldCount() int {
	if t.lazy != nil {
		return t.lazy.Len()
	}
	return t.Fields().Len()
}

// IsMultiSelectOptionSet reports whether t is a table with a single option set value column.
func (t *Type) IsMultiSelectOptionSet() bool {
	if t.kind != Table || t.Fields().Len() != 1 {
		return false
	}
	name, col := t.Fields().First()
	return name == MultiSelectColumn && col.kind == OptionSetValue
}

// Sources returns the associated source tokens in sorted order.
func (t *Type) Sources() []string {
	if t.sources == nil || t.sources.Empty() {
		return nil
	}
	s := t.sources.Slice()
	sort.Strings(s)
	return s
}

func (t *Type) HasSource(src string) bool {
	return t.sources != nil && t.sources.Contains(src)
}

func (t *Type) clone() *Type {
	c := *t
	return &c
}

// WithSources returns a copy of t that also carries the given source tokens.
func (t *Type) WithSources(srcs ...string) *Type {
	if len(srcs) == 0 {
		return t
	}
	c := t.clone()
	c.sources = set.From(srcs)
	if t.sources != nil {
		c.sources.InsertSet(t.sources)
	}
	return c
}

// WithSourcesOf returns a copy of t carrying the union of the source tokens of t and u.
func (t *Type) WithSourcesOf(u *Type) *Type {
	if u == nil || u.sources == nil || u.sources.Empty() || t == u {
		return t
	}
	return t.WithSources(u.sources.Slice()...)
}

// WithFieldsOptional returns a copy of an aggregate that tolerates missing fields in exact mode.
func (t *Type) WithFieldsOptional(optional bool) *Type {
	mustAggregate(t, "WithFieldsOptional")
	if t.optional == optional {
		return t
	}
	c := t.clone()
	c.optional = optional
	return assertValid(c)
}

// WithEntity returns a copy of an aggregate annotated with the entity it was expanded from.
func (t *Type) WithEntity(entity Annotation) *Type {
	mustAggregate(t, "WithEntity")
	c := t.clone()
	c.annot = entity
	return assertValid(c)
}

// Add returns a copy of t with the field name bound to ft.
func (t *Type) Add(name string, ft *Type) *Type {
	c := t.clone()
	switch {
	case t.lazy != nil:
		c.lazy = t.lazy.With(name, func() *Type { return ft })
	case t.kind.HasFields():
		c.fields = t.Fields().Set(name, ft)
	default:
		panic(fmt.Sprintf("types: Add on %v", t.kind))
	}
	return assertValid(c)
}

// Drop returns a copy of t without the field name.
func (t *Type) Drop(name string) *Type {
	c := t.clone()
	switch {
	case t.lazy != nil:
		c.lazy = t.lazy.Without(name)
	case t.kind.HasFields():
		c.fields = t.Fields().Delete(name)
	default:
		panic(fmt.Sprintf("types: Drop on %v", t.kind))
	}
	return assertValid(c)
}

// ToRecord converts an aggregate to its record shape. Lazy nodes keep their provider. ObjNull
// converts to the empty record. A non-nil entity replaces the entity annotation.
func (t *Type) ToRecord(entity Annotation) *Type {
	var c *Type
	switch t.kind {
	case Record, File, LargeImage, LazyRecord:
		c = t.clone()
	case Table:
		c = t.clone()
		c.kind = Record
	case LazyTable:
		c = t.clone()
		c.kind = LazyRecord
	case ObjNull:
		c = EmptyRecord.clone()
	default:
		panic(fmt.Sprintf("types: ToRecord on %v", t.kind))
	}
	if entity != nil {
		c.annot = entity
	}
	return assertValid(c)
}

// ToTable converts an aggregate to its table shape. Lazy nodes keep their provider. ObjNull
// converts to the empty table. A non-nil entity replaces the entity annotation.
func (t *Type) ToTable(entity Annotation) *Type {
	var c *Type
	switch t.kind {
	case Table, LazyTable:
		c = t.clone()
	case Record, File, LargeImage:
		c = t.clone()
		c.kind = Table
	case LazyRecord:
		c = t.clone()
		c.kind = LazyTable
	case ObjNull:
		c = EmptyTable.clone()
	default:
		panic(fmt.Sprintf("types: ToTable on %v", t.kind))
	}
	if entity != nil {
		c.annot = entity
	}
	return assertValid(c)
}

// Expand materializes a lazy node into an eager record or table. Eager nodes are returned
// unchanged. It fails when the provider's policy forbids full expansion.
func (t *Type) Expand() (*Type, bool) {
	if t.lazy == nil {
		return t, true
	}
	fields, ok := t.lazy.Expand()
	if !ok {
		return t, false
	}
	k := Record
	if t.kind == LazyTable {
		k = Table
	}
	c := &Type{kind: k, fields: fields, optional: t.optional, annot: t.annot, sources: t.sources}
	return assertValid(c), true
}

// ExpandEntity resolves a DataEntity into the table it stands for. The table is annotated with
// the entity and carries the resolver's source tokens.
func (t *Type) ExpandEntity(r EntityResolver) (*Type, bool) {
	if t.kind != DataEntity || t.annot == nil || r == nil {
		return nil, false
	}
	fields, srcs, ok := r.ResolveEntity(t.annot)
	if !ok {
		return nil, false
	}
	c := &Type{kind: Table, fields: fields, annot: t.annot, sources: t.sources}
	return assertValid(c).WithSources(srcs...), true
}

// Equal reports structural equality. Source tokens are bookkeeping and do not participate.
func (t *Type) Equal(u *Type) bool {
	if t == u {
		return true
	}
	if t == nil || u == nil {
		return false
	}
	if t.kind != u.kind || t.superkind != u.superkind || t.optional != u.optional {
		return false
	}
	if !SameAnnotation(t.annot, u.annot) {
		return false
	}
	if (t.lazy == nil) != (u.lazy == nil) || (t.lazy != nil && !t.lazy.SameShape(u.lazy)) {
		return false
	}
	return t.Fields().Equal(u.Fields()) && t.Values().Equal(u.Values())
}

// Hash returns a structural hash consistent with Equal.
func (t *Type) Hash() uint64 {
	h := util.NewHasher().Uint64(uint64(t.kind)).Uint64(uint64(t.superkind)).Bool(t.optional)
	if t.kind.HasFields() {
		h = h.Uint64(t.Fields().Hash())
	}
	if t.kind == Enum {
		h = h.Uint64(t.Values().Hash())
	}
	if t.annot != nil {
		h = h.String(t.annot.AnnotationKey())
	}
	if t.lazy != nil {
		h = h.String(t.lazy.identity).Uint64(uint64(t.lazy.Len()))
	}
	return h.Sum64()
}

// Validate checks that the node carries exactly the payload its kind requires.
func (t *Type) Validate() error {
	k := t.kind
	if !k.IsValid() {
		return fmt.Errorf("kind %v out of range", k)
	}
	if t.Fields().Len() > 0 && !k.HasFields() {
		return fmt.Errorf("%v carries fields", k)
	}
	if t.Values().Len() > 0 && k != Enum {
		return fmt.Errorf("%v carries enum values", k)
	}
	if k == Enum {
		if !t.superkind.IsPrimitive() {
			return fmt.Errorf("enum has invalid superkind %v", t.superkind)
		}
	} else if t.superkind != Invalid {
		return fmt.Errorf("%v carries a superkind", k)
	}
	if (t.lazy != nil) != k.IsLazy() {
		return fmt.Errorf("%v has mismatched lazy provider", k)
	}
	if t.annot != nil && !k.IsOpaque() && !k.IsAggregate() {
		return fmt.Errorf("%v carries an annotation", k)
	}
	if t.optional && !k.IsAggregate() {
		return fmt.Errorf("%v marks fields optional", k)
	}
	return nil
}

func assertValid(t *Type) *Type {
	if DebugValidate {
		if err := t.Validate(); err != nil {
			panic("types: invalid node: " + err.Error())
		}
	}
	return t
}

func mustAggregate(t *Type, op string) {
	if !t.kind.IsAggregate() {
		panic(fmt.Sprintf("types: %s on %v", op, t.kind))
	}
}
