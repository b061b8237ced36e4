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
	"sync/atomic"

	"github.com/benbjohnson/immutable"
	"github.com/wdamron/lattice/internal/util"
)

var emptyMap = immutable.NewSortedMap(nil)

var emptyFieldNode = &fieldNode{m: emptyMap}

// EmptyFieldMap contains no fields.
var EmptyFieldMap = FieldMap{emptyFieldNode}

// FieldMap contains immutable mappings from field names to types. Entries are sorted by name,
// and maps built from the same entries compare and hash identically.
type FieldMap struct {
	n *fieldNode
}

type fieldNode struct {
	m      *immutable.SortedMap
	hashed atomic.Bool
	hash   atomic.Uint64
}

func newFieldMap(m *immutable.SortedMap) FieldMap {
	if m.Len() == 0 {
		return EmptyFieldMap
	}
	return FieldMap{&fieldNode{m: m}}
}

func NewFieldMap() FieldMap { return EmptyFieldMap }

// Create a FieldMap with a single entry.
func SingletonFieldMap(name string, t *Type) FieldMap {
	return newFieldMap(emptyMap.Set(name, t))
}

func (m FieldMap) node() *fieldNode {
	if m.n == nil {
		return emptyFieldNode
	}
	return m.n
}

// Get the number of entries in the map.
func (m FieldMap) Len() int { return m.node().m.Len() }

// Get the first entry in the map. Entries are sorted by name.
func (m FieldMap) First() (string, *Type) {
	if m.Len() == 0 {
		return "", nil
	}
	k, v := m.node().m.Iterator().Next()
	return k.(string), v.(*Type)
}

// Get the type of a field.
func (m FieldMap) Get(name string) (*Type, bool) {
	v, ok := m.node().m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Type), true
}

// Set returns a copy of the map with name bound to t. The receiver is not modified.
func (m FieldMap) Set(name string, t *Type) FieldMap {
	return newFieldMap(m.node().m.Set(name, t))
}

// Delete returns a copy of the map without name. The receiver is not modified.
func (m FieldMap) Delete(name string) FieldMap {
	if _, ok := m.Get(name); !ok {
		return m
	}
	return newFieldMap(m.node().m.Delete(name))
}

// Iterate over entries in the map.
// If f returns false, iteration will be stopped.
func (m FieldMap) Range(f func(string, *Type) bool) {
	iter := m.node().m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(*Type)) {
			return
		}
	}
}

// Names returns the field names in sorted order.
func (m FieldMap) Names() []string {
	names := make([]string, 0, m.Len())
	m.Range(func(name string, _ *Type) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Get an iterator which may be used to read entries in the map, in sequential order.
func (m FieldMap) Iterator() FieldMapIterator {
	return FieldMapIterator{m.node().m.Iterator()}
}

// Same reports whether m and o share the same underlying tree.
func (m FieldMap) Same(o FieldMap) bool { return m.node().m == o.node().m }

// Hash returns the structural hash of the map. It is computed once per map.
func (m FieldMap) Hash() uint64 {
	n := m.node()
	if n.hashed.Load() {
		return n.hash.Load()
	}
	h := util.NewHasher().Uint64(uint64(n.m.Len()))
	m.Range(func(name string, t *Type) bool {
		h = h.String(name).Uint64(t.Hash())
		return true
	})
	sum := h.Sum64()
	n.hash.Store(sum)
	n.hashed.Store(true)
	return sum
}

// Equal reports whether both maps hold equal types under the same names.
func (m FieldMap) Equal(o FieldMap) bool {
	if m.Same(o) {
		return true
	}
	if m.Len() != o.Len() || m.Hash() != o.Hash() {
		return false
	}
	a, b := m.Iterator(), o.Iterator()
	for !a.Done() {
		ka, ta := a.Next()
		kb, tb := b.Next()
		if ka != kb || !ta.Equal(tb) {
			return false
		}
	}
	return true
}

// FieldMapBuilder enables in-place updates of a map before finalization.
type FieldMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewFieldMapBuilder() FieldMapBuilder {
	return FieldMapBuilder{immutable.NewSortedMapBuilder(immutable.NewSortedMap(nil))}
}

// Get the number of entries in the builder.
func (b FieldMapBuilder) Len() int { return b.b.Len() }

// Get the type of a field in the builder.
func (b FieldMapBuilder) Get(name string) (*Type, bool) {
	v, ok := b.b.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Type), true
}

// Set the type for the given name in the builder. A later Set for the same name wins.
func (b FieldMapBuilder) Set(name string, t *Type) FieldMapBuilder {
	b.b.Set(name, t)
	return b
}

// Delete the given name and corresponding type from the builder.
func (b FieldMapBuilder) Delete(name string) FieldMapBuilder {
	b.b.Delete(name)
	return b
}

// Finalize the builder into an immutable map. The builder must not be used afterwards.
func (b FieldMapBuilder) Build() FieldMap {
	return newFieldMap(b.b.Map())
}

// FieldMapIterator reads entries in a map, in sequential order.
type FieldMapIterator struct {
	i *immutable.SortedMapIterator
}

// Done returns true if the iterator has reached the end a map.
func (i FieldMapIterator) Done() bool { return i.i.Done() }

// Next advances the iterator and returns the next entry from a map.
func (i FieldMapIterator) Next() (string, *Type) {
	if i.Done() {
		return "", nil
	}
	k, v := i.i.Next()
	return k.(string), v.(*Type)
}
