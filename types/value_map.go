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
	"math"
	"sync/atomic"

	"github.com/benbjohnson/immutable"
	"github.com/wdamron/lattice/internal/util"
)

var emptyValueNode = &valueNode{m: emptyMap}

// EmptyValueMap contains no enum values.
var EmptyValueMap = ValueMap{emptyValueNode}

// ValueMap contains immutable mappings from enum value names to literals. A literal is a
// float64, a bool or a string; integer literals are widened to float64 on insertion so that
// 1 and 1.0 compare equal.
type ValueMap struct {
	n *valueNode
}

type valueNode struct {
	m      *immutable.SortedMap
	hashed atomic.Bool
	hash   atomic.Uint64
}

// EnumValue is a named enum literal.
type EnumValue struct {
	Name  string
	Value interface{}
}

func newValueMap(m *immutable.SortedMap) ValueMap {
	if m.Len() == 0 {
		return EmptyValueMap
	}
	return ValueMap{&valueNode{m: m}}
}

// NewValueMap builds a map from values. A later value with the same name wins. It panics on a
// literal that is not a number, bool or string.
func NewValueMap(values ...EnumValue) ValueMap {
	b := immutable.NewSortedMapBuilder(immutable.NewSortedMap(nil))
	for _, v := range values {
		b.Set(v.Name, mustLiteral(v.Value))
	}
	return newValueMap(b.Map())
}

// NormalizeLiteral widens numeric literals to float64 and reports whether v is a valid literal.
func NormalizeLiteral(v interface{}) (interface{}, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool, string:
		return v, true
	}
	return nil, false
}

func mustLiteral(v interface{}) interface{} {
	n, ok := NormalizeLiteral(v)
	if !ok {
		panic("types: invalid enum literal")
	}
	return n
}

// LiteralsEqual compares two literals after numeric normalization.
func LiteralsEqual(a, b interface{}) bool {
	na, okA := NormalizeLiteral(a)
	nb, okB := NormalizeLiteral(b)
	return okA && okB && literalEq(na, nb)
}

func (m ValueMap) node() *valueNode {
	if m.n == nil {
		return emptyValueNode
	}
	return m.n
}

func (m ValueMap) Len() int { return m.node().m.Len() }

func (m ValueMap) Get(name string) (interface{}, bool) {
	return m.node().m.Get(name)
}

// Set returns a copy of the map with name bound to the literal v.
func (m ValueMap) Set(name string, v interface{}) ValueMap {
	return newValueMap(m.node().m.Set(name, mustLiteral(v)))
}

// Delete returns a copy of the map without name.
func (m ValueMap) Delete(name string) ValueMap {
	if _, ok := m.Get(name); !ok {
		return m
	}
	return newValueMap(m.node().m.Delete(name))
}

// If f returns false, iteration will be stopped.
func (m ValueMap) Range(f func(string, interface{}) bool) {
	iter := m.node().m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v) {
			return
		}
	}
}

func (m ValueMap) Same(o ValueMap) bool { return m.node().m == o.node().m }

func (m ValueMap) Hash() uint64 {
	n := m.node()
	if n.hashed.Load() {
		return n.hash.Load()
	}
	h := util.NewHasher().Uint64(uint64(n.m.Len()))
	m.Range(func(name string, v interface{}) bool {
		h = h.String(name)
		switch v := v.(type) {
		case float64:
			if v == 0 {
				v = 0 // -0 and +0 are equal literals
			} else if math.IsNaN(v) {
				v = math.NaN()
			}
			h = h.Uint64(1).Float64(v)
		case bool:
			h = h.Uint64(2).Bool(v)
		case string:
			h = h.Uint64(3).String(v)
		}
		return true
	})
	sum := h.Sum64()
	n.hash.Store(sum)
	n.hashed.Store(true)
	return sum
}

func (m ValueMap) Equal(o ValueMap) bool {
	if m.Same(o) {
		return true
	}
	if m.Len() != o.Len() || m.Hash() != o.Hash() {
		return false
	}
	a, b := m.node().m.Iterator(), o.node().m.Iterator()
	for !a.Done() {
		ka, va := a.Next()
		kb, vb := b.Next()
		if ka != kb || !literalEq(va, vb) {
			return false
		}
	}
	return true
}

func literalEq(a, b interface{}) bool {
	fa, okA := a.(float64)
	fb, okB := b.(float64)
	if okA && okB {
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	}
	return a == b
}
