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
	"testing"

	"github.com/stretchr/testify/require"
)

func countingLazy(calls *int32, policy ExpansionPolicy, fields ...Field) *LazyFields {
	p := NewLazyFields("customers", policy)
	for _, f := range fields {
		ft := f.Type
		p = p.With(f.Name, func() *Type {
			atomic.AddInt32(calls, 1)
			return ft
		})
	}
	return p
}

func TestLazyResolvesOnDemand(t *testing.T) {
	var calls int32
	p := countingLazy(&calls, DenyFullExpansion, Field{"Name", Of(String)}, Field{"Age", Of(Number)})
	lr := NewLazy(p, false)

	require.Equal(t, []string{"Age", "Name"}, lr.FieldNames())
	require.Equal(t, 2, lr.FieldCount())
	require.EqualValues(t, 0, calls)

	ft, ok := lr.Field("Name")
	require.True(t, ok)
	require.Equal(t, String, ft.Kind())
	_, _ = lr.Field("Name")
	require.EqualValues(t, 1, calls)

	_, ok = lr.Field("Missing")
	require.False(t, ok)

	_, ok = lr.Expand()
	require.False(t, ok)
	require.EqualValues(t, 1, calls)
}

func TestLazyExpand(t *testing.T) {
	var calls int32
	p := countingLazy(&calls, AllowFullExpansion, Field{"Name", Of(String)}, Field{"Age", Of(Number)})
	lt := NewLazy(p, true)

	e, ok := lt.Expand()
	require.True(t, ok)
	require.Equal(t, Table, e.Kind())
	require.Equal(t, "*[Age:n, Name:s]", e.String())
	require.EqualValues(t, 2, calls)

	eager := NewRecord()
	same, ok := eager.Expand()
	require.True(t, ok)
	require.Same(t, eager, same)
}

func TestLazyCopyOnWrite(t *testing.T) {
	var calls int32
	p := countingLazy(&calls, nil, Field{"A", Of(Number)})
	q := p.With("B", func() *Type { return Of(Boolean) })
	require.False(t, p.Has("B"))
	require.True(t, q.Has("B"))
	require.Same(t, p, p.Without("missing"))
	require.Equal(t, []string{"A"}, q.Without("B").Names())
	require.False(t, p.CanExpand())

	lr := NewLazy(p, false)
	withC := lr.Add("C", Of(String))
	require.Equal(t, []string{"A"}, lr.FieldNames())
	require.Equal(t, []string{"A", "C"}, withC.FieldNames())
	require.Equal(t, []string{"C"}, withC.Drop("A").FieldNames())
}

func TestLazySameShape(t *testing.T) {
	var calls int32
	a := NewLazy(countingLazy(&calls, nil, Field{"A", Of(Number)}), false)
	b := NewLazy(countingLazy(&calls, nil, Field{"A", Of(String)}), false)
	require.True(t, a.Equal(b), "shape is identity plus names")
	require.False(t, a.Equal(a.Add("B", Of(Number))))

	other := NewLazy(NewLazyFields("orders", nil).With("A", func() *Type { return Of(Number) }), false)
	require.False(t, a.Equal(other))
	require.False(t, a.Equal(a.ToTable(nil)))
	require.EqualValues(t, 0, calls)
}

func TestLazyConversions(t *testing.T) {
	p := NewLazyFields("customers", nil)
	lr := NewLazy(p, false)
	lt := lr.ToTable(nil)
	require.Equal(t, LazyTable, lt.Kind())
	require.Same(t, p, lt.Lazy())
	require.Equal(t, LazyRecord, lt.ToRecord(nil).Kind())
}
