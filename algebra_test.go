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
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/wdamron/lattice/construct"
	"github.com/wdamron/lattice/types"
)

func TestSupertypeDropsConflictingFields(t *testing.T) {
	a := types.MustParse("*[A:n, B:s, C:b, D:n]")
	b := types.MustParse("*[A:n, B:s, C:n, D:n]")
	s := Supertype(a, b)
	require.Equal(t, "*[A:n, B:s, D:n]", s.String())
	require.True(t, s.Equal(Supertype(b, a)))
	require.True(t, Accepts(s, a))
	require.True(t, Accepts(s, b))
}

func TestSupertypePrimitives(t *testing.T) {
	v1 := NewChecker(Rules{Exact: true, V1: true}, nil)
	var n int32
	lazyA := TLazyRecord(countingLazy("c", types.AllowFullExpansion, countingField{"A", TNumber, &n}))
	colors := types.Token{Name: "Colors"}
	cases := []struct{ a, b, want *types.Type }{
		{lazyA, TRecord(F("A", TNumber)), TRecord(F("A", TNumber))},
		{types.NewOpaque(types.Polymorphic, types.Token{Name: "A"}), types.NewOpaque(types.Polymorphic, types.Token{Name: "B"}), TPolymorphic},
		{types.NewOptionSet(colors, F("Red", TNumber)), types.NewOptionSet(colors, F("Blue", TNumber)), types.Of(types.OptionSet)},
		{types.NewView(colors, F("X", TString)), types.NewView(colors, F("Y", TString)), types.Of(types.View)},
		{types.Of(types.DataEntity), TEntity("Accounts"), types.Of(types.DataEntity)},
		{TObjNull, TUnknown, TUnknown},
		{TNumber, TNumber, TNumber},
		{TNumber, TCurrency, TNumber},
		{TImage, TMedia, THyperlink},
		{TPenImage, TGuid, TString},
		{TDate, TTime, TDateTime},
		{TNumber, TString, TError},
		{TRecord(), TTable(), TError},
		{TEnum(types.Number, V("x", 1)), TEnum(types.Number, V("y", 2)), TNumber},
		{TEnum(types.Number, V("x", 1)), TCurrency, TNumber},
		{TEntity("Accounts"), TEntity("Contacts"), types.Of(types.DataEntity)},
	}
	for _, c := range cases {
		for _, chk := range []*Checker{defaultChecker, v1} {
			got := chk.Supertype(c.a, c.b)
			require.True(t, got.Equal(c.want), "Supertype(%v, %v) = %v", c.a, c.b, got)
			rev := chk.Supertype(c.b, c.a)
			require.True(t, rev.Equal(got), "Supertype(%v, %v) = %v", c.b, c.a, rev)
		}
	}
}

func TestSupertypeIdempotent(t *testing.T) {
	for _, typ := range []*types.Type{
		TNumber,
		TError,
		types.MustParse("![A:n, B:*[C:e]]"),
		TEnum(types.String, V("a", "a")),
		TEntity("Accounts"),
	} {
		require.True(t, Supertype(typ, typ).Equal(typ), typ.String())
	}
}

func TestSupertypeSources(t *testing.T) {
	s := Supertype(TNumber.WithSources("a"), TCurrency.WithSources("b"))
	require.Equal(t, types.Number, s.Kind())
	require.Equal(t, []string{"a", "b"}, s.Sources())

	r := Supertype(TRecord(F("A", TNumber)).WithSources("x"), TRecord(F("A", TNumber), F("B", TString)).WithSources("y"))
	require.Equal(t, "![A:n]", r.String())
	require.Equal(t, []string{"x", "y"}, r.Sources())
}

func TestSupertypeLazy(t *testing.T) {
	var n int32
	allow := TLazyRecord(countingLazy("c", types.AllowFullExpansion, countingField{"A", TNumber, &n}, countingField{"B", TString, &n}))
	deny := TLazyRecord(countingLazy("d", nil, countingField{"A", TNumber, &n}))

	require.Equal(t, "![A:n]", Supertype(allow, TRecord(F("A", TCurrency))).String())
	require.Equal(t, types.Error, Supertype(deny, TRecord(F("B", TNumber))).Kind())
}

func TestUnion(t *testing.T) {
	u, ok := Union(types.MustParse("*[A:n]"), types.MustParse("*[B:s]"))
	require.True(t, ok)
	require.Equal(t, "*[A:n, B:s]", u.String())

	u, ok = Union(types.MustParse("![A:n, B:![C:b]]"), types.MustParse("![A:$, B:![D:s]]"))
	require.True(t, ok)
	require.Equal(t, "![A:n, B:![C:b, D:s]]", u.String())

	u, ok = Union(types.MustParse("![A:n]"), types.MustParse("![A:s]"))
	require.False(t, ok)
	require.Equal(t, "![A:e]", u.String())

	u, ok = Union(types.MustParse("![A:N]"), types.MustParse("![A:n]"))
	require.True(t, ok)
	require.Equal(t, "![A:n]", u.String())

	_, ok = Union(TRecord(), TTable())
	require.False(t, ok)
}

func TestUnionPrimitives(t *testing.T) {
	cases := []struct {
		a, b, want *types.Type
		ok         bool
	}{
		{TObjNull, TNumber, TNumber, true},
		{TString, TObjNull, TString, true},
		{TObjNull, TTable(F("A", TNumber)), TTable(F("A", TNumber)), true},
		{TRecord(F("A", TNumber)), TObjNull, TRecord(F("A", TNumber)), true},
		{TNumber, TCurrency, TNumber, true},
		{TImage, TMedia, THyperlink, true},
		{TNumber, TString, TError, false},
		{types.NewOpaque(types.Polymorphic, types.Token{Name: "A"}), types.NewOpaque(types.Polymorphic, types.Token{Name: "B"}), TPolymorphic, true},
	}
	for _, c := range cases {
		got, ok := Union(c.a, c.b)
		require.Equal(t, c.ok, ok, "Union(%v, %v)", c.a, c.b)
		require.True(t, got.Equal(c.want), "Union(%v, %v) = %v", c.a, c.b, got)
		rev, _ := Union(c.b, c.a)
		require.True(t, rev.Equal(got), "Union(%v, %v) = %v", c.b, c.a, rev)
	}
}

func TestUnionPrefersEntity(t *testing.T) {
	c := NewChecker(DefaultRules, accountsResolver())
	expanded, ok := TEntity("Accounts").ExpandEntity(c.Entities)
	require.True(t, ok)

	u, ok := c.Union(TRecord(F("Acct", TEntity("Accounts"))), TRecord(F("Acct", expanded)))
	require.True(t, ok)
	acct, _ := u.Field("Acct")
	require.Equal(t, types.DataEntity, acct.Kind())

	u, ok = c.Union(TRecord(F("Acct", expanded)), TRecord(F("Acct", TEntity("Accounts"))))
	require.True(t, ok)
	acct, _ = u.Field("Acct")
	require.Equal(t, types.DataEntity, acct.Kind())
}

func TestIntersection(t *testing.T) {
	a := types.MustParse("![A:n, B:s, C:![D:n, E:b]]")
	b := types.MustParse("![A:n, B:b, C:![D:n], F:s]")
	i := Intersection(a, b)
	require.Equal(t, "![A:n, C:![D:n]]", i.String())
	require.Equal(t, 2, i.FieldCount())
	require.True(t, i.Equal(Intersection(b, a)))

	require.True(t, Intersection(TNumber, TNumber).Equal(TNumber))
	require.Equal(t, types.Error, Intersection(TNumber, TString).Kind())
	require.Equal(t, types.Error, Intersection(TRecord(F("A", TNumber)), TTable(F("A", TNumber))).Kind())
	require.Equal(t, "![]", Intersection(TRecord(F("A", TRecord())), TRecord(F("A", TTable()))).String())
}

func TestFieldCountBounds(t *testing.T) {
	pairs := [][2]string{
		{"![A:n, B:s, C:b]", "![B:s, C:n, D:h]"},
		{"*[A:n]", "*[A:$, B:![C:n]]"},
		{"![A:![B:n, C:s]]", "![A:![B:n], D:b]"},
	}
	for _, p := range pairs {
		a, b := types.MustParse(p[0]), types.MustParse(p[1])
		lo, hi := a.FieldCount(), b.FieldCount()
		if lo > hi {
			lo, hi = hi, lo
		}
		require.LessOrEqual(t, Intersection(a, b).FieldCount(), lo, "%s ^ %s", p[0], p[1])
		u, ok := Union(a, b)
		if ok {
			require.GreaterOrEqual(t, u.FieldCount(), hi, "%s v %s", p[0], p[1])
		}
	}
}
