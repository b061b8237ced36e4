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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	specs := []string{
		"n",
		"?",
		"e",
		"![]",
		"*[A:n, B:s, C:b]",
		"![A:*[B:$, C:h], D:![E:D, F:T, G:d, H:Z]]",
		"%n[One:1, Two:2.5]",
		"%s[Red:r, Space:' ']",
		"%b[No:false, Yes:true]",
		"F",
		"F[Name:s]",
		"M[Size:n]",
		"![A:N, B:X, C:-, D:O, E:E, F:P, G:C, H:V, I:l]",
		"![' quoted:name':n, 'it''s':s]",
	}
	for _, spec := range specs {
		parsed, err := Parse(spec)
		require.NoError(t, err, spec)
		out, err := Format(parsed)
		require.NoError(t, err, spec)
		require.Equal(t, spec, out)

		reparsed, err := Parse(out)
		require.NoError(t, err, spec)
		require.True(t, parsed.Equal(reparsed), spec)
	}
}

func TestParseTableScenario(t *testing.T) {
	tbl := MustParse("*[A:n, B:s, C:b]")
	require.Equal(t, Table, tbl.Kind())
	require.Equal(t, []string{"A", "B", "C"}, tbl.FieldNames())
	c, ok := tbl.Field("C")
	require.True(t, ok)
	require.Equal(t, Boolean, c.Kind())
}

func TestParseWhitespaceAndQuotes(t *testing.T) {
	a := MustParse(" ! [ A : n ,\n\"B C\" : s ] ")
	require.Equal(t, "![A:n, 'B C':s]", a.String())

	e := MustParse("%n[neg:-1.5, big:1e3]")
	v, _ := e.Values().Get("neg")
	require.Equal(t, -1.5, v)
	v, _ = e.Values().Get("big")
	require.Equal(t, float64(1000), v)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		spec string
		off  int
	}{
		{"", 0},
		{"q", 0},
		{"r", 0},
		{"![A:n", 5},
		{"![A n]", 4},
		{"![A:n]]", 6},
		{"%n[x:abc]", 5},
		{"%b[x:maybe]", 5},
		{"%![x:1]", 1},
		{"%E[x:1]", 1},
		{"%?[x:a]", 1},
		{"%N[x:a]", 1},
		{"%-[x:a]", 1},
		{"%e[x:a]", 1},
		{"![A:'open]", 4},
		{"![A:%]", 5},
	}
	for _, c := range cases {
		_, err := Parse(c.spec)
		require.Error(t, err, c.spec)
		var perr *ParseError
		require.True(t, errors.As(err, &perr), c.spec)
		require.Equal(t, c.off, perr.Offset, c.spec)
		require.Equal(t, c.spec, perr.Input)
	}
	require.Panics(t, func() { MustParse("![") })
}

func TestFormatUnrepresentable(t *testing.T) {
	lossy := []*Type{
		NewRecord().WithFieldsOptional(true),
		NewRecord(Field{"A", Of(Number)}).WithEntity(Token{Name: "Accounts"}),
		NewLazy(NewLazyFields("x", nil), false),
		NewOpaque(OptionSetValue, Token{Name: "Colors"}),
		NewOptionSet(nil, Field{"Red", Of(OptionSetValue)}),
		NewEnum(Number, EnumValue{"x", "one"}),
		NewRecord(Field{"Nested", NewOpaque(DataEntity, Token{Name: "Accounts"})}),
	}
	for _, typ := range lossy {
		_, err := Format(typ)
		require.Error(t, err, typ.String())
		require.True(t, errors.Is(err, ErrUnrepresentable))
		require.NotEmpty(t, TypeString(typ))
	}
}
