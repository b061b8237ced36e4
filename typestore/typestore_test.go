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

package typestore

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/lattice/types"
)

func openTestStore(t *testing.T, logs *bytes.Buffer) *Store {
	t.Helper()
	o := Options{Logger: slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	s, err := Open(filepath.Join(t.TempDir(), "types.db"), o)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	var logs bytes.Buffer
	s := openTestStore(t, &logs)

	orig := types.MustParse("*[A:n, B:s, C:![D:%s[x:'1', y:'2']]]").WithSources("orders.csv")
	require.NoError(t, s.Put("orders", orig))

	got, err := s.Get("orders")
	require.NoError(t, err)
	require.True(t, got.Equal(orig), "got %v", got)
	require.Equal(t, []string{"orders.csv"}, got.Sources())
	require.Contains(t, logs.String(), "type=orders")
}

func TestPutReplaces(t *testing.T) {
	s := openTestStore(t, &bytes.Buffer{})
	require.NoError(t, s.Put("t", types.MustParse("![A:n]")))
	require.NoError(t, s.Put("t", types.MustParse("![A:s]")))

	got, err := s.Get("t")
	require.NoError(t, err)
	require.Equal(t, "![A:s]", got.String())
}

func TestPutUnrepresentable(t *testing.T) {
	s := openTestStore(t, &bytes.Buffer{})
	err := s.Put("opt", types.NewRecord().WithFieldsOptional(true))
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrUnrepresentable))
	_, err = s.Get("opt")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteAndNames(t *testing.T) {
	s := openTestStore(t, &bytes.Buffer{})
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, s.Put(name, types.Of(types.Number)))
	}
	names, err := s.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, names)

	require.NoError(t, s.Delete("b"))
	require.True(t, errors.Is(s.Delete("b"), ErrNotFound))
	names, err = s.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, names)
}

func TestAllSkipsCorrupted(t *testing.T) {
	var logs bytes.Buffer
	s := openTestStore(t, &logs)
	require.NoError(t, s.Put("good", types.MustParse("![A:b]")))
	require.NoError(t, s.putRaw("bad", []byte{0xc1}))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "![A:b]", all["good"].String())
	require.Contains(t, logs.String(), "skipping corrupted record")

	_, err = s.Get("bad")
	var rerr *RecordError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, "bad", rerr.Name)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.db")
	s, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Put("e", types.MustParse("%n[One:1, Two:2]")))
	require.NoError(t, s.Close())

	s, err = Open(path, Options{ReadOnly: true})
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get("e")
	require.NoError(t, err)
	require.Equal(t, "%n[One:1, Two:2]", got.String())
}
