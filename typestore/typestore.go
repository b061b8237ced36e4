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

// typestore persists named types in a bbolt file using the textual type codec.
package typestore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"github.com/wdamron/lattice/types"
)

// ErrNotFound is returned when no type is stored under a name.
var ErrNotFound = errors.New("typestore: type not found")

var bucketName = []byte("types")

const recordVersion = 1

// record is the stored form of a type. Sources are kept beside the spec because the codec
// does not carry them.
type record struct {
	Version int      `msgpack:"v"`
	Spec    string   `msgpack:"s"`
	Sources []string `msgpack:"src,omitempty"`
}

// RecordError reports a stored record that could not be decoded.
type RecordError struct {
	Name string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("typestore: record %q: %v", e.Name, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

type Options struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Timeout bounds waiting for the file lock; zero waits indefinitely.
	Timeout  time.Duration
	ReadOnly bool
}

// Store is a catalog of named types. It is safe for concurrent use.
type Store struct {
	bdb    *bbolt.DB
	logger *slog.Logger
}

// Open opens or creates the catalog at path.
func Open(path string, o Options) (*Store, error) {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	bdb, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: o.Timeout, ReadOnly: o.ReadOnly})
	if err != nil {
		return nil, errors.Wrapf(err, "typestore: open %s", path)
	}
	if !o.ReadOnly {
		err = bdb.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketName)
			return err
		})
		if err != nil {
			bdb.Close()
			return nil, errors.Wrapf(err, "typestore: init %s", path)
		}
	}
	return &Store{bdb: bdb, logger: o.Logger}, nil
}

func (s *Store) Close() error { return s.bdb.Close() }

func encodeRecord(t *types.Type) ([]byte, string, error) {
	spec, err := types.Format(t)
	if err != nil {
		return nil, "", err
	}
	data, err := msgpack.Marshal(&record{Version: recordVersion, Spec: spec, Sources: t.Sources()})
	return data, spec, err
}

func decodeRecord(name string, data []byte) (*types.Type, error) {
	var rec record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, &RecordError{name, err}
	}
	if rec.Version != recordVersion {
		return nil, &RecordError{name, errors.Errorf("unsupported version %d", rec.Version)}
	}
	t, err := types.Parse(rec.Spec)
	if err != nil {
		return nil, &RecordError{name, err}
	}
	return t.WithSources(rec.Sources...), nil
}

// Put stores t under name, replacing any previous type. Types without a textual form (lazy
// or annotated nodes) are rejected with an error wrapping types.ErrUnrepresentable.
func (s *Store) Put(name string, t *types.Type) error {
	data, spec, err := encodeRecord(t)
	if err != nil {
		return errors.Wrapf(err, "typestore: put %s", name)
	}
	err = s.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(name), data)
	})
	if err != nil {
		return errors.Wrapf(err, "typestore: put %s", name)
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "typestore: put", slog.String("type", name), slog.String("spec", spec))
	return nil
}

// Get loads the type stored under name.
func (s *Store) Get(name string) (*types.Type, error) {
	var t *types.Type
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return ErrNotFound
		}
		data := b.Get([]byte(name))
		if data == nil {
			return ErrNotFound
		}
		var err error
		t, err = decodeRecord(name, data)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "typestore: get %s", name)
	}
	return t, nil
}

// Delete removes the type stored under name.
func (s *Store) Delete(name string) error {
	err := s.bdb.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get([]byte(name)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(name))
	})
	if err != nil {
		return errors.Wrapf(err, "typestore: delete %s", name)
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "typestore: delete", slog.String("type", name))
	return nil
}

// Names lists the stored names in key order.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "typestore: names")
	}
	sort.Strings(names)
	return names, nil
}

// All loads every stored type. Records that fail to decode are logged and skipped.
func (s *Store) All() (map[string]*types.Type, error) {
	all := make(map[string]*types.Type)
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			name := string(k)
			t, err := decodeRecord(name, v)
			if err != nil {
				s.logger.LogAttrs(context.Background(), slog.LevelWarn, "typestore: skipping corrupted record", slog.String("type", name), slog.Any("err", err))
				return nil
			}
			all[name] = t
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "typestore: all")
	}
	return all, nil
}

// putRaw stores undecoded bytes; tests use it to plant corrupt records.
func (s *Store) putRaw(name string, data []byte) error {
	return s.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(name), data)
	})
}
