// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/igor53627/state-export/storage/storagetest"
)

func newTestDB(t testing.TB, entries ...storagetest.Entry) *Database {
	db, _, err := NewReadOnly(logging.NoLog{}, storagetest.NewPebble(t, entries...), NewDefaultConfig())
	require.NoError(t, err)
	return db
}

func TestNewReadOnlyMissing(t *testing.T) {
	_, _, err := NewReadOnly(logging.NoLog{}, filepath.Join(t.TempDir(), "missing"), NewDefaultConfig())
	require.Error(t, err)
}

func TestNewReadOnlyLocked(t *testing.T) {
	require := require.New(t)

	dir := storagetest.NewPebble(t, storagetest.RandomAccounts(t, 5, 0)...)
	writer, err := pebble.Open(dir, &pebble.Options{})
	require.NoError(err)
	defer func() {
		require.NoError(writer.Close())
	}()

	_, _, err = NewReadOnly(logging.NoLog{}, dir, NewDefaultConfig())
	require.Error(err)

	// the writer is unaffected
	value, closer, err := writer.Get(storagetest.RandomAccounts(t, 1, 0)[0].Key)
	require.NoError(err)
	require.NotEmpty(value)
	require.NoError(closer.Close())
}

func TestNewReadOnlyCorrupt(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	manifest := bytes.Repeat([]byte{0xde, 0xad}, 64)
	require.NoError(os.WriteFile(filepath.Join(dir, "CURRENT"), []byte("MANIFEST-000001\n"), 0o600))
	require.NoError(os.WriteFile(filepath.Join(dir, "MANIFEST-000001"), manifest, 0o600))

	_, _, err := NewReadOnly(logging.NoLog{}, dir, NewDefaultConfig())
	require.Error(err)

	// nothing is rewritten by a failed open
	b, err := os.ReadFile(filepath.Join(dir, "MANIFEST-000001"))
	require.NoError(err)
	require.Equal(manifest, b)
}

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error {
	return nil
}

func TestLogger(t *testing.T) {
	require := require.New(t)

	buf := &bytes.Buffer{}
	log := logging.NewLogger("", logging.NewWrappedCore(logging.Debug, nopCloser{buf}, logging.Plain.FileEncoder()))
	l := &logger{log: log}

	l.Infof("[JOB %d] WAL replayed %d keys", 1, 5)
	l.Errorf("background error: %s", "disk full")
	require.Contains(buf.String(), "[JOB 1] WAL replayed 5 keys")
	require.Contains(buf.String(), "background error: disk full")

	// routine messages are dropped above debug
	buf.Reset()
	quiet := &logger{log: logging.NewLogger("", logging.NewWrappedCore(logging.Info, nopCloser{buf}, logging.Plain.FileEncoder()))}
	quiet.Infof("[JOB %d] WAL replayed", 2)
	require.Empty(buf.String())
}

func TestIteratorWithPrefix(t *testing.T) {
	require := require.New(t)

	db := newTestDB(t,
		storagetest.Entry{Key: []byte{0x0, 0x3}, Value: []byte{3}},
		storagetest.Entry{Key: []byte{0x1, 0x0}, Value: []byte{4}},
		storagetest.Entry{Key: []byte{0x0, 0x1}, Value: []byte{1}},
		storagetest.Entry{Key: []byte{0x0, 0x2}, Value: []byte{2}},
		storagetest.Entry{Key: []byte{0xff}, Value: []byte{5}},
	)
	snap, err := db.BeginRead()
	require.NoError(err)

	it := snap.NewIteratorWithPrefix([]byte{0x0})
	var (
		keys   [][]byte
		values [][]byte
	)
	for it.Next() {
		keys = append(keys, it.Key())
		values = append(values, it.Value())
	}
	require.NoError(it.Error())
	it.Release()
	require.NoError(it.Error())

	// keys stay valid after the iterator moves on
	require.Equal([][]byte{{0x0, 0x1}, {0x0, 0x2}, {0x0, 0x3}}, keys)
	require.Equal([][]byte{{1}, {2}, {3}}, values)
	require.Equal(float64(3), testutil.ToFloat64(db.metrics.entriesRead))
	require.Equal(float64(3*3), testutil.ToFloat64(db.metrics.bytesRead))

	require.False(it.Next())
	require.Nil(it.Key())

	require.NoError(snap.Close())
	require.NoError(db.Close())
}

func TestIteratorAllOnesPrefix(t *testing.T) {
	require := require.New(t)

	db := newTestDB(t,
		storagetest.Entry{Key: []byte{0xfe, 0xff}, Value: []byte{1}},
		storagetest.Entry{Key: []byte{0xff}, Value: []byte{2}},
		storagetest.Entry{Key: []byte{0xff, 0x01}, Value: []byte{3}},
	)
	snap, err := db.BeginRead()
	require.NoError(err)

	it := snap.NewIteratorWithPrefix([]byte{0xff})
	var keys [][]byte
	for it.Next() {
		keys = append(keys, it.Key())
	}
	require.NoError(it.Error())
	it.Release()
	require.Equal([][]byte{{0xff}, {0xff, 0x01}}, keys)

	require.NoError(snap.Close())
	require.NoError(db.Close())
}

func TestClosed(t *testing.T) {
	require := require.New(t)

	db := newTestDB(t)
	snap, err := db.BeginRead()
	require.NoError(err)
	require.NoError(snap.Close())
	require.ErrorIs(snap.Close(), database.ErrClosed)

	it := snap.NewIteratorWithPrefix(nil)
	require.False(it.Next())
	require.ErrorIs(it.Error(), database.ErrClosed)
	it.Release()

	require.NoError(db.Close())
	require.ErrorIs(db.Close(), database.ErrClosed)
	_, err = db.BeginRead()
	require.ErrorIs(err, database.ErrClosed)
}

func TestCloseOpenSnapshots(t *testing.T) {
	require := require.New(t)

	db := newTestDB(t)
	closed, err := db.BeginRead()
	require.NoError(err)
	_, err = db.BeginRead()
	require.NoError(err)
	require.NoError(closed.Close())

	err = db.Close()
	require.ErrorIs(err, ErrOpenSnapshots)
	require.ErrorContains(err, ": 1")
}

func TestPrefixToUpperBound(t *testing.T) {
	tests := []struct {
		prefix   []byte
		expected []byte
	}{
		{prefix: nil, expected: nil},
		{prefix: []byte{0x0}, expected: []byte{0x1}},
		{prefix: []byte{0x0, 0xff}, expected: []byte{0x1}},
		{prefix: []byte{0x1, 0x2}, expected: []byte{0x1, 0x3}},
		{prefix: []byte{0xff, 0xff}, expected: nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%x", tt.prefix), func(t *testing.T) {
			require := require.New(t)

			prefix := append([]byte{}, tt.prefix...)
			require.Equal(tt.expected, prefixToUpperBound(tt.prefix))
			require.Equal(prefix, append([]byte{}, tt.prefix...))
		})
	}
}

func BenchmarkIterate(b *testing.B) {
	for _, n := range []int{1_000, 100_000} {
		b.Run(fmt.Sprintf("accounts=%d", n), func(b *testing.B) {
			db := newTestDB(b, storagetest.RandomAccounts(b, n, 0)...)
			b.Cleanup(func() {
				_ = db.Close()
			})

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				snap, err := db.BeginRead()
				if err != nil {
					b.Fatal(err)
				}
				it := snap.NewIteratorWithPrefix([]byte{0x0})
				count := 0
				for it.Next() {
					count++
				}
				it.Release()
				if err := it.Error(); err != nil {
					b.Fatal(err)
				}
				if count != n {
					b.Fatalf("iterated %d of %d accounts", count, n)
				}
				if err := snap.Close(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
