// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	CacheSize    int `json:"cacheSize"`
	MaxOpenFiles int `json:"maxOpenFiles"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:    512 * units.MiB,
		MaxOpenFiles: 4_096,
	}
}

// Database is a read-only handle on an existing pebble store.
//
// Reads are served from snapshots so a walk observes a single, consistent
// view of the store even if another process later opens it for writing.
type Database struct {
	db      *pebble.DB
	metrics *metrics

	l         sync.Mutex
	closed    bool
	snapshots int
}

// NewReadOnly opens the store at [file] without write access. It never
// creates a store: a missing path, a store locked by a writer, or an
// unreadable format all return an error. Pebble's own messages go to [log].
func NewReadOnly(log logging.Logger, file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}

	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:            cache,
		Logger:           &logger{log: log},
		MaxOpenFiles:     cfg.MaxOpenFiles,
		ReadOnly:         true,
		ErrorIfNotExists: true,
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	return &Database{db: db, metrics: metrics}, registry, nil
}

// BeginRead opens a snapshot of the store. The snapshot must be closed
// before the database.
func (db *Database) BeginRead() (*Snapshot, error) {
	db.l.Lock()
	defer db.l.Unlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	db.snapshots++
	return &Snapshot{db: db, snap: db.db.NewSnapshot()}, nil
}

func (db *Database) Close() error {
	db.l.Lock()
	defer db.l.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true
	db.collectMetrics()

	errs := wrappers.Errs{}
	if db.snapshots > 0 {
		errs.Add(fmt.Errorf("%w: %d", ErrOpenSnapshots, db.snapshots))
	}
	errs.Add(db.db.Close())
	return errs.Err
}

// Snapshot is a point-in-time read view of a [Database].
type Snapshot struct {
	db   *Database
	snap *pebble.Snapshot

	closed bool
}

// NewIteratorWithPrefix returns an iterator over every key starting with
// [prefix], in ascending key order.
func (s *Snapshot) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	if s.closed {
		return &database.IteratorError{Err: database.ErrClosed}
	}
	it, err := s.snap.NewIter(prefixBounds(prefix))
	if err != nil {
		return &database.IteratorError{Err: err}
	}
	return &iter{metrics: s.db.metrics, iter: it}
}

func (s *Snapshot) Close() error {
	if s.closed {
		return database.ErrClosed
	}
	s.closed = true

	err := s.snap.Close()

	s.db.l.Lock()
	s.db.snapshots--
	if !s.db.closed {
		s.db.collectMetrics()
	}
	s.db.l.Unlock()
	return err
}

func prefixBounds(prefix []byte) *pebble.IterOptions {
	return &pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixToUpperBound(prefix),
	}
}

// prefixToUpperBound returns the smallest key that is larger than every key
// starting with [prefix], or nil when no such key exists (all 0xff).
func prefixToUpperBound(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] == 0xff {
			continue
		}
		upper := slices.Clone(prefix[:i+1])
		upper[i]++
		return upper
	}
	return nil
}

var _ database.Iterator = (*iter)(nil)

type iter struct {
	metrics *metrics
	iter    *pebble.Iterator

	started  bool
	released bool
	err      error

	key   []byte
	value []byte
}

func (it *iter) Next() bool {
	if it.released || it.err != nil {
		it.key, it.value = nil, nil
		return false
	}

	start := time.Now()
	var ok bool
	if !it.started {
		ok = it.iter.First()
		it.started = true
	} else {
		ok = it.iter.Next()
	}
	it.metrics.stepLatency.Observe(float64(time.Since(start)))

	if !ok {
		it.key, it.value = nil, nil
		it.err = it.iter.Error()
		return false
	}

	// pebble reuses its buffers on every step
	it.key = slices.Clone(it.iter.Key())
	it.value = slices.Clone(it.iter.Value())
	it.metrics.entriesRead.Inc()
	it.metrics.bytesRead.Add(float64(len(it.key) + len(it.value)))
	return true
}

func (it *iter) Error() error {
	return it.err
}

func (it *iter) Key() []byte {
	return it.key
}

func (it *iter) Value() []byte {
	return it.value
}

func (it *iter) Release() {
	if it.released {
		return
	}
	it.released = true
	it.key, it.value = nil, nil

	errs := wrappers.Errs{}
	errs.Add(it.err, it.iter.Close())
	it.err = errs.Err
}
