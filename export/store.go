// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"github.com/ava-labs/avalanchego/database"

	"github.com/igor53627/state-export/pebble"
)

// ReadTx is a consistent read view of a store. Iterators opened from it must
// yield entries in strictly ascending key order.
type ReadTx interface {
	NewIteratorWithPrefix(prefix []byte) database.Iterator
	Close() error
}

// Store is a read-only handle on an embedded key-value store.
type Store interface {
	BeginRead() (ReadTx, error)
	Close() error
}

// Opener opens the source store. It is invoked once per run.
type Opener func() (Store, error)

var (
	_ Store  = (*pebbleStore)(nil)
	_ Store  = (*iterateeStore)(nil)
	_ ReadTx = (*pebble.Snapshot)(nil)
	_ ReadTx = (*iterateeTx)(nil)
)

type pebbleStore struct {
	db *pebble.Database
}

func NewPebbleStore(db *pebble.Database) Store {
	return &pebbleStore{db: db}
}

func (s *pebbleStore) BeginRead() (ReadTx, error) {
	snap, err := s.db.BeginRead()
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}

// NewIterateeStore serves reads straight from [db]. It takes no snapshot, so
// [db] must not be written to during a run. Used with memdb in tests.
func NewIterateeStore(db database.Database) Store {
	return &iterateeStore{db: db}
}

type iterateeStore struct {
	db database.Database
}

func (s *iterateeStore) BeginRead() (ReadTx, error) {
	return &iterateeTx{db: s.db}, nil
}

func (s *iterateeStore) Close() error {
	return s.db.Close()
}

type iterateeTx struct {
	db database.Iteratee
}

func (tx *iterateeTx) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return tx.db.NewIteratorWithPrefix(prefix)
}

func (*iterateeTx) Close() error {
	return nil
}
