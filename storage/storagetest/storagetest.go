// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storagetest builds account stores for tests.
package storagetest

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/igor53627/state-export/storage"
)

// Entry is a raw key-value pair as it sits in the store.
type Entry struct {
	Key   []byte
	Value []byte
}

// MaxBalance is 2^256 - 1.
var MaxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func AccountEntry(t testing.TB, addr common.Address, balance *big.Int) Entry {
	value, err := storage.EncodeAccount(&storage.Account{
		Nonce:    1,
		Balance:  balance,
		CodeHash: []byte{},
	})
	require.NoError(t, err)
	return Entry{Key: storage.AccountKey(addr), Value: value}
}

// RandomAccounts returns [n] account entries with random addresses and
// balances of up to 256 bits. The same [seed] always yields the same
// entries.
func RandomAccounts(t testing.TB, n int, seed int64) []Entry {
	r := rand.New(rand.NewSource(seed)) //#nosec G404
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		var addr common.Address
		_, _ = r.Read(addr[:])
		raw := make([]byte, 1+r.Intn(32))
		_, _ = r.Read(raw)
		entries = append(entries, AccountEntry(t, addr, new(big.Int).SetBytes(raw)))
	}
	return entries
}

func NewMemDB(t testing.TB, entries ...Entry) *memdb.Database {
	db := memdb.New()
	for _, e := range entries {
		require.NoError(t, db.Put(e.Key, e.Value))
	}
	return db
}

// NewPebble writes [entries] into a fresh pebble store and returns its path.
// The store is closed so it can be reopened read-only.
func NewPebble(t testing.TB, entries ...Entry) string {
	require := require.New(t)

	dir := t.TempDir()
	db, err := pebble.Open(dir, &pebble.Options{})
	require.NoError(err)
	batch := db.NewBatch()
	for _, e := range entries {
		require.NoError(batch.Set(e.Key, e.Value, nil))
	}
	require.NoError(batch.Commit(pebble.Sync))
	require.NoError(db.Close())
	return dir
}
