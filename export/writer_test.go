// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func writeRecords(t *testing.T, w *pairWriter, n int) {
	require := require.New(t)
	for i := 0; i < n; i++ {
		require.NoError(w.WriteAddress(common.Address{byte(i)}))
		require.NoError(w.WriteBalance([32]byte{31: byte(i)}))
	}
}

func TestPairWriterCommit(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	w, err := newPairWriter(dir, false, 16)
	require.NoError(err)
	writeRecords(t, w, 3)
	require.NoError(w.Commit())
	require.NoError(w.Commit())

	addresses, err := os.ReadFile(filepath.Join(dir, AddressMappingFile))
	require.NoError(err)
	require.Len(addresses, 3*20)
	balances, err := os.ReadFile(filepath.Join(dir, DatabaseFile))
	require.NoError(err)
	require.Len(balances, 3*32)
	for i := 0; i < 3; i++ {
		require.Equal(byte(i), addresses[i*20])
		require.Equal(byte(i), balances[i*32+31])
	}
}

func TestPairWriterTruncatesExisting(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	stale := make([]byte, 1_000)
	require.NoError(os.WriteFile(filepath.Join(dir, AddressMappingFile), stale, 0o600))
	require.NoError(os.WriteFile(filepath.Join(dir, DatabaseFile), stale, 0o600))

	w, err := newPairWriter(dir, false, 16)
	require.NoError(err)
	writeRecords(t, w, 1)
	require.NoError(w.Commit())

	info, err := os.Stat(filepath.Join(dir, AddressMappingFile))
	require.NoError(err)
	require.Equal(int64(20), info.Size())
	info, err = os.Stat(filepath.Join(dir, DatabaseFile))
	require.NoError(err)
	require.Equal(int64(32), info.Size())
}

func TestPairWriterAbortKeepsPrefix(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	// buffer larger than everything written, so nothing reaches disk
	// before Abort flushes it
	w, err := newPairWriter(dir, false, 4_096)
	require.NoError(err)
	writeRecords(t, w, 2)
	require.NoError(w.Abort())
	require.NoError(w.Commit())

	addresses, err := os.ReadFile(filepath.Join(dir, AddressMappingFile))
	require.NoError(err)
	require.Len(addresses, 2*20)
	balances, err := os.ReadFile(filepath.Join(dir, DatabaseFile))
	require.NoError(err)
	require.Len(balances, 2*32)
}

func TestPairWriterAtomic(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	w, err := newPairWriter(dir, true, 16)
	require.NoError(err)
	writeRecords(t, w, 2)

	// nothing is visible until commit
	require.NoFileExists(filepath.Join(dir, AddressMappingFile))
	require.NoFileExists(filepath.Join(dir, DatabaseFile))

	require.NoError(w.Commit())
	addresses, err := os.ReadFile(filepath.Join(dir, AddressMappingFile))
	require.NoError(err)
	require.Len(addresses, 2*20)
	balances, err := os.ReadFile(filepath.Join(dir, DatabaseFile))
	require.NoError(err)
	require.Len(balances, 2*32)

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	require.Len(entries, 2)
}

func TestPairWriterAtomicAbort(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	previous := make([]byte, 20)
	require.NoError(os.WriteFile(filepath.Join(dir, AddressMappingFile), previous, 0o600))

	w, err := newPairWriter(dir, true, 16)
	require.NoError(err)
	writeRecords(t, w, 5)
	require.NoError(w.Abort())

	// the previous export is untouched and no temporaries are left behind
	addresses, err := os.ReadFile(filepath.Join(dir, AddressMappingFile))
	require.NoError(err)
	require.Equal(previous, addresses)
	require.NoFileExists(filepath.Join(dir, DatabaseFile))

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	require.Len(entries, 1)
}

func TestPairWriterCreateFailure(t *testing.T) {
	require := require.New(t)

	_, err := newPairWriter(filepath.Join(t.TempDir(), "missing"), false, 16)
	require.ErrorIs(err, ErrCreateOutput)
}

func TestPairWriterAtomicPartialCommit(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	// a non-empty directory where the balances belong cannot be replaced
	blocked := filepath.Join(dir, DatabaseFile)
	require.NoError(os.Mkdir(blocked, 0o700))
	require.NoError(os.WriteFile(filepath.Join(blocked, "keep"), nil, 0o600))

	w, err := newPairWriter(dir, true, 16)
	require.NoError(err)
	writeRecords(t, w, 2)
	err = w.Commit()
	require.ErrorIs(err, ErrWrite)
	require.ErrorContains(err, DatabaseFile)

	// the address mapping was already renamed into place
	addresses, err := os.ReadFile(filepath.Join(dir, AddressMappingFile))
	require.NoError(err)
	require.Len(addresses, 2*20)
	require.DirExists(blocked)

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	require.Len(entries, 2)
}
