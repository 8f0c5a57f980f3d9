// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/renameio/v2"

	"github.com/igor53627/state-export/consts"
)

const (
	AddressMappingFile = "address-mapping.bin"
	DatabaseFile       = "database.bin"
)

// output is a single buffered, append-only sink. In atomic mode the bytes
// go to a temporary file that only replaces [path] on commit.
type output struct {
	path    string
	file    *os.File
	pending *renameio.PendingFile
	w       *bufio.Writer
}

func createOutput(path string, atomic bool, bufferSize int) (*output, error) {
	if atomic {
		pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(perms.ReadWrite))
		if err != nil {
			return nil, err
		}
		return &output{
			path:    path,
			pending: pending,
			w:       bufio.NewWriterSize(pending, bufferSize),
		}, nil
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perms.ReadWrite)
	if err != nil {
		return nil, err
	}
	return &output{
		path: path,
		file: file,
		w:    bufio.NewWriterSize(file, bufferSize),
	}, nil
}

func (o *output) commit() error {
	if err := o.w.Flush(); err != nil {
		_ = o.abort()
		return err
	}
	if o.pending != nil {
		if err := o.pending.CloseAtomicallyReplace(); err != nil {
			_ = o.pending.Cleanup()
			return err
		}
		return nil
	}
	errs := wrappers.Errs{}
	errs.Add(o.file.Sync(), o.file.Close())
	return errs.Err
}

// abort keeps whatever was buffered when writing in place and discards
// everything in atomic mode.
func (o *output) abort() error {
	if o.pending != nil {
		return o.pending.Cleanup()
	}
	errs := wrappers.Errs{}
	errs.Add(o.w.Flush(), o.file.Close())
	return errs.Err
}

// pairWriter writes identifier and value records in lock-step: record i of
// each file always belongs to the same account.
//
// Exactly one of Commit or Abort must be called.
type pairWriter struct {
	addresses *output
	balances  *output

	closed bool
}

func newPairWriter(dir string, atomic bool, bufferSize int) (*pairWriter, error) {
	addresses, err := createOutput(filepath.Join(dir, AddressMappingFile), atomic, bufferSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateOutput, err)
	}
	balances, err := createOutput(filepath.Join(dir, DatabaseFile), atomic, bufferSize)
	if err != nil {
		_ = addresses.abort()
		return nil, fmt.Errorf("%w: %w", ErrCreateOutput, err)
	}
	return &pairWriter{
		addresses: addresses,
		balances:  balances,
	}, nil
}

func (w *pairWriter) WriteAddress(addr common.Address) error {
	if _, err := w.addresses.w.Write(addr[:]); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, w.addresses.path, err)
	}
	return nil
}

func (w *pairWriter) WriteBalance(balance [consts.BalanceLen]byte) error {
	if _, err := w.balances.w.Write(balance[:]); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, w.balances.path, err)
	}
	return nil
}

// Commit flushes and closes both files. In atomic mode the address mapping
// is renamed into place first; if renaming the balances then fails, the new
// address mapping is left next to the previous database file and the error
// is returned.
func (w *pairWriter) Commit() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.addresses.commit(); err != nil {
		_ = w.balances.abort()
		return fmt.Errorf("%w: %s: %w", ErrWrite, w.addresses.path, err)
	}
	if err := w.balances.commit(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, w.balances.path, err)
	}
	return nil
}

// Abort flushes what has been buffered so far (best effort) and closes both
// files.
func (w *pairWriter) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true

	errs := wrappers.Errs{}
	errs.Add(w.addresses.abort(), w.balances.abort())
	return errs.Err
}
