// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/exp/mmap"

	"github.com/igor53627/state-export/consts"
)

// Pairs is a read-only, memory-mapped view of a finished export.
type Pairs struct {
	addresses *mmap.ReaderAt
	balances  *mmap.ReaderAt
	n         int
}

// OpenPairs maps the two output files in [dir] and checks that they hold
// the same number of whole records.
func OpenPairs(dir string) (*Pairs, error) {
	addresses, err := mmap.Open(filepath.Join(dir, AddressMappingFile))
	if err != nil {
		return nil, err
	}
	balances, err := mmap.Open(filepath.Join(dir, DatabaseFile))
	if err != nil {
		_ = addresses.Close()
		return nil, err
	}
	p := &Pairs{addresses: addresses, balances: balances}
	if err := p.init(); err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Pairs) init() error {
	if p.addresses.Len()%consts.AddressLen != 0 {
		return fmt.Errorf(
			"%w: %s is %d bytes, not a multiple of %d",
			ErrCorruptOutput,
			AddressMappingFile,
			p.addresses.Len(),
			consts.AddressLen,
		)
	}
	if p.balances.Len()%consts.BalanceLen != 0 {
		return fmt.Errorf(
			"%w: %s is %d bytes, not a multiple of %d",
			ErrCorruptOutput,
			DatabaseFile,
			p.balances.Len(),
			consts.BalanceLen,
		)
	}
	addresses := p.addresses.Len() / consts.AddressLen
	balances := p.balances.Len() / consts.BalanceLen
	if addresses != balances {
		return fmt.Errorf("%w: %d addresses but %d balances", ErrLengthMismatch, addresses, balances)
	}
	p.n = addresses
	return nil
}

func (p *Pairs) Len() int {
	return p.n
}

func (p *Pairs) Address(i int) (common.Address, error) {
	var addr common.Address
	if i < 0 || i >= p.n {
		return addr, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, p.n)
	}
	_, err := p.addresses.ReadAt(addr[:], int64(i)*consts.AddressLen)
	return addr, err
}

func (p *Pairs) Balance(i int) (*uint256.Int, error) {
	if i < 0 || i >= p.n {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, p.n)
	}
	var b [consts.BalanceLen]byte
	if _, err := p.balances.ReadAt(b[:], int64(i)*consts.BalanceLen); err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(b[:]), nil
}

// Verify checks that identifiers are strictly ascending, which also rules
// out duplicates.
func (p *Pairs) Verify() error {
	var prev common.Address
	for i := 0; i < p.n; i++ {
		addr, err := p.Address(i)
		if err != nil {
			return err
		}
		if i > 0 && bytes.Compare(prev[:], addr[:]) >= 0 {
			return fmt.Errorf("%w: record %d (%s) follows %s", ErrUnsorted, i, addr, prev)
		}
		prev = addr
	}
	return nil
}

func (p *Pairs) Close() error {
	errs := wrappers.Errs{}
	errs.Add(p.addresses.Close(), p.balances.Close())
	return errs.Err
}
