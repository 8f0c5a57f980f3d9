// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/igor53627/state-export/consts"
	"github.com/igor53627/state-export/storage"
)

// Record is the pair of fixed-width records produced for one account entry.
type Record struct {
	Address common.Address
	Balance [consts.BalanceLen]byte
}

// Encode turns a raw account entry into its identifier and value records.
// A key that is not a 20-byte account key or a balance wider than 256 bits
// means the source store is corrupt.
func Encode(key, value []byte) (Record, error) {
	addr, err := storage.ParseAccountKey(key)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	account, err := storage.DecodeAccount(value)
	if err != nil {
		return Record{}, fmt.Errorf("%w: account %s: %w", ErrEncode, addr, err)
	}
	balance, err := storage.BalanceBytes(account)
	if err != nil {
		return Record{}, fmt.Errorf("%w: account %s: %w", ErrEncode, addr, err)
	}
	return Record{Address: addr, Balance: balance}, nil
}
