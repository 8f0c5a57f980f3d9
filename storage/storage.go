// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/igor53627/state-export/consts"
)

// State
// 0x0/ (accounts)
//   -> [address] => rlp(account)

const accountPrefix byte = 0x0

// Account mirrors the field order of an EVM state account. Balance is kept
// as a big.Int so oversized values survive decoding and can be rejected
// explicitly rather than truncated.
type Account struct {
	Nonce    uint64
	Balance  *big.Int
	Root     common.Hash
	CodeHash []byte
}

// AccountsPrefix returns the key prefix shared by every account entry.
func AccountsPrefix() []byte {
	return []byte{accountPrefix}
}

// [accountPrefix] + [address]
func AccountKey(addr common.Address) []byte {
	k := make([]byte, consts.ByteLen+consts.AddressLen)
	k[0] = accountPrefix
	copy(k[consts.ByteLen:], addr[:])
	return k
}

func ParseAccountKey(k []byte) (common.Address, error) {
	if len(k) != consts.ByteLen+consts.AddressLen {
		return common.Address{}, fmt.Errorf(
			"%w: expected %d bytes but found %d",
			ErrInvalidAccountKey,
			consts.ByteLen+consts.AddressLen,
			len(k),
		)
	}
	if k[0] != accountPrefix {
		return common.Address{}, fmt.Errorf("%w: unexpected prefix 0x%x", ErrInvalidAccountKey, k[0])
	}
	return common.Address(k[consts.ByteLen:]), nil
}

func EncodeAccount(account *Account) ([]byte, error) {
	return rlp.EncodeToBytes(account)
}

// DecodeAccount parses an account value. An empty value is an account that
// was never funded.
func DecodeAccount(data []byte) (*Account, error) {
	account := &Account{Balance: new(big.Int)}
	if len(data) == 0 {
		return account, nil
	}
	if err := rlp.DecodeBytes(data, account); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccount, err)
	}
	if account.Balance == nil {
		account.Balance = new(big.Int)
	}
	return account, nil
}

// BalanceBytes returns the balance as a 32-byte big-endian integer.
func BalanceBytes(account *Account) ([consts.BalanceLen]byte, error) {
	if account.Balance == nil {
		return [consts.BalanceLen]byte{}, nil
	}
	if account.Balance.Sign() < 0 {
		return [consts.BalanceLen]byte{}, fmt.Errorf("%w: negative balance %s", ErrInvalidAccount, account.Balance)
	}
	balance, overflow := uint256.FromBig(account.Balance)
	if overflow {
		return [consts.BalanceLen]byte{}, fmt.Errorf(
			"%w: balance is %d bits",
			ErrBalanceOverflow,
			account.Balance.BitLen(),
		)
	}
	return balance.Bytes32(), nil
}
