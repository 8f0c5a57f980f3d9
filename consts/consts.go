// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen    = 1
	AddressLen = 20
	BalanceLen = 32
	PairLen    = AddressLen + BalanceLen
)
