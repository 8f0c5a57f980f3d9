// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidAccountKey = errors.New("invalid account key")
	ErrInvalidAccount    = errors.New("invalid account encoding")
	ErrBalanceOverflow   = errors.New("balance exceeds 256 bits")
)
