// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import "errors"

var (
	ErrOpen         = errors.New("failed to open store")
	ErrTx           = errors.New("failed to begin read transaction")
	ErrWalk         = errors.New("cursor failed mid-walk")
	ErrEncode       = errors.New("failed to encode account entry")
	ErrCreateOutput = errors.New("failed to create output file")
	ErrWrite        = errors.New("failed to write output")

	ErrCorruptOutput  = errors.New("corrupt output file")
	ErrLengthMismatch = errors.New("output record counts differ")
	ErrUnsorted       = errors.New("identifiers not in ascending order")
	ErrOutOfRange     = errors.New("record index out-of-range")
)
