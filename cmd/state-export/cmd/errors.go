// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"

	"github.com/igor53627/state-export/export"
)

var (
	ErrConfig       = errors.New("invalid configuration")
	ErrInvalidLimit = errors.New("limit must be positive")
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, export.ErrOpen):
		return 2
	case errors.Is(err, export.ErrTx):
		return 3
	case errors.Is(err, export.ErrWalk):
		return 4
	case errors.Is(err, export.ErrEncode):
		return 5
	case errors.Is(err, export.ErrCreateOutput), errors.Is(err, export.ErrWrite):
		return 6
	default:
		return 1
	}
}
