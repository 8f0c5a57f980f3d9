// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import "errors"

var ErrOpenSnapshots = errors.New("database closed with open snapshots")
