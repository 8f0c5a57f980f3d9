// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/cockroachdb/pebble"
)

var _ pebble.Logger = (*logger)(nil)

// logger routes pebble's internal messages (WAL replay, background errors)
// through [logging.Logger]. Routine messages are logged at debug.
type logger struct {
	log logging.Logger
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *logger) Fatalf(format string, args ...interface{}) {
	l.log.Fatal(fmt.Sprintf(format, args...))
	l.log.Stop()
	os.Exit(1)
}
