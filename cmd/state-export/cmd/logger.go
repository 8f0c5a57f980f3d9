// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logFactory builds loggers that always write to stderr and, when a log
// directory is configured, to a rotated file as well. Stdout is left to the
// human-facing summary.
type logFactory struct {
	config logging.Config
	lock   sync.Mutex

	loggers map[string]logging.Logger
}

func newLogFactory(config logging.Config) *logFactory {
	return &logFactory{
		config:  config,
		loggers: make(map[string]logging.Logger),
	}
}

// Assumes [f.lock] is held
func (f *logFactory) makeLogger(config logging.Config) (logging.Logger, error) {
	if _, ok := f.loggers[config.LoggerName]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", config.LoggerName)
	}

	consoleCore := logging.NewWrappedCore(config.DisplayLevel, os.Stderr, config.LogFormat.ConsoleEncoder())
	cores := []logging.WrappedCore{consoleCore}
	if config.Directory != "" {
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(config.Directory, config.LoggerName+".log"),
			MaxSize:    config.MaxSize,  // megabytes
			MaxAge:     config.MaxAge,   // days
			MaxBackups: config.MaxFiles, // files
			Compress:   config.Compress,
		}
		cores = append(cores, logging.NewWrappedCore(config.LogLevel, rw, config.LogFormat.FileEncoder()))
	}

	l := logging.NewLogger(config.LogFormat.WrapPrefix(config.MsgPrefix), cores...)
	f.loggers[config.LoggerName] = l
	return l, nil
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	config := f.config
	config.LoggerName = name
	return f.makeLogger(config)
}

// Close flushes and stops every logger made by [f].
func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, l := range f.loggers {
		l.Stop()
	}
	f.loggers = nil
}
