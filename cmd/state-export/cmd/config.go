// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/igor53627/state-export/export"
	"github.com/igor53627/state-export/pebble"
)

const (
	envPrefix = "STATE_EXPORT"

	configKey           = "config"
	logLevelKey         = "log-level"
	logFormatKey        = "log-format"
	logDirKey           = "log-dir"
	dbPathKey           = "db-path"
	outDirKey           = "out-dir"
	limitKey            = "limit"
	atomicKey           = "atomic"
	progressIntervalKey = "progress-interval"
	bufferSizeKey       = "buffer-size"
	cacheSizeKey        = "cache-size"
	metricsFileKey      = "metrics-file"
	headKey             = "head"

	logMaxSize  = 8 // megabytes
	logMaxFiles = 7
)

// newViper returns a viper instance that layers flags over STATE_EXPORT_*
// environment variables over the config file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String(configKey, "", "config file (json, yaml or toml)")
	fs.String(logLevelKey, "info", "log level")
	fs.String(logFormatKey, "auto", "log format (auto, plain, colors or json)")
	fs.String(logDirKey, "", "directory for rotated log files (disabled when empty)")
	fs.String(outDirKey, "output", "directory holding the exported files")
}

func addExportFlags(fs *pflag.FlagSet) {
	exportDefaults := export.NewDefaultConfig()
	pebbleDefaults := pebble.NewDefaultConfig()

	fs.String(dbPathKey, "", "path to the pebble store to export")
	fs.Int64(limitKey, 0, "stop after this many accounts (must be positive)")
	fs.Bool(atomicKey, exportDefaults.AtomicOutput, "only replace the output files once the export succeeds")
	fs.Uint64(progressIntervalKey, exportDefaults.ProgressInterval, "log progress every n accounts (0 disables)")
	fs.Int(bufferSizeKey, exportDefaults.BufferSize, "write buffer size of each output file in bytes")
	fs.Int(cacheSizeKey, pebbleDefaults.CacheSize/units.MiB, "pebble block cache size in MiB")
	fs.String(metricsFileKey, "", "write metrics to this file in prometheus text format after the run")
}

// readConfigFile loads the file named by --config, if any.
func readConfigFile(v *viper.Viper) error {
	file := v.GetString(configKey)
	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

func newLoggingConfig(v *viper.Viper) (logging.Config, error) {
	level, err := logging.ToLevel(v.GetString(logLevelKey))
	if err != nil {
		return logging.Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	format, err := logging.ToFormat(v.GetString(logFormatKey), os.Stderr.Fd())
	if err != nil {
		return logging.Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   logMaxSize,
			MaxFiles:  logMaxFiles,
			Directory: v.GetString(logDirKey),
		},
		LogLevel:     level,
		DisplayLevel: level,
		LogFormat:    format,
	}, nil
}

type exportConfig struct {
	dbPath      string
	metricsFile string
	export      export.Config
	pebble      pebble.Config
}

func newExportConfig(v *viper.Viper) (*exportConfig, error) {
	cfg := &exportConfig{
		dbPath:      v.GetString(dbPathKey),
		metricsFile: v.GetString(metricsFileKey),
		export:      export.NewDefaultConfig(),
		pebble:      pebble.NewDefaultConfig(),
	}
	if cfg.dbPath == "" {
		return nil, fmt.Errorf("%w: --%s is required", ErrConfig, dbPathKey)
	}
	if v.IsSet(limitKey) {
		limit := v.GetInt64(limitKey)
		if limit <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
		}
		cfg.export.Limit = uint64(limit)
	}
	cfg.export.OutputDir = v.GetString(outDirKey)
	cfg.export.AtomicOutput = v.GetBool(atomicKey)
	cfg.export.ProgressInterval = v.GetUint64(progressIntervalKey)
	cfg.export.BufferSize = v.GetInt(bufferSizeKey)
	cfg.pebble.CacheSize = v.GetInt(cacheSizeKey) * units.MiB
	return cfg, nil
}
