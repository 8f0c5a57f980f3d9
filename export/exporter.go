// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/igor53627/state-export/consts"
	"github.com/igor53627/state-export/storage"
	"github.com/igor53627/state-export/utils"
)

type State uint8

const (
	Init State = iota
	Opened
	Iterating
	Completed
	LimitReached
	Failed
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Opened:
		return "opened"
	case Iterating:
		return "iterating"
	case Completed:
		return "completed"
	case LimitReached:
		return "limit reached"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

type Config struct {
	OutputDir string `json:"outputDir"`
	// Limit caps the number of exported accounts. 0 exports the whole table.
	Limit            uint64 `json:"limit"`
	ProgressInterval uint64 `json:"progressInterval"`
	BufferSize       int    `json:"bufferSize"`
	// AtomicOutput writes through temporary files that replace the outputs
	// only if the run succeeds.
	AtomicOutput bool `json:"atomicOutput"`
}

func NewDefaultConfig() Config {
	return Config{
		OutputDir:        "output",
		ProgressInterval: 1_000_000,
		BufferSize:       units.MiB,
	}
}

type Result struct {
	State        State
	Exported     uint64
	Elapsed      time.Duration
	AddressPath  string
	DatabasePath string
}

// Exporter walks the account table of a store once and writes every
// account as an (address, balance) record pair.
type Exporter struct {
	log     logging.Logger
	cfg     Config
	open    Opener
	metrics *metrics
}

func New(log logging.Logger, cfg Config, open Opener) (*Exporter, *prometheus.Registry, error) {
	if cfg.BufferSize <= 0 {
		return nil, nil, fmt.Errorf("invalid buffer size %d", cfg.BufferSize)
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	return &Exporter{
		log:     log,
		cfg:     cfg,
		open:    open,
		metrics: metrics,
	}, registry, nil
}

// Run performs a single export. On failure the returned result is still
// populated and the output files, if any, must not be trusted.
func (e *Exporter) Run() (*Result, error) {
	start := time.Now()
	res := &Result{
		State:        Init,
		AddressPath:  filepath.Join(e.cfg.OutputDir, AddressMappingFile),
		DatabasePath: filepath.Join(e.cfg.OutputDir, DatabaseFile),
	}
	err := e.run(res)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.State = Failed
	}
	e.metrics.runDuration.Set(res.Elapsed.Seconds())
	e.metrics.state.Set(float64(res.State))

	if err != nil {
		e.log.Error("export failed",
			zap.Uint64("exported", res.Exported),
			zap.Duration("elapsed", res.Elapsed),
			zap.Error(err),
		)
		return res, err
	}
	e.log.Info("export finished",
		zap.Stringer("state", res.State),
		zap.Uint64("exported", res.Exported),
		zap.Duration("elapsed", res.Elapsed),
		zap.String("database", res.DatabasePath),
		zap.String("mapping", res.AddressPath),
	)
	return res, nil
}

func (e *Exporter) run(res *Result) error {
	store, err := e.open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			e.log.Warn("failed to close store", zap.Error(err))
		}
	}()

	tx, err := store.BeginRead()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTx, err)
	}
	defer func() {
		if err := tx.Close(); err != nil {
			e.log.Warn("failed to release read transaction", zap.Error(err))
		}
	}()

	it := tx.NewIteratorWithPrefix(storage.AccountsPrefix())
	defer it.Release()
	res.State = Opened

	if err := os.MkdirAll(e.cfg.OutputDir, perms.ReadWriteExecute); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateOutput, err)
	}
	w, err := newPairWriter(e.cfg.OutputDir, e.cfg.AtomicOutput, e.cfg.BufferSize)
	if err != nil {
		return err
	}

	res.State = Iterating
	e.log.Info("starting export",
		zap.String("outputDir", e.cfg.OutputDir),
		zap.Uint64("limit", e.cfg.Limit),
		zap.Bool("atomic", e.cfg.AtomicOutput),
	)
	state, err := e.walk(it, w, res)
	if err != nil {
		if abortErr := w.Abort(); abortErr != nil {
			e.log.Warn("failed to flush partial output", zap.Error(abortErr))
		}
		return err
	}
	if err := w.Commit(); err != nil {
		return err
	}
	res.State = state
	return nil
}

// walk drains [it] into [w] until the cursor is exhausted, the limit is hit
// or an error occurs.
func (e *Exporter) walk(it database.Iterator, w *pairWriter, res *Result) (State, error) {
	var (
		count uint64
		start = time.Now()
	)
	defer func() {
		res.Exported = count
	}()

	for it.Next() {
		record, err := Encode(it.Key(), it.Value())
		if err != nil {
			return Failed, err
		}
		if err := w.WriteAddress(record.Address); err != nil {
			return Failed, err
		}
		if err := w.WriteBalance(record.Balance); err != nil {
			return Failed, err
		}
		count++
		e.metrics.accountsExported.Inc()
		e.metrics.bytesWritten.Add(consts.PairLen)

		if e.cfg.ProgressInterval > 0 && count%e.cfg.ProgressInterval == 0 {
			e.log.Info("processed accounts",
				zap.Uint64("count", count),
				zap.Float64("accountsPerSecond", utils.PerSecond(count, time.Since(start))),
			)
		}
		if e.cfg.Limit > 0 && count >= e.cfg.Limit {
			// Only a remaining entry makes this a truncated export.
			if it.Next() {
				return LimitReached, nil
			}
			break
		}
	}
	if err := it.Error(); err != nil {
		return Failed, fmt.Errorf("%w: after %d entries: %w", ErrWalk, count, err)
	}
	return Completed, nil
}
