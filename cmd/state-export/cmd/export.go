// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/igor53627/state-export/export"
	"github.com/igor53627/state-export/pebble"
	"github.com/igor53627/state-export/utils"
)

func runExport(log logging.Logger, cfg *exportConfig) (*export.Result, error) {
	gatherers := prometheus.Gatherers{}
	open := func() (export.Store, error) {
		db, registry, err := pebble.NewReadOnly(log, cfg.dbPath, cfg.pebble)
		if err != nil {
			return nil, err
		}
		gatherers = append(gatherers, registry)
		return export.NewPebbleStore(db), nil
	}

	e, registry, err := export.New(log, cfg.export, open)
	if err != nil {
		return nil, err
	}
	gatherers = append(gatherers, registry)

	res, err := e.Run()
	if cfg.metricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.metricsFile, gatherers); err != nil {
			log.Warn("failed to write metrics",
				zap.String("path", cfg.metricsFile),
				zap.Error(err),
			)
		}
	}
	if err != nil {
		return res, err
	}

	printSummary(res, cfg.export.Limit)
	return res, nil
}

func printSummary(res *export.Result, limit uint64) {
	utils.Outf("{{green}}exported %d accounts{{/}} in %s\n", res.Exported, res.Elapsed)
	if res.State == export.LimitReached {
		utils.Outf("{{yellow}}stopped at limit of %d accounts, more remain{{/}}\n", limit)
	}
	utils.Outf("{{cyan}}address mapping:{{/}} %s\n", res.AddressPath)
	utils.Outf("{{cyan}}database:{{/}} %s\n", res.DatabasePath)
}
