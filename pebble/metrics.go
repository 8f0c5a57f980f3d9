// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	stepLatency metric.Averager

	entriesRead prometheus.Counter
	bytesRead   prometheus.Counter

	blockCacheHits   prometheus.Gauge
	blockCacheMisses prometheus.Gauge
	readAmp          prometheus.Gauge
	tableCount       prometheus.Gauge
	tombstoneCount   prometheus.Gauge
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	stepLatency, err := metric.NewAverager(
		"", // namespace (avalanchego v1.11.4 signature)
		"pebble_iterator_step",
		"time spent waiting for the next iterator entry",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	m := &metrics{
		stepLatency: stepLatency,
		entriesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "entries_read",
			Help:      "number of entries yielded by iterators, including look-ahead reads past a limit",
		}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "bytes_read",
			Help:      "number of key and value bytes yielded by iterators",
		}),
		blockCacheHits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "block_cache_hits",
			Help:      "number of block cache hits",
		}),
		blockCacheMisses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "block_cache_misses",
			Help:      "number of block cache misses",
		}),
		readAmp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "read_amp",
			Help:      "current read amplification of the store",
		}),
		tableCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "table_count",
			Help:      "number of sstables across all levels",
		}),
		tombstoneCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "tombstone_count",
			Help:      "approximate count of internal tombstones",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.entriesRead),
		r.Register(m.bytesRead),
		r.Register(m.blockCacheHits),
		r.Register(m.blockCacheMisses),
		r.Register(m.readAmp),
		r.Register(m.tableCount),
		r.Register(m.tombstoneCount),
	)
	return r, m, errs.Err
}

// collectMetrics samples the store-level gauges. Assumes [db.l] is held and
// the store is still open.
func (db *Database) collectMetrics() {
	metrics := db.db.Metrics()
	db.metrics.blockCacheHits.Set(float64(metrics.BlockCache.Hits))
	db.metrics.blockCacheMisses.Set(float64(metrics.BlockCache.Misses))
	db.metrics.readAmp.Set(float64(metrics.ReadAmp()))
	db.metrics.tombstoneCount.Set(float64(metrics.Keys.TombstoneCount))

	var tables int64
	for _, level := range metrics.Levels {
		tables += level.NumFiles
	}
	db.metrics.tableCount.Set(float64(tables))
}
