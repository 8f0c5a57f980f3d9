// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	accountsExported prometheus.Counter
	bytesWritten     prometheus.Counter
	runDuration      prometheus.Gauge
	state            prometheus.Gauge
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		accountsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "export",
			Name:      "accounts_exported",
			Help:      "number of account pairs written",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "export",
			Name:      "bytes_written",
			Help:      "number of record bytes handed to the output files",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "export",
			Name:      "run_duration_seconds",
			Help:      "wall time of the last run",
		}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "export",
			Name:      "state",
			Help:      "final state of the last run (3=completed, 4=limit reached, 5=failed)",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.accountsExported),
		r.Register(m.bytesWritten),
		r.Register(m.runDuration),
		r.Register(m.state),
	)
	return r, m, errs.Err
}
