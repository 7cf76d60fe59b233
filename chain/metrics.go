// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type executorMetrics struct {
	txsSucceeded prometheus.Counter
	txsFailed    prometheus.Counter
	txsDuplicate prometheus.Counter
	authFailures prometheus.Counter

	verify  metric.Averager
	execute metric.Averager
}

func newMetrics(gatherer metrics.MultiGatherer) (*executorMetrics, error) {
	r := prometheus.NewRegistry()
	verify, err := metric.NewAverager(
		"chain_auth_verify",
		"time spent verifying transaction signatures",
		r,
	)
	if err != nil {
		return nil, err
	}
	execute, err := metric.NewAverager(
		"chain_execute",
		"time spent executing a set of transactions",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &executorMetrics{
		txsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_succeeded",
			Help:      "number of transactions whose action succeeded",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_failed",
			Help:      "number of transactions whose action failed",
		}),
		txsDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_duplicate",
			Help:      "number of transactions skipped because they already executed",
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "auth_failures",
			Help:      "number of transaction sets rejected for an invalid signature",
		}),
		verify:  verify,
		execute: execute,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsSucceeded),
		r.Register(m.txsFailed),
		r.Register(m.txsDuplicate),
		r.Register(m.authFailures),
		gatherer.Register("chain", r),
	)
	return m, errs.Err
}
