// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package minting

import (
	"errors"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "minting"

type controllerMetrics struct {
	mints           prometheus.Counter
	metadataChanges prometheus.Counter
	configChanges   prometheus.Counter
	rejections      *prometheus.CounterVec
}

func newMetrics(gatherer metrics.MultiGatherer) (*controllerMetrics, error) {
	m := &controllerMetrics{
		mints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "controller",
			Name:      "mints",
			Help:      "number of minted tokens",
		}),
		metadataChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "controller",
			Name:      "metadata_changes",
			Help:      "number of metadata updates",
		}),
		configChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "controller",
			Name:      "config_changes",
			Help:      "number of supply configuration updates",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "controller",
			Name:      "rejections",
			Help:      "number of rejected operations by reason",
		}, []string{"reason"}),
	}
	r := prometheus.NewRegistry()
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.mints),
		r.Register(m.metadataChanges),
		r.Register(m.configChanges),
		r.Register(m.rejections),
		gatherer.Register(metricsNamespace, r),
	)
	return m, errs.Err
}

func (m *controllerMetrics) reject(err error) {
	var reason string
	switch {
	case errors.Is(err, ErrUnauthorized):
		reason = "unauthorized"
	case errors.Is(err, ErrSupplyCapExceeded):
		reason = "supply_cap"
	case errors.Is(err, ErrAccountLimitExceeded):
		reason = "account_limit"
	case errors.Is(err, ErrTokenNotFound):
		reason = "token_not_found"
	case errors.Is(err, ErrMetadataTooLarge):
		reason = "metadata_too_large"
	default:
		reason = "other"
	}
	m.rejections.WithLabelValues(reason).Inc()
}
