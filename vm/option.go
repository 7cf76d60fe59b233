// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/api/metrics"

	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/workers"
)

type Option func(*options)

type options struct {
	gatherer metrics.MultiGatherer
	db       state.Database
	workers  workers.Workers
	maxTxs   int
}

// WithGatherer registers every metric of the VM with [gatherer].
func WithGatherer(gatherer metrics.MultiGatherer) Option {
	return func(o *options) {
		o.gatherer = gatherer
	}
}

// WithDatabase replaces the pebble database described by the config.
func WithDatabase(db state.Database) Option {
	return func(o *options) {
		o.db = db
	}
}

// WithSerialVerification verifies signatures on the calling goroutine.
func WithSerialVerification() Option {
	return func(o *options) {
		o.workers = workers.NewSerial()
	}
}

// WithMaxBatch caps the number of transactions accepted by a single [VM.Submit].
func WithMaxBatch(n int) Option {
	return func(o *options) {
		o.maxTxs = n
	}
}
