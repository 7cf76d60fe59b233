// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/avalanchego/api/metrics"

	"github.com/nftmint/mintvm/pebble"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/utils"
)

const stateNamespace = "statedb"

// New opens the state database under [dataDir]. When [inMemory] is set the
// database lives in memory and [cfg] is ignored. Pebble metrics are
// registered with [gatherer] under the state namespace.
func New(cfg pebble.Config, dataDir string, inMemory bool, gatherer metrics.MultiGatherer) (state.Database, error) {
	if inMemory {
		return state.NewMemDatabase(), nil
	}
	path, err := utils.InitSubDirectory(dataDir, stateNamespace)
	if err != nil {
		return nil, err
	}

	db, registry, err := pebble.New(path, cfg)
	if err != nil {
		return nil, err
	}

	if err := gatherer.Register(stateNamespace, registry); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
