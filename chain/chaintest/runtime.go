// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/ledger"
	"github.com/nftmint/mintvm/minting"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/uri"
)

var _ chain.Runtime = (*Runtime)(nil)

// Runtime wires the production components with a no-op logger and tracer.
type Runtime struct {
	controller *minting.Controller
	roles      *access.RoleTable
	ledger     *ledger.Ledger
}

func NewRuntime(t testing.TB) *Runtime {
	log := logging.NoLog{}
	roles := access.NewRoleTable(log)
	l := ledger.New(log)
	controller, err := minting.NewController(
		log,
		trace.Noop,
		metrics.NewPrefixGatherer(),
		roles,
		l,
		uri.NewComposer(),
	)
	require.NoError(t, err)
	return &Runtime{
		controller: controller,
		roles:      roles,
		ledger:     l,
	}
}

func (r *Runtime) Controller() *minting.Controller { return r.controller }

func (r *Runtime) Roles() *access.RoleTable { return r.roles }

func (r *Runtime) Ledger() *ledger.Ledger { return r.ledger }

// Setup initializes supply state in [mu] and makes [admin] an admin.
func (r *Runtime) Setup(ctx context.Context, t testing.TB, mu state.Mutable, admin codec.Address, maxSupply *uint64, limit uint32) {
	require := require.New(t)
	require.NoError(r.controller.Initialize(ctx, mu, maxSupply, limit))
	require.NoError(r.roles.SetRole(ctx, mu, access.AdminRole, admin))
}

// NewAddress returns a deterministic address for tests.
func NewAddress(b byte) codec.Address {
	var id [32]byte
	id[31] = b
	return codec.CreateAddress(0, id)
}
