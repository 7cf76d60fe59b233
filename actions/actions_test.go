// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/auth"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/chain/chaintest"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/ledger"
	"github.com/nftmint/mintvm/minting"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

var (
	admin = chaintest.NewAddress(1)
	alice = chaintest.NewAddress(2)
	bob   = chaintest.NewAddress(3)
)

func u64(v uint64) *uint64 { return &v }

// newState returns a store where [admin] may mint up to [maxSupply] tokens
// and each account may hold [limit].
func newState(t *testing.T, rt *chaintest.Runtime, maxSupply *uint64, limit uint32, minted ...codec.Address) state.MutableStorage {
	ctx := context.Background()
	store := state.MutableStorage{}
	rt.Setup(ctx, t, store, admin, maxSupply, limit)
	for _, to := range minted {
		_, err := rt.Controller().Mint(ctx, store, admin, to, "seed")
		require.NoError(t, err)
	}
	return store
}

func TestMintAction(t *testing.T) {
	ctx := context.Background()
	rt := chaintest.NewRuntime(t)

	tests := []chaintest.ActionTest{
		{
			Name:            "mints next token",
			Action:          &Mint{To: alice, Metadata: "ipfs://a"},
			Runtime:         rt,
			State:           newState(t, rt, u64(10), 0),
			Actor:           admin,
			ExpectedOutputs: codec.TokenID(1).Bytes(),
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				require := require.New(t)
				metadata, exists, err := storage.GetMetadata(ctx, mu, 1)
				require.NoError(err)
				require.True(exists)
				require.Equal("ipfs://a", metadata)
				bal, err := storage.GetBalance(ctx, mu, alice)
				require.NoError(err)
				require.Equal(uint64(1), bal)
			},
		},
		{
			Name:        "non admin",
			Action:      &Mint{To: alice},
			Runtime:     rt,
			State:       newState(t, rt, nil, 0),
			Actor:       bob,
			ExpectedErr: minting.ErrUnauthorized,
		},
		{
			Name:        "supply exhausted",
			Action:      &Mint{To: bob},
			Runtime:     rt,
			State:       newState(t, rt, u64(2), 0, alice, alice),
			Actor:       admin,
			ExpectedErr: minting.ErrSupplyCapExceeded,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				last, err := rt.Controller().LastTokenID(ctx, mu)
				require.NoError(t, err)
				require.Equal(t, uint64(2), last)
			},
		},
		{
			Name:        "account at limit",
			Action:      &Mint{To: alice},
			Runtime:     rt,
			State:       newState(t, rt, nil, 1, alice),
			Actor:       admin,
			ExpectedErr: minting.ErrAccountLimitExceeded,
		},
		{
			Name:        "empty recipient",
			Action:      &Mint{},
			Runtime:     rt,
			State:       newState(t, rt, nil, 0),
			Actor:       admin,
			ExpectedErr: ledger.ErrInvalidRecipient,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				_, exists, err := storage.GetMetadata(ctx, mu, 1)
				require.NoError(t, err)
				require.False(t, exists)
			},
		},
	}
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestChangeMetadataAction(t *testing.T) {
	ctx := context.Background()
	rt := chaintest.NewRuntime(t)

	tests := []chaintest.ActionTest{
		{
			Name:    "replaces metadata",
			Action:  &ChangeMetadata{TokenID: 1, Metadata: "ipfs://b"},
			Runtime: rt,
			State:   newState(t, rt, nil, 0, alice),
			Actor:   admin,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				metadata, _, err := rt.Controller().Metadata(ctx, mu, 1)
				require.NoError(t, err)
				require.Equal(t, "ipfs://b", metadata)
			},
		},
		{
			Name:        "unknown token",
			Action:      &ChangeMetadata{TokenID: 5, Metadata: "x"},
			Runtime:     rt,
			State:       newState(t, rt, nil, 0, alice),
			Actor:       admin,
			ExpectedErr: minting.ErrTokenNotFound,
		},
		{
			Name:        "non admin",
			Action:      &ChangeMetadata{TokenID: 1, Metadata: "x"},
			Runtime:     rt,
			State:       newState(t, rt, nil, 0, alice),
			Actor:       alice,
			ExpectedErr: minting.ErrUnauthorized,
		},
	}
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestSupplyConfigActions(t *testing.T) {
	ctx := context.Background()
	rt := chaintest.NewRuntime(t)

	tests := []chaintest.ActionTest{
		{
			Name:    "set cap",
			Action:  &SetMaxSupply{MaxSupply: u64(3)},
			Runtime: rt,
			State:   newState(t, rt, nil, 0),
			Actor:   admin,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				v, err := rt.Controller().MaxSupply(ctx, mu)
				require.NoError(t, err)
				require.Equal(t, u64(3), v)
			},
		},
		{
			Name:    "remove cap",
			Action:  &SetMaxSupply{},
			Runtime: rt,
			State:   newState(t, rt, u64(3), 0),
			Actor:   admin,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				v, err := rt.Controller().MaxSupply(ctx, mu)
				require.NoError(t, err)
				require.Nil(t, v)
			},
		},
		{
			Name:    "set limit",
			Action:  &SetLimitPerAccount{Limit: 4},
			Runtime: rt,
			State:   newState(t, rt, nil, 0),
			Actor:   admin,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				v, err := rt.Controller().LimitPerAccount(ctx, mu)
				require.NoError(t, err)
				require.Equal(t, uint32(4), v)
			},
		},
		{
			Name:        "limit by non admin",
			Action:      &SetLimitPerAccount{Limit: 4},
			Runtime:     rt,
			State:       newState(t, rt, nil, 0),
			Actor:       bob,
			ExpectedErr: minting.ErrUnauthorized,
		},
	}
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestRoleActions(t *testing.T) {
	ctx := context.Background()
	rt := chaintest.NewRuntime(t)

	hasAdmin := func(addr codec.Address, expected bool) func(context.Context, *testing.T, state.Mutable) {
		return func(ctx context.Context, t *testing.T, mu state.Mutable) {
			has, err := rt.Roles().HasRole(ctx, mu, access.AdminRole, addr)
			require.NoError(t, err)
			require.Equal(t, expected, has)
		}
	}
	withBobAdmin := func() state.Mutable {
		store := newState(t, rt, nil, 0)
		require.NoError(t, rt.Roles().SetRole(ctx, store, access.AdminRole, bob))
		return store
	}

	tests := []chaintest.ActionTest{
		{
			Name:      "grant",
			Action:    NewGrantRole(access.AdminRole, bob),
			Runtime:   rt,
			State:     newState(t, rt, nil, 0),
			Actor:     admin,
			Assertion: hasAdmin(bob, true),
		},
		{
			Name:        "grant twice",
			Action:      NewGrantRole(access.AdminRole, bob),
			Runtime:     rt,
			State:       withBobAdmin(),
			Actor:       admin,
			ExpectedErr: access.ErrRoleRedundant,
		},
		{
			Name:        "grant by non admin",
			Action:      NewGrantRole(access.AdminRole, alice),
			Runtime:     rt,
			State:       newState(t, rt, nil, 0),
			Actor:       alice,
			ExpectedErr: access.ErrMissingRole,
		},
		{
			Name:      "revoke",
			Action:    NewRevokeRole(access.AdminRole, bob),
			Runtime:   rt,
			State:     withBobAdmin(),
			Actor:     admin,
			Assertion: hasAdmin(bob, false),
		},
		{
			Name:      "renounce",
			Action:    NewRenounceRole(access.AdminRole, admin),
			Runtime:   rt,
			State:     newState(t, rt, nil, 0),
			Actor:     admin,
			Assertion: hasAdmin(admin, false),
		},
		{
			Name:        "renounce for someone else",
			Action:      NewRenounceRole(access.AdminRole, bob),
			Runtime:     rt,
			State:       withBobAdmin(),
			Actor:       admin,
			ExpectedErr: access.ErrInvalidCaller,
		},
	}
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestParseSignedActions(t *testing.T) {
	require := require.New(t)
	parser, err := NewParser(auth.Register)
	require.NoError(err)

	pk, err := auth.NewSECP256R1PrivateKeyFactory().GeneratePrivateKey()
	require.NoError(err)
	factory, err := auth.GetFactory(pk)
	require.NoError(err)

	for _, action := range []chain.Action{
		&Mint{To: alice, Metadata: "ipfs://a"},
		&ChangeMetadata{TokenID: 9, Metadata: ""},
		&SetMaxSupply{MaxSupply: u64(0)},
		&SetMaxSupply{},
		&SetLimitPerAccount{Limit: 2},
		NewGrantRole(access.AdminRole, bob),
		NewRevokeRole(7, bob),
		NewRenounceRole(access.AdminRole, admin),
	} {
		tx, err := chain.NewTx(1, action).Sign(factory, parser)
		require.NoError(err)
		parsed, err := chain.ParseTx(tx.Bytes(), parser)
		require.NoError(err)
		require.Equal(action, parsed.Action)
		require.Equal(pk.Address, parsed.Actor())
	}

	// oversized metadata never decodes
	tx := chain.NewTx(1, &Mint{To: alice, Metadata: string(make([]byte, minting.MaxMetadataSize+1))})
	signed, err := tx.Sign(factory, parser)
	require.ErrorIs(err, codec.ErrTooLarge)
	require.Nil(signed)
}

func BenchmarkMint(b *testing.B) {
	rt := chaintest.NewRuntime(b)
	bench := &chaintest.ActionBenchmark{
		Name:    "mint",
		Action:  &Mint{To: alice, Metadata: "ipfs://bench"},
		Runtime: rt,
		CreateState: func() state.Mutable {
			store := state.MutableStorage{}
			rt.Setup(context.Background(), b, store, admin, nil, 0)
			return store
		},
		Actor:           admin,
		TxID:            ids.Empty,
		ExpectedOutputs: codec.TokenID(1).Bytes(),
	}
	bench.Run(context.Background(), b)
}
