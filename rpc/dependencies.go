// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/genesis"
	"github.com/nftmint/mintvm/storage"
)

// VM is the state machine served over JSON-RPC.
type VM interface {
	Genesis() *genesis.Genesis
	Tracer() trace.Tracer

	Submit(ctx context.Context, txs [][]byte) ([]*chain.Result, error)

	MaxSupply(ctx context.Context) (*uint64, error)
	LimitPerAccount(ctx context.Context) (uint32, error)
	LastTokenID(ctx context.Context) (uint64, error)
	TotalSupply(ctx context.Context) (uint64, error)
	TokenURI(ctx context.Context, tokenID uint64) (string, error)
	OwnerOf(ctx context.Context, tokenID uint64) (codec.Address, error)
	BalanceOf(ctx context.Context, addr codec.Address) (uint64, error)
	HasRole(ctx context.Context, role access.Role, addr codec.Address) (bool, error)
	Collection(ctx context.Context) (storage.Collection, error)
	Receipt(ctx context.Context, txID ids.ID) (storage.Receipt, bool, error)
}

