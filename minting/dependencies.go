// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package minting

import (
	"context"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/state"
)

type AccessControl interface {
	HasRole(ctx context.Context, im state.Immutable, role access.Role, addr codec.Address) (bool, error)
}

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_ledger.go . Ledger

// Ledger records ownership of minted tokens. Writes made by [Mint] must only
// go through [mu] so that a failed mint can be discarded as a whole.
type Ledger interface {
	Mint(ctx context.Context, mu state.Mutable, to codec.Address, id codec.TokenID) error
	BalanceOf(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error)
	OwnerOf(ctx context.Context, im state.Immutable, id codec.TokenID) (codec.Address, bool, error)
}

type URIComposer interface {
	TokenURI(ctx context.Context, im state.Immutable, id codec.TokenID, metadata string) (string, error)
}
