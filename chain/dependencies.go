// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/minting"
	"github.com/nftmint/mintvm/state"
)

// Runtime exposes the components actions operate on.
type Runtime interface {
	Controller() *minting.Controller
	Roles() *access.RoleTable
}

type Marshaler interface {
	// Size is the number of bytes Marshal writes.
	Size() int
	Marshal(p *codec.Packer)
}

type Action interface {
	Marshaler

	// GetTypeID uniquely identifies the action on the wire.
	GetTypeID() uint8

	// Execute applies the action on behalf of [actor]. An error leaves [mu]
	// as it was before the call.
	//
	// The returned output is stored in the transaction receipt.
	Execute(
		ctx context.Context,
		rt Runtime,
		mu state.Mutable,
		actor codec.Address,
		txID ids.ID,
	) ([]byte, error)
}

type Auth interface {
	Marshaler

	GetTypeID() uint8

	// Verify checks that [msg] was authorized by Actor.
	Verify(ctx context.Context, msg []byte) error

	// Actor is the account the action runs as.
	Actor() codec.Address
}

type AuthFactory interface {
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}

// AuthBatchVerifier collects signatures of a single auth type. Add may
// return a verification job whenever a batch fills up and Done returns the
// jobs for what is left.
type AuthBatchVerifier interface {
	Add(msg []byte, auth Auth) func() error
	Done() []func() error
}

// AuthEngine lets an auth type verify signatures in batches.
type AuthEngine interface {
	GetBatchVerifier(cores int, count int) AuthBatchVerifier
}

type Parser interface {
	ActionRegistry() *codec.TypeParser[Action]
	AuthRegistry() *codec.TypeParser[Auth]
}
