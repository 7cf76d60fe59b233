// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
)

// Registration fails on a duplicate id, so ids are assigned explicitly.
const (
	ED25519ID   uint8 = 0
	SECP256R1ID uint8 = 1

	ED25519Key   = "ed25519"
	Secp256r1Key = "secp256r1"
)

// Engines returns the batch verifiers of every auth type that supports one.
func Engines() map[uint8]chain.AuthEngine {
	return map[uint8]chain.AuthEngine{
		ED25519ID: &ED25519AuthEngine{},
	}
}

// Register adds every auth type to [parser].
func Register(parser *codec.TypeParser[chain.Auth]) error {
	if err := parser.Register(ED25519ID, UnmarshalED25519); err != nil {
		return err
	}
	return parser.Register(SECP256R1ID, UnmarshalSECP256R1)
}
