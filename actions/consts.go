// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package actions holds the transaction payloads accepted by mintvm.
package actions

import (
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/consts"
)

// Register adds every action to [parser].
func Register(parser *codec.TypeParser[chain.Action]) error {
	for id, f := range map[uint8]func(*codec.Packer) (chain.Action, error){
		consts.MintID:               UnmarshalMint,
		consts.ChangeMetadataID:     UnmarshalChangeMetadata,
		consts.SetMaxSupplyID:       UnmarshalSetMaxSupply,
		consts.SetLimitPerAccountID: UnmarshalSetLimitPerAccount,
		consts.GrantRoleID:          UnmarshalGrantRole,
		consts.RevokeRoleID:         UnmarshalRevokeRole,
		consts.RenounceRoleID:       UnmarshalRenounceRole,
	} {
		if err := parser.Register(id, f); err != nil {
			return err
		}
	}
	return nil
}

// NewParser returns a parser that knows every action and the given auths.
func NewParser(registerAuths func(*codec.TypeParser[chain.Auth]) error) (*chain.Registry, error) {
	actionParser := codec.NewTypeParser[chain.Action]()
	if err := Register(actionParser); err != nil {
		return nil, err
	}
	authParser := codec.NewTypeParser[chain.Auth]()
	if err := registerAuths(authParser); err != nil {
		return nil, err
	}
	return chain.NewRegistry(actionParser, authParser), nil
}
