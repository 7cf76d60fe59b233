// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/consts"
	"github.com/nftmint/mintvm/state"
)

var (
	_ chain.Action = (*SetMaxSupply)(nil)
	_ chain.Action = (*SetLimitPerAccount)(nil)
)

// SetMaxSupply replaces the supply cap. A nil [MaxSupply] removes it.
type SetMaxSupply struct {
	MaxSupply *uint64 `json:"maxSupply"`
}

func (*SetMaxSupply) GetTypeID() uint8 {
	return consts.SetMaxSupplyID
}

func (s *SetMaxSupply) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	return nil, rt.Controller().SetMaxSupply(ctx, mu, actor, s.MaxSupply)
}

func (s *SetMaxSupply) Size() int {
	return codec.OptionalUint64Len(s.MaxSupply)
}

func (s *SetMaxSupply) Marshal(p *codec.Packer) {
	p.PackOptionalUint64(s.MaxSupply)
}

func UnmarshalSetMaxSupply(p *codec.Packer) (chain.Action, error) {
	var s SetMaxSupply
	s.MaxSupply = p.UnpackOptionalUint64()
	return &s, p.Err()
}

// SetLimitPerAccount replaces the per-account cap. Zero disables it.
type SetLimitPerAccount struct {
	Limit uint32 `json:"limit"`
}

func (*SetLimitPerAccount) GetTypeID() uint8 {
	return consts.SetLimitPerAccountID
}

func (s *SetLimitPerAccount) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	return nil, rt.Controller().SetLimitPerAccount(ctx, mu, actor, s.Limit)
}

func (*SetLimitPerAccount) Size() int {
	return consts.Uint32Len
}

func (s *SetLimitPerAccount) Marshal(p *codec.Packer) {
	p.PackUint32(s.Limit)
}

func UnmarshalSetLimitPerAccount(p *codec.Packer) (chain.Action, error) {
	var s SetLimitPerAccount
	s.Limit = p.UnpackUint32(false)
	return &s, p.Err()
}
