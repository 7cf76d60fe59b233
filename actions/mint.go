// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/consts"
	"github.com/nftmint/mintvm/minting"
	"github.com/nftmint/mintvm/state"
)

var _ chain.Action = (*Mint)(nil)

// Mint creates the next token for [To]. The output is the big endian id of
// the new token.
type Mint struct {
	To       codec.Address `json:"to"`
	Metadata string        `json:"metadata"`
}

func (*Mint) GetTypeID() uint8 {
	return consts.MintID
}

func (m *Mint) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	id, err := rt.Controller().Mint(ctx, mu, actor, m.To, m.Metadata)
	if err != nil {
		return nil, err
	}
	return id.Bytes(), nil
}

func (m *Mint) Size() int {
	return codec.AddressLen + codec.StringLen(m.Metadata)
}

func (m *Mint) Marshal(p *codec.Packer) {
	p.PackAddress(m.To)
	p.PackString(m.Metadata)
}

func UnmarshalMint(p *codec.Packer) (chain.Action, error) {
	var mint Mint
	p.UnpackAddress(false, &mint.To)
	mint.Metadata = p.UnpackString(minting.MaxMetadataSize, false)
	return &mint, p.Err()
}
