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

var _ chain.Action = (*ChangeMetadata)(nil)

type ChangeMetadata struct {
	TokenID  codec.TokenID `json:"tokenID"`
	Metadata string        `json:"metadata"`
}

func (*ChangeMetadata) GetTypeID() uint8 {
	return consts.ChangeMetadataID
}

func (c *ChangeMetadata) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	return nil, rt.Controller().ChangeMetadata(ctx, mu, actor, c.TokenID, c.Metadata)
}

func (c *ChangeMetadata) Size() int {
	return consts.Uint64Len + codec.StringLen(c.Metadata)
}

func (c *ChangeMetadata) Marshal(p *codec.Packer) {
	p.PackTokenID(c.TokenID)
	p.PackString(c.Metadata)
}

func UnmarshalChangeMetadata(p *codec.Packer) (chain.Action, error) {
	var c ChangeMetadata
	c.TokenID = p.UnpackTokenID(false)
	c.Metadata = p.UnpackString(minting.MaxMetadataSize, false)
	return &c, p.Err()
}
