// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/consts"
	"github.com/nftmint/mintvm/state"
)

var (
	_ chain.Action = (*GrantRole)(nil)
	_ chain.Action = (*RevokeRole)(nil)
	_ chain.Action = (*RenounceRole)(nil)
)

// roleChange is the payload shared by the role actions.
type roleChange struct {
	Role    access.Role   `json:"role"`
	Account codec.Address `json:"account"`
}

func (*roleChange) Size() int {
	return consts.Uint32Len + codec.AddressLen
}

func (r *roleChange) Marshal(p *codec.Packer) {
	p.PackUint32(uint32(r.Role))
	p.PackAddress(r.Account)
}

func (r *roleChange) unmarshal(p *codec.Packer) {
	r.Role = access.Role(p.UnpackUint32(false))
	p.UnpackAddress(true, &r.Account)
}

type GrantRole struct {
	roleChange
}

func NewGrantRole(role access.Role, account codec.Address) *GrantRole {
	return &GrantRole{roleChange{Role: role, Account: account}}
}

func (*GrantRole) GetTypeID() uint8 {
	return consts.GrantRoleID
}

func (g *GrantRole) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, actor codec.Address, _ ids.ID) ([]byte, error) {
	return nil, rt.Roles().GrantRole(ctx, mu, actor, g.Role, g.Account)
}

func UnmarshalGrantRole(p *codec.Packer) (chain.Action, error) {
	var g GrantRole
	g.unmarshal(p)
	return &g, p.Err()
}

type RevokeRole struct {
	roleChange
}

func NewRevokeRole(role access.Role, account codec.Address) *RevokeRole {
	return &RevokeRole{roleChange{Role: role, Account: account}}
}

func (*RevokeRole) GetTypeID() uint8 {
	return consts.RevokeRoleID
}

func (r *RevokeRole) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, actor codec.Address, _ ids.ID) ([]byte, error) {
	return nil, rt.Roles().RevokeRole(ctx, mu, actor, r.Role, r.Account)
}

func UnmarshalRevokeRole(p *codec.Packer) (chain.Action, error) {
	var r RevokeRole
	r.unmarshal(p)
	return &r, p.Err()
}

// RenounceRole drops a role held by the signer. [Account] must be the
// signer's own address.
type RenounceRole struct {
	roleChange
}

func NewRenounceRole(role access.Role, account codec.Address) *RenounceRole {
	return &RenounceRole{roleChange{Role: role, Account: account}}
}

func (*RenounceRole) GetTypeID() uint8 {
	return consts.RenounceRoleID
}

func (r *RenounceRole) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, actor codec.Address, _ ids.ID) ([]byte, error) {
	return nil, rt.Roles().RenounceRole(ctx, mu, actor, r.Role, r.Account)
}

func UnmarshalRenounceRole(p *codec.Packer) (chain.Action, error) {
	var r RenounceRole
	r.unmarshal(p)
	return &r, p.Err()
}
