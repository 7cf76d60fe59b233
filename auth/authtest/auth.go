// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package authtest provides auths whose verification outcome is fixed.
package authtest

import (
	"context"

	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
)

// TestAuthID is outside of the range used by real auth types.
const TestAuthID uint8 = 0xFE

var (
	_ chain.Auth        = (*TestAuth)(nil)
	_ chain.AuthFactory = (*TestAuthFactory)(nil)
)

// TestAuth acts as [ActorAddr] and fails verification when [VerifyError] is
// set.
type TestAuth struct {
	ActorAddr   codec.Address
	VerifyError error
}

func (*TestAuth) GetTypeID() uint8 {
	return TestAuthID
}

func (m *TestAuth) Verify(context.Context, []byte) error {
	return m.VerifyError
}

func (m *TestAuth) Actor() codec.Address {
	return m.ActorAddr
}

func (*TestAuth) Size() int {
	return codec.AddressLen
}

func (m *TestAuth) Marshal(p *codec.Packer) {
	p.PackAddress(m.ActorAddr)
}

func UnmarshalTestAuth(p *codec.Packer) (chain.Auth, error) {
	var a TestAuth
	p.UnpackAddress(false, &a.ActorAddr)
	return &a, p.Err()
}

type TestAuthFactory struct {
	ActorAddr codec.Address
}

func (f TestAuthFactory) Sign([]byte) (chain.Auth, error) {
	return &TestAuth{ActorAddr: f.ActorAddr}, nil
}

func (f TestAuthFactory) Address() codec.Address {
	return f.ActorAddr
}
