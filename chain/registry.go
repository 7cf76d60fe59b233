// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/nftmint/mintvm/codec"

var _ Parser = (*Registry)(nil)

type Registry struct {
	actions *codec.TypeParser[Action]
	auths   *codec.TypeParser[Auth]
}

func NewRegistry(actions *codec.TypeParser[Action], auths *codec.TypeParser[Auth]) *Registry {
	return &Registry{
		actions: actions,
		auths:   auths,
	}
}

func (r *Registry) ActionRegistry() *codec.TypeParser[Action] {
	return r.actions
}

func (r *Registry) AuthRegistry() *codec.TypeParser[Auth] {
	return r.auths
}
