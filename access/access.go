// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package access implements role based access control for the collection.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

// Role identifies a capability. Accounts may hold any number of roles.
type Role uint32

// AdminRole is allowed to mint, edit metadata, change the supply
// configuration and manage roles.
const AdminRole Role = 0

var (
	ErrMissingRole   = errors.New("missing role")
	ErrRoleRedundant = errors.New("role redundant")
	ErrInvalidCaller = errors.New("invalid caller")
)

// RoleTable stores role membership in chain state.
type RoleTable struct {
	log logging.Logger
}

func NewRoleTable(log logging.Logger) *RoleTable {
	return &RoleTable{log: log}
}

func (*RoleTable) HasRole(ctx context.Context, im state.Immutable, role Role, addr codec.Address) (bool, error) {
	return storage.HasRole(ctx, im, uint32(role), addr)
}

// SetRole writes membership without any authorization check. It is used
// when loading genesis.
func (*RoleTable) SetRole(ctx context.Context, mu state.Mutable, role Role, addr codec.Address) error {
	return storage.SetRole(ctx, mu, uint32(role), addr, true)
}

// GrantRole gives [role] to [account]. [caller] must hold [AdminRole].
func (r *RoleTable) GrantRole(ctx context.Context, mu state.Mutable, caller codec.Address, role Role, account codec.Address) error {
	if err := r.checkAdmin(ctx, mu, caller); err != nil {
		return err
	}
	has, err := r.HasRole(ctx, mu, role, account)
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: %s already holds role %d", ErrRoleRedundant, account, role)
	}
	if err := storage.SetRole(ctx, mu, uint32(role), account, true); err != nil {
		return err
	}
	r.log.Info("role granted",
		zap.Uint32("role", uint32(role)),
		zap.Stringer("account", account),
		zap.Stringer("caller", caller),
	)
	return nil
}

// RevokeRole removes [role] from [account]. [caller] must hold [AdminRole].
func (r *RoleTable) RevokeRole(ctx context.Context, mu state.Mutable, caller codec.Address, role Role, account codec.Address) error {
	if err := r.checkAdmin(ctx, mu, caller); err != nil {
		return err
	}
	has, err := r.HasRole(ctx, mu, role, account)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: %s does not hold role %d", ErrMissingRole, account, role)
	}
	if err := storage.SetRole(ctx, mu, uint32(role), account, false); err != nil {
		return err
	}
	r.log.Info("role revoked",
		zap.Uint32("role", uint32(role)),
		zap.Stringer("account", account),
		zap.Stringer("caller", caller),
	)
	return nil
}

// RenounceRole removes [role] from [caller]. Only the holder may renounce,
// so [account] must equal [caller].
func (r *RoleTable) RenounceRole(ctx context.Context, mu state.Mutable, caller codec.Address, role Role, account codec.Address) error {
	if caller != account {
		return ErrInvalidCaller
	}
	has, err := r.HasRole(ctx, mu, role, account)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: %s does not hold role %d", ErrMissingRole, account, role)
	}
	if err := storage.SetRole(ctx, mu, uint32(role), account, false); err != nil {
		return err
	}
	r.log.Info("role renounced",
		zap.Uint32("role", uint32(role)),
		zap.Stringer("account", account),
	)
	return nil
}

func (r *RoleTable) checkAdmin(ctx context.Context, im state.Immutable, caller codec.Address) error {
	ok, err := r.HasRole(ctx, im, AdminRole, caller)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is not an admin", ErrMissingRole, caller)
	}
	return nil
}
