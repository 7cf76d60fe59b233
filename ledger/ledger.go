// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger records token ownership for the collection.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

var (
	ErrTokenExists      = errors.New("token already exists")
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrInvalidBalance   = errors.New("invalid balance")
)

// Ledger is the ownership ledger backed by chain state.
type Ledger struct {
	log logging.Logger
}

func New(log logging.Logger) *Ledger {
	return &Ledger{log: log}
}

// Mint assigns [id] to [to] and updates the balance of [to] and the total
// supply. It fails if [id] already has an owner.
func (l *Ledger) Mint(ctx context.Context, mu state.Mutable, to codec.Address, id codec.TokenID) error {
	if to == codec.EmptyAddress {
		return ErrInvalidRecipient
	}
	_, exists, err := storage.GetOwner(ctx, mu, id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrTokenExists, id)
	}
	bal, err := storage.GetBalance(ctx, mu, to)
	if err != nil {
		return err
	}
	nbal, err := smath.Add(bal, 1)
	if err != nil {
		return fmt.Errorf("%w: could not add balance (addr=%s, bal=%d)", ErrInvalidBalance, to, bal)
	}
	total, err := storage.GetTotalSupply(ctx, mu)
	if err != nil {
		return err
	}
	ntotal, err := smath.Add(total, 1)
	if err != nil {
		return fmt.Errorf("%w: total supply overflow", ErrInvalidBalance)
	}
	if err := storage.SetOwner(ctx, mu, id, to); err != nil {
		return err
	}
	if err := storage.SetBalance(ctx, mu, to, nbal); err != nil {
		return err
	}
	if err := storage.SetTotalSupply(ctx, mu, ntotal); err != nil {
		return err
	}
	l.log.Debug("recorded ownership",
		zap.Stringer("token", id),
		zap.Stringer("owner", to),
		zap.Uint64("balance", nbal),
	)
	return nil
}

// OwnerOf returns the owner of [id] and whether the token exists.
func (*Ledger) OwnerOf(ctx context.Context, im state.Immutable, id codec.TokenID) (codec.Address, bool, error) {
	return storage.GetOwner(ctx, im, id)
}

// BalanceOf returns the number of tokens owned by [addr].
func (*Ledger) BalanceOf(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	return storage.GetBalance(ctx, im, addr)
}

// TotalSupply returns the number of tokens in existence.
func (*Ledger) TotalSupply(ctx context.Context, im state.Immutable) (uint64, error) {
	return storage.GetTotalSupply(ctx, im)
}
