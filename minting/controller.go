// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package minting controls how tokens enter circulation: who may mint, how
// many tokens may exist, how many a single account may hold and which
// metadata each token carries.
package minting

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	smath "github.com/ava-labs/avalanchego/utils/math"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

// MaxMetadataSize is the largest metadata accepted by [Controller.Mint] and
// [Controller.ChangeMetadata].
const MaxMetadataSize = storage.MaxMetadataSize

// Controller owns the supply state and the metadata map. Ownership is
// delegated to a [Ledger] and authorization to an [AccessControl].
//
// Every mutating operation takes the caller explicitly and either applies
// all of its writes to [state.Mutable] or none of them.
type Controller struct {
	log     logging.Logger
	tracer  trace.Tracer
	metrics *controllerMetrics

	access AccessControl
	ledger Ledger
	uris   URIComposer
}

func NewController(
	log logging.Logger,
	tracer trace.Tracer,
	gatherer metrics.MultiGatherer,
	access AccessControl,
	ledger Ledger,
	uris URIComposer,
) (*Controller, error) {
	m, err := newMetrics(gatherer)
	if err != nil {
		return nil, err
	}
	return &Controller{
		log:     log,
		tracer:  tracer,
		metrics: m,
		access:  access,
		ledger:  ledger,
		uris:    uris,
	}, nil
}

// Initialize stores the supply state of a freshly deployed collection: a
// zero counter and the provided caps.
func (*Controller) Initialize(ctx context.Context, mu state.Mutable, maxSupply *uint64, limitPerAccount uint32) error {
	return storage.SetSupply(ctx, mu, storage.Supply{
		MaxSupply:       maxSupply,
		LimitPerAccount: limitPerAccount,
	})
}

func (c *Controller) onlyAdmin(ctx context.Context, im state.Immutable, caller codec.Address) error {
	ok, err := c.access.HasRole(ctx, im, access.AdminRole, caller)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}
	return nil
}

func (c *Controller) reject(span oteltrace.Span, op string, err error) error {
	span.RecordError(err)
	c.metrics.reject(err)
	c.log.Debug("operation rejected",
		zap.String("op", op),
		zap.Error(err),
	)
	return err
}

// Mint creates the next token for [to] with [metadata] and returns its id.
//
// The admission checks, the ownership record, the counter increment and the
// metadata insert are staged together and written to [mu] only after every
// step succeeded. A write rejected by [mu] during that final flush may leave
// the earlier keys applied; callers running inside a transactional view roll
// it back on error.
func (c *Controller) Mint(
	ctx context.Context,
	mu state.Mutable,
	caller codec.Address,
	to codec.Address,
	metadata string,
) (codec.TokenID, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.Mint")
	defer span.End()

	if err := c.onlyAdmin(ctx, mu, caller); err != nil {
		return 0, c.reject(span, "mint", err)
	}
	if len(metadata) > MaxMetadataSize {
		return 0, c.reject(span, "mint", fmt.Errorf("%w: %d > %d", ErrMetadataTooLarge, len(metadata), MaxMetadataSize))
	}

	view := state.NewSimpleMutable(mu)
	supply, err := storage.GetSupply(ctx, view)
	if err != nil {
		return 0, err
	}

	// Supply check: would one more token exceed the cap?
	next, err := smath.Add(supply.LastTokenID, 1)
	if err != nil {
		return 0, c.reject(span, "mint", fmt.Errorf("%w: token ids exhausted", ErrSupplyCapExceeded))
	}
	if supply.MaxSupply != nil && next > *supply.MaxSupply {
		return 0, c.reject(span, "mint", fmt.Errorf("%w: %d > %d", ErrSupplyCapExceeded, next, *supply.MaxSupply))
	}

	// Per-account check: zero means no limit.
	if supply.LimitPerAccount > 0 {
		bal, err := c.ledger.BalanceOf(ctx, view, to)
		if err != nil {
			return 0, err
		}
		if bal >= uint64(supply.LimitPerAccount) {
			return 0, c.reject(span, "mint", fmt.Errorf("%w: %s holds %d of %d", ErrAccountLimitExceeded, to, bal, supply.LimitPerAccount))
		}
	}

	id := codec.TokenID(next)
	if err := c.ledger.Mint(ctx, view, to, id); err != nil {
		return 0, c.reject(span, "mint", err)
	}
	supply.LastTokenID = next
	if err := storage.SetSupply(ctx, view, supply); err != nil {
		return 0, err
	}
	if err := storage.SetMetadata(ctx, view, id, metadata); err != nil {
		return 0, err
	}
	if err := view.Commit(ctx); err != nil {
		return 0, err
	}

	span.SetAttributes(
		attribute.Stringer("to", to),
		attribute.Int64("token", int64(next)),
	)
	c.metrics.mints.Inc()
	c.log.Info("minted token",
		zap.Stringer("token", id),
		zap.Stringer("to", to),
		zap.Int("metadataSize", len(metadata)),
	)
	return id, nil
}

// ChangeMetadata replaces the metadata of [id]. Only tokens that received
// metadata through [Mint] can be changed; any other id is reported as
// [ErrTokenNotFound], even if the ledger knows its owner.
func (c *Controller) ChangeMetadata(
	ctx context.Context,
	mu state.Mutable,
	caller codec.Address,
	id codec.TokenID,
	metadata string,
) error {
	ctx, span := c.tracer.Start(ctx, "Controller.ChangeMetadata")
	defer span.End()

	if err := c.onlyAdmin(ctx, mu, caller); err != nil {
		return c.reject(span, "changeMetadata", err)
	}
	if len(metadata) > MaxMetadataSize {
		return c.reject(span, "changeMetadata", fmt.Errorf("%w: %d > %d", ErrMetadataTooLarge, len(metadata), MaxMetadataSize))
	}
	_, exists, err := storage.GetMetadata(ctx, mu, id)
	if err != nil {
		return err
	}
	if !exists {
		return c.reject(span, "changeMetadata", fmt.Errorf("%w: %s", ErrTokenNotFound, id))
	}
	if err := storage.SetMetadata(ctx, mu, id, metadata); err != nil {
		return err
	}

	span.SetAttributes(attribute.Int64("token", int64(id)))
	c.metrics.metadataChanges.Inc()
	c.log.Info("changed metadata",
		zap.Stringer("token", id),
		zap.Int("metadataSize", len(metadata)),
	)
	return nil
}

// SetMaxSupply overwrites the supply cap. A nil [value] removes the cap. A
// cap below the current count only blocks future mints.
func (c *Controller) SetMaxSupply(ctx context.Context, mu state.Mutable, caller codec.Address, value *uint64) error {
	ctx, span := c.tracer.Start(ctx, "Controller.SetMaxSupply")
	defer span.End()

	return c.updateSupply(ctx, span, mu, caller, "setMaxSupply", func(s *storage.Supply) {
		s.MaxSupply = value
	})
}

// SetLimitPerAccount overwrites the per-account cap. Zero disables it.
func (c *Controller) SetLimitPerAccount(ctx context.Context, mu state.Mutable, caller codec.Address, value uint32) error {
	ctx, span := c.tracer.Start(ctx, "Controller.SetLimitPerAccount")
	defer span.End()

	return c.updateSupply(ctx, span, mu, caller, "setLimitPerAccount", func(s *storage.Supply) {
		s.LimitPerAccount = value
	})
}

func (c *Controller) updateSupply(
	ctx context.Context,
	span oteltrace.Span,
	mu state.Mutable,
	caller codec.Address,
	op string,
	update func(*storage.Supply),
) error {
	if err := c.onlyAdmin(ctx, mu, caller); err != nil {
		return c.reject(span, op, err)
	}
	supply, err := storage.GetSupply(ctx, mu)
	if err != nil {
		return err
	}
	update(&supply)
	if err := storage.SetSupply(ctx, mu, supply); err != nil {
		return err
	}

	c.metrics.configChanges.Inc()
	fields := []zap.Field{
		zap.String("op", op),
		zap.Uint32("limitPerAccount", supply.LimitPerAccount),
	}
	if supply.MaxSupply != nil {
		fields = append(fields, zap.Uint64("maxSupply", *supply.MaxSupply))
	}
	c.log.Info("updated supply configuration", fields...)
	return nil
}

// LimitPerAccount returns the per-account cap. Zero means unlimited.
func (*Controller) LimitPerAccount(ctx context.Context, im state.Immutable) (uint32, error) {
	supply, err := storage.GetSupply(ctx, im)
	return supply.LimitPerAccount, err
}

// MaxSupply returns the supply cap or nil if there is none.
func (*Controller) MaxSupply(ctx context.Context, im state.Immutable) (*uint64, error) {
	supply, err := storage.GetSupply(ctx, im)
	return supply.MaxSupply, err
}

// LastTokenID returns the id of the most recently minted token, or zero if
// nothing was minted yet.
func (*Controller) LastTokenID(ctx context.Context, im state.Immutable) (uint64, error) {
	supply, err := storage.GetSupply(ctx, im)
	return supply.LastTokenID, err
}

// Metadata returns the metadata stored for [id] and whether it exists.
func (*Controller) Metadata(ctx context.Context, im state.Immutable, id codec.TokenID) (string, bool, error) {
	return storage.GetMetadata(ctx, im, id)
}

// TokenURI composes the URI of token [tokenID]. The token must have an
// owner in the ledger.
func (c *Controller) TokenURI(ctx context.Context, im state.Immutable, tokenID uint64) (string, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.TokenURI")
	defer span.End()

	id := codec.TokenID(tokenID)
	_, exists, err := c.ledger.OwnerOf(ctx, im, id)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, id)
	}
	metadata, _, err := storage.GetMetadata(ctx, im, id)
	if err != nil {
		return "", err
	}
	return c.uris.TokenURI(ctx, im, id, metadata)
}
