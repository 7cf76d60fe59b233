// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis describes the initial state of a collection.
package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/minting"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

var (
	ErrMissingAdmin   = errors.New("missing admin")
	ErrFieldTooLarge  = errors.New("field too large")
	ErrMissingName    = errors.New("missing collection name")
	ErrInvalidGenesis = errors.New("invalid genesis")
)

type Genesis struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	BaseURI string `json:"baseURI"`

	// Admin receives [access.AdminRole].
	Admin codec.Address `json:"admin"`

	// MaxSupply is the initial supply cap. Null means uncapped.
	MaxSupply *uint64 `json:"maxSupply"`
	// LimitPerAccount is the initial per-account cap. Zero means unlimited.
	LimitPerAccount uint32 `json:"limitPerAccount"`
}

// Default returns the genesis of an uncapped collection administered by
// [admin].
func Default(admin codec.Address) *Genesis {
	return &Genesis{
		Name:   "mintvm",
		Symbol: "MINT",
		Admin:  admin,
	}
}

// New parses and validates a JSON genesis.
func New(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGenesis, err)
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genesis) Verify() error {
	if len(g.Name) == 0 {
		return ErrMissingName
	}
	for field, v := range map[string]string{
		"name":    g.Name,
		"symbol":  g.Symbol,
		"baseURI": g.BaseURI,
	} {
		if len(v) > storage.MaxCollectionFieldSize {
			return fmt.Errorf("%w: %s is %d bytes", ErrFieldTooLarge, field, len(v))
		}
	}
	if g.Admin == codec.EmptyAddress {
		return ErrMissingAdmin
	}
	return nil
}

func (g *Genesis) Bytes() ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Load writes the collection, the supply state and the admin role into [mu].
func (g *Genesis) Load(
	ctx context.Context,
	tracer trace.Tracer,
	mu state.Mutable,
	controller *minting.Controller,
	roles *access.RoleTable,
) error {
	ctx, span := tracer.Start(ctx, "Genesis.Load", oteltrace.WithAttributes(
		attribute.String("name", g.Name),
		attribute.Stringer("admin", g.Admin),
	))
	defer span.End()

	if err := g.Verify(); err != nil {
		return err
	}
	if err := storage.SetCollection(ctx, mu, storage.Collection{
		Name:    g.Name,
		Symbol:  g.Symbol,
		BaseURI: g.BaseURI,
	}); err != nil {
		return err
	}
	if err := controller.Initialize(ctx, mu, g.MaxSupply, g.LimitPerAccount); err != nil {
		return err
	}
	return roles.SetRole(ctx, mu, access.AdminRole, g.Admin)
}
