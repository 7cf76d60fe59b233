// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package uri turns stored token metadata into a token URI.
package uri

import (
	"context"
	"strings"

	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

const schemeSeparator = "://"

// Composer resolves metadata against the collection base URI.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// TokenURI returns the URI of [id]:
//   - metadata with a scheme is returned unchanged
//   - other non-empty metadata is appended to the base URI
//   - empty metadata yields baseURI + id + ".json"
//
// Without a base URI the metadata is returned as stored.
func (*Composer) TokenURI(ctx context.Context, im state.Immutable, id codec.TokenID, metadata string) (string, error) {
	if strings.Contains(metadata, schemeSeparator) {
		return metadata, nil
	}
	c, err := storage.GetCollection(ctx, im)
	if err != nil {
		return "", err
	}
	if len(c.BaseURI) == 0 {
		return metadata, nil
	}
	if len(metadata) == 0 {
		return c.BaseURI + id.String() + ".json", nil
	}
	return c.BaseURI + metadata, nil
}
