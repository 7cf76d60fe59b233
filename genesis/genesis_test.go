// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/chain/chaintest"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

func TestNew(t *testing.T) {
	admin := chaintest.NewAddress(1)
	tests := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{
			name:  "valid",
			input: `{"name":"Apes","symbol":"APE","baseURI":"ipfs://base/","admin":"` + admin.String() + `","maxSupply":100,"limitPerAccount":2}`,
		},
		{
			name:        "missing admin",
			input:       `{"name":"Apes"}`,
			expectedErr: ErrMissingAdmin,
		},
		{
			name:        "missing name",
			input:       `{"admin":"` + admin.String() + `"}`,
			expectedErr: ErrMissingName,
		},
		{
			name:        "symbol too large",
			input:       `{"name":"Apes","symbol":"` + strings.Repeat("A", storage.MaxCollectionFieldSize+1) + `","admin":"` + admin.String() + `"}`,
			expectedErr: ErrFieldTooLarge,
		},
		{
			name:        "malformed",
			input:       `{"name":`,
			expectedErr: ErrInvalidGenesis,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New([]byte(tt.input))
			require.ErrorIs(t, err, tt.expectedErr)
			if tt.expectedErr == nil {
				require.Equal(t, admin, g.Admin)
				require.Equal(t, uint64(100), *g.MaxSupply)
				require.Equal(t, uint32(2), g.LimitPerAccount)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	admin := chaintest.NewAddress(1)
	rt := chaintest.NewRuntime(t)
	store := state.MutableStorage{}

	g := Default(admin)
	g.BaseURI = "https://example.com/"
	limit := uint64(5)
	g.MaxSupply = &limit

	b, err := g.Bytes()
	require.NoError(err)
	parsed, err := New(b)
	require.NoError(err)
	require.Equal(g, parsed)

	require.NoError(parsed.Load(ctx, trace.Noop, store, rt.Controller(), rt.Roles()))

	c, err := storage.GetCollection(ctx, store)
	require.NoError(err)
	require.Equal(storage.Collection{Name: "mintvm", Symbol: "MINT", BaseURI: "https://example.com/"}, c)

	maxSupply, err := rt.Controller().MaxSupply(ctx, store)
	require.NoError(err)
	require.Equal(&limit, maxSupply)

	isAdmin, err := rt.Roles().HasRole(ctx, store, access.AdminRole, admin)
	require.NoError(err)
	require.True(isAdmin)
}
