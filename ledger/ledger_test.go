// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

func TestMint(t *testing.T) {
	alice := codec.CreateAddress(0, ids.GenerateTestID())
	bob := codec.CreateAddress(0, ids.GenerateTestID())

	tests := []struct {
		name        string
		setup       func(state.MutableStorage)
		to          codec.Address
		id          codec.TokenID
		expectedErr error
		balance     uint64
		total       uint64
	}{
		{
			name:    "first token",
			to:      alice,
			id:      1,
			balance: 1,
			total:   1,
		},
		{
			name: "second token for same owner",
			setup: func(mu state.MutableStorage) {
				require.NoError(t, storage.SetOwner(context.Background(), mu, 1, alice))
				require.NoError(t, storage.SetBalance(context.Background(), mu, alice, 1))
				require.NoError(t, storage.SetTotalSupply(context.Background(), mu, 1))
			},
			to:      alice,
			id:      2,
			balance: 2,
			total:   2,
		},
		{
			name: "token already owned",
			setup: func(mu state.MutableStorage) {
				require.NoError(t, storage.SetOwner(context.Background(), mu, 1, bob))
			},
			to:          alice,
			id:          1,
			expectedErr: ErrTokenExists,
		},
		{
			name:        "empty recipient",
			to:          codec.EmptyAddress,
			id:          1,
			expectedErr: ErrInvalidRecipient,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			mu := state.MutableStorage{}
			if tt.setup != nil {
				tt.setup(mu)
			}
			l := New(logging.NoLog{})

			err := l.Mint(ctx, mu, tt.to, tt.id)
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr != nil {
				return
			}
			owner, exists, err := l.OwnerOf(ctx, mu, tt.id)
			require.NoError(err)
			require.True(exists)
			require.Equal(tt.to, owner)

			bal, err := l.BalanceOf(ctx, mu, tt.to)
			require.NoError(err)
			require.Equal(tt.balance, bal)

			total, err := l.TotalSupply(ctx, mu)
			require.NoError(err)
			require.Equal(tt.total, total)
		})
	}
}
