// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package uri

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
)

func TestTokenURI(t *testing.T) {
	tests := []struct {
		name     string
		baseURI  string
		id       codec.TokenID
		metadata string
		expected string
	}{
		{
			name:     "absolute metadata",
			baseURI:  "ipfs://base/",
			id:       1,
			metadata: "https://example.com/1.json",
			expected: "https://example.com/1.json",
		},
		{
			name:     "relative metadata",
			baseURI:  "ipfs://base/",
			id:       2,
			metadata: "custom.json",
			expected: "ipfs://base/custom.json",
		},
		{
			name:     "empty metadata",
			baseURI:  "ipfs://base/",
			id:       3,
			expected: "ipfs://base/3.json",
		},
		{
			name:     "no base uri",
			id:       4,
			metadata: "plain",
			expected: "plain",
		},
		{
			name: "nothing at all",
			id:   5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			mu := state.MutableStorage{}
			require.NoError(storage.SetCollection(ctx, mu, storage.Collection{Name: "c", Symbol: "C", BaseURI: tt.baseURI}))

			got, err := NewComposer().TokenURI(ctx, mu, tt.id, tt.metadata)
			require.NoError(err)
			require.Equal(tt.expected, got)
		})
	}
}
