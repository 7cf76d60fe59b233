// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyValue(t *testing.T) {
	tests := []struct {
		name      string
		chunks    uint16
		valueSize int
		valid     bool
	}{
		{name: "empty value", chunks: 0, valueSize: 0, valid: true},
		{name: "single chunk", chunks: 1, valueSize: 63, valid: true},
		{name: "boundary spills over", chunks: 1, valueSize: 64, valid: false},
		{name: "two chunks", chunks: 2, valueSize: 64, valid: true},
		{name: "metadata bound", chunks: ChunksFor(2048), valueSize: 2048, valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			key := EncodeChunks([]byte{0x1, 0x2}, tt.chunks)
			require.True(Valid(key))
			n, ok := MaxChunks(key)
			require.True(ok)
			require.Equal(tt.chunks, n)
			require.Equal(tt.valid, VerifyValue(key, bytes.Repeat([]byte{0xa}, tt.valueSize)))
		})
	}
}

func TestMaxChunksShortKey(t *testing.T) {
	require := require.New(t)
	_, ok := MaxChunks("a")
	require.False(ok)
	require.False(Valid("a"))
	require.False(VerifyValue("a", nil))
}
