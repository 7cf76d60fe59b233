// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/consts"
	"github.com/nftmint/mintvm/crypto"
)

func TestFactories(t *testing.T) {
	for _, keyType := range []string{ED25519Key, Secp256r1Key} {
		t.Run(keyType, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			keyFactory, err := GetPrivateKeyFactory(keyType)
			require.NoError(err)
			pk, err := keyFactory.GeneratePrivateKey()
			require.NoError(err)

			factory, err := GetFactory(pk)
			require.NoError(err)
			require.Equal(pk.Address, factory.Address())

			msg := []byte("mint")
			a, err := factory.Sign(msg)
			require.NoError(err)
			require.Equal(pk.Address, a.Actor())
			require.NoError(a.Verify(ctx, msg))
			require.ErrorIs(a.Verify(ctx, []byte("burn")), crypto.ErrInvalidSignature)

			// round trip through the registry
			parser := codec.NewTypeParser[chain.Auth]()
			require.NoError(Register(parser))
			p := codec.NewWriter(a.Size()+1, consts.MaxInt)
			p.PackByte(a.GetTypeID())
			a.Marshal(p)
			require.NoError(p.Err())
			require.Len(p.Bytes(), a.Size()+1)

			decoded, err := parser.Unmarshal(codec.NewReader(p.Bytes(), consts.MaxInt))
			require.NoError(err)
			require.Equal(a.Actor(), decoded.Actor())
			require.NoError(decoded.Verify(ctx, msg))
		})
	}
}

func TestKeyFile(t *testing.T) {
	require := require.New(t)
	for _, keyType := range []string{ED25519Key, Secp256r1Key} {
		keyFactory, err := GetPrivateKeyFactory(keyType)
		require.NoError(err)
		pk, err := keyFactory.GeneratePrivateKey()
		require.NoError(err)

		path := filepath.Join(t.TempDir(), keyType+".pk")
		require.NoError(pk.Save(path))
		loaded, err := LoadPrivateKey(path)
		require.NoError(err)
		require.Equal(pk.Address, loaded.Address)
		require.Equal(pk.Bytes, loaded.Bytes)
	}

	_, err := GetPrivateKeyFactory("bls")
	require.ErrorIs(err, ErrInvalidKeyType)

	_, err = ParsePrivateKey(ED25519Key, "00ff")
	require.ErrorIs(err, ErrInvalidPrivateKeySize)
}

func TestED25519BatchVerifier(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		cores   int
		corrupt int
		jobs    int
	}{
		{name: "single partial batch", count: 3, cores: 4, corrupt: -1, jobs: 1},
		{name: "split across cores", count: 32, cores: 4, corrupt: -1, jobs: 4},
		{name: "corrupt signature", count: 8, cores: 1, corrupt: 2, jobs: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			keyFactory := NewED25519PrivateKeyFactory()
			bv := (&ED25519AuthEngine{}).GetBatchVerifier(tt.cores, tt.count)

			var verifiers []func() error
			for i := 0; i < tt.count; i++ {
				pk, err := keyFactory.GeneratePrivateKey()
				require.NoError(err)
				factory, err := GetFactory(pk)
				require.NoError(err)
				msg := []byte{byte(i)}
				a, err := factory.Sign(msg)
				require.NoError(err)
				if i == tt.corrupt {
					a.(*ED25519).Signature[0]++
				}
				if f := bv.Add(msg, a); f != nil {
					verifiers = append(verifiers, f)
				}
			}
			verifiers = append(verifiers, bv.Done()...)
			require.Len(verifiers, tt.jobs)

			var failed bool
			for _, f := range verifiers {
				if err := f(); err != nil {
					require.ErrorIs(err, crypto.ErrInvalidSignature)
					failed = true
				}
			}
			require.Equal(tt.corrupt >= 0, failed)
		})
	}
}
