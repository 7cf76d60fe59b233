// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/rand"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519/extra/cache"
	"github.com/stretchr/testify/require"

	oed25519 "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/nftmint/mintvm/crypto"
)

var oed25519options = &oed25519.Options{
	Verify: oed25519.VerifyOptionsZIP_215,
}

func signedBatch(t testing.TB, n int, corrupt int) ([][]byte, []PublicKey, []Signature) {
	require := require.New(t)
	msgs := make([][]byte, n)
	pubs := make([]PublicKey, n)
	sigs := make([]Signature, n)
	for i := 0; i < n; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		msg := make([]byte, 96)
		_, err = rand.Read(msg)
		require.NoError(err)
		sig := Sign(msg, priv)
		if i == corrupt {
			sig[3]++
		}
		msgs[i] = msg
		pubs[i] = priv.PublicKey()
		sigs[i] = sig
	}
	return msgs, pubs, sigs
}

func TestGeneratePrivateKey(t *testing.T) {
	require := require.New(t)
	seen := map[PrivateKey]struct{}{}
	for i := 0; i < 8; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		require.NotEqual(EmptyPrivateKey, priv)
		require.NotContains(seen, priv)
		seen[priv] = struct{}{}

		// the public half is embedded after the seed
		pub := priv.PublicKey()
		require.Equal(priv[PrivateKeySeedLen:], pub[:])
	}
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err)

	msg := []byte("mint token 1")
	sig := Sign(msg, priv)
	require.True(Verify(msg, priv.PublicKey(), sig))
	require.False(Verify([]byte("mint token 2"), priv.PublicKey(), sig))

	other, err := GeneratePrivateKey()
	require.NoError(err)
	require.False(Verify(msg, other.PublicKey(), sig))
}

func TestKeyEncoding(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err)

	decoded, err := HexToKey(priv.ToHex())
	require.NoError(err)
	require.Equal(priv, decoded)

	_, err = HexToKey("abcd")
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)

	path := filepath.Join(t.TempDir(), "admin.pk")
	require.NoError(priv.Save(path))
	loaded, err := LoadKey(path)
	require.NoError(err)
	require.Equal(priv, loaded)
}

func TestBatch(t *testing.T) {
	tests := []struct {
		name    string
		corrupt int
		valid   bool
	}{
		{name: "all valid", corrupt: -1, valid: true},
		{name: "one invalid", corrupt: 5, valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			msgs, pubs, sigs := signedBatch(t, 64, tt.corrupt)
			bv := NewBatch(len(msgs))
			for i := range msgs {
				bv.Add(msgs[i], pubs[i], sigs[i])
			}
			err := bv.VerifyAsync()()
			if tt.valid {
				require.NoError(err)
				return
			}
			require.ErrorIs(err, crypto.ErrInvalidSignature)
		})
	}
}

func BenchmarkVerifySingle(b *testing.B) {
	msgs, pubs, sigs := signedBatch(b, 1, -1)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !Verify(msgs[0], pubs[0], sigs[0]) {
			b.Fatal("invalid signature")
		}
	}
}

func BenchmarkOasisVerifyCache(b *testing.B) {
	msgs, pubs, sigs := signedBatch(b, 1, -1)
	verifier := cache.NewVerifier(cache.NewLRUCache(16))
	verifier.AddPublicKey(pubs[0][:])
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !verifier.VerifyWithOptions(pubs[0][:], msgs[0], sigs[0][:], oed25519options) {
			b.Fatal("invalid signature")
		}
	}
}

func BenchmarkBatchVerify(b *testing.B) {
	for _, n := range []int{MinBatchSize, 64, 1024} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			msgs, pubs, sigs := signedBatch(b, n, -1)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				bv := NewBatch(n)
				for j := 0; j < n; j++ {
					bv.Add(msgs[j], pubs[j], sigs[j])
				}
				if !bv.Verify() {
					b.Fatal("invalid signature")
				}
			}
		})
	}
}
