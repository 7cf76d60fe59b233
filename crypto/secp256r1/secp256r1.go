// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256r1

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"os"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/nftmint/mintvm/crypto"
)

const (
	PublicKeyLen  = 33 // compressed
	PrivateKeyLen = 32
	SignatureLen  = 64 // r || s

	rsLen = 32
)

type (
	PublicKey  [PublicKeyLen]byte
	PrivateKey [PrivateKeyLen]byte
	Signature  [SignatureLen]byte
)

var (
	EmptyPublicKey  = [PublicKeyLen]byte{}
	EmptyPrivateKey = [PrivateKeyLen]byte{}
	EmptySignature  = [SignatureLen]byte{}

	curve     = elliptic.P256()
	order     = curve.Params().N
	halfOrder = new(big.Int).Rsh(order, 1)
)

// IsNormalized reports whether [s] is in the lower half of the curve order.
// Only normalized signatures verify, which removes malleability.
func IsNormalized(s *big.Int) bool {
	return s.Cmp(halfOrder) != 1
}

// NormalizeSignature maps [s] into the lower half of the curve order.
func NormalizeSignature(s *big.Int) *big.Int {
	if IsNormalized(s) {
		return s
	}
	return new(big.Int).Sub(order, s)
}

// ParseASN1Signature parses a DER encoded signature. The values are not
// normalized.
func ParseASN1Signature(sig []byte) (r, s []byte, err error) {
	var inner cryptobyte.String
	input := cryptobyte.String(sig)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(&r) ||
		!inner.ReadASN1Integer(&s) ||
		!inner.Empty() {
		return nil, nil, crypto.ErrInvalidSignature
	}
	return r, s, nil
}

// SignatureFromASN1 converts a DER signature into the fixed width, normalized
// form accepted by Verify.
func SignatureFromASN1(der []byte) (Signature, error) {
	rb, sb, err := ParseASN1Signature(der)
	if err != nil {
		return EmptySignature, err
	}
	if len(rb) > rsLen || len(sb) > rsLen {
		return EmptySignature, crypto.ErrInvalidSignature
	}
	s := NormalizeSignature(new(big.Int).SetBytes(sb))
	var sig Signature
	new(big.Int).SetBytes(rb).FillBytes(sig[:rsLen])
	s.FillBytes(sig[rsLen:])
	return sig, nil
}

func GeneratePrivateKey() (PrivateKey, error) {
	k, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return EmptyPrivateKey, err
	}
	var p PrivateKey
	k.D.FillBytes(p[:])
	return p, nil
}

func (p PrivateKey) PublicKey() PublicKey {
	x, y := curve.ScalarBaseMult(p[:])
	return PublicKey(elliptic.MarshalCompressed(curve, x, y))
}

func (p PrivateKey) ToHex() string {
	return hex.EncodeToString(p[:])
}

// Save writes p to [filename] with 0o600 permissions.
func (p PrivateKey) Save(filename string) error {
	return os.WriteFile(filename, p[:], 0o600)
}

func LoadKey(filename string) (PrivateKey, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return EmptyPrivateKey, err
	}
	if len(b) != PrivateKeyLen {
		return EmptyPrivateKey, crypto.ErrInvalidPrivateKey
	}
	return PrivateKey(b), nil
}

func HexToKey(key string) (PrivateKey, error) {
	b, err := hex.DecodeString(key)
	if err != nil {
		return EmptyPrivateKey, err
	}
	if len(b) != PrivateKeyLen {
		return EmptyPrivateKey, crypto.ErrInvalidPrivateKey
	}
	return PrivateKey(b), nil
}

// Sign signs the sha256 digest of [msg]. The returned signature is normalized.
func Sign(msg []byte, pk PrivateKey) (Signature, error) {
	x, y := curve.ScalarBaseMult(pk[:])
	priv := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		D:         new(big.Int).SetBytes(pk[:]),
	}
	digest := sha256.Sum256(msg)
	der, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		return EmptySignature, err
	}
	return SignatureFromASN1(der)
}

// Verify reports whether [sig] is a valid, normalized signature of [msg] by
// [p].
func Verify(msg []byte, p PublicKey, sig Signature) bool {
	x, y := elliptic.UnmarshalCompressed(curve, p[:])
	if x == nil {
		return false
	}
	r := new(big.Int).SetBytes(sig[:rsLen])
	s := new(big.Int).SetBytes(sig[rsLen:])
	if !IsNormalized(s) {
		return false
	}
	digest := sha256.Sum256(msg)
	return ecdsa.Verify(&ecdsa.PublicKey{Curve: curve, X: x, Y: y}, digest[:], r, s)
}
