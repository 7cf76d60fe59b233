// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/crypto/ed25519"
	"github.com/nftmint/mintvm/crypto/secp256r1"
)

var (
	ErrInvalidKeyType        = errors.New("invalid key type")
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")
)

// PrivateKey is a key of any supported type. The type is the first byte of
// [Address].
type PrivateKey struct {
	Address codec.Address
	Bytes   []byte
}

type PrivateKeyFactory interface {
	GeneratePrivateKey() (*PrivateKey, error)
	LoadPrivateKey([]byte) (*PrivateKey, error)
}

// GetPrivateKeyFactory maps a key name ("ed25519" or "secp256r1") to its
// factory.
func GetPrivateKeyFactory(keyType string) (PrivateKeyFactory, error) {
	switch strings.ToLower(keyType) {
	case ED25519Key:
		return NewED25519PrivateKeyFactory(), nil
	case Secp256r1Key:
		return NewSECP256R1PrivateKeyFactory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidKeyType, keyType)
	}
}

// GetFactory returns the [chain.AuthFactory] that signs with [pk].
func GetFactory(pk *PrivateKey) (chain.AuthFactory, error) {
	switch pk.Address[0] {
	case ED25519ID:
		if len(pk.Bytes) != ed25519.PrivateKeyLen {
			return nil, ErrInvalidPrivateKeySize
		}
		return NewED25519Factory(ed25519.PrivateKey(pk.Bytes)), nil
	case SECP256R1ID:
		if len(pk.Bytes) != secp256r1.PrivateKeyLen {
			return nil, ErrInvalidPrivateKeySize
		}
		return NewSECP256R1Factory(secp256r1.PrivateKey(pk.Bytes)), nil
	default:
		return nil, ErrInvalidKeyType
	}
}

// Save writes the key type followed by the hex encoded key to [filename].
func (p *PrivateKey) Save(filename string) error {
	name := ED25519Key
	if p.Address[0] == SECP256R1ID {
		name = Secp256r1Key
	}
	return os.WriteFile(filename, []byte(name+":"+hex.EncodeToString(p.Bytes)+"\n"), 0o600)
}

// LoadPrivateKey reads a key written by [PrivateKey.Save].
func LoadPrivateKey(filename string) (*PrivateKey, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	keyType, encoded, ok := strings.Cut(strings.TrimSpace(string(b)), ":")
	if !ok {
		return nil, fmt.Errorf("%w: missing key type", ErrInvalidKeyType)
	}
	return ParsePrivateKey(keyType, encoded)
}

// ParsePrivateKey decodes a hex key of [keyType].
func ParsePrivateKey(keyType string, encoded string) (*PrivateKey, error) {
	factory, err := GetPrivateKeyFactory(keyType)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		return nil, err
	}
	return factory.LoadPrivateKey(raw)
}
