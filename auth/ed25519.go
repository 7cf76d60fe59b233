// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"

	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/crypto"
	"github.com/nftmint/mintvm/crypto/ed25519"
	"github.com/nftmint/mintvm/utils"
)

var _ chain.Auth = (*ED25519)(nil)

const ED25519Size = ed25519.PublicKeyLen + ed25519.SignatureLen

type ED25519 struct {
	Signer    ed25519.PublicKey `json:"signer"`
	Signature ed25519.Signature `json:"signature"`

	addr codec.Address
}

func (d *ED25519) address() codec.Address {
	if d.addr == codec.EmptyAddress {
		d.addr = NewED25519Address(d.Signer)
	}
	return d.addr
}

func (*ED25519) GetTypeID() uint8 {
	return ED25519ID
}

func (d *ED25519) Verify(_ context.Context, msg []byte) error {
	if !ed25519.Verify(msg, d.Signer, d.Signature) {
		return crypto.ErrInvalidSignature
	}
	return nil
}

func (d *ED25519) Actor() codec.Address {
	return d.address()
}

func (*ED25519) Size() int {
	return ED25519Size
}

func (d *ED25519) Marshal(p *codec.Packer) {
	p.PackFixedBytes(d.Signer[:])
	p.PackFixedBytes(d.Signature[:])
}

func UnmarshalED25519(p *codec.Packer) (chain.Auth, error) {
	var (
		d              ED25519
		signer, sigBuf []byte
	)
	p.UnpackFixedBytes(ed25519.PublicKeyLen, &signer)
	p.UnpackFixedBytes(ed25519.SignatureLen, &sigBuf)
	if err := p.Err(); err != nil {
		return nil, err
	}
	copy(d.Signer[:], signer)
	copy(d.Signature[:], sigBuf)
	return &d, nil
}

var _ chain.AuthFactory = (*ED25519Factory)(nil)

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

func (d *ED25519Factory) Sign(msg []byte) (chain.Auth, error) {
	sig := ed25519.Sign(msg, d.priv)
	return &ED25519{Signer: d.priv.PublicKey(), Signature: sig}, nil
}

func (d *ED25519Factory) Address() codec.Address {
	return NewED25519Address(d.priv.PublicKey())
}

func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(ED25519ID, utils.ToID(pk[:]))
}

var _ chain.AuthEngine = (*ED25519AuthEngine)(nil)

type ED25519AuthEngine struct{}

// GetBatchVerifier splits [count] signatures evenly across [cores], never
// using batches smaller than [ed25519.MinBatchSize].
func (*ED25519AuthEngine) GetBatchVerifier(cores int, count int) chain.AuthBatchVerifier {
	if cores < 1 {
		cores = 1
	}
	batchSize := max(count/cores, ed25519.MinBatchSize)
	return &ED25519BatchVerifier{batchSize: batchSize}
}

type ED25519BatchVerifier struct {
	batchSize int
	counter   int
	batch     *ed25519.Batch
}

func (b *ED25519BatchVerifier) Add(msg []byte, rauth chain.Auth) func() error {
	auth, ok := rauth.(*ED25519)
	if !ok {
		return func() error { return crypto.ErrInvalidSignature }
	}
	if b.batch == nil {
		b.batch = ed25519.NewBatch(b.batchSize)
	}
	b.batch.Add(msg, auth.Signer, auth.Signature)
	b.counter++
	if b.counter < b.batchSize {
		return nil
	}
	full := b.batch
	b.batch = nil
	b.counter = 0
	return full.VerifyAsync()
}

func (b *ED25519BatchVerifier) Done() []func() error {
	if b.batch == nil {
		return nil
	}
	last := b.batch
	b.batch = nil
	b.counter = 0
	return []func() error{last.VerifyAsync()}
}

type ED25519PrivateKeyFactory struct{}

func NewED25519PrivateKeyFactory() *ED25519PrivateKeyFactory {
	return &ED25519PrivateKeyFactory{}
}

func (*ED25519PrivateKeyFactory) GeneratePrivateKey() (*PrivateKey, error) {
	p, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Address: NewED25519Address(p.PublicKey()),
		Bytes:   p[:],
	}, nil
}

func (*ED25519PrivateKeyFactory) LoadPrivateKey(p []byte) (*PrivateKey, error) {
	if len(p) != ed25519.PrivateKeyLen {
		return nil, ErrInvalidPrivateKeySize
	}
	pk := ed25519.PrivateKey(p)
	return &PrivateKey{
		Address: NewED25519Address(pk.PublicKey()),
		Bytes:   p,
	}, nil
}
