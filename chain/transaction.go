// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/units"

	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/consts"
	"github.com/nftmint/mintvm/utils"
)

// MaxTxSize bounds the encoded size of a signed transaction.
const MaxTxSize = 8 * units.KiB

// Transaction is a single signed action. [Nonce] lets an account submit the
// same action more than once: the transaction id, and therefore its receipt
// key, changes with it.
type Transaction struct {
	Nonce  uint64 `json:"nonce"`
	Action Action `json:"action"`
	Auth   Auth   `json:"auth"`

	digest []byte
	bytes  []byte
	id     ids.ID
}

func NewTx(nonce uint64, action Action) *Transaction {
	return &Transaction{
		Nonce:  nonce,
		Action: action,
	}
}

// Digest is the message signed by Auth.
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := consts.Uint64Len + consts.ByteLen + t.Action.Size()
	p := codec.NewWriter(size, MaxTxSize)
	t.marshalUnsigned(p)
	return p.Bytes(), p.Err()
}

func (t *Transaction) marshalUnsigned(p *codec.Packer) {
	p.PackUint64(t.Nonce)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
}

// Sign authorizes the transaction with [factory] and returns the decoded
// form of the signed bytes, so the result is exactly what a peer would see.
func (t *Transaction) Sign(factory AuthFactory, parser Parser) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	t.Auth = auth

	p := codec.NewWriter(t.Size(), MaxTxSize)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return UnmarshalTx(codec.NewReader(p.Bytes(), MaxTxSize), parser)
}

func (t *Transaction) Size() int {
	if len(t.bytes) > 0 {
		return len(t.bytes)
	}
	size := consts.Uint64Len + consts.ByteLen + t.Action.Size()
	if t.Auth != nil {
		size += consts.ByteLen + t.Auth.Size()
	}
	return size
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}
	if t.Auth == nil {
		return ErrMissingAuth
	}
	t.marshalUnsigned(p)
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

// Bytes is only populated on transactions returned by [UnmarshalTx] or
// [Transaction.Sign].
func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Actor() codec.Address { return t.Auth.Actor() }

func UnmarshalTx(p *codec.Packer, parser Parser) (*Transaction, error) {
	start := p.Offset()
	nonce := p.UnpackUint64(false)
	action, err := parser.ActionRegistry().Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal action", err)
	}
	digest := p.Offset()
	auth, err := parser.AuthRegistry().Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	b := p.Bytes()[start:p.Offset()]
	return &Transaction{
		Nonce:  nonce,
		Action: action,
		Auth:   auth,
		digest: b[:digest-start],
		bytes:  b,
		id:     utils.ToID(b),
	}, nil
}

// ParseTx decodes a single transaction and rejects trailing bytes.
func ParseTx(b []byte, parser Parser) (*Transaction, error) {
	p := codec.NewReader(b, MaxTxSize)
	tx, err := UnmarshalTx(p, parser)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidObject, len(b)-p.Offset())
	}
	return tx, nil
}
