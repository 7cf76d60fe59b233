// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/near/borsh-go"

	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/consts"
	"github.com/nftmint/mintvm/keys"
	"github.com/nftmint/mintvm/state"
)

// State
// 0x0/ (supply)
//   -> borsh(lastTokenID|hasMaxSupply|maxSupply|limitPerAccount)
// 0x1/ (metadata)
//   -> [tokenID] => metadata
// 0x2/ (owner)
//   -> [tokenID] => address
// 0x3/ (balance)
//   -> [address] => count
// 0x4/ (total supply)
//   -> count
// 0x5/ (roles)
//   -> [role|address] => 0x1
// 0x6/ (collection)
//   -> name|symbol|baseURI
// 0x7/ (receipts)
//   -> [txID] => success|output|error

const (
	supplyPrefix byte = iota
	metadataPrefix
	ownerPrefix
	balancePrefix
	totalSupplyPrefix
	rolePrefix
	collectionPrefix
	receiptPrefix
)

const (
	// MaxMetadataSize bounds the metadata stored per token.
	MaxMetadataSize = 2048
	// MaxCollectionFieldSize bounds the collection name, symbol and base URI.
	MaxCollectionFieldSize = 256
	// MaxReceiptErrorSize bounds the error message kept in a receipt.
	MaxReceiptErrorSize = 256
	// MaxReceiptOutputSize bounds the action output kept in a receipt.
	MaxReceiptOutputSize = 64

	SupplyChunks      uint16 = 1
	MetadataChunks    uint16 = MaxMetadataSize/64 + 1
	OwnerChunks       uint16 = 1
	BalanceChunks     uint16 = 1
	TotalSupplyChunks uint16 = 1
	RoleChunks        uint16 = 1
	CollectionChunks  uint16 = (3*(consts.IntLen+MaxCollectionFieldSize))/64 + 1
	ReceiptChunks     uint16 = (consts.BoolLen+2*consts.IntLen+MaxReceiptOutputSize+MaxReceiptErrorSize)/64 + 1
)

var (
	ErrInvalidValue = errors.New("invalid stored value")

	presentByte = byte(0x1)
	failureByte = byte(0x0)
	successByte = byte(0x1)

	supplyKey      = keys.EncodeChunks([]byte{supplyPrefix}, SupplyChunks)
	totalSupplyKey = keys.EncodeChunks([]byte{totalSupplyPrefix}, TotalSupplyChunks)
	collectionKey  = keys.EncodeChunks([]byte{collectionPrefix}, CollectionChunks)
)

// Supply is the persisted minting configuration and counter.
type Supply struct {
	LastTokenID     uint64
	MaxSupply       *uint64
	LimitPerAccount uint32
}

// supplyRecord is the borsh form of [Supply]. borsh decodes a nil pointer
// as a pointer to zero, so presence of the cap is stored explicitly.
type supplyRecord struct {
	LastTokenID     uint64
	HasMaxSupply    bool
	MaxSupply       uint64
	LimitPerAccount uint32
}

func SupplyKey() []byte {
	return []byte(supplyKey)
}

// GetSupply returns the stored supply state. A chain that never stored one
// has no cap, no limit and no minted tokens.
func GetSupply(ctx context.Context, im state.Immutable) (Supply, error) {
	v, err := im.GetValue(ctx, SupplyKey())
	if errors.Is(err, database.ErrNotFound) {
		return Supply{}, nil
	}
	if err != nil {
		return Supply{}, err
	}
	var r supplyRecord
	if err := borsh.Deserialize(&r, v); err != nil {
		return Supply{}, fmt.Errorf("%w: supply: %w", ErrInvalidValue, err)
	}
	s := Supply{
		LastTokenID:     r.LastTokenID,
		LimitPerAccount: r.LimitPerAccount,
	}
	if r.HasMaxSupply {
		maxSupply := r.MaxSupply
		s.MaxSupply = &maxSupply
	}
	return s, nil
}

func SetSupply(ctx context.Context, mu state.Mutable, s Supply) error {
	r := supplyRecord{
		LastTokenID:     s.LastTokenID,
		LimitPerAccount: s.LimitPerAccount,
	}
	if s.MaxSupply != nil {
		r.HasMaxSupply = true
		r.MaxSupply = *s.MaxSupply
	}
	v, err := borsh.Serialize(r)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, SupplyKey(), v)
}

// [metadataPrefix] + [tokenID]
func MetadataKey(id codec.TokenID) []byte {
	k := make([]byte, 0, 1+consts.Uint64Len+consts.Uint16Len)
	k = append(k, metadataPrefix)
	k = append(k, id.Bytes()...)
	return []byte(keys.EncodeChunks(k, MetadataChunks))
}

// GetMetadata returns the metadata stored for [id] and whether an entry
// exists. An entry may exist and be empty.
func GetMetadata(ctx context.Context, im state.Immutable, id codec.TokenID) (string, bool, error) {
	v, err := im.GetValue(ctx, MetadataKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if len(v) == 0 || v[0] != presentByte {
		return "", false, fmt.Errorf("%w: metadata of token %s", ErrInvalidValue, id)
	}
	return string(v[1:]), true, nil
}

// SetMetadata stores [metadata] for [id]. Values carry a marker byte so that
// empty metadata remains distinguishable from a missing entry.
func SetMetadata(ctx context.Context, mu state.Mutable, id codec.TokenID, metadata string) error {
	v := make([]byte, 0, 1+len(metadata))
	v = append(v, presentByte)
	v = append(v, metadata...)
	return mu.Insert(ctx, MetadataKey(id), v)
}

// [ownerPrefix] + [tokenID]
func OwnerKey(id codec.TokenID) []byte {
	k := make([]byte, 0, 1+consts.Uint64Len+consts.Uint16Len)
	k = append(k, ownerPrefix)
	k = append(k, id.Bytes()...)
	return []byte(keys.EncodeChunks(k, OwnerChunks))
}

func GetOwner(ctx context.Context, im state.Immutable, id codec.TokenID) (codec.Address, bool, error) {
	v, err := im.GetValue(ctx, OwnerKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, false, err
	}
	if len(v) != codec.AddressLen {
		return codec.EmptyAddress, false, fmt.Errorf("%w: owner of token %s", ErrInvalidValue, id)
	}
	return codec.Address(v), true, nil
}

func SetOwner(ctx context.Context, mu state.Mutable, id codec.TokenID, owner codec.Address) error {
	return mu.Insert(ctx, OwnerKey(id), owner[:])
}

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) []byte {
	k := make([]byte, 0, 1+codec.AddressLen+consts.Uint16Len)
	k = append(k, balancePrefix)
	k = append(k, addr[:]...)
	return []byte(keys.EncodeChunks(k, BalanceChunks))
}

// GetBalance returns the number of tokens held by [addr].
func GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	return getCount(ctx, im, BalanceKey(addr))
}

// SetBalance stores the token count of [addr]. A zero balance removes the
// record instead of storing 0.
func SetBalance(ctx context.Context, mu state.Mutable, addr codec.Address, balance uint64) error {
	k := BalanceKey(addr)
	if balance == 0 {
		return mu.Remove(ctx, k)
	}
	return mu.Insert(ctx, k, database.PackUInt64(balance))
}

func TotalSupplyKey() []byte {
	return []byte(totalSupplyKey)
}

func GetTotalSupply(ctx context.Context, im state.Immutable) (uint64, error) {
	return getCount(ctx, im, TotalSupplyKey())
}

func SetTotalSupply(ctx context.Context, mu state.Mutable, total uint64) error {
	return mu.Insert(ctx, TotalSupplyKey(), database.PackUInt64(total))
}

func getCount(ctx context.Context, im state.Immutable, k []byte) (uint64, error) {
	v, err := im.GetValue(ctx, k)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := database.ParseUInt64(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return n, nil
}

// [rolePrefix] + [role] + [address]
func RoleKey(role uint32, addr codec.Address) []byte {
	k := make([]byte, 0, 1+consts.Uint32Len+codec.AddressLen+consts.Uint16Len)
	k = append(k, rolePrefix)
	k = append(k, byte(role>>24), byte(role>>16), byte(role>>8), byte(role))
	k = append(k, addr[:]...)
	return []byte(keys.EncodeChunks(k, RoleChunks))
}

func HasRole(ctx context.Context, im state.Immutable, role uint32, addr codec.Address) (bool, error) {
	_, err := im.GetValue(ctx, RoleKey(role, addr))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// SetRole grants [role] to [addr] when [granted] is set and removes it
// otherwise.
func SetRole(ctx context.Context, mu state.Mutable, role uint32, addr codec.Address, granted bool) error {
	k := RoleKey(role, addr)
	if !granted {
		return mu.Remove(ctx, k)
	}
	return mu.Insert(ctx, k, []byte{presentByte})
}

// Collection holds the descriptive attributes of the NFT collection.
type Collection struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	BaseURI string `json:"baseURI"`
}

func CollectionKey() []byte {
	return []byte(collectionKey)
}

func GetCollection(ctx context.Context, im state.Immutable) (Collection, error) {
	v, err := im.GetValue(ctx, CollectionKey())
	if errors.Is(err, database.ErrNotFound) {
		return Collection{}, nil
	}
	if err != nil {
		return Collection{}, err
	}
	p := codec.NewReader(v, len(v))
	c := Collection{
		Name:    p.UnpackString(MaxCollectionFieldSize, false),
		Symbol:  p.UnpackString(MaxCollectionFieldSize, false),
		BaseURI: p.UnpackString(MaxCollectionFieldSize, false),
	}
	if err := p.Err(); err != nil {
		return Collection{}, fmt.Errorf("%w: collection: %w", ErrInvalidValue, err)
	}
	return c, nil
}

func SetCollection(ctx context.Context, mu state.Mutable, c Collection) error {
	size := codec.StringLen(c.Name) + codec.StringLen(c.Symbol) + codec.StringLen(c.BaseURI)
	p := codec.NewWriter(size, size)
	p.PackString(c.Name)
	p.PackString(c.Symbol)
	p.PackString(c.BaseURI)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, CollectionKey(), p.Bytes())
}

// Receipt records the outcome of an executed transaction.
type Receipt struct {
	Success bool   `json:"success"`
	Output  []byte `json:"output"`
	Error   string `json:"error"`
}

// [receiptPrefix] + [txID]
func ReceiptKey(txID ids.ID) []byte {
	k := make([]byte, 0, 1+consts.IDLen+consts.Uint16Len)
	k = append(k, receiptPrefix)
	k = append(k, txID[:]...)
	return []byte(keys.EncodeChunks(k, ReceiptChunks))
}

// StoreReceipt writes [r] for [txID]. Oversized outputs and error messages
// are truncated to fit the key.
func StoreReceipt(ctx context.Context, mu state.Mutable, txID ids.ID, r Receipt) error {
	output := r.Output
	if len(output) > MaxReceiptOutputSize {
		output = output[:MaxReceiptOutputSize]
	}
	msg := truncateString(r.Error, MaxReceiptErrorSize)
	size := consts.BoolLen + codec.BytesLen(output) + codec.StringLen(msg)
	p := codec.NewWriter(size, size)
	if r.Success {
		p.PackByte(successByte)
	} else {
		p.PackByte(failureByte)
	}
	p.PackBytes(output)
	p.PackString(msg)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, ReceiptKey(txID), p.Bytes())
}

// truncateString cuts [s] to at most [limit] bytes without splitting a
// multi-byte character.
func truncateString(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	i := limit
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i]
}

// GetReceipt returns the receipt of [txID] and whether one exists.
func GetReceipt(ctx context.Context, im state.Immutable, txID ids.ID) (Receipt, bool, error) {
	v, err := im.GetValue(ctx, ReceiptKey(txID))
	if errors.Is(err, database.ErrNotFound) {
		return Receipt{}, false, nil
	}
	if err != nil {
		return Receipt{}, false, err
	}
	p := codec.NewReader(v, len(v))
	var r Receipt
	r.Success = p.UnpackByte() == successByte
	p.UnpackBytes(MaxReceiptOutputSize, false, &r.Output)
	r.Error = p.UnpackString(MaxReceiptErrorSize, false)
	if err := p.Err(); err != nil {
		return Receipt{}, false, fmt.Errorf("%w: receipt %s: %w", ErrInvalidValue, txID, err)
	}
	return r, true, nil
}
