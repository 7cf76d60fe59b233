// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Name is used as the JSON-RPC service name and the logger prefix.
	Name = "mintvm"

	ByteLen   = 1
	BoolLen   = 1
	IntLen    = 4
	Uint16Len = 2
	Uint32Len = 4
	Uint64Len = 8
	IDLen     = 32

	MaxUint16 = ^uint16(0)
	MaxUint32 = ^uint32(0)
	MaxUint64 = ^uint64(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)
)

// Action type IDs. These are part of the wire format and must never be reused.
const (
	MintID uint8 = iota
	ChangeMetadataID
	SetMaxSupplyID
	SetLimitPerAccountID
	GrantRoleID
	RevokeRoleID
	RenounceRoleID
)
