// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/nftmint/mintvm/consts"

func BytesLen(msg []byte) int {
	return consts.IntLen + len(msg)
}

func StringLen(msg string) int {
	return consts.IntLen + len(msg)
}

// OptionalUint64Len is the packed size of an optional uint64.
func OptionalUint64Len(v *uint64) int {
	if v == nil {
		return consts.BoolLen
	}
	return consts.BoolLen + consts.Uint64Len
}
