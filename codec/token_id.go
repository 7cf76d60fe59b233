// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/nftmint/mintvm/consts"
)

// TokenID identifies a single NFT. The n-th token minted through the
// collection is TokenID(n); zero is never assigned.
type TokenID uint64

// Bytes returns the big-endian encoding used inside state keys so that
// tokens sort in mint order.
func (t TokenID) Bytes() []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, consts.Uint64Len), uint64(t))
}

func (t TokenID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// ParseTokenID parses a decimal token id.
func ParseTokenID(s string) (TokenID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return TokenID(n), nil
}

// TokenIDFromBytes decodes the output of [TokenID.Bytes].
func TokenIDFromBytes(b []byte) (TokenID, error) {
	if len(b) != consts.Uint64Len {
		return 0, fmt.Errorf("%w: token id must be %d bytes", ErrInsufficientLength, consts.Uint64Len)
	}
	return TokenID(binary.BigEndian.Uint64(b)), nil
}
