// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keys encodes the value size bound of every state key into the key
// itself. The last two bytes of a key hold the maximum number of 64 byte
// chunks its value may occupy.
package keys

import (
	"encoding/binary"

	"github.com/nftmint/mintvm/consts"
)

const chunkSize = 64 // bytes

// Valid reports whether [key] is long enough to carry a chunk suffix.
func Valid(key string) bool {
	return len(key) >= consts.Uint16Len
}

// MaxChunks returns the chunk bound stored in the suffix of [key].
func MaxChunks(key string) (uint16, bool) {
	l := len(key)
	if l < consts.Uint16Len {
		return 0, false
	}
	return binary.BigEndian.Uint16([]byte(key[l-consts.Uint16Len:])), true
}

// NumChunks returns how many chunks [value] occupies.
func NumChunks(value []byte) (uint16, bool) {
	return chunksFor(len(value))
}

// ChunksFor returns the chunk bound needed for a value of [size] bytes.
func ChunksFor(size int) uint16 {
	n, ok := chunksFor(size)
	if !ok {
		return consts.MaxUint16
	}
	return n
}

func chunksFor(size int) (uint16, bool) {
	if size == 0 {
		return 0, true
	}
	raw := size/chunkSize + 1
	if raw > int(consts.MaxUint16) {
		return 0, false
	}
	return uint16(raw), true
}

// VerifyValue reports whether [value] fits within the bound encoded in [key].
func VerifyValue(key string, value []byte) bool {
	valueChunks, ok := NumChunks(value)
	if !ok {
		return false
	}
	keyChunks, ok := MaxChunks(key)
	if !ok {
		return false
	}
	return valueChunks <= keyChunks
}

// EncodeChunks appends [maxChunks] to [key].
func EncodeChunks(key []byte, maxChunks uint16) string {
	return string(binary.BigEndian.AppendUint16(key, maxChunks))
}
