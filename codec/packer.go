// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// Packer is a wrapper struct for the Packer struct
// from avalanchego/utils/wrappers/packing.go. It adds the mintvm specific
// types (addresses, token ids, optional integers) and bounded unpacking.
type Packer struct {
	p *wrappers.Packer
}

// NewWriter returns a Packer that starts with [initial] bytes of capacity and
// refuses to grow past [limit].
func NewWriter(initial, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{
			Bytes:   make([]byte, 0, initial),
			MaxSize: limit,
		},
	}
}

// NewReader returns a Packer reading from [src]. [limit] bounds the number of
// bytes the reader may consume.
func NewReader(src []byte, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{
			Bytes:   src,
			MaxSize: limit,
		},
	}
}

func (p *Packer) Bytes() []byte {
	return p.p.Bytes
}

func (p *Packer) Offset() int {
	return p.p.Offset
}

// Empty returns true once every byte has been read.
func (p *Packer) Empty() bool {
	return p.p.Offset == len(p.p.Bytes)
}

func (p *Packer) Err() error {
	return p.p.Err
}

func (p *Packer) addErr(err error) {
	if p.p.Err == nil {
		p.p.Err = err
	}
}

func (p *Packer) PackByte(b byte) {
	p.p.PackByte(b)
}

func (p *Packer) UnpackByte() byte {
	return p.p.UnpackByte()
}

// PackFixedBytes writes [b] without a length prefix.
func (p *Packer) PackFixedBytes(b []byte) {
	p.p.PackFixedBytes(b)
}

func (p *Packer) UnpackFixedBytes(size int, dest *[]byte) {
	*dest = p.p.UnpackFixedBytes(size)
}

func (p *Packer) PackBool(b bool) {
	p.p.PackBool(b)
}

func (p *Packer) UnpackBool() bool {
	return p.p.UnpackBool()
}

func (p *Packer) PackUint32(v uint32) {
	p.p.PackInt(v)
}

func (p *Packer) UnpackUint32(required bool) uint32 {
	v := p.p.UnpackInt()
	if required && v == 0 {
		p.addErr(fmt.Errorf("%w: Uint32", ErrFieldNotPopulated))
	}
	return v
}

func (p *Packer) PackUint64(v uint64) {
	p.p.PackLong(v)
}

func (p *Packer) UnpackUint64(required bool) uint64 {
	v := p.p.UnpackLong()
	if required && v == 0 {
		p.addErr(fmt.Errorf("%w: Uint64", ErrFieldNotPopulated))
	}
	return v
}

// PackOptionalUint64 writes a presence flag followed by the value when [v]
// is non-nil.
func (p *Packer) PackOptionalUint64(v *uint64) {
	if v == nil {
		p.p.PackBool(false)
		return
	}
	p.p.PackBool(true)
	p.p.PackLong(*v)
}

func (p *Packer) UnpackOptionalUint64() *uint64 {
	flag := p.p.UnpackByte()
	switch flag {
	case 0:
		return nil
	case 1:
		v := p.p.UnpackLong()
		if p.p.Err != nil {
			return nil
		}
		return &v
	default:
		p.addErr(fmt.Errorf("%w: %d", ErrInvalidOptional, flag))
		return nil
	}
}

func (p *Packer) PackAddress(a Address) {
	p.p.PackFixedBytes(a[:])
}

// UnpackAddress decodes an address into [dest]. If [required] is set, the
// empty address is rejected.
func (p *Packer) UnpackAddress(required bool, dest *Address) {
	copy((*dest)[:], p.p.UnpackFixedBytes(AddressLen))
	if required && *dest == EmptyAddress {
		p.addErr(fmt.Errorf("%w: Address", ErrFieldNotPopulated))
	}
}

func (p *Packer) PackTokenID(id TokenID) {
	p.p.PackLong(uint64(id))
}

func (p *Packer) UnpackTokenID(required bool) TokenID {
	return TokenID(p.UnpackUint64(required))
}

func (p *Packer) PackBytes(b []byte) {
	p.p.PackBytes(b)
}

// UnpackBytes reads a length-prefixed byte slice of at most [limit] bytes.
// A negative [limit] disables the bound.
func (p *Packer) UnpackBytes(limit int, required bool, dest *[]byte) {
	b := p.p.UnpackBytes()
	if p.p.Err != nil {
		return
	}
	if limit >= 0 && len(b) > limit {
		p.addErr(fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), limit))
		return
	}
	if required && len(b) == 0 {
		p.addErr(fmt.Errorf("%w: Bytes", ErrFieldNotPopulated))
		return
	}
	*dest = b
}

func (p *Packer) PackString(s string) {
	p.p.PackBytes([]byte(s))
}

func (p *Packer) UnpackString(limit int, required bool) string {
	var b []byte
	p.UnpackBytes(limit, required, &b)
	return string(b)
}
