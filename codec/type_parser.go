// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// TypeParser maps a one byte type id to the decoder of that type.
type TypeParser[T any] struct {
	indexToDecoder map[uint8]func(*Packer) (T, error)
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]func(*Packer) (T, error){},
	}
}

// Register associates [f] with [id]. Ids are part of the wire format and are
// assigned explicitly.
func (p *TypeParser[T]) Register(id uint8, f func(*Packer) (T, error)) error {
	if _, ok := p.indexToDecoder[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateItem, id)
	}
	p.indexToDecoder[id] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(id uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[id]
	return f, ok
}

// Unmarshal reads a type id from [pk] and decodes the value that follows.
func (p *TypeParser[T]) Unmarshal(pk *Packer) (T, error) {
	var empty T
	id := pk.UnpackByte()
	if err := pk.Err(); err != nil {
		return empty, err
	}
	f, ok := p.indexToDecoder[id]
	if !ok {
		return empty, fmt.Errorf("%w: %d", ErrUnknownType, id)
	}
	return f(pk)
}
