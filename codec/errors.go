// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrInvalidAddress     = errors.New("invalid address")
	ErrFieldNotPopulated  = errors.New("field is not populated")
	ErrInsufficientLength = errors.New("insufficient length")
	ErrTooLarge           = errors.New("value exceeds limit")
	ErrInvalidOptional    = errors.New("invalid optional flag")
)

var (
	ErrDuplicateItem = errors.New("duplicate item")
	ErrUnknownType   = errors.New("unknown type")
)
