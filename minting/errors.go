// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package minting

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrSupplyCapExceeded    = errors.New("supply cap exceeded")
	ErrAccountLimitExceeded = errors.New("account limit exceeded")
	ErrTokenNotFound        = errors.New("token not found")
	ErrMetadataTooLarge     = errors.New("metadata too large")
)
