// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrMissingAuth       = errors.New("missing auth")
	ErrInvalidObject     = errors.New("invalid object")
	ErrAuthFailed        = errors.New("auth verification failed")
	ErrDuplicateTx       = errors.New("duplicate transaction")
	ErrExecutorClosed    = errors.New("executor closed")
	ErrEmptyTransactions = errors.New("no transactions")
)
