// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/minting"
)

var ErrTooManyTxs = errors.New("too many transactions")

// remoteErrors are recognized in server error messages so that callers can
// match them with [errors.Is].
var remoteErrors = []error{
	minting.ErrUnauthorized,
	minting.ErrSupplyCapExceeded,
	minting.ErrAccountLimitExceeded,
	minting.ErrTokenNotFound,
	minting.ErrMetadataTooLarge,
	access.ErrMissingRole,
	access.ErrRoleRedundant,
	chain.ErrAuthFailed,
	chain.ErrDuplicateTx,
	ErrTooManyTxs,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, known := range remoteErrors {
		if strings.Contains(msg, known.Error()) {
			return fmt.Errorf("%w: %w", known, err)
		}
	}
	return err
}

// ResultError recovers the action error of a remotely executed transaction.
func ResultError(r *chain.Result) error {
	if r.Success {
		return nil
	}
	return mapError(errors.New(r.Error))
}
