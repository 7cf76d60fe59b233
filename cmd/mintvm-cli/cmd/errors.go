// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrMissingSubcommand = errors.New("must specify a subcommand")
	ErrInvalidArgs       = errors.New("invalid args")
	ErrTxFailed          = errors.New("tx failed")
	ErrInvalidRow        = errors.New("invalid row")
)
