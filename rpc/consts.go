// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

const (
	Name     = "mintvm"
	Endpoint = "/mintvm"
	// BasePath prefixes every handler served by the node.
	BasePath = "/ext"

	// MaxSubmitTxs bounds the transactions a single SubmitTx call may carry.
	MaxSubmitTxs = 256
)
