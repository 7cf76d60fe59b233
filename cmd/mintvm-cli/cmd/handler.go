// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/nftmint/mintvm/actions"
	"github.com/nftmint/mintvm/auth"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/cli/prompt"
	"github.com/nftmint/mintvm/rpc"
	"github.com/nftmint/mintvm/utils"
)

// Handler signs transactions with the key of --key and sends them to
// --endpoint.
type Handler struct {
	cli     *rpc.JSONRPCClient
	parser  chain.Parser
	factory chain.AuthFactory
}

func NewHandler() (*Handler, error) {
	parser, err := actions.NewParser(auth.Register)
	if err != nil {
		return nil, err
	}
	return &Handler{
		cli:    rpc.NewJSONRPCClient(endpoint),
		parser: parser,
	}, nil
}

// NewSigningHandler also loads the private key.
func NewSigningHandler() (*Handler, error) {
	h, err := NewHandler()
	if err != nil {
		return nil, err
	}
	pk, err := auth.LoadPrivateKey(privateKeyFile)
	if err != nil {
		return nil, err
	}
	h.factory, err = auth.GetFactory(pk)
	if err != nil {
		return nil, err
	}
	utils.Outf("{{yellow}}loaded address:{{/}} %s\n\n", pk.Address)
	return h, nil
}

func randomNonce() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func (h *Handler) Sign(action chain.Action) (*chain.Transaction, error) {
	nonce, err := randomNonce()
	if err != nil {
		return nil, err
	}
	return chain.NewTx(nonce, action).Sign(h.factory, h.parser)
}

// Send signs [action], asks for confirmation and reports the receipt.
func (h *Handler) Send(ctx context.Context, action chain.Action) (*chain.Result, error) {
	tx, err := h.Sign(action)
	if err != nil {
		return nil, err
	}
	if !assumeYes {
		cont, err := prompt.Continue()
		if !cont || err != nil {
			return nil, err
		}
	}
	results, err := h.cli.SubmitTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	result := results[0]
	if !result.Success {
		utils.Outf("{{red}}transaction failed:{{/}} %s {{yellow}}txID:{{/}} %s\n", result.Error, result.TxID)
		return result, fmt.Errorf("%w: %w", ErrTxFailed, result.Err)
	}
	utils.Outf("{{green}}transaction succeeded{{/}} {{yellow}}txID:{{/}} %s\n", result.TxID)
	return result, nil
}
