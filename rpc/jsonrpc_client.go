// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/genesis"
)

const waitSleep = 250 * time.Millisecond

type JSONRPCClient struct {
	requester rpc.EndpointRequester

	genesis *genesis.Genesis
}

// NewJSONRPCClient connects to the node at [uri] (e.g. http://127.0.0.1:9650).
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += BasePath + Endpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) send(ctx context.Context, method string, args any, reply any) error {
	if args == nil {
		args = struct{}{}
	}
	return mapError(cli.requester.SendRequest(ctx, Name+"."+method, args, reply))
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.send(ctx, "ping", nil, resp)
	return resp.Success, err
}

// Genesis is fetched once and cached.
func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	if cli.genesis != nil {
		return cli.genesis, nil
	}
	resp := new(GenesisReply)
	if err := cli.send(ctx, "genesis", nil, resp); err != nil {
		return nil, err
	}
	cli.genesis = resp.Genesis
	return resp.Genesis, nil
}

func (cli *JSONRPCClient) Collection(ctx context.Context) (*CollectionReply, error) {
	resp := new(CollectionReply)
	err := cli.send(ctx, "collection", nil, resp)
	return resp, err
}

func (cli *JSONRPCClient) Supply(ctx context.Context) (*SupplyReply, error) {
	resp := new(SupplyReply)
	err := cli.send(ctx, "supply", nil, resp)
	return resp, err
}

func (cli *JSONRPCClient) MaxSupply(ctx context.Context) (*uint64, error) {
	resp := new(MaxSupplyReply)
	err := cli.send(ctx, "maxSupply", nil, resp)
	return resp.MaxSupply, err
}

func (cli *JSONRPCClient) LimitPerAccount(ctx context.Context) (uint32, error) {
	resp := new(LimitPerAccountReply)
	err := cli.send(ctx, "limitPerAccount", nil, resp)
	return resp.Limit, err
}

func (cli *JSONRPCClient) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	resp := new(TokenURIReply)
	err := cli.send(ctx, "tokenURI", &TokenArgs{TokenID: tokenID}, resp)
	return resp.URI, err
}

func (cli *JSONRPCClient) OwnerOf(ctx context.Context, tokenID uint64) (codec.Address, error) {
	resp := new(OwnerReply)
	err := cli.send(ctx, "ownerOf", &TokenArgs{TokenID: tokenID}, resp)
	return resp.Owner, err
}

func (cli *JSONRPCClient) BalanceOf(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.send(ctx, "balanceOf", &AddressArgs{Address: addr}, resp)
	return resp.Balance, err
}

func (cli *JSONRPCClient) HasRole(ctx context.Context, role access.Role, addr codec.Address) (bool, error) {
	resp := new(RoleReply)
	err := cli.send(ctx, "hasRole", &RoleArgs{Role: role, Address: addr}, resp)
	return resp.HasRole, err
}

// Tx returns the receipt of [txID], if it was executed.
func (cli *JSONRPCClient) Tx(ctx context.Context, txID ids.ID) (*TxReply, error) {
	resp := new(TxReply)
	err := cli.send(ctx, "tx", &TxArgs{TxID: txID}, resp)
	return resp, err
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, txs ...*chain.Transaction) ([]*chain.Result, error) {
	args := &SubmitTxArgs{Txs: make([][]byte, len(txs))}
	for i, tx := range txs {
		args.Txs[i] = tx.Bytes()
	}
	resp := new(SubmitTxReply)
	if err := cli.send(ctx, "submitTx", args, resp); err != nil {
		return nil, err
	}
	for _, r := range resp.Results {
		r.Err = ResultError(r)
	}
	return resp.Results, nil
}

// WaitForReceipt polls until a receipt for [txID] exists or [ctx] is done.
func (cli *JSONRPCClient) WaitForReceipt(ctx context.Context, txID ids.ID) (*TxReply, error) {
	for {
		resp, err := cli.Tx(ctx, txID)
		if err != nil {
			return nil, err
		}
		if resp.Found {
			return resp, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for %s", ctx.Err(), txID)
		case <-time.After(waitSleep):
		}
	}
}
