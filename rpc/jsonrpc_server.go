// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/genesis"
	"github.com/nftmint/mintvm/server"
)

type JSONRPCServer struct {
	log logging.Logger
	vm  VM
}

func NewJSONRPCServer(log logging.Logger, vm VM) *JSONRPCServer {
	return &JSONRPCServer{log: log, vm: vm}
}

// NewJSONRPCHandler returns the HTTP handler serving [vm] under [Name].
func NewJSONRPCHandler(log logging.Logger, vm VM) (http.Handler, error) {
	return server.NewJSONRPCHandler(Name, NewJSONRPCServer(log, vm))
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	j.log.Debug("ping")
	reply.Success = true
	return nil
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) error {
	reply.Genesis = j.vm.Genesis()
	return nil
}

type CollectionReply struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	BaseURI string `json:"baseURI"`
}

func (j *JSONRPCServer) Collection(req *http.Request, _ *struct{}, reply *CollectionReply) error {
	c, err := j.vm.Collection(req.Context())
	if err != nil {
		return err
	}
	reply.Name = c.Name
	reply.Symbol = c.Symbol
	reply.BaseURI = c.BaseURI
	return nil
}

type SupplyReply struct {
	MaxSupply       *uint64 `json:"maxSupply"`
	LimitPerAccount uint32  `json:"limitPerAccount"`
	LastTokenID     uint64  `json:"lastTokenID"`
	TotalSupply     uint64  `json:"totalSupply"`
}

// Supply returns the configured caps and the minting counters.
func (j *JSONRPCServer) Supply(req *http.Request, _ *struct{}, reply *SupplyReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Supply")
	defer span.End()

	var err error
	if reply.MaxSupply, err = j.vm.MaxSupply(ctx); err != nil {
		return err
	}
	if reply.LimitPerAccount, err = j.vm.LimitPerAccount(ctx); err != nil {
		return err
	}
	if reply.LastTokenID, err = j.vm.LastTokenID(ctx); err != nil {
		return err
	}
	reply.TotalSupply, err = j.vm.TotalSupply(ctx)
	return err
}

type MaxSupplyReply struct {
	// MaxSupply is null when minting is uncapped.
	MaxSupply *uint64 `json:"maxSupply"`
}

func (j *JSONRPCServer) MaxSupply(req *http.Request, _ *struct{}, reply *MaxSupplyReply) error {
	maxSupply, err := j.vm.MaxSupply(req.Context())
	if err != nil {
		return err
	}
	reply.MaxSupply = maxSupply
	return nil
}

type LimitPerAccountReply struct {
	Limit uint32 `json:"limit"`
}

func (j *JSONRPCServer) LimitPerAccount(req *http.Request, _ *struct{}, reply *LimitPerAccountReply) error {
	limit, err := j.vm.LimitPerAccount(req.Context())
	if err != nil {
		return err
	}
	reply.Limit = limit
	return nil
}

type TokenArgs struct {
	TokenID uint64 `json:"tokenID"`
}

type TokenURIReply struct {
	URI string `json:"uri"`
}

func (j *JSONRPCServer) TokenURI(req *http.Request, args *TokenArgs, reply *TokenURIReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.TokenURI")
	defer span.End()

	uri, err := j.vm.TokenURI(ctx, args.TokenID)
	if err != nil {
		return err
	}
	reply.URI = uri
	return nil
}

type OwnerReply struct {
	Owner codec.Address `json:"owner"`
}

func (j *JSONRPCServer) OwnerOf(req *http.Request, args *TokenArgs, reply *OwnerReply) error {
	owner, err := j.vm.OwnerOf(req.Context(), args.TokenID)
	if err != nil {
		return err
	}
	reply.Owner = owner
	return nil
}

type AddressArgs struct {
	Address codec.Address `json:"address"`
}

type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

func (j *JSONRPCServer) BalanceOf(req *http.Request, args *AddressArgs, reply *BalanceReply) error {
	balance, err := j.vm.BalanceOf(req.Context(), args.Address)
	if err != nil {
		return err
	}
	reply.Balance = balance
	return nil
}

type RoleArgs struct {
	Role    access.Role   `json:"role"`
	Address codec.Address `json:"address"`
}

type RoleReply struct {
	HasRole bool `json:"hasRole"`
}

func (j *JSONRPCServer) HasRole(req *http.Request, args *RoleArgs, reply *RoleReply) error {
	ok, err := j.vm.HasRole(req.Context(), args.Role, args.Address)
	if err != nil {
		return err
	}
	reply.HasRole = ok
	return nil
}

type TxArgs struct {
	TxID ids.ID `json:"txId"`
}

type TxReply struct {
	Found   bool   `json:"found"`
	Success bool   `json:"success"`
	Output  []byte `json:"output"`
	Error   string `json:"error"`
}

// Tx returns the receipt of an executed transaction.
func (j *JSONRPCServer) Tx(req *http.Request, args *TxArgs, reply *TxReply) error {
	receipt, found, err := j.vm.Receipt(req.Context(), args.TxID)
	if err != nil {
		return err
	}
	reply.Found = found
	reply.Success = receipt.Success
	reply.Output = receipt.Output
	reply.Error = receipt.Error
	return nil
}

type SubmitTxArgs struct {
	Txs [][]byte `json:"txs"`
}

type SubmitTxReply struct {
	Results []*chain.Result `json:"results"`
}

// SubmitTx executes the given signed transactions in order as one batch.
func (j *JSONRPCServer) SubmitTx(req *http.Request, args *SubmitTxArgs, reply *SubmitTxReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	if len(args.Txs) > MaxSubmitTxs {
		return fmt.Errorf("%w: %d > %d", ErrTooManyTxs, len(args.Txs), MaxSubmitTxs)
	}
	results, err := j.vm.Submit(ctx, args.Txs)
	if err != nil {
		j.log.Debug("rejected submission",
			zap.Int("txs", len(args.Txs)),
			zap.Error(err),
		)
		return err
	}
	reply.Results = results
	return nil
}
