// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
)

// NewJSONRPCHandler exposes the exported methods of [service] as
// "[name].method" JSON-RPC 2.0 calls.
func NewJSONRPCHandler(name string, service any) (http.Handler, error) {
	s := rpc.NewServer()
	codec := json.NewCodec()
	s.RegisterCodec(codec, "application/json")
	s.RegisterCodec(codec, "application/json;charset=UTF-8")
	if err := s.RegisterService(service, name); err != nil {
		return nil, err
	}
	return s, nil
}
