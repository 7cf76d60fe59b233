// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vmtest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/auth"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/config"
	"github.com/nftmint/mintvm/crypto/ed25519"
	"github.com/nftmint/mintvm/genesis"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/vm"
)

// Env is a VM over an in-memory database whose genesis admin is [Admin].
type Env struct {
	VM      *vm.VM
	Admin   chain.AuthFactory
	Genesis *genesis.Genesis

	nonce uint64
}

// NewFactory returns a factory for a fresh ed25519 key.
func NewFactory(t testing.TB) chain.AuthFactory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return auth.NewED25519Factory(priv)
}

// New starts a VM. [modify] may adjust the genesis before it is loaded.
func New(t testing.TB, modify func(*genesis.Genesis), opts ...vm.Option) *Env {
	require := require.New(t)

	admin := NewFactory(t)
	g := genesis.Default(admin.Address())
	g.BaseURI = "ipfs://collection/"
	if modify != nil {
		modify(g)
	}
	genesisBytes, err := g.Bytes()
	require.NoError(err)

	cfg := config.NewConfig()
	cfg.InMemory = true
	cfg.AuthVerificationCores = 2
	opts = append([]vm.Option{vm.WithDatabase(state.NewMemDatabase())}, opts...)
	v, err := vm.New(context.Background(), logging.NoLog{}, cfg, genesisBytes, opts...)
	require.NoError(err)
	t.Cleanup(func() {
		require.NoError(v.Shutdown(context.Background()))
	})
	return &Env{VM: v, Admin: admin, Genesis: g}
}

// Tx signs [action] with [factory] using a fresh nonce.
func (e *Env) Tx(t testing.TB, factory chain.AuthFactory, action chain.Action) *chain.Transaction {
	e.nonce++
	tx, err := chain.NewTx(e.nonce, action).Sign(factory, e.VM.Parser())
	require.NoError(t, err)
	return tx
}

// Run executes [action] on behalf of [factory] and returns its result.
func (e *Env) Run(t testing.TB, factory chain.AuthFactory, action chain.Action) *chain.Result {
	results, err := e.VM.Execute(context.Background(), []*chain.Transaction{e.Tx(t, factory, action)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	return results[0]
}
