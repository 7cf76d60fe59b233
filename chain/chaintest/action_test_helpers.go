// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/state"
)

// ActionTest is a single parameterized test. It calls Execute on the action
// and checks the output, the error and any extra assertion.
type ActionTest struct {
	Name string

	Action chain.Action

	Runtime chain.Runtime
	State   state.Mutable
	Actor   codec.Address
	TxID    ids.ID

	ExpectedOutputs []byte
	ExpectedErr     error

	Assertion func(context.Context, *testing.T, state.Mutable)
}

func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		output, err := test.Action.Execute(ctx, test.Runtime, test.State, test.Actor, test.TxID)

		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, output)

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}

// ActionBenchmark executes an action against a fresh state per iteration.
type ActionBenchmark struct {
	Name   string
	Action chain.Action

	Runtime     chain.Runtime
	CreateState func() state.Mutable
	Actor       codec.Address
	TxID        ids.ID

	ExpectedOutputs []byte
	ExpectedErr     error
}

func (test *ActionBenchmark) Run(ctx context.Context, b *testing.B) {
	require := require.New(b)

	states := make([]state.Mutable, b.N)
	for i := 0; i < b.N; i++ {
		states[i] = test.CreateState()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		output, err := test.Action.Execute(ctx, test.Runtime, states[i], test.Actor, test.TxID)
		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, output)
	}
}
