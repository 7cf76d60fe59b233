// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/nftmint/mintvm/keys"
	"github.com/nftmint/mintvm/state"
)

// TState defines a struct for storing temporary state.
type TState struct {
	l           sync.RWMutex
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize)}
}

func (ts *TState) getChangedValue(key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// Insert should only be called if you know what you are doing (updates
// here are not recorded as operations and cannot be rolled back). It is used
// to seed genesis state.
func (ts *TState) Insert(_ context.Context, key, value []byte) error {
	if !keys.VerifyValue(string(key), value) {
		return ErrInvalidKeyValue
	}
	ts.l.Lock()
	defer ts.l.Unlock()

	ts.changedKeys[string(key)] = maybe.Some(value)
	return nil
}

// OpIndex returns the number of operations committed from views.
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// PendingChanges returns the number of keys changed.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// Export returns every change in [TState] so it can be written to a
// [state.Database] in one batch.
//
// Once [Export] is called, [TState] should not be used again.
func (ts *TState) Export(ctx context.Context, t trace.Tracer) map[string]maybe.Maybe[[]byte] {
	_, span := t.Start(ctx, "TState.Export")
	defer span.End()

	ts.l.RLock()
	defer ts.l.RUnlock()

	changes := make(map[string]maybe.Maybe[[]byte], len(ts.changedKeys))
	for k, v := range ts.changedKeys {
		changes[k] = v
	}
	return changes
}

// WriteChanges flushes every change in [TState] to [db] in one batch.
func (ts *TState) WriteChanges(ctx context.Context, t trace.Tracer, db state.Database) error {
	ctx, span := t.Start(ctx, "TState.WriteChanges")
	defer span.End()

	return db.Apply(ctx, ts.Export(ctx, t))
}
