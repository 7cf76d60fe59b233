// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/nftmint/mintvm/keys"
	"github.com/nftmint/mintvm/state"
)

const defaultOps = 4

var _ state.Mutable = (*TStateView)(nil)

type op struct {
	k string

	pastExists  bool
	pastV       []byte
	pastChanged bool
}

// TStateView records the writes of a single transaction on top of [TState].
// Reads fall through to the committed changes of [TState] and then to the
// underlying database.
type TStateView struct {
	ts                 *TState
	db                 state.Immutable
	pendingChangedKeys map[string]maybe.Maybe[[]byte]

	// Ops is a record of all operations performed on [TState]. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op

	// Store which keys are modified and how large their values were.
	canAllocate bool
	allocations map[string]uint16
	writes      map[string]uint16
}

func (ts *TState) NewView(db state.Immutable) *TStateView {
	return &TStateView{
		ts:                 ts,
		db:                 db,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte]),

		ops: make([]*op, 0, defaultOps),

		canAllocate: true, // default to allowing allocation
		allocations: make(map[string]uint16),
		writes:      make(map[string]uint16),
	}
}

// Rollback restores the TStateView to the ts.op[restorePoint] operation.
func (ts *TStateView) Rollback(_ context.Context, restorePoint int) {
	for i := len(ts.ops) - 1; i >= restorePoint; i-- {
		op := ts.ops[i]

		// Remove all key changes from the view if the key was not previously
		// modified.
		if !op.pastChanged {
			delete(ts.allocations, op.k)
			delete(ts.writes, op.k)
			delete(ts.pendingChangedKeys, op.k)
			continue
		}

		// If a key did not previously exist, we remove any allocations
		// and ensure [ts.writes] is set to 0.
		if !op.pastExists {
			delete(ts.allocations, op.k)
			ts.writes[op.k] = 0
			ts.pendingChangedKeys[op.k] = maybe.Nothing[[]byte]()
			continue
		}

		// MaxChunks/NumChunks should never fail because we previously
		// parsed [op.k] and [op.pastV]
		keyChunks, _ := keys.MaxChunks(op.k)
		valueChunks, _ := keys.NumChunks(op.pastV)
		ts.allocations[op.k] = keyChunks
		ts.writes[op.k] = valueChunks
		ts.pendingChangedKeys[op.k] = maybe.Some(op.pastV)
	}
	ts.ops = ts.ops[:restorePoint]
}

// OpIndex returns the number of operations done on ts.
func (ts *TStateView) OpIndex() int {
	return len(ts.ops)
}

// DisableAllocation causes [Insert] to return an error if
// it would create a new key.
//
// Note, creation defaults to true.
func (ts *TStateView) DisableAllocation() {
	ts.canAllocate = false
}

func (ts *TStateView) EnableAllocation() {
	ts.canAllocate = true
}

// KeyOperations returns the chunks allocated and written per key.
func (ts *TStateView) KeyOperations() (map[string]uint16, map[string]uint16) {
	return ts.allocations, ts.writes
}

// GetValue returns the value associated with [key] or
// [database.ErrNotFound].
func (ts *TStateView) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	v, _, exists, err := ts.getValue(ctx, string(key))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

// Exists returns whether [key] was changed in this view or its parent and
// whether it currently exists.
func (ts *TStateView) Exists(ctx context.Context, key []byte) (bool, bool, error) {
	_, changed, exists, err := ts.getValue(ctx, string(key))
	return changed, exists, err
}

func (ts *TStateView) getValue(ctx context.Context, key string) ([]byte, bool, bool, error) {
	if v, ok := ts.pendingChangedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false, nil
		}
		return v.Value(), true, true, nil
	}
	if v, changed, exists := ts.ts.getChangedValue(key); changed {
		return v, true, exists, nil
	}
	v, err := ts.db.GetValue(ctx, []byte(key))
	switch {
	case err == nil:
		return v, false, true, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, false, false, nil
	default:
		return nil, false, false, err
	}
}

// Insert sets or updates [key] to [value].
//
// Any bytes passed into [Insert] will be consumed by [TState] and should
// not be modified/referenced after this call.
func (ts *TStateView) Insert(ctx context.Context, key []byte, value []byte) error {
	k := string(key)
	if !keys.VerifyValue(k, value) {
		return ErrInvalidKeyValue
	}
	valueChunks, ok := keys.NumChunks(value)
	if !ok {
		return ErrInvalidKeyValue
	}
	past, changed, exists, err := ts.getValue(ctx, k)
	if err != nil {
		return err
	}
	if !exists {
		if !ts.canAllocate {
			return ErrAllocationDisabled
		}
		keyChunks, _ := keys.MaxChunks(k)
		ts.allocations[k] = keyChunks
	}
	ts.writes[k] = valueChunks
	ts.pendingChangedKeys[k] = maybe.Some(value)
	ts.ops = append(ts.ops, &op{
		k: k,

		pastExists:  exists,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

// Remove deletes [key].
func (ts *TStateView) Remove(ctx context.Context, key []byte) error {
	k := string(key)
	past, changed, exists, err := ts.getValue(ctx, k)
	if err != nil {
		return err
	}
	if !exists {
		// We do not update writes if the key does not exist.
		return nil
	}
	delete(ts.allocations, k)
	ts.writes[k] = 0
	ts.pendingChangedKeys[k] = maybe.Nothing[[]byte]()
	ts.ops = append(ts.ops, &op{
		k: k,

		pastExists:  true,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

func (ts *TStateView) PendingChanges() int {
	return len(ts.pendingChangedKeys)
}

// Commit moves the pending changes of the view into [TState].
func (ts *TStateView) Commit() {
	ts.ts.l.Lock()
	defer ts.ts.l.Unlock()

	for k, v := range ts.pendingChangedKeys {
		ts.ts.changedKeys[k] = v
	}
	ts.ts.ops += len(ts.ops)
}
