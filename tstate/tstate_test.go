// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/keys"
	"github.com/nftmint/mintvm/state"
)

var (
	testKey = []byte(keys.EncodeChunks([]byte("key"), 1))
	testVal = []byte("value")

	key1    = []byte(keys.EncodeChunks([]byte("key1"), 1))
	key1str = string(key1)
	key2    = []byte(keys.EncodeChunks([]byte("key2"), 2))
	key2str = string(key2)
	key3    = []byte(keys.EncodeChunks([]byte("key3"), 3))
	key3str = string(key3)
)

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.MutableStorage{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, val)

	_, err = tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestDeleteCommitGet(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	db := state.MutableStorage{string(testKey): testVal}

	// Delete value
	tsv := ts.NewView(db)
	require.NoError(tsv.Remove(ctx, testKey))
	tsv.Commit()

	// Check deleted in a fresh view over the same database
	tsv = ts.NewView(db)
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
	require.Nil(val)
	changed, exists, err := tsv.Exists(ctx, testKey)
	require.NoError(err)
	require.True(changed)
	require.False(exists)
}

func TestInsertNew(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	tsv := ts.NewView(state.MutableStorage{})

	// Test Disable Allocate
	tsv.DisableAllocation()
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrAllocationDisabled)
	tsv.EnableAllocation()

	// Insert key
	require.NoError(tsv.Insert(ctx, testKey, testVal))
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(1, tsv.OpIndex(), "insert was not added as an operation")
	require.Equal(testVal, val, "value was not set correctly")

	// Check commit
	tsv.Commit()
	require.Equal(1, ts.OpIndex(), "insert was not added as an operation")
	require.Equal(1, ts.PendingChanges())
}

func TestInsertInvalid(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	key := binary.BigEndian.AppendUint16([]byte("hello"), 0)
	tsv := ts.NewView(state.MutableStorage{})

	require.ErrorIs(tsv.Insert(ctx, key, []byte("cool")), ErrInvalidKeyValue)
	_, err := tsv.GetValue(ctx, key)
	require.ErrorIs(err, database.ErrNotFound)
	require.Zero(tsv.OpIndex())
}

func TestInsertRemoveInsert(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	tsv := ts.NewView(state.MutableStorage{})

	// Insert key for first time
	require.NoError(tsv.Insert(ctx, key2, testVal))
	allocates, writes := tsv.KeyOperations()
	require.Equal(map[string]uint16{key2str: 2}, allocates)
	require.Equal(map[string]uint16{key2str: 1}, writes)
	require.Equal(maybe.Some(testVal), tsv.pendingChangedKeys[key2str])

	// Remove key
	require.NoError(tsv.Remove(ctx, key2))
	allocates, writes = tsv.KeyOperations()
	require.Equal(map[string]uint16{}, allocates)
	require.Equal(map[string]uint16{key2str: 0}, writes)

	// Insert key again
	require.NoError(tsv.Insert(ctx, key2, testVal))
	allocates, writes = tsv.KeyOperations()
	require.Equal(map[string]uint16{key2str: 2}, allocates)
	require.Equal(map[string]uint16{key2str: 1}, writes)

	// Rollback second insert
	tsv.Rollback(ctx, tsv.OpIndex()-1)
	_, err := tsv.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)

	// Rollback remove
	tsv.Rollback(ctx, tsv.OpIndex()-1)
	val, err := tsv.GetValue(ctx, key2)
	require.NoError(err)
	require.Equal(testVal, val)
	allocates, writes = tsv.KeyOperations()
	require.Equal(map[string]uint16{key2str: 2}, allocates)
	require.Equal(map[string]uint16{key2str: 1}, writes)

	// Rollback insert
	tsv.Rollback(ctx, 0)
	allocates, writes = tsv.KeyOperations()
	require.Equal(map[string]uint16{}, allocates)
	require.Equal(map[string]uint16{}, writes)
	require.NotContains(tsv.pendingChangedKeys, key2str)
	require.Zero(tsv.OpIndex())

	// Remove empty should do nothing
	require.NoError(tsv.Remove(ctx, key2))
	require.Zero(tsv.OpIndex())
}

func TestRestoreInsert(t *testing.T) {
	require := require.New(t)
	ts := New(10)
	ctx := context.TODO()
	keys := [][]byte{key1, key2, key3}
	vals := [][]byte{[]byte("val1"), []byte("val2"), []byte("val3")}

	tsv := ts.NewView(state.MutableStorage{})
	for i, key := range keys {
		require.NoError(tsv.Insert(ctx, key, vals[i]))
	}

	allocates, writes := tsv.KeyOperations()
	require.Equal(map[string]uint16{key1str: 1, key2str: 2, key3str: 3}, allocates)
	require.Equal(map[string]uint16{key1str: 1, key2str: 1, key3str: 1}, writes)

	// Update keys[0]
	updatedVal := []byte("newVal")
	require.NoError(tsv.Insert(ctx, keys[0], updatedVal))
	require.Equal(len(keys)+1, tsv.OpIndex(), "operations not added properly")

	// Rollback inserting updatedVal and key[2]
	tsv.Rollback(ctx, 2)
	require.Equal(2, tsv.OpIndex(), "operations not rolled back properly")

	_, err := tsv.GetValue(ctx, keys[2])
	require.ErrorIs(err, database.ErrNotFound, "TState read op not rolled back properly")

	val, err := tsv.GetValue(ctx, keys[0])
	require.NoError(err)
	require.Equal(vals[0], val, "value not rolled back properly")

	allocates, writes = tsv.KeyOperations()
	require.Equal(map[string]uint16{key1str: 1, key2str: 2}, allocates)
	require.Equal(map[string]uint16{key1str: 1, key2str: 1}, writes)
}

func TestRestoreDelete(t *testing.T) {
	require := require.New(t)
	ts := New(10)
	ctx := context.TODO()
	keys := [][]byte{key1, key2, key3}
	vals := [][]byte{[]byte("val1"), []byte("val2"), []byte("val3")}
	tsv := ts.NewView(state.MutableStorage{
		key1str: vals[0],
		key2str: vals[1],
		key3str: vals[2],
	})

	for _, key := range keys {
		require.NoError(tsv.Remove(ctx, key))
		_, err := tsv.GetValue(ctx, key)
		require.ErrorIs(err, database.ErrNotFound, "value not removed")
	}
	require.Equal(len(keys), tsv.OpIndex())
	require.Equal(3, tsv.PendingChanges())

	// Roll back all removes
	tsv.Rollback(ctx, 0)
	require.Zero(tsv.OpIndex())
	require.Zero(tsv.PendingChanges())
	for i, key := range keys {
		val, err := tsv.GetValue(ctx, key)
		require.NoError(err)
		require.Equal(vals[i], val, "value not reset correctly")
	}
}

func TestViewsSeeCommittedChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	db := state.MutableStorage{key1str: []byte("disk")}

	first := ts.NewView(db)
	require.NoError(first.Insert(ctx, key1, []byte("first")))
	require.NoError(first.Insert(ctx, key2, []byte("new")))
	first.Commit()

	second := ts.NewView(db)
	val, err := second.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("first"), val)

	// Rolling back a write over a committed key restores the committed value
	require.NoError(second.Insert(ctx, key1, []byte("second")))
	second.Rollback(ctx, 0)
	val, err = second.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("first"), val)
	second.Commit()

	changes := ts.Export(ctx, trace.Noop)
	require.Equal(map[string]maybe.Maybe[[]byte]{
		key1str: maybe.Some([]byte("first")),
		key2str: maybe.Some([]byte("new")),
	}, changes)
	require.Equal([]byte("disk"), db[key1str])
}

func TestTStateInsert(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(1)

	require.ErrorIs(ts.Insert(ctx, binary.BigEndian.AppendUint16([]byte("k"), 0), []byte("v")), ErrInvalidKeyValue)
	require.NoError(ts.Insert(ctx, key1, []byte("v")))

	tsv := ts.NewView(state.MutableStorage{})
	val, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("v"), val)
	require.Zero(ts.OpIndex())
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	db := state.NewMemDatabase()
	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		key2str: maybe.Some([]byte("old")),
	}))

	ts := New(2)
	tsv := ts.NewView(db)
	require.NoError(tsv.Insert(ctx, key1, testVal))
	require.NoError(tsv.Remove(ctx, key2))
	tsv.Commit()
	require.NoError(ts.WriteChanges(ctx, trace.Noop, db))

	val, err := db.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)
	_, err = db.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)
}
