// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/maybe"
)

var (
	_ Mutable  = MutableStorage(nil)
	_ Database = (*KVDatabase)(nil)
)

// MutableStorage implements [Mutable] by wrapping a key-value map.
type MutableStorage map[string][]byte

func (m MutableStorage) GetValue(_ context.Context, key []byte) (value []byte, err error) {
	if v, has := m[string(key)]; has {
		return v, nil
	}
	return nil, database.ErrNotFound
}

func (m MutableStorage) Insert(_ context.Context, key []byte, value []byte) error {
	m[string(key)] = value
	return nil
}

func (m MutableStorage) Remove(_ context.Context, key []byte) error {
	delete(m, string(key))
	return nil
}

// KVDatabase adapts an avalanchego [database.Database] to [Database].
type KVDatabase struct {
	db database.Database
}

func NewKVDatabase(db database.Database) *KVDatabase {
	return &KVDatabase{db: db}
}

// NewMemDatabase returns a [Database] that never touches disk.
func NewMemDatabase() *KVDatabase {
	return NewKVDatabase(memdb.New())
}

func (k *KVDatabase) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return k.db.Get(key)
}

func (k *KVDatabase) Apply(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	batch := k.db.NewBatch()
	for key, v := range changes {
		var err error
		if v.IsNothing() {
			err = batch.Delete([]byte(key))
		} else {
			err = batch.Put([]byte(key), v.Value())
		}
		if err != nil {
			return err
		}
	}
	return batch.Write()
}

func (k *KVDatabase) Close() error {
	return k.db.Close()
}
