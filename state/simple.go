// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"slices"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"
)

var _ Mutable = (*SimpleMutable)(nil)

// SimpleMutable buffers writes on top of a parent [Mutable] until [Commit].
// Dropping a SimpleMutable without committing discards every buffered write.
type SimpleMutable struct {
	v Mutable

	changes map[string]maybe.Maybe[[]byte]
}

func NewSimpleMutable(v Mutable) *SimpleMutable {
	return &SimpleMutable{v, make(map[string]maybe.Maybe[[]byte])}
}

func (s *SimpleMutable) GetValue(ctx context.Context, k []byte) ([]byte, error) {
	if v, ok := s.changes[string(k)]; ok {
		if v.IsNothing() {
			return nil, database.ErrNotFound
		}
		return v.Value(), nil
	}
	return s.v.GetValue(ctx, k)
}

func (s *SimpleMutable) Insert(_ context.Context, k []byte, v []byte) error {
	s.changes[string(k)] = maybe.Some(v)
	return nil
}

func (s *SimpleMutable) Remove(_ context.Context, k []byte) error {
	s.changes[string(k)] = maybe.Nothing[[]byte]()
	return nil
}

// Commit flushes the buffered writes to the parent in key order. Writes are
// not visible to the parent before Commit is called. Commit stops at the
// first write the parent rejects: keys before it are applied and the buffer
// is kept.
func (s *SimpleMutable) Commit(ctx context.Context) error {
	ks := maps.Keys(s.changes)
	slices.Sort(ks)
	for _, k := range ks {
		v := s.changes[k]
		var err error
		if v.IsNothing() {
			err = s.v.Remove(ctx, []byte(k))
		} else {
			err = s.v.Insert(ctx, []byte(k), v.Value())
		}
		if err != nil {
			return err
		}
	}
	clear(s.changes)
	return nil
}
