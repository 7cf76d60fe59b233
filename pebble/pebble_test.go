// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/stretchr/testify/require"
)

const batchSize = 10_000

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func TestApply(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	cfg := NewDefaultConfig()
	cfg.Sync = false
	db, registry, err := New(t.TempDir(), cfg)
	require.NoError(err)
	require.NotNil(registry)

	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		"a": maybe.Some([]byte("1")),
		"b": maybe.Some([]byte("2")),
	}))
	v, err := db.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)

	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		"a": maybe.Nothing[[]byte](),
	}))
	_, err = db.GetValue(ctx, []byte("a"))
	require.ErrorIs(err, database.ErrNotFound)

	families, err := registry.Gather()
	require.NoError(err)
	require.NotEmpty(families)

	require.NoError(db.Close())
	_, err = db.GetValue(ctx, []byte("b"))
	require.ErrorIs(err, database.ErrClosed)
	require.ErrorIs(db.Close(), database.ErrClosed)
}

func TestReopen(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	db, _, err := New(dir, NewDefaultConfig())
	require.NoError(err)
	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{"k": maybe.Some([]byte("v"))}))
	require.NoError(db.Close())

	db, _, err = New(dir, NewDefaultConfig())
	require.NoError(err)
	v, err := db.GetValue(ctx, []byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
	require.NoError(db.Close())
}

func BenchmarkApply(b *testing.B) {
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			// Setup DB
			b.StopTimer()
			cfg := NewDefaultConfig()
			cfg.Sync = sync
			db, _, err := New(b.TempDir(), cfg)
			if err != nil {
				b.Fatal(err)
			}

			// Setup changes
			changes := make(map[string]maybe.Maybe[[]byte], batchSize)
			for i := 0; i < batchSize; i++ {
				changes[string(randBytes())] = maybe.Some(randBytes())
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := db.Apply(context.Background(), changes); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			if err := db.Close(); err != nil {
				b.Fatal(err)
			}
		})
	}
}
