// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nftmint/mintvm/state"
)

var _ state.Database = (*Database)(nil)

type Config struct {
	CacheSize                   int    `json:"cacheSize" yaml:"cacheSize"`
	BytesPerSync                int    `json:"bytesPerSync" yaml:"bytesPerSync"`
	WALBytesPerSync             int    `json:"walBytesPerSync" yaml:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int    `json:"memTableStopWritesThreshold" yaml:"memTableStopWritesThreshold"`
	MemTableSize                uint64 `json:"memTableSize" yaml:"memTableSize"`
	MaxOpenFiles                int    `json:"maxOpenFiles" yaml:"maxOpenFiles"`
	ConcurrentCompactions       int    `json:"concurrentCompactions" yaml:"concurrentCompactions"`
	Sync                        bool   `json:"sync" yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * units.MiB,
		BytesPerSync:                512 * units.KiB,
		WALBytesPerSync:             0,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * units.MiB,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is the on-disk chain state. Reads are served directly by pebble
// and every [Apply] is a single pebble batch.
type Database struct {
	l       sync.RWMutex
	db      *pebble.DB
	sync    bool
	closed  bool
	closing chan struct{}
	wg      sync.WaitGroup

	metrics *metrics
}

// New opens (or creates) a pebble database at [file]. The returned registry
// holds the storage metrics.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		sync:    cfg.Sync,
		closing: make(chan struct{}),
		metrics: metrics,
	}
	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	start := time.Now()
	defer func() {
		db.metrics.getLatency.Observe(float64(time.Since(start)))
	}()
	v, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// [v] is only valid until [closer] is closed
	ret := slices.Clone(v)
	return ret, closer.Close()
}

// Apply writes [changes] in one batch. A Nothing value deletes the key.
func (db *Database) Apply(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	start := time.Now()
	defer func() {
		db.metrics.applyLatency.Observe(float64(time.Since(start)))
	}()
	batch := db.db.NewBatch()
	defer batch.Close()
	var written, deleted int
	for k, v := range changes {
		var err error
		if v.IsNothing() {
			err = batch.Delete([]byte(k), nil)
			deleted++
		} else {
			err = batch.Set([]byte(k), v.Value(), nil)
			written++
		}
		if err != nil {
			return err
		}
	}
	opts := pebble.NoSync
	if db.sync {
		opts = pebble.Sync
	}
	if err := batch.Commit(opts); err != nil {
		return err
	}
	db.metrics.keysWritten.Add(float64(written))
	db.metrics.keysDeleted.Add(float64(deleted))
	return nil
}

func (db *Database) Close() error {
	db.l.Lock()
	if db.closed {
		db.l.Unlock()
		return database.ErrClosed
	}
	db.closed = true
	close(db.closing)
	db.l.Unlock()

	db.wg.Wait()
	return db.db.Close()
}
