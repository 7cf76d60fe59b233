// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vm assembles the minting components into a single process-local
// state machine that accepts signed transactions and serves reads.
package vm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"go.uber.org/zap"

	avatrace "github.com/ava-labs/avalanchego/trace"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/actions"
	"github.com/nftmint/mintvm/auth"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/config"
	"github.com/nftmint/mintvm/genesis"
	"github.com/nftmint/mintvm/ledger"
	"github.com/nftmint/mintvm/minting"
	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
	"github.com/nftmint/mintvm/trace"
	"github.com/nftmint/mintvm/tstate"
	"github.com/nftmint/mintvm/uri"
	"github.com/nftmint/mintvm/workers"
)

const defaultMaxTxs = 1024

var _ chain.Runtime = (*VM)(nil)

type VM struct {
	log     logging.Logger
	tracer  avatrace.Tracer
	genesis *genesis.Genesis

	db       state.Database
	parser   *chain.Registry
	roles    *access.RoleTable
	ledger   *ledger.Ledger
	minter   *minting.Controller
	executor *chain.Executor
	workers  workers.Workers
	maxTxs   int

	closers  []func() error
	closed   bool
	closeMtx sync.RWMutex
}

// New opens the database, loads [genesisBytes] if the state is empty and
// wires the minting controller behind a transaction executor.
func New(
	ctx context.Context,
	log logging.Logger,
	cfg config.Config,
	genesisBytes []byte,
	opts ...Option,
) (*VM, error) {
	o := &options{maxTxs: defaultMaxTxs}
	for _, opt := range opts {
		opt(o)
	}
	if o.gatherer == nil {
		o.gatherer = metrics.NewPrefixGatherer()
	}
	if o.workers == nil {
		o.workers = workers.NewParallel(cfg.AuthVerificationCores)
	}

	g, err := genesis.New(genesisBytes)
	if err != nil {
		return nil, err
	}

	vm := &VM{
		log:     log,
		genesis: g,
		workers: o.workers,
		maxTxs:  o.maxTxs,
	}
	vm.closers = append(vm.closers, func() error {
		vm.workers.Stop()
		return nil
	})

	vm.tracer, err = trace.New(&cfg.TraceConfig)
	if err != nil {
		vm.closeAll()
		return nil, err
	}
	vm.closers = append(vm.closers, vm.tracer.Close)
	ctx, span := vm.tracer.Start(ctx, "VM.New")
	defer span.End()

	if cfg.ContinuousProfilerConfig.Enabled {
		continuousProfiler := profiler.NewContinuous(
			cfg.ContinuousProfilerConfig.Dir,
			cfg.ContinuousProfilerConfig.Freq,
			cfg.ContinuousProfilerConfig.MaxNumFiles,
		)
		vm.closers = append(vm.closers, func() error {
			continuousProfiler.Shutdown()
			return nil
		})
		go continuousProfiler.Dispatch() //nolint:errcheck
	}

	vm.db = o.db
	if vm.db == nil {
		vm.db, err = storage.New(cfg.Pebble, cfg.DataDir, cfg.InMemory, o.gatherer)
		if err != nil {
			vm.closeAll()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}
	vm.closers = append(vm.closers, vm.db.Close)

	vm.parser, err = actions.NewParser(auth.Register)
	if err != nil {
		vm.closeAll()
		return nil, err
	}
	vm.roles = access.NewRoleTable(log)
	vm.ledger = ledger.New(log)
	vm.minter, err = minting.NewController(log, vm.tracer, o.gatherer, vm.roles, vm.ledger, uri.NewComposer())
	if err != nil {
		vm.closeAll()
		return nil, err
	}
	vm.executor, err = chain.NewExecutor(log, vm.tracer, o.gatherer, vm.db, vm, auth.Engines(), vm.workers)
	if err != nil {
		vm.closeAll()
		return nil, err
	}

	if err := vm.loadGenesis(ctx); err != nil {
		vm.closeAll()
		return nil, err
	}
	return vm, nil
}

// loadGenesis writes the genesis into an empty database. A database that
// already holds a collection must have been created from the same genesis.
func (vm *VM) loadGenesis(ctx context.Context) error {
	_, err := vm.db.GetValue(ctx, storage.SupplyKey())
	switch {
	case err == nil:
		stored, err := storage.GetCollection(ctx, vm.db)
		if err != nil {
			return err
		}
		if stored.Name != vm.genesis.Name || stored.Symbol != vm.genesis.Symbol || stored.BaseURI != vm.genesis.BaseURI {
			return fmt.Errorf("%w: stored collection %q", ErrGenesisMismatch, stored.Name)
		}
		vm.log.Info("resuming from stored state", zap.String("collection", stored.Name))
		return nil
	case !errors.Is(err, database.ErrNotFound):
		return err
	}

	ts := tstate.New(8)
	view := ts.NewView(vm.db)
	if err := vm.genesis.Load(ctx, vm.tracer, view, vm.minter, vm.roles); err != nil {
		return err
	}
	view.Commit()
	if err := ts.WriteChanges(ctx, vm.tracer, vm.db); err != nil {
		return err
	}
	vm.log.Info("loaded genesis",
		zap.String("collection", vm.genesis.Name),
		zap.Stringer("admin", vm.genesis.Admin),
	)
	return nil
}

func (vm *VM) Controller() *minting.Controller { return vm.minter }

func (vm *VM) Roles() *access.RoleTable { return vm.roles }

func (vm *VM) Parser() chain.Parser { return vm.parser }

func (vm *VM) Genesis() *genesis.Genesis { return vm.genesis }

func (vm *VM) Tracer() avatrace.Tracer { return vm.tracer }

// Submit parses, verifies and executes raw transactions as one batch.
func (vm *VM) Submit(ctx context.Context, txBytes [][]byte) ([]*chain.Result, error) {
	if len(txBytes) > vm.maxTxs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTxs, len(txBytes), vm.maxTxs)
	}
	txs := make([]*chain.Transaction, len(txBytes))
	for i, b := range txBytes {
		tx, err := chain.ParseTx(b, vm.parser)
		if err != nil {
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
		txs[i] = tx
	}
	return vm.Execute(ctx, txs)
}

// Execute applies already parsed transactions.
func (vm *VM) Execute(ctx context.Context, txs []*chain.Transaction) ([]*chain.Result, error) {
	vm.closeMtx.RLock()
	defer vm.closeMtx.RUnlock()
	if vm.closed {
		return nil, ErrClosed
	}
	return vm.executor.Execute(ctx, txs)
}

func (vm *VM) MaxSupply(ctx context.Context) (*uint64, error) {
	return vm.minter.MaxSupply(ctx, vm.db)
}

func (vm *VM) LimitPerAccount(ctx context.Context) (uint32, error) {
	return vm.minter.LimitPerAccount(ctx, vm.db)
}

func (vm *VM) LastTokenID(ctx context.Context) (uint64, error) {
	return vm.minter.LastTokenID(ctx, vm.db)
}

func (vm *VM) TotalSupply(ctx context.Context) (uint64, error) {
	return vm.ledger.TotalSupply(ctx, vm.db)
}

func (vm *VM) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	return vm.minter.TokenURI(ctx, vm.db, tokenID)
}

// OwnerOf returns the owner of [tokenID] or [minting.ErrTokenNotFound].
func (vm *VM) OwnerOf(ctx context.Context, tokenID uint64) (codec.Address, error) {
	owner, ok, err := vm.ledger.OwnerOf(ctx, vm.db, codec.TokenID(tokenID))
	if err != nil {
		return codec.EmptyAddress, err
	}
	if !ok {
		return codec.EmptyAddress, minting.ErrTokenNotFound
	}
	return owner, nil
}

func (vm *VM) BalanceOf(ctx context.Context, addr codec.Address) (uint64, error) {
	return vm.ledger.BalanceOf(ctx, vm.db, addr)
}

func (vm *VM) HasRole(ctx context.Context, role access.Role, addr codec.Address) (bool, error) {
	return vm.roles.HasRole(ctx, vm.db, role, addr)
}

func (vm *VM) Collection(ctx context.Context) (storage.Collection, error) {
	return storage.GetCollection(ctx, vm.db)
}

func (vm *VM) Receipt(ctx context.Context, txID ids.ID) (storage.Receipt, bool, error) {
	return storage.GetReceipt(ctx, vm.db, txID)
}

// Shutdown waits for in-flight executions and releases every resource.
func (vm *VM) Shutdown(context.Context) error {
	vm.closeMtx.Lock()
	defer vm.closeMtx.Unlock()
	if vm.closed {
		return nil
	}
	vm.closed = true
	return vm.closeAll()
}

func (vm *VM) closeAll() error {
	errs := wrappers.Errs{}
	for i := len(vm.closers) - 1; i >= 0; i-- {
		errs.Add(vm.closers[i]())
	}
	vm.closers = nil
	if errs.Errored() {
		vm.log.Warn("shutdown failed", zap.Error(errs.Err))
	}
	return errs.Err
}
