// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/nftmint/mintvm/state"
	"github.com/nftmint/mintvm/storage"
	"github.com/nftmint/mintvm/tstate"
	"github.com/nftmint/mintvm/workers"
)

// Result is the outcome of one transaction.
type Result struct {
	TxID    ids.ID `json:"txID"`
	Success bool   `json:"success"`
	Output  []byte `json:"output"`
	Error   string `json:"error,omitempty"`

	// Err is the error returned by the action, if any.
	Err error `json:"-"`
}

// Executor applies signed transactions to a [state.Database].
//
// Transactions passed to a single Execute call are applied in order and
// flushed together. A failing action leaves no trace besides its receipt.
type Executor struct {
	log     logging.Logger
	tracer  trace.Tracer
	metrics *executorMetrics

	db      state.Database
	rt      Runtime
	engines map[uint8]AuthEngine
	workers workers.Workers

	l sync.Mutex
}

func NewExecutor(
	log logging.Logger,
	tracer trace.Tracer,
	gatherer metrics.MultiGatherer,
	db state.Database,
	rt Runtime,
	engines map[uint8]AuthEngine,
	w workers.Workers,
) (*Executor, error) {
	m, err := newMetrics(gatherer)
	if err != nil {
		return nil, err
	}
	return &Executor{
		log:     log,
		tracer:  tracer,
		metrics: m,
		db:      db,
		rt:      rt,
		engines: engines,
		workers: w,
	}, nil
}

// Verify checks the auth of every transaction. Auth types with a registered
// [AuthEngine] are verified in batches.
func (e *Executor) Verify(ctx context.Context, txs []*Transaction) error {
	ctx, span := e.tracer.Start(ctx, "Executor.Verify", oteltrace.WithAttributes(
		attribute.Int("txs", len(txs)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		e.metrics.verify.Observe(float64(time.Since(start)))
	}()

	counts := map[uint8]int{}
	for _, tx := range txs {
		if tx.Auth == nil {
			return ErrMissingAuth
		}
		counts[tx.Auth.GetTypeID()]++
	}
	job, err := e.workers.NewJob(len(txs))
	if err != nil {
		return err
	}
	batches := map[uint8]AuthBatchVerifier{}
	for typeID, count := range counts {
		engine, ok := e.engines[typeID]
		if !ok {
			continue
		}
		batches[typeID] = engine.GetBatchVerifier(job.Workers(), count)
	}
	for _, tx := range txs {
		digest, err := tx.Digest()
		if err != nil {
			job.Go(func() error { return err })
			break
		}
		if bv, ok := batches[tx.Auth.GetTypeID()]; ok {
			if verify := bv.Add(digest, tx.Auth); verify != nil {
				job.Go(verify)
			}
			continue
		}
		auth := tx.Auth
		job.Go(func() error {
			return auth.Verify(ctx, digest)
		})
	}
	for _, bv := range batches {
		for _, verify := range bv.Done() {
			job.Go(verify)
		}
	}
	if err := job.Wait(); err != nil {
		e.metrics.authFailures.Inc()
		return fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	return nil
}

// Execute verifies and applies [txs]. An error means nothing was written; a
// failed action is reported in its [Result] instead.
func (e *Executor) Execute(ctx context.Context, txs []*Transaction) ([]*Result, error) {
	if len(txs) == 0 {
		return nil, ErrEmptyTransactions
	}
	ctx, span := e.tracer.Start(ctx, "Executor.Execute", oteltrace.WithAttributes(
		attribute.Int("txs", len(txs)),
	))
	defer span.End()

	e.l.Lock()
	defer e.l.Unlock()

	if err := e.Verify(ctx, txs); err != nil {
		return nil, err
	}

	start := time.Now()
	ts := tstate.New(len(txs) * 8)
	results := make([]*Result, 0, len(txs))
	for _, tx := range txs {
		result, err := e.executeTx(ctx, ts, tx)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := ts.WriteChanges(ctx, e.tracer, e.db); err != nil {
		return nil, fmt.Errorf("%w: unable to write changes", err)
	}
	e.metrics.execute.Observe(float64(time.Since(start)))
	e.log.Debug("executed transactions",
		zap.Int("txs", len(txs)),
		zap.Int("changes", ts.PendingChanges()),
		zap.Duration("t", time.Since(start)),
	)
	return results, nil
}

func (e *Executor) executeTx(ctx context.Context, ts *tstate.TState, tx *Transaction) (*Result, error) {
	view := ts.NewView(e.db)
	txID := tx.ID()

	_, executed, err := storage.GetReceipt(ctx, view, txID)
	if err != nil {
		return nil, err
	}
	if executed {
		e.metrics.txsDuplicate.Inc()
		return &Result{
			TxID:  txID,
			Error: ErrDuplicateTx.Error(),
			Err:   ErrDuplicateTx,
		}, nil
	}

	output, execErr := tx.Action.Execute(ctx, e.rt, view, tx.Actor(), txID)
	receipt := storage.Receipt{Success: execErr == nil, Output: output}
	if execErr != nil {
		view.Rollback(ctx, 0)
		receipt.Output = nil
		receipt.Error = execErr.Error()
		e.metrics.txsFailed.Inc()
		e.log.Debug("transaction failed",
			zap.Stringer("txID", txID),
			zap.Stringer("actor", tx.Actor()),
			zap.Error(execErr),
		)
	} else {
		e.metrics.txsSucceeded.Inc()
	}
	if err := storage.StoreReceipt(ctx, view, txID, receipt); err != nil {
		return nil, err
	}
	view.Commit()
	return &Result{
		TxID:    txID,
		Success: receipt.Success,
		Output:  receipt.Output,
		Error:   receipt.Error,
		Err:     execErr,
	}, nil
}
