// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workers

import (
	"context"
	"sync"

	"github.com/neilotoole/errgroup"
)

var (
	_ Workers = (*ParallelWorkers)(nil)
	_ Job     = (*ParallelJob)(nil)
)

// ParallelWorkers caps the number of goroutines a single job may use.
type ParallelWorkers struct {
	count int

	l       sync.RWMutex
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewParallel(workers int) Workers {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ParallelWorkers{
		count:  workers,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *ParallelWorkers) NewJob(backlog int) (Job, error) {
	w.l.RLock()
	defer w.l.RUnlock()

	if w.stopped {
		return nil, ErrShutdown
	}
	g, ctx := errgroup.WithContextN(w.ctx, w.count, backlog)
	return &ParallelJob{
		count: w.count,
		ctx:   ctx,
		g:     g,
	}, nil
}

// Stop rejects new jobs. Tasks of running jobs that have not started yet
// are skipped.
func (w *ParallelWorkers) Stop() {
	w.l.Lock()
	defer w.l.Unlock()

	w.stopped = true
	w.cancel()
}

type ParallelJob struct {
	count int
	ctx   context.Context
	g     *errgroup.Group
}

// Go schedules [f]. Once any task failed or the pool stopped, later tasks
// are not run.
func (j *ParallelJob) Go(f func() error) {
	j.g.Go(func() error {
		if err := j.ctx.Err(); err != nil {
			return ErrShutdown
		}
		return f()
	})
}

func (j *ParallelJob) Wait() error {
	return j.g.Wait()
}

func (j *ParallelJob) Workers() int {
	return j.count
}
