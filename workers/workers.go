// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package workers runs bounded groups of tasks that stop at the first error.
package workers

type Workers interface {
	// NewJob returns a job that accepts up to [backlog] queued tasks before
	// Go blocks.
	NewJob(backlog int) (Job, error)
	Stop()
}

type Job interface {
	Go(func() error)
	// Wait blocks until every task returned and reports the first error.
	Wait() error
	Workers() int
}
