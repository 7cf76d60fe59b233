// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workers

import (
	"errors"
	"math/big"
	"runtime"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/stretchr/testify/require"
)

var errTask = errors.New("task failed")

func TestJobs(t *testing.T) {
	tests := []struct {
		name    string
		workers Workers
	}{
		{name: "parallel", workers: NewParallel(4)},
		{name: "serial", workers: NewSerial()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			defer tt.workers.Stop()

			var count atomic.Int64
			job, err := tt.workers.NewJob(100)
			require.NoError(err)
			for i := 0; i < 100; i++ {
				job.Go(func() error {
					count.Add(1)
					return nil
				})
			}
			require.NoError(job.Wait())
			require.Equal(int64(100), count.Load())

			job, err = tt.workers.NewJob(10)
			require.NoError(err)
			job.Go(func() error { return errTask })
			require.ErrorIs(job.Wait(), errTask)
		})
	}
}

func TestSerialStopsAtFirstError(t *testing.T) {
	require := require.New(t)
	job, err := NewSerial().NewJob(0)
	require.NoError(err)

	ran := 0
	job.Go(func() error { ran++; return errTask })
	job.Go(func() error { ran++; return nil })
	require.ErrorIs(job.Wait(), errTask)
	require.Equal(1, ran)
	require.Equal(1, job.Workers())
}

func TestParallelStop(t *testing.T) {
	require := require.New(t)
	w := NewParallel(2)
	job, err := w.NewJob(1)
	require.NoError(err)
	require.Equal(2, job.Workers())
	require.NoError(job.Wait())

	w.Stop()
	_, err = w.NewJob(1)
	require.ErrorIs(err, ErrShutdown)
}

func BenchmarkParallel(b *testing.B) {
	cores := runtime.NumCPU()
	for _, size := range []int{10, 100, 1000} {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			w := NewParallel(cores)
			defer w.Stop()
			for n := 0; n < b.N; n++ {
				j, _ := w.NewJob(size)
				for i := 0; i < size; i++ {
					i := i
					j.Go(func() error {
						hashing.ComputeHash256(big.NewInt(int64(i)).Bytes())
						return nil
					})
				}
				_ = j.Wait()
			}
		})
	}
}
