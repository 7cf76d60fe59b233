// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workers

var (
	_ Workers = (*SerialWorkers)(nil)
	_ Job     = (*SerialJob)(nil)
)

// SerialWorkers runs every task inline on the caller's goroutine.
type SerialWorkers struct{}

func NewSerial() Workers {
	return &SerialWorkers{}
}

func (*SerialWorkers) NewJob(int) (Job, error) {
	return &SerialJob{}, nil
}

func (*SerialWorkers) Stop() {}

type SerialJob struct {
	err error
}

func (j *SerialJob) Go(f func() error) {
	if j.err != nil {
		return
	}
	j.err = f()
}

func (j *SerialJob) Wait() error {
	return j.err
}

func (*SerialJob) Workers() int {
	return 1
}
