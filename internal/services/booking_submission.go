package services

import (
	"context"
	"errors"

	"github.com/terraincognita07/hospitalconnect/internal/models"
)

var ErrSubmissionCancelled = errors.New("submission cancelled")

// SubmissionTask is one in-flight booking submission. Its result is applied
// to the flow only if the task was not cancelled before the delay elapsed.
type SubmissionTask struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	record models.BookingRecord
	err    error
}

func newSubmissionTask() *SubmissionTask {
	ctx, cancel := context.WithCancel(context.Background())
	return &SubmissionTask{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (task *SubmissionTask) Cancel() {
	task.cancel()
}

func (task *SubmissionTask) Done() <-chan struct{} {
	return task.done
}

// Wait blocks until the task settles or ctx ends. A cancelled task reports
// ErrSubmissionCancelled.
func (task *SubmissionTask) Wait(ctx context.Context) (models.BookingRecord, error) {
	select {
	case <-task.done:
		return task.record, task.err
	case <-ctx.Done():
		return models.BookingRecord{}, ctx.Err()
	}
}

func (task *SubmissionTask) cancelled() bool {
	return task.ctx.Err() != nil
}

func (task *SubmissionTask) settle(record models.BookingRecord, err error) {
	task.record = record
	task.err = err
	task.cancel()
	close(task.done)
}
