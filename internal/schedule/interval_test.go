package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingTask struct {
	runs atomic.Int64
}

func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	return nil
}

func (t *countingTask) Name() string { return "counting task" }

func TestRunEvery_RunsImmediately(t *testing.T) {
	task := &countingTask{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RunEvery(ctx, task, time.Hour)
	}()

	assert.Eventually(t, func() bool {
		return task.runs.Load() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestRunEvery_RepeatsOnInterval(t *testing.T) {
	task := &countingTask{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = RunEvery(ctx, task, 20*time.Millisecond)
	}()

	assert.Eventually(t, func() bool {
		return task.runs.Load() >= 3
	}, 2*time.Second, 10*time.Millisecond)
}
