package schedule

import (
	"context"
	"log/slog"
	"time"
)

// RunEvery runs the task once immediately, then again on every tick until
// ctx is cancelled. Cycles never overlap: the next run is only scheduled
// after the previous one returns. A failed run does not stop the loop.
func RunEvery(ctx context.Context, task Task, interval time.Duration) error {
	if err := task.Run(ctx); err != nil {
		slog.Error("task run failed", "task", task.Name(), "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping task loop", "task", task.Name())
			return nil
		case <-ticker.C:
			if err := task.Run(ctx); err != nil {
				slog.Error("task run failed", "task", task.Name(), "error", err)
			}
		}
	}
}
