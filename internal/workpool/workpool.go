// Package workpool runs independent tasks concurrently.
package workpool

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrNoTasks is returned when Run is asked for fewer than one task.
var ErrNoTasks = errors.New("workpool: task count must be positive")

// Task is one unit of work. worker is the task's 0-based index.
type Task func(ctx context.Context, worker int) error

// Run starts n tasks with at most limit running at once (limit <= 0 runs all
// of them at once). Tasks share nothing but ctx. The first error cancels the
// context passed to the others and is returned after every task has exited.
func Run(ctx context.Context, n, limit int, task Task) error {
	if n < 1 {
		return ErrNoTasks
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := 0; i < n; i++ {
		worker := i
		g.Go(func() error {
			return task(ctx, worker)
		})
	}
	return g.Wait()
}
