// Package workers provides a small bounded pool for running batches of
// background tasks, used by the seeder to load fixtures concurrently.
package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/specmock/specmock/internal/logger"
)

// Task is one unit of background work. Tasks receive a context that is
// cancelled as soon as any task in the same batch fails.
type Task func(ctx context.Context) error

// Pool runs batches of tasks with a fixed concurrency limit.
type Pool struct {
	limit int

	logger *logger.Logger
}

// NewPool constructs a pool running at most limit tasks at a time. A limit
// below one is treated as sequential execution.
func NewPool(limit int, logger *logger.Logger) *Pool {
	if limit < 1 {
		limit = 1
	}

	return &Pool{limit: limit, logger: logger}
}

// Run executes all tasks and blocks until they finish. The first error
// cancels the shared context and is returned after the remaining running
// tasks complete.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	p.logger.Debug().
		Int("tasks", len(tasks)).
		Int("limit", p.limit).
		Msg("running task batch")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for _, task := range tasks {
		g.Go(func() error {
			return task(ctx)
		})
	}

	return g.Wait()
}
