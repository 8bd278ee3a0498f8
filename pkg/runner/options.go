package runner

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures a ResultStore that archives every finished run.
func WithStore(store ports.ResultStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithStepLimit sets the maximum number of transitions per run.
// Negative values are treated as 0 by the engine.
func WithStepLimit(limit int) Option {
	return func(r *Runner) {
		r.StepLimit = limit
	}
}

// WithConcurrency sets how many inputs may be simulated at once.
// Values below 1 mean sequential execution.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.Concurrency = max(n, 1)
	}
}

// WithIDGenerator replaces the RunID generator (UUIDv4 by default).
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}
