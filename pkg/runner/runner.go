package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Simulator runs a single input to completion.
// runtime.Engine and turing.Machine both satisfy it.
type Simulator interface {
	Simulate(ctx context.Context, index int, input string, stepLimit int) domain.RunResult
}

// Runner drives a Simulator over a batch of inputs.
// Every input gets a fresh run; results are returned in input order
// regardless of the concurrency level.
type Runner struct {
	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Store archives finished results.
	// If nil, results are only returned.
	Store ports.ResultStore

	StepLimit   int
	Concurrency int

	newID func() string
}

// New creates a Runner with the default step limit and sequential execution.
func New(opts ...Option) *Runner {
	r := &Runner{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		StepLimit:   domain.DefaultStepLimit,
		Concurrency: 1,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run simulates every input and returns one result per input.
// Cancelling ctx stops scheduling new inputs and Run returns ctx.Err();
// a run already in progress finishes within its step limit.
func (r *Runner) Run(ctx context.Context, sim Simulator, inputs []string) ([]domain.RunResult, error) {
	results := make([]domain.RunResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Concurrency, 1))

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := sim.Simulate(gctx, i, input, r.StepLimit)
			res.RunID = r.newID()

			if r.Store != nil {
				if err := r.Store.Save(gctx, res); err != nil {
					return fmt.Errorf("failed to archive run %d: %w", i, err)
				}
			}

			r.Logger.Debug("Run completed",
				"run_id", res.RunID,
				"index", i,
				"outcome", res.Outcome,
				"steps", res.Steps,
			)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
