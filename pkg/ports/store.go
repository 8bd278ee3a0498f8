package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// ResultStore archives finished run results.
// It never holds a running configuration; results are immutable once saved.
type ResultStore interface {
	// Save persists a result under result.RunID.
	Save(ctx context.Context, result domain.RunResult) error

	// Load retrieves a result by run ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (domain.RunResult, error)

	// Delete removes a result. Deleting an unknown run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of archived runs.
	List(ctx context.Context) ([]string, error)
}
