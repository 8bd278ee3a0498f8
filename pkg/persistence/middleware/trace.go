package middleware

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

type traceLimitMiddleware struct {
	next  ports.ResultStore
	limit int
}

// NewTraceLimitMiddleware creates a middleware that archives at most limit
// instantaneous descriptions per run: the first limit-1 and the final one.
// The in-memory result handed to Save is never modified. A limit below 2 keeps only the final ID.
func NewTraceLimitMiddleware(limit int) Middleware {
	return func(next ports.ResultStore) ports.ResultStore {
		return &traceLimitMiddleware{next: next, limit: max(limit, 1)}
	}
}

func (m *traceLimitMiddleware) Save(ctx context.Context, result domain.RunResult) error {
	if len(result.IDs) > m.limit {
		ids := make([]string, 0, m.limit)
		ids = append(ids, result.IDs[:m.limit-1]...)
		ids = append(ids, result.IDs[len(result.IDs)-1])
		result.IDs = ids
	}
	return m.next.Save(ctx, result)
}

func (m *traceLimitMiddleware) Load(ctx context.Context, runID string) (domain.RunResult, error) {
	return m.next.Load(ctx, runID)
}

func (m *traceLimitMiddleware) Delete(ctx context.Context, runID string) error {
	return m.next.Delete(ctx, runID)
}

func (m *traceLimitMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
