package tests

import (
	"context"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ResultStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.ResultStore.
func ResultStoreContractTest(t *testing.T, store ports.ResultStore) {
	t.Helper()
	ctx := context.Background()

	result := domain.RunResult{
		RunID:      uuid.NewString(),
		Machine:    "swap",
		Index:      1,
		Input:      "ab",
		Outcome:    domain.OutcomeAccepted,
		FinalState: "qf",
		FinalTape:  "ba",
		Head:       2,
		Steps:      3,
		IDs:        []string{"[q0]ab", "b[q0]b", "ba[q0]B", "ba[qf]B"},
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, result))

		loaded, err := store.Load(ctx, result.RunID)
		require.NoError(t, err)
		assert.Equal(t, result, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Saved Result Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, result.RunID)
		require.NoError(t, err)
		loaded.IDs[0] = "mutated"

		again, err := store.Load(ctx, result.RunID)
		require.NoError(t, err)
		assert.Equal(t, "[q0]ab", again.IDs[0])
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, result.RunID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, result.RunID))

		_, err := store.Load(ctx, result.RunID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, result.RunID)

		assert.NoError(t, store.Delete(ctx, result.RunID), "deleting twice is not an error")
	})
}

// LibraryContractTest verifies that a ports.Library returns the expected machines.
func LibraryContractTest(t *testing.T, lib ports.Library, want map[string]*domain.Definition) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		for id, def := range want {
			got, err := lib.Get(ctx, id)
			require.NoError(t, err, id)
			assert.Equal(t, def.States, got.States, id)
			assert.Equal(t, def.Transitions, got.Transitions, id)
			assert.Equal(t, def.InitialState, got.InitialState, id)
			assert.Equal(t, def.AcceptStates, got.AcceptStates, id)
		}
	})

	t.Run("Get Not Found", func(t *testing.T) {
		_, err := lib.Get(ctx, "non-existent-machine")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := lib.List(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, len(want))
		for id := range want {
			assert.Contains(t, ids, id)
		}
	})
}
