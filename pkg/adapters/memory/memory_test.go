package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	tests.ResultStoreContractTest(t, memory.NewStore())
}

func TestStore_ConcurrentSave(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, domain.RunResult{RunID: string(rune('A' + i)), Index: i})
		}()
	}
	wg.Wait()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 50)
}

func TestLoader_Load(t *testing.T) {
	loader := memory.NewLoader(testutils.Swap())

	def, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutils.Swap(), def)

	def.States[0] = "mutated"
	again, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.State("q0"), again.States[0], "loader hands out copies")
}

func TestLibrary_Contract(t *testing.T) {
	lib, err := memory.NewLibrary(testutils.AnBn(), testutils.Swap())
	require.NoError(t, err)

	tests.LibraryContractTest(t, lib, map[string]*domain.Definition{
		"anbn": testutils.AnBn(),
		"swap": testutils.Swap(),
	})
}

func TestLibrary_Collision(t *testing.T) {
	_, err := memory.NewLibrary(testutils.Swap(), testutils.Swap())
	assert.ErrorContains(t, err, "collision")
}
