package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func sampleResult(runID string) domain.RunResult {
	return domain.RunResult{
		RunID:      runID,
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
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	ctx := context.Background()
	original := sampleResult("run-1")

	// 1. Save
	require.NoError(t, secureStore.Save(ctx, original))

	// 2. Verify Underlying Store directly (Should be encrypted)
	stored, err := underlyingStore.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, stored.Input)
	assert.Empty(t, stored.FinalTape)
	assert.Empty(t, stored.IDs)
	assert.NotEmpty(t, stored.Sealed)
	assert.Equal(t, domain.OutcomeAccepted, stored.Outcome, "outcome stays readable")
	assert.Equal(t, 3, stored.Steps)

	// 3. Load via Middleware (Should be decrypted)
	loaded, err := secureStore.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	ids, err := secureStore.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1"}, ids)

	require.NoError(t, secureStore.Delete(ctx, "run-1"))
	_, err = secureStore.Load(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)

	// 1. Save with OLD key
	require.NoError(t, secureStoreOld.Save(ctx, sampleResult("rotation")))

	// 2. Load with NEW key (Active) + OLD key (Fallback)
	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, "rotation")
	require.NoError(t, err, "fallback key decrypts")
	assert.Equal(t, "ba", loaded.FinalTape)

	// 3. Save again with the NEW key
	require.NoError(t, secureStoreNew.Save(ctx, loaded))

	// 4. The OLD key alone can no longer read it
	_, err = secureStoreOld.Load(ctx, "rotation")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RefusesPlainResults(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlyingStore.Save(ctx, sampleResult("plain")))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	_, err := secureStore.Load(ctx, "plain")
	assert.ErrorContains(t, err, "missing encrypted data envelope")
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	parsed, err := middleware.ParseKey(" " + hex.EncodeToString(key) + "\n")
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = middleware.ParseKey("zz")
	assert.Error(t, err)

	_, err = middleware.ParseKey(hex.EncodeToString(key[:16]))
	assert.ErrorContains(t, err, "32 bytes")
}
