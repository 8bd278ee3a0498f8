package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_YAML(t *testing.T) {
	path := writeFile(t, "anbn.yaml", testutils.AnBnYAML)

	def, err := file.NewLoader(path).Load(context.Background())
	require.NoError(t, err)

	want := testutils.AnBn()
	assert.Equal(t, "anbn", def.Name, "name defaults to the file name")
	assert.Equal(t, want.Transitions, def.Transitions)
	assert.Equal(t, want.Inputs, def.Inputs)
	assert.Equal(t, domain.DefaultBlank, def.BlankSymbol())
}

func TestLoader_JSON(t *testing.T) {
	path := writeFile(t, "swap.json", `{
		"name": "swapper",
		"states": ["q0", "qf"],
		"input_alphabet": ["a", "b"],
		"tape_alphabet": ["a", "b", "B"],
		"initial_state": "q0",
		"accept_states": ["qf"],
		"transitions": [
			{"state": "q0", "read": "a", "write": "b", "move": "R", "next": "q0"},
			{"state": "q0", "read": ["b"], "write": ["a"], "move": "R", "next": "q0"},
			{"state": "q0", "read": "B", "write": "B", "move": "S", "next": "qf"}
		],
		"inputs": ["ab"],
		"step_limit": 20
	}`)

	def, err := file.NewLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "swapper", def.Name)
	assert.Equal(t, testutils.Swap().Transitions, def.Transitions)
	assert.Equal(t, 20, def.StepLimit)
}

func TestParse_NumericLookingScalarsKeepTheirText(t *testing.T) {
	def, err := file.Parse([]byte(`
states: [0, 1, 10]
input_alphabet: [0, 1]
tape_alphabet: [0, 1, B]
initial_state: 0
accept_states: [10]
transitions:
  - {state: 0, read: 0, write: 1, move: R, next: 1}
  - {state: 1, read: B, write: B, move: S, next: 10}
inputs: [0011, 0100, 10, 1e3]
step_limit: 50
`), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"0011", "0100", "10", "1e3"}, def.Inputs)
	assert.Equal(t, []domain.State{"0", "1", "10"}, def.States)
	assert.Equal(t, []domain.Symbol{"0", "1"}, def.InputAlphabet)
	assert.Equal(t, domain.Rule{State: "0", Read: "0", Write: "1", Move: domain.Right, Next: "1"}, def.Transitions[0])
	assert.Equal(t, 50, def.StepLimit)
}

func TestParse_JSONNumbersKeepTheirText(t *testing.T) {
	def, err := file.Parse([]byte(`{
		"states": [0, 1],
		"initial_state": 0,
		"accept_states": [1],
		"inputs": ["0011", 10],
		"step_limit": 7
	}`), ".json")
	require.NoError(t, err)

	assert.Equal(t, []string{"0011", "10"}, def.Inputs)
	assert.Equal(t, []domain.State{"0", "1"}, def.States)
	assert.Equal(t, 7, def.StepLimit)
}

func TestLoader_MultiTapeRuleIsRejected(t *testing.T) {
	path := writeFile(t, "two.yaml", `
states: [q0]
initial_state: q0
transitions:
  - {state: q0, read: [a, b], write: [a, b], move: R, next: q0}
`)
	_, err := file.NewLoader(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.ErrorContains(t, err, "multi-tape transitions are not supported")
}

func TestLoader_Watch(t *testing.T) {
	path := writeFile(t, "anbn.yaml", testutils.AnBnYAML)
	// Unrelated files in the same directory are ignored.
	other := filepath.Join(filepath.Dir(path), "notes.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := file.NewLoader(path).Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	select {
	case got := <-changes:
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte(testutils.AnBnYAML+"\n"), 0644))
	select {
	case got := <-changes:
		assert.Equal(t, path, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-changes
		return !ok
	}, 2*time.Second, 10*time.Millisecond, "channel is closed after cancel")
}

func TestLoader_WatchMissingDirectory(t *testing.T) {
	_, err := file.NewLoader(filepath.Join(t.TempDir(), "gone", "m.yaml")).Watch(context.Background())
	assert.Error(t, err)
}

func TestLoader_Errors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		_, err := file.NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "mt: [unclosed")
		_, err := file.NewLoader(path).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("Empty Document", func(t *testing.T) {
		path := writeFile(t, "empty.yaml", "")
		_, err := file.NewLoader(path).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	})

	t.Run("Wrong Shape", func(t *testing.T) {
		path := writeFile(t, "shape.yaml", "states: {q0: 1}")
		_, err := file.NewLoader(path).Load(context.Background())
		assert.Error(t, err)
	})
}

func TestMarshal_RoundTrip(t *testing.T) {
	want := testutils.AnBn()

	data, err := file.Marshal(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mt:")

	got, err := file.Parse(data, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
