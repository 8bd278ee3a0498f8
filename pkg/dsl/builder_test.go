package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_AnBn(t *testing.T) {
	def, err := New("anbn").
		Alphabet("a", "b").
		Symbols("X", "Y").
		Start("q0").
		Rule("q0", "a", "X", "R", "q1").
		Rule("q0", "Y", "Y", "R", "q3").
		Rule("q1", "a", "a", "R", "q1").
		Rule("q1", "Y", "Y", "R", "q1").
		Rule("q1", "b", "Y", "L", "q2").
		Rule("q2", "a", "a", "L", "q2").
		Rule("q2", "Y", "Y", "L", "q2").
		Rule("q2", "X", "X", "R", "q0").
		Rule("q3", "Y", "Y", "R", "q3").
		Rule("q3", "B", "B", "R", "q4").
		Accept("q4").
		Inputs("aabb", "aaabbbbb").
		Build()
	require.NoError(t, err)

	want := testutils.AnBn()
	assert.ElementsMatch(t, want.States, def.States)
	assert.Equal(t, want.InputAlphabet, def.InputAlphabet)
	assert.Equal(t, want.TapeAlphabet, def.TapeAlphabet)
	assert.Equal(t, want.Transitions, def.Transitions)
	assert.Equal(t, want.AcceptStates, def.AcceptStates)
	assert.Equal(t, want.InitialState, def.InitialState)
	assert.Equal(t, want.Inputs, def.Inputs)
}

func TestBuilder_StateForm(t *testing.T) {
	b := New("swap").Alphabet("a", "b")
	b.State("q0").Initial().
		On("a", "b", "R", "q0").
		On("b", "a", "R", "q0").
		On("B", "B", "S", "qf")
	b.State("qf").Accepting().Done().Describe("swaps a and b")

	def, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "swaps a and b", def.Description)
	assert.Equal(t, testutils.Swap().Transitions, def.Transitions)
	assert.Equal(t, []domain.State{"q0", "qf"}, def.States)
	assert.Equal(t, []domain.Symbol{"a", "b", "B"}, def.TapeAlphabet)
}

func TestBuilder_DefaultsInitialToFirstRule(t *testing.T) {
	def, err := New("m").Alphabet("a").Accept("qf").Rule("p", "a", "a", "R", "qf").Build()
	require.NoError(t, err)
	assert.Equal(t, domain.State("p"), def.InitialState)
}

func TestBuilder_AddsBlankToTape(t *testing.T) {
	def, err := New("m").Alphabet("a").Blank("_").Accept("qf").Rule("q0", "a", "a", "R", "qf").Build()
	require.NoError(t, err)
	assert.Contains(t, def.TapeAlphabet, domain.Symbol("_"))
	assert.Equal(t, domain.Symbol("_"), def.Blank)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("Invalid Direction", func(t *testing.T) {
		_, err := New("m").Alphabet("a").Rule("q0", "a", "a", "up", "q0").Build()
		assert.ErrorContains(t, err, "invalid direction")
	})

	t.Run("Duplicate Rule", func(t *testing.T) {
		_, err := New("m").Alphabet("a").
			Rule("q0", "a", "a", "R", "q0").
			Rule("q0", "a", "a", "L", "q0").
			Build()
		assert.ErrorIs(t, err, domain.ErrDuplicateRule)
	})

	t.Run("Input Outside Alphabet", func(t *testing.T) {
		_, err := New("m").Alphabet("a").Rule("q0", "a", "a", "R", "q0").Inputs("ab").Build()
		assert.ErrorIs(t, err, domain.ErrUndeclaredSymbol)
	})
}

func TestBuilder_BuildLoader(t *testing.T) {
	loader, err := New("swap").Alphabet("a").Accept("qf").Rule("q0", "B", "B", "S", "qf").BuildLoader()
	require.NoError(t, err)

	def, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "swap", def.Name)
}

func TestBuilder_BuildDoesNotAlias(t *testing.T) {
	b := New("m").Alphabet("a").Accept("qf").Rule("q0", "a", "a", "R", "qf")
	first, err := b.Build()
	require.NoError(t, err)

	b.Rule("qf", "a", "a", "R", "qf")
	assert.Len(t, first.Transitions, 1)
}
