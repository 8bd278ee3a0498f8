package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	cases := map[string]domain.Direction{
		"L":     domain.Left,
		"r":     domain.Right,
		"S":     domain.Stay,
		"left":  domain.Left,
		"Right": domain.Right,
		" stay": domain.Stay,
	}
	for in, want := range cases {
		got, err := domain.ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := domain.ParseDirection("up")
	assert.Error(t, err)
}

func TestDirection_Offset(t *testing.T) {
	assert.Equal(t, -1, domain.Left.Offset())
	assert.Equal(t, 1, domain.Right.Offset())
	assert.Equal(t, 0, domain.Stay.Offset())
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []domain.Symbol{"a", "b", "#"}, domain.Tokenize("ab#"))
	assert.Empty(t, domain.Tokenize(""))
}

func TestDefinition_Defaults(t *testing.T) {
	def := &domain.Definition{AcceptStates: []domain.State{"qf"}}
	assert.Equal(t, domain.DefaultBlank, def.BlankSymbol())
	assert.True(t, def.IsAccepting("qf"))
	assert.False(t, def.IsAccepting("q0"))

	def.Blank = "_"
	assert.Equal(t, domain.Symbol("_"), def.BlankSymbol())
}

func TestDefinition_CloneIsolation(t *testing.T) {
	def := &domain.Definition{
		States: []domain.State{"q0"},
		Inputs: []string{"a"},
	}
	c := def.Clone()
	c.States[0] = "changed"
	c.Inputs = append(c.Inputs, "b")

	assert.Equal(t, domain.State("q0"), def.States[0])
	assert.Len(t, def.Inputs, 1)
}

func TestConfigError_Unwrap(t *testing.T) {
	err := domain.NewConfigError(domain.ErrDuplicateRule, "transitions[3]", "key %s already defined", domain.RuleKey{State: "q0", Read: "a"})

	assert.True(t, errors.Is(err, domain.ErrDuplicateRule))
	assert.Contains(t, err.Error(), "(q0, a)")

	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "transitions[3]", cfgErr.Key)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnStep: func(context.Context, *domain.StepEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnStep: func(context.Context, *domain.StepEvent) { calls = append(calls, "b") },
		OnHalt: func(context.Context, *domain.RunEvent) { calls = append(calls, "halt") },
	}

	merged := a.Merge(b)
	merged.OnStep(context.Background(), &domain.StepEvent{})
	merged.OnHalt(context.Background(), &domain.RunEvent{})

	assert.Nil(t, merged.OnRunStart)
	assert.Equal(t, []string{"a", "b", "halt"}, calls)
}
