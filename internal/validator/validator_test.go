package validator_test

import (
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidMachines(t *testing.T) {
	for _, def := range []*domain.Definition{testutils.AnBn(), testutils.Swap(), testutils.Loop()} {
		assert.NoError(t, validator.Validate(def), def.Name)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Definition)
		cause  error
		key    string
	}{
		{
			name:   "Undeclared Initial State",
			mutate: func(d *domain.Definition) { d.InitialState = "start" },
			cause:  domain.ErrUndeclaredState,
			key:    "initial_state",
		},
		{
			name:   "Missing Initial State",
			mutate: func(d *domain.Definition) { d.InitialState = "" },
			cause:  domain.ErrInvalidDefinition,
			key:    "initial_state",
		},
		{
			name:   "Undeclared Accept State",
			mutate: func(d *domain.Definition) { d.AcceptStates = append(d.AcceptStates, "done") },
			cause:  domain.ErrUndeclaredState,
			key:    "accept_states[1]",
		},
		{
			name:   "Blank Missing From Tape Alphabet",
			mutate: func(d *domain.Definition) { d.Blank = "_" },
			cause:  domain.ErrUndeclaredSymbol,
			key:    "tape_alphabet",
		},
		{
			name:   "Blank In Input Alphabet",
			mutate: func(d *domain.Definition) { d.InputAlphabet = append(d.InputAlphabet, "B") },
			cause:  domain.ErrInvalidDefinition,
			key:    "input_alphabet",
		},
		{
			name:   "Input Symbol Outside Tape Alphabet",
			mutate: func(d *domain.Definition) { d.InputAlphabet = append(d.InputAlphabet, "c") },
			cause:  domain.ErrUndeclaredSymbol,
			key:    "input_alphabet[2]",
		},
		{
			name:   "Multi Character Symbol",
			mutate: func(d *domain.Definition) { d.TapeAlphabet = append(d.TapeAlphabet, "ab") },
			cause:  domain.ErrInvalidDefinition,
			key:    "tape_alphabet[5]",
		},
		{
			name: "Duplicate Rule",
			mutate: func(d *domain.Definition) {
				d.Transitions = append(d.Transitions, domain.Rule{State: "q0", Read: "a", Write: "a", Move: domain.Right, Next: "q0"})
			},
			cause: domain.ErrDuplicateRule,
			key:   "transitions[10]",
		},
		{
			name:   "Rule With Unknown Next State",
			mutate: func(d *domain.Definition) { d.Transitions[0].Next = "q9" },
			cause:  domain.ErrUndeclaredState,
			key:    "transitions[0]",
		},
		{
			name:   "Rule With Unknown Write Symbol",
			mutate: func(d *domain.Definition) { d.Transitions[1].Write = "Z" },
			cause:  domain.ErrUndeclaredSymbol,
			key:    "transitions[1]",
		},
		{
			name:   "Rule With Bad Move",
			mutate: func(d *domain.Definition) { d.Transitions[2].Move = "U" },
			cause:  domain.ErrInvalidDefinition,
			key:    "transitions[2]",
		},
		{
			name:   "Input Outside Input Alphabet",
			mutate: func(d *domain.Definition) { d.Inputs = append(d.Inputs, "abX") },
			cause:  domain.ErrUndeclaredSymbol,
			key:    "inputs[2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testutils.AnBn()
			tt.mutate(def)

			err := validator.Validate(def)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.cause)

			errs := validator.Errors(err)
			require.Len(t, errs, 1, err.Error())

			var cfgErr *domain.ConfigError
			require.ErrorAs(t, errs[0], &cfgErr)
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	def := testutils.Swap()
	def.InitialState = "nope"
	def.AcceptStates = []domain.State{"also-nope"}
	def.Inputs = []string{"abc"}

	err := validator.Validate(def)
	require.Error(t, err)
	assert.Len(t, validator.Errors(err), 3)
	assert.Contains(t, err.Error(), "3 validation errors")
}

func TestValidate_EmptyDefinition(t *testing.T) {
	err := validator.Validate(&domain.Definition{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.ErrorIs(t, err, domain.ErrUndeclaredSymbol, "default blank missing from empty tape alphabet")
}

func TestInputs(t *testing.T) {
	def := testutils.AnBn()
	assert.NoError(t, validator.Inputs(def, []string{"", "ab", "bbaa"}))

	err := validator.Inputs(def, []string{"ab", "aXb"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUndeclaredSymbol)
	assert.Contains(t, err.Error(), "inputs[1]")
}

func TestErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, validator.Errors(assert.AnError))
}
