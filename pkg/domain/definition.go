package domain

import "slices"

// DefaultStepLimit bounds a run when neither the definition nor the caller sets one.
const DefaultStepLimit = 10000

// Definition is a complete single-tape machine description together with the
// inputs it should be run against. It is produced by a loader and checked by
// the validator before the engine ever sees it.
type Definition struct {
	Name          string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	States        []State  `json:"states" yaml:"states"`
	InputAlphabet []Symbol `json:"input_alphabet" yaml:"input_alphabet"`
	TapeAlphabet  []Symbol `json:"tape_alphabet" yaml:"tape_alphabet"`
	Blank         Symbol   `json:"blank,omitempty" yaml:"blank,omitempty"`
	InitialState  State    `json:"initial_state" yaml:"initial_state"`
	AcceptStates  []State  `json:"accept_states" yaml:"accept_states"`
	Transitions   []Rule   `json:"transitions" yaml:"transitions"`
	Inputs        []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`

	// StepLimit overrides DefaultStepLimit when positive.
	StepLimit int `json:"step_limit,omitempty" yaml:"step_limit,omitempty"`
}

// BlankSymbol returns the declared blank or DefaultBlank.
func (d *Definition) BlankSymbol() Symbol {
	if d.Blank == "" {
		return DefaultBlank
	}
	return d.Blank
}

// IsAccepting reports whether s is one of the accept states.
func (d *Definition) IsAccepting(s State) bool {
	return slices.Contains(d.AcceptStates, s)
}

// HasState reports whether s is declared.
func (d *Definition) HasState(s State) bool {
	return slices.Contains(d.States, s)
}

// Tokenize splits an input string into one symbol per character.
func Tokenize(input string) []Symbol {
	out := make([]Symbol, 0, len(input))
	for _, r := range input {
		out = append(out, Symbol(string(r)))
	}
	return out
}

// Clone returns a deep copy so callers can't mutate a loader's definition.
func (d *Definition) Clone() *Definition {
	c := *d
	c.States = slices.Clone(d.States)
	c.InputAlphabet = slices.Clone(d.InputAlphabet)
	c.TapeAlphabet = slices.Clone(d.TapeAlphabet)
	c.AcceptStates = slices.Clone(d.AcceptStates)
	c.Transitions = slices.Clone(d.Transitions)
	c.Inputs = slices.Clone(d.Inputs)
	return &c
}
