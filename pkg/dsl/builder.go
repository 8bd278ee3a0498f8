package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
)

// Builder manages the machine construction.
// States and tape symbols are collected from the rules in order of first use,
// so only the input alphabet and the accepting states need to be declared.
type Builder struct {
	def    domain.Definition
	states map[domain.State]*StateBuilder
	tape   map[domain.Symbol]bool
	errs   []error
}

// New creates a new machine builder.
func New(name string) *Builder {
	return &Builder{
		def: domain.Definition{
			Name:  name,
			Blank: domain.DefaultBlank,
		},
		states: make(map[domain.State]*StateBuilder),
		tape:   make(map[domain.Symbol]bool),
	}
}

// Describe sets a free-form description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Alphabet declares the input alphabet. Each symbol is also added to the tape alphabet.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	for _, s := range symbols {
		b.def.InputAlphabet = append(b.def.InputAlphabet, domain.Symbol(s))
		b.symbol(domain.Symbol(s))
	}
	return b
}

// Symbols adds tape-only symbols (markers) ahead of their first use in a rule.
func (b *Builder) Symbols(symbols ...string) *Builder {
	for _, s := range symbols {
		b.symbol(domain.Symbol(s))
	}
	return b
}

// Blank overrides the blank symbol ("B" by default).
func (b *Builder) Blank(symbol string) *Builder {
	b.def.Blank = domain.Symbol(symbol)
	return b
}

// Start sets the initial state. Without it the state of the first rule is used.
func (b *Builder) Start(id string) *Builder {
	b.State(id)
	b.def.InitialState = domain.State(id)
	return b
}

// Accept marks states as accepting.
func (b *Builder) Accept(ids ...string) *Builder {
	for _, id := range ids {
		b.State(id).Accepting()
	}
	return b
}

// Inputs attaches the inputs to run by default.
func (b *Builder) Inputs(inputs ...string) *Builder {
	b.def.Inputs = append(b.def.Inputs, inputs...)
	return b
}

// StepLimit sets the machine's own step limit.
func (b *Builder) StepLimit(n int) *Builder {
	b.def.StepLimit = n
	return b
}

// Rule adds one transition. move is one of L, R or S.
func (b *Builder) Rule(state, read, write, move, next string) *Builder {
	b.State(state).On(read, write, move, next)
	return b
}

// State returns the builder for a state, declaring it on first use.
func (b *Builder) State(id string) *StateBuilder {
	s := domain.State(id)
	if sb, ok := b.states[s]; ok {
		return sb
	}
	sb := &StateBuilder{id: s, builder: b}
	b.states[s] = sb
	b.def.States = append(b.def.States, s)
	return sb
}

func (b *Builder) symbol(s domain.Symbol) {
	if s == "" || b.tape[s] {
		return
	}
	b.tape[s] = true
	b.def.TapeAlphabet = append(b.def.TapeAlphabet, s)
}

// Build assembles and validates the definition.
func (b *Builder) Build() (*domain.Definition, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	def := b.def.Clone()
	if def.InitialState == "" && len(def.Transitions) > 0 {
		def.InitialState = def.Transitions[0].State
	}
	if !b.tape[def.Blank] {
		def.TapeAlphabet = append(def.TapeAlphabet, def.Blank)
	}

	if err := validator.Validate(def); err != nil {
		return nil, fmt.Errorf("invalid machine %q: %w", def.Name, err)
	}
	return def, nil
}

// BuildLoader compiles the machine into an in-memory DefinitionLoader.
func (b *Builder) BuildLoader() (*memory.Loader, error) {
	def, err := b.Build()
	if err != nil {
		return nil, err
	}
	return memory.NewLoader(def), nil
}
