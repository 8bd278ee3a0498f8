package dsl

import "github.com/aretw0/turing/pkg/domain"

// StateBuilder provides a fluent API for the rules leaving one state.
type StateBuilder struct {
	id      domain.State
	builder *Builder
}

// On adds the rule (state, read) -> (write, move, next).
func (s *StateBuilder) On(read, write, move, next string) *StateBuilder {
	b := s.builder
	dir, err := domain.ParseDirection(move)
	if err != nil {
		b.errs = append(b.errs, err)
		return s
	}

	b.State(next)
	b.symbol(domain.Symbol(read))
	b.symbol(domain.Symbol(write))
	b.def.Transitions = append(b.def.Transitions, domain.Rule{
		State: s.id,
		Read:  domain.Symbol(read),
		Write: domain.Symbol(write),
		Move:  dir,
		Next:  domain.State(next),
	})
	return s
}

// Accepting marks the state as accepting.
func (s *StateBuilder) Accepting() *StateBuilder {
	if !s.builder.def.IsAccepting(s.id) {
		s.builder.def.AcceptStates = append(s.builder.def.AcceptStates, s.id)
	}
	return s
}

// Initial makes this the initial state.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.def.InitialState = s.id
	return s
}

// Done returns to the machine builder.
func (s *StateBuilder) Done() *Builder {
	return s.builder
}
