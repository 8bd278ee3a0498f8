package validator

import (
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
)

// Error aggregates every problem found in a definition.
type Error struct {
	Errors []error
}

func (e *Error) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *Error) Unwrap() []error {
	return e.Errors
}

// Errors returns the individual failures if err is a validation Error.
// Otherwise returns nil.
func Errors(err error) []error {
	if aggr, ok := err.(*Error); ok {
		return aggr.Errors
	}
	return nil
}

type checker struct {
	def    *domain.Definition
	states map[domain.State]bool
	tape   map[domain.Symbol]bool
	input  map[domain.Symbol]bool
	errs   []error
}

// Validate checks that def is a well-formed deterministic single-tape machine
// and that every input only uses input-alphabet symbols.
// All failures are reported together as *Error, each one a *domain.ConfigError.
func Validate(def *domain.Definition) error {
	c := &checker{
		def:    def,
		states: set(def.States),
		tape:   set(def.TapeAlphabet),
		input:  set(def.InputAlphabet),
	}

	c.checkStates()
	c.checkAlphabets()
	c.checkTransitions()
	c.checkInputs()

	if len(c.errs) > 0 {
		return &Error{Errors: c.errs}
	}
	return nil
}

func (c *checker) fail(cause error, key, format string, args ...any) {
	c.errs = append(c.errs, domain.NewConfigError(cause, key, format, args...))
}

func (c *checker) checkStates() {
	if len(c.def.States) == 0 {
		c.fail(domain.ErrInvalidDefinition, "states", "at least one state is required")
	}
	if c.def.InitialState == "" {
		c.fail(domain.ErrInvalidDefinition, "initial_state", "required")
	} else if !c.states[c.def.InitialState] {
		c.fail(domain.ErrUndeclaredState, "initial_state", "%q is not in states", c.def.InitialState)
	}
	for i, s := range c.def.AcceptStates {
		if !c.states[s] {
			c.fail(domain.ErrUndeclaredState, fmt.Sprintf("accept_states[%d]", i), "%q is not in states", s)
		}
	}
}

func (c *checker) checkAlphabets() {
	blank := c.def.BlankSymbol()
	if !c.tape[blank] {
		c.fail(domain.ErrUndeclaredSymbol, "tape_alphabet", "blank %q must be a tape symbol", blank)
	}
	if c.input[blank] {
		c.fail(domain.ErrInvalidDefinition, "input_alphabet", "blank %q can't be an input symbol", blank)
	}
	for i, sym := range c.def.InputAlphabet {
		if !c.tape[sym] {
			c.fail(domain.ErrUndeclaredSymbol, fmt.Sprintf("input_alphabet[%d]", i), "%q is not in tape_alphabet", sym)
		}
	}
	for i, sym := range c.def.TapeAlphabet {
		if utf8.RuneCountInString(string(sym)) != 1 {
			c.fail(domain.ErrInvalidDefinition, fmt.Sprintf("tape_alphabet[%d]", i), "symbol %q must be exactly one character", sym)
		}
	}
}

func (c *checker) checkTransitions() {
	seen := make(map[domain.RuleKey]int, len(c.def.Transitions))
	for i, r := range c.def.Transitions {
		key := fmt.Sprintf("transitions[%d]", i)
		if !c.states[r.State] {
			c.fail(domain.ErrUndeclaredState, key, "state %q is not in states", r.State)
		}
		if !c.states[r.Next] {
			c.fail(domain.ErrUndeclaredState, key, "next %q is not in states", r.Next)
		}
		if !c.tape[r.Read] {
			c.fail(domain.ErrUndeclaredSymbol, key, "read %q is not in tape_alphabet", r.Read)
		}
		if !c.tape[r.Write] {
			c.fail(domain.ErrUndeclaredSymbol, key, "write %q is not in tape_alphabet", r.Write)
		}
		if !r.Move.Valid() {
			c.fail(domain.ErrInvalidDefinition, key, "move %q must be L, R or S", r.Move)
		}
		if prev, dup := seen[r.Key()]; dup {
			c.fail(domain.ErrDuplicateRule, key, "%s already defined by transitions[%d]", r.Key(), prev)
			continue
		}
		seen[r.Key()] = i
	}
}

func (c *checker) checkInputs() {
	for i, in := range c.def.Inputs {
		for _, sym := range domain.Tokenize(in) {
			if !c.input[sym] {
				c.fail(domain.ErrUndeclaredSymbol, fmt.Sprintf("inputs[%d]", i), "%q contains %q, which is not in input_alphabet", in, sym)
				break
			}
		}
	}
}

// Inputs checks ad hoc inputs against a definition that was already validated.
func Inputs(def *domain.Definition, inputs []string) error {
	c := &checker{
		def:   &domain.Definition{InputAlphabet: def.InputAlphabet, Inputs: inputs},
		input: set(def.InputAlphabet),
	}
	c.checkInputs()
	if len(c.errs) > 0 {
		return &Error{Errors: c.errs}
	}
	return nil
}

func set[T comparable](items []T) map[T]bool {
	m := make(map[T]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
