package testutils

import "github.com/aretw0/turing/pkg/domain"

func rule(state, read, write string, move domain.Direction, next string) domain.Rule {
	return domain.Rule{
		State: domain.State(state),
		Read:  domain.Symbol(read),
		Write: domain.Symbol(write),
		Move:  move,
		Next:  domain.State(next),
	}
}

// AnBn recognizes a^n b^n (n >= 1) by crossing off one a (as X) and one b (as Y) per pass.
func AnBn() *domain.Definition {
	R, L := domain.Right, domain.Left
	return &domain.Definition{
		Name:          "anbn",
		States:        []domain.State{"q0", "q1", "q2", "q3", "q4"},
		InputAlphabet: []domain.Symbol{"a", "b"},
		TapeAlphabet:  []domain.Symbol{"a", "b", "X", "Y", "B"},
		Blank:         "B",
		InitialState:  "q0",
		AcceptStates:  []domain.State{"q4"},
		Transitions: []domain.Rule{
			rule("q0", "a", "X", R, "q1"),
			rule("q0", "Y", "Y", R, "q3"),
			rule("q1", "a", "a", R, "q1"),
			rule("q1", "Y", "Y", R, "q1"),
			rule("q1", "b", "Y", L, "q2"),
			rule("q2", "a", "a", L, "q2"),
			rule("q2", "Y", "Y", L, "q2"),
			rule("q2", "X", "X", R, "q0"),
			rule("q3", "Y", "Y", R, "q3"),
			rule("q3", "B", "B", R, "q4"),
		},
		Inputs: []string{"aabb", "aaabbbbb"},
	}
}

// Swap exchanges every a with b and vice versa, then accepts on the first blank.
func Swap() *domain.Definition {
	R, S := domain.Right, domain.Stay
	return &domain.Definition{
		Name:          "swap",
		States:        []domain.State{"q0", "qf"},
		InputAlphabet: []domain.Symbol{"a", "b"},
		TapeAlphabet:  []domain.Symbol{"a", "b", "B"},
		Blank:         "B",
		InitialState:  "q0",
		AcceptStates:  []domain.State{"qf"},
		Transitions: []domain.Rule{
			rule("q0", "a", "b", R, "q0"),
			rule("q0", "b", "a", R, "q0"),
			rule("q0", "B", "B", S, "qf"),
		},
		Inputs: []string{"aaaaa", "ababab"},
	}
}

// Loop walks right over blanks forever.
func Loop() *domain.Definition {
	return &domain.Definition{
		Name:          "loop",
		States:        []domain.State{"q0", "qf"},
		InputAlphabet: []domain.Symbol{"a"},
		TapeAlphabet:  []domain.Symbol{"a", "B"},
		Blank:         "B",
		InitialState:  "q0",
		AcceptStates:  []domain.State{"qf"},
		Transitions: []domain.Rule{
			rule("q0", "a", "a", domain.Right, "q0"),
			rule("q0", "B", "B", domain.Right, "q0"),
		},
		Inputs: []string{""},
	}
}

// AnBnYAML is AnBn in the on-disk layout read by the file loader.
const AnBnYAML = `mt:
  states: [q0, q1, q2, q3, q4]
  input_alphabet: [a, b]
  tape_alphabet: [a, b, X, Y, B]
  initial_state: q0
  accept_states: [q4]
  transitions:
    - {state: q0, read: [a], write: [X], move: R, next: q1}
    - {state: q0, read: [Y], write: [Y], move: R, next: q3}
    - {state: q1, read: [a], write: [a], move: R, next: q1}
    - {state: q1, read: [Y], write: [Y], move: R, next: q1}
    - {state: q1, read: [b], write: [Y], move: L, next: q2}
    - {state: q2, read: [a], write: [a], move: L, next: q2}
    - {state: q2, read: [Y], write: [Y], move: L, next: q2}
    - {state: q2, read: [X], write: [X], move: R, next: q0}
    - {state: q3, read: [Y], write: [Y], move: R, next: q3}
    - {state: q3, read: [B], write: [B], move: R, next: q4}
inputs:
  - aabb
  - aaabbbbb
`

// AnBnMarkdown is AnBn as a library document: flat frontmatter plus a description body.
const AnBnMarkdown = `---
states: [q0, q1, q2, q3, q4]
input_alphabet: [a, b]
tape_alphabet: [a, b, X, Y, B]
initial_state: q0
accept_states: [q4]
transitions:
  - {state: q0, read: [a], write: [X], move: R, next: q1}
  - {state: q0, read: [Y], write: [Y], move: R, next: q3}
  - {state: q1, read: [a], write: [a], move: R, next: q1}
  - {state: q1, read: [Y], write: [Y], move: R, next: q1}
  - {state: q1, read: [b], write: [Y], move: L, next: q2}
  - {state: q2, read: [a], write: [a], move: L, next: q2}
  - {state: q2, read: [Y], write: [Y], move: L, next: q2}
  - {state: q2, read: [X], write: [X], move: R, next: q0}
  - {state: q3, read: [Y], write: [Y], move: R, next: q3}
  - {state: q3, read: [B], write: [B], move: R, next: q4}
inputs: [aabb, aaabbbbb]
---
Counts a's against b's.
`
