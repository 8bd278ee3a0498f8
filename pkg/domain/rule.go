package domain

import "fmt"

// RuleKey identifies the left-hand side of a rule.
type RuleKey struct {
	State State
	Read  Symbol
}

func (k RuleKey) String() string {
	return fmt.Sprintf("(%s, %s)", k.State, k.Read)
}

// Rule is one entry of the transition function:
// in State reading Read, write Write, move the head by Move and enter Next.
type Rule struct {
	State State     `json:"state" yaml:"state"`
	Read  Symbol    `json:"read" yaml:"read"`
	Write Symbol    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
	Next  State     `json:"next" yaml:"next"`
}

// Key returns the (state, read) pair the rule is indexed by.
func (r Rule) Key() RuleKey {
	return RuleKey{State: r.State, Read: r.Read}
}

func (r Rule) String() string {
	return fmt.Sprintf("δ(%s, %s) = (%s, %s, %s)", r.State, r.Read, r.Next, r.Write, r.Move)
}
