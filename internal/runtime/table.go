package runtime

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Table is the deterministic transition function of a machine.
// It is read-only once built and safe to share between runs.
type Table struct {
	rules map[domain.RuleKey]domain.Rule
	order []domain.Rule
}

// NewTable indexes rules by (state, read). Two rules for the same key are a
// configuration error: the table never picks one of them silently.
func NewTable(rules []domain.Rule) (*Table, error) {
	t := &Table{
		rules: make(map[domain.RuleKey]domain.Rule, len(rules)),
		order: make([]domain.Rule, 0, len(rules)),
	}
	for i, r := range rules {
		key := r.Key()
		if prev, exists := t.rules[key]; exists {
			return nil, domain.NewConfigError(domain.ErrDuplicateRule,
				fmt.Sprintf("transitions[%d]", i),
				"%s already maps to %s", key, prev)
		}
		t.rules[key] = r
		t.order = append(t.order, r)
	}
	return t, nil
}

// Lookup returns the rule for (state, sym), if any.
func (t *Table) Lookup(state domain.State, sym domain.Symbol) (domain.Rule, bool) {
	r, ok := t.rules[domain.RuleKey{State: state, Read: sym}]
	return r, ok
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.order)
}

// Rules returns the rules in declaration order.
func (t *Table) Rules() []domain.Rule {
	out := make([]domain.Rule, len(t.order))
	copy(out, t.order)
	return out
}
