package domain

// Outcome is the terminal classification of a run.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	// OutcomeTimedOut means the step limit was reached while a rule still applied.
	// It is a result, not an error.
	OutcomeTimedOut Outcome = "timed_out"
)

// Halted reports whether the machine stopped on its own (no applicable rule).
func (o Outcome) Halted() bool {
	return o == OutcomeAccepted || o == OutcomeRejected
}

// RunResult summarizes one simulation of a machine against one input.
type RunResult struct {
	RunID      string  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Machine    string  `json:"machine,omitempty" yaml:"machine,omitempty"`
	Index      int     `json:"index" yaml:"index"`
	Input      string  `json:"input" yaml:"input"`
	Outcome    Outcome `json:"outcome" yaml:"outcome"`
	FinalState State   `json:"final_state" yaml:"final_state"`
	FinalTape  string  `json:"final_tape" yaml:"final_tape"`
	Head       int     `json:"head" yaml:"head"`
	// Steps is the number of transitions applied.
	Steps int `json:"steps" yaml:"steps"`
	// IDs holds one instantaneous description per step, step 0 included.
	IDs []string `json:"ids" yaml:"ids"`
	// Sealed carries the encrypted result when it was archived through an encrypting store.
	Sealed string `json:"sealed,omitempty" yaml:"sealed,omitempty"`
}

// Accepted is a convenience for Outcome == OutcomeAccepted.
func (r RunResult) Accepted() bool {
	return r.Outcome == OutcomeAccepted
}
