package dto

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// MachineMetadata is the on-disk shape of a machine description.
// It uses "mapstructure" tags to match the YAML/frontmatter keys.
type MachineMetadata struct {
	ID            string             `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name          string             `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description   string             `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	States        []string           `json:"states" yaml:"states" mapstructure:"states"`
	InputAlphabet []string           `json:"input_alphabet" yaml:"input_alphabet" mapstructure:"input_alphabet"`
	TapeAlphabet  []string           `json:"tape_alphabet" yaml:"tape_alphabet" mapstructure:"tape_alphabet"`
	Blank         string             `json:"blank,omitempty" yaml:"blank,omitempty" mapstructure:"blank"`
	InitialState  string             `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
	AcceptStates  []string           `json:"accept_states" yaml:"accept_states" mapstructure:"accept_states"`
	Transitions   []LoaderTransition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
	Inputs        []string           `json:"inputs,omitempty" yaml:"inputs,omitempty" mapstructure:"inputs"`
	StepLimit     int                `json:"step_limit,omitempty" yaml:"step_limit,omitempty" mapstructure:"step_limit"`
}

// LoaderTransition is one rule as written by hand.
// read and write may be a scalar or a one-element list. The list form comes from
// multi-tape layouts; lists naming more than one tape are rejected.
type LoaderTransition struct {
	State string   `json:"state" yaml:"state" mapstructure:"state"`
	From  string   `json:"from,omitempty" yaml:"from,omitempty" mapstructure:"from"`
	Read  []string `json:"read" yaml:"read" mapstructure:"read"`
	Write []string `json:"write" yaml:"write" mapstructure:"write"`
	Move  string   `json:"move" yaml:"move" mapstructure:"move"`
	Next  string   `json:"next" yaml:"next" mapstructure:"next"`
	To    string   `json:"to,omitempty" yaml:"to,omitempty" mapstructure:"to"`
}

// MachineDocument is a whole machine file. The machine either sits under "mt"
// (with inputs alongside it) or directly at the top level.
type MachineDocument struct {
	MT              *MachineMetadata `json:"mt,omitempty" yaml:"mt,omitempty" mapstructure:"mt"`
	MachineMetadata `yaml:",inline" mapstructure:",squash"`
}

// Decode maps a generic document (from YAML, JSON or frontmatter) onto out.
// Weak typing lets numeric state names and scalar read/write values through.
func Decode(raw any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode machine: %w", err)
	}
	return nil
}

// Machine returns the machine part of the document, merging top-level inputs
// into an "mt" block that has none.
func (d *MachineDocument) Machine() MachineMetadata {
	if d.MT == nil {
		return d.MachineMetadata
	}
	m := *d.MT
	if len(m.Inputs) == 0 {
		m.Inputs = d.Inputs
	}
	if m.StepLimit == 0 {
		m.StepLimit = d.StepLimit
	}
	if m.Name == "" {
		m.Name = d.Name
	}
	return m
}

// ToDefinition converts the metadata into a domain definition.
// Unknown move letters are kept as-is so the validator can report them.
// Transitions reading or writing more than one tape are a ConfigError.
func (m MachineMetadata) ToDefinition() (*domain.Definition, error) {
	def := &domain.Definition{
		Name:          m.Name,
		Description:   m.Description,
		States:        convert[domain.State](m.States),
		InputAlphabet: convert[domain.Symbol](m.InputAlphabet),
		TapeAlphabet:  convert[domain.Symbol](m.TapeAlphabet),
		Blank:         domain.Symbol(m.Blank),
		InitialState:  domain.State(m.InitialState),
		AcceptStates:  convert[domain.State](m.AcceptStates),
		Transitions:   make([]domain.Rule, 0, len(m.Transitions)),
		Inputs:        m.Inputs,
		StepLimit:     m.StepLimit,
	}
	if def.Name == "" {
		def.Name = m.ID
	}

	for i, lt := range m.Transitions {
		read, err := singleTape(lt.Read, i, "read")
		if err != nil {
			return nil, err
		}
		write, err := singleTape(lt.Write, i, "write")
		if err != nil {
			return nil, err
		}
		state := lt.State
		if state == "" {
			state = lt.From
		}
		next := lt.Next
		if next == "" {
			next = lt.To
		}
		move, err := domain.ParseDirection(lt.Move)
		if err != nil {
			move = domain.Direction(lt.Move)
		}
		def.Transitions = append(def.Transitions, domain.Rule{
			State: domain.State(state),
			Read:  domain.Symbol(read),
			Write: domain.Symbol(write),
			Move:  move,
			Next:  domain.State(next),
		})
	}
	return def, nil
}

// FromDefinition is the inverse of ToDefinition, used when writing machines out.
func FromDefinition(def *domain.Definition) MachineMetadata {
	m := MachineMetadata{
		Name:          def.Name,
		Description:   def.Description,
		States:        convert[string](def.States),
		InputAlphabet: convert[string](def.InputAlphabet),
		TapeAlphabet:  convert[string](def.TapeAlphabet),
		Blank:         string(def.Blank),
		InitialState:  string(def.InitialState),
		AcceptStates:  convert[string](def.AcceptStates),
		Inputs:        def.Inputs,
		StepLimit:     def.StepLimit,
	}
	for _, r := range def.Transitions {
		m.Transitions = append(m.Transitions, LoaderTransition{
			State: string(r.State),
			Read:  []string{string(r.Read)},
			Write: []string{string(r.Write)},
			Move:  string(r.Move),
			Next:  string(r.Next),
		})
	}
	return m
}

func singleTape(values []string, index int, field string) (string, error) {
	switch len(values) {
	case 0:
		return "", nil
	case 1:
		return values[0], nil
	}
	return "", domain.NewConfigError(domain.ErrInvalidDefinition, fmt.Sprintf("transitions[%d].%s", index, field),
		"multi-tape transitions are not supported (%d symbols)", len(values))
}

func convert[To, From ~string](in []From) []To {
	if in == nil {
		return nil
	}
	out := make([]To, len(in))
	for i, v := range in {
		out[i] = To(v)
	}
	return out
}
