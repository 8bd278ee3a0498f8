package turing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/adapters/file"
	loamAdapter "github.com/aretw0/turing/pkg/adapters/loam"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// Machine is the high-level entry point for the library.
// It wraps a validated definition, its transition table and the core engine.
type Machine struct {
	engine    *runtime.Engine
	loader    ports.DefinitionLoader
	machineID string
	stepLimit int
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

// WithLoader injects a custom DefinitionLoader, bypassing path resolution.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(m *Machine) {
		m.loader = l
	}
}

// WithMachineID selects a machine when the path is a Loam library directory.
func WithMachineID(id string) Option {
	return func(m *Machine) {
		m.machineID = id
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithStepLimit overrides the step limit declared by the definition.
func WithStepLimit(limit int) Option {
	return func(m *Machine) {
		m.stepLimit = limit
	}
}

// New loads, validates and compiles a machine.
// path may be a YAML/JSON machine file or a Loam library directory (with WithMachineID).
// If WithLoader is provided, path is only used as a descriptive label.
func New(path string, opts ...Option) (*Machine, error) {
	m := &Machine{stepLimit: -1}
	for _, opt := range opts {
		opt(m)
	}

	if m.loader == nil {
		loader, err := resolveLoader(path, m.machineID)
		if err != nil {
			return nil, err
		}
		m.loader = loader
	}

	def, err := m.loader.Load(context.Background())
	if err != nil {
		return nil, err
	}
	if def.Name == "" && path != "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m.compile(def)
}

// NewFromDefinition compiles an in-memory definition.
func NewFromDefinition(def *domain.Definition, opts ...Option) (*Machine, error) {
	return New("", append([]Option{WithLoader(memory.NewLoader(def))}, opts...)...)
}

func resolveLoader(path, machineID string) (ports.DefinitionLoader, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required when no custom loader is provided")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMachineNotFound, path, err)
	}
	if !info.IsDir() {
		return file.NewLoader(path), nil
	}

	if machineID == "" {
		return nil, fmt.Errorf("%s is a library directory: a machine ID is required", path)
	}
	lib, err := loamAdapter.Open(path)
	if err != nil {
		return nil, err
	}
	return lib.Loader(machineID), nil
}

func (m *Machine) compile(def *domain.Definition) (*Machine, error) {
	if err := validator.Validate(def); err != nil {
		return nil, err
	}

	table, err := runtime.NewTable(def.Transitions)
	if err != nil {
		return nil, err
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.Name = def.Name
	if m.Name != "" {
		m.logger = m.logger.With("machine", m.Name)
	}

	if m.stepLimit < 0 {
		m.stepLimit = def.StepLimit
	}
	if m.stepLimit <= 0 {
		m.stepLimit = domain.DefaultStepLimit
	}

	m.engine = runtime.NewEngine(def, table,
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
	)
	m.logger.Debug("Machine compiled", "states", len(def.States), "rules", table.Len())
	return m, nil
}

// Definition returns a copy of the compiled definition.
func (m *Machine) Definition() *domain.Definition {
	return m.engine.Definition().Clone()
}

// Inputs returns the inputs declared alongside the machine.
func (m *Machine) Inputs() []string {
	return append([]string(nil), m.engine.Definition().Inputs...)
}

// Rules returns the transitions in declaration order.
func (m *Machine) Rules() []domain.Rule {
	return m.engine.Table().Rules()
}

// StepLimit returns the effective step limit.
func (m *Machine) StepLimit() int {
	return m.stepLimit
}

// Loader returns the DefinitionLoader the machine was built from.
func (m *Machine) Loader() ports.DefinitionLoader {
	return m.loader
}

// Simulate runs one input. It satisfies runner.Simulator.
func (m *Machine) Simulate(ctx context.Context, index int, input string, stepLimit int) domain.RunResult {
	return m.engine.Simulate(ctx, index, input, stepLimit)
}

// CheckInputs rejects inputs containing symbols outside the input alphabet.
func (m *Machine) CheckInputs(inputs []string) error {
	return validator.Inputs(m.engine.Definition(), inputs)
}

// Run checks inputs against the alphabet and simulates each of them.
// The machine's step limit and logger apply unless opts override them.
func (m *Machine) Run(ctx context.Context, inputs []string, opts ...runner.Option) ([]domain.RunResult, error) {
	if err := m.CheckInputs(inputs); err != nil {
		return nil, err
	}
	base := []runner.Option{
		runner.WithLogger(m.logger),
		runner.WithStepLimit(m.stepLimit),
	}
	return runner.New(append(base, opts...)...).Run(ctx, m, inputs)
}
