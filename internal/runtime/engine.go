package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

// Configuration is the full instantaneous state of a running machine.
// It is created per run and never shared between runs.
type Configuration struct {
	State domain.State
	Head  int
	Tape  *Tape
	Steps int
}

// ID renders the instantaneous description: left part, bracketed state, right part.
func (c *Configuration) ID() string {
	left, right := c.Tape.Render(c.Head)
	return left + "[" + string(c.State) + "]" + right
}

// Engine is the core single-tape machine runner.
// It holds only read-only data, so one Engine can serve many runs at once;
// all mutable state lives in the Configuration of each run.
type Engine struct {
	def    *domain.Definition
	table  *Table
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine for a validated definition and its table.
func NewEngine(def *domain.Definition, table *Table, opts ...EngineOption) *Engine {
	e := &Engine{
		def:    def,
		table:  table,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Definition returns the machine the engine runs.
func (e *Engine) Definition() *domain.Definition {
	return e.def
}

// Table returns the transition table.
func (e *Engine) Table() *Table {
	return e.table
}

// Start builds the step-0 configuration for input.
func (e *Engine) Start(input string) *Configuration {
	return &Configuration{
		State: e.def.InitialState,
		Head:  0,
		Tape:  NewTape(e.def.BlankSymbol(), domain.Tokenize(input)),
	}
}

// Step applies one transition to cfg in place.
// When no rule matches the current (state, symbol) the machine halts and
// Step reports the classification; cfg is left untouched in that case.
func (e *Engine) Step(cfg *Configuration) (outcome domain.Outcome, halted bool) {
	rule, outcome, halted := e.transition(cfg)
	if halted {
		return outcome, true
	}
	apply(cfg, rule)
	return "", false
}

// transition resolves the rule for the current (state, symbol), or the halting
// classification when there is none. It is the single halting check of a run.
func (e *Engine) transition(cfg *Configuration) (domain.Rule, domain.Outcome, bool) {
	rule, ok := e.table.Lookup(cfg.State, cfg.Tape.Read(cfg.Head))
	if !ok {
		return domain.Rule{}, e.classify(cfg.State), true
	}
	return rule, "", false
}

// Simulate runs input from a fresh configuration until the machine halts or
// stepLimit transitions have been applied. After the last permitted
// transition the halting condition is evaluated once more, so a machine that
// halts exactly at the limit is still classified; otherwise the run is
// timed out. At most stepLimit+1 lookups are made.
func (e *Engine) Simulate(ctx context.Context, index int, input string, stepLimit int) domain.RunResult {
	stepLimit = max(stepLimit, 0)

	cfg := e.Start(input)
	ids := []string{cfg.ID()}

	e.logger.Debug("Run started", "index", index, "input", input, "step_limit", stepLimit)
	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: e.event(domain.EventRunStart, index),
			Input:     input,
			State:     cfg.State,
		})
	}

	outcome := domain.OutcomeTimedOut
	for {
		rule, halt, halted := e.transition(cfg)
		if halted {
			outcome = halt
			break
		}
		if cfg.Steps >= stepLimit {
			break
		}

		apply(cfg, rule)
		id := cfg.ID()
		ids = append(ids, id)

		if e.hooks.OnStep != nil {
			e.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: e.event(domain.EventStep, index),
				Step:      cfg.Steps,
				Rule:      rule,
				Head:      cfg.Head,
				ID:        id,
			})
		}
	}

	result := domain.RunResult{
		Machine:    e.def.Name,
		Index:      index,
		Input:      input,
		Outcome:    outcome,
		FinalState: cfg.State,
		FinalTape:  cfg.Tape.Content(),
		Head:       cfg.Head,
		Steps:      cfg.Steps,
		IDs:        ids,
	}

	e.logger.Debug("Run finished", "index", index, "outcome", outcome, "state", cfg.State, "steps", cfg.Steps)
	if e.hooks.OnHalt != nil {
		e.hooks.OnHalt(ctx, &domain.RunEvent{
			EventBase: e.event(domain.EventHalt, index),
			Input:     input,
			Outcome:   outcome,
			State:     cfg.State,
			Steps:     cfg.Steps,
		})
	}

	return result
}

func (e *Engine) classify(state domain.State) domain.Outcome {
	if e.def.IsAccepting(state) {
		return domain.OutcomeAccepted
	}
	return domain.OutcomeRejected
}

func (e *Engine) event(typ domain.EventType, index int) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      typ,
		Machine:   e.def.Name,
		Index:     index,
	}
}

func apply(cfg *Configuration, rule domain.Rule) {
	cfg.Tape.Write(cfg.Head, rule.Write)
	cfg.Head += rule.Move.Offset()
	cfg.State = rule.Next
	cfg.Steps++
}
