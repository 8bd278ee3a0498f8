package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/runner"
)

// Validate loads and compiles the machine without running it.
func Validate(w io.Writer, opts RunOptions) error {
	m, err := NewMachine(opts, createLogger(opts, true))
	if err != nil {
		return err
	}
	if err := m.CheckInputs(m.Inputs()); err != nil {
		return fmt.Errorf("declared inputs: %w", err)
	}

	def := m.Definition()
	fmt.Fprintf(w, "✓ %s is valid (%d states, %d rules, step limit %d)\n",
		title(def.Name, opts.Path), len(def.States), len(def.Transitions), m.StepLimit())
	return nil
}

// Graph prints the Mermaid state diagram of the machine.
// With exactly one input it runs it first and highlights the visited states.
func Graph(ctx context.Context, w io.Writer, opts RunOptions) error {
	trace := graph.NewTrace()
	m, err := NewMachine(opts, createLogger(opts, true), trace.Hooks())
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	switch len(opts.Inputs) {
	case 0:
	case 1:
		inputs, err := runner.SanitizeInputs(opts.Inputs)
		if err != nil {
			return err
		}
		if _, err := m.Run(ctx, inputs); err != nil {
			return err
		}
		overlay = trace.Overlay()
	default:
		return fmt.Errorf("graph overlays a single input, got %d", len(opts.Inputs))
	}

	_, err = fmt.Fprintln(w, graph.GenerateMermaid(m.Definition(), overlay))
	return err
}

func title(name, path string) string {
	if name != "" {
		return fmt.Sprintf("%q", name)
	}
	return path
}
