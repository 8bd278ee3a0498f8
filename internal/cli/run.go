package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/report"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Path       string
	MachineID  string
	Inputs     []string
	StepLimit  int
	Parallel   int
	JSON       bool
	Quiet      bool
	Pretty     bool
	Debug      bool
	Watch      bool
	RedisURL   string
	ArchiveDir string
	// ArchiveKey is a hex AES-256 key sealing archived results.
	ArchiveKey string
	// TraceLimit caps the IDs archived per run; 0 keeps them all.
	TraceLimit int

	// Stdout defaults to os.Stdout.
	Stdout io.Writer
	// LogWriter receives a JSON copy of the logs when set.
	LogWriter io.Writer
}

func (o RunOptions) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

// NewMachine loads and compiles the machine named by opts with the CLI conventions:
// a library directory without --machine falls back to determineMachineID, and
// --debug attaches step-level logging hooks.
func NewMachine(opts RunOptions, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*turing.Machine, error) {
	machineOpts := []turing.Option{turing.WithLogger(logger)}

	if opts.MachineID == "" {
		if info, err := os.Stat(opts.Path); err == nil && info.IsDir() {
			opts.MachineID = determineMachineID(opts.Path)
		}
	}
	if opts.MachineID != "" {
		machineOpts = append(machineOpts, turing.WithMachineID(opts.MachineID))
	}
	if opts.StepLimit > 0 {
		machineOpts = append(machineOpts, turing.WithStepLimit(opts.StepLimit))
	}
	if opts.Debug {
		machineOpts = append(machineOpts, turing.WithLifecycleHooks(createDebugHooks(logger)))
	}
	for _, h := range hooks {
		machineOpts = append(machineOpts, turing.WithLifecycleHooks(h))
	}

	m, err := turing.New(opts.Path, machineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error loading machine: %w", err)
	}
	return m, nil
}

// Execute handles the run command, dispatching to a single batch or watch mode.
func Execute(ctx context.Context, opts RunOptions) error {
	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()

	var err error
	if opts.Watch {
		err = RunWatch(signals.Context(), opts)
	} else {
		_, err = RunBatch(signals.Context(), opts)
	}
	if signals.Interrupted() {
		fmt.Fprintln(os.Stderr, "Interrupted.")
	}
	return handleExecutionError(err)
}

// RunBatch loads the machine, runs every input and prints the report.
func RunBatch(ctx context.Context, opts RunOptions) ([]domain.RunResult, error) {
	logger := createLogger(opts, opts.Quiet || opts.JSON)
	out := opts.stdout()

	m, err := NewMachine(opts, logger)
	if err != nil {
		return nil, err
	}

	inputs := opts.Inputs
	if len(inputs) == 0 {
		inputs = m.Inputs()
	}
	inputs, err = runner.SanitizeInputs(inputs)
	if err != nil {
		return nil, err
	}

	store, closer, err := OpenStore(opts)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	runnerOpts := []runner.Option{runner.WithConcurrency(opts.Parallel)}
	if store != nil {
		runnerOpts = append(runnerOpts, runner.WithStore(store))
	}

	w := createReportWriter(opts, out)
	if !opts.JSON && !opts.Quiet && report.IsTerminal(out) {
		tui.PrintBanner(out, turing.Version)
	}
	if err := w.Header(m.Definition()); err != nil {
		return nil, err
	}

	results, err := m.Run(ctx, inputs, runnerOpts...)
	if err != nil {
		return nil, err
	}
	logger.Info("Batch finished", "machine", m.Name, "inputs", len(results))

	if err := w.Results(results); err != nil {
		return nil, err
	}
	return results, nil
}

func createReportWriter(opts RunOptions, out io.Writer) *report.Writer {
	reportOpts := []report.Option{report.WithQuiet(opts.Quiet)}
	switch {
	case opts.JSON:
		reportOpts = append(reportOpts, report.WithFormat(report.FormatJSON))
	case opts.Pretty:
		reportOpts = append(reportOpts,
			report.WithFormat(report.FormatMarkdown),
			report.WithRenderer(tui.NewRenderer(report.TerminalWidth(out))),
		)
	}
	return report.New(out, reportOpts...)
}
