// Package report prints machines and run results for humans (text or markdown)
// and for programs (NDJSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// Format selects the report layout.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

const rule = 70

// ContentRenderer transforms markdown before it is written (e.g. glamour).
type ContentRenderer func(string) (string, error)

// Writer renders reports to an io.Writer.
type Writer struct {
	w        io.Writer
	out      *termenv.Output
	format   Format
	quiet    bool
	renderer ContentRenderer
	enc      *json.Encoder
}

// Option configures the Writer.
type Option func(*Writer)

// WithFormat selects text, markdown or JSON output.
func WithFormat(f Format) Option {
	return func(r *Writer) {
		r.format = f
	}
}

// WithQuiet hides the step-by-step IDs.
func WithQuiet(quiet bool) Option {
	return func(r *Writer) {
		r.quiet = quiet
	}
}

// WithRenderer sets the markdown renderer used by FormatMarkdown.
// Without one, markdown is written as-is.
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Writer) {
		r.renderer = renderer
	}
}

// WithProfile forces a colour profile instead of detecting it from the writer.
func WithProfile(p termenv.Profile) Option {
	return func(r *Writer) {
		r.out = termenv.NewOutput(r.w, termenv.WithProfile(p))
	}
}

// New creates a report Writer. Colours are enabled only when w is a terminal.
func New(w io.Writer, opts ...Option) *Writer {
	r := &Writer{
		w:      w,
		out:    termenv.NewOutput(w),
		format: FormatText,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.enc = json.NewEncoder(w)
	return r
}

// Header describes the machine. JSON output has no header.
func (r *Writer) Header(def *domain.Definition) error {
	switch r.format {
	case FormatJSON:
		return nil
	case FormatMarkdown:
		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n\n", title(def))
		if def.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", def.Description)
		}
		fmt.Fprintf(&sb, "| | |\n|---|---|\n")
		fmt.Fprintf(&sb, "| States | %s |\n", join(def.States))
		fmt.Fprintf(&sb, "| Input alphabet | %s |\n", join(def.InputAlphabet))
		fmt.Fprintf(&sb, "| Tape alphabet | %s |\n", join(def.TapeAlphabet))
		fmt.Fprintf(&sb, "| Blank | %s |\n", def.BlankSymbol())
		fmt.Fprintf(&sb, "| Initial state | %s |\n", def.InitialState)
		fmt.Fprintf(&sb, "| Accept states | %s |\n", join(def.AcceptStates))
		fmt.Fprintf(&sb, "| Transitions | %d |\n", len(def.Transitions))
		return r.markdown(sb.String())
	}

	bar := strings.Repeat("=", rule)
	lines := []string{
		"",
		bar,
		r.out.String(strings.ToUpper(title(def))).Bold().String(),
		bar,
	}
	if def.Description != "" {
		lines = append(lines, def.Description)
	}
	lines = append(lines,
		fmt.Sprintf("States: %s", join(def.States)),
		fmt.Sprintf("Input alphabet: %s", join(def.InputAlphabet)),
		fmt.Sprintf("Tape alphabet: %s", join(def.TapeAlphabet)),
		fmt.Sprintf("Initial state: %s", def.InitialState),
		fmt.Sprintf("Accept states: %s", join(def.AcceptStates)),
		fmt.Sprintf("Transitions: %d", len(def.Transitions)),
	)
	_, err := fmt.Fprintln(r.w, strings.Join(lines, "\n"))
	return err
}

// Result prints one run.
func (r *Writer) Result(res domain.RunResult) error {
	switch r.format {
	case FormatJSON:
		return r.enc.Encode(res)
	case FormatMarkdown:
		var sb strings.Builder
		fmt.Fprintf(&sb, "## Input %d: `%s`\n\n", res.Index+1, res.Input)
		if !r.quiet {
			sb.WriteString("| Step | ID |\n|---:|---|\n")
			for i, id := range res.IDs {
				fmt.Fprintf(&sb, "| %d | `%s` |\n", i, id)
			}
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "**%s**\n\n", verdict(res))
		fmt.Fprintf(&sb, "- Final state: `%s`\n- Final tape: `%s`\n- Steps: %d\n", res.FinalState, res.FinalTape, res.Steps)
		return r.markdown(sb.String())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", strings.Repeat("=", rule))
	fmt.Fprintf(&sb, "Input %d: '%s'\n", res.Index+1, res.Input)
	fmt.Fprintf(&sb, "%s\n", strings.Repeat("=", rule))
	if !r.quiet {
		sb.WriteString("Instantaneous descriptions:\n")
		fmt.Fprintf(&sb, "%s\n", strings.Repeat("-", rule))
		for i, id := range res.IDs {
			fmt.Fprintf(&sb, "Step %d: %s\n", i, id)
		}
		fmt.Fprintf(&sb, "%s\n", strings.Repeat("-", rule))
	}
	fmt.Fprintf(&sb, "%s\n", r.colorVerdict(res))
	fmt.Fprintf(&sb, "Final state: %s\n", res.FinalState)
	fmt.Fprintf(&sb, "Final tape: %s\n", res.FinalTape)
	_, err := io.WriteString(r.w, sb.String())
	return err
}

// Summary prints the outcome counts of a batch. JSON output has no summary.
func (r *Writer) Summary(results []domain.RunResult) error {
	if r.format == FormatJSON {
		return nil
	}
	counts := make(map[domain.Outcome]int)
	for _, res := range results {
		counts[res.Outcome]++
	}
	line := fmt.Sprintf("%d input(s): %d accepted, %d rejected, %d timed out",
		len(results),
		counts[domain.OutcomeAccepted],
		counts[domain.OutcomeRejected],
		counts[domain.OutcomeTimedOut],
	)
	if r.format == FormatMarkdown {
		return r.markdown("---\n\n" + line + "\n")
	}
	_, err := fmt.Fprintf(r.w, "\n%s\n", line)
	return err
}

// Results prints every result followed by the summary.
func (r *Writer) Results(results []domain.RunResult) error {
	for _, res := range results {
		if err := r.Result(res); err != nil {
			return err
		}
	}
	return r.Summary(results)
}

func (r *Writer) markdown(md string) error {
	out := md
	if r.renderer != nil {
		if rendered, err := r.renderer(md); err == nil {
			out = rendered
		}
	}
	_, err := io.WriteString(r.w, out)
	return err
}

func (r *Writer) colorVerdict(res domain.RunResult) string {
	p := r.out.ColorProfile()
	s := r.out.String(verdict(res)).Bold()
	switch res.Outcome {
	case domain.OutcomeAccepted:
		s = s.Foreground(p.Color("#22c55e"))
	case domain.OutcomeRejected:
		s = s.Foreground(p.Color("#ef4444"))
	default:
		s = s.Foreground(p.Color("#f59e0b"))
	}
	return s.String()
}

func verdict(res domain.RunResult) string {
	switch res.Outcome {
	case domain.OutcomeAccepted:
		return "✓ ACCEPTED"
	case domain.OutcomeRejected:
		return "✗ REJECTED"
	}
	return fmt.Sprintf("⧗ TIMED OUT after %d steps", res.Steps)
}

func title(def *domain.Definition) string {
	if def.Name == "" {
		return "Turing machine"
	}
	return def.Name
}

func join[T ~string](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = string(it)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
