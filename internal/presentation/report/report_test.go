package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swapResult() domain.RunResult {
	return domain.RunResult{
		RunID:      "run-1",
		Machine:    "swap",
		Index:      0,
		Input:      "ab",
		Outcome:    domain.OutcomeAccepted,
		FinalState: "qf",
		FinalTape:  "ba",
		Head:       2,
		Steps:      3,
		IDs:        []string{"[q0]ab", "b[q0]b", "ba[q0]B", "ba[qf]B"},
	}
}

func TestText_HeaderAndResult(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	require.NoError(t, w.Header(testutils.Swap()))
	require.NoError(t, w.Result(swapResult()))

	out := buf.String()
	assert.Contains(t, out, "SWAP")
	assert.Contains(t, out, "States: {q0, qf}")
	assert.Contains(t, out, "Tape alphabet: {a, b, B}")
	assert.Contains(t, out, "Accept states: {qf}")
	assert.Contains(t, out, "Transitions: 3")
	assert.Contains(t, out, "Input 1: 'ab'")
	assert.Contains(t, out, "Step 0: [q0]ab\n")
	assert.Contains(t, out, "Step 3: ba[qf]B\n")
	assert.Contains(t, out, "✓ ACCEPTED")
	assert.Contains(t, out, "Final state: qf\n")
	assert.Contains(t, out, "Final tape: ba\n")
	assert.NotContains(t, out, "\x1b[", "no colour on a buffer")
}

func TestText_Quiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, WithQuiet(true)).Result(swapResult()))

	assert.NotContains(t, buf.String(), "Step 0")
	assert.Contains(t, buf.String(), "Final tape: ba")
}

func TestText_Verdicts(t *testing.T) {
	tests := []struct {
		outcome domain.Outcome
		want    string
	}{
		{domain.OutcomeAccepted, "✓ ACCEPTED"},
		{domain.OutcomeRejected, "✗ REJECTED"},
		{domain.OutcomeTimedOut, "⧗ TIMED OUT after 3 steps"},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			res := swapResult()
			res.Outcome = tt.outcome

			var buf bytes.Buffer
			require.NoError(t, New(&buf).Result(res))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestText_ForcedColour(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, WithProfile(termenv.ANSI)).Result(swapResult()))

	assert.Contains(t, buf.String(), "\x1b[")
}

func TestJSON_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, WithFormat(FormatJSON))

	first := swapResult()
	second := swapResult()
	second.Index = 1
	second.Outcome = domain.OutcomeRejected

	require.NoError(t, w.Header(testutils.Swap()))
	require.NoError(t, w.Results([]domain.RunResult{first, second}))

	var decoded []domain.RunResult
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var res domain.RunResult
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &res))
		decoded = append(decoded, res)
	}
	assert.Equal(t, []domain.RunResult{first, second}, decoded)
}

func TestMarkdown_UsesRenderer(t *testing.T) {
	var buf bytes.Buffer
	var rendered []string
	w := New(&buf, WithFormat(FormatMarkdown), WithRenderer(func(md string) (string, error) {
		rendered = append(rendered, md)
		return strings.ToUpper(md), nil
	}))

	require.NoError(t, w.Header(testutils.Swap()))
	require.NoError(t, w.Result(swapResult()))

	require.Len(t, rendered, 2)
	assert.Contains(t, rendered[0], "# swap")
	assert.Contains(t, rendered[0], "| Transitions | 3 |")
	assert.Contains(t, rendered[1], "| 1 | `b[q0]b` |")
	assert.Contains(t, rendered[1], "**✓ ACCEPTED**")
	assert.Contains(t, buf.String(), "FINAL TAPE")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	timedOut := swapResult()
	timedOut.Outcome = domain.OutcomeTimedOut

	require.NoError(t, New(&buf).Summary([]domain.RunResult{swapResult(), timedOut}))
	assert.Contains(t, buf.String(), "2 input(s): 1 accepted, 0 rejected, 1 timed out")
}

func TestTerminalHelpers_NonFile(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, 0, TerminalWidth(&buf))
}
