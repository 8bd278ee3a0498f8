package graph

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains run data to visualize on the diagram.
type GraphOverlay struct {
	VisitedStates []domain.State
	CurrentState  domain.State
	Outcome       domain.Outcome
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 for a machine.
// The initial state is entered from [*], accepting states exit to [*],
// and every rule becomes one edge labelled "read/write,move".
// Overlay styles (visited/current) are applied if provided.
func GenerateMermaid(def *domain.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	if def.Name != "" {
		sb.WriteString(fmt.Sprintf("    %%%% %s\n", def.Name))
	}
	for _, s := range def.States {
		safeID := sanitizeMermaidID(string(s))
		if safeID != string(s) {
			sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", escapeLabel(string(s)), safeID))
		}
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeMermaidID(string(def.InitialState))))

	for _, r := range def.Transitions {
		label := fmt.Sprintf("%s/%s,%s", r.Read, r.Write, r.Move)
		sb.WriteString(fmt.Sprintf("    %s --> %s : %s\n",
			sanitizeMermaidID(string(r.State)),
			sanitizeMermaidID(string(r.Next)),
			escapeLabel(label),
		))
	}

	for _, s := range def.AcceptStates {
		sb.WriteString(fmt.Sprintf("    %s --> [*]\n", sanitizeMermaidID(string(s))))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")
		sb.WriteString("    classDef rejected fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000\n")

		visited := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(string(s))
			if safeID != "" && !visited[safeID] && s != overlay.CurrentState {
				visited[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited\n", safeID))
			}
		}

		if overlay.CurrentState != "" {
			class := "current"
			if overlay.Outcome == domain.OutcomeRejected {
				class = "rejected"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s\n", sanitizeMermaidID(string(overlay.CurrentState)), class))
		}
	}

	return sb.String()
}

// Trace collects the states a run passes through, for use as a GraphOverlay.
type Trace struct {
	mu      sync.Mutex
	overlay GraphOverlay
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Hooks returns lifecycle hooks that feed the trace.
// They assume a single run; attach them to one simulation only.
func (t *Trace) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.overlay = GraphOverlay{VisitedStates: []domain.State{e.State}}
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.overlay.VisitedStates = append(t.overlay.VisitedStates, e.Rule.Next)
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.overlay.CurrentState = e.State
			t.overlay.Outcome = e.Outcome
		},
	}
}

// Overlay returns a copy of what has been traced so far.
func (t *Trace) Overlay() *GraphOverlay {
	t.mu.Lock()
	defer t.mu.Unlock()
	o := t.overlay
	o.VisitedStates = append([]domain.State(nil), t.overlay.VisitedStates...)
	return &o
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// escapeLabel replaces characters that end or break a Mermaid label with entity codes.
func escapeLabel(label string) string {
	var sb strings.Builder
	for _, r := range label {
		switch r {
		case ':', ';', '#', '"', '<', '>', '{', '}':
			sb.WriteString(fmt.Sprintf("#%d;", r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
