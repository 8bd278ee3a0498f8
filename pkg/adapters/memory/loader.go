package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Loader implements ports.DefinitionLoader and ports.Library in memory.
// Definitions are copied on the way in and on the way out.
type Loader struct {
	mu       sync.RWMutex
	machines map[string]*domain.Definition
	primary  string
}

// NewLoader creates a loader serving def. Further machines can be added with Add.
func NewLoader(def *domain.Definition) *Loader {
	l := &Loader{machines: make(map[string]*domain.Definition)}
	if def != nil {
		l.Add(def.Name, def)
		l.primary = def.Name
	}
	return l
}

// NewLibrary creates a loader holding several machines keyed by name.
func NewLibrary(defs ...*domain.Definition) (*Loader, error) {
	l := &Loader{machines: make(map[string]*domain.Definition)}
	for _, def := range defs {
		if _, exists := l.machines[def.Name]; exists {
			return nil, fmt.Errorf("collision detected: machine %q defined twice", def.Name)
		}
		l.Add(def.Name, def)
	}
	return l, nil
}

// Add stores def under id, replacing any previous machine.
func (l *Loader) Add(id string, def *domain.Definition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.machines[id] = def.Clone()
}

// Load returns the machine given to NewLoader.
func (l *Loader) Load(ctx context.Context) (*domain.Definition, error) {
	return l.Get(ctx, l.primary)
}

// Get returns a copy of the machine stored under id.
func (l *Loader) Get(ctx context.Context, id string) (*domain.Definition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	def, ok := l.machines[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrMachineNotFound, id)
	}
	return def.Clone(), nil
}

// List returns the machine IDs in sorted order.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.machines))
	for id := range l.machines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
