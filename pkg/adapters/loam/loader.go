package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
)

// Library adapts a Loam repository of machine documents to ports.Library.
// Each document carries one machine in its frontmatter; the body is its description.
type Library struct {
	Repo *loam.TypedRepository[dto.MachineMetadata]
}

// New creates a Loam library adapter.
func New(repo *loam.TypedRepository[dto.MachineMetadata]) *Library {
	return &Library{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
// Strict mode makes numeric frontmatter values decode consistently.
func Open(dir string) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[dto.MachineMetadata](repo)), nil
}

// Get loads the machine document stored under id.
func (l *Library) Get(ctx context.Context, id string) (*domain.Definition, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", domain.ErrMachineNotFound, id, err)
	}

	meta := doc.Data
	def, err := meta.ToDefinition()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	if def.Name == "" {
		def.Name = trimExtension(doc.ID)
	}
	if def.Description == "" {
		def.Description = strings.TrimSpace(doc.Content)
	}
	return def, nil
}

// List returns the IDs of all machine documents.
func (l *Library) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Loader returns a ports.DefinitionLoader bound to one machine of the library.
func (l *Library) Loader(id string) *MachineLoader {
	return &MachineLoader{lib: l, id: id}
}

// MachineLoader loads a single machine from a Library.
type MachineLoader struct {
	lib *Library
	id  string
}

// Load implements ports.DefinitionLoader.
func (m *MachineLoader) Load(ctx context.Context) (*domain.Definition, error) {
	return m.lib.Get(ctx, m.id)
}

// Watch implements ports.Watchable. Any machine document change is reported
// by its ID.
func (l *Library) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

// Watch implements ports.Watchable for the whole library: a sibling document
// may be renamed onto this machine's ID.
func (m *MachineLoader) Watch(ctx context.Context) (<-chan string, error) {
	return m.lib.Watch(ctx)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
