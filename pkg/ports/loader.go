package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// DefinitionLoader defines the interface for obtaining a machine definition.
// Loaders decode and normalize; well-formedness is checked by the validator.
type DefinitionLoader interface {
	Load(ctx context.Context) (*domain.Definition, error)
}

// Library holds several machine definitions addressed by ID.
type Library interface {
	// Get returns the machine stored under id.
	// Returns domain.ErrMachineNotFound if there is none.
	Get(ctx context.Context, id string) (*domain.Definition, error)

	// List returns the IDs of all machines in the library.
	List(ctx context.Context) ([]string, error)
}

// Watchable is implemented by loaders that can report changes to their source.
// It backs the CLI watch mode.
type Watchable interface {
	// Watch returns a channel that receives the ID or path of each changed
	// machine. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
