package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/loam"
	"github.com/aretw0/turing/pkg/ports"
)

// RunWatch runs the batch, then re-runs it every time the machine source changes.
// It stops when ctx is cancelled.
func RunWatch(ctx context.Context, opts RunOptions) error {
	logger := createLogger(opts, opts.JSON)
	out := opts.stdout()

	changes, err := watchSource(ctx, opts.Path)
	if err != nil {
		return fmt.Errorf("cannot watch %q: %w", opts.Path, err)
	}
	logger.Info("Starting Watcher", "path", opts.Path)

	for {
		if _, err := RunBatch(ctx, opts); err != nil {
			if isInterrupted(err) {
				return err
			}
			// A broken definition is expected while editing; keep watching.
			logger.Error("Run failed", "err", err)
			if !opts.JSON {
				printSystemMessage(out, "Error: %v", err)
			}
		}
		if !opts.JSON {
			printSystemMessage(out, "Waiting for changes...")
		}

		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher", "reason", ctx.Err())
			return ctx.Err()
		case changed, ok := <-changes:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return fmt.Errorf("watcher for %q stopped", opts.Path)
			}
			logger.Info("Change detected, re-running", "path", opts.Path, "changed", changed)
			if !opts.JSON {
				printSystemMessage(out, "Change detected in '%s'.", changed)
			}
		}
	}
}

// watchSource picks the watcher for a machine path: the Loam library for a
// directory, the file loader otherwise. Neither needs a valid definition, so a
// broken machine can still be fixed while watching.
func watchSource(ctx context.Context, path string) (<-chan string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var source ports.Watchable = file.NewLoader(path)
	if info.IsDir() {
		lib, err := loam.Open(path)
		if err != nil {
			return nil, err
		}
		source = lib
	}
	return source.Watch(ctx)
}
