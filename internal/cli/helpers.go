package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
)

// createLogger configures the application logger.
// Logs always go to Stderr so Stdout stays a clean report or NDJSON stream;
// a --log-file additionally receives them as JSON lines.
func createLogger(opts RunOptions, quiet bool) *slog.Logger {
	if quiet && !opts.Debug && opts.LogWriter == nil {
		return logging.NewNop()
	}
	return logging.NewTee(os.Stderr, opts.LogWriter, logging.Level(opts.Debug, quiet))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Start", "index", e.Index, "input", e.Input, "state", e.State)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step", "index", e.Index, "step", e.Step, "rule", e.Rule.String(), "head", e.Head)
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Halt", "index", e.Index, "outcome", e.Outcome, "state", e.State, "steps", e.Steps)
		},
	}
}

// archiveKeyEnv holds the hex AES-256 key used when no --archive-key is given.
const archiveKeyEnv = "TURING_ARCHIVE_KEY"

// OpenStore picks the archive for finished runs: Redis when a URL is given,
// otherwise a directory when one is given, otherwise none.
// The archive is wrapped with trace limiting and encryption when configured.
func OpenStore(opts RunOptions) (ports.ResultStore, io.Closer, error) {
	var (
		store  ports.ResultStore
		closer io.Closer
	)
	switch {
	case opts.RedisURL != "":
		rs, err := redis.NewFromURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store, closer = rs, rs
	case opts.ArchiveDir != "":
		store = file.NewStore(opts.ArchiveDir)
	default:
		return nil, nil, nil
	}

	var mws []middleware.Middleware
	if opts.TraceLimit > 0 {
		mws = append(mws, middleware.NewTraceLimitMiddleware(opts.TraceLimit))
	}

	keyHex := opts.ArchiveKey
	if keyHex == "" {
		keyHex = os.Getenv(archiveKeyEnv)
	}
	if keyHex != "" {
		key, err := middleware.ParseKey(keyHex)
		if err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	return middleware.Chain(store, mws...), closer, nil
}

// determineMachineID picks the machine inside a library directory when none was given.
// Order: a single document, then "main", "index", the directory name.
func determineMachineID(dir string) string {
	var docs []string
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".md" {
			docs = append(docs, strings.TrimSuffix(e.Name(), ".md"))
		}
	}
	if len(docs) == 1 {
		return docs[0]
	}

	candidates := []string{"main", "index", filepath.Base(dir)}
	for _, id := range candidates {
		if _, err := os.Stat(filepath.Join(dir, id+".md")); err == nil {
			return id
		}
	}
	return "main"
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// handleExecutionError maps an interruption to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
