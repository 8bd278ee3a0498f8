package logging

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// New creates a configured application logger.
// It writes to Stderr to keep Stdout free for reports, NDJSON and MCP stdio.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with an explicit destination.
// It standardizes common keys (e.g., "error" -> "err").
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, options(level)))
}

// NewTee writes text records to w and, when jsonW is not nil, the same records
// as JSON lines to jsonW (a --log-file).
func NewTee(w, jsonW io.Writer, level slog.Level) *slog.Logger {
	if jsonW == nil {
		return NewWithWriter(w, level)
	}
	return slog.New(slogmulti.Fanout(
		slog.NewTextHandler(w, options(level)),
		slog.NewJSONHandler(jsonW, options(level)),
	))
}

func options(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
}

// Level maps the CLI verbosity flags to a slog level.
// debug wins over quiet.
func Level(debug, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	}
	return slog.LevelWarn
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
