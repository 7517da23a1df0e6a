// Package testhelpers holds shared fixtures for tests.
package testhelpers

import (
	"github.com/mkarvon/sleuthline/internal/logging"
	"io"
	"log/slog"
)

// NewLogger builds a debug-level logger writing to logSink. Tests pass
// io.Discard unless they inspect the output.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
