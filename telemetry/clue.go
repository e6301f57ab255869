package telemetry

import (
	"context"

	"goa.design/clue/log"
)

// ClueLogger delegates to goa.design/clue/log. The logger reads formatting
// and debug settings from the context (set via log.Context and
// log.WithFormat/log.WithDebug in the owning process's main).
type ClueLogger struct{}

// NewClueLogger constructs a Logger backed by goa.design/clue/log.
func NewClueLogger() Logger { return ClueLogger{} }

// Debug emits a debug-level structured log entry.
func (ClueLogger) Debug(ctx context.Context, msg string, keyvals ...any) {
	log.Debug(ctx, fielders(msg, keyvals)...)
}

// Info emits an info-level structured log entry.
func (ClueLogger) Info(ctx context.Context, msg string, keyvals ...any) {
	log.Info(ctx, fielders(msg, keyvals)...)
}

// Warn emits a warning-level structured log entry.
func (ClueLogger) Warn(ctx context.Context, msg string, keyvals ...any) {
	fs := fielders(msg, keyvals)
	fs = append(fs, log.KV{K: "severity", V: "warning"})
	log.Warn(ctx, fs...)
}

// Error emits an error-level structured log entry.
func (ClueLogger) Error(ctx context.Context, msg string, keyvals ...any) {
	log.Error(ctx, fielders(msg, keyvals)...)
}

func fielders(msg string, keyvals []any) []log.Fielder {
	fs := make([]log.Fielder, 0, 1+len(keyvals)/2)
	fs = append(fs, log.KV{K: "msg", V: msg})
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		fs = append(fs, log.KV{K: key, V: keyvals[i+1]})
	}
	return fs
}
