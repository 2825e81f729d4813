// Package logging defines the structured-logging interface used across
// creationhub. The stores stay silent; the coordinator, the session manager
// and the composition root log through this interface.
package logging

import (
	"context"
	"log/slog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "creation deleted", "creation_id", id, "actor", actorID)
type Logger interface {
	// Debug logs detail useful while tracing policy decisions.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions,
	// e.g. a denied access attempt.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Err wraps an error into a slog attribute under the "error" key so every
// component reports failures the same way.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
