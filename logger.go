package sqlnorm

import "context"

// Logger defines a structured logging interface compatible with slog.
//
// The core compile/lex/rewrite pipeline never logs on its own: every
// outcome is returned as a value.
// Logger exists for cmd/sqlnormctl and other callers that want to
// observe cache hits, driver selection, or errors as they happen.
//
// This interface is intentionally compatible with *slog.Logger from the
// standard library, so callers can pass slog.Default() directly.
type Logger interface {
	// InfoContext logs an informational message with structured fields.
	// Compatible with slog.Logger.InfoContext.
	InfoContext(ctx context.Context, msg string, args ...any)

	// WarnContext logs a warning message with structured fields.
	// Compatible with slog.Logger.WarnContext.
	WarnContext(ctx context.Context, msg string, args ...any)

	// ErrorContext logs an error message with structured fields.
	// Compatible with slog.Logger.ErrorContext.
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// noopLogger discards everything. Used as the default when no logger is
// configured.
type noopLogger struct{}

func (n *noopLogger) InfoContext(ctx context.Context, msg string, args ...any)  {}
func (n *noopLogger) WarnContext(ctx context.Context, msg string, args ...any)  {}
func (n *noopLogger) ErrorContext(ctx context.Context, msg string, args ...any) {}

// NopLogger returns a Logger that discards everything. It is the
// default for consumers (cmd/sqlnormctl, driver conformance harnesses)
// that take an optional Logger.
func NopLogger() Logger {
	return &noopLogger{}
}
