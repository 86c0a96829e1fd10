package deltajson

import (
	"io"
	"log/slog"
	"os"
)

// Option configures an Engine. The functional-options pattern gives callers
// backwards compatibility as new options are added, optional parameters,
// and self-documenting construction.
type Option func(*Engine)

// WithLogger sets a custom slog.Logger for the engine.
//
// Logging strategy:
//   - DEBUG: per-character tracing and soft not-closable signals
//   - ERROR: sticky corruption
//
// If no logger is provided, a no-op logger is used so library consumers get
// zero log output unless they opt in.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			e.logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
				Level: slog.LevelError + 1,
			}))
			return
		}
		e.logger = logger
	}
}

// WithLogLevel is a convenience option for callers who want a text logger on
// standard error at a chosen level, without building their own handler.
func WithLogLevel(level slog.Level) Option {
	return func(e *Engine) {
		e.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}
}

// WithMetricsCallback sets a callback invoked with typed metric events as
// the engine reaches significant lifecycle points (sticky corruption, and
// the end of the stream when the engine is driven by a StreamCompleter). The
// callback is invoked synchronously and is guarded against
// panics: a panicking callback is logged and does not affect the engine's
// own operation.
func WithMetricsCallback(callback func(MetricEventData)) Option {
	return func(e *Engine) {
		e.metrics = callback
	}
}

// WithMaxBufferBytes bounds how much raw input an Engine will accumulate
// across Advance calls. A fragment that would push the running total past n
// bytes latches sticky corruption (ErrBufferExceeded) instead of growing the
// buffer without limit. A non-positive n (the default) means unbounded.
func WithMaxBufferBytes(n int) Option {
	return func(e *Engine) {
		e.maxBufferBytes = n
	}
}

// WithReferenceValidator installs a second opinion consulted whenever
// Completion is about to report success: validate receives the raw input
// seen so far with the synthesized suffix appended, and Completion fails
// with ErrReferenceValidationFailed if it returns false. This exists to let
// callers cross-check the engine's own verdict against an independent
// parser such as gjson.Valid, catching any divergence between the two
// instead of silently emitting a completion gjson itself considers invalid.
func WithReferenceValidator(validate func(candidate string) bool) Option {
	return func(e *Engine) {
		e.referenceValidator = validate
	}
}
