package deltajson

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FragmentSource is the minimal interface a streaming source must satisfy to
// drive a StreamCompleter: repeatedly produce fragments of a document until
// exhausted. It mirrors the Next/Current/Err/Close shape of an upstream
// token stream so a StreamCompleter can sit in front of any chunked text
// producer (an SSE decoder, a bufio.Scanner, a channel adapter) without
// depending on its concrete type.
type FragmentSource interface {
	Next() bool
	Current() string
	Err() error
	Close() error
}

// StreamCompleter drives an Engine across a FragmentSource, producing the
// best-effort completion after every fragment. It is the streaming
// counterpart to Engine.Process: where Process handles one fragment at a
// time under caller control, StreamCompleter owns the pull loop and adds
// context cancellation, a generated session ID, and metrics emission on
// exit.
//
// THREAD SAFETY: a StreamCompleter is NOT safe for concurrent use. Each
// instance is designed for a single consuming goroutine, the same
// single-instance-per-stream pattern the underlying Engine requires. The
// internal mutex exists only to let Close be called safely from a different
// goroutine than the one driving Next.
type StreamCompleter struct {
	source  FragmentSource
	engine  *Engine
	session string

	mu            sync.Mutex
	ctx           context.Context
	cancel        context.CancelFunc
	fragmentsSeen int
	done          bool
	err           error
	current       string

	start time.Time
}

// NewStreamCompleter creates a StreamCompleter wrapping source. The Engine
// is configured with opts exactly as New would build one directly; the
// StreamCompleter owns calling Advance/Completion on it for the lifetime of
// the stream.
func NewStreamCompleter(ctx context.Context, source FragmentSource, opts ...Option) *StreamCompleter {
	streamCtx, cancel := context.WithCancel(ctx)

	id, err := uuid.NewV7()
	var session string
	if err != nil {
		session = uuid.New().String()
	} else {
		session = id.String()
	}

	sc := &StreamCompleter{
		source:  source,
		engine:  New(opts...),
		session: session,
		ctx:     streamCtx,
		cancel:  cancel,
		start:   time.Now(),
	}
	sc.engine.logger.Debug("stream completer created", "session_id", session)
	return sc
}

// Next pulls the next fragment from the source, advances the engine, and
// computes the resulting completion. It returns false once the source is
// exhausted, the context is cancelled, or the engine has latched sticky
// corruption. Current and Err report the outcome of the step Next just
// took.
func (sc *StreamCompleter) Next() bool {
	sc.mu.Lock()
	if sc.done {
		sc.mu.Unlock()
		return false
	}
	if sc.ctx.Err() != nil {
		sc.err = sc.ctx.Err()
		sc.done = true
		sc.emitStreamCompletedLocked("cancelled")
		sc.mu.Unlock()
		return false
	}
	sc.mu.Unlock()

	if !sc.source.Next() {
		sc.mu.Lock()
		sc.done = true
		sc.err = sc.source.Err()
		outcome := "ok"
		if sc.err != nil {
			outcome = "source_error"
		}
		sc.emitStreamCompletedLocked(outcome)
		sc.mu.Unlock()
		return false
	}

	fragment := sc.source.Current()

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.fragmentsSeen++

	advanceErr := sc.engine.Advance(fragment)
	if advanceErr != nil && errors.Is(advanceErr, ErrCorrupted) {
		sc.current = ""
		sc.err = ErrCorrupted
		sc.done = true
		sc.emitStreamCompletedLocked("corrupted")
		return true
	}

	completion, compErr := sc.engine.Completion()
	if compErr != nil {
		sc.current = ""
		sc.err = compErr
		return true
	}

	sc.current = completion
	sc.err = nil
	return true
}

// Current returns the completion suffix computed by the most recent Next
// call, or "" if that step did not produce a closable completion.
func (sc *StreamCompleter) Current() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.current
}

// Err returns the error from the most recent Next call: nil on a clean
// completion step, ErrNotClosable / ErrCorrupted from the engine, or the
// source's own error / context error once the stream has ended.
func (sc *StreamCompleter) Err() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.err
}

// SessionID returns the UUIDv7 identifier generated for this stream, stable
// for its lifetime and included in emitted metrics.
func (sc *StreamCompleter) SessionID() string {
	return sc.session
}

// Close cancels the stream's context and closes the underlying source.
func (sc *StreamCompleter) Close() error {
	sc.mu.Lock()
	if sc.cancel != nil {
		sc.cancel()
		sc.cancel = nil
	}
	sc.mu.Unlock()
	return sc.source.Close()
}

// emitStreamCompletedLocked must be called with sc.mu held.
func (sc *StreamCompleter) emitStreamCompletedLocked(outcome string) {
	sc.engine.emitMetric(StreamCompletedData{
		SessionID:     sc.session,
		FragmentsSeen: sc.fragmentsSeen,
		FinalOutcome:  outcome,
		Performance: PerformanceMetrics{
			ProcessingDuration: time.Since(sc.start),
		},
	})
}
