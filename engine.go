package deltajson

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Engine is C5, the engine façade: it sequences the classifier (C1) and the
// container stack manager (C3) one character at a time, latches sticky
// corruption, and answers completion queries via the synthesizer (C4).
//
// THREAD SAFETY: an Engine is NOT safe for concurrent use. It holds mutable
// state (stack, corruption flag) that every Advance call mutates in place.
// Handle multiple concurrent streams by constructing one Engine per stream,
// the same single-instance-per-stream pattern the teacher's StreamAdapter
// uses for OpenAI chat streams.
type Engine struct {
	state       JSONState
	stack       containerStack
	corrupted   bool
	corruptedBy error

	charsProcessed int
	logger         *slog.Logger
	metrics        func(MetricEventData)

	maxBufferBytes     int
	referenceValidator func(candidate string) bool
	raw                strings.Builder
}

// New creates an Engine ready to consume the first fragment of a document.
func New(opts ...Option) *Engine {
	e := &Engine{
		state: Pending(),
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.LevelError + 1,
		})),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Debug("engine created")
	return e
}

// Advance feeds fragment through the per-character procedure of spec §4.5.
// It returns ErrNotClosable (non-sticky) if the fragment ends inside a live
// `\u` escape, ErrCorrupted (sticky) the moment anything invalid is seen,
// or nil if the fragment was consumed without deciding closability either
// way — callers that want the closability verdict call Completion.
func (e *Engine) Advance(fragment string) error {
	if e.corrupted {
		return e.corruptedBy
	}

	if e.maxBufferBytes > 0 && e.raw.Len()+len(fragment) > e.maxBufferBytes {
		return e.corrupt("buffer limit exceeded", ErrBufferExceeded, 0)
	}
	e.raw.WriteString(fragment)

	softPending := false
	for _, c := range fragment {
		e.charsProcessed++

		e.logger.Debug("advance", "char", string(c), "state", e.state, "stack", e.stack, "corrupted", e.corrupted)

		tok, err := classify(c, &e.state)
		if err != nil {
			if le, ok := err.(*lexError); ok && le.soft() {
				e.logger.Debug("soft not-closable signal", "char", string(c))
				softPending = true
				continue
			}
			return e.corrupt("lexical error", err, c)
		}
		softPending = false

		stack, serr := applyToken(e.stack, tok)
		e.stack = stack
		if serr != nil {
			se := serr.(*stackError)
			if se.notStructural() {
				continue
			}
			return e.corrupt("stack error", serr, c)
		}

		e.applyPopLevelTransition(tok)
	}

	if softPending {
		return ErrNotClosable
	}
	return nil
}

// applyPopLevelTransition is the façade-level rewrite in spec §4.5 step 4:
// after a container closes and pops the stack, the parent level must be
// told that its current child value just completed, or (if the stack is now
// empty) that the whole document returned to Pending.
func (e *Engine) applyPopLevelTransition(tok token) {
	if tok != tokCloseBrace && tok != tokCloseBracket {
		return
	}

	if len(e.stack) == 0 {
		e.state = Pending()
		return
	}

	switch e.stack[len(e.stack)-1] {
	case closeBrace:
		e.state = objectInValue(nestedCompletedValue())
	case closeBracket:
		e.state = arrayInValue(nestedCompletedValue())
	case closeQuote:
		// The lexer already placed us back inside the key or string value
		// whose frame is still open; nothing to rewrite here.
	}
}

// corrupt latches the sticky corruption flag and returns the error Advance
// should hand back to its caller. The returned error wraps both ErrCorrupted
// (so callers doing errors.Is(err, ErrCorrupted) keep working) and the
// original *lexError/*stackError/sentinel that triggered it, so a caller that
// wants the underlying cause can errors.As into it.
func (e *Engine) corrupt(reason string, err error, c rune) error {
	e.corrupted = true
	e.corruptedBy = fmt.Errorf("%w: %w", ErrCorrupted, err)
	e.logger.Error("engine corrupted", "reason", reason, "error", err, "char", string(c), "chars_processed", e.charsProcessed)
	e.emitMetric(corruptionData(err, e.charsProcessed))
	return e.corruptedBy
}

// Completion is C4's query surface: it returns the shortest suffix that
// would close the document right now, or ErrNotClosable / ErrCorrupted. It
// never mutates the engine.
func (e *Engine) Completion() (string, error) {
	if e.corrupted {
		return "", e.corruptedBy
	}
	suffix, err := synthesizeCompletion(e.stack, e.state)
	if err != nil {
		return "", err
	}
	if e.referenceValidator != nil && !e.referenceValidator(e.raw.String()+suffix) {
		e.logger.Error("reference validator rejected synthesized completion", "chars_processed", e.charsProcessed)
		return "", ErrReferenceValidationFailed
	}
	return suffix, nil
}

// Process is the convenience operation from spec §6: Advance then
// Completion. If Advance reports an error, Process still calls Completion
// so the caller gets the authoritative (sticky-aware) outcome, except that a
// corrupted engine short-circuits immediately.
func (e *Engine) Process(fragment string) (string, error) {
	if err := e.Advance(fragment); err != nil && e.corrupted {
		return "", err
	}
	return e.Completion()
}

// Depth reports the current container-stack depth, exposed for diagnostics
// and tests; it is not part of the three-operation contract in spec §6.
func (e *Engine) Depth() int {
	return e.stack.depth()
}

// Corrupted reports whether the sticky corruption flag has latched.
func (e *Engine) Corrupted() bool {
	return e.corrupted
}
