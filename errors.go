package deltajson

import "errors"

// ErrNotClosable is returned when the input consumed so far is a valid
// prefix of some JSON document, but appending zero characters would not
// make it valid. It is non-sticky: a later fragment may resolve it.
var ErrNotClosable = errors.New("deltajson: input is not cleanly closable yet")

// ErrCorrupted is returned once the input stops being a valid prefix of any
// JSON document. It is sticky: once an Engine reports it, every subsequent
// call reports it too, regardless of further input.
var ErrCorrupted = errors.New("deltajson: input is corrupted and cannot be completed")

// ErrBufferExceeded is returned when an Engine configured with
// WithMaxBufferBytes has been fed more raw input than its limit allows. It
// latches sticky corruption the same way a lexical error does: a caller that
// wants unbounded buffering simply never sets the option.
var ErrBufferExceeded = errors.New("deltajson: input exceeds configured buffer limit")

// ErrReferenceValidationFailed is returned by Completion when a reference
// validator installed via WithReferenceValidator rejects the synthesized
// document, even though the engine's own state machine considered it
// cleanly closable. This signals a divergence between the two and should be
// treated as a bug report, not a normal control-flow outcome.
var ErrReferenceValidationFailed = errors.New("deltajson: synthesized completion failed reference validation")
