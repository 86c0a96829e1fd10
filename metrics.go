package deltajson

import "time"

// MetricEvent names the kind of lifecycle event a MetricEventData describes.
// Mirrors the teacher's MetricEvent/MetricEventData split so callers can
// switch on EventType() before type-asserting to the concrete payload.
type MetricEvent string

const (
	// MetricEventCorruption fires the moment an Engine's sticky corruption
	// flag latches, so operators can alert on malformed upstream generation
	// without scraping logs.
	MetricEventCorruption MetricEvent = "engine_corruption"

	// MetricEventStreamCompleted fires when a StreamCompleter's source is
	// exhausted (EOF, cancellation, or a terminal engine error).
	MetricEventStreamCompleted MetricEvent = "stream_completed"
)

// MetricEventData is implemented by all metric event data structures. This
// interface enables type-safe handling of different event types while
// keeping the callback signature, func(MetricEventData), fixed.
type MetricEventData interface {
	EventType() MetricEvent
}

// PerformanceMetrics contains timing information included with most events.
//
// Thread safety: PerformanceMetrics instances are immutable after creation,
// so they are safe for concurrent read access by metrics callbacks.
type PerformanceMetrics struct {
	ProcessingDuration time.Duration `json:"processing_duration"`
}

// CorruptionData describes an engine latching sticky corruption.
type CorruptionData struct {
	Reason         string             `json:"reason"`
	CharsProcessed int                `json:"chars_processed"`
	Performance    PerformanceMetrics `json:"performance"`
}

func (d CorruptionData) EventType() MetricEvent { return MetricEventCorruption }

// StreamCompletedData describes a finished StreamCompleter session.
type StreamCompletedData struct {
	SessionID     string             `json:"session_id"`
	FragmentsSeen int                `json:"fragments_seen"`
	FinalOutcome  string             `json:"final_outcome"` // "ok", "source_error", "corrupted", "cancelled"
	Performance   PerformanceMetrics `json:"performance"`
}

func (d StreamCompletedData) EventType() MetricEvent { return MetricEventStreamCompleted }

func corruptionData(err error, charsProcessed int) CorruptionData {
	return CorruptionData{
		Reason:         err.Error(),
		CharsProcessed: charsProcessed,
	}
}

// emitMetric calls the engine's metrics callback, if any, guarding the
// engine against a panicking callback the same way the teacher's
// emitMetrics does: metrics are auxiliary and must never crash the core
// operation.
func (e *Engine) emitMetric(data MetricEventData) {
	if e.metrics == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("metrics callback panicked", "panic", r, "event_type", data.EventType())
		}
	}()
	e.metrics(data)
}
