package deltajson

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource is a FragmentSource over a fixed slice of fragments, used to
// drive StreamCompleter in tests without any real I/O.
type sliceSource struct {
	fragments []string
	idx       int
	current   string
	closed    bool
}

func (s *sliceSource) Next() bool {
	if s.idx >= len(s.fragments) {
		return false
	}
	s.current = s.fragments[s.idx]
	s.idx++
	return true
}

func (s *sliceSource) Current() string { return s.current }
func (s *sliceSource) Err() error      { return nil }
func (s *sliceSource) Close() error    { s.closed = true; return nil }

func TestStreamCompleter_DrivesEngineAcrossFragments(t *testing.T) {
	src := &sliceSource{fragments: []string{"{", "\"a\"", ":", "1"}}
	sc := NewStreamCompleter(context.Background(), src)
	defer sc.Close()

	var lastCompletion string
	var lastErr error
	for sc.Next() {
		lastCompletion = sc.Current()
		lastErr = sc.Err()
	}

	assert.NoError(t, lastErr)
	assert.Equal(t, "}", lastCompletion)
	assert.NotEmpty(t, sc.SessionID())
}

func TestStreamCompleter_CorruptionStopsTheStream(t *testing.T) {
	src := &sliceSource{fragments: []string{"}", "more"}}
	sc := NewStreamCompleter(context.Background(), src)
	defer sc.Close()

	require.True(t, sc.Next())
	assert.ErrorIs(t, sc.Err(), ErrCorrupted)
	assert.False(t, sc.Next(), "the stream must stop once corrupted")
}

func TestStreamCompleter_ContextCancellationStopsTheStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &sliceSource{fragments: []string{"{", "\"a\"", ":", "1"}}
	sc := NewStreamCompleter(ctx, src)
	defer sc.Close()

	cancel()
	assert.False(t, sc.Next())
	assert.True(t, errors.Is(sc.Err(), context.Canceled))
}

func TestStreamCompleter_CloseClosesSource(t *testing.T) {
	src := &sliceSource{fragments: []string{"{"}}
	sc := NewStreamCompleter(context.Background(), src)
	require.NoError(t, sc.Close())
	assert.True(t, src.closed)
}

func TestStreamCompleter_EmitsCompletedMetricOnExhaustion(t *testing.T) {
	var events []MetricEventData
	src := &sliceSource{fragments: []string{"[1,2]"}}
	sc := NewStreamCompleter(context.Background(), src, WithMetricsCallback(func(d MetricEventData) {
		events = append(events, d)
	}))
	defer sc.Close()

	for sc.Next() {
	}

	require.NotEmpty(t, events)
	completed, ok := events[len(events)-1].(StreamCompletedData)
	require.True(t, ok)
	assert.Equal(t, "ok", completed.FinalOutcome)
	assert.Equal(t, 1, completed.FragmentsSeen)
}
