package deltajson

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLogger_CapturesDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := New(WithLogger(logger))
	_, err := e.Process("{")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "engine created")
}

func TestWithLogger_NilFallsBackToDiscard(t *testing.T) {
	e := New(WithLogger(nil))
	assert.NotPanics(t, func() {
		_, _ = e.Process("}")
	})
}

func TestWithLogLevel_SuppressesBelowThreshold(t *testing.T) {
	e := New(WithLogLevel(slog.LevelError))
	assert.NotPanics(t, func() {
		_, _ = e.Process("{")
	})
}

func TestWithMaxBufferBytes_DefaultIsUnbounded(t *testing.T) {
	e := New()
	_, err := e.Process(`{"a": "` + string(make([]byte, 10000)))
	assert.NoError(t, err)
}

func TestWithReferenceValidator_RejectsDivergentCompletion(t *testing.T) {
	e := New(WithReferenceValidator(func(candidate string) bool {
		return false
	}))
	_, err := e.Process("[1, 2]")
	require.ErrorIs(t, err, ErrReferenceValidationFailed)
}

func TestWithReferenceValidator_AcceptsValidCompletion(t *testing.T) {
	e := New(WithReferenceValidator(func(candidate string) bool {
		return true
	}))
	suffix, err := e.Process("[1, 2")
	require.NoError(t, err)
	assert.Equal(t, "]", suffix)
}
