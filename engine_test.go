package deltajson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEngine_SeedScenarios exercises the fourteen concrete fragment
// sequences used to pin down the engine's behavior: each drives an Engine
// fragment by fragment and checks only the outcome of the final fragment.
func TestEngine_SeedScenarios(t *testing.T) {
	tests := []struct {
		name       string
		fragments  []string
		wantErr    error // nil means Ok
		wantSuffix string
	}{
		{"1: open bracket", []string{"["}, nil, "]"},
		{"2: object with number value", []string{"{", "\"a\"", ":", "1"}, nil, "}"},
		{"3: array of object with string value", []string{"[", "{", "\"k\"", ":", "\"v\""}, nil, "}]"},
		{"4: key with no value yet", []string{"{", "\"a\""}, ErrNotClosable, ""},
		{"5: dangling exponent", []string{"{", "\"n\"", ":", "1e"}, ErrNotClosable, ""},
		{"6: extra close bracket", []string{"[", "]", "]"}, ErrCorrupted, ""},
		{"7: trailing comma before close", []string{"[", "1", ",", "]"}, ErrCorrupted, ""},
		{"8: trailing comma in object", []string{"{", "\"a\"", ":", "1", ",", "}"}, ErrCorrupted, ""},
		{"9: open string in array", []string{"[\"hel"}, nil, "\"]"},
		{"10: resolved escape in string value", []string{"{", "\"a\"", ":", "\"", "\\", "\""}, nil, "\"}"},
		{"11: unicode escape not closable", []string{"{", "\"a\"", ":", "\"", "\\", "u"}, ErrNotClosable, ""},
		{"12: complete array then trailing whitespace", []string{"[]", " \n"}, nil, ""},
		{"13: extra char after complete document", []string{"[1, 2]", "3"}, ErrCorrupted, ""},
		{"14: keyword split across fragments", []string{"[t", "ru", "e"}, nil, "]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			var suffix string
			var err error
			for _, fragment := range tt.fragments {
				suffix, err = e.Process(fragment)
			}
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuffix, suffix)
		})
	}
}

func TestEngine_EmptyInputIsOk(t *testing.T) {
	e := New()
	suffix, err := e.Process("")
	require.NoError(t, err)
	assert.Equal(t, "", suffix)
}

func TestEngine_KeywordSplitAcrossManyFragments(t *testing.T) {
	one := New()
	_, err := one.Process(`{"a": true}`)
	require.NoError(t, err)

	split := New()
	for _, c := range `{"a": true}` {
		err := split.Advance(string(c))
		require.NoError(t, err)
	}
	suffix, err := split.Completion()
	require.NoError(t, err)
	assert.Equal(t, "", suffix)
}

func TestEngine_EscapeSplitAcrossFragments(t *testing.T) {
	// The backslash-quote pair resolves an escaped quote, not a closing
	// quote, so the string value is still open after both fragments.
	e := New()
	_, err := e.Process(`{"a": "\"`)
	require.NoError(t, err)
	suffix, err := e.Process(`abc`)
	require.NoError(t, err)
	assert.Equal(t, `"}`, suffix)
}

func TestEngine_CorruptionIsSticky(t *testing.T) {
	e := New()
	_, err := e.Process("}")
	require.ErrorIs(t, err, ErrCorrupted)

	_, err = e.Process("anything")
	require.ErrorIs(t, err, ErrCorrupted)
	assert.True(t, e.Corrupted())
}

func TestEngine_DepthTracksOpenContainers(t *testing.T) {
	e := New()
	_, err := e.Process(`{"a": [1, 2, {"b": "c`)
	require.NoError(t, err)
	assert.Equal(t, 4, e.Depth())
}

func TestEngine_MaxBufferBytesLatchesCorruption(t *testing.T) {
	e := New(WithMaxBufferBytes(4))
	_, err := e.Process("[1234]")
	require.ErrorIs(t, err, ErrCorrupted)
	assert.True(t, e.Corrupted())
}

func TestEngine_MetricsCallbackFiresOnCorruption(t *testing.T) {
	var captured MetricEventData
	e := New(WithMetricsCallback(func(data MetricEventData) {
		captured = data
	}))
	_, _ = e.Process("}")
	require.NotNil(t, captured)
	assert.Equal(t, MetricEventCorruption, captured.EventType())
}

func TestEngine_MetricsCallbackPanicDoesNotCrashEngine(t *testing.T) {
	e := New(WithMetricsCallback(func(data MetricEventData) {
		panic("boom")
	}))
	assert.NotPanics(t, func() {
		_, _ = e.Process("}")
	})
	assert.True(t, e.Corrupted())
}
