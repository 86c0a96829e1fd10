package deltajson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEngine_BalancingRegressionSuite is a table of fragment sequences and
// their expected final outcome, organized the same way as the original
// balancer's own regression data: happy paths that close cleanly, states
// that are valid but not yet closable, irrecoverable corruption, and
// snapshots of already-complete documents.
func TestEngine_BalancingRegressionSuite(t *testing.T) {
	type outcome struct {
		suffix string
		err    error
	}
	ok := func(suffix string) outcome { return outcome{suffix: suffix} }
	notClosable := outcome{err: ErrNotClosable}
	corrupted := outcome{err: ErrCorrupted}

	tests := []struct {
		name    string
		deltas  []string
		outcome outcome
	}{
		// happy paths
		{"empty_array", []string{"["}, ok("]")},
		{"empty_object", []string{"{"}, ok("}")},
		{"array_one_number", []string{"[", "1"}, ok("]")},
		{"object_simple_kv", []string{"{", `"a"`, ":", "1"}, ok("}")},
		{"nested_object_in_array", []string{"[", "{", `"k"`, ":", `"v"`}, ok("}]")},
		{"double_nest", []string{"{", `"a"`, ":", "[", "{", `"b"`, ":", "2"}, ok("}]}")},
		{"multi_kv_object_needs_brace", []string{"{", `"a"`, ":", "1", ",", `"b"`, ":", "2"}, ok("}")},
		{"trailing_string_value", []string{"{", `"a"`, ":", `"x"`}, ok("}")},
		{"array_of_objects_partial_second", []string{"[", "{", `"a"`, ":", "1", "}", ",", "{", `"b"`, ":", "2"}, ok("}]")},

		// partial values: open strings close with a quote, the rest are not closable yet
		{"obj_expecting_colon", []string{"{", `"a"`}, notClosable},
		{"obj_expecting_value", []string{"{", `"a"`, ":"}, notClosable},
		{"obj_in_open_string_value", []string{"{", `"a"`, ":", `"va`}, ok(`"}`)},
		{"obj_in_escape", []string{"{", `"a"`, ":", "\"va\\"}, notClosable},
		{"array_after_comma_expecting_value", []string{"[", "1", ",", ""}, notClosable},
		{"array_in_open_string", []string{"[", `"hel`}, ok(`"]`)},
		{"number_partial_minus", []string{"{", `"n"`, ":", "-"}, notClosable},
		{"number_partial_exp", []string{"{", `"n"`, ":", "1e"}, notClosable},
		{"literal_true_partial", []string{"[", "tr"}, notClosable},
		{"literal_null_partial", []string{"{", `"x"`, ":", "nu"}, notClosable},

		// corrupted
		{"corrupted_mismatch", []string{"[", "]", "]"}, corrupted},
		{"corrupted_extra_colon", []string{"{", `"a"`, ":", ":", "1"}, corrupted},
		{"corrupted_close_brace_in_array", []string{"[", "}"}, corrupted},
		{"corrupted_unexpected_comma_start_array", []string{"[", ","}, corrupted},
		{"corrupted_unexpected_comma_start_object", []string{"{", ","}, corrupted},
		{"corrupted_unexpected_colon_top", []string{":"}, corrupted},
		{"corrupted_quote_in_nonstring_data", []string{"[", "1", `"`, "]"}, corrupted},
		{"corrupted_comma_then_brace", []string{"{", `"a"`, ":", "1", ",", "}"}, corrupted},

		// already complete
		{"already_complete_empty_array", []string{"[]"}, ok("")},
		{"already_complete_simple_object", []string{`{"a":1}`}, ok("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			var suffix string
			var err error
			for _, delta := range tt.deltas {
				suffix, err = e.Process(delta)
			}
			if tt.outcome.err != nil {
				require.ErrorIs(t, err, tt.outcome.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.outcome.suffix, suffix)
		})
	}
}
