package deltajson

import "strings"

// synthesizeCompletion is C4: given the container stack and the current
// state, either return the shortest closing suffix or report that the
// state isn't cleanly closable (spec §4.4). It never mutates its inputs.
func synthesizeCompletion(stack containerStack, state JSONState) (string, error) {
	if !state.isCleanlyClosable() {
		return "", ErrNotClosable
	}

	var b strings.Builder
	b.Grow(len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(byte(stack[i]))
	}
	return b.String(), nil
}
