package deltajson

// classifyNonString is the non-string-value half of C1 (spec §4.1.4): it
// either starts a new number/keyword buffer or continues an existing one,
// consulting the oracle (C2) for every continuation character.
func classifyNonString(c rune, state *JSONState) (token, error) {
	s := *state
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjExpectingValue:
		startNonString(c, state, true)
		return tokNonStringData, nil
	case s.Kind == KindArray && (s.ArrSub == ArrEmpty || s.ArrSub == ArrExpectingValue):
		startNonString(c, state, false)
		return tokNonStringData, nil
	case s.Kind == KindObject && s.ObjSub == ObjInValue && s.ObjValue.Kind == ValueNonString:
		return continueNonString(c, state, true)
	case s.Kind == KindArray && s.ArrSub == ArrInValue && s.ArrValue.Kind == ValueNonString:
		return continueNonString(c, state, false)
	default:
		return 0, newLexError(lexUnexpectedCharInNonStringData, c)
	}
}

// startNonString begins a new buffer containing only c. A single digit is a
// complete number, so it starts Completable; a lone '-' or the first letter
// of a keyword is only a prefix, so it starts NonCompletable. From the next
// character on, the oracle decides.
func startNonString(c rune, state *JSONState, isObject bool) {
	completable := c >= '0' && c <= '9'
	v := nonStringValue(string(c), completable)
	if isObject {
		*state = objectInValue(v)
	} else {
		*state = arrayInValue(v)
	}
}

func continueNonString(c rune, state *JSONState, isObject bool) (token, error) {
	var buffer string
	if isObject {
		buffer = state.ObjValue.NonString.Buffer
	} else {
		buffer = state.ArrValue.NonString.Buffer
	}

	verdict, err := checkNonStringCompletability(c, buffer)
	completable := err == nil && verdict == oracleComplete
	v := nonStringValue(buffer+string(c), completable)
	if isObject {
		*state = objectInValue(v)
	} else {
		*state = arrayInValue(v)
	}

	if err != nil {
		return 0, err
	}
	return tokNonStringData, nil
}
