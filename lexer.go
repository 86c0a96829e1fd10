package deltajson

// classify is C1: given the next input character and the current state, it
// either returns the token that character produced (mutating *state in
// place) or a *lexError. Dispatch follows the priority order in spec §4.1:
// resolve a pending escape first, then backslash, then quote, then
// delimiter preemption on a completable value, then string content, then
// non-string continuation, then structural characters, then whitespace,
// and finally InvalidCharacter.
func classify(c rune, state *JSONState) (token, error) {
	if isEscaped(*state) {
		return resolveEscape(c, state)
	}

	if c == '\\' {
		if isOpenString(*state) {
			return enterEscape(state)
		}
		return 0, newLexError(lexUnexpectedEscape, c)
	}

	if c == '"' {
		return dispatchQuote(state)
	}

	if isCompletableValue(*state) {
		switch c {
		case ',':
			return dispatchComma(state)
		case '}':
			return dispatchCloseBrace(state)
		case ']':
			return dispatchCloseBracket(state)
		}
	}

	if isOpenString(*state) {
		return tokStringContent, nil
	}

	if isJSONWhitespace(c) && isNonStringContinuing(*state) && isCompletableValue(*state) {
		// Whitespace ends a complete number or keyword. It is kept in the
		// buffer, so any later character other than a delimiter fails the
		// oracle instead of extending the value.
		if state.Kind == KindObject {
			*state = objectInValue(nonStringValue(state.ObjValue.NonString.Buffer+string(c), true))
		} else {
			*state = arrayInValue(nonStringValue(state.ArrValue.NonString.Buffer+string(c), true))
		}
		return tokWhitespace, nil
	}

	if isNonStringContinuing(*state) || (isNonStringStart(*state) && isNonStringStartChar(c)) {
		return classifyNonString(c, state)
	}

	switch c {
	case '{':
		return dispatchOpenBrace(state)
	case '}':
		return dispatchCloseBrace(state)
	case '[':
		return dispatchOpenBracket(state)
	case ']':
		return dispatchCloseBracket(state)
	case ':':
		return dispatchColon(state)
	case ',':
		return dispatchComma(state)
	}

	if isJSONWhitespace(c) {
		return tokWhitespace, nil
	}

	return 0, newLexError(lexInvalidCharacter, c)
}

func isJSONWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNonStringStartChar(c rune) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == 'n' || c == 't' || c == 'f'
}

// --- state predicates -------------------------------------------------

func isEscaped(s JSONState) bool {
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjInKey:
		return s.KeyString == StringEscaped
	case s.Kind == KindObject && s.ObjSub == ObjInValue && s.ObjValue.Kind == ValueString:
		return s.ObjValue.StringSub == StringEscaped
	case s.Kind == KindArray && s.ArrSub == ArrInValue && s.ArrValue.Kind == ValueString:
		return s.ArrValue.StringSub == StringEscaped
	default:
		return false
	}
}

func isOpenString(s JSONState) bool {
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjInKey:
		return s.KeyString == StringOpen
	case s.Kind == KindObject && s.ObjSub == ObjInValue && s.ObjValue.Kind == ValueString:
		return s.ObjValue.StringSub == StringOpen
	case s.Kind == KindArray && s.ArrSub == ArrInValue && s.ArrValue.Kind == ValueString:
		return s.ArrValue.StringSub == StringOpen
	default:
		return false
	}
}

// isCompletableValue implements the "last value is completable" test used
// for delimiter preemption (spec §4.1 rule 4): a closed string, a completable
// number/keyword, or a nested container that just closed.
func isCompletableValue(s JSONState) bool {
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjInValue:
		return valueIsCompletable(s.ObjValue)
	case s.Kind == KindArray && s.ArrSub == ArrInValue:
		return valueIsCompletable(s.ArrValue)
	default:
		return false
	}
}

func valueIsCompletable(v ValueState) bool {
	switch v.Kind {
	case ValueString:
		return v.StringSub == StringClosed
	case ValueNonString:
		return v.NonString.Completable
	case ValueNestedCompleted:
		return true
	default:
		return false
	}
}

func isNonStringContinuing(s JSONState) bool {
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjInValue:
		return s.ObjValue.Kind == ValueNonString
	case s.Kind == KindArray && s.ArrSub == ArrInValue:
		return s.ArrValue.Kind == ValueNonString
	default:
		return false
	}
}

func isNonStringStart(s JSONState) bool {
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjExpectingValue:
		return true
	case s.Kind == KindArray && (s.ArrSub == ArrEmpty || s.ArrSub == ArrExpectingValue):
		return true
	default:
		return false
	}
}

// --- quote handler (§4.1.1) --------------------------------------------

func dispatchQuote(state *JSONState) (token, error) {
	s := *state
	switch {
	case s.Kind == KindObject && (s.ObjSub == ObjEmpty || s.ObjSub == ObjExpectingKey):
		*state = objectInKey(StringOpen)
		return tokOpenKey, nil
	case s.Kind == KindObject && s.ObjSub == ObjExpectingValue:
		*state = objectInValue(stringValue(StringOpen))
		return tokOpenStringContent, nil
	case s.Kind == KindArray && (s.ArrSub == ArrEmpty || s.ArrSub == ArrExpectingValue):
		*state = arrayInValue(stringValue(StringOpen))
		return tokOpenStringContent, nil

	case s.Kind == KindObject && s.ObjSub == ObjInKey && s.KeyString == StringOpen:
		*state = objectInKey(StringClosed)
		return tokCloseKey, nil
	case s.Kind == KindObject && s.ObjSub == ObjInValue && s.ObjValue.Kind == ValueString && s.ObjValue.StringSub == StringOpen:
		*state = objectInValue(stringValue(StringClosed))
		return tokCloseStringContent, nil
	case s.Kind == KindArray && s.ArrSub == ArrInValue && s.ArrValue.Kind == ValueString && s.ArrValue.StringSub == StringOpen:
		*state = arrayInValue(stringValue(StringClosed))
		return tokCloseStringContent, nil

	case s.Kind == KindObject && s.ObjSub == ObjInKey && s.KeyString == StringClosed:
		return 0, newLexError(lexQuoteAfterKeyClose, '"')
	case s.Kind == KindObject && s.ObjSub == ObjInValue && s.ObjValue.Kind == ValueString && s.ObjValue.StringSub == StringClosed,
		s.Kind == KindArray && s.ArrSub == ArrInValue && s.ArrValue.Kind == ValueString && s.ArrValue.StringSub == StringClosed:
		return 0, newLexError(lexQuoteAfterValueClose, '"')
	case s.Kind == KindObject && s.ObjSub == ObjInValue && s.ObjValue.Kind == ValueNonString,
		s.Kind == KindArray && s.ArrSub == ArrInValue && s.ArrValue.Kind == ValueNonString:
		return 0, newLexError(lexQuoteInNonStringData, '"')
	default:
		return 0, newLexError(lexUnexpectedQuote, '"')
	}
}

// --- escape handling (§4.1.2) -------------------------------------------

func enterEscape(state *JSONState) (token, error) {
	s := *state
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjInKey && s.KeyString == StringOpen:
		*state = objectInKey(StringEscaped)
		return tokStringContent, nil
	case s.Kind == KindObject && s.ObjSub == ObjInValue && s.ObjValue.Kind == ValueString && s.ObjValue.StringSub == StringOpen:
		*state = objectInValue(stringValue(StringEscaped))
		return tokStringContent, nil
	case s.Kind == KindArray && s.ArrSub == ArrInValue && s.ArrValue.Kind == ValueString && s.ArrValue.StringSub == StringOpen:
		*state = arrayInValue(stringValue(StringEscaped))
		return tokStringContent, nil
	default:
		return 0, newLexError(lexUnexpectedEscape, '\\')
	}
}

// isEscapeResolver reports whether c is one of the characters that legally
// follows a backslash in a JSON string (excluding 'u', handled separately).
func isEscapeResolver(c rune) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return true
	default:
		return false
	}
}

func resolveEscape(c rune, state *JSONState) (token, error) {
	s := *state
	switch {
	case c == 'u':
		// Stay in Escaped: the engine doesn't track the four hex digits, so
		// the string is not closable until a non-'u' resolution arrives.
		// This is the one soft error: not-closable, not corruption.
		return 0, newLexError(lexSoftUnicodeEscape, c)
	case isEscapeResolver(c):
		switch {
		case s.Kind == KindObject && s.ObjSub == ObjInKey:
			*state = objectInKey(StringOpen)
		case s.Kind == KindObject && s.ObjSub == ObjInValue:
			*state = objectInValue(stringValue(StringOpen))
		case s.Kind == KindArray && s.ArrSub == ArrInValue:
			*state = arrayInValue(stringValue(StringOpen))
		}
		return tokStringContent, nil
	default:
		return 0, newLexError(lexInvalidEscape, c)
	}
}

// --- structural handlers (§4.1.5) ---------------------------------------

func dispatchOpenBrace(state *JSONState) (token, error) {
	s := *state
	switch {
	case s.Kind == KindPending,
		s.Kind == KindObject && s.ObjSub == ObjExpectingValue,
		s.Kind == KindArray && (s.ArrSub == ArrEmpty || s.ArrSub == ArrExpectingValue):
		*state = objectState(ObjEmpty)
		return tokOpenBrace, nil
	default:
		return 0, newLexError(lexUnexpectedOpenBrace, '{')
	}
}

func dispatchCloseBrace(state *JSONState) (token, error) {
	s := *state
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjEmpty:
		return tokCloseBrace, nil
	case s.Kind == KindObject && s.ObjSub == ObjInValue && valueIsCompletable(s.ObjValue):
		return tokCloseBrace, nil
	default:
		return 0, newLexError(lexUnexpectedCloseBrace, '}')
	}
}

func dispatchOpenBracket(state *JSONState) (token, error) {
	s := *state
	switch {
	case s.Kind == KindPending,
		s.Kind == KindObject && s.ObjSub == ObjExpectingValue,
		s.Kind == KindArray && (s.ArrSub == ArrEmpty || s.ArrSub == ArrExpectingValue):
		*state = arrayState(ArrEmpty)
		return tokOpenBracket, nil
	default:
		return 0, newLexError(lexUnexpectedOpenBracket, '[')
	}
}

func dispatchCloseBracket(state *JSONState) (token, error) {
	s := *state
	switch {
	case s.Kind == KindArray && s.ArrSub == ArrEmpty:
		return tokCloseBracket, nil
	case s.Kind == KindArray && s.ArrSub == ArrInValue && valueIsCompletable(s.ArrValue):
		return tokCloseBracket, nil
	default:
		return 0, newLexError(lexUnexpectedCloseBracket, ']')
	}
}

func dispatchColon(state *JSONState) (token, error) {
	s := *state
	if s.Kind == KindObject && s.ObjSub == ObjInKey && s.KeyString == StringClosed {
		*state = objectState(ObjExpectingValue)
		return tokColon, nil
	}
	return 0, newLexError(lexUnexpectedColon, ':')
}

func dispatchComma(state *JSONState) (token, error) {
	s := *state
	switch {
	case s.Kind == KindObject && s.ObjSub == ObjInValue && valueIsCompletable(s.ObjValue):
		*state = objectState(ObjExpectingKey)
		return tokComma, nil
	case s.Kind == KindArray && s.ArrSub == ArrInValue && valueIsCompletable(s.ArrValue):
		*state = arrayState(ArrExpectingValue)
		return tokComma, nil
	default:
		return 0, newLexError(lexUnexpectedComma, ',')
	}
}
