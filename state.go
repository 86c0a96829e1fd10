package deltajson

// StringState is the lexical sub-state of a string that is currently open
// (a key or a string value). The cursor is either live inside the string
// (Open), sitting right after a backslash (Escaped), or past the closing
// quote (Closed).
type StringState int

const (
	StringOpen StringState = iota
	StringEscaped
	StringClosed
)

func (s StringState) String() string {
	switch s {
	case StringOpen:
		return "Open"
	case StringEscaped:
		return "Escaped"
	case StringClosed:
		return "Closed"
	default:
		return "StringState(?)"
	}
}

// NonStringState holds the accumulated text of a number or keyword literal
// (true/false/null) together with whether that text, on its own, would be a
// syntactically complete JSON number or keyword.
type NonStringState struct {
	Buffer     string
	Completable bool
}

// ValueKind distinguishes the three shapes a JSON value's sub-state can take
// while it is the current child of an object or array.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNonString
	ValueNestedCompleted
)

// ValueState is the sub-state of whatever value is currently "current" for
// the innermost open object or array: a string in progress, a number/keyword
// in progress, or the marker that a nested container just closed and control
// returned to this level.
type ValueState struct {
	Kind       ValueKind
	StringSub  StringState     // meaningful when Kind == ValueString
	NonString  NonStringState  // meaningful when Kind == ValueNonString
}

func stringValue(s StringState) ValueState {
	return ValueState{Kind: ValueString, StringSub: s}
}

func nonStringValue(buffer string, completable bool) ValueState {
	return ValueState{Kind: ValueNonString, NonString: NonStringState{Buffer: buffer, Completable: completable}}
}

func nestedCompletedValue() ValueState {
	return ValueState{Kind: ValueNestedCompleted}
}

// ObjSub is the sub-state of an open JSON object.
type ObjSub int

const (
	ObjEmpty ObjSub = iota
	ObjExpectingKey
	ObjInKey
	ObjExpectingValue
	ObjInValue
)

// ArrSub is the sub-state of an open JSON array. Arrays never hold keys.
type ArrSub int

const (
	ArrEmpty ArrSub = iota
	ArrExpectingValue
	ArrInValue
)

// Kind discriminates the three shapes JSONState can take.
type Kind int

const (
	KindPending Kind = iota
	KindObject
	KindArray
)

// JSONState is the single tagged-union value describing where the parser is
// right now: Pending (nothing open), InsideObject, or InsideArray. Only the
// fields relevant to the current Kind/sub-state are meaningful; the rest are
// zero. This mirrors a Rust-style closed enum: every transition in lexer.go
// sets a complete, self-consistent combination of these fields rather than
// mutating them piecemeal.
type JSONState struct {
	Kind Kind

	ObjSub    ObjSub
	KeyString StringState // meaningful when ObjSub == ObjInKey
	ObjValue  ValueState  // meaningful when ObjSub == ObjInValue

	ArrSub   ArrSub
	ArrValue ValueState // meaningful when ArrSub == ArrInValue
}

// Pending is the initial state: nothing consumed, or the top-level document
// has fully closed.
func Pending() JSONState {
	return JSONState{Kind: KindPending}
}

func objectState(sub ObjSub) JSONState {
	return JSONState{Kind: KindObject, ObjSub: sub}
}

func objectInKey(s StringState) JSONState {
	return JSONState{Kind: KindObject, ObjSub: ObjInKey, KeyString: s}
}

func objectInValue(v ValueState) JSONState {
	return JSONState{Kind: KindObject, ObjSub: ObjInValue, ObjValue: v}
}

func arrayState(sub ArrSub) JSONState {
	return JSONState{Kind: KindArray, ArrSub: sub}
}

func arrayInValue(v ValueState) JSONState {
	return JSONState{Kind: KindArray, ArrSub: ArrInValue, ArrValue: v}
}

// isCleanlyClosable reports whether the current state is one from which
// appending only the stack's closing markers (and nothing else) yields a
// valid JSON document. See spec §4.4.
func (s JSONState) isCleanlyClosable() bool {
	switch s.Kind {
	case KindPending:
		return true
	case KindObject:
		switch s.ObjSub {
		case ObjEmpty:
			return true
		case ObjInValue:
			return s.ObjValue.isClosable()
		default:
			return false
		}
	case KindArray:
		switch s.ArrSub {
		case ArrEmpty:
			return true
		case ArrInValue:
			return s.ArrValue.isClosable()
		default:
			return false
		}
	default:
		return false
	}
}

func (v ValueState) isClosable() bool {
	switch v.Kind {
	case ValueString:
		// Both Open and Closed are closable: an open string can always be
		// closed by appending a quote.
		return v.StringSub == StringOpen || v.StringSub == StringClosed
	case ValueNonString:
		return v.NonString.Completable
	case ValueNestedCompleted:
		return true
	default:
		return false
	}
}
