package deltajson

// token is the lexical classification C1 assigns to a single input
// character. It exists purely to drive the stack manager (C3); callers never
// see it.
type token int

const (
	tokOpenBrace token = iota
	tokCloseBrace
	tokOpenBracket
	tokCloseBracket
	tokOpenKey
	tokCloseKey
	tokOpenStringContent
	tokCloseStringContent
	tokNonStringData
	tokComma
	tokColon
	tokWhitespace
	tokStringContent
)

func (t token) String() string {
	switch t {
	case tokOpenBrace:
		return "OpenBrace"
	case tokCloseBrace:
		return "CloseBrace"
	case tokOpenBracket:
		return "OpenBracket"
	case tokCloseBracket:
		return "CloseBracket"
	case tokOpenKey:
		return "OpenKey"
	case tokCloseKey:
		return "CloseKey"
	case tokOpenStringContent:
		return "OpenStringContent"
	case tokCloseStringContent:
		return "CloseStringContent"
	case tokNonStringData:
		return "NonStringData"
	case tokComma:
		return "Comma"
	case tokColon:
		return "Colon"
	case tokWhitespace:
		return "Whitespace"
	case tokStringContent:
		return "StringContent"
	default:
		return "Token(?)"
	}
}

// lexKind enumerates the internal lexical error kinds the classifier can
// raise. All of them map to Corrupted except softUnicodeEscape, which maps
// to NotClosable (see spec §7).
type lexKind int

const (
	lexUnexpectedOpenBrace lexKind = iota
	lexUnexpectedCloseBrace
	lexUnexpectedOpenBracket
	lexUnexpectedCloseBracket
	lexUnexpectedColon
	lexUnexpectedComma
	lexUnexpectedEscape
	lexQuoteAfterKeyClose
	lexQuoteAfterValueClose
	lexQuoteInNonStringData
	lexUnexpectedQuote
	lexInvalidCharInLiteral
	lexInvalidCharInNumber
	lexInvalidNonStringDataFirstChar
	lexInvalidCharacter
	lexInvalidEscape
	lexUnexpectedCharInNonStringData
	lexSoftUnicodeEscape // not a real error: see lexError.soft
)

func (k lexKind) String() string {
	switch k {
	case lexUnexpectedOpenBrace:
		return "UnexpectedOpenBrace"
	case lexUnexpectedCloseBrace:
		return "UnexpectedCloseBrace"
	case lexUnexpectedOpenBracket:
		return "UnexpectedOpenBracket"
	case lexUnexpectedCloseBracket:
		return "UnexpectedCloseBracket"
	case lexUnexpectedColon:
		return "UnexpectedColon"
	case lexUnexpectedComma:
		return "UnexpectedComma"
	case lexUnexpectedEscape:
		return "UnexpectedEscape"
	case lexQuoteAfterKeyClose:
		return "QuoteAfterKeyClose"
	case lexQuoteAfterValueClose:
		return "QuoteAfterValueClose"
	case lexQuoteInNonStringData:
		return "QuoteInNonStringData"
	case lexUnexpectedQuote:
		return "UnexpectedQuote"
	case lexInvalidCharInLiteral:
		return "InvalidCharInLiteral"
	case lexInvalidCharInNumber:
		return "InvalidCharInNumber"
	case lexInvalidNonStringDataFirstChar:
		return "InvalidNonStringDataFirstChar"
	case lexInvalidCharacter:
		return "InvalidCharacter"
	case lexInvalidEscape:
		return "InvalidEscape"
	case lexUnexpectedCharInNonStringData:
		return "UnexpectedCharInNonStringData"
	case lexSoftUnicodeEscape:
		return "SoftUnicodeEscape"
	default:
		return "LexError(?)"
	}
}

// lexError is the internal error type raised by the classifier (C1). soft
// is true only for the distinguished "inside \u, more input may resolve it"
// signal; every other kind is sticky corruption once it reaches the façade.
type lexError struct {
	kind lexKind
	char rune
}

func (e *lexError) Error() string {
	if e.char != 0 {
		return "deltajson: " + e.kind.String() + ": " + string(e.char)
	}
	return "deltajson: " + e.kind.String()
}

func (e *lexError) soft() bool {
	return e.kind == lexSoftUnicodeEscape
}

func newLexError(kind lexKind, c rune) error {
	return &lexError{kind: kind, char: c}
}

// stackKind enumerates the ways the container stack manager (C3) can reject
// a token.
type stackKind int

const (
	stackNotStructural stackKind = iota
	stackEmptyOnClose
	stackMismatched
)

// stackError is the internal error type raised by the stack manager (C3).
// stackNotStructural is not really an error — it is the "keep going, this
// token doesn't touch the stack" signal — but modeling it as an error lets
// the façade use a single branch for "anything other than success".
type stackError struct {
	kind stackKind
}

func (e *stackError) Error() string {
	switch e.kind {
	case stackNotStructural:
		return "deltajson: token is not structural"
	case stackEmptyOnClose:
		return "deltajson: close token with empty stack"
	case stackMismatched:
		return "deltajson: mismatched closing token"
	default:
		return "deltajson: stack error"
	}
}

func (e *stackError) notStructural() bool {
	return e.kind == stackNotStructural
}
