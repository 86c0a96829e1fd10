package deltajson

// closer is a single entry on the container stack: the character that would
// close the innermost currently-open container or string.
type closer byte

const (
	closeBrace   closer = '}'
	closeBracket closer = ']'
	closeQuote   closer = '"'
)

// containerStack is C3: an ordered sequence of closing markers, one byte per
// entry, top-of-stack = innermost open context. It carries no semantic
// knowledge of JSONState; it only tracks open/close parity.
type containerStack []closer

func (s containerStack) depth() int {
	return len(s)
}

// applyToken pushes, pops, or no-ops the stack according to tok, per C3's
// contract in spec §4.3. It returns the updated stack and an error that is
// either nil (success), a *stackError with kind stackNotStructural (the
// token doesn't touch the stack at all — not a real failure), or a
// *stackError with kind stackEmptyOnClose/stackMismatched (corruption).
func applyToken(stack containerStack, tok token) (containerStack, error) {
	switch tok {
	case tokOpenBrace:
		return append(stack, closeBrace), nil
	case tokOpenBracket:
		return append(stack, closeBracket), nil
	case tokOpenKey, tokOpenStringContent:
		return append(stack, closeQuote), nil

	case tokCloseBrace:
		return popMatching(stack, closeBrace)
	case tokCloseBracket:
		return popMatching(stack, closeBracket)
	case tokCloseKey, tokCloseStringContent:
		return popMatching(stack, closeQuote)

	default:
		// NonStringData, Comma, Colon, Whitespace, StringContent.
		return stack, &stackError{kind: stackNotStructural}
	}
}

func popMatching(stack containerStack, want closer) (containerStack, error) {
	if len(stack) == 0 {
		return stack, &stackError{kind: stackEmptyOnClose}
	}
	top := stack[len(stack)-1]
	if top != want {
		// Leave the mismatched top in place, per spec §4.3.
		return stack, &stackError{kind: stackMismatched}
	}
	return stack[:len(stack)-1], nil
}
