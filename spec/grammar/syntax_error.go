package grammar

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

var (
	// lexical errors
	synErrInvalidChar = newSyntaxError("invalid character")

	// raw grammar errors
	synErrNoLHS             = newSyntaxError("a rule must begin with a left-hand side")
	synErrNoArrow           = newSyntaxError("the arrow -> must follow a left-hand side")
	synErrLHSNotNonTerminal = newSyntaxError("a left-hand side must be a non-terminal symbol such as <S>")
	synErrStrayArrow        = newSyntaxError("an arrow -> cannot appear in alternatives")

	// guided grammar errors
	synErrInvalidToken   = newSyntaxError("invalid token; a guided rule consists only of whitespace-separated symbols")
	synErrNoHyphen       = newSyntaxError("the hyphen - must follow a left-hand side")
	synErrNoSlash        = newSyntaxError("the slash / must separate an alternative and its guides")
	synErrEmptyBody      = newSyntaxError("an alternative needs at least one symbol")
	synErrInvalidGuide   = newSyntaxError("a guide must be a terminal symbol or #")
	synErrAmbiguousSlash = newSyntaxError("the slash / separating an alternative and its guides is ambiguous")
)
