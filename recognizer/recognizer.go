package recognizer

import (
	"io"
	"strings"

	"github.com/nihei9/llgen/driver/lexer"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("llgen.recognizer")
}

// Recognizer checks an input against the built-in expression grammar by
// recursive descent:
//
//	expression     -> simexp expressionRem
//	expressionRem  -> e | relOp simexp expressionRem
//	simexp         -> simterm simexpRem
//	simexpRem      -> e | lowPriorityOp simterm simexpRem
//	simterm        -> term simtermRem
//	simtermRem     -> e | highPriorityOp term simtermRem
//	term           -> ( expression ) | + term | - term | not term | ! term
//	                | ident | int | float | true | false | string
//	ident          -> id idRem
//	idRem          -> e | [ expression ] idRem | ( expList ) idRem | ( ) idRem
//	expList        -> expression expListRem
//	expListRem     -> e | , expression expListRem
type Recognizer struct {
	lex  *lexer.Lexer
	err  lexer.ErrorCode
	last *lexer.Token
}

func NewRecognizer(src io.Reader) (*Recognizer, error) {
	lex, err := lexer.NewLexer(src)
	if err != nil {
		return nil, err
	}
	return &Recognizer{
		lex: lex,
	}, nil
}

// Recognize is a shorthand to check a single input.
func Recognize(input string) (bool, lexer.ErrorCode, error) {
	r, err := NewRecognizer(strings.NewReader(input))
	if err != nil {
		return false, lexer.ErrorNone, err
	}
	ok, err := r.Parse()
	if err != nil {
		return false, lexer.ErrorNone, err
	}
	return ok, r.Error(), nil
}

// sourceError carries a failure of the token source through the descent.
type sourceError struct {
	err error
}

// Parse reports whether the whole input is an expression. The error is non-nil
// only when the token source fails.
func (r *Recognizer) Parse() (ok bool, retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		srcErr, isSrcErr := v.(*sourceError)
		if !isSrcErr {
			panic(v)
		}
		ok = false
		retErr = srcErr.err
	}()

	ok = r.expression() && r.empty()
	if ok {
		r.err = lexer.ErrorNone
	}
	tracer().Debugf("recognized: %v, error: %v, last token: %v", ok, r.err, r.last)
	return ok, nil
}

// Error returns the last lexical error seen, or the reason the descent
// stopped.
func (r *Recognizer) Error() lexer.ErrorCode {
	return r.err
}

// LastToken returns the token read or peeked last.
func (r *Recognizer) LastToken() *lexer.Token {
	return r.last
}

func (r *Recognizer) record(tok *lexer.Token) *lexer.Token {
	r.last = tok
	if tok.Kind == lexer.KindError {
		r.err = tok.Error
	}
	return tok
}

func (r *Recognizer) get() *lexer.Token {
	tok, err := r.lex.Get()
	if err != nil {
		panic(&sourceError{err: err})
	}
	return r.record(tok)
}

func (r *Recognizer) peek() *lexer.Token {
	tok, err := r.lex.Peek()
	if err != nil {
		panic(&sourceError{err: err})
	}
	return r.record(tok)
}

// empty looks ahead without recording, so reaching the end leaves the error
// untouched.
func (r *Recognizer) empty() bool {
	empty, err := r.lex.Empty()
	if err != nil {
		panic(&sourceError{err: err})
	}
	return empty
}

func (r *Recognizer) fail(code lexer.ErrorCode) bool {
	r.err = code
	return false
}

func (r *Recognizer) expression() bool {
	if r.empty() {
		return false
	}
	return r.simExp() && r.expressionRem()
}

func (r *Recognizer) expressionRem() bool {
	if r.empty() || !isRelOp(r.peek().Kind) {
		return true
	}
	r.get()
	return r.simExp() && r.expressionRem()
}

func (r *Recognizer) simExp() bool {
	if r.empty() {
		return false
	}
	return r.simTerm() && r.simExpRem()
}

func (r *Recognizer) simExpRem() bool {
	if r.empty() || !isLowPriorityOp(r.peek().Kind) {
		return true
	}
	r.get()
	return r.simTerm() && r.simExpRem()
}

func (r *Recognizer) simTerm() bool {
	if r.empty() {
		return false
	}
	return r.term() && r.simTermRem()
}

func (r *Recognizer) simTermRem() bool {
	if r.empty() || !isHighPriorityOp(r.peek().Kind) {
		return true
	}
	r.get()
	return r.term() && r.simTermRem()
}

func (r *Recognizer) term() bool {
	if r.peek().Kind == lexer.KindID {
		return r.ident()
	}

	switch r.get().Kind {
	case lexer.KindParenOpen:
		return r.expression() && ((!r.empty() && r.get().Kind == lexer.KindParenClose) || r.fail(lexer.ErrorParenCloseExpected))
	case lexer.KindPlus, lexer.KindMinus, lexer.KindNot, lexer.KindExclamation:
		return r.term()
	case lexer.KindInteger, lexer.KindFloat, lexer.KindTrue, lexer.KindFalse, lexer.KindString:
		return true
	}
	return r.fail(lexer.ErrorTermExpected)
}

func (r *Recognizer) ident() bool {
	return r.id() && r.idRem()
}

func (r *Recognizer) id() bool {
	return !r.empty() && r.get().Kind == lexer.KindID
}

func (r *Recognizer) idRem() bool {
	if r.empty() {
		return true
	}
	switch r.peek().Kind {
	case lexer.KindBracketOpen:
		r.get()
		return r.expression() && r.get().Kind == lexer.KindBracketClose && r.idRem()
	case lexer.KindParenOpen:
		r.get()
		if r.peek().Kind == lexer.KindParenClose {
			r.get()
			return r.idRem()
		}
		return r.expressionList() && r.get().Kind == lexer.KindParenClose && r.idRem()
	}
	return true
}

func (r *Recognizer) expressionList() bool {
	return r.expression() && r.expressionListRem()
}

func (r *Recognizer) expressionListRem() bool {
	if r.empty() || r.peek().Kind != lexer.KindComma {
		return true
	}
	r.get()
	return r.expression() && r.expressionListRem()
}

func isRelOp(k lexer.Kind) bool {
	switch k {
	case lexer.KindEqual, lexer.KindNotEqual, lexer.KindGreater, lexer.KindLess, lexer.KindGreaterEqual, lexer.KindLessEqual:
		return true
	}
	return false
}

func isLowPriorityOp(k lexer.Kind) bool {
	switch k {
	case lexer.KindPlus, lexer.KindMinus, lexer.KindOr:
		return true
	}
	return false
}

func isHighPriorityOp(k lexer.Kind) bool {
	switch k {
	case lexer.KindMul, lexer.KindDiv, lexer.KindIntDiv, lexer.KindMod, lexer.KindAnd:
		return true
	}
	return false
}
