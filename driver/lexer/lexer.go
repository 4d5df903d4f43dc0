package lexer

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type Kind int

const (
	KindError Kind = iota
	KindParenOpen
	KindParenClose
	KindBraceOpen
	KindBraceClose
	KindBracketOpen
	KindBracketClose
	KindComma
	KindPlus
	KindMinus
	KindMul
	KindMod
	KindIntDiv
	KindDiv
	KindAssign
	KindEqual
	KindNotEqual
	KindLess
	KindGreater
	KindLessEqual
	KindGreaterEqual
	KindAnd
	KindOr
	KindNot
	KindExclamation
	KindID
	KindInteger
	KindFloat
	KindString
	KindTrue
	KindFalse
)

var kindNames = [...]string{
	KindError:        "error",
	KindParenOpen:    "(",
	KindParenClose:   ")",
	KindBraceOpen:    "{",
	KindBraceClose:   "}",
	KindBracketOpen:  "[",
	KindBracketClose: "]",
	KindComma:        ",",
	KindPlus:         "+",
	KindMinus:        "-",
	KindMul:          "*",
	KindMod:          "mod",
	KindIntDiv:       "div",
	KindDiv:          "/",
	KindAssign:       "=",
	KindEqual:        "==",
	KindNotEqual:     "!=",
	KindLess:         "<",
	KindGreater:      ">",
	KindLessEqual:    "<=",
	KindGreaterEqual: ">=",
	KindAnd:          "and",
	KindOr:           "or",
	KindNot:          "not",
	KindExclamation:  "!",
	KindID:           "id",
	KindInteger:      "int",
	KindFloat:        "float",
	KindString:       "string",
	KindTrue:         "true",
	KindFalse:        "false",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("<unknown kind %d>", int(k))
	}
	return kindNames[k]
}

// IsReserved reports whether a kind is spelled by a reserved word.
func (k Kind) IsReserved() bool {
	switch k {
	case KindMod, KindIntDiv, KindAnd, KindOr, KindNot, KindTrue, KindFalse:
		return true
	}
	return false
}

type ErrorCode int

const (
	ErrorNone ErrorCode = iota
	ErrorUnknownSymbol
	ErrorInvalidNumber
	ErrorStringLiteralIncomplete
	ErrorEmptyInput
	ErrorInvalidID
	ErrorTermExpected
	ErrorParenCloseExpected
)

var errorDescriptions = [...]string{
	ErrorNone:                    "No error",
	ErrorUnknownSymbol:           "Unknown symbol",
	ErrorInvalidNumber:           "Invalid number format",
	ErrorStringLiteralIncomplete: "String literal is incomplete",
	ErrorEmptyInput:              "Empty input",
	ErrorInvalidID:               "Invalid identifier",
	ErrorTermExpected:            "Term expected",
	ErrorParenCloseExpected:      "Closing parenthesis expected",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(errorDescriptions) {
		return fmt.Sprintf("<unknown error %d>", int(c))
	}
	return errorDescriptions[c]
}

// Token is a lexeme of the input. Pos is the offset of the first code point of
// the lexeme. Error is ErrorNone unless Kind is KindError.
type Token struct {
	Kind  Kind
	Value string
	Pos   int
	Error ErrorCode
}

func (t *Token) String() string {
	if t.Kind == KindError {
		return fmt.Sprintf("%v(%v) %q @%v", t.Kind, t.Error, t.Value, t.Pos)
	}
	return fmt.Sprintf("%v %q @%v", t.Kind, t.Value, t.Pos)
}

// IsEmptyInput reports whether a token marks the end of the input.
func (t *Token) IsEmptyInput() bool {
	return t.Kind == KindError && t.Error == ErrorEmptyInput
}

type lexEntry struct {
	name    string
	pattern string
	kind    Kind
	err     ErrorCode

	// keepValue is false when a token of the entry carries an empty value.
	keepValue bool
}

const kindNameWhiteSpace = "white_space"

// When matches have the same length, the entry listed first wins.
var lexEntries = []*lexEntry{
	{name: kindNameWhiteSpace, pattern: `[\u{0009}\u{000A}\u{000D}\u{0020}]+`},

	{name: "kw_mod", pattern: caseInsensitive("mod"), kind: KindMod, keepValue: true},
	{name: "kw_div", pattern: caseInsensitive("div"), kind: KindIntDiv, keepValue: true},
	{name: "kw_and", pattern: caseInsensitive("and"), kind: KindAnd, keepValue: true},
	{name: "kw_or", pattern: caseInsensitive("or"), kind: KindOr, keepValue: true},
	{name: "kw_not", pattern: caseInsensitive("not"), kind: KindNot, keepValue: true},
	{name: "kw_true", pattern: caseInsensitive("true"), kind: KindTrue, keepValue: true},
	{name: "kw_false", pattern: caseInsensitive("false"), kind: KindFalse, keepValue: true},

	{name: "identifier", pattern: idPattern, kind: KindID, keepValue: true},
	{name: "invalid_identifier", pattern: idPattern + `\.`, kind: KindError, err: ErrorInvalidID},

	{name: "float", pattern: `(0|[1-9][0-9]*)(\.[0-9]+([Ee](\+|-)[1-9][0-9]*)?|[Ee](\+|-)[1-9][0-9]*)`, kind: KindFloat, keepValue: true},
	{name: "integer", pattern: `0|[1-9][0-9]*`, kind: KindInteger, keepValue: true},
	{name: "invalid_number", pattern: `0[0-9]+(\.[0-9]*)?|(0|[1-9][0-9]*)(\.[0-9]+)?[Ee]((\+|-)(0[0-9]*)?|[0-9]*)|(0|[1-9][0-9]*)\.`, kind: KindError, err: ErrorInvalidNumber},

	{name: "string_literal", pattern: `'[^']*'`, kind: KindString, keepValue: true},
	{name: "unclosed_string_literal", pattern: `'[^']*`, kind: KindError, err: ErrorStringLiteralIncomplete},

	{name: "equal", pattern: mlspec.EscapePattern("=="), kind: KindEqual, keepValue: true},
	{name: "not_equal", pattern: mlspec.EscapePattern("!="), kind: KindNotEqual, keepValue: true},
	{name: "less_equal", pattern: mlspec.EscapePattern("<="), kind: KindLessEqual, keepValue: true},
	{name: "greater_equal", pattern: mlspec.EscapePattern(">="), kind: KindGreaterEqual, keepValue: true},
	{name: "paren_open", pattern: mlspec.EscapePattern("("), kind: KindParenOpen, keepValue: true},
	{name: "paren_close", pattern: mlspec.EscapePattern(")"), kind: KindParenClose, keepValue: true},
	{name: "brace_open", pattern: mlspec.EscapePattern("{"), kind: KindBraceOpen, keepValue: true},
	{name: "brace_close", pattern: mlspec.EscapePattern("}"), kind: KindBraceClose, keepValue: true},
	{name: "bracket_open", pattern: mlspec.EscapePattern("["), kind: KindBracketOpen, keepValue: true},
	{name: "bracket_close", pattern: mlspec.EscapePattern("]"), kind: KindBracketClose, keepValue: true},
	{name: "comma", pattern: mlspec.EscapePattern(","), kind: KindComma, keepValue: true},
	{name: "plus", pattern: mlspec.EscapePattern("+"), kind: KindPlus, keepValue: true},
	{name: "minus", pattern: mlspec.EscapePattern("-"), kind: KindMinus, keepValue: true},
	{name: "mul", pattern: mlspec.EscapePattern("*"), kind: KindMul, keepValue: true},
	{name: "div", pattern: mlspec.EscapePattern("/"), kind: KindDiv, keepValue: true},
	{name: "assign", pattern: mlspec.EscapePattern("="), kind: KindAssign, keepValue: true},
	{name: "exclamation", pattern: mlspec.EscapePattern("!"), kind: KindExclamation, keepValue: true},
	{name: "less", pattern: mlspec.EscapePattern("<"), kind: KindLess, keepValue: true},
	{name: "greater", pattern: mlspec.EscapePattern(">"), kind: KindGreater, keepValue: true},
}

const idPattern = `[A-Za-z_$][0-9A-Za-z_$]*(\.[A-Za-z_$][0-9A-Za-z_$]*)*`

func caseInsensitive(word string) string {
	var b strings.Builder
	for _, c := range word {
		fmt.Fprintf(&b, "[%c%c]", c-'a'+'A', c)
	}
	return b.String()
}

var (
	compiledSpec     *mlspec.CompiledLexSpec
	compiledSpecErr  error
	compiledSpecOnce sync.Once
	name2Entry       map[string]*lexEntry
)

func lexSpec() (*mlspec.CompiledLexSpec, error) {
	compiledSpecOnce.Do(func() {
		entries := make([]*mlspec.LexEntry, len(lexEntries))
		name2Entry = make(map[string]*lexEntry, len(lexEntries))
		for i, e := range lexEntries {
			entries[i] = &mlspec.LexEntry{
				Kind:    mlspec.LexKindName(e.name),
				Pattern: mlspec.LexPattern(e.pattern),
			}
			name2Entry[e.name] = e
		}
		s, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name:    "llgen_input",
			Entries: entries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				for _, cErr := range cErrs {
					fmt.Fprintf(&b, "\n%v: %v", cErr.Kind, cErr.Cause)
					if cErr.Detail != "" {
						fmt.Fprintf(&b, ": %v", cErr.Detail)
					}
				}
				compiledSpecErr = fmt.Errorf("%w:%v", err, b.String())
				return
			}
			compiledSpecErr = err
			return
		}
		compiledSpec = s
	})
	return compiledSpec, compiledSpecErr
}

// Lexer splits a source into tokens. Once the source is exhausted, every call
// of Get or Peek returns the empty-input token.
type Lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	pos int
	buf *Token
	eof *Token

	// unknown holds the rest of a run of unknown symbols, one token per rune.
	unknown []*Token
}

func NewLexer(src io.Reader) (*Lexer, error) {
	s, err := lexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		s: s,
		d: d,
	}, nil
}

// Get returns the next token and consumes it.
func (l *Lexer) Get() (*Token, error) {
	if l.buf != nil {
		tok := l.buf
		l.buf = nil
		return tok, nil
	}
	return l.next()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (*Token, error) {
	if l.buf == nil {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.buf = tok
	}
	return l.buf, nil
}

// Empty reports whether only the empty-input token remains.
func (l *Lexer) Empty() (bool, error) {
	tok, err := l.Peek()
	if err != nil {
		return false, err
	}
	return tok.IsEmptyInput(), nil
}

func (l *Lexer) next() (*Token, error) {
	if len(l.unknown) > 0 {
		tok := l.unknown[0]
		l.unknown = l.unknown[1:]
		return tok, nil
	}
	if l.eof != nil {
		return l.eof, nil
	}

	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			l.eof = &Token{
				Kind:  KindError,
				Pos:   l.pos,
				Error: ErrorEmptyInput,
			}
			return l.eof, nil
		}

		lexeme := string(tok.Lexeme)
		pos := l.pos
		l.pos += utf8.RuneCountInString(lexeme)

		if tok.Invalid {
			for _, c := range lexeme {
				l.unknown = append(l.unknown, &Token{
					Kind:  KindError,
					Value: string(c),
					Pos:   pos,
					Error: ErrorUnknownSymbol,
				})
				pos++
			}
			return l.next()
		}

		name := string(l.s.KindNames[tok.KindID])
		if name == kindNameWhiteSpace {
			continue
		}
		e, ok := name2Entry[name]
		if !ok {
			return nil, fmt.Errorf("unknown lexical kind: %v", name)
		}
		t := &Token{
			Kind:  e.kind,
			Pos:   pos,
			Error: e.err,
		}
		if e.keepValue {
			t.Value = lexeme
		}
		return t, nil
	}
}

// Tokenize reads every token of src. The last token is the empty-input token
// unless the source contains an erroneous token, which ends the result instead.
func Tokenize(src io.Reader) ([]*Token, error) {
	l, err := NewLexer(src)
	if err != nil {
		return nil, err
	}
	var toks []*Token
	for {
		tok, err := l.Get()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == KindError {
			return toks, nil
		}
	}
}
