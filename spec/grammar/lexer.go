package grammar

import (
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenKind int

const (
	tokenKindArrow tokenKind = iota + 1
	tokenKindOr
	tokenKindNewline
	tokenKindWord
)

func (k tokenKind) String() string {
	switch k {
	case tokenKindArrow:
		return "->"
	case tokenKindOr:
		return "|"
	case tokenKindNewline:
		return "newline"
	case tokenKindWord:
		return "word"
	}
	return "?"
}

type token struct {
	kind tokenKind
	text string
}

type line struct {
	row    int
	tokens []*token
}

var (
	textLexer        *lexmachine.Lexer
	textLexerErr     error
	textLexerCompile sync.Once
)

func newTextLexer() (*lexmachine.Lexer, error) {
	textLexerCompile.Do(func() {
		lex := lexmachine.NewLexer()
		lex.Add([]byte(`->`), makeToken(tokenKindArrow))
		lex.Add([]byte(`\|`), makeToken(tokenKindOr))
		lex.Add([]byte(`\n`), makeToken(tokenKindNewline))
		lex.Add([]byte(`( |\t|\r)+`), skip)
		lex.Add([]byte(`[^ \t\r\n\|]+`), makeToken(tokenKindWord))
		textLexerErr = lex.Compile()
		if textLexerErr == nil {
			textLexer = lex
		}
	})
	return textLexer, textLexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind tokenKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}

// splitIntoLines tokenizes a grammar text and groups the tokens by row. Blank
// lines are dropped.
func splitIntoLines(src []byte) ([]*line, error) {
	lex, err := newTextLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lex.Scanner(src)
	if err != nil {
		return nil, err
	}

	var lines []*line
	cur := &line{
		row: 1,
	}
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			if _, ok := err.(*machines.UnconsumedInput); ok {
				return nil, &lineError{
					cause: synErrInvalidChar,
					row:   cur.row,
				}
			}
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		kind := tokenKind(t.Type)
		if kind == tokenKindNewline {
			if len(cur.tokens) > 0 {
				lines = append(lines, cur)
			}
			cur = &line{
				row: cur.row + 1,
			}
			continue
		}
		if kind == tokenKindWord {
			cur.tokens = append(cur.tokens, splitArrows(string(t.Lexeme))...)
			continue
		}
		cur.tokens = append(cur.tokens, &token{
			kind: kind,
			text: string(t.Lexeme),
		})
	}
	if len(cur.tokens) > 0 {
		lines = append(lines, cur)
	}

	return lines, nil
}

// splitArrows separates arrows glued to a word, as in `<S>->a`. A word is the
// longest run of non-blank characters, so it swallows any arrow it touches.
func splitArrows(text string) []*token {
	parts := strings.Split(text, tokenKindArrow.String())
	toks := make([]*token, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			toks = append(toks, &token{
				kind: tokenKindArrow,
				text: tokenKindArrow.String(),
			})
		}
		if p != "" {
			toks = append(toks, &token{
				kind: tokenKindWord,
				text: p,
			})
		}
	}
	return toks
}

type lineError struct {
	cause  error
	detail string
	row    int
}

func (e *lineError) Error() string {
	return e.cause.Error()
}
