package driver

import (
	"fmt"

	"github.com/nihei9/llgen/driver/lexer"
)

// TokenStream is the token source a parser reads. Once the input is exhausted,
// Get and Peek return the empty-input token.
type TokenStream interface {
	Get() (*lexer.Token, error)
	Peek() (*lexer.Token, error)
	Empty() (bool, error)
}

var _ TokenStream = &lexer.Lexer{}

const lookaheadEOF = "#"

// lookahead maps a token to the terminal text guide sets are written in. A
// lexical error maps to the empty text, which no guide set contains. The only
// exception is an unknown symbol, which a grammar may use as a terminal unless
// it spells the end of input.
func lookahead(tok *lexer.Token) string {
	switch {
	case tok.IsEmptyInput():
		return lookaheadEOF
	case tok.Kind == lexer.KindError:
		if tok.Error == lexer.ErrorUnknownSymbol && tok.Value != lookaheadEOF {
			return tok.Value
		}
		return ""
	case tok.Kind == lexer.KindID, tok.Kind == lexer.KindInteger, tok.Kind == lexer.KindFloat:
		return tok.Kind.String()
	case tok.Kind.IsReserved():
		return tok.Kind.String()
	}
	return tok.Value
}

type sliceStream struct {
	toks []*lexer.Token
	pos  int
	eof  *lexer.Token
}

// NewSliceStream returns a token stream over prepared tokens. The stream ends
// with an empty-input token placed after the last token.
func NewSliceStream(toks []*lexer.Token) TokenStream {
	pos := 0
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		pos = last.Pos + len([]rune(last.Value))
	}
	return &sliceStream{
		toks: toks,
		eof: &lexer.Token{
			Kind:  lexer.KindError,
			Pos:   pos,
			Error: lexer.ErrorEmptyInput,
		},
	}
}

func (s *sliceStream) Get() (*lexer.Token, error) {
	tok, err := s.Peek()
	if err != nil {
		return nil, err
	}
	if s.pos < len(s.toks) {
		s.pos++
	}
	return tok, nil
}

func (s *sliceStream) Peek() (*lexer.Token, error) {
	if s.pos < len(s.toks) {
		tok := s.toks[s.pos]
		if tok == nil {
			return nil, fmt.Errorf("token #%v is nil", s.pos)
		}
		return tok, nil
	}
	return s.eof, nil
}

func (s *sliceStream) Empty() (bool, error) {
	tok, err := s.Peek()
	if err != nil {
		return false, err
	}
	return tok.IsEmptyInput(), nil
}
