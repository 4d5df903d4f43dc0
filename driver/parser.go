package driver

import (
	"fmt"
	"strings"

	"github.com/nihei9/llgen/driver/lexer"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("llgen.driver")
}

const defaultMaxStackDepth = 65536

type ParserOption func(p *Parser) error

// MaxStackDepth bounds the return stack. A parse exceeding it fails with an
// error.
func MaxStackDepth(depth int) ParserOption {
	return func(p *Parser) error {
		if depth < 1 {
			return fmt.Errorf("max stack depth must be >=1: %v", depth)
		}
		p.maxStackDepth = depth
		return nil
	}
}

// Parser runs a compiled table over token streams. A parser keeps the syntax
// error of its last run, so concurrent callers need a parser each; the grammar
// can be shared.
type Parser struct {
	g             *Grammar
	maxStackDepth int
	synErr        *SyntaxError
}

func NewParser(g *Grammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		g:             g,
		maxStackDepth: defaultMaxStackDepth,
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse reports whether input is a sentence of the grammar. The error is
// non-nil only when the parser could not run to a verdict.
func (p *Parser) Parse(input string) (bool, error) {
	lex, err := lexer.NewLexer(strings.NewReader(input))
	if err != nil {
		return false, err
	}
	return p.ParseStream(lex)
}

func (p *Parser) ParseStream(ts TokenStream) (bool, error) {
	p.synErr = nil

	if p.g.RowCount() == 0 {
		return false, fmt.Errorf("the table %v has no rows", p.g.Name())
	}

	tok, err := ts.Get()
	if err != nil {
		return false, err
	}
	la := lookahead(tok)

	var stack []int
	index := 0
	for {
		row := p.g.Row(index)
		if !p.g.Guided(index, la) {
			if row.Error || index+1 >= p.g.RowCount() {
				p.synErr = &SyntaxError{
					Expected: p.g.Guides(index),
					Received: tok,
				}
				tracer().Debugf("reject at row %v: %v", index, p.synErr)
				return false, nil
			}
			index++
			continue
		}

		tracer().Debugf("row %v: %v matches %v", index, row.Symbol, la)

		if row.End {
			return true, nil
		}
		if row.Shift {
			tok, err = ts.Get()
			if err != nil {
				return false, err
			}
			la = lookahead(tok)
		}
		if row.Stack {
			if len(stack) >= p.maxStackDepth {
				return false, fmt.Errorf("the return stack exceeds its max depth %v at row %v", p.maxStackDepth, index)
			}
			stack = append(stack, index+1)
		}

		switch {
		case row.HasPtr():
			index = row.Ptr
		case len(stack) > 0:
			index = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		default:
			index = 0
		}
		if index < 0 || index >= p.g.RowCount() {
			return false, fmt.Errorf("row %v jumps out of the table: %v", row.Symbol, index)
		}
	}
}

// SyntaxError returns the error of the last rejected parse, or nil when the
// last parse was accepted.
func (p *Parser) SyntaxError() *SyntaxError {
	return p.synErr
}
