package driver

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/nihei9/llgen/driver/lexer"
	"github.com/nihei9/llgen/grammar"
	spec "github.com/nihei9/llgen/spec/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const arithGrammar = `
<S> -> <E> #
<E> -> <T> <E'>
<E'> -> + <T> <E'> | e
<T> -> ( <E> ) | id
`

func compile(t *testing.T, src string) *Grammar {
	t.Helper()
	tab, err := grammar.CompileRawText(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return NewGrammar(tab)
}

func newParser(t *testing.T, g *Grammar, opts ...ParserOption) *Parser {
	t.Helper()
	p, err := NewParser(g, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParser_Parse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgen.driver")
	defer teardown()

	tests := []struct {
		caption string
		grammar string
		input   string
		accept  bool
	}{
		{
			caption: "an identifier",
			grammar: "<Z> -> <S> #\n<S> -> id | int",
			input:   "a",
			accept:  true,
		},
		{
			caption: "an integer",
			grammar: "<Z> -> <S> #\n<S> -> id | int",
			input:   "123",
			accept:  true,
		},
		{
			caption: "a trailing token",
			grammar: "<Z> -> <S> #\n<S> -> id | int",
			input:   "a+b",
			accept:  false,
		},
		{
			caption: "an empty input",
			grammar: "<Z> -> <S> #\n<S> -> id | int",
			input:   "",
			accept:  false,
		},
		{
			caption: "a float is not an integer",
			grammar: "<Z> -> <S> #\n<S> -> id | int",
			input:   "1.5",
			accept:  false,
		},
		{
			caption: "nested parentheses",
			grammar: arithGrammar,
			input:   "((a) + b) + c",
			accept:  true,
		},
		{
			caption: "a missing operand",
			grammar: arithGrammar,
			input:   "a + + b",
			accept:  false,
		},
		{
			caption: "an unbalanced parenthesis",
			grammar: arithGrammar,
			input:   "(a + b",
			accept:  false,
		},
		{
			caption: "reserved words match their kind name regardless of case",
			grammar: "<S> -> <B> #\n<B> -> not <B> | true | false",
			input:   "NOT not True",
			accept:  true,
		},
		{
			caption: "a string literal keeps its quotes",
			grammar: "<S> -> 'x' #",
			input:   "'x'",
			accept:  true,
		},
		{
			caption: "an unknown symbol can be a terminal",
			grammar: "<S> -> id @ id #",
			input:   "a @ b",
			accept:  true,
		},
		{
			caption: "adjacent unknown symbols are separate terminals",
			grammar: "<S> -> id @ @ id #",
			input:   "a @@ b",
			accept:  true,
		},
		{
			caption: "an unknown symbol cannot spell the end of input",
			grammar: "<Z> -> <S> #\n<S> -> id | int",
			input:   "a #",
			accept:  false,
		},
		{
			caption: "an invalid number never matches",
			grammar: "<Z> -> <S> #\n<S> -> id | int",
			input:   "05",
			accept:  false,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			p := newParser(t, compile(t, tt.grammar))
			accepted, err := p.Parse(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if accepted != tt.accept {
				t.Fatalf("unexpected verdict; want: %v, got: %v (%v)", tt.accept, accepted, p.SyntaxError())
			}
			if accepted && p.SyntaxError() != nil {
				t.Fatalf("an accepted parse must not leave a syntax error: %v", p.SyntaxError())
			}
			if !accepted && p.SyntaxError() == nil {
				t.Fatal("a rejected parse must leave a syntax error")
			}
		})
	}
}

func TestParser_SyntaxError(t *testing.T) {
	tests := []struct {
		caption  string
		grammar  string
		input    string
		expected []string
		received *lexer.Token
		message  string
	}{
		{
			caption:  "a trailing token",
			grammar:  "<Z> -> <S> #\n<S> -> id | int",
			input:    "a+b",
			expected: []string{"#"},
			received: &lexer.Token{Kind: lexer.KindPlus, Value: "+", Pos: 1},
			message:  "Expected one of [#], but received +",
		},
		{
			caption:  "an empty input",
			grammar:  "<Z> -> <S> #\n<S> -> id | int",
			input:    "",
			expected: []string{"id", "int"},
			received: &lexer.Token{Kind: lexer.KindError, Pos: 0, Error: lexer.ErrorEmptyInput},
			message:  "Expected one of [id, int], but received <error>",
		},
		{
			caption:  "a missing operand",
			grammar:  arithGrammar,
			input:    "a + + b",
			expected: []string{"(", "id"},
			received: &lexer.Token{Kind: lexer.KindPlus, Value: "+", Pos: 4},
			message:  "Expected one of [(, id], but received +",
		},
		{
			caption:  "a dangling operator",
			grammar:  arithGrammar,
			input:    "a + b +",
			expected: []string{"(", "id"},
			received: &lexer.Token{Kind: lexer.KindError, Pos: 7, Error: lexer.ErrorEmptyInput},
			message:  "Expected one of [(, id], but received <error>",
		},
		{
			caption:  "an unknown symbol",
			grammar:  "<Z> -> <S> #\n<S> -> id | int",
			input:    "a #",
			expected: []string{"#"},
			received: &lexer.Token{Kind: lexer.KindError, Value: "#", Pos: 2, Error: lexer.ErrorUnknownSymbol},
			message:  "Expected one of [#], but received #",
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			p := newParser(t, compile(t, tt.grammar))
			accepted, err := p.Parse(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if accepted {
				t.Fatal("the input must be rejected")
			}
			synErr := p.SyntaxError()
			if strings.Join(synErr.Expected, " ") != strings.Join(tt.expected, " ") {
				t.Fatalf("unexpected expected terminals; want: %v, got: %v", tt.expected, synErr.Expected)
			}
			if *synErr.Received != *tt.received {
				t.Fatalf("unexpected received token; want: %v, got: %v", tt.received, synErr.Received)
			}
			if synErr.Pos() != tt.received.Pos {
				t.Fatalf("unexpected position; want: %v, got: %v", tt.received.Pos, synErr.Pos())
			}
			if synErr.Error() != tt.message {
				t.Fatalf("unexpected message; want: %v, got: %v", tt.message, synErr.Error())
			}
		})
	}
}

func TestParser_SyntaxErrorIsClearedOnAccept(t *testing.T) {
	p := newParser(t, compile(t, arithGrammar))
	accepted, err := p.Parse("a +")
	if err != nil {
		t.Fatal(err)
	}
	if accepted || p.SyntaxError() == nil {
		t.Fatal("the first input must be rejected")
	}
	accepted, err = p.Parse("a + b")
	if err != nil {
		t.Fatal(err)
	}
	if !accepted || p.SyntaxError() != nil {
		t.Fatalf("the second input must be accepted: %v", p.SyntaxError())
	}
}

func TestParser_MaxStackDepth(t *testing.T) {
	// A left-recursive table calls itself forever without consuming input.
	g := NewGrammar(&spec.CompiledTable{
		Name:  "runaway",
		Axiom: "<S>",
		Rows: []*spec.Row{
			{Symbol: "<S>", Guides: spec.NewGuides("id"), Error: true, Ptr: 0, Stack: true},
		},
	})
	p := newParser(t, g, MaxStackDepth(8))
	accepted, err := p.Parse("a")
	if err == nil {
		t.Fatal("an error must occur")
	}
	if accepted {
		t.Fatal("the input must not be accepted")
	}

	_, err = NewParser(g, MaxStackDepth(0))
	if err == nil {
		t.Fatal("a non-positive depth must be rejected")
	}
}

func TestParser_ParseStream(t *testing.T) {
	p := newParser(t, compile(t, arithGrammar))
	accepted, err := p.ParseStream(NewSliceStream([]*lexer.Token{
		{Kind: lexer.KindID, Value: "x", Pos: 0},
		{Kind: lexer.KindPlus, Value: "+", Pos: 1},
		{Kind: lexer.KindID, Value: "y", Pos: 2},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !accepted {
		t.Fatalf("the stream must be accepted: %v", p.SyntaxError())
	}

	accepted, err = p.ParseStream(NewSliceStream([]*lexer.Token{
		{Kind: lexer.KindID, Value: "x", Pos: 0},
		{Kind: lexer.KindPlus, Value: "+", Pos: 1},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if accepted {
		t.Fatal("the stream must be rejected")
	}
	if p.SyntaxError().Pos() != 2 {
		t.Fatalf("unexpected position: %v", p.SyntaxError().Pos())
	}
}

func TestParser_Concurrent(t *testing.T) {
	g := compile(t, arithGrammar)
	inputs := []struct {
		src    string
		accept bool
	}{
		{src: "a", accept: true},
		{src: "(a + b) + c", accept: true},
		{src: "a +", accept: false},
		{src: "(a", accept: false},
	}

	const workers = 8
	results := make([][]bool, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			p, err := NewParser(g)
			if err != nil {
				errs[w] = err
				return
			}
			for _, in := range inputs {
				accepted, err := p.Parse(in.src)
				if err != nil {
					errs[w] = err
					return
				}
				results[w] = append(results[w], accepted)
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			t.Fatalf("worker #%v: %v", w, errs[w])
		}
		for i, in := range inputs {
			if results[w][i] != in.accept {
				t.Fatalf("worker #%v: unexpected verdict of %q; want: %v, got: %v", w, in.src, in.accept, results[w][i])
			}
		}
	}
}

func TestGrammar_Guided(t *testing.T) {
	g := compile(t, arithGrammar)
	terms := append([]string{"<E>", "e", "unknown"}, g.t.GuideMatrix.Terminals...)
	for row := 0; row < g.RowCount(); row++ {
		for _, term := range terms {
			want := g.Row(row).Guides.Contains(term)
			if got := g.Guided(row, term); got != want {
				t.Fatalf("unexpected membership of %v in row #%v; want: %v, got: %v", term, row, want, got)
			}
		}
	}
	if g.Axiom() != "<S>" {
		t.Fatalf("unexpected axiom: %v", g.Axiom())
	}
}
