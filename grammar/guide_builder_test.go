package grammar

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nihei9/llgen/grammar/symbol"
	spec "github.com/nihei9/llgen/spec/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuildGuidedRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgen.grammar")
	defer teardown()

	tests := []struct {
		caption  string
		src      string
		expected string
	}{
		{
			caption:  "an empty grammar",
			src:      "",
			expected: "",
		},
		{
			caption: "a non-terminal is resolved through the closure",
			src: `
<Z> -> <S> #
<S> -> a | b
`,
			expected: `<Z> - <S> # / a b
<S> - a / a
<S> - b / b
`,
		},
		{
			caption: "an epsilon alternative takes the guides its siblings left",
			src: `
<list> -> el <listRem> #
<listRem> -> e | , el <listRem>
`,
			expected: `<list> - el <listRem> # / el
<listRem> - , el <listRem> / ,
<listRem> - e / #
`,
		},
		{
			caption: "arithmetic expressions",
			src: `
<S> -> <E> #
<E> -> <T> <E'>
<E'> -> + <T> <E'> | e
<T> -> <F> <T'>
<T'> -> * <F> <T'> | e
<F> -> ( <E> ) | id
`,
			expected: `<S> - <E> # / ( id
<E> - <T> <E'> / ( id
<E'> - + <T> <E'> / +
<E'> - e / # )
<T> - <F> <T'> / ( id
<T'> - * <F> <T'> / *
<T'> - e / # ) +
<F> - ( <E> ) / (
<F> - id / id
`,
		},
		{
			caption: "a nullable non-terminal in the middle passes on what follows it",
			src: `
<S> -> <A> b #
<A> -> a | e
`,
			expected: `<S> - <A> b # / a b
<A> - a / a
<A> - e / b
`,
		},
		{
			caption: "mutually right-recursive non-terminals",
			src: `
<S> -> <A> #
<A> -> a <B> | e
<B> -> b <A> | e
`,
			expected: `<S> - <A> # / # a
<A> - a <B> / a
<A> - e / #
<B> - b <A> / b
<B> - e / #
`,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			var b bytes.Buffer
			err := BuildGuidedText(&b, strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if b.String() != tt.expected {
				t.Fatalf("unexpected guided rules;\nwant:\n%v\ngot:\n%v", tt.expected, b.String())
			}
		})
	}
}

func TestBuildGuidedRules_UndefinedNonTerminal(t *testing.T) {
	raw, err := spec.ParseRawRules(strings.NewReader(`
<S> -> <A> #
<A> -> <B> a
`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = BuildGuidedRules(raw)
	if !errors.Is(err, semErrUndefinedSym) {
		t.Fatalf("unexpected error; want: %v, got: %v", semErrUndefinedSym, err)
	}
}

// For every non-terminal, the union of its alternatives' guides must consist of
// guide symbols only, and every alternative's guides must be part of the guides
// of the non-terminal heading the alternative.
func TestBuildGuidedRules_ClosureCompleteness(t *testing.T) {
	raw, err := spec.ParseRawRules(strings.NewReader(`
<program> -> <stmts> #
<stmts> -> <stmt> <stmts> | e
<stmt> -> id = <expr> ; | if ( <expr> ) <block> | <block>
<block> -> { <stmts> }
<expr> -> <term> <exprRem>
<exprRem> -> + <term> <exprRem> | - <term> <exprRem> | e
<term> -> id | num | ( <expr> )
`))
	if err != nil {
		t.Fatal(err)
	}
	guided, err := BuildGuidedRules(raw)
	if err != nil {
		t.Fatal(err)
	}

	all := map[symbol.Symbol]spec.Guides{}
	for _, rule := range guided {
		g := spec.NewGuides()
		for _, alt := range rule.Alternatives {
			for _, text := range alt.Guides.Texts() {
				if !symbol.Parse(text).IsGuide() {
					t.Fatalf("a guide of %v must be a terminal: %v", rule.LHS, text)
				}
			}
			g = g.Union(alt.Guides)
		}
		all[rule.LHS] = g
	}
	for _, rule := range guided {
		for _, alt := range rule.Alternatives {
			first := alt.RHS.First()
			if !first.IsNonTerminal() {
				continue
			}
			for _, text := range all[first].Texts() {
				if !alt.Guides.Contains(text) {
					t.Fatalf("%v misses a guide of %v: %v", spec.FormatGuidedAlternative(rule.LHS.String(), alt), first, text)
				}
			}
		}
	}

	stmts := guided.Lookup(symbol.NewNonTerminal("<stmts>"))
	if stmts == nil {
		t.Fatal("<stmts> is missing")
	}
	expected := []spec.Guides{
		spec.NewGuides("id", "if", "{"),
		spec.NewGuides("#", "}"),
	}
	for i, g := range expected {
		if !stmts.Alternatives[i].Guides.Equal(g) {
			t.Fatalf("unexpected guides of <stmts> alternative #%v; want: %v, got: %v", i, g, stmts.Alternatives[i].Guides)
		}
	}
}

func TestBuildGuidedRules_RoundTrip(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{
			caption: "arithmetic expressions",
			src: `
<S> -> <E> #
<E> -> <T> <E'>
<E'> -> + <T> <E'> | e
<T> -> ( <E> ) | id
`,
		},
		{
			caption: "a slash inside a body",
			src: `
<S> -> a / b #
`,
		},
		{
			caption: "a slash as an operator and a guide",
			src: `
<S> -> <T> #
<T> -> id <T'>
<T'> -> / id <T'> | * id <T'> | e
`,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			raw, err := spec.ParseRawRules(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			guided, err := BuildGuidedRules(raw)
			if err != nil {
				t.Fatal(err)
			}
			var b bytes.Buffer
			err = spec.WriteGuidedRules(&b, guided)
			if err != nil {
				t.Fatal(err)
			}
			text := b.String()
			reread, err := spec.ParseGuidedRules(strings.NewReader(text))
			if err != nil {
				t.Fatal(err)
			}
			if len(reread) != len(guided) {
				t.Fatalf("unexpected rule count; want: %v, got: %v", len(guided), len(reread))
			}
			for i, rule := range guided {
				if len(reread[i].Alternatives) != len(rule.Alternatives) {
					t.Fatalf("unexpected alternative count of %v; want: %v, got: %v", rule.LHS, len(rule.Alternatives), len(reread[i].Alternatives))
				}
				for j, alt := range rule.Alternatives {
					got := reread[i].Alternatives[j]
					if got.RHS.String() != alt.RHS.String() || !got.Guides.Equal(alt.Guides) {
						t.Fatalf("unexpected alternative; want: %v, got: %v",
							spec.FormatGuidedAlternative(rule.LHS.String(), alt),
							spec.FormatGuidedAlternative(reread[i].LHS.String(), got))
					}
				}
			}

			fromRules, err := CompileTable(guided)
			if err != nil {
				t.Fatal(err)
			}
			fromText, err := CompileText(strings.NewReader(text))
			if err != nil {
				t.Fatal(err)
			}
			if !fromText.Equal(fromRules) || fromText.Fingerprint != fromRules.Fingerprint {
				t.Fatalf("a table compiled from the written text differs;\ntext:\n%v", text)
			}
		})
	}
}

func TestBuildGuidedText_Unreadable(t *testing.T) {
	src := `
<S> -> <A> / b #
<A> -> a
`
	var b bytes.Buffer
	err := BuildGuidedText(&b, strings.NewReader(src))
	if err == nil {
		t.Fatalf("a slash following a non-terminal body must not be written: %q", b.String())
	}
	if b.Len() != 0 {
		t.Fatalf("nothing must be written: %q", b.String())
	}
}
