package symbol

import (
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text        string
		nonTerminal bool
		terminal    bool
		epsilon     bool
		eof         bool
		guide       bool
	}{
		{text: "<S>", nonTerminal: true},
		{text: "<expression>", nonTerminal: true},
		{text: "<>", terminal: true, guide: true},
		{text: "<", terminal: true, guide: true},
		{text: "a", terminal: true, guide: true},
		{text: "id", terminal: true, guide: true},
		{text: "S", terminal: true, guide: true},
		{text: "e", terminal: true, epsilon: true},
		{text: "#", terminal: true, eof: true, guide: true},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			sym := Parse(tt.text)
			if sym.String() != tt.text {
				t.Fatalf("unexpected text; want: %v, got: %v", tt.text, sym)
			}
			if sym.IsNonTerminal() != tt.nonTerminal {
				t.Errorf("IsNonTerminal; want: %v, got: %v", tt.nonTerminal, sym.IsNonTerminal())
			}
			if sym.IsTerminal() != tt.terminal {
				t.Errorf("IsTerminal; want: %v, got: %v", tt.terminal, sym.IsTerminal())
			}
			if sym.IsEpsilon() != tt.epsilon {
				t.Errorf("IsEpsilon; want: %v, got: %v", tt.epsilon, sym.IsEpsilon())
			}
			if sym.IsEOF() != tt.eof {
				t.Errorf("IsEOF; want: %v, got: %v", tt.eof, sym.IsEOF())
			}
			if sym.IsGuide() != tt.guide {
				t.Errorf("IsGuide; want: %v, got: %v", tt.guide, sym.IsGuide())
			}
		})
	}
}

func TestSymbol_Comparable(t *testing.T) {
	if Parse("<S>") != NewNonTerminal("<S>") {
		t.Fatal("the same non-terminal must be equal")
	}
	if Parse("a") != NewTerminal("a") {
		t.Fatal("the same terminal must be equal")
	}
	if Parse("e") != Epsilon || Parse("#") != EOF {
		t.Fatal("markers must be equal to the predefined symbols")
	}
	if !Parse("").IsNil() {
		t.Fatal("an empty text must be the nil symbol")
	}
}
