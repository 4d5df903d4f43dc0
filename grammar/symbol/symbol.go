package symbol

import "strings"

type symbolKind int

const (
	symbolKindNil symbolKind = iota
	symbolKindTerminal
	symbolKindNonTerminal
	symbolKindEpsilon
	symbolKindEOF
)

func (k symbolKind) String() string {
	switch k {
	case symbolKindTerminal:
		return "terminal"
	case symbolKindNonTerminal:
		return "non-terminal"
	case symbolKindEpsilon:
		return "epsilon"
	case symbolKindEOF:
		return "eof"
	}
	return "nil"
}

const (
	// TextEpsilon is the marker of an empty production.
	TextEpsilon = "e"

	// TextEOF is the end-of-input marker. It behaves as a terminal.
	TextEOF = "#"

	nonTerminalPrefix    = "<"
	nonTerminalMinLength = 3
)

// Symbol is a grammar symbol tagged with its kind. Symbols are comparable and
// can be used as map keys.
type Symbol struct {
	kind symbolKind
	text string
}

var (
	SymbolNil = Symbol{}
	Epsilon   = Symbol{kind: symbolKindEpsilon, text: TextEpsilon}
	EOF       = Symbol{kind: symbolKindEOF, text: TextEOF}
)

// Parse classifies a symbol text: `<...>` with at least 3 characters is a
// non-terminal, `e` is the epsilon, `#` is the EOF, and anything else is a terminal.
func Parse(text string) Symbol {
	switch {
	case text == TextEpsilon:
		return Epsilon
	case text == TextEOF:
		return EOF
	case IsNonTerminalText(text):
		return Symbol{kind: symbolKindNonTerminal, text: text}
	case text == "":
		return SymbolNil
	}
	return Symbol{kind: symbolKindTerminal, text: text}
}

func IsNonTerminalText(text string) bool {
	return len(text) >= nonTerminalMinLength && strings.HasPrefix(text, nonTerminalPrefix)
}

func NewTerminal(text string) Symbol {
	return Symbol{kind: symbolKindTerminal, text: text}
}

func NewNonTerminal(text string) Symbol {
	return Symbol{kind: symbolKindNonTerminal, text: text}
}

func (s Symbol) String() string {
	return s.text
}

func (s Symbol) IsNil() bool {
	return s.kind == symbolKindNil
}

// IsTerminal reports whether the symbol is anything but a non-terminal. The
// epsilon and the EOF are terminals by the naming convention.
func (s Symbol) IsTerminal() bool {
	return s.kind == symbolKindTerminal || s.kind == symbolKindEpsilon || s.kind == symbolKindEOF
}

func (s Symbol) IsNonTerminal() bool {
	return s.kind == symbolKindNonTerminal
}

func (s Symbol) IsEpsilon() bool {
	return s.kind == symbolKindEpsilon
}

func (s Symbol) IsEOF() bool {
	return s.kind == symbolKindEOF
}

// IsGuide reports whether the symbol may appear in a guide set.
func (s Symbol) IsGuide() bool {
	return s.kind == symbolKindTerminal || s.kind == symbolKindEOF
}

func (s Symbol) Kind() string {
	return s.kind.String()
}
