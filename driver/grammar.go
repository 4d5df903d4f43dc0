package driver

import (
	spec "github.com/nihei9/llgen/spec/grammar"
)

// Grammar is a read-only view of a compiled table. It may be shared by any
// number of parsers.
type Grammar struct {
	t        *spec.CompiledTable
	term2Col map[string]int
}

func NewGrammar(t *spec.CompiledTable) *Grammar {
	var term2Col map[string]int
	if t.GuideMatrix != nil {
		term2Col = make(map[string]int, len(t.GuideMatrix.Terminals))
		for col, term := range t.GuideMatrix.Terminals {
			term2Col[term] = col
		}
	}
	return &Grammar{
		t:        t,
		term2Col: term2Col,
	}
}

func (g *Grammar) Name() string {
	return g.t.Name
}

func (g *Grammar) Axiom() string {
	return g.t.Axiom
}

func (g *Grammar) RowCount() int {
	return len(g.t.Rows)
}

func (g *Grammar) Row(row int) *spec.Row {
	return g.t.Rows[row]
}

func (g *Grammar) Guides(row int) []string {
	return g.t.Rows[row].Guides.Texts()
}

// Guided reports whether a lookahead belongs to the guides of a row. A table
// without a guide matrix falls back to the row's guide list.
func (g *Grammar) Guided(row int, sym string) bool {
	m := g.t.GuideMatrix
	if m == nil {
		return g.t.Rows[row].Guides.Contains(sym)
	}
	col, ok := g.term2Col[sym]
	if !ok {
		return false
	}
	u := m.RowNums[row]
	i := m.RowDisplacement[u] + col
	return m.Bounds[i] == u && m.Entries[i] != m.EmptyValue
}
