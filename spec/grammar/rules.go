package grammar

import (
	"strings"

	"github.com/nihei9/llgen/grammar/symbol"
)

// Alternative is one right-hand side. An alternative consisting of the epsilon
// alone matches nothing.
type Alternative []symbol.Symbol

func (a Alternative) String() string {
	var b strings.Builder
	for i, sym := range a {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.String())
	}
	return b.String()
}

func (a Alternative) First() symbol.Symbol {
	if len(a) == 0 {
		return symbol.SymbolNil
	}
	return a[0]
}

type RawRule struct {
	LHS          symbol.Symbol
	Alternatives []Alternative
}

// RawRules keeps the declaration order. The first rule's left-hand side is the axiom.
type RawRules []*RawRule

func (rs RawRules) Axiom() symbol.Symbol {
	if len(rs) == 0 {
		return symbol.SymbolNil
	}
	return rs[0].LHS
}

// Lookup returns the rule of a left-hand side or nil.
func (rs RawRules) Lookup(lhs symbol.Symbol) *RawRule {
	for _, r := range rs {
		if r.LHS == lhs {
			return r
		}
	}
	return nil
}

type GuidedAlternative struct {
	RHS    Alternative
	Guides Guides
}

type GuidedRule struct {
	LHS          symbol.Symbol
	Alternatives []*GuidedAlternative
}

type GuidedRules []*GuidedRule

func (rs GuidedRules) Axiom() symbol.Symbol {
	if len(rs) == 0 {
		return symbol.SymbolNil
	}
	return rs[0].LHS
}

func (rs GuidedRules) Lookup(lhs symbol.Symbol) *GuidedRule {
	for _, r := range rs {
		if r.LHS == lhs {
			return r
		}
	}
	return nil
}
