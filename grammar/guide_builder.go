package grammar

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/nihei9/llgen/grammar/symbol"
	spec "github.com/nihei9/llgen/spec/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("llgen.grammar")
}

// BuildGuidedRules computes the guide set of every alternative. An empty rule
// list yields an empty result.
func BuildGuidedRules(rules spec.RawRules) (spec.GuidedRules, error) {
	b, err := newGuideBuilder(rules)
	if err != nil {
		return nil, err
	}
	b.genFirstRelation()
	b.closeRelation()
	return b.emit(), nil
}

// BuildGuidedText reads raw rules from src and writes their guided form to w.
func BuildGuidedText(w io.Writer, src io.Reader) error {
	raw, err := spec.ParseRawRules(src)
	if err != nil {
		return err
	}
	guided, err := BuildGuidedRules(raw)
	if err != nil {
		return err
	}
	return spec.WriteGuidedRules(w, guided)
}

type guideBuilder struct {
	rules spec.RawRules

	// lexemes holds the texts of all symbols in first-seen order.
	lexemes *linkedhashset.Set

	// guides maps a non-terminal to the symbols that may begin it. Until the
	// relation is closed it may contain non-terminals.
	guides map[symbol.Symbol]*treeset.Set

	direct   map[symbol.Symbol]*treeset.Set
	inherits map[symbol.Symbol][]symbol.Symbol
	follow   map[symbol.Symbol]*treeset.Set
}

func newGuideBuilder(rules spec.RawRules) (*guideBuilder, error) {
	b := &guideBuilder{
		rules:    rules,
		lexemes:  linkedhashset.New(),
		guides:   map[symbol.Symbol]*treeset.Set{},
		direct:   map[symbol.Symbol]*treeset.Set{},
		inherits: map[symbol.Symbol][]symbol.Symbol{},
		follow:   map[symbol.Symbol]*treeset.Set{},
	}

	for _, rule := range rules {
		b.lexemes.Add(rule.LHS.String())
		b.guides[rule.LHS] = treeset.NewWithStringComparator()
		b.direct[rule.LHS] = treeset.NewWithStringComparator()
		for _, alt := range rule.Alternatives {
			if len(alt) == 0 {
				return nil, fmt.Errorf("%w: %v", semErrEmptyAlt, rule.LHS)
			}
			for _, sym := range alt {
				b.lexemes.Add(sym.String())
			}
		}
	}
	for _, rule := range rules {
		for _, alt := range rule.Alternatives {
			for _, sym := range alt {
				if !sym.IsNonTerminal() {
					continue
				}
				if _, ok := b.guides[sym]; !ok {
					return nil, fmt.Errorf("%w: %v (referenced by %v)", semErrUndefinedSym, sym, rule.LHS)
				}
			}
		}
	}

	for _, rule := range rules {
		for _, alt := range rule.Alternatives {
			for i, sym := range alt {
				if !sym.IsNonTerminal() {
					continue
				}
				if i+1 < len(alt) {
					b.direct[sym].Add(alt[i+1].String())
					continue
				}
				if sym != rule.LHS {
					b.inherits[sym] = append(b.inherits[sym], rule.LHS)
				}
			}
		}
	}

	return b, nil
}

// genFirstRelation seeds guides[N] with the first symbol of each alternative,
// or with Follow(N) when the alternative begins with the epsilon.
func (b *guideBuilder) genFirstRelation() {
	for _, rule := range b.rules {
		g := b.guides[rule.LHS]
		for _, alt := range rule.Alternatives {
			first := alt.First()
			if first.IsEpsilon() {
				g.Add(b.followOf(rule.LHS).Values()...)
				continue
			}
			g.Add(first.String())
		}
		tracer().Debugf("first relation: %v -> %v", rule.LHS, g.Values())
	}
}

// followOf returns the symbols that may follow a non-terminal. A trailing
// occurrence in a rule of L inherits Follow(L) unless L is the non-terminal
// itself. The inheritance can be cyclic, so the result is the union over every
// non-terminal reachable through it.
func (b *guideBuilder) followOf(nonTerm symbol.Symbol) *treeset.Set {
	if f, ok := b.follow[nonTerm]; ok {
		return f
	}

	f := treeset.NewWithStringComparator()
	visited := map[symbol.Symbol]struct{}{}
	stack := []symbol.Symbol{nonTerm}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[n]; ok {
			continue
		}
		visited[n] = struct{}{}
		f.Add(b.direct[n].Values()...)
		stack = append(stack, b.inherits[n]...)
	}
	b.follow[nonTerm] = f

	tracer().Debugf("follow: %v -> %v", nonTerm, f.Values())

	return f
}

// closeRelation closes the guide relation transitively. The outer loop runs
// over every lexeme, which makes one pass sufficient.
func (b *guideBuilder) closeRelation() {
	for _, k := range b.lexemes.Values() {
		kSym := symbol.Parse(k.(string))
		kGuides, ok := b.guides[kSym]
		if !ok {
			continue
		}
		for _, rule := range b.rules {
			g := b.guides[rule.LHS]
			if g.Contains(k) {
				g.Add(kGuides.Values()...)
			}
		}
	}
}

func (b *guideBuilder) terminalGuides(nonTerm symbol.Symbol) spec.Guides {
	var texts []string
	for _, v := range b.guides[nonTerm].Values() {
		text := v.(string)
		if symbol.Parse(text).IsGuide() {
			texts = append(texts, text)
		}
	}
	return spec.NewGuides(texts...)
}

// emit assigns each alternative its guides. Alternatives beginning with the
// epsilon come last and receive what the others left.
func (b *guideBuilder) emit() spec.GuidedRules {
	var guided spec.GuidedRules
	for _, rule := range b.rules {
		remaining := treeset.NewWithStringComparator()
		for _, g := range b.terminalGuides(rule.LHS).Texts() {
			remaining.Add(g)
		}

		gRule := &spec.GuidedRule{
			LHS: rule.LHS,
		}
		var epsAlts []spec.Alternative
		for _, alt := range rule.Alternatives {
			var g spec.Guides
			first := alt.First()
			switch {
			case first.IsEpsilon():
				epsAlts = append(epsAlts, alt)
				continue
			case first.IsNonTerminal():
				g = b.terminalGuides(first)
			default:
				g = spec.NewGuides(first.String())
			}
			for _, t := range g.Texts() {
				remaining.Remove(t)
			}
			gRule.Alternatives = append(gRule.Alternatives, &spec.GuidedAlternative{
				RHS:    alt,
				Guides: g,
			})
		}
		for _, alt := range epsAlts {
			var texts []string
			for _, v := range remaining.Values() {
				texts = append(texts, v.(string))
			}
			gRule.Alternatives = append(gRule.Alternatives, &spec.GuidedAlternative{
				RHS:    alt,
				Guides: spec.NewGuides(texts...),
			})
		}

		for _, alt := range gRule.Alternatives {
			tracer().Debugf("guides: %v", spec.FormatGuidedAlternative(rule.LHS.String(), alt))
		}
		guided = append(guided, gRule)
	}
	return guided
}
