package grammar

import (
	"io"
	"strings"

	verr "github.com/nihei9/llgen/error"
	"github.com/nihei9/llgen/grammar/symbol"
)

const (
	guidedSeparatorHyphen = "-"
	guidedSeparatorSlash  = "/"
)

// ParseRawRules reads rules of the form `<N> -> a b | <M> | e`. Rules sharing a
// left-hand side are merged in declaration order, and an empty alternative is
// read as the epsilon.
func ParseRawRules(r io.Reader) (RawRules, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines, err := splitIntoLines(src)
	if err != nil {
		return nil, toSpecErrors(err, src)
	}

	var rules RawRules
	lhs2Rule := map[symbol.Symbol]*RawRule{}
	for _, l := range lines {
		lhs, alts, err := parseRawLine(l)
		if err != nil {
			return nil, toSpecErrors(err, src)
		}
		rule, ok := lhs2Rule[lhs]
		if !ok {
			rule = &RawRule{
				LHS: lhs,
			}
			lhs2Rule[lhs] = rule
			rules = append(rules, rule)
		}
		rule.Alternatives = append(rule.Alternatives, alts...)
	}

	return rules, nil
}

func parseRawLine(l *line) (symbol.Symbol, []Alternative, error) {
	toks := l.tokens
	if toks[0].kind != tokenKindWord {
		return symbol.SymbolNil, nil, &lineError{
			cause:  synErrNoLHS,
			detail: toks[0].text,
			row:    l.row,
		}
	}
	if len(toks) < 2 || toks[1].kind != tokenKindArrow {
		return symbol.SymbolNil, nil, &lineError{
			cause: synErrNoArrow,
			row:   l.row,
		}
	}
	lhs := symbol.Parse(toks[0].text)
	if !lhs.IsNonTerminal() {
		return symbol.SymbolNil, nil, &lineError{
			cause:  synErrLHSNotNonTerminal,
			detail: toks[0].text,
			row:    l.row,
		}
	}

	var alts []Alternative
	var alt Alternative
	for _, tok := range toks[2:] {
		switch tok.kind {
		case tokenKindOr:
			alts = append(alts, normalizeAlternative(alt))
			alt = nil
		case tokenKindWord:
			alt = append(alt, symbol.Parse(tok.text))
		default:
			return symbol.SymbolNil, nil, &lineError{
				cause: synErrStrayArrow,
				row:   l.row,
			}
		}
	}
	alts = append(alts, normalizeAlternative(alt))

	return lhs, alts, nil
}

func normalizeAlternative(alt Alternative) Alternative {
	if len(alt) == 0 {
		return Alternative{symbol.Epsilon}
	}
	return alt
}

// ParseGuidedRules reads rules of the form `<N> - a b / g1 g2`, the format
// written by WriteGuidedRules.
func ParseGuidedRules(r io.Reader) (GuidedRules, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines, err := splitIntoLines(src)
	if err != nil {
		return nil, toSpecErrors(err, src)
	}

	var rules GuidedRules
	lhs2Rule := map[symbol.Symbol]*GuidedRule{}
	for _, l := range lines {
		lhs, alt, err := parseGuidedLine(l)
		if err != nil {
			return nil, toSpecErrors(err, src)
		}
		rule, ok := lhs2Rule[lhs]
		if !ok {
			rule = &GuidedRule{
				LHS: lhs,
			}
			lhs2Rule[lhs] = rule
			rules = append(rules, rule)
		}
		rule.Alternatives = append(rule.Alternatives, alt)
	}

	return rules, nil
}

func parseGuidedLine(l *line) (symbol.Symbol, *GuidedAlternative, error) {
	fields := make([]string, len(l.tokens))
	for i, tok := range l.tokens {
		if tok.kind != tokenKindWord {
			return symbol.SymbolNil, nil, &lineError{
				cause:  synErrInvalidToken,
				detail: tok.text,
				row:    l.row,
			}
		}
		fields[i] = tok.text
	}

	lhs := symbol.Parse(fields[0])
	if !lhs.IsNonTerminal() {
		return symbol.SymbolNil, nil, &lineError{
			cause:  synErrLHSNotNonTerminal,
			detail: fields[0],
			row:    l.row,
		}
	}
	if len(fields) < 2 || fields[1] != guidedSeparatorHyphen {
		return symbol.SymbolNil, nil, &lineError{
			cause: synErrNoHyphen,
			row:   l.row,
		}
	}

	sep, err := guidedSeparator(fields, l.row)
	if err != nil {
		return symbol.SymbolNil, nil, err
	}

	rhs := make(Alternative, 0, sep-2)
	for _, f := range fields[2:sep] {
		rhs = append(rhs, symbol.Parse(f))
	}
	for _, f := range fields[sep+1:] {
		if !symbol.Parse(f).IsGuide() {
			return symbol.SymbolNil, nil, &lineError{
				cause:  synErrInvalidGuide,
				detail: f,
				row:    l.row,
			}
		}
	}

	return lhs, &GuidedAlternative{
		RHS:    rhs,
		Guides: NewGuides(fields[sep+1:]...),
	}, nil
}

// guidedSeparator locates the slash between a body and its guides. A slash
// right after the hyphen always belongs to the body. When more than one slash
// remains, the only split accepted is the one agreeing with the body: an
// epsilon stands alone, and a body beginning with a terminal is guided by that
// terminal alone.
func guidedSeparator(fields []string, row int) (int, error) {
	var cands []int
	for i := 3; i < len(fields); i++ {
		if fields[i] == guidedSeparatorSlash {
			cands = append(cands, i)
		}
	}
	switch len(cands) {
	case 0:
		if len(fields) == 3 && fields[2] == guidedSeparatorSlash {
			return -1, &lineError{
				cause: synErrEmptyBody,
				row:   row,
			}
		}
		return -1, &lineError{
			cause: synErrNoSlash,
			row:   row,
		}
	case 1:
		return cands[0], nil
	}

	first := symbol.Parse(fields[2])
	last := len(fields) - 1
	for _, c := range cands {
		switch {
		case first.IsEpsilon() && c == 3:
			return c, nil
		case first.IsGuide() && c == last-1 && fields[last] == fields[2]:
			return c, nil
		}
	}
	return -1, &lineError{
		cause: synErrAmbiguousSlash,
		row:   row,
	}
}

func toSpecErrors(err error, src []byte) error {
	lErr, ok := err.(*lineError)
	if !ok {
		return err
	}
	return verr.SpecErrors{
		{
			Cause:  lErr.cause,
			Detail: lErr.detail,
			Row:    lErr.row,
			Line:   sourceLine(src, lErr.row),
		},
	}
}

func sourceLine(src []byte, row int) string {
	lines := strings.Split(string(src), "\n")
	if row <= 0 || row > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[row-1], "\r")
}
