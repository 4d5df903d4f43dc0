package grammar

import (
	"fmt"
	"io"

	"github.com/cnf/structhash"
	"github.com/nihei9/llgen/compressor"
	"github.com/nihei9/llgen/grammar/symbol"
	spec "github.com/nihei9/llgen/spec/grammar"
)

const defaultTableName = "grammar"

type compileConfig struct {
	name string
}

type CompileOption func(config *compileConfig)

func WithName(name string) CompileOption {
	return func(config *compileConfig) {
		config.name = name
	}
}

// CompileTable lowers guided rules into a flat table. Every alternative gets a
// dispatch row, and the body rows of all alternatives follow the dispatch rows.
func CompileTable(rules spec.GuidedRules, opts ...CompileOption) (*spec.CompiledTable, error) {
	config := &compileConfig{
		name: defaultTableName,
	}
	for _, opt := range opts {
		opt(config)
	}

	if len(rules) == 0 {
		return nil, semErrNoProduction
	}

	rows, err := genRows(rules)
	if err != nil {
		return nil, err
	}

	matrix, err := genGuideMatrix(rows)
	if err != nil {
		return nil, err
	}

	fingerprint, err := genFingerprint(rows)
	if err != nil {
		return nil, err
	}

	return &spec.CompiledTable{
		Name:        config.name,
		Axiom:       rules.Axiom().String(),
		Rows:        rows,
		GuideMatrix: matrix,
		Fingerprint: fingerprint,
	}, nil
}

// CompileText reads guided rules from src and compiles them.
func CompileText(src io.Reader, opts ...CompileOption) (*spec.CompiledTable, error) {
	rules, err := spec.ParseGuidedRules(src)
	if err != nil {
		return nil, err
	}
	return CompileTable(rules, opts...)
}

// CompileRawText builds the guides of raw rules read from src and compiles them.
func CompileRawText(src io.Reader, opts ...CompileOption) (*spec.CompiledTable, error) {
	raw, err := spec.ParseRawRules(src)
	if err != nil {
		return nil, err
	}
	guided, err := BuildGuidedRules(raw)
	if err != nil {
		return nil, err
	}
	return CompileTable(guided, opts...)
}

func genRows(rules spec.GuidedRules) ([]*spec.Row, error) {
	dispatchCount := 0
	for _, rule := range rules {
		dispatchCount += len(rule.Alternatives)
	}

	var rows []*spec.Row
	firstDispatch := map[symbol.Symbol]int{}
	dispatchGuides := map[symbol.Symbol]spec.Guides{}
	ptr := dispatchCount
	for _, rule := range rules {
		if len(rule.Alternatives) == 0 {
			continue
		}
		firstDispatch[rule.LHS] = len(rows)
		g := spec.NewGuides()
		for _, alt := range rule.Alternatives {
			if len(alt.RHS) == 0 {
				return nil, fmt.Errorf("%w: %v", semErrEmptyAlt, rule.LHS)
			}
			rows = append(rows, &spec.Row{
				Symbol: rule.LHS.String(),
				Guides: alt.Guides,
				Ptr:    ptr,
			})
			g = g.Union(alt.Guides)
			ptr += len(alt.RHS)
		}
		rows[len(rows)-1].Error = true
		dispatchGuides[rule.LHS] = g
	}

	axiom := rules.Axiom()
	for _, rule := range rules {
		for _, alt := range rule.Alternatives {
			for _, sym := range alt.RHS {
				var row *spec.Row
				switch {
				case sym.IsEpsilon():
					row = &spec.Row{
						Symbol: sym.String(),
						Guides: alt.Guides,
						Error:  true,
						Ptr:    spec.PtrNil,
					}
				case sym.IsNonTerminal():
					first, ok := firstDispatch[sym]
					if !ok {
						return nil, fmt.Errorf("%w: %v (referenced by %v)", semErrUndefinedSym, sym, rule.LHS)
					}
					row = &spec.Row{
						Symbol: sym.String(),
						Guides: dispatchGuides[sym],
						Error:  true,
						Ptr:    first,
						Stack:  true,
					}
				default:
					row = &spec.Row{
						Symbol: sym.String(),
						Guides: spec.NewGuides(sym.String()),
						Shift:  true,
						Error:  true,
						Ptr:    len(rows) + 1,
					}
				}
				rows = append(rows, row)
			}

			// A terminal at the tail returns through the stack, and a
			// non-terminal at the tail returns to its caller's return address.
			last := rows[len(rows)-1]
			if symbol.Parse(last.Symbol).IsTerminal() {
				last.Ptr = spec.PtrNil
			} else {
				last.Stack = false
			}
			last.End = rule.LHS == axiom
		}
	}

	for i, row := range rows {
		tracer().Debugf("row %v: %v / %v shift=%v error=%v ptr=%v stack=%v end=%v",
			i, row.Symbol, row.Guides, row.Shift, row.Error, row.Ptr, row.Stack, row.End)
	}

	return rows, nil
}

const (
	guideAbsent  = 0
	guidePresent = 1
)

func genGuideMatrix(rows []*spec.Row) (*spec.GuideMatrix, error) {
	terminals := spec.NewGuides()
	for _, row := range rows {
		terminals = terminals.Union(row.Guides)
	}
	if terminals.Len() == 0 {
		return &spec.GuideMatrix{
			Terminals:  []string{},
			EmptyValue: guideAbsent,
		}, nil
	}

	terms := terminals.Texts()
	term2Col := make(map[string]int, len(terms))
	for col, term := range terms {
		term2Col[term] = col
	}
	entries := make([]int, len(rows)*len(terms))
	for i, row := range rows {
		for _, g := range row.Guides.Texts() {
			entries[i*len(terms)+term2Col[g]] = guidePresent
		}
	}
	m, err := compressor.NewMatrix(entries, len(terms))
	if err != nil {
		return nil, err
	}
	uniq := compressor.CompressUniqueRows(m)
	rd := compressor.CompressRowDisplacement(uniq.Unique, guideAbsent)
	uniqRowCount, _ := uniq.Unique.Size()

	return &spec.GuideMatrix{
		Terminals:       terms,
		RowNums:         uniq.RowNums,
		UniqueRowCount:  uniqRowCount,
		EmptyValue:      rd.EmptyValue,
		Entries:         rd.Entries,
		Bounds:          rd.Bounds,
		RowDisplacement: rd.Displacement,
	}, nil
}

type fingerprintRow struct {
	Symbol string
	Guides []string
	Shift  bool
	Error  bool
	Ptr    int
	Stack  bool
	End    bool
}

func genFingerprint(rows []*spec.Row) (string, error) {
	fRows := make([]fingerprintRow, len(rows))
	for i, row := range rows {
		fRows[i] = fingerprintRow{
			Symbol: row.Symbol,
			Guides: row.Guides.Texts(),
			Shift:  row.Shift,
			Error:  row.Error,
			Ptr:    row.Ptr,
			Stack:  row.Stack,
			End:    row.End,
		}
	}
	return structhash.Hash(struct {
		Rows []fingerprintRow
	}{
		Rows: fRows,
	}, 1)
}
