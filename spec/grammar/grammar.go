package grammar

// PtrNil means a row has no jump target; the runtime returns through the stack instead.
const PtrNil = -1

type Row struct {
	Symbol string `json:"symbol"`
	Guides Guides `json:"guides"`
	Shift  bool   `json:"shift"`
	Error  bool   `json:"error"`
	Ptr    int    `json:"ptr"`
	Stack  bool   `json:"stack"`
	End    bool   `json:"end"`
}

func (r *Row) HasPtr() bool {
	return r.Ptr != PtrNil
}

func (r *Row) Equal(o *Row) bool {
	return r.Symbol == o.Symbol &&
		r.Guides.Equal(o.Guides) &&
		r.Shift == o.Shift &&
		r.Error == o.Error &&
		r.Ptr == o.Ptr &&
		r.Stack == o.Stack &&
		r.End == o.End
}

// GuideMatrix is the row-by-terminal membership matrix of the guide sets. Rows
// sharing the same guide set share one unique row, and the unique rows are
// packed by row displacement.
type GuideMatrix struct {
	Terminals       []string `json:"terminals"`
	RowNums         []int    `json:"row_nums"`
	UniqueRowCount  int      `json:"unique_row_count"`
	EmptyValue      int      `json:"empty_value"`
	Entries         []int    `json:"entries"`
	Bounds          []int    `json:"bounds"`
	RowDisplacement []int    `json:"row_displacement"`
}

type CompiledTable struct {
	Name        string       `json:"name"`
	Axiom       string       `json:"axiom"`
	Rows        []*Row       `json:"rows"`
	GuideMatrix *GuideMatrix `json:"guide_matrix"`
	Fingerprint string       `json:"fingerprint"`
}

// Equal compares the rows only.
func (t *CompiledTable) Equal(o *CompiledTable) bool {
	if len(t.Rows) != len(o.Rows) {
		return false
	}
	for i, r := range t.Rows {
		if !r.Equal(o.Rows[i]) {
			return false
		}
	}
	return true
}
