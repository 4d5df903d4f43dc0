package compressor

import (
	"fmt"
	"sort"
	"strings"
)

// Matrix is a dense row-major table of non-negative values.
type Matrix struct {
	entries  []int
	rowCount int
	colCount int
}

func NewMatrix(entries []int, colCount int) (*Matrix, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &Matrix{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (m *Matrix) Size() (int, int) {
	return m.rowCount, m.colCount
}

func (m *Matrix) Lookup(row, col int) (int, error) {
	if row < 0 || row >= m.rowCount || col < 0 || col >= m.colCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return m.entries[row*m.colCount+col], nil
}

func (m *Matrix) row(row int) []int {
	return m.entries[row*m.colCount : (row+1)*m.colCount]
}

// Table is a read-only view of a matrix, compressed or not.
type Table interface {
	Lookup(row, col int) (int, error)
	Size() (int, int)
}

var (
	_ Table = &Matrix{}
	_ Table = &UniqueRows{}
	_ Table = &RowDisplacement{}
)

// UniqueRows stores each distinct row once. RowNums maps an original row to its
// unique row.
type UniqueRows struct {
	Unique           *Matrix
	RowNums          []int
	OriginalRowCount int
	OriginalColCount int
}

func CompressUniqueRows(orig *Matrix) *UniqueRows {
	var entries []int
	rowNums := make([]int, orig.rowCount)
	key2RowNum := map[string]int{}
	for row := 0; row < orig.rowCount; row++ {
		r := orig.row(row)
		key := rowKey(r)
		rowNum, ok := key2RowNum[key]
		if !ok {
			rowNum = len(key2RowNum)
			key2RowNum[key] = rowNum
			entries = append(entries, r...)
		}
		rowNums[row] = rowNum
	}

	return &UniqueRows{
		Unique: &Matrix{
			entries:  entries,
			rowCount: len(key2RowNum),
			colCount: orig.colCount,
		},
		RowNums:          rowNums,
		OriginalRowCount: orig.rowCount,
		OriginalColCount: orig.colCount,
	}
}

func rowKey(row []int) string {
	var b strings.Builder
	for _, v := range row {
		fmt.Fprintf(&b, "%v,", v)
	}
	return b.String()
}

func (tab *UniqueRows) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return tab.Unique.Lookup(tab.RowNums[row], col)
}

func (tab *UniqueRows) Size() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

const ForbiddenValue = -1

// RowDisplacement overlays sparse rows into one vector. An entry belongs to a
// row only when Bounds at the same position holds that row number.
type RowDisplacement struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       int
	Entries          []int
	Bounds           []int
	Displacement     []int
}

type rowInfo struct {
	rowNum      int
	nonEmptyCol []int
}

func CompressRowDisplacement(orig *Matrix, emptyValue int) *RowDisplacement {
	infos := make([]*rowInfo, orig.rowCount)
	for row := 0; row < orig.rowCount; row++ {
		info := &rowInfo{
			rowNum: row,
		}
		for col, v := range orig.row(row) {
			if v != emptyValue {
				info.nonEmptyCol = append(info.nonEmptyCol, col)
			}
		}
		infos[row] = info
	}
	// Placing the densest rows first leaves the small gaps for the sparse ones.
	sort.SliceStable(infos, func(i, j int) bool {
		return len(infos[i].nonEmptyCol) > len(infos[j].nonEmptyCol)
	})

	entries := make([]int, len(orig.entries))
	bounds := make([]int, len(orig.entries))
	for i := range entries {
		entries[i] = emptyValue
		bounds[i] = ForbiddenValue
	}
	displacement := make([]int, orig.rowCount)
	bottom := orig.colCount
	next := 0
	for _, info := range infos {
		if len(info.nonEmptyCol) == 0 {
			continue
		}
		for overlapped(bounds, next, info.nonEmptyCol) {
			next++
		}
		displacement[info.rowNum] = next
		for _, col := range info.nonEmptyCol {
			entries[next+col] = orig.entries[info.rowNum*orig.colCount+col]
			bounds[next+col] = info.rowNum
		}
		if next+orig.colCount > bottom {
			bottom = next + orig.colCount
		}
		next++
	}

	return &RowDisplacement{
		OriginalRowCount: orig.rowCount,
		OriginalColCount: orig.colCount,
		EmptyValue:       emptyValue,
		Entries:          entries[:bottom],
		Bounds:           bounds[:bottom],
		Displacement:     displacement,
	}
}

func overlapped(bounds []int, d int, cols []int) bool {
	for _, col := range cols {
		if bounds[d+col] != ForbiddenValue {
			return true
		}
	}
	return false
}

func (tab *RowDisplacement) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := tab.Displacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacement) Size() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}
