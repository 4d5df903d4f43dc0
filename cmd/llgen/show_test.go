package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nihei9/llgen/grammar"
)

func TestTableName(t *testing.T) {
	tests := []struct {
		explicit string
		path     string
		expected string
	}{
		{explicit: "expr", path: "grammar.txt", expected: "expr"},
		{path: "dir/arith.txt", expected: "arith"},
		{path: "arith", expected: "arith"},
		{path: "", expected: ""},
	}
	for _, tt := range tests {
		if got := tableName(tt.explicit, tt.path); got != tt.expected {
			t.Fatalf("unexpected name of (%q, %q); want: %v, got: %v", tt.explicit, tt.path, tt.expected, got)
		}
	}
}

func TestWriteTable(t *testing.T) {
	tab, err := grammar.CompileText(strings.NewReader(`<Z> - <S> # / a b
<S> - a / a
<S> - b / b
`), grammar.WithName("simple"))
	if err != nil {
		t.Fatal(err)
	}

	var b bytes.Buffer
	err = writeSummary(&b, tab)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# simple", "axiom:       <Z>", "rows:        7", "terminals:   # a b", "unique rows: 4"} {
		if !strings.Contains(b.String(), want) {
			t.Fatalf("the summary lacks %q:\n%v", want, b.String())
		}
	}

	b.Reset()
	err = writeRows(&b, tab)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("unexpected line count: %v", len(lines))
	}
	if lines[0] != "0\t<Z>\ta b\t\tx\t3\t\t" {
		t.Fatalf("unexpected row: %q", lines[0])
	}
	if lines[4] != "4\t#\t#\tx\tx\t-\t\tx" {
		t.Fatalf("unexpected row: %q", lines[4])
	}

	data := rowData(tab)
	if len(data) != 8 || data[0][1] != "symbol" {
		t.Fatalf("unexpected table data: %v", data)
	}
}
