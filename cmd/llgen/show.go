package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	spec "github.com/nihei9/llgen/spec/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	plain *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show <table file path>",
		Short:   "Print a parsing table in a readable format",
		Example: `  llgen show grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	showFlags.plain = cmd.Flags().Bool("plain", false, "print the rows as plain text instead of a table")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	tab, err := readCompiledTable(args[0])
	if err != nil {
		return err
	}

	err = writeSummary(os.Stdout, tab)
	if err != nil {
		return err
	}

	if *showFlags.plain {
		return writeRows(os.Stdout, tab)
	}
	pterm.DefaultTable.WithHasHeader().WithData(rowData(tab)).Render()
	return nil
}

const summaryTemplate = `# {{ .Name }}

axiom:       {{ .Axiom }}
rows:        {{ len .Rows }}
fingerprint: {{ .Fingerprint }}
{{ with .GuideMatrix -}}
terminals:   {{ join .Terminals " " }}
unique rows: {{ .UniqueRowCount }}
entries:     {{ len .Entries }}
{{ end }}
`

func writeSummary(w io.Writer, tab *spec.CompiledTable) error {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(summaryTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, tab)
}

var rowHeader = []string{"#", "symbol", "guides", "shift", "error", "ptr", "stack", "end"}

func rowData(tab *spec.CompiledTable) [][]string {
	data := [][]string{rowHeader}
	for i, row := range tab.Rows {
		data = append(data, formatRow(i, row))
	}
	return data
}

func formatRow(num int, row *spec.Row) []string {
	ptr := "-"
	if row.HasPtr() {
		ptr = fmt.Sprint(row.Ptr)
	}
	return []string{
		fmt.Sprint(num),
		row.Symbol,
		row.Guides.String(),
		flag(row.Shift),
		flag(row.Error),
		ptr,
		flag(row.Stack),
		flag(row.End),
	}
}

func flag(b bool) string {
	if b {
		return "x"
	}
	return ""
}

func writeRows(w io.Writer, tab *spec.CompiledTable) error {
	for i, row := range tab.Rows {
		_, err := fmt.Fprintln(w, strings.Join(formatRow(i, row), "\t"))
		if err != nil {
			return err
		}
	}
	return nil
}
