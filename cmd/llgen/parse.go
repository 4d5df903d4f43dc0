package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nihei9/llgen/driver"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source   *string
	input    *string
	maxDepth *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <table file path>",
		Short: "Parse each line of a text stream",
		Example: `  cat src | llgen parse grammar.json
  llgen parse grammar.json --input 'a + b'`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.input = cmd.Flags().StringP("input", "i", "", "a single input to parse instead of a source")
	parseFlags.maxDepth = cmd.Flags().Int("max-stack-depth", 0, "bound of the return stack (default 65536)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	tab, err := readCompiledTable(args[0])
	if err != nil {
		return err
	}

	var opts []driver.ParserOption
	if *parseFlags.maxDepth > 0 {
		opts = append(opts, driver.MaxStackDepth(*parseFlags.maxDepth))
	}
	p, err := driver.NewParser(driver.NewGrammar(tab), opts...)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("input") {
		ok, err := parseLine(p, 0, *parseFlags.input)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("Syntax error")
		}
		return nil
	}

	src, _, err := openSource(*parseFlags.source)
	if err != nil {
		return err
	}
	defer src.Close()

	rejected := 0
	s := bufio.NewScanner(src)
	row := 0
	for s.Scan() {
		row++
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ok, err := parseLine(p, row, line)
		if err != nil {
			return err
		}
		if !ok {
			rejected++
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	if rejected > 0 {
		return fmt.Errorf("%v line(s) rejected", rejected)
	}
	return nil
}

// parseLine prints the verdict on a line. A row of 0 means the input is not
// part of a source.
func parseLine(p *driver.Parser, row int, line string) (bool, error) {
	ok, err := p.Parse(line)
	if err != nil {
		return false, err
	}
	if ok {
		if row > 0 {
			pterm.Success.Printfln("%v: OK", row)
		} else {
			pterm.Success.Println("OK")
		}
		return true, nil
	}

	synErr := p.SyntaxError()
	if row > 0 {
		pterm.Error.Printfln("%v:%v: %v", row, synErr.Pos()+1, synErr)
	} else {
		pterm.Error.Printfln("%v: %v", synErr.Pos()+1, synErr)
	}
	fmt.Fprintf(os.Stderr, "    %v\n    %v^\n", line, strings.Repeat(" ", runeOffset(line, synErr.Pos())))
	return false, nil
}

func runeOffset(line string, pos int) int {
	n := len([]rune(line))
	if pos > n {
		return n
	}
	if pos < 0 {
		return 0
	}
	return pos
}
