package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nihei9/llgen/recognizer"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "expr [input]",
		Short: "Check expressions with the built-in recursive-descent recognizer",
		Example: `  llgen expr 'f(a, b) * 2 >= limit'
  cat exprs | llgen expr`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExpr,
	}
	rootCmd.AddCommand(cmd)
}

func runExpr(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ok, err := checkExpr(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("Not an expression")
		}
		return nil
	}

	rejected := 0
	s := bufio.NewScanner(os.Stdin)
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ok, err := checkExpr(line)
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

func checkExpr(input string) (bool, error) {
	r, err := recognizer.NewRecognizer(strings.NewReader(input))
	if err != nil {
		return false, err
	}
	ok, err := r.Parse()
	if err != nil {
		return false, err
	}
	if ok {
		pterm.Success.Println("OK")
		return true, nil
	}
	pos := 0
	if tok := r.LastToken(); tok != nil {
		pos = tok.Pos
	}
	pterm.Error.Printfln("%v: %v", pos+1, r.Error())
	return false, nil
}
