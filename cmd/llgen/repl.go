package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/llgen/driver"
	"github.com/nihei9/llgen/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file path>",
		Short:   "Compile a grammar and parse inputs interactively",
		Example: `  llgen repl grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) (retErr error) {
	src, name, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer src.Close()
	defer func() {
		nameSpecErrors(retErr, args[0], name)
	}()

	tab, err := grammar.CompileRawText(src, grammar.WithName(tableName("", args[0])))
	if err != nil {
		return err
	}
	p, err := driver.NewParser(driver.NewGrammar(tab))
	if err != nil {
		return err
	}

	initDisplay()
	pterm.Info.Printfln("Loaded %v (%v rows); quit with <ctrl>D", tab.Name, len(tab.Rows))

	rl, err := readline.New("llgen> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or an interrupt
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ok, err := p.Parse(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if ok {
			pterm.Success.Println("OK")
			continue
		}
		synErr := p.SyntaxError()
		pterm.Error.Printfln("%v: %v", synErr.Pos()+1, synErr)
		fmt.Fprintf(os.Stderr, "    %v\n    %v^\n", line, strings.Repeat(" ", runeOffset(line, synErr.Pos())))
	}
	fmt.Println("Good bye!")
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
