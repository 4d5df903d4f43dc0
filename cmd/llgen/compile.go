package main

import (
	"encoding/json"
	"fmt"

	"github.com/nihei9/llgen/grammar"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
	guided *bool
	name   *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a grammar into a parsing table",
		Example: `  llgen compile grammar.txt -o grammar.json
  llgen compile --guided grammar.guided -o grammar.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.guided = cmd.Flags().Bool("guided", false, "read a guided grammar instead of a raw one")
	compileFlags.name = cmd.Flags().String("name", "", "table name (default the file name without its extension)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	src, name, err := openSource(path)
	if err != nil {
		return err
	}
	defer src.Close()
	defer func() {
		nameSpecErrors(retErr, path, name)
	}()

	var opts []grammar.CompileOption
	if tabName := tableName(*compileFlags.name, path); tabName != "" {
		opts = append(opts, grammar.WithName(tabName))
	}

	compile := grammar.CompileRawText
	if *compileFlags.guided {
		compile = grammar.CompileText
	}
	tab, err := compile(src, opts...)
	if err != nil {
		return err
	}

	b, err := json.Marshal(tab)
	if err != nil {
		return err
	}
	w, err := openOutput(*compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot open the output file %s: %w", *compileFlags.output, err)
	}
	defer w.Close()
	_, err = fmt.Fprintf(w, "%v\n", string(b))
	return err
}
