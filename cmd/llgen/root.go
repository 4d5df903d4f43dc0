package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace *string
}{}

// traceKeys lists the tracers of the library packages.
var traceKeys = []string{
	"llgen.grammar",
	"llgen.driver",
	"llgen.recognizer",
}

var rootCmd = &cobra.Command{
	Use:   "llgen",
	Short: "Generate a table-driven LL(1) parser from a grammar",
	Long: `llgen provides the following features:
- Computes the guide sets of a grammar.
- Compiles a guided grammar into a parsing table.
- Parses inputs using the table, and tests a grammar against test cases.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := tracing.TraceLevelFromString(*rootFlags.trace)
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
	},
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
