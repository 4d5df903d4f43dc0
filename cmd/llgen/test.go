package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/llgen/grammar"
	"github.com/nihei9/llgen/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	guided *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  llgen test grammar.txt test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.guided = cmd.Flags().Bool("guided", false, "read a guided grammar instead of a raw one")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) (retErr error) {
	src, name, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer src.Close()
	defer func() {
		nameSpecErrors(retErr, args[0], name)
	}()

	compile := grammar.CompileRawText
	if *testFlags.guided {
		compile = grammar.CompileText
	}
	tab, err := compile(src)
	if err != nil {
		return fmt.Errorf("Cannot compile the grammar: %w", err)
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Table: tab,
		Cases: cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
