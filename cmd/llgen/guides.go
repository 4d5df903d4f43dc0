package main

import (
	"fmt"

	"github.com/nihei9/llgen/grammar"
	"github.com/spf13/cobra"
)

var guidesFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "guides",
		Short:   "Compute the guide set of every alternative of a grammar",
		Example: `  llgen guides grammar.txt -o grammar.guided`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runGuides,
	}
	guidesFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runGuides(cmd *cobra.Command, args []string) (retErr error) {
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

	w, err := openOutput(*guidesFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot open the output file %s: %w", *guidesFlags.output, err)
	}
	defer w.Close()

	return grammar.BuildGuidedText(w, src)
}
