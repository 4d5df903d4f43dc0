package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	verr "github.com/nihei9/llgen/error"
	spec "github.com/nihei9/llgen/spec/grammar"
)

// openSource opens a file, or stdin when the path is empty. The name is the one
// error messages show.
func openSource(path string) (io.ReadCloser, string, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("Cannot open the file %s: %w", path, err)
	}
	return f, path, nil
}

// nameSpecErrors attaches a source to grammar-text errors.
func nameSpecErrors(err error, path, name string) {
	var specErrs verr.SpecErrors
	if !errors.As(err, &specErrs) {
		return
	}
	for _, e := range specErrs {
		e.FilePath = path
		e.SourceName = name
	}
}

func readCompiledTable(path string) (*spec.CompiledTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the table %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	tab := &spec.CompiledTable{}
	err = json.Unmarshal(d, tab)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the table %s: %w", path, err)
	}
	if len(tab.Rows) == 0 {
		return nil, fmt.Errorf("The table %s has no rows", path)
	}
	return tab, nil
}

// openOutput opens a file for writing, or stdout when the path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
