package error

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSpecError_Error(t *testing.T) {
	cause := errors.New("the arrow -> must follow a left-hand side")

	dir := t.TempDir()
	path := filepath.Join(dir, "test.grammar")
	err := os.WriteFile(path, []byte("<S> -> a\n<T> b\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		err      *SpecError
		expected string
	}{
		{
			err: &SpecError{
				Cause: cause,
			},
			expected: "error: the arrow -> must follow a left-hand side",
		},
		{
			err: &SpecError{
				Cause:      cause,
				Detail:     "<T>",
				SourceName: "stdin",
				Row:        2,
				Line:       "<T> b",
			},
			expected: "stdin: 2: error: the arrow -> must follow a left-hand side: <T>\n    <T> b",
		},
		{
			err: &SpecError{
				Cause:      cause,
				FilePath:   path,
				SourceName: "test.grammar",
				Row:        2,
			},
			expected: "test.grammar: 2: error: the arrow -> must follow a left-hand side\n    <T> b",
		},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.expected {
			t.Errorf("unexpected message;\nwant: %q\ngot:  %q", tt.expected, tt.err.Error())
		}
		if !errors.Is(tt.err, cause) {
			t.Errorf("a spec error must unwrap to its cause")
		}
	}

	errs := SpecErrors{tests[0].err, tests[0].err}
	if errs.Error() != tests[0].expected+"\n"+tests[0].expected {
		t.Errorf("unexpected message: %q", errs.Error())
	}
}
