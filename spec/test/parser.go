package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// Outcome is the verdict a test case expects. A nil Expected or Received is not
// checked.
type Outcome struct {
	Accept   bool
	Expected []string
	Received *string
}

func (o *Outcome) verdict() string {
	if o.Accept {
		return verdictAccept
	}
	return verdictReject
}

type OutcomeDiff struct {
	Field    string
	Expected string
	Actual   string
}

func (d *OutcomeDiff) Message() string {
	return fmt.Sprintf("unexpected %v; want: %v, got: %v", d.Field, d.Expected, d.Actual)
}

// DiffOutcome compares an actual outcome with an expected one. The expected
// terminals are compared as sets.
func DiffOutcome(expected, actual *Outcome) []*OutcomeDiff {
	if expected.Accept != actual.Accept {
		return []*OutcomeDiff{
			{
				Field:    "verdict",
				Expected: expected.verdict(),
				Actual:   actual.verdict(),
			},
		}
	}
	if expected.Accept {
		return nil
	}

	var diffs []*OutcomeDiff
	if expected.Expected != nil {
		e := normalizeTerminals(expected.Expected)
		a := normalizeTerminals(actual.Expected)
		if e != a {
			diffs = append(diffs, &OutcomeDiff{
				Field:    "expected terminals",
				Expected: e,
				Actual:   a,
			})
		}
	}
	if expected.Received != nil {
		var a string
		if actual.Received != nil {
			a = *actual.Received
		}
		if *expected.Received != a {
			diffs = append(diffs, &OutcomeDiff{
				Field:    "received token",
				Expected: *expected.Received,
				Actual:   a,
			})
		}
	}
	return diffs
}

func normalizeTerminals(terms []string) string {
	s := make([]string, len(terms))
	copy(s, terms)
	sort.Strings(s)
	return "[" + strings.Join(s, " ") + "]"
}

type TestCase struct {
	Description string
	Source      []byte
	Output      *Outcome
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	op := &outcomeParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
	}
	outcome, err := op.parse(bytes.NewReader(parts[2].buf))
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      outcome,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

const (
	verdictAccept = "accept"
	verdictReject = "reject"

	keyExpected = "expected"
	keyReceived = "received"
)

type outcomeParser struct {
	lineOffset int
}

// parse reads the verdict line followed by optional `expected:` and
// `received:` lines. Blank lines are ignored.
func (op *outcomeParser) parse(src io.Reader) (*Outcome, error) {
	var o *Outcome
	s := bufio.NewScanner(src)
	row := op.lineOffset
	for s.Scan() {
		row++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}

		if o == nil {
			switch line {
			case verdictAccept:
				o = &Outcome{
					Accept: true,
				}
			case verdictReject:
				o = &Outcome{}
			default:
				return nil, fmt.Errorf("%v: a verdict must be %v or %v: %v", row, verdictAccept, verdictReject, line)
			}
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%v: a line must be `key: value`: %v", row, line)
		}
		if o.Accept {
			return nil, fmt.Errorf("%v: an accepting test case cannot have details: %v", row, line)
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case keyExpected:
			if o.Expected != nil {
				return nil, fmt.Errorf("%v: duplicated key: %v", row, keyExpected)
			}
			o.Expected = strings.Fields(value)
			if o.Expected == nil {
				o.Expected = []string{}
			}
		case keyReceived:
			if o.Received != nil {
				return nil, fmt.Errorf("%v: duplicated key: %v", row, keyReceived)
			}
			o.Received = &value
		default:
			return nil, fmt.Errorf("%v: unknown key: %v", row, key)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("a verdict is missing")
	}
	return o, nil
}
