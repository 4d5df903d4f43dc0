package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteGuidedRules writes one line per alternative: `<N> - a b / g1 g2`. It
// fails without writing anything when a line would not read back as the
// alternative it was written from.
func WriteGuidedRules(w io.Writer, rules GuidedRules) error {
	var lines []string
	for _, rule := range rules {
		for _, alt := range rule.Alternatives {
			line := FormatGuidedAlternative(rule.LHS.String(), alt)
			err := checkReadBack(line, alt)
			if err != nil {
				return fmt.Errorf("%w: %v", err, line)
			}
			lines = append(lines, line)
		}
	}

	bw := bufio.NewWriter(w)
	for _, line := range lines {
		_, err := fmt.Fprintln(bw, line)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

func checkReadBack(line string, alt *GuidedAlternative) error {
	lines, err := splitIntoLines([]byte(line))
	if err != nil {
		return unwrapLineError(err)
	}
	if len(lines) != 1 {
		return synErrInvalidToken
	}
	_, read, err := parseGuidedLine(lines[0])
	if err != nil {
		return unwrapLineError(err)
	}
	if len(read.RHS) != len(alt.RHS) || !read.Guides.Equal(alt.Guides) {
		return synErrAmbiguousSlash
	}
	for i, sym := range alt.RHS {
		if read.RHS[i] != sym {
			return synErrAmbiguousSlash
		}
	}
	return nil
}

func unwrapLineError(err error) error {
	if lErr, ok := err.(*lineError); ok {
		return lErr.cause
	}
	return err
}

func FormatGuidedAlternative(lhs string, alt *GuidedAlternative) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v %v %v %v", lhs, guidedSeparatorHyphen, alt.RHS, guidedSeparatorSlash)
	if alt.Guides.Len() > 0 {
		fmt.Fprintf(&b, " %v", alt.Guides)
	}
	return b.String()
}

// FormatGuidedRules is WriteGuidedRules into a string. It returns an empty
// string when the rules cannot be written.
func FormatGuidedRules(rules GuidedRules) string {
	var b strings.Builder
	WriteGuidedRules(&b, rules)
	return b.String()
}
