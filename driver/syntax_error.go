package driver

import (
	"fmt"
	"strings"

	"github.com/nihei9/llgen/driver/lexer"
)

// SyntaxError describes why a parse was rejected: the guides of the row that
// failed and the token read last.
type SyntaxError struct {
	Expected []string
	Received *lexer.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Expected one of [%v], but received %v", strings.Join(e.Expected, ", "), e.ReceivedText())
}

// ReceivedText spells the received token: its value, or its kind when the
// value is empty.
func (e *SyntaxError) ReceivedText() string {
	if e.Received == nil {
		return "nothing"
	}
	if e.Received.Value != "" {
		return e.Received.Value
	}
	return fmt.Sprintf("<%v>", e.Received.Kind)
}

// Pos returns the offset of the received token, or -1 when no token was read.
func (e *SyntaxError) Pos() int {
	if e.Received == nil {
		return -1
	}
	return e.Received.Pos
}
