package blockmodel

import (
	"fmt"
	"strings"
)

// FormatError reports a malformed line in a block model stream. It carries
// the line number, the raw line content, and the rule that was violated so
// diagnostics can always point at the offending input.
type FormatError struct {
	Line    int
	Content string
	Msg     string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, strings.TrimRight(e.Content, "\r\n"), e.Msg)
}

// ExitCode returns the process exit status for format violations.
func (e *FormatError) ExitCode() int { return 1 }
