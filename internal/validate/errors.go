package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// UnexpectedEOFError reports an input stream that ended while more data was
// still required.
type UnexpectedEOFError struct {
	Line int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of input on line %d", e.Line)
}

// ExitCode returns the process exit status for premature end of input.
func (e *UnexpectedEOFError) ExitCode() int { return 100 }

// ReadError reports a failure reading an input stream. OS-level read
// failures and unclassified errors map to distinct exit codes.
type ReadError struct {
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read line %d (%v)", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ExitCode returns 200 for OS-level read failures and 300 otherwise.
func (e *ReadError) ExitCode() int {
	var perr *fs.PathError
	var errno syscall.Errno
	if errors.As(e.Err, &perr) || errors.As(e.Err, &errno) {
		return 200
	}
	return 300
}

// GeometryError reports a candidate record that violates a geometric
// invariant: a parent-boundary crossing or a block emitted out of chunk
// order.
type GeometryError struct {
	Line    int
	Content string
	Msg     string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, strings.TrimRight(e.Content, "\r\n"), e.Msg)
}

// ExitCode returns the process exit status for geometric violations.
func (e *GeometryError) ExitCode() int { return 1 }

// EquivalenceError reports a mismatch between the exploded candidate stream
// and the reference stream.
type EquivalenceError struct {
	Msg string
}

func (e *EquivalenceError) Error() string { return e.Msg }

// ExitCode returns the process exit status for equivalence violations.
func (e *EquivalenceError) ExitCode() int { return 1 }

// ExitCode extracts the exit status carried by err, or 1 for plain errors.
func ExitCode(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}
