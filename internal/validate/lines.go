package validate

import (
	"bufio"
	"io"
	"strings"
)

// maxLineBytes bounds a single input line. Domains are free text but a line
// longer than this is assumed to be a runaway stream.
const maxLineBytes = 1 << 20

// LineReader is a buffered line source that tracks line numbers and applies
// the data-section skip rules (blank lines and '#' comments are ignored).
// The header line is read raw, without skipping.
type LineReader struct {
	s    *bufio.Scanner
	line int
}

// NewLineReader returns a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &LineReader{s: s}
}

// Line returns the number of the most recently read line.
func (lr *LineReader) Line() int { return lr.line }

// ReadRaw returns the next line verbatim, skipping nothing. A clean end of
// file is returned as io.EOF.
func (lr *LineReader) ReadRaw() (string, error) {
	if !lr.s.Scan() {
		if err := lr.s.Err(); err != nil {
			return "", &ReadError{Line: lr.line + 1, Err: err}
		}
		return "", io.EOF
	}
	lr.line++
	return strings.TrimRight(lr.s.Text(), "\r"), nil
}

// ReadData returns the next data line, skipping blank lines and lines whose
// first character is '#'. A clean end of file is returned as io.EOF.
func (lr *LineReader) ReadData() (string, error) {
	for {
		line, err := lr.ReadRaw()
		if err != nil {
			return "", err
		}
		if line == "" || line[0] == '#' {
			continue
		}
		return line, nil
	}
}
