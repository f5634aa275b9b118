package validate

import (
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReaderRaw(t *testing.T) {
	lr := NewLineReader(strings.NewReader("# header\ndata\n"))
	line, err := lr.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, "# header", line)
	assert.Equal(t, 1, lr.Line())

	line, err = lr.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, "data", line)
	assert.Equal(t, 2, lr.Line())

	_, err = lr.ReadRaw()
	assert.Equal(t, io.EOF, err)
}

func TestLineReaderDataSkipsCommentsAndBlanks(t *testing.T) {
	lr := NewLineReader(strings.NewReader("# comment\n\n\r\n0,0,0,1,1,1,ore\n# trailing\n"))
	line, err := lr.ReadData()
	require.NoError(t, err)
	assert.Equal(t, "0,0,0,1,1,1,ore", line)
	assert.Equal(t, 4, lr.Line())

	_, err = lr.ReadData()
	assert.Equal(t, io.EOF, err)
}

func TestLineReaderStripsCR(t *testing.T) {
	lr := NewLineReader(strings.NewReader("0,0,0,1,1,1,ore\r\n"))
	line, err := lr.ReadData()
	require.NoError(t, err)
	assert.Equal(t, "0,0,0,1,1,1,ore", line)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, &readFailure{}
}

type readFailure struct{}

func (*readFailure) Error() string { return "device gone" }

func TestLineReaderReadError(t *testing.T) {
	lr := NewLineReader(failingReader{})
	_, err := lr.ReadRaw()
	require.Error(t, err)
	var rerr *ReadError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 1, rerr.Line)
	// Not an OS-level error, so the unclassified status applies.
	assert.Equal(t, 300, rerr.ExitCode())
}

func TestReadErrorOSClassification(t *testing.T) {
	osErr := &ReadError{Line: 2, Err: &fs.PathError{Op: "read", Path: "model.csv", Err: fs.ErrClosed}}
	assert.Equal(t, 200, osErr.ExitCode())
	assert.Contains(t, osErr.Error(), "failed to read line 2")
}
