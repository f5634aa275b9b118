package validate

import (
	"io"

	"github.com/boyleerock/blockgrade/internal/blockmodel"
)

// ReferenceReader streams the canonical per-unit-block listing. The header
// is parsed once; every following data line must be a unit-sized record.
// The stream is expected to carry exactly one record per grid cell in
// ascending (z, y, x) order, which the equivalence check relies on.
type ReferenceReader struct {
	lr   *LineReader
	name string
}

// NewReferenceReader returns a ReferenceReader over r. The name is used in
// diagnostics only.
func NewReferenceReader(r io.Reader, name string) *ReferenceReader {
	return &ReferenceReader{lr: NewLineReader(r), name: name}
}

// Name returns the diagnostic name for the stream.
func (rr *ReferenceReader) Name() string { return rr.name }

// ReadHeader reads and parses the header line. It must be the first line of
// the stream; comment skipping does not apply to it.
func (rr *ReferenceReader) ReadHeader() (blockmodel.Header, error) {
	line, err := rr.lr.ReadRaw()
	if err == io.EOF {
		return blockmodel.Header{}, &UnexpectedEOFError{Line: rr.lr.Line() + 1}
	}
	if err != nil {
		return blockmodel.Header{}, err
	}
	return blockmodel.ParseHeader(line, rr.lr.Line())
}

// Next returns the next unit block record, or io.EOF at a clean end of
// stream.
func (rr *ReferenceReader) Next() (blockmodel.Record, error) {
	line, err := rr.lr.ReadData()
	if err != nil {
		return blockmodel.Record{}, err
	}
	rec, err := blockmodel.ParseRecord(line, rr.lr.Line())
	if err != nil {
		return blockmodel.Record{}, err
	}
	if !rec.IsUnit() {
		return blockmodel.Record{}, &blockmodel.FormatError{
			Line:    rr.lr.Line(),
			Content: line,
			Msg:     "expecting unit sized blocks only",
		}
	}
	return rec, nil
}
