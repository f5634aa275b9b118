package validate

import (
	"io"

	"github.com/boyleerock/blockgrade/internal/blockmodel"
)

// CandidateReader streams the candidate's merged-block listing. Each record
// is checked for non-negative sizes (in the record parser) and for sizes
// not exceeding the parent block on any axis. Parent-boundary crossing is
// not checked here; that belongs to the Assembler.
type CandidateReader struct {
	lr     *LineReader
	name   string
	header blockmodel.Header
	count  int
}

// NewCandidateReader returns a CandidateReader over r for a model described
// by header. The name is used in diagnostics only.
func NewCandidateReader(r io.Reader, header blockmodel.Header, name string) *CandidateReader {
	return &CandidateReader{lr: NewLineReader(r), header: header, name: name}
}

// Name returns the diagnostic name for the stream.
func (cr *CandidateReader) Name() string { return cr.name }

// Line returns the number of the most recently read line.
func (cr *CandidateReader) Line() int { return cr.lr.Line() }

// Count returns the number of merged block records consumed so far. This is
// the candidate block count used for the compression metric; exploding a
// record does not increment it further.
func (cr *CandidateReader) Count() int { return cr.count }

// Next returns the next merged block record, or io.EOF at a clean end of
// stream.
func (cr *CandidateReader) Next() (blockmodel.Record, error) {
	line, err := cr.lr.ReadData()
	if err != nil {
		return blockmodel.Record{}, err
	}
	rec, err := blockmodel.ParseRecord(line, cr.lr.Line())
	if err != nil {
		return blockmodel.Record{}, err
	}
	if rec.SizeX > cr.header.ParentX || rec.SizeY > cr.header.ParentY || rec.SizeZ > cr.header.ParentZ {
		return blockmodel.Record{}, &blockmodel.FormatError{
			Line:    cr.lr.Line(),
			Content: line,
			Msg:     "block is too large",
		}
	}
	cr.count++
	return rec, nil
}
