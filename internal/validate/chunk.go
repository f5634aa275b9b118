package validate

import (
	"fmt"
	"io"
	"sort"

	"github.com/boyleerock/blockgrade/internal/blockmodel"
)

// Assembler buffers the candidate records belonging to one parent-depth
// slab of z, explodes them into unit sub-blocks and hands back the slab
// sorted in canonical (z, y, x) order. At most one slab's worth of
// sub-blocks is ever resident, which bounds memory regardless of grid size.
type Assembler struct {
	src     *CandidateReader
	header  blockmodel.Header
	pending *blockmodel.Record
	eof     bool
}

// NewAssembler returns an Assembler pulling records from src.
func NewAssembler(src *CandidateReader, header blockmodel.Header) *Assembler {
	return &Assembler{src: src, header: header}
}

// Exhausted reports whether the candidate stream has ended and no record is
// waiting to start another slab.
func (a *Assembler) Exhausted() bool {
	return a.eof && a.pending == nil
}

// Pending returns the record buffered as the start of the next slab, if any.
func (a *Assembler) Pending() *blockmodel.Record { return a.pending }

// NextChunk assembles slab k, the records whose z lies in
// [k*parent_z, (k+1)*parent_z). A record belonging to an earlier slab is an
// ordering violation; a record belonging to a later slab closes this one
// and is held back. The returned sub-blocks are sorted ascending by
// (z, y, x), matching reference order.
func (a *Assembler) NextChunk(k int) ([]blockmodel.SubBlock, error) {
	zlo := k * a.header.ParentZ
	zhi := zlo + a.header.ParentZ
	var chunk []blockmodel.SubBlock
	for {
		var rec blockmodel.Record
		switch {
		case a.pending != nil:
			rec = *a.pending
			a.pending = nil
		case a.eof:
			return sortChunk(chunk), nil
		default:
			r, err := a.src.Next()
			if err == io.EOF {
				a.eof = true
				return sortChunk(chunk), nil
			}
			if err != nil {
				return nil, err
			}
			rec = r
		}
		if rec.Z < zlo {
			return nil, &GeometryError{
				Line:    rec.Line,
				Content: recordContent(rec),
				Msg:     "block z value lies in an earlier chunk",
			}
		}
		if axis := rec.CrossesParent(a.header); axis != "" {
			return nil, &GeometryError{
				Line:    rec.Line,
				Content: recordContent(rec),
				Msg:     fmt.Sprintf("block crosses a parent block boundary in the %s direction", axis),
			}
		}
		if rec.Z >= zhi {
			a.pending = &rec
			return sortChunk(chunk), nil
		}
		chunk = rec.Explode(chunk)
	}
}

func sortChunk(chunk []blockmodel.SubBlock) []blockmodel.SubBlock {
	sort.Slice(chunk, func(i, j int) bool {
		a, b := chunk[i], chunk[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return chunk
}

func recordContent(r blockmodel.Record) string {
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d,%s", r.X, r.Y, r.Z, r.SizeX, r.SizeY, r.SizeZ, r.Domain)
}
