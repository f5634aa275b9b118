// Package blockmodel defines the block model line grammar shared by the
// reference and candidate streams: the grid header, unit and merged block
// records, and the sub-blocks merged records explode into.
package blockmodel

import (
	"strconv"
	"strings"
)

// Header describes a block model grid: the overall cell counts on each axis
// and the parent block size that bounds legal merges.
type Header struct {
	CountX, CountY, CountZ    int
	ParentX, ParentY, ParentZ int
}

// BlockCount returns the total number of unit cells in the grid.
func (h Header) BlockCount() int {
	return h.CountX * h.CountY * h.CountZ
}

// Slabs returns the number of parent-depth z slabs covering the grid. The
// grid depth need not be an exact multiple of the parent depth; the last
// slab may be shallower.
func (h Header) Slabs() int {
	return (h.CountZ + h.ParentZ - 1) / h.ParentZ
}

// SlabCells returns the number of unit cells in slab k.
func (h Header) SlabCells(k int) int {
	depth := h.CountZ - k*h.ParentZ
	if depth > h.ParentZ {
		depth = h.ParentZ
	}
	if depth < 0 {
		depth = 0
	}
	return h.CountX * h.CountY * depth
}

// ParseHeader parses the header line of a reference stream:
// '# x_count,y_count,z_count,parent_x,parent_y,parent_z'.
func ParseHeader(line string, lineNo int) (Header, error) {
	if len(line) == 0 || line[0] != '#' {
		return Header{}, &FormatError{
			Line:    lineNo,
			Content: line,
			Msg:     "expected '# x,y,z,px,py,pz'",
		}
	}
	fields := strings.Split(line[1:], ",")
	if len(fields) != 6 {
		return Header{}, &FormatError{
			Line:    lineNo,
			Content: line,
			Msg:     "expecting six integers of the format '# <x_count>, <y_count>, <z_count>, <x_parent_size>, <y_parent_size>, <z_parent_size>'",
		}
	}
	var vals [6]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Header{}, &FormatError{Line: lineNo, Content: line, Msg: err.Error()}
		}
		vals[i] = n
	}
	h := Header{
		CountX:  vals[0],
		CountY:  vals[1],
		CountZ:  vals[2],
		ParentX: vals[3],
		ParentY: vals[4],
		ParentZ: vals[5],
	}
	for _, v := range vals {
		if v <= 0 {
			return Header{}, &FormatError{
				Line:    lineNo,
				Content: line,
				Msg:     "expecting positive grid and parent block dimensions",
			}
		}
	}
	return h, nil
}
