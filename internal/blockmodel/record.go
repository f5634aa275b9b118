package blockmodel

import (
	"strconv"
	"strings"
)

// domainCutset is trimmed from both ends of a parsed domain label. Domains
// are otherwise opaque text and may contain anything except a newline.
const domainCutset = "'\" \t\r\n"

// Record is one data line of a block model stream: a rectangular block of
// SizeX*SizeY*SizeZ unit cells anchored at (X, Y, Z) and labelled with a
// domain. Reference streams only ever carry unit-sized records.
type Record struct {
	X, Y, Z             int
	SizeX, SizeY, SizeZ int
	Domain              string
	Line                int
}

// SubBlock is one unit cell produced by exploding a Record. Line points at
// the source record and is kept for diagnostics only.
type SubBlock struct {
	X, Y, Z int
	Domain  string
	Line    int
}

// ParseRecord parses a data line 'x,y,z,sx,sy,sz,domain'. The final comma
// on the line separates the domain label from the six leading integers, so
// domains containing commas still parse; the label is trimmed of
// surrounding quotes and whitespace. Sizes must be non-negative; all other
// geometric validation is left to callers that know the parent dimensions.
func ParseRecord(line string, lineNo int) (Record, error) {
	last := strings.LastIndexByte(line, ',')
	if last < 0 {
		return Record{}, &FormatError{
			Line:    lineNo,
			Content: line,
			Msg:     "expecting format 'x, y, z, sx, sy, sz, string'",
		}
	}
	domain := strings.Trim(line[last+1:], domainCutset)
	fields := strings.Split(line[:last], ",")
	if len(fields) != 6 {
		return Record{}, &FormatError{
			Line:    lineNo,
			Content: line,
			Msg:     "expecting format 'x, y, z, sx, sy, sz, string'",
		}
	}
	var vals [6]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Record{}, &FormatError{Line: lineNo, Content: line, Msg: err.Error()}
		}
		vals[i] = n
	}
	r := Record{
		X:      vals[0],
		Y:      vals[1],
		Z:      vals[2],
		SizeX:  vals[3],
		SizeY:  vals[4],
		SizeZ:  vals[5],
		Domain: domain,
		Line:   lineNo,
	}
	if r.SizeX < 0 || r.SizeY < 0 || r.SizeZ < 0 {
		return Record{}, &FormatError{
			Line:    lineNo,
			Content: line,
			Msg:     "expecting positive block sizes only",
		}
	}
	return r, nil
}

// IsUnit reports whether the record is a single unit cell.
func (r Record) IsUnit() bool {
	return r.SizeX == 1 && r.SizeY == 1 && r.SizeZ == 1
}

// CrossesParent returns the first axis ("x", "y" or "z") on which the
// record's box straddles a parent block boundary, or "" if it is properly
// contained in one parent block. Axes are checked in x, y, z order.
func (r Record) CrossesParent(h Header) string {
	if r.X/h.ParentX != (r.X+r.SizeX-1)/h.ParentX {
		return "x"
	}
	if r.Y/h.ParentY != (r.Y+r.SizeY-1)/h.ParentY {
		return "y"
	}
	if r.Z/h.ParentZ != (r.Z+r.SizeZ-1)/h.ParentZ {
		return "z"
	}
	return ""
}

// Explode appends one SubBlock per unit cell of the record's box to dst and
// returns the extended slice.
func (r Record) Explode(dst []SubBlock) []SubBlock {
	for sz := 0; sz < r.SizeZ; sz++ {
		for sy := 0; sy < r.SizeY; sy++ {
			for sx := 0; sx < r.SizeX; sx++ {
				dst = append(dst, SubBlock{
					X:      r.X + sx,
					Y:      r.Y + sy,
					Z:      r.Z + sz,
					Domain: r.Domain,
					Line:   r.Line,
				})
			}
		}
	}
	return dst
}
