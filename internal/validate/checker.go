package validate

import (
	"fmt"
	"io"

	"github.com/boyleerock/blockgrade/internal/blockmodel"
)

// Checker pairs each chunk's sorted sub-blocks against the next lines of
// the reference stream. Both sequences are in (z, y, x) order within a
// slab, so the comparison is a plain zip: no lookahead, no buffering.
type Checker struct {
	ref  *ReferenceReader
	cand string
}

// NewChecker returns a Checker pulling expectations from ref. The cand name
// is used in diagnostics only.
func NewChecker(ref *ReferenceReader, cand string) *Checker {
	return &Checker{ref: ref, cand: cand}
}

// CheckChunk pulls exactly len(chunk) unit records from the reference and
// asserts positional and domain equality pairwise. The first mismatch is
// fatal; later ones are never observed.
func (c *Checker) CheckChunk(chunk []blockmodel.SubBlock) error {
	for _, sb := range chunk {
		rec, err := c.ref.Next()
		if err == io.EOF {
			return &EquivalenceError{Msg: fmt.Sprintf(
				"%s specifies more blocks than %s from line %d onwards",
				c.cand, c.ref.Name(), sb.Line)}
		}
		if err != nil {
			return err
		}
		if sb.X != rec.X || sb.Y != rec.Y || sb.Z != rec.Z {
			return &EquivalenceError{Msg: fmt.Sprintf(
				"block %d,%d,%d missing, duplicated or should appear earlier in the output",
				rec.X, rec.Y, rec.Z)}
		}
		if sb.Domain != rec.Domain {
			return &EquivalenceError{Msg: fmt.Sprintf(
				"block %d,%d,%d,'%s' on line %d should be '%s'",
				rec.X, rec.Y, rec.Z, sb.Domain, sb.Line, rec.Domain)}
		}
	}
	return nil
}
