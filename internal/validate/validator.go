// Package validate implements the streaming chunk-wise equivalence check
// between a reference block model and a candidate's merged-block output,
// and derives the compression metric from the two block counts.
package validate

import (
	"fmt"
	"io"
)

// Options configures a validation run. Both sinks are optional; names are
// used in diagnostics only.
type Options struct {
	ReferenceName string
	CandidateName string

	// Verbose receives progress narration. Nil suppresses it.
	Verbose io.Writer
}

// Result carries the block counts of a successful validation run.
type Result struct {
	ReferenceBlocks int
	CandidateBlocks int
}

// Compression returns the fraction reduction in block count, in [0, 1).
// The header parser rejects empty grids, so the denominator is never zero.
func (r Result) Compression() float64 {
	return float64(r.ReferenceBlocks-r.CandidateBlocks) / float64(r.ReferenceBlocks)
}

// Run streams the reference and candidate models against each other, one
// parent-depth slab at a time, and returns the block counts on success.
// The first error encountered aborts the run.
func Run(reference, candidate io.Reader, opts Options) (Result, error) {
	verbose := opts.Verbose
	if verbose == nil {
		verbose = io.Discard
	}
	refName := opts.ReferenceName
	if refName == "" {
		refName = "reference"
	}
	candName := opts.CandidateName
	if candName == "" {
		candName = "candidate"
	}

	ref := NewReferenceReader(reference, refName)
	header, err := ref.ReadHeader()
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(verbose, "...looking for %d blocks.\n", header.BlockCount())

	cand := NewCandidateReader(candidate, header, candName)
	asm := NewAssembler(cand, header)
	chk := NewChecker(ref, candName)

	slabs := header.Slabs()
	for k := 0; k < slabs; k++ {
		fmt.Fprintf(verbose, "...reading chunk %d of %d\n", k+1, slabs)
		chunk, err := asm.NextChunk(k)
		if err != nil {
			return Result{}, err
		}
		if len(chunk) < header.SlabCells(k) && asm.Exhausted() {
			// The candidate ran out before covering this slab. Without
			// this check an empty trailing chunk would be compared
			// against nothing and the shortfall missed.
			return Result{}, &UnexpectedEOFError{Line: cand.Line() + 1}
		}
		fmt.Fprintf(verbose, "...checking chunk %d of %d\n", k+1, slabs)
		if err := chk.CheckChunk(chunk); err != nil {
			return Result{}, err
		}
	}
	if !asm.Exhausted() {
		line := cand.Line()
		if p := asm.Pending(); p != nil {
			line = p.Line
		}
		return Result{}, &EquivalenceError{Msg: fmt.Sprintf(
			"%s specifies more blocks than %s from line %d onwards",
			candName, refName, line)}
	}
	fmt.Fprintf(verbose, "...equivalence = 100%%\n")
	return Result{
		ReferenceBlocks: header.BlockCount(),
		CandidateBlocks: cand.Count(),
	}, nil
}
