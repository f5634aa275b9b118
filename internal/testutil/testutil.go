// Package testutil provides shared test fixtures for block model grading
// tests: canonical reference listings and candidate streams built from
// compact descriptions.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boyleerock/blockgrade/internal/blockmodel"
)

// DomainFunc assigns a domain label to a grid cell.
type DomainFunc func(x, y, z int) string

// UniformDomain returns a DomainFunc labelling every cell with domain.
func UniformDomain(domain string) DomainFunc {
	return func(x, y, z int) string { return domain }
}

// Reference builds a canonical reference stream for the given header:
// the header line followed by one unit record per cell in ascending
// (z, y, x) order.
func Reference(h blockmodel.Header, domain DomainFunc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d,%d,%d,%d,%d,%d\n",
		h.CountX, h.CountY, h.CountZ, h.ParentX, h.ParentY, h.ParentZ)
	for z := 0; z < h.CountZ; z++ {
		for y := 0; y < h.CountY; y++ {
			for x := 0; x < h.CountX; x++ {
				fmt.Fprintf(&b, "%d,%d,%d,1,1,1,%s\n", x, y, z, domain(x, y, z))
			}
		}
	}
	return b.String()
}

// Candidate builds a candidate stream from merged block records.
func Candidate(records ...blockmodel.Record) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%d,%d,%d,%d,%d,%d,%s\n",
			r.X, r.Y, r.Z, r.SizeX, r.SizeY, r.SizeZ, r.Domain)
	}
	return b.String()
}

// WriteFile writes content to name under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
