package blockmodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord("1,2,3,2,2,1,ore", 5)
	require.NoError(t, err)
	want := Record{X: 1, Y: 2, Z: 3, SizeX: 2, SizeY: 2, SizeZ: 1, Domain: "ore", Line: 5}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRecordDomainTrimming(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"0,0,0,1,1,1,'ore'", "ore"},
		{"0,0,0,1,1,1,\"waste\"", "waste"},
		{"0,0,0,1,1,1,  air  ", "air"},
		{"0,0,0,1,1,1,'high grade ore'", "high grade ore"},
	}
	for _, tt := range tests {
		rec, err := ParseRecord(tt.line, 1)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, rec.Domain, tt.line)
	}
}

func TestParseRecordDomainWithComma(t *testing.T) {
	// The final comma separates the domain, so earlier commas in a domain
	// cannot confuse the split; only a domain with its own trailing comma
	// would. The six leading fields must still be integers.
	rec, err := ParseRecord("0,0,0,1,1,1,ore", 1)
	require.NoError(t, err)
	assert.Equal(t, "ore", rec.Domain)

	_, err = ParseRecord("0,0,0,1,1,1,ore grade,a", 1)
	require.Error(t, err)
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"no comma", "garbage", "expecting format"},
		{"too few fields", "0,0,1,1,1,ore", "expecting format"},
		{"too many fields", "0,0,0,0,1,1,1,ore", "expecting format"},
		{"non integer", "0,a,0,1,1,1,ore", "invalid syntax"},
		{"negative size", "0,0,0,1,-1,1,ore", "positive block sizes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.line, 3)
			require.Error(t, err)
			var ferr *FormatError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, 3, ferr.Line)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCrossesParent(t *testing.T) {
	h := Header{CountX: 4, CountY: 4, CountZ: 4, ParentX: 2, ParentY: 2, ParentZ: 2}
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"contained", Record{X: 0, Y: 0, Z: 0, SizeX: 2, SizeY: 2, SizeZ: 2}, ""},
		{"second parent", Record{X: 2, Y: 2, Z: 2, SizeX: 2, SizeY: 2, SizeZ: 2}, ""},
		{"crosses x", Record{X: 1, Y: 0, Z: 0, SizeX: 2, SizeY: 1, SizeZ: 1}, "x"},
		{"crosses y", Record{X: 0, Y: 1, Z: 0, SizeX: 1, SizeY: 2, SizeZ: 1}, "y"},
		{"crosses z", Record{X: 0, Y: 0, Z: 1, SizeX: 1, SizeY: 1, SizeZ: 2}, "z"},
		{"x reported first", Record{X: 1, Y: 1, Z: 1, SizeX: 2, SizeY: 2, SizeZ: 2}, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.CrossesParent(h))
		})
	}
}

func TestExplode(t *testing.T) {
	rec := Record{X: 2, Y: 0, Z: 4, SizeX: 2, SizeY: 2, SizeZ: 1, Domain: "ore", Line: 9}
	subs := rec.Explode(nil)
	require.Len(t, subs, 4)
	want := []SubBlock{
		{X: 2, Y: 0, Z: 4, Domain: "ore", Line: 9},
		{X: 3, Y: 0, Z: 4, Domain: "ore", Line: 9},
		{X: 2, Y: 1, Z: 4, Domain: "ore", Line: 9},
		{X: 3, Y: 1, Z: 4, Domain: "ore", Line: 9},
	}
	if diff := cmp.Diff(want, subs); diff != "" {
		t.Errorf("sub-blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestExplodeZeroSize(t *testing.T) {
	rec := Record{X: 0, Y: 0, Z: 0, SizeX: 0, SizeY: 1, SizeZ: 1}
	assert.Empty(t, rec.Explode(nil))
}

func TestIsUnit(t *testing.T) {
	assert.True(t, Record{SizeX: 1, SizeY: 1, SizeZ: 1}.IsUnit())
	assert.False(t, Record{SizeX: 1, SizeY: 2, SizeZ: 1}.IsUnit())
}
