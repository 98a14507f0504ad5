package placement

import (
	"testing"

	"github.com/lmars/dm200/grid"
	"github.com/lmars/dm200/perimeter"
)

// TestBuildHandlesRectangularSizes guards against the positive-overflow
// wraparound bug: a mark() call whose row/col lands exactly at dimY/dimX
// must wrap rather than index out of range, for every mandatory IEC
// 16022 rectangle (spec.md §6.1) and its transpose.
func TestBuildHandlesRectangularSizes(t *testing.T) {
	sizes := []struct{ dimX, dimY int }{
		{18, 8}, {32, 8}, {26, 12}, {36, 12}, {36, 16}, {48, 16},
		{8, 18}, {8, 32}, {12, 26}, {12, 36}, {16, 36}, {16, 48},
	}
	for _, s := range sizes {
		table := Build(s.dimX, s.dimY)
		if table.NumCodewords == 0 {
			t.Errorf("dimX=%d dimY=%d: expected a non-zero codeword count", s.dimX, s.dimY)
		}

		g := grid.New(s.dimX, s.dimY, &perimeter.Perimeter{})
		codewords := make([]byte, table.NumCodewords)
		for i := range codewords {
			codewords[i] = byte(i*37 + 11)
		}
		PlaceCodewords(table, g, codewords)
		got, _ := ExtractCodewords(table, g)
		for i := range codewords {
			if got[i] != codewords[i] {
				t.Fatalf("dimX=%d dimY=%d: codeword %d mismatch: want %08b got %08b", s.dimX, s.dimY, i, codewords[i], got[i])
			}
		}
	}
}

func TestBuildCodewordCounts(t *testing.T) {
	cases := []struct {
		dim  int
		want int
	}{
		{10, 8},  // 3 data + 5 parity
		{12, 12}, // 5 data + 7 parity
	}
	for _, c := range cases {
		table := Build(c.dim, c.dim)
		if table.NumCodewords != c.want {
			t.Errorf("dim=%d: expected %d codewords, got %d", c.dim, c.want, table.NumCodewords)
		}
	}
}

func TestPlaceExtractRoundTrip(t *testing.T) {
	const dim = 10
	table := Build(dim, dim)
	g := grid.New(dim, dim, &perimeter.Perimeter{})

	codewords := make([]byte, table.NumCodewords)
	for i := range codewords {
		codewords[i] = byte(i*37 + 11)
	}
	PlaceCodewords(table, g, codewords)

	got, erasures := ExtractCodewords(table, g)
	if len(erasures) != 0 {
		t.Fatalf("expected no erasures, got %v", erasures)
	}
	for i := range codewords {
		if got[i] != codewords[i] {
			t.Fatalf("codeword %d mismatch: want %08b got %08b", i, codewords[i], got[i])
		}
	}
}

func TestExtractMarksErasuresFromDamage(t *testing.T) {
	const dim = 10
	table := Build(dim, dim)
	g := grid.New(dim, dim, &perimeter.Perimeter{})
	g.Damage[4][4] = true
	idx := table.CodewordIndex[4][4]
	if idx < 0 {
		t.Fatalf("expected (4,4) to be a data cell")
	}
	_, erasures := ExtractCodewords(table, g)
	found := false
	for _, e := range erasures {
		if e == idx {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected codeword %d to be marked as erasure", idx)
	}
}
