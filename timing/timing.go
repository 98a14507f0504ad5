// Package timing detects the Data Matrix symbol's module dimensions by
// correlating candidate timing-border patterns against the binary image,
// and tabulates the IEC 16022 valid sizes.
package timing

import "github.com/lmars/dm200/imaging"

// Size describes one IEC 16022 valid symbol size.
type Size struct {
	DimX, DimY int
	Parity     int // error-correction codeword count
}

// Squares lists the 24 square ECC 200 sizes (§6.1).
var Squares = []Size{
	{10, 10, 5}, {12, 12, 7}, {14, 14, 10}, {16, 16, 12},
	{18, 18, 14}, {20, 20, 18}, {22, 22, 20}, {24, 24, 24},
	{26, 26, 28}, {32, 32, 36}, {36, 36, 42}, {40, 40, 48},
	{44, 44, 56}, {48, 48, 68}, {52, 52, 84}, {64, 64, 112},
	{72, 72, 144}, {80, 80, 192}, {88, 88, 224}, {96, 96, 272},
	{104, 104, 336}, {120, 120, 408}, {132, 132, 496}, {144, 144, 620},
}

// Rectangles lists the 6 rectangular ECC 200 sizes (§6.1).
var Rectangles = []Size{
	{18, 8, 7}, {32, 8, 11}, {26, 12, 14}, {36, 12, 18}, {36, 16, 24}, {48, 16, 28},
}

// AllSizes returns the full list of valid sizes, squares first.
func AllSizes() []Size {
	all := make([]Size, 0, len(Squares)+len(Rectangles))
	all = append(all, Squares...)
	all = append(all, Rectangles...)
	return all
}

// Corner identifies which corner of the quadrilateral the timing borders
// are evaluated from.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// Candidate is one scored (size, corner) timing hypothesis.
type Candidate struct {
	Size  Size
	Corner Corner
	Score float64
}

// Score evaluates the correlation of one timing side, the line from
// (x0,y0) to (x1,y1), against the binary image, sampling n cells along it;
// expected colour for cell i is i mod 2. The side score is
// sum(hits_i * hits_{i-1}) divided by n. BestInSizes averages the scores
// of the two sides that meet at a corner.
func Score(bin *imaging.BinaryImage, x0, y0, x1, y1 float64, n int, windowRadius int) float64 {
	if n < 2 {
		return 0
	}
	hits := make([]int, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		x := x0 + (x1-x0)*t
		y := y0 + (y1-y0)*t
		expected := i % 2
		count, total := sampleWindow(bin, int(x), int(y), windowRadius)
		matches := count
		if expected == 0 {
			matches = total - count
		}
		hits[i] = matches
	}
	var sum float64
	for i := 1; i < n; i++ {
		sum += float64(hits[i]) * float64(hits[i-1])
	}
	return sum / float64(n)
}

func sampleWindow(bin *imaging.BinaryImage, cx, cy, radius int) (active, total int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			total++
			if bin.Get(cx+dx, cy+dy) {
				active++
			}
		}
	}
	return active, total
}

// Best tests every candidate size from all four corners and returns the
// one with the highest score, provided it exceeds threshold.
func Best(bin *imaging.BinaryImage, corners [4]struct{ X, Y float64 }, threshold float64, windowRadius int) (Candidate, bool) {
	return BestInSizes(bin, corners, AllSizes(), threshold, windowRadius)
}

// BestInSizes is Best restricted to a caller-supplied candidate size list,
// letting callers bound the search to a min/max grid dimension range
// without re-deriving AllSizes' filtering themselves.
func BestInSizes(bin *imaging.BinaryImage, corners [4]struct{ X, Y float64 }, sizes []Size, threshold float64, windowRadius int) (Candidate, bool) {
	var best Candidate
	found := false
	for _, size := range sizes {
		for c := CornerTopLeft; c <= CornerBottomLeft; c++ {
			a, b := adjacentCorners(corners, c)
			prev := corners[(int(c)+3)%4]
			// Corners run TL, TR, BR, BL: from an even corner the side to
			// the next corner is horizontal (DimX cells), else vertical.
			nNext, nPrev := size.DimX, size.DimY
			if c%2 == 1 {
				nNext, nPrev = size.DimY, size.DimX
			}
			score := (Score(bin, a.X, a.Y, b.X, b.Y, nNext, windowRadius) +
				Score(bin, a.X, a.Y, prev.X, prev.Y, nPrev, windowRadius)) / 2
			if score > threshold && (!found || score > best.Score) {
				best = Candidate{Size: size, Corner: c, Score: score}
				found = true
			}
		}
	}
	return best, found
}

func adjacentCorners(corners [4]struct{ X, Y float64 }, c Corner) (struct{ X, Y float64 }, struct{ X, Y float64 }) {
	next := (int(c) + 1) % 4
	return corners[c], corners[next]
}
