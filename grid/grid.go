// Package grid reconstructs the module grid from a fitted perimeter:
// sampling module centres, canonical orientation, and block condensation
// for large symbols.
package grid

import (
	"github.com/lmars/dm200/imaging"
	"github.com/lmars/dm200/perimeter"
	"github.com/lmars/dm200/transform"
)

// Grid holds the sampled module matrix and what decoding records on it:
// occupancy, damage, and the raw/corrected codeword bytes.
type Grid struct {
	DimX, DimY int

	// Occupancy[y][x] is the sampled module state, true = dark/set.
	Occupancy [][]bool
	// Damage[y][x] marks ambiguous modules (erasure candidates).
	Damage [][]bool

	Perimeter *perimeter.Perimeter

	// CodewordPattern[y][x] is -1 for finder/timing cells, else the
	// codeword index this module belongs to. The decode pipeline leaves
	// CodewordPattern and BitPosition nil; the module-to-codeword mapping
	// it uses is placement.Table.
	CodewordPattern [][]int
	BitPosition     [][]int // companion bit position 1..8, valid where CodewordPattern >= 0

	Codeword          []byte
	CorrectedCodeword []byte

	Quality Quality
}

// Quality holds ISO/IEC 15415-style print-quality fields. The decode
// pipeline does not fill it; requested metrics are reported on the root
// package's Result.Quality instead.
type Quality struct {
	Computed bool
	Grade    int // 0..4, overall
}

// New allocates a Grid for the given module dimensions.
func New(dimX, dimY int, p *perimeter.Perimeter) *Grid {
	g := &Grid{DimX: dimX, DimY: dimY, Perimeter: p}
	g.Occupancy = make([][]bool, dimY)
	g.Damage = make([][]bool, dimY)
	for y := range g.Occupancy {
		g.Occupancy[y] = make([]bool, dimX)
		g.Damage[y] = make([]bool, dimX)
	}
	return g
}

// SamplingWindow selects the solid (filled square) or ring (border-only)
// sampling pattern for each module.
type SamplingWindow int

const (
	WindowSolid SamplingWindow = iota
	WindowRing
)

// Sample inverse-maps every module centre through the quadrilateral and
// samples a window against the binary image, thresholding to occupancy and
// marking damage where coverage is ambiguous (between 1 and samples/4
// foreground hits marks damaged; above samples/4 marks occupied).
func (g *Grid) Sample(bin *imaging.BinaryImage, radius int, window SamplingWindow) {
	p := g.Perimeter
	toQuad := transform.SquareToQuadrilateral(
		p.P0.X, p.P0.Y, p.P1.X, p.P1.Y, p.P2.X, p.P2.Y, p.P3.X, p.P3.Y,
	)

	for y := 0; y < g.DimY; y++ {
		for x := 0; x < g.DimX; x++ {
			u := (float64(x) + 0.5) / float64(g.DimX)
			v := (float64(y) + 0.5) / float64(g.DimY)
			pts := []float64{u, v}
			toQuad.TransformPoints(pts)
			cx, cy := int(pts[0]), int(pts[1])

			hits, total := sampleWindow(bin, cx, cy, radius, window)
			quarter := total / 4
			switch {
			case hits > quarter:
				g.Occupancy[y][x] = true
			case hits >= 1:
				g.Damage[y][x] = true
			}
		}
	}
}

func sampleWindow(bin *imaging.BinaryImage, cx, cy, radius int, window SamplingWindow) (hits, total int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if window == WindowRing {
				if dx != -radius && dx != radius && dy != -radius && dy != radius {
					continue
				}
			}
			total++
			if bin.Get(cx+dx, cy+dy) {
				hits++
			}
		}
	}
	return hits, total
}
