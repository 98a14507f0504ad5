package grid

// Orient mirrors/flips the grid so the solid L-finder lands on column 0 and
// row dimY-1, and the alternating timing border lands on column dimX-1 and
// row 0. It tries the 8 plane symmetries of the sampled matrix (4 rotations
// x optional mirror) and keeps whichever maximises the combined
// solid+alternating score on those four borders. Orientation is idempotent:
// once canonical, the identity symmetry already scores highest.
func (g *Grid) Orient() {
	best := g.cloneState()
	bestScore := score(best.Occupancy)

	for _, mirror := range []bool{false, true} {
		occ := g.Occupancy
		dam := g.Damage
		if mirror {
			occ = mirrorX(occ)
			dam = mirrorX(dam)
		}
		for rot := 0; rot < 4; rot++ {
			s := score(occ)
			if s > bestScore {
				bestScore = s
				best = gridState{DimX: len(occ[0]), DimY: len(occ), Occupancy: occ, Damage: dam}
			}
			occ = rotate90(occ)
			dam = rotate90(dam)
		}
	}

	g.DimX = best.DimX
	g.DimY = best.DimY
	g.Occupancy = best.Occupancy
	g.Damage = best.Damage
}

// ForceFixedPattern overwrites the solid and timing borders with their
// canonical values, to be called once the grid is oriented and before
// decoding: column 0 and row dimY-1 become fully set, row 0 alternates
// starting set at column 0, and column dimX-1 alternates starting set at
// row dimY-1 (where it meets the solid bottom row).
func (g *Grid) ForceFixedPattern() {
	for y := 0; y < g.DimY; y++ {
		g.Occupancy[y][0] = true
		g.Damage[y][0] = false
	}
	for x := 0; x < g.DimX; x++ {
		g.Occupancy[g.DimY-1][x] = true
		g.Damage[g.DimY-1][x] = false
	}
	for y := 0; y < g.DimY; y++ {
		g.Occupancy[y][g.DimX-1] = (g.DimY-1-y)%2 == 0
		g.Damage[y][g.DimX-1] = false
	}
	for x := 0; x < g.DimX; x++ {
		g.Occupancy[0][x] = x%2 == 0
		g.Damage[0][x] = false
	}
}

type gridState struct {
	DimX, DimY int
	Occupancy  [][]bool
	Damage     [][]bool
}

func (g *Grid) cloneState() gridState {
	return gridState{DimX: g.DimX, DimY: g.DimY, Occupancy: g.Occupancy, Damage: g.Damage}
}

// score rewards occupancy matrices whose column 0 and bottom row are fully
// set and whose column (width-1) and top row alternate with period 2.
func score(occ [][]bool) float64 {
	h := len(occ)
	w := len(occ[0])
	var s float64
	for y := 0; y < h; y++ {
		if occ[y][0] {
			s++
		}
	}
	for x := 0; x < w; x++ {
		if occ[h-1][x] {
			s++
		}
	}
	s += alternatingScore(colOf(occ, w-1))
	s += alternatingScore(occ[0])
	return s
}

func colOf(occ [][]bool, x int) []bool {
	col := make([]bool, len(occ))
	for y := range occ {
		col[y] = occ[y][x]
	}
	return col
}

func alternatingScore(line []bool) float64 {
	var s0, s1 float64
	for i, v := range line {
		want := i%2 == 0
		if v == want {
			s0++
		} else {
			s1++
		}
	}
	if s0 > s1 {
		return s0
	}
	return s1
}

func mirrorX(m [][]bool) [][]bool {
	h := len(m)
	w := len(m[0])
	out := make([][]bool, h)
	for y := 0; y < h; y++ {
		out[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			out[y][x] = m[y][w-1-x]
		}
	}
	return out
}

// rotate90 rotates the matrix 90 degrees clockwise, swapping dimensions.
func rotate90(m [][]bool) [][]bool {
	h := len(m)
	w := len(m[0])
	out := make([][]bool, w)
	for y := 0; y < w; y++ {
		out[y] = make([]bool, h)
		for x := 0; x < h; x++ {
			out[y][x] = m[h-1-x][y]
		}
	}
	return out
}
