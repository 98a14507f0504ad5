// Package perimeter fits a four-sided quadrilateral around a chain
// cluster: orientation estimation, side assignment, RANSAC line fitting,
// and vertex intersection, with validation and a degenerate-case fallback.
package perimeter

import (
	"math"

	"github.com/lmars/dm200/imaging"
	"github.com/lmars/dm200/segment"
)

// Point is a floating-point image coordinate.
type Point struct{ X, Y float64 }

// Perimeter is the detected quadrilateral, canonically ordered P0 (top
// left) .. P3 (bottom left), with "top-left" meaning the vertex with the
// smallest x+y.
type Perimeter struct {
	P0, P1, P2, P3 Point
}

// Line is a fitted side in normal form: ax + by = c, with (a,b) a unit
// normal vector.
type Line struct {
	A, B, C float64
}

// side indices
const (
	sideTop = iota
	sideRight
	sideBottom
	sideLeft
	numSides
)

// Fit computes the perimeter of the given chain cluster. maxDeviation
// bounds RANSAC inlier distance; q is the orientation histogram bucket
// width in degrees.
func Fit(chain *segment.Chain, q float64, maxDeviation float64) (*Perimeter, bool) {
	pts := chain.Points
	if len(pts) < 8 {
		return nil, false
	}

	theta := orientation(pts, q)
	sides := assignSides(pts, theta)

	lines := make([]*Line, numSides)
	populated := 0
	for s := 0; s < numSides; s++ {
		if len(sides[s]) >= 2 {
			lines[s] = ransacLine(sides[s], maxDeviation)
			if lines[s] != nil {
				populated++
			}
		}
	}

	if populated == numSides {
		p, ok := intersectQuad(lines)
		if !ok {
			return nil, false
		}
		return p, validate(p)
	}

	// Degenerate fallback: need at least two adjacent well-populated sides.
	for s := 0; s < numSides; s++ {
		next := (s + 1) % numSides
		if lines[s] != nil && lines[next] != nil {
			p := fallbackQuad(lines[s], lines[next], s, next, sides, pts)
			if p != nil {
				return p, validate(p)
			}
		}
	}
	return nil, false
}

// orientation buckets the angle from each chain point to the point k=5
// positions earlier into a histogram of 360/q buckets of q degrees each
// (mirrored at 180°), and returns the peak bucket's centre angle in radians.
func orientation(pts []segment.Point, q float64) float64 {
	if q <= 0 {
		q = 5
	}
	buckets := int(360 / q)
	hist := make([]int, buckets)
	k := 5
	for i := k; i < len(pts); i++ {
		dx := float64(pts[i].X - pts[i-k].X)
		dy := float64(pts[i].Y - pts[i-k].Y)
		if dx == 0 && dy == 0 {
			continue
		}
		ang := math.Atan2(dy, dx) * 180 / math.Pi
		if ang < 0 {
			ang += 360
		}
		b := int(ang/q) % buckets
		hist[b]++
	}
	best, bestCount := 0, -1
	for b := 0; b < buckets; b++ {
		mirrored := (b + buckets/2) % buckets
		total := hist[b] + hist[mirrored]
		if total > bestCount {
			bestCount = total
			best = b
		}
	}
	return (float64(best)+0.5)*q*math.Pi/180
}

// assignSides projects every point onto two separator lines through the
// centroid, oriented at theta and theta+90, and buckets by the sign of the
// signed perpendicular distances.
func assignSides(pts []segment.Point, theta float64) [numSides][]segment.Point {
	var cx, cy float64
	for _, p := range pts {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	ux, uy := math.Cos(theta), math.Sin(theta)
	vx, vy := -uy, ux

	var out [numSides][]segment.Point
	for _, p := range pts {
		dx, dy := float64(p.X)-cx, float64(p.Y)-cy
		d1 := dx*ux + dy*uy
		d2 := dx*vx + dy*vy
		switch {
		case d2 <= 0 && math.Abs(d2) >= math.Abs(d1):
			out[sideTop] = append(out[sideTop], p)
		case d1 >= 0 && math.Abs(d1) > math.Abs(d2):
			out[sideRight] = append(out[sideRight], p)
		case d2 >= 0 && math.Abs(d2) >= math.Abs(d1):
			out[sideBottom] = append(out[sideBottom], p)
		default:
			out[sideLeft] = append(out[sideLeft], p)
		}
	}
	return out
}

// ransacLine fits a line to pts: a baseline from two sampled points,
// scored by the count of points within maxDeviation (ties broken by summed
// deviation), refined by moving the line, direction unchanged, through the
// centroid of its inliers.
func ransacLine(pts []segment.Point, maxDeviation float64) *Line {
	if len(pts) < 2 {
		return nil
	}
	best := fitThrough(pts[0], pts[len(pts)-1])
	bestScore, bestDev := countInliers(best, pts, maxDeviation)

	step := len(pts) / 8
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(pts); i += step {
		for j := i + step; j < len(pts); j += step {
			cand := fitThrough(pts[i], pts[j])
			score, dev := countInliers(cand, pts, maxDeviation)
			if score > bestScore || (score == bestScore && dev < bestDev) {
				best, bestScore, bestDev = cand, score, dev
			}
		}
	}

	return refine(best, pts, maxDeviation)
}

func fitThrough(a, b segment.Point) *Line {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		norm = 1
	}
	// normal is perpendicular to (dx,dy)
	nx, ny := -dy/norm, dx/norm
	c := nx*float64(a.X) + ny*float64(a.Y)
	return &Line{A: nx, B: ny, C: c}
}

func (l *Line) distance(p segment.Point) float64 {
	return l.A*float64(p.X) + l.B*float64(p.Y) - l.C
}

func countInliers(l *Line, pts []segment.Point, maxDeviation float64) (count int, sumDev float64) {
	for _, p := range pts {
		d := math.Abs(l.distance(p))
		if d <= maxDeviation {
			count++
			sumDev += d
		}
	}
	return count, sumDev
}

func refine(l *Line, pts []segment.Point, maxDeviation float64) *Line {
	var sx, sy, n float64
	for _, p := range pts {
		if math.Abs(l.distance(p)) <= maxDeviation {
			sx += float64(p.X)
			sy += float64(p.Y)
			n++
		}
	}
	if n < 2 {
		return l
	}
	// keep the same normal direction, recompute offset through the inlier
	// centroid for stability.
	c := l.A*(sx/n) + l.B*(sy/n)
	return &Line{A: l.A, B: l.B, C: c}
}

func intersect(l1, l2 *Line) (Point, bool) {
	det := l1.A*l2.B - l2.A*l1.B
	if math.Abs(det) < 1e-9 {
		return Point{}, false
	}
	x := (l1.C*l2.B - l2.C*l1.B) / det
	y := (l1.A*l2.C - l2.A*l1.C) / det
	return Point{x, y}, true
}

func intersectQuad(lines []*Line) (*Perimeter, bool) {
	v := make([]Point, numSides)
	for s := 0; s < numSides; s++ {
		p, ok := intersect(lines[s], lines[(s+1)%numSides])
		if !ok {
			return nil, false
		}
		v[s] = p
	}
	return orderVertices(v), true
}

// orderVertices assigns P0..P3 by smallest-(x+y) rotation of the vertex
// list, preserving the cyclic (clockwise or counter-clockwise) order the
// caller supplied.
func orderVertices(v []Point) *Perimeter {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i].X+v[i].Y < v[best].X+v[best].Y {
			best = i
		}
	}
	rot := make([]Point, 4)
	for i := 0; i < 4; i++ {
		rot[i] = v[(best+i)%4]
	}
	return &Perimeter{P0: rot[0], P1: rot[1], P2: rot[2], P3: rot[3]}
}

func fallbackQuad(l1, l2 *Line, s1, s2 int, sides [numSides][]segment.Point, all []segment.Point) *Perimeter {
	corner, ok := intersect(l1, l2)
	if !ok {
		return nil
	}
	// drop orthogonal lines from the outermost inlier on each populated
	// side, intersecting to fill the remaining two vertices, and
	// interpolate the last vertex through the centroid.
	out1 := outermost(sides[s1], corner)
	out2 := outermost(sides[s2], corner)

	perp1 := &Line{A: l1.B, B: -l1.A, C: l1.B*float64(out1.X) - l1.A*float64(out1.Y)}
	perp2 := &Line{A: l2.B, B: -l2.A, C: l2.B*float64(out2.X) - l2.A*float64(out2.Y)}

	v1, ok1 := intersect(l2, perp1)
	v2, ok2 := intersect(l1, perp2)
	if !ok1 || !ok2 {
		return nil
	}

	var cx, cy float64
	for _, p := range all {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	cx /= float64(len(all))
	cy /= float64(len(all))
	v4 := Point{2*cx - corner.X, 2*cy - corner.Y}

	return orderVertices([]Point{corner, v1, v4, v2})
}

func outermost(pts []segment.Point, from Point) segment.Point {
	best := pts[0]
	bestD := -1.0
	for _, p := range pts {
		dx, dy := float64(p.X)-from.X, float64(p.Y)-from.Y
		d := dx*dx + dy*dy
		if d > bestD {
			bestD = d
			best = p
		}
	}
	return best
}

// validate checks corner angles (70-110 degrees) and aspect ratio
// (near-square 80-120%, or one of the six permitted rectangle ratios
// within +/-10%).
func validate(p *Perimeter) bool {
	corners := []Point{p.P0, p.P1, p.P2, p.P3}
	for i := 0; i < 4; i++ {
		prev := corners[(i+3)%4]
		cur := corners[i]
		next := corners[(i+1)%4]
		a1x, a1y := prev.X-cur.X, prev.Y-cur.Y
		a2x, a2y := next.X-cur.X, next.Y-cur.Y
		dot := a1x*a2x + a1y*a2y
		n1 := math.Hypot(a1x, a1y)
		n2 := math.Hypot(a2x, a2y)
		if n1 == 0 || n2 == 0 {
			return false
		}
		cos := dot / (n1 * n2)
		cos = math.Max(-1, math.Min(1, cos))
		angle := math.Acos(cos) * 180 / math.Pi
		if angle < 70 || angle > 110 {
			return false
		}
	}

	side1 := math.Hypot(p.P1.X-p.P0.X, p.P1.Y-p.P0.Y)
	side2 := math.Hypot(p.P2.X-p.P1.X, p.P2.Y-p.P1.Y)
	if side1 == 0 || side2 == 0 {
		return false
	}
	ratio := side1 / side2
	if ratio < 1 {
		ratio = 1 / ratio
	}
	if ratio >= 0.80/1.0 && ratio <= 1.20 {
		return true
	}
	for _, permitted := range permittedRectangleRatios {
		if ratio >= permitted*0.9 && ratio <= permitted*1.1 {
			return true
		}
	}
	return false
}

// permittedRectangleRatios are the long/short side ratios of the six ECC
// 200 rectangular sizes (8x18, 8x32, 12x26, 12x36, 16x36, 16x48).
var permittedRectangleRatios = []float64{18.0 / 8, 32.0 / 8, 26.0 / 12, 36.0 / 12, 36.0 / 16, 48.0 / 16}

// ShrinkInward moves each vertex toward the centroid by the given number of
// pixels, undoing morphological dilation/erosion expansion.
func ShrinkInward(p *Perimeter, pixels float64) *Perimeter {
	cx := (p.P0.X + p.P1.X + p.P2.X + p.P3.X) / 4
	cy := (p.P0.Y + p.P1.Y + p.P2.Y + p.P3.Y) / 4
	shrink := func(v Point) Point {
		dx, dy := cx-v.X, cy-v.Y
		n := math.Hypot(dx, dy)
		if n == 0 {
			return v
		}
		return Point{v.X + dx/n*pixels, v.Y + dy/n*pixels}
	}
	return &Perimeter{P0: shrink(p.P0), P1: shrink(p.P1), P2: shrink(p.P2), P3: shrink(p.P3)}
}

// ExpandSides walks outward from each side's midpoint along its normal and
// translates the side outward up to maxExtensionPercent of its length, as
// far as the perpendicular line of that length still crosses no
// foreground pixel.
func ExpandSides(p *Perimeter, bin *imaging.BinaryImage, maxExtensionPercent float64) *Perimeter {
	sidesPts := [4][2]Point{{p.P0, p.P1}, {p.P1, p.P2}, {p.P2, p.P3}, {p.P3, p.P0}}
	var newLines [4]*Line
	for s, pair := range sidesPts {
		length := math.Hypot(pair[1].X-pair[0].X, pair[1].Y-pair[0].Y)
		nx, ny := normal(pair[0], pair[1])
		maxOffset := length * maxExtensionPercent / 100
		offset := 0.0
		for step := 1.0; step <= maxOffset; step++ {
			mx := (pair[0].X+pair[1].X)/2 + nx*step
			my := (pair[0].Y+pair[1].Y)/2 + ny*step
			if crossesForeground(bin, mx, my, nx, ny, length) {
				break
			}
			offset = step
		}
		c := nx*(pair[0].X+offset*nx) + ny*(pair[0].Y+offset*ny)
		newLines[s] = &Line{A: nx, B: ny, C: c}
	}
	out, ok := intersectQuad(newLines[:])
	if !ok {
		return p
	}
	return out
}

// ContractSides walks inward from the 1/4 and 3/4 positions of each side
// until the first foreground pixel, recomposing the quadrilateral from the
// contracted sides.
func ContractSides(p *Perimeter, bin *imaging.BinaryImage, maxSteps int) *Perimeter {
	sidesPts := [4][2]Point{{p.P0, p.P1}, {p.P1, p.P2}, {p.P2, p.P3}, {p.P3, p.P0}}
	var newLines [4]*Line
	for s, pair := range sidesPts {
		nx, ny := normal(pair[0], pair[1])
		q1 := lerp(pair[0], pair[1], 0.25)
		q2 := lerp(pair[0], pair[1], 0.75)
		d1 := walkToForeground(bin, q1, nx, ny, maxSteps)
		d2 := walkToForeground(bin, q2, nx, ny, maxSteps)
		avg := (d1 + d2) / 2
		c := nx*(q1.X+avg*nx) + ny*(q1.Y+avg*ny)
		newLines[s] = &Line{A: nx, B: ny, C: c}
	}
	out, ok := intersectQuad(newLines[:])
	if !ok {
		return p
	}
	return out
}

func normal(a, b Point) (nx, ny float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return 0, 0
	}
	return -dy / n, dx / n
}

func lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

func crossesForeground(bin *imaging.BinaryImage, mx, my, nx, ny, length float64) bool {
	half := length / 2
	steps := int(length)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := -half + float64(i)*length/float64(steps)
		x := int(mx - ny*t)
		y := int(my + nx*t)
		if bin.Get(x, y) {
			return true
		}
	}
	return false
}

func walkToForeground(bin *imaging.BinaryImage, from Point, nx, ny float64, maxSteps int) float64 {
	for step := 0; step <= maxSteps; step++ {
		x := int(from.X + nx*float64(step))
		y := int(from.Y + ny*float64(step))
		if bin.Get(x, y) {
			return float64(step)
		}
	}
	return 0
}
