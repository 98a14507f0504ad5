package perimeter

import (
	"math"
	"testing"

	"github.com/lmars/dm200/imaging"
)

func squarePerimeter() *Perimeter {
	return &Perimeter{
		P0: Point{0, 0},
		P1: Point{10, 0},
		P2: Point{10, 10},
		P3: Point{0, 10},
	}
}

func TestValidateAcceptsSquare(t *testing.T) {
	if !validate(squarePerimeter()) {
		t.Fatalf("expected square perimeter to validate")
	}
}

func TestValidateRejectsSkewed(t *testing.T) {
	skewed := &Perimeter{
		P0: Point{0, 0},
		P1: Point{10, 0},
		P2: Point{15, 10},
		P3: Point{0, 10},
	}
	if validate(skewed) {
		t.Fatalf("expected skewed perimeter to fail validation")
	}
}

func TestShrinkInwardMovesTowardCentroid(t *testing.T) {
	p := squarePerimeter()
	shrunk := ShrinkInward(p, 1)
	if shrunk.P0.X <= p.P0.X || shrunk.P0.Y <= p.P0.Y {
		t.Fatalf("expected P0 to move toward centroid, got %+v", shrunk.P0)
	}
	d := math.Hypot(shrunk.P0.X-p.P0.X, shrunk.P0.Y-p.P0.Y)
	if math.Abs(d-1) > 1e-6 {
		t.Fatalf("expected shrink distance 1, got %v", d)
	}
}

func TestIntersectQuadRecoversSquare(t *testing.T) {
	lines := []*Line{
		{A: 0, B: -1, C: 0},   // top: y=0
		{A: 1, B: 0, C: 10},   // right: x=10
		{A: 0, B: -1, C: -10}, // bottom: y=10 (note sign flips orientation)
		{A: 1, B: 0, C: 0},    // left: x=0
	}
	p, ok := intersectQuad(lines)
	if !ok {
		t.Fatalf("expected successful intersection")
	}
	corners := []Point{p.P0, p.P1, p.P2, p.P3}
	for _, c := range corners {
		if (c.X != 0 && c.X != 10) || (c.Y != 0 && c.Y != 10) {
			t.Fatalf("unexpected corner %+v", c)
		}
	}
}

func TestExpandSidesNoForegroundIsNoOp(t *testing.T) {
	bin := imaging.NewBinaryImage(20, 20)
	p := squarePerimeter()
	out := ExpandSides(p, bin, 0)
	if out == nil {
		t.Fatalf("expected a perimeter")
	}
}
