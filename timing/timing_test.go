package timing

import (
	"testing"

	"github.com/lmars/dm200/imaging"
)

func TestAllSizesHasExpectedCounts(t *testing.T) {
	if len(Squares) != 24 {
		t.Fatalf("expected 24 square sizes, got %d", len(Squares))
	}
	if len(Rectangles) != 6 {
		t.Fatalf("expected 6 rectangle sizes, got %d", len(Rectangles))
	}
	if len(AllSizes()) != 30 {
		t.Fatalf("expected 30 total sizes, got %d", len(AllSizes()))
	}
}

func TestScoreHigherForAlternatingPattern(t *testing.T) {
	bin := imaging.NewBinaryImage(20, 20)
	for i := 1; i < 20; i += 2 {
		bin.Set(i, 5, true)
	}
	alternating := Score(bin, 0, 5, 19, 5, 20, 0)
	bin2 := imaging.NewBinaryImage(20, 20)
	flat := Score(bin2, 0, 5, 19, 5, 20, 0)
	if alternating <= flat {
		t.Fatalf("expected alternating pattern to score higher: alt=%v flat=%v", alternating, flat)
	}
}

func TestBestInSizesRestrictsCandidates(t *testing.T) {
	bin := imaging.NewBinaryImage(20, 20)
	for i := 0; i < 20; i++ {
		bin.Set(i, 0, i%2 == 0)
		bin.Set(0, i, i%2 == 0)
	}
	corners := [4]struct{ X, Y float64 }{
		{0, 0}, {19, 0}, {19, 19}, {0, 19},
	}
	restricted := []Size{{10, 10, 5}}
	best, found := BestInSizes(bin, corners, restricted, 0, 0)
	if !found {
		t.Fatalf("expected a match within the restricted size list")
	}
	if best.Size != restricted[0] {
		t.Fatalf("expected the only candidate size to win, got %+v", best.Size)
	}
}
