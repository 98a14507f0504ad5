package segment

import (
	"testing"

	"github.com/lmars/dm200/imaging"
)

func TestTraceFindsDiagonalChain(t *testing.T) {
	edges := imaging.NewBinaryImage(10, 10)
	for i := 0; i < 5; i++ {
		edges.Set(i, i, true)
	}
	chains := Trace(edges, 3)
	if len(chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(chains))
	}
	if len(chains[0].Points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(chains[0].Points))
	}
}

func TestJoinMergesNearbyChains(t *testing.T) {
	a := &Chain{Points: []Point{{0, 0}, {1, 1}, {2, 2}}}
	b := &Chain{Points: []Point{{3, 3}, {4, 4}}}
	set := Join([]*Chain{a, b}, 3)
	if set.Joins[0][1] == JoinNone {
		t.Fatalf("expected chains within radius to be joined")
	}
	if set.Chains[0].JoinedLength != 5 {
		t.Fatalf("expected joined length 5, got %d", set.Chains[0].JoinedLength)
	}
}

func TestFilterROIDropsOutsidePoints(t *testing.T) {
	c := &Chain{Points: []Point{{0, 0}, {5, 5}, {50, 50}}}
	out := FilterROI([]*Chain{c}, 5, 5, 10)
	if len(out) != 1 || len(out[0].Points) != 2 {
		t.Fatalf("expected 2 points retained, got %+v", out)
	}
}
