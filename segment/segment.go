// Package segment traces the binary edge map produced by canny into
// 8-connected polyline chains, filters and joins them, so that perimeter
// fitting has a ranked list of chain clusters to work from.
package segment

import (
	"sort"

	"github.com/lmars/dm200/imaging"
)

// Point is an image-coordinate pixel.
type Point struct {
	X, Y int
}

// JoinKind describes how two chain endpoints were fused.
type JoinKind int

const (
	JoinNone JoinKind = iota
	JoinStartStart
	JoinEndStart
	JoinStartEnd
	JoinEndEnd
)

// Chain is one traced edge polyline.
type Chain struct {
	Points       []Point
	JoinedLength int // cumulative length over its transitively joined cluster
}

// Start returns the chain's first point.
func (c *Chain) Start() Point { return c.Points[0] }

// End returns the chain's last point.
func (c *Chain) End() Point { return c.Points[len(c.Points)-1] }

// ChainSet is the traced, filtered, and joined collection of chains plus
// their join adjacency matrix.
type ChainSet struct {
	Chains []*Chain
	Joins  [][]JoinKind
}

var neighbourOffsets = [8]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Trace scans edges top-to-bottom, starting a new chain at every unvisited
// edge pixel and greedily stepping to any still-unvisited 8-neighbour that
// is also an edge pixel.
func Trace(edges *imaging.BinaryImage, minSegmentLength int) []*Chain {
	visited := make([]bool, edges.Width*edges.Height)
	var chains []*Chain

	for y := 0; y < edges.Height; y++ {
		for x := 0; x < edges.Width; x++ {
			idx := y*edges.Width + x
			if visited[idx] || !edges.Get(x, y) {
				continue
			}
			chain := walkChain(edges, visited, x, y)
			if len(chain.Points) >= minSegmentLength {
				chains = append(chains, chain)
			}
		}
	}
	return chains
}

func walkChain(edges *imaging.BinaryImage, visited []bool, startX, startY int) *Chain {
	chain := &Chain{Points: []Point{{startX, startY}}}
	visited[startY*edges.Width+startX] = true
	cx, cy := startX, startY
	for {
		found := false
		for _, off := range neighbourOffsets {
			nx, ny := cx+off.X, cy+off.Y
			if nx < 0 || nx >= edges.Width || ny < 0 || ny >= edges.Height {
				continue
			}
			nidx := ny*edges.Width + nx
			if visited[nidx] || !edges.Get(nx, ny) {
				continue
			}
			visited[nidx] = true
			chain.Points = append(chain.Points, Point{nx, ny})
			cx, cy = nx, ny
			found = true
			break
		}
		if !found {
			break
		}
	}
	return chain
}

// FilterROI discards points outside a central circular region of the given
// radius (in pixels) around the image centre, from every chain. Chains left
// empty are dropped.
func FilterROI(chains []*Chain, centerX, centerY, radius int) []*Chain {
	r2 := radius * radius
	var out []*Chain
	for _, c := range chains {
		var pts []Point
		for _, p := range c.Points {
			dx, dy := p.X-centerX, p.Y-centerY
			if dx*dx+dy*dy <= r2 {
				pts = append(pts, p)
			}
		}
		if len(pts) > 0 {
			out = append(out, &Chain{Points: pts})
		}
	}
	return out
}

// Join runs increasing-radius join passes: for every pair of chains and
// every pair of their endpoints, if the squared distance is within radius²
// and no join exists yet between them, the join is recorded. Each chain's
// JoinedLength accumulates over its transitively joined cluster, and the
// returned ChainSet is sorted by JoinedLength, longest first.
func Join(chains []*Chain, maxRadius int) *ChainSet {
	n := len(chains)
	joins := make([][]JoinKind, n)
	for i := range joins {
		joins[i] = make([]JoinKind, n)
	}

	for radius := 1; radius <= maxRadius; radius++ {
		r2 := radius * radius
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if joins[i][j] != JoinNone {
					continue
				}
				kind := bestJoin(chains[i], chains[j], r2)
				if kind != JoinNone {
					joins[i][j] = kind
					joins[j][i] = kind
				}
			}
		}
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if joins[i][j] != JoinNone {
				union(i, j)
			}
		}
	}

	clusterLength := make(map[int]int)
	for i, c := range chains {
		clusterLength[find(i)] += len(c.Points)
	}
	for i, c := range chains {
		c.JoinedLength = clusterLength[find(i)]
	}

	sorted := append([]*Chain(nil), chains...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].JoinedLength > sorted[b].JoinedLength
	})

	return &ChainSet{Chains: sorted, Joins: joins}
}

func bestJoin(a, b *Chain, r2 int) JoinKind {
	if sqDist(a.Start(), b.Start()) <= r2 {
		return JoinStartStart
	}
	if sqDist(a.End(), b.Start()) <= r2 {
		return JoinEndStart
	}
	if sqDist(a.Start(), b.End()) <= r2 {
		return JoinStartEnd
	}
	if sqDist(a.End(), b.End()) <= r2 {
		return JoinEndEnd
	}
	return JoinNone
}

func sqDist(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
