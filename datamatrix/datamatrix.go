// Package datamatrix runs a single Data Matrix ECC 200 decode attempt:
// edge detection, segmentation, perimeter fitting, timing/grid
// detection, codeword de-placement, Reed-Solomon correction, and
// byte-stream plus GS1/ISO 15434/HIBC decoding, over one preprocessed
// image. The root dm200 package drives many attempts in parallel over a
// grid of preprocessing configurations; this package knows nothing
// about that outer search.
package datamatrix

import (
	"errors"

	"github.com/lmars/dm200/bytestream"
	"github.com/lmars/dm200/canny"
	"github.com/lmars/dm200/gs1"
	"github.com/lmars/dm200/grid"
	"github.com/lmars/dm200/hibc"
	"github.com/lmars/dm200/imaging"
	"github.com/lmars/dm200/iso15434"
	"github.com/lmars/dm200/perimeter"
	"github.com/lmars/dm200/placement"
	"github.com/lmars/dm200/reedsolomon"
	"github.com/lmars/dm200/segment"
	"github.com/lmars/dm200/timing"
)

// ErrNoSymbol is returned when no plausible perimeter, timing pattern, or
// grid could be located in the image.
var ErrNoSymbol = errors.New("datamatrix: no symbol found")

// Options configures one decode attempt.
type Options struct {
	MinSegmentLength  int
	JoinRadius        int
	OrientationBucket float64 // degrees, perimeter's orientation histogram bucket width
	MaxDeviation      float64 // RANSAC inlier distance
	TimingThreshold   float64
	TimingWindow      int
	SamplingRadius    int
	SamplingWindow    grid.SamplingWindow

	// Sizes restricts the timing detector's candidate IEC 16022 sizes,
	// letting a caller bound the search to a min/max grid dimension
	// range (spec.md §6.2). Nil means "every valid size".
	Sizes []timing.Size

	HumanReadable  bool
	GS1URLPrefix   string
	ComputeQuality bool
}

// DefaultOptions returns reasonable defaults for a full-frame scan.
func DefaultOptions() Options {
	return Options{
		MinSegmentLength:  8,
		JoinRadius:        12,
		OrientationBucket: 2,
		MaxDeviation:      2,
		TimingThreshold:   0.5,
		TimingWindow:      1,
		SamplingRadius:    1,
		SamplingWindow:    grid.WindowSolid,
	}
}

// Outcome is the result of one successful decode attempt.
type Outcome struct {
	Text       string
	RawBytes   []byte
	Grid       *grid.Grid
	Size       timing.Size
	Errors     int
	Erasures   int
	IsGS1      bool
	IsStruct   bool
	IsISO15434 bool
	IsHIBC     bool
}

// Decode runs the full pipeline against a greyscale image (already
// oriented upright) whose binarisation has already been chosen by the
// caller: dark/light are the histogram endpoints used to binarise grey
// and to derive the canny thresholds, edges are detected on grey, and bin
// is the meanlight-thresholded binary image sampled for the timing
// pattern and the symbol grid.
func Decode(grey *imaging.Image, bin *imaging.BinaryImage, dark, light int, opts Options) (*Outcome, error) {
	edges := canny.Detect(grey, dark, light)

	chains := segment.Trace(edges, opts.MinSegmentLength)
	if len(chains) == 0 {
		return nil, ErrNoSymbol
	}
	joined := segment.Join(chains, opts.JoinRadius)
	best := bestChain(joined.Chains)
	if best == nil {
		return nil, ErrNoSymbol
	}

	p, ok := perimeter.Fit(best, opts.OrientationBucket, opts.MaxDeviation)
	if !ok {
		return nil, ErrNoSymbol
	}

	corners := [4]struct{ X, Y float64 }{
		{p.P0.X, p.P0.Y}, {p.P1.X, p.P1.Y}, {p.P2.X, p.P2.Y}, {p.P3.X, p.P3.Y},
	}
	sizes := opts.Sizes
	if sizes == nil {
		sizes = timing.AllSizes()
	}
	candidate, ok := timing.BestInSizes(bin, corners, sizes, opts.TimingThreshold, opts.TimingWindow)
	if !ok {
		return nil, ErrNoSymbol
	}

	g := grid.New(candidate.Size.DimX, candidate.Size.DimY, p)
	g.Sample(bin, opts.SamplingRadius, opts.SamplingWindow)
	g.Orient()
	g.ForceFixedPattern()

	workGrid := g
	blocks := grid.BlockCount(g.DimX)
	if blocks > 1 {
		workGrid = grid.Condense(g, blocks)
	}

	table := placement.Build(workGrid.DimX, workGrid.DimY)
	codewords, erasures := placement.ExtractCodewords(table, workGrid)

	nroots := candidate.Size.Parity
	dec := reedsolomon.NewDecoder(table.NumCodewords, nroots)
	corrected, err := dec.Decode(codewords, erasures)
	if err != nil {
		return nil, err
	}

	dataLen := table.NumCodewords - nroots
	if dataLen < 0 {
		dataLen = 0
	}
	data := codewords[:dataLen]

	state := bytestream.Decode(data)
	text := state.Text()

	outcome := &Outcome{
		Text:     text,
		RawBytes: []byte(text),
		Grid:     g,
		Size:     candidate.Size,
		Errors:   corrected,
		Erasures: len(erasures),
		IsGS1:    state.IsGS1,
		IsStruct: state.IsStructuredAppend,
	}

	if opts.HumanReadable {
		outcome.Text = humanReadable(text, state, opts, outcome)
	}

	g.Codeword = codewords
	g.CorrectedCodeword = data

	return outcome, nil
}

// humanReadable applies the HIBC / ISO 15434 / GS1 / raw precedence.
func humanReadable(text string, state *bytestream.DecodeState, opts Options, outcome *Outcome) string {
	if s, ok := hibc.Decode(text); ok {
		outcome.IsHIBC = true
		return s
	}
	if r, ok := iso15434.Parse(text); ok {
		outcome.IsISO15434 = true
		return r.Text
	}
	if state.IsGS1 {
		fields := gs1.Parse(text)
		if opts.GS1URLPrefix != "" {
			return gs1.DigitalLinkURL(opts.GS1URLPrefix, fields)
		}
		return gs1.HumanReadable(fields)
	}
	return text
}

// bestChain picks the chain with the greatest joined (transitively
// clustered) length, the one most likely to be a symbol's perimeter.
func bestChain(chains []*segment.Chain) *segment.Chain {
	var best *segment.Chain
	for _, c := range chains {
		if best == nil || c.JoinedLength > best.JoinedLength {
			best = c
		}
	}
	return best
}
