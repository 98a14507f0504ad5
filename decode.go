// Package dm200 decodes Data Matrix ECC 200 symbols from raster images.
// Decode explores a small grid of preprocessing configurations in
// parallel (spec.md §5) and returns the first non-empty decode, or
// ErrNotFound if none of them produced one.
package dm200

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/lmars/dm200/datamatrix"
	"github.com/lmars/dm200/grid"
	"github.com/lmars/dm200/imaging"
	"github.com/lmars/dm200/quality"
	"github.com/lmars/dm200/timing"
)

// meanlightPcts, erodeDilatePairs, and samplingRadii are the
// preprocessing grid spec.md §5 names explicitly: meanlight thresholds,
// erode/dilate iteration pairs, and sampling radii.
var meanlightPcts = []float64{40, 50, 60}

type erodeDilate struct{ erode, dilate int }

var erodeDilatePairs = []erodeDilate{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

var samplingRadii = []int{0, 1, 2}

type preprocessConfig struct {
	meanlightPct float64
	ed           erodeDilate
	radius       int
}

func preprocessGrid() []preprocessConfig {
	configs := make([]preprocessConfig, 0, len(meanlightPcts)*len(erodeDilatePairs)*len(samplingRadii))
	for _, pct := range meanlightPcts {
		for _, ed := range erodeDilatePairs {
			for _, r := range samplingRadii {
				configs = append(configs, preprocessConfig{meanlightPct: pct, ed: ed, radius: r})
			}
		}
	}
	return configs
}

// Decode reads a Data Matrix symbol from a raw pixel buffer. bitsPerPixel
// must be 8 (grey), 24 (RGB), or 32 (RGBA); width*height*bitsPerPixel/8
// must equal len(pixels).
func Decode(pixels []byte, width, height, bitsPerPixel int, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidImage
	}
	img, ok := buildImage(pixels, width, height, bitsPerPixel)
	if !ok {
		return nil, ErrInvalidImage
	}
	grey := imaging.ToGrey(img)

	sizes := sizesInRange(cfg.MinGridDimension, cfg.MaxGridDimension)
	window := cfg.SamplingWindow
	radius := cfg.SamplingRadius

	configs := preprocessGrid()
	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > 12 {
		workers = 12
	}
	if workers < 1 {
		workers = 1
	}

	var found atomic.Bool
	results := make([]*datamatrix.Outcome, len(configs))

	jobs := make(chan int, len(configs))
	for i := range configs {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if found.Load() {
					return
				}
				pc := configs[i]
				outcome := attemptDecode(grey, pc, sizes, window, radius, cfg)
				if outcome != nil && outcome.Text != "" {
					results[i] = outcome
					found.Store(true)
					return
				}
			}
		}()
	}
	wg.Wait()

	for _, outcome := range results {
		if outcome != nil {
			result := newResult(outcome)
			if cfg.ComputeQuality {
				result.Quality = computeQuality(outcome)
			}
			return result, nil
		}
	}
	return nil, ErrNotFound
}

func attemptDecode(grey *imaging.Image, pc preprocessConfig, sizes []timing.Size, window grid.SamplingWindow, radius int, cfg Config) *datamatrix.Outcome {
	dark, light := imaging.DarkLight(grey, 4, 10)
	bin := imaging.MeanlightThreshold(grey, dark, light, pc.meanlightPct)
	if pc.ed.erode > 0 {
		bin = imaging.Erode(bin, pc.ed.erode)
	}
	if pc.ed.dilate > 0 {
		bin = imaging.Dilate(bin, pc.ed.dilate)
	}

	opts := datamatrix.DefaultOptions()
	opts.Sizes = sizes
	opts.SamplingWindow = window
	if radius > 0 {
		opts.SamplingRadius = radius
	} else {
		opts.SamplingRadius = pc.radius
	}
	opts.HumanReadable = cfg.HumanReadable
	opts.GS1URLPrefix = cfg.GS1URLPrefix

	outcome, err := datamatrix.Decode(grey, bin, dark, light, opts)
	if err != nil {
		return nil
	}
	return outcome
}

func sizesInRange(min, max int) []timing.Size {
	if min == 0 && max == 0 {
		return nil
	}
	lo, hi := min, max
	if lo == 0 {
		lo = 8
	}
	if hi == 0 {
		hi = 144
	}
	all := timing.AllSizes()
	filtered := make([]timing.Size, 0, len(all))
	for _, s := range all {
		longest := s.DimX
		if s.DimY > longest {
			longest = s.DimY
		}
		shortest := s.DimX
		if s.DimY < shortest {
			shortest = s.DimY
		}
		if shortest >= lo && longest <= hi {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// buildImage interprets a raw pixel buffer per spec.md §6.2's
// bits-per-pixel contract: 8-bit grey, 24-bit packed RGB, or 32-bit
// packed RGBA (alpha dropped, since dm200 never composites).
func buildImage(pixels []byte, width, height, bitsPerPixel int) (*imaging.Image, bool) {
	switch bitsPerPixel {
	case 8:
		if len(pixels) != width*height {
			return nil, false
		}
		img := imaging.NewImage(width, height, 1)
		copy(img.Pix, pixels)
		return img, true
	case 24:
		if len(pixels) != width*height*3 {
			return nil, false
		}
		img := imaging.NewImage(width, height, 3)
		copy(img.Pix, pixels)
		return img, true
	case 32:
		if len(pixels) != width*height*4 {
			return nil, false
		}
		img := imaging.NewImage(width, height, 3)
		for i := 0; i < width*height; i++ {
			img.Pix[i*3] = pixels[i*4]
			img.Pix[i*3+1] = pixels[i*4+1]
			img.Pix[i*3+2] = pixels[i*4+2]
		}
		return img, true
	default:
		return nil, false
	}
}

func computeQuality(o *datamatrix.Outcome) *quality.Metrics {
	g := o.Grid
	refl := make([][]float64, len(g.Occupancy))
	for y, row := range g.Occupancy {
		refl[y] = make([]float64, len(row))
		for x, on := range row {
			if on {
				refl[y][x] = 0
			} else {
				refl[y][x] = 1
			}
		}
	}
	m := quality.Evaluate(quality.Input{
		ModuleReflectance: refl,
		GlobalThreshold:   0.5,
		ShortSide:         float64(g.DimX),
		LongSide:          float64(g.DimY),
		RSNRoots:          o.Size.Parity,
		RSErrors:          o.Errors,
		RSErasures:        o.Erasures,
	})
	return &m
}
