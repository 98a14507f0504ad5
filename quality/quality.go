// Package quality computes ISO/IEC 15415-style print-quality metrics:
// each yields a percentage and a grade in 0..4, per the GS1 2D Barcode
// Verification Process Implementation Guideline tables.
package quality

import "github.com/lmars/dm200/reedsolomon"

// Grade is a verification grade in 0 (worst) to 4 (best).
type Grade int

// Input carries everything needed to compute the metrics; it is the
// caller's job to gather raw reflectance samples and geometry from the
// imaging/grid/perimeter stages, since quality metrics are computed only
// on request and must not burden the always-on decode path.
type Input struct {
	// ModuleReflectance is one averaged grey-level sample per module,
	// normalised to 0..1, laid out [row][col].
	ModuleReflectance [][]float64
	// GlobalThreshold is the meanlight binarisation cutoff used to
	// sample the symbol, normalised to 0..1.
	GlobalThreshold float64

	// CellOffset is each cell centroid's distance from its ideal grid
	// position, as a fraction of cell width, laid out [row][col].
	CellOffset [][]float64

	// ShortSide and LongSide are the fitted perimeter's shorter and
	// longer side lengths, for axial non-uniformity.
	ShortSide, LongSide float64

	// RSNRoots, RSErrors, and RSErasures describe the Reed-Solomon
	// decode that recovered the symbol's codewords.
	RSNRoots, RSErrors, RSErasures int

	// ClockTrackRegularity and FixedPatternDamage are supplied by the
	// caller (spec.md leaves their measurement external to this
	// package), each a percentage in 0..100.
	ClockTrackRegularity, FixedPatternDamage float64
}

// Metrics holds each computed percentage alongside its grade, plus the
// overall grade (the minimum of every component grade).
type Metrics struct {
	SymbolContrast        float64
	MinReflectance        float64
	Modulation            float64
	ContrastUniformity    float64
	AxialNonUniformity    float64
	GridNonUniformity     float64
	UnusedErrorCorrection float64
	ClockTrackRegularity  float64
	FixedPatternDamage    float64

	SymbolContrastGrade        Grade
	MinReflectanceGrade        Grade
	ModulationGrade            Grade
	ContrastUniformityGrade    Grade
	AxialNonUniformityGrade    Grade
	GridNonUniformityGrade     Grade
	UnusedErrorCorrectionGrade Grade
	ClockTrackRegularityGrade  Grade
	FixedPatternDamageGrade    Grade

	Overall Grade
}

// Evaluate computes every metric and its grade from in.
func Evaluate(in Input) Metrics {
	minRefl, maxRefl := minMax(in.ModuleReflectance)
	contrast := maxRefl - minRefl

	modSum, modMin := 0.0, 1.0
	count := 0
	for _, row := range in.ModuleReflectance {
		for _, r := range row {
			m := 0.0
			if contrast > 0 {
				m = 2 * abs(r-in.GlobalThreshold) / contrast
			}
			modSum += m
			if m < modMin {
				modMin = m
			}
			count++
		}
	}
	modulation := 0.0
	if count > 0 {
		modulation = modSum / float64(count)
	}

	minReflRatio := 0.0
	if maxRefl > 0 {
		minReflRatio = minRefl / maxRefl
	}

	axial := 0.0
	if in.LongSide > 0 {
		axial = abs(1 - in.ShortSide/in.LongSide)
	}

	gridSum := 0.0
	gridCount := 0
	for _, row := range in.CellOffset {
		for _, o := range row {
			gridSum += abs(o)
			gridCount++
		}
	}
	gridNonUniformity := 0.0
	if gridCount > 0 {
		gridNonUniformity = gridSum / float64(gridCount)
	}

	unused := reedsolomon.UnusedErrorCorrection(in.RSNRoots, in.RSErrors, in.RSErasures)

	m := Metrics{
		SymbolContrast:        contrast * 100,
		MinReflectance:        minReflRatio * 100,
		Modulation:            modulation * 100,
		ContrastUniformity:    modMin * 100,
		AxialNonUniformity:    axial * 100,
		GridNonUniformity:     gridNonUniformity * 100,
		UnusedErrorCorrection: unused * 100,
		ClockTrackRegularity:  in.ClockTrackRegularity,
		FixedPatternDamage:    in.FixedPatternDamage,
	}

	m.SymbolContrastGrade = gradeAscending(m.SymbolContrast, [4]float64{20, 40, 55, 70})
	m.MinReflectanceGrade = gradeMinReflectance(m.MinReflectance)
	m.ModulationGrade = gradeAscending(m.Modulation, [4]float64{20, 30, 40, 50})
	m.ContrastUniformityGrade = gradeAscending(m.ContrastUniformity, [4]float64{20, 30, 40, 50})
	m.AxialNonUniformityGrade = gradeDescending(m.AxialNonUniformity, [4]float64{12, 10, 8, 6})
	m.GridNonUniformityGrade = gradeDescending(m.GridNonUniformity, [4]float64{75, 63, 50, 38})
	m.UnusedErrorCorrectionGrade = gradeAscending(m.UnusedErrorCorrection, [4]float64{25, 37, 50, 62})
	m.ClockTrackRegularityGrade = gradeDescending(m.ClockTrackRegularity, [4]float64{25, 20, 15, 10})
	m.FixedPatternDamageGrade = gradeDescending(m.FixedPatternDamage, [4]float64{17, 13, 9, 0})

	m.Overall = m.SymbolContrastGrade
	for _, g := range []Grade{
		m.MinReflectanceGrade, m.ModulationGrade, m.ContrastUniformityGrade,
		m.AxialNonUniformityGrade, m.GridNonUniformityGrade,
		m.UnusedErrorCorrectionGrade, m.ClockTrackRegularityGrade,
		m.FixedPatternDamageGrade,
	} {
		if g < m.Overall {
			m.Overall = g
		}
	}
	return m
}

// gradeAscending grades a metric where higher is better: thresholds are
// the minimum value required for grades 1, 2, 3, 4 in order.
func gradeAscending(value float64, thresholds [4]float64) Grade {
	for g := 3; g >= 0; g-- {
		if value >= thresholds[g] {
			return Grade(g + 1)
		}
	}
	return 0
}

// gradeDescending grades a metric where lower is better: thresholds are
// the maximum value permitted for grades 1, 2, 3, 4 in order (so
// thresholds[3] is the tightest, best-grade bound).
func gradeDescending(value float64, thresholds [4]float64) Grade {
	for g := 3; g >= 0; g-- {
		if value <= thresholds[g] {
			return Grade(g + 1)
		}
	}
	return 0
}

// gradeMinReflectance is the one binary metric: 0..50% is grade 4,
// anything at or above 50% is grade 0.
func gradeMinReflectance(percent float64) Grade {
	if percent < 50 {
		return 4
	}
	return 0
}

func minMax(rows [][]float64) (min, max float64) {
	first := true
	for _, row := range rows {
		for _, v := range row {
			if first {
				min, max = v, v
				first = false
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
