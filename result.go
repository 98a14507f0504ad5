package dm200

import (
	"time"

	"github.com/lmars/dm200/datamatrix"
	"github.com/lmars/dm200/grid"
	"github.com/lmars/dm200/quality"
	"github.com/lmars/dm200/timing"
)

// Result is the outcome of a successful Decode, mirroring the teacher's
// Result type: decoded text and raw bytes plus whatever structured
// metadata the caller asked for, simplified since dm200 only ever
// decodes one symbology.
type Result struct {
	Text     string
	RawBytes []byte

	Size timing.Size
	Grid *grid.Grid

	IsGS1              bool
	IsStructuredAppend bool
	IsISO15434         bool
	IsHIBC             bool

	Errors   int
	Erasures int

	// Quality is populated only when Config.ComputeQuality was set.
	Quality *quality.Metrics

	Timestamp time.Time
}

func newResult(o *datamatrix.Outcome) *Result {
	return &Result{
		Text:               o.Text,
		RawBytes:           o.RawBytes,
		Size:               o.Size,
		Grid:               o.Grid,
		IsGS1:              o.IsGS1,
		IsStructuredAppend: o.IsStruct,
		IsISO15434:         o.IsISO15434,
		IsHIBC:             o.IsHIBC,
		Errors:             o.Errors,
		Erasures:           o.Erasures,
		Timestamp:          time.Now(),
	}
}
