package reedsolomon

// Encoder produces the parity codewords for a Reed-Solomon block over the
// same GF(256) field the Decoder uses. It exists primarily to synthesize
// fixtures for decoder tests (valid codewords, then damaged deliberately)
// since no external tool produces ECC 200 codeword blocks for this module
// to consume.
type Encoder struct {
	f      *field
	nroots int
	pad    int
	gen    []int // generator polynomial coefficients, in poly (not index) form, highest degree first
}

// NewEncoder builds an Encoder for a block of n total codewords with nroots
// parity codewords.
func NewEncoder(n, nroots int) *Encoder {
	f := newDataMatrixField()
	e := &Encoder{f: f, nroots: nroots, pad: f.n - n}
	e.gen = e.buildGenerator()
	return e
}

// buildGenerator constructs g(x) = prod_{i=0}^{nroots-1} (x - alpha^(b0+i*prim)),
// in poly form, matching reed_solomon_gen_poly from the reference decoder.
func (e *Encoder) buildGenerator() []int {
	alphaTo := e.f.alphaTo
	g := make([]int, e.nroots+1)
	g[0] = 1
	for i := 0; i < e.nroots; i++ {
		root := alphaTo[e.f.modNN(b0*prim+i*prim)]
		for j := i; j >= 0; j-- {
			if g[j] != 0 {
				g[j+1] ^= gfMul(e.f, g[j], root)
			}
		}
	}
	return g
}

func gfMul(f *field, a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.alphaTo[f.modNN(f.indexOf[a]+f.indexOf[b])]
}

// Encode computes the nroots parity codewords for the given data codewords
// (len(data) == n-nroots) and appends them, returning a full n-codeword
// block.
func (e *Encoder) Encode(data []byte) []byte {
	parity := make([]int, e.nroots)
	for _, d := range data {
		feedback := int(d) ^ parity[0]
		for j := 0; j < e.nroots-1; j++ {
			parity[j] = parity[j+1]
			if feedback != 0 && e.gen[j+1] != 0 {
				parity[j] ^= gfMul(e.f, feedback, e.gen[j+1])
			}
		}
		parity[e.nroots-1] = 0
		if feedback != 0 {
			parity[e.nroots-1] = gfMul(e.f, feedback, e.gen[e.nroots])
		}
	}
	out := make([]byte, 0, len(data)+e.nroots)
	out = append(out, data...)
	for _, p := range parity {
		out = append(out, byte(p))
	}
	return out
}

// ErrorBudget returns the maximum number of symbol errors a block can still
// correct given a count of known erasures, following the classical
// relation errors <= floor((nroots-erasures)/2).
func ErrorBudget(nroots, erasures int) int {
	room := nroots - erasures
	if room < 0 {
		return 0
	}
	return room / 2
}

// UnusedErrorCorrection estimates the fraction of error-correction capacity
// left unused by a decode, following the reference decoder's
// get_unused_error_correction: e2t counts each erasure as half the cost of
// a full error (two erasures correct like one error).
func UnusedErrorCorrection(nroots, errors, erasures int) float64 {
	if nroots == 0 {
		return 0
	}
	e2t := float64(erasures) + 2*float64(errors)
	return 1 - e2t/float64(nroots)
}
