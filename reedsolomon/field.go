// Package reedsolomon implements GF(256) Reed-Solomon decoding with support
// for erasures, following the ECC 200 field convention: primitive polynomial
// 1+x^2+x^3+x^5+x^8, first consecutive root exponent B0=1, primitive root
// exponent PRIM=1.
//
// The Berlekamp-Massey decoder in decoder.go is a direct Go port of the
// classic Rockliff-derived rs.c decoder (as vendored in the ECC 200 decoder
// this module is modelled on), operating on index-form Galois field
// arithmetic rather than the polynomial-object style used elsewhere in the
// example corpus.
package reedsolomon

// DataMatrixPrimitive is the ECC 200 primitive polynomial, 1+x^2+x^3+x^5+x^8,
// encoded with bit i set for the x^i term (bit 8 is the x^8 term).
const DataMatrixPrimitive = 0x12D

// field holds the log/antilog tables for GF(2^8) built from a primitive
// polynomial, following the same mask-and-shift construction used by the
// teacher's reedsolomon.NewGenericGF.
type field struct {
	symbolBits int
	n          int // 2^symbolBits - 1
	alphaTo    []int
	indexOf    []int
}

// newField builds the log/antilog tables for GF(2^symbolBits) using the given
// primitive polynomial, given as the list of exponents i whose x^i term is
// present (the x^symbolBits term is implicit and not listed).
func newField(symbolBits int, ppTerms []int) *field {
	mm := symbolBits
	nn := (1 << mm) - 1
	f := &field{
		symbolBits: mm,
		n:          nn,
		alphaTo:    make([]int, nn+1),
		indexOf:    make([]int, nn+1),
	}

	present := make([]bool, mm+1)
	for _, t := range ppTerms {
		present[t] = true
	}

	mask := 1
	f.alphaTo[mm] = 0
	for i := 0; i < mm; i++ {
		f.alphaTo[i] = mask
		f.indexOf[f.alphaTo[i]] = i
		if present[i] {
			f.alphaTo[mm] ^= mask
		}
		mask <<= 1
	}
	f.indexOf[f.alphaTo[mm]] = mm

	mask >>= 1
	for i := mm + 1; i < nn; i++ {
		if f.alphaTo[i-1] >= mask {
			f.alphaTo[i] = f.alphaTo[mm] ^ ((f.alphaTo[i-1] ^ mask) << 1)
		} else {
			f.alphaTo[i] = f.alphaTo[i-1] << 1
		}
		f.indexOf[f.alphaTo[i]] = i
	}
	f.indexOf[0] = nn // "A0": the index representing zero
	f.alphaTo[nn] = 0
	return f
}

// newDataMatrixField builds the GF(256) tables for the ECC 200 primitive
// polynomial 1+x^2+x^3+x^5+x^8.
func newDataMatrixField() *field {
	return newField(8, []int{0, 2, 3, 5})
}

// modNN reduces x into [0, n) the same way the original exponent-reduction
// loop does, accounting for the field's cyclic group order.
func (f *field) modNN(x int) int {
	for x >= f.n {
		x -= f.n
		x = (x >> f.symbolBits) + (x & f.n)
	}
	return x
}
