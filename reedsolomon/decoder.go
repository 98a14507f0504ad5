package reedsolomon

import "errors"

// ErrUncorrectable is returned when a codeword block has more errors and
// erasures than the code's error-correcting capacity, or when the decoder's
// internal consistency checks (locator degree vs. root count, singular
// derivative) fail.
var ErrUncorrectable = errors.New("reedsolomon: block uncorrectable")

// Decoder corrects a fixed-size Reed-Solomon block over GF(256) using the
// ECC 200 field convention (primitive polynomial 1+x^2+x^3+x^5+x^8, B0=1,
// PRIM=1). It is a direct port of the classical Berlekamp-Massey decoder
// with erasure support (the Rockliff/Karn rs.c shape), as found in the
// reference C decoder this module supersedes.
type Decoder struct {
	f      *field
	nn     int // 255, the field's full codeword length
	nroots int // parity (error-correction) codewords
	pad    int // nn - n, virtual leading zero codewords for shortened blocks
	n      int // actual block length (data+parity codewords present)
}

const (
	b0   = 1 // first consecutive root, alpha^b0
	prim = 1 // primitive root step between consecutive roots
)

// NewDecoder builds a Decoder for a block of n total codewords (data +
// parity) with nroots parity codewords, using the ECC 200 GF(256) field.
func NewDecoder(n, nroots int) *Decoder {
	f := newDataMatrixField()
	return &Decoder{
		f:      f,
		nn:     f.n,
		nroots: nroots,
		pad:    f.n - n,
		n:      n,
	}
}

// Decode corrects data in place. erasurePositions holds indices into data
// (0 is the first, most-significant codeword) that are known to be
// unreliable; more than nroots erasures make the block uncorrectable. Decode returns the
// number of errors actually corrected (erasures included) or
// ErrUncorrectable if the block cannot be corrected, in which case data is
// left unmodified.
func (d *Decoder) Decode(data []byte, erasurePositions []int) (corrected int, err error) {
	if len(data) != d.n {
		panic("reedsolomon: data length does not match block size")
	}
	if len(erasurePositions) > d.nroots {
		return 0, ErrUncorrectable
	}

	nn := d.nn
	nroots := d.nroots
	a0 := nn // index value representing the zero element
	alphaTo := d.f.alphaTo
	indexOf := d.f.indexOf

	// Syndromes: evaluate data(x) at roots alpha^(b0+i*prim), i=0..nroots-1.
	s := make([]int, nroots)
	for i := range s {
		s[i] = int(data[0])
	}
	for j := 1; j < d.n; j++ {
		for i := 0; i < nroots; i++ {
			if s[i] == 0 {
				s[i] = int(data[j])
			} else {
				s[i] = int(data[j]) ^ alphaTo[d.f.modNN(indexOf[s[i]]+(b0+i)*prim)]
			}
		}
	}

	synError := 0
	for i := range s {
		synError |= s[i]
		s[i] = indexOf[s[i]]
	}
	if synError == 0 {
		// data is already a valid codeword.
		return 0, nil
	}

	lambda := make([]int, nroots+1)
	lambda[0] = 1

	noEras := len(erasurePositions)
	if noEras > 0 {
		erasFull := make([]int, noEras)
		for i, p := range erasurePositions {
			if p < 0 || p >= d.n {
				panic("reedsolomon: erasure position out of range")
			}
			erasFull[i] = p + d.pad
		}
		lambda[1] = alphaTo[d.f.modNN(prim*(nn-1-erasFull[0]))]
		for i := 1; i < noEras; i++ {
			u := d.f.modNN(prim * (nn - 1 - erasFull[i]))
			for j := i + 1; j > 0; j-- {
				tmp := indexOf[lambda[j-1]]
				if tmp != a0 {
					lambda[j] ^= alphaTo[d.f.modNN(u+tmp)]
				}
			}
		}
	}

	b := make([]int, nroots+1)
	for i := range b {
		b[i] = indexOf[lambda[i]]
	}

	// Berlekamp-Massey: determine the error+erasure locator polynomial.
	r := noEras
	el := noEras
	t := make([]int, nroots+1)
	for {
		r++
		if r > nroots {
			break
		}
		discrR := 0
		for i := 0; i < r; i++ {
			if lambda[i] != 0 && s[r-i-1] != a0 {
				discrR ^= alphaTo[d.f.modNN(indexOf[lambda[i]]+s[r-i-1])]
			}
		}
		discrR = indexOf[discrR]
		if discrR == a0 {
			copy(b[1:], b[:nroots])
			b[0] = a0
			continue
		}
		t[0] = lambda[0]
		for i := 0; i < nroots; i++ {
			if b[i] != a0 {
				t[i+1] = lambda[i+1] ^ alphaTo[d.f.modNN(discrR+b[i])]
			} else {
				t[i+1] = lambda[i+1]
			}
		}
		if 2*el <= r+noEras-1 {
			el = r + noEras - el
			for i := 0; i <= nroots; i++ {
				if lambda[i] == 0 {
					b[i] = a0
				} else {
					b[i] = d.f.modNN(indexOf[lambda[i]] - discrR + nn)
				}
			}
		} else {
			copy(b[1:], b[:nroots])
			b[0] = a0
		}
		copy(lambda, t)
	}

	degLambda := 0
	for i := 0; i <= nroots; i++ {
		lambda[i] = indexOf[lambda[i]]
		if lambda[i] != a0 {
			degLambda = i
		}
	}

	// Chien search for the roots of the locator polynomial.
	reg := make([]int, nroots+1)
	copy(reg[1:], lambda[1:nroots+1])
	root := make([]int, nroots)
	loc := make([]int, nroots)
	count := 0
	iprim := modInverse(prim, nn)
	k := d.f.modNN(iprim - 1 + nn)
	for i := 1; i <= nn; i++ {
		q := 1
		for j := degLambda; j > 0; j-- {
			if reg[j] != a0 {
				reg[j] = d.f.modNN(reg[j] + j)
				q ^= alphaTo[reg[j]]
			}
		}
		if q == 0 {
			root[count] = i
			loc[count] = k
			count++
		}
		k = d.f.modNN(k + iprim)
	}
	if degLambda != count {
		return 0, ErrUncorrectable
	}

	// Omega(x) = s(x)*lambda(x) mod x^nroots, in index form.
	degOmega := degLambda - 1
	omega := make([]int, nroots+1)
	for i := 0; i <= degOmega; i++ {
		tmp := 0
		for j := i; j >= 0; j-- {
			if s[i-j] != a0 && lambda[j] != a0 {
				tmp ^= alphaTo[d.f.modNN(s[i-j]+lambda[j])]
			}
		}
		omega[i] = indexOf[tmp]
	}

	fixed := append([]byte(nil), data...)
	for j := count - 1; j >= 0; j-- {
		num1 := 0
		for i := degOmega; i >= 0; i-- {
			if omega[i] != a0 {
				num1 ^= alphaTo[d.f.modNN(omega[i]+i*root[j])]
			}
		}
		num2 := alphaTo[d.f.modNN(root[j]*(b0-1)+nn)]
		den := 0
		top := min(degLambda, nroots-1)
		top &^= 1
		for i := top; i >= 0; i -= 2 {
			if lambda[i+1] != a0 {
				den ^= alphaTo[d.f.modNN(lambda[i+1]+i*root[j])]
			}
		}
		if den == 0 {
			return 0, ErrUncorrectable
		}
		if num1 != 0 {
			pos := loc[j] - d.pad
			if pos < 0 || pos >= d.n {
				// the error falls in the shortened (virtual) region: the
				// block cannot be a valid shortened codeword.
				return 0, ErrUncorrectable
			}
			fixed[pos] ^= byte(alphaTo[d.f.modNN(indexOf[num1]+indexOf[num2]+nn-indexOf[den])])
		}
	}
	if count-noEras > ErrorBudget(nroots, noEras) {
		// Chien search found a self-consistent locator polynomial, but it
		// corrects more symbol errors than the code's capacity allows for
		// the given erasure count: the block is corrupted beyond recovery
		// and this "correction" cannot be trusted.
		return 0, ErrUncorrectable
	}
	copy(data, fixed)
	return count, nil
}

// modInverse returns the multiplicative inverse of a modulo m, for the small
// values (a=prim=1) this decoder ever calls it with.
func modInverse(a, m int) int {
	a = a % m
	for x := 1; x < m; x++ {
		if (a*x)%m == 1 {
			return x
		}
	}
	return 1
}
