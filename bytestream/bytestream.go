// Package bytestream implements the ECC 200 byte decoder: a state machine
// over the corrected codeword stream across the ASCII, C40, TEXT, X12,
// EDIFACT, and BYTE-256 encodations.
package bytestream

import "strings"

// Mode is one of the six ECC 200 encodation states.
type Mode int

const (
	ModeASCII Mode = iota
	ModeC40
	ModeText
	ModeX12
	ModeEDIFACT
	ModeBase256
	ModePad
)

// DecodeState drives the byte walker. Shift spans two related but
// distinct uses: in ASCII mode, Shift==1 means the next byte is an
// extended-ASCII character (set by codeword 235); in C40/TEXT it holds the
// shift set (1-3) chosen for the next value and returns to 0 once that
// value is decoded. X12 does not use it.
type DecodeState struct {
	Mode  Mode
	Shift int

	IsGS1               bool
	IsStructuredAppend  bool
	IsISO15434          bool

	codewords []byte
	pos       int // 0-based index into codewords
	out       strings.Builder

	upperShift bool // C40/TEXT "upper shift": add 128 to the next character
}

// Text returns the plain decoded character stream accumulated so far (GS1
// FNC1 outside position 1 is rendered as GS, 0x1D).
func (d *DecodeState) Text() string { return d.out.String() }

// Decode runs the byte walker over codewords to completion (stream
// exhausted or PAD encountered) and returns the resulting state, from
// which GS1/ISO 15434/HIBC post-processors build their own output.
func Decode(codewords []byte) *DecodeState {
	d := &DecodeState{Mode: ModeASCII, codewords: codewords}
	for d.pos < len(d.codewords) && d.Mode != ModePad {
		switch d.Mode {
		case ModeASCII:
			d.stepASCII()
		case ModeC40:
			d.stepC40Text(c40BasicSet, false)
		case ModeText:
			d.stepC40Text(textBasicSet, true)
		case ModeX12:
			d.stepX12()
		case ModeEDIFACT:
			d.stepEDIFACT()
		case ModeBase256:
			d.stepBase256()
		}
	}
	return d
}

func (d *DecodeState) next() (byte, bool) {
	if d.pos >= len(d.codewords) {
		return 0, false
	}
	b := d.codewords[d.pos]
	d.pos++
	return b, true
}

// emit appends a decoded character. The payload is fundamentally a byte
// stream (Data Matrix carries arbitrary binary data), so values under 256
// are written as raw bytes rather than UTF-8 rune sequences, keeping
// Text()'s byte offsets aligned with BYTE-256 segments.
func (d *DecodeState) emit(r rune) {
	if d.upperShift {
		r += 128
		d.upperShift = false
	}
	if r >= 0 && r < 256 {
		d.out.WriteByte(byte(r))
	} else {
		d.out.WriteRune(r)
	}
}

func (d *DecodeState) stepASCII() {
	b, ok := d.next()
	if !ok {
		return
	}
	switch {
	case b == 0:
		// not a valid codeword value; treat as stream end.
		d.Mode = ModePad
	case b >= 1 && b <= 128:
		v := int(b) - 1
		if d.Shift == 1 {
			v += 127
			d.Shift = 0
		}
		d.emit(rune(v))
	case b == 129 || b == 253:
		d.Mode = ModePad
	case b >= 130 && b <= 229:
		v := int(b) - 130
		d.emit(rune('0' + v/10))
		d.emit(rune('0' + v%10))
	case b == 230:
		d.Mode = ModeC40
	case b == 231:
		d.Mode = ModeBase256
	case b == 232:
		if d.pos == 1 {
			d.IsGS1 = true
		} else {
			d.emit(29) // GS
		}
	case b == 233:
		d.IsStructuredAppend = true
	case b == 234:
		// reader programming: no-op
	case b == 235:
		d.Shift = 1
	case b == 236 || b == 237:
		// 05/06 Macro: no-op
	case b == 238:
		d.Mode = ModeX12
	case b == 239:
		d.Mode = ModeText
	case b == 240:
		d.Mode = ModeEDIFACT
	default:
		d.Mode = ModePad
	}
}
