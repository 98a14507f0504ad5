package bytestream

import "testing"

func TestDecodeASCIIDigits(t *testing.T) {
	// '1'=132+? ASCII digit pair codeword: value+130 encodes two digits.
	// digits "12" -> value 12 -> codeword 142.
	d := Decode([]byte{142})
	if got, want := d.Text(), "12"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeASCIILetters(t *testing.T) {
	// 'A' = 65, ASCII codeword value = char+1 = 66.
	d := Decode([]byte{'A' + 1, 'B' + 1, 'C' + 1})
	if got, want := d.Text(), "ABC"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeC40PairWithoutUnlatchStaysInC40(t *testing.T) {
	// Starting in ASCII, codeword 230 switches to C40. A packed pair
	// (a,b) decodes to three base-40 values; this fixture picks a=1,b=94
	// so packed=1*256+94-1=349, giving c0=349/1600=0, c1=(349/40)%40=8,
	// c2=349%40=29. Shift state starts at 0: c0=0 selects shift=1; under
	// shift=1 the next value (8) is emitted as raw ASCII control char 8;
	// shift resets to 0, and the final value 29 (>=3) indexes the basic
	// set directly: c40BasicSet[29]='P'. The stream then ends, leaving
	// mode latched in C40 (no explicit unlatch byte in this fixture).
	d := Decode([]byte{230, 1, 94})
	if d.Mode != ModeC40 {
		t.Fatalf("expected mode still C40 at end of stream, got %v", d.Mode)
	}
	want := string([]byte{8, 'P'})
	if got := d.Text(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeC40ReturnsToASCIIOnUnlatch(t *testing.T) {
	d := Decode([]byte{230, unlatchByte, 'A' + 1})
	if d.Mode != ModeASCII {
		t.Fatalf("expected ASCII after unlatch, got %v", d.Mode)
	}
	if got, want := d.Text(), "A"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeX12Basic(t *testing.T) {
	// packed pair chosen so all three values land in the CR/*/>/space
	// quad: want cValue1=0 ('\r'), cValue2=1 ('*'), cValue3=3 (' ').
	packed := 0*1600 + 1*40 + 3
	a := byte((packed + 1) / 256)
	b := byte((packed + 1) % 256)
	d := Decode([]byte{238, a, b})
	if got, want := d.Text(), "\r* "; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeEDIFACTUnlatch(t *testing.T) {
	// 0x1F as the first 6-bit group (top 6 bits of the first byte) is the
	// EDIFACT terminator: byte1's top 6 bits = 0b011111 = 0x1F << 2 = 0x7C.
	d := Decode([]byte{240, 0x7C, 0x00, 0x00, 'A' + 1})
	if d.Mode != ModeASCII {
		t.Fatalf("expected ASCII after EDIFACT unlatch, got %v", d.Mode)
	}
	if got, want := d.Text(), "A"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeBase256RawBytes(t *testing.T) {
	// length byte d1 must be unrandomized at position 2 (codeword 231 is
	// position 1, the length byte is position 2), then each data byte
	// unrandomized at its own position.
	pos := 2
	d1 := unrandomize255Inverse(3, pos)
	b1 := unrandomize255Inverse(0xAA, pos+1)
	b2 := unrandomize255Inverse(0xBB, pos+2)
	b3 := unrandomize255Inverse(0xCC, pos+3)
	d := Decode([]byte{231, d1, b1, b2, b3})
	want := string([]byte{0xAA, 0xBB, 0xCC})
	if got := d.Text(); got != want {
		t.Fatalf("got %x want %x", got, want)
	}
	if d.Mode != ModeASCII {
		t.Fatalf("expected ASCII after BYTE-256 segment, got %v", d.Mode)
	}
}

// unrandomize255Inverse produces the randomized codeword that
// unrandomize255 will turn back into want at the given position.
func unrandomize255Inverse(want byte, position int) byte {
	pseudoRandom := (149*position)%255 + 1
	return byte((int(want) + pseudoRandom) % 256)
}

func TestDecodeGS1FNC1AtFirstPosition(t *testing.T) {
	d := Decode([]byte{232, '1' + 1})
	if !d.IsGS1 {
		t.Fatalf("expected IsGS1 true when FNC1 is the first codeword")
	}
}

func TestDecodeC40OddTrailingCodewordDecodesAsASCII(t *testing.T) {
	// 230 switches to C40; the single trailing codeword 'A'+1 has no
	// partner to pair with, so it must be decoded as ASCII rather than
	// dropped.
	d := Decode([]byte{230, 'A' + 1})
	if got, want := d.Text(), "A"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeX12OddTrailingCodewordDecodesAsASCII(t *testing.T) {
	d := Decode([]byte{238, 'A' + 1})
	if got, want := d.Text(), "A"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeTextOddTrailingCodewordDecodesAsASCII(t *testing.T) {
	d := Decode([]byte{239, 'Z' + 1})
	if got, want := d.Text(), "Z"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeFNC1MidStreamEmitsGS(t *testing.T) {
	d := Decode([]byte{'1' + 1, 232})
	if d.IsGS1 {
		t.Fatalf("FNC1 not at position 1 should not set IsGS1")
	}
	if got, want := d.Text(), "1\x1d"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
