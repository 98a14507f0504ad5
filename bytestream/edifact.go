package bytestream

// edifactUnlatch is the 6-bit terminator value ending an EDIFACT segment.
const edifactUnlatch = 0x1F

// stepEDIFACT decodes one group of three codewords into four 6-bit
// EDIFACT values, remapping each into printable ASCII. Fewer than three
// codewords remaining is an implicit unlatch back to ASCII.
func (d *DecodeState) stepEDIFACT() {
	if len(d.codewords)-d.pos < 3 {
		d.Mode = ModeASCII
		return
	}
	b1, _ := d.next()
	b2, _ := d.next()
	b3, _ := d.next()

	values := [4]int{
		int(b1) >> 2,
		((int(b1) & 0x03) << 4) | (int(b2) >> 4),
		((int(b2) & 0x0F) << 2) | (int(b3) >> 6),
		int(b3) & 0x3F,
	}

	for _, v := range values {
		if v == edifactUnlatch {
			d.Mode = ModeASCII
			return
		}
		if v&0x20 == 0 {
			v |= 0x40
		}
		d.emit(rune(v))
	}
}
