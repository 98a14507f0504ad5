package bytestream

// stepX12 decodes one ANSI X12 pair: CR/*/>/space, digits 0-9, and A-Z.
func (d *DecodeState) stepX12() {
	if len(d.codewords)-d.pos == 1 {
		// Only one codeword remains: it is decoded as ASCII rather than
		// consumed as the first half of a pair.
		d.stepASCII()
		return
	}
	b0, _ := d.next()
	if b0 == unlatchByte {
		d.Mode = ModeASCII
		return
	}
	b1, _ := d.next()
	packed := int(b0)*256 + int(b1) - 1
	values := [3]int{packed / 1600, (packed / 40) % 40, packed % 40}

	for _, cv := range values {
		switch {
		case cv == 0:
			d.emit('\r')
		case cv == 1:
			d.emit('*')
		case cv == 2:
			d.emit('>')
		case cv == 3:
			d.emit(' ')
		case cv >= 4 && cv < 14:
			d.emit(rune('0' + cv - 4))
		case cv >= 14 && cv < 40:
			d.emit(rune('A' + cv - 14))
		}
	}
}
