package bytestream

// c40BasicSet and textBasicSet are indexed directly by the shift-0 value
// (0-39); indices 0-2 are never read through this array since those
// values switch into shift 1/2/3 instead.
var c40BasicSet = [40]rune{
	0, 0, 0, ' ', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
}

var textBasicSet = [40]rune{
	0, 0, 0, ' ', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm',
	'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
}

// shift2Set is shared by C40 and TEXT: punctuation, indexed 0-26.
var shift2Set = [27]rune{
	'!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.',
	'/', ':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^', '_',
}

// textShift3Set is TEXT's shift-3 set; C40's shift-3 set is the
// contiguous run cValue+c40Shift3Offset instead, selected by passing
// isText=false to stepC40Text.
var textShift3Set = [32]rune{
	'`', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	'{', '|', '}', '~', 127,
}

// c40Shift3Offset is added to a C40 shift-3 value to land in the ASCII
// 224..255 extended range.
const c40Shift3Offset = 224
