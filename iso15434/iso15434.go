// Package iso15434 parses ISO/IEC 15434 transfer-syntax records (formats
// 05, 06, 12, DD) out of a decoded byte stream.
package iso15434

import (
	"strings"
)

const (
	// MagicPrefix opens every ISO 15434 record.
	MagicPrefix = "[)>"
	rs          = 0x1E // record separator, precedes the format code
	gs          = 0x1D // group separator, between data qualifiers
	eot         = 0x04 // optional trailer
)

// Result is one parsed ISO 15434 record.
type Result struct {
	Format string
	Text   string
	UII    string
}

// qualifierNames maps format 12/DD's three-letter qualifiers to
// human-readable field names.
var qualifierNames = map[string]string{
	"MFR": "MANUFACTURER",
	"SPL": "SUPPLIER",
	"SER": "SERIAL NUMBER",
	"CAG": "CAGE CODE",
	"PNO": "PART NUMBER",
	"DUN": "DUNS NUMBER",
	"UID": "UNIQUE ID",
	"USN": "UNIT SERIAL NUMBER",
	"UST": "UNIT OF MEASURE",
}

// dataIdentifierNames maps format 06 ANSI Data Identifiers to
// human-readable field names; unrecognised DIs fall back to "DI <code>".
var dataIdentifierNames = map[string]string{
	"9S": "PACKAGE ID",
}

// Parse recognises s as an ISO 15434 record and decodes it. ok is false
// when s does not begin with the magic prefix and record separator.
func Parse(s string) (Result, bool) {
	if !strings.HasPrefix(s, MagicPrefix) {
		return Result{}, false
	}
	rest := s[len(MagicPrefix):]
	if len(rest) == 0 || rest[0] != rs {
		return Result{}, false
	}
	rest = rest[1:]
	if len(rest) < 2 {
		return Result{}, false
	}
	format := rest[:2]
	rest = rest[2:]
	if len(rest) > 0 && rest[0] == gs {
		rest = rest[1:]
	}
	if idx := strings.IndexByte(rest, rs); idx >= 0 {
		rest = rest[:idx]
	}
	rest = strings.TrimSuffix(rest, string(rune(eot)))

	switch format {
	case "05":
		return parseFormat05(format, rest), true
	case "06":
		return parseFormat06(format, rest), true
	case "12", "DD":
		return parseFormat12(format, rest), true
	default:
		return Result{Format: format, Text: rest}, true
	}
}

// parseFormat05 extracts a UII from the data after skipping its first
// four characters (symbology/format metadata the reader already knows).
func parseFormat05(format, data string) Result {
	uii := data
	if len(data) > 4 {
		uii = data[4:]
	}
	return Result{Format: format, Text: "UII: " + uii, UII: uii}
}

// parseFormat06 splits data on GS and decodes each field as an ANSI Data
// Identifier: up to two leading digits, then one letter, then the value.
func parseFormat06(format, data string) Result {
	var lines []string
	var uii string
	for _, field := range strings.Split(data, string(rune(gs))) {
		if field == "" {
			continue
		}
		di, value := splitDataIdentifier(field)
		name, ok := dataIdentifierNames[di]
		if !ok {
			name = "DI " + di
		}
		lines = append(lines, name+": "+value)
		if strings.HasSuffix(di, "S") {
			uii = value
		}
	}
	return Result{Format: format, Text: strings.Join(lines, "\n"), UII: uii}
}

func splitDataIdentifier(field string) (di, value string) {
	i := 0
	for i < len(field) && i < 2 && field[i] >= '0' && field[i] <= '9' {
		i++
	}
	if i < len(field) {
		i++ // the identifier's trailing letter
	}
	return field[:i], field[i:]
}

// parseFormat12 splits data on GS and decodes each field as a
// three-letter qualifier immediately followed by its value.
func parseFormat12(format, data string) Result {
	var lines []string
	var uii, serial string
	for _, field := range strings.Split(data, string(rune(gs))) {
		if len(field) < 3 {
			continue
		}
		qualifier, value := field[:3], field[3:]
		name, ok := qualifierNames[qualifier]
		if !ok {
			name = qualifier
		}
		lines = append(lines, name+": "+value)
		switch qualifier {
		case "UID":
			uii = value
		case "SER":
			serial = value
		}
	}
	if uii == "" {
		uii = serial
	}
	return Result{Format: format, Text: strings.Join(lines, "\n"), UII: uii}
}
