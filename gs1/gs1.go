// Package gs1 builds human-readable Application Identifier text, or a GS1
// Digital Link URL, from a decoded FNC1-flagged byte stream.
package gs1

import (
	"fmt"
	"strconv"
	"strings"
)

// GroupSeparator terminates a variable-length AI value (GS, 0x1D).
const GroupSeparator = 0x1D

// entry describes one Application Identifier's value shape.
type entry struct {
	name     string
	length   int // fixed value length; -1 means variable, GS- or end-terminated
	isDate   bool
	decimal  bool // value's last digit of the AI itself is a decimal-point position (310n family)
}

// exact2, exact3, exact4 are looked up longest-prefix-first, matching the
// original's per-AI dispatch but table-driven in the teacher's idiom.
var exact2 = map[string]entry{
	"00": {name: "SSCC", length: 18},
	"01": {name: "GTIN", length: 14},
	"02": {name: "CONTENT", length: 14},
	"10": {name: "BATCH/LOT", length: -1},
	"11": {name: "PROD DATE", length: 6, isDate: true},
	"12": {name: "DUE DATE", length: 6, isDate: true},
	"13": {name: "PACK DATE", length: 6, isDate: true},
	"15": {name: "BEST BEFORE", length: 6, isDate: true},
	"16": {name: "SELL BY", length: 6, isDate: true},
	"17": {name: "USE BY", length: 6, isDate: true},
	"20": {name: "VARIANT", length: 2},
	"21": {name: "SERIAL", length: -1},
	"22": {name: "CPV", length: -1},
	"23": {name: "LOT", length: -1},
	"30": {name: "VAR. COUNT", length: -1},
}

var exact3 = map[string]entry{
	"240": {name: "ADDITIONAL ID", length: -1},
	"241": {name: "CUST. PART NO.", length: -1},
	"250": {name: "SECONDARY SERIAL", length: -1},
	"251": {name: "REF. TO SOURCE", length: -1},
	"253": {name: "GDTI", length: -1},
	"254": {name: "GLN EXTENSION", length: -1},
	"255": {name: "GCN", length: -1},
	"400": {name: "ORDER NUMBER", length: -1},
	"401": {name: "GINC", length: -1},
	"402": {name: "GSIN", length: 17},
	"403": {name: "ROUTE", length: -1},
	"410": {name: "SHIP TO LOC", length: 13},
	"411": {name: "BILL TO LOC", length: 13},
	"412": {name: "PURCHASE FROM", length: 13},
	"413": {name: "SHIP FOR LOC", length: 13},
	"414": {name: "LOC No.", length: 13},
	"415": {name: "PAY TO", length: 13},
	"416": {name: "PROD/SERV LOC", length: 13},
	"417": {name: "PARTY", length: 13},
	"420": {name: "SHIP TO POST", length: -1},
	"421": {name: "SHIP TO POST WITH ISO CODE", length: -1},
	"422": {name: "ORIGIN COUNTRY", length: 3},
	"423": {name: "COUNTRY - INITIAL PROCESS", length: -1},
}

var exact4 = map[string]entry{
	"3102": {name: "NET WEIGHT (kg)", length: 6},
	"3922": {name: "PRICE", length: -1},
	"7003": {name: "EXPIRY TIME", length: 10, isDate: true},
	"8008": {name: "PROD TIME", length: -1},
	"8200": {name: "PRODUCT URL", length: -1},
}

// decimalFamilies are 3-digit AI prefixes whose 4th digit is a
// decimal-point position rather than part of a longer fixed code (the
// 310n/320n/330n/392n "variable measure" families).
var decimalFamilies = map[string]entry{
	"310": {name: "NET WEIGHT (kg)", length: 6},
	"311": {name: "LENGTH (m)", length: 6},
	"312": {name: "WIDTH (m)", length: 6},
	"313": {name: "HEIGHT (m)", length: 6},
	"314": {name: "AREA (m2)", length: 6},
	"315": {name: "NET VOLUME (l)", length: 6},
	"316": {name: "NET VOLUME (m3)", length: 6},
	"320": {name: "NET WEIGHT (lb)", length: 6},
	"321": {name: "LENGTH (in)", length: 6},
	"322": {name: "LENGTH (ft)", length: 6},
	"323": {name: "LENGTH (yd)", length: 6},
	"324": {name: "WIDTH (in)", length: 6},
	"325": {name: "WIDTH (ft)", length: 6},
	"326": {name: "WIDTH (yd)", length: 6},
	"327": {name: "HEIGHT (in)", length: 6},
	"328": {name: "HEIGHT (ft)", length: 6},
	"329": {name: "HEIGHT (yd)", length: 6},
	"330": {name: "GROSS WEIGHT (kg)", length: 6},
	"392": {name: "PRICE", length: -1},
	"703": {name: "PROCESSOR WITH ISO COUNTRY CODE", length: -1},
}

// Field is one decoded Application Identifier value.
type Field struct {
	AI    string
	Value string
}

// Parse walks s (the plain decoded text following an FNC1 at position 1)
// into a sequence of AI/value fields, stopping at the first
// unrecognised AI prefix.
func Parse(s string) []Field {
	var fields []Field
	pos := 0
	for pos < len(s) {
		ai, e, consumed, ok := matchAI(s[pos:])
		if !ok {
			break
		}
		pos += consumed
		var value string
		if e.length >= 0 {
			n := e.length
			if pos+n > len(s) {
				n = len(s) - pos
			}
			value = s[pos : pos+n]
			pos += n
			if pos < len(s) && s[pos] == GroupSeparator {
				pos++
			}
		} else {
			if idx := strings.IndexByte(s[pos:], GroupSeparator); idx >= 0 {
				value = s[pos : pos+idx]
				pos += idx + 1
			} else {
				value = s[pos:]
				pos = len(s)
			}
		}
		fields = append(fields, Field{AI: ai, Value: value})
	}
	return fields
}

func matchAI(s string) (ai string, e entry, consumed int, ok bool) {
	if len(s) >= 4 {
		if v, found := exact4[s[:4]]; found {
			return s[:4], v, 4, true
		}
	}
	if len(s) >= 3 {
		if v, found := decimalFamilies[s[:3]]; found && len(s) >= 4 {
			return s[:4], v, 4, true
		}
		if v, found := exact3[s[:3]]; found {
			return s[:3], v, 3, true
		}
	}
	if len(s) >= 2 {
		if v, found := exact2[s[:2]]; found {
			return s[:2], v, 2, true
		}
	}
	return "", entry{}, 0, false
}

// HumanReadable renders fields as "STANDARD: GS1" followed by one
// "NAME: value" line per field, with GS1 dates (YYMMDD) formatted as
// "DD Mon YYYY".
func HumanReadable(fields []Field) string {
	var b strings.Builder
	b.WriteString("STANDARD: GS1")
	for _, f := range fields {
		_, e, _, ok := matchAI(f.AI)
		name := f.AI
		value := f.Value
		if ok {
			name = e.name
			if e.isDate && len(f.Value) == 6 {
				value = formatDate(f.Value)
			}
		}
		b.WriteString("\n")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
	}
	return b.String()
}

// DigitalLinkURL renders fields as a canonical GS1 Digital Link path
// under prefix: "{prefix}/{ai1}/{val1}/{ai2}/{val2}/...", using raw
// (unformatted) values.
func DigitalLinkURL(prefix string, fields []Field) string {
	parts := []string{strings.TrimRight(prefix, "/")}
	for _, f := range fields {
		parts = append(parts, f.AI, f.Value)
	}
	return strings.Join(parts, "/")
}

var monthAbbrev = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func formatDate(yymmdd string) string {
	yy, err1 := strconv.Atoi(yymmdd[0:2])
	mm, err2 := strconv.Atoi(yymmdd[2:4])
	dd, err3 := strconv.Atoi(yymmdd[4:6])
	if err1 != nil || err2 != nil || err3 != nil || mm < 1 || mm > 12 {
		return yymmdd
	}
	return fmt.Sprintf("%d %s %d", dd, monthAbbrev[mm], 2000+yy)
}
