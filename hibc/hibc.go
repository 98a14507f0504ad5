// Package hibc decodes HIBC supplier-labelling strings: a '+'-prefixed,
// '/'-delimited primary/secondary data structure with date- and
// serial-bearing secondary segment prefixes.
package hibc

import (
	"fmt"
	"strconv"
	"strings"
)

// dataIdentifier describes one ANSI-style secondary data identifier:
// a human-readable name and, if the value is a date, its layout.
type dataIdentifier struct {
	name       string
	dateLayout string
}

var dataIdentifiers = map[string]dataIdentifier{
	"16D": {name: "MANUFACTURE DATE YYYYMMDD", dateLayout: "YYYYMMDD"},
	"S":   {name: "SUPPLIER SERIAL NUMBER"},
}

// IsHIBC reports whether s begins with the HIBC supplier-labelling flag.
func IsHIBC(s string) bool { return strings.HasPrefix(s, "+") }

// Decode renders a HIBC string as human-readable text, one "NAME: value"
// line per primary/secondary field. ok is false when s is not HIBC data.
func Decode(s string) (string, bool) {
	if !IsHIBC(s) {
		return "", false
	}
	segments := strings.Split(s[1:], "/")
	var b strings.Builder
	for i, seg := range segments {
		if i == 0 {
			b.WriteString(primaryData(seg))
		} else {
			b.WriteString(secondaryData(seg))
		}
	}
	return b.String(), true
}

func primaryData(seg string) string {
	if len(seg) < 7 {
		return ""
	}
	labeler := seg[0:4]
	product := seg[4 : len(seg)-1]
	uom := seg[len(seg)-1:]
	return fmt.Sprintf("LABELER ID: %s\nPRODUCT ID: %s\nUNIT OF MEASURE: %s\n", labeler, product, uom)
}

func secondaryData(seg string) string {
	if len(seg) < 4 {
		return ""
	}
	if seg[0] == '$' {
		return secondaryDataFlag(seg)
	}
	return secondaryDataIdentifier(seg)
}

// secondaryDataFlag handles the '$'-prefixed expiry/lot/serial segments.
// The prefix shape selects what follows: '$' alone is a bare lot number,
// '$+' a bare serial, '$$' an expiry date plus lot number, and
// '$$+2'..'$$+7' an expiry date plus serial number, with the digit
// selecting the date's layout.
func secondaryDataFlag(seg string) string {
	if len(seg) > 1 && seg[1] == '$' {
		if len(seg) > 2 && seg[2] == '+' {
			if len(seg) > 3 && seg[3] >= '2' && seg[3] <= '7' {
				return expiryPlus(seg, seg[3], 4, "SERIAL")
			}
			return expiryPlain(seg, 3, 4, "SERIAL")
		}
		if len(seg) > 2 && seg[2] >= '2' && seg[2] <= '7' {
			return expiryPlus(seg, seg[2], 3, "LOT NUMBER")
		}
		return expiryPlain(seg, 2, 4, "LOT NUMBER")
	}
	if len(seg) > 1 && seg[1] == '+' {
		return "SERIAL: " + sliceFrom(seg, 2) + "\n"
	}
	return "LOT NUMBER: " + sliceFrom(seg, 1) + "\n"
}

// expiryPlus decodes the digit-selected date layouts ('2'..'7') that
// follow a '$$' or '$$+' prefix at dateStart, then the field's name.
func expiryPlus(seg string, code byte, dateStart int, fieldName string) string {
	var layout string
	var length, offset int
	switch code {
	case '2':
		layout, length = "MMDDYY", 6
	case '3':
		layout, length = "YYMMDD", 6
	case '4':
		layout, length = "YYMMDDHH", 8
	case '5':
		layout, length = "YYJJJ", 5
	case '6':
		layout, length = "YYJJJHH", 7
	case '7':
		length = 0
	}
	offset = dateStart + length
	var b strings.Builder
	if layout != "" {
		if d, ok := convertDate(layout, safeSlice(seg, dateStart, length)); ok {
			b.WriteString("EXPIRY: " + d + "\n")
		}
	}
	b.WriteString(fieldName + ": " + sliceFrom(seg, offset) + "\n")
	return b.String()
}

// expiryPlain decodes the bare '$$'/'$$+' prefix (no date-format digit):
// a fixed MM/YY expiry followed by the field's name.
func expiryPlain(seg string, dateStart, dateLength int, fieldName string) string {
	var b strings.Builder
	if d, ok := convertDate("MMYY", safeSlice(seg, dateStart, dateLength)); ok {
		b.WriteString("EXPIRY: " + d + "\n")
	}
	b.WriteString(fieldName + ": " + sliceFrom(seg, dateStart+dateLength) + "\n")
	return b.String()
}

func secondaryDataIdentifier(seg string) string {
	di, value := splitDataIdentifier(seg)
	entry, ok := dataIdentifiers[di]
	if !ok {
		return ""
	}
	if entry.dateLayout != "" {
		if d, ok := convertDate(entry.dateLayout, value); ok {
			return entry.name + ": " + d + "\n"
		}
	}
	return entry.name + ": " + value + "\n"
}

// splitDataIdentifier splits a secondary segment into its leading
// identifier (0-2 digits then one letter) and trailing value.
func splitDataIdentifier(s string) (di, value string) {
	i := 0
	for i < len(s) && i < 2 && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) {
		i++
	}
	return s[:i], s[i:]
}

func safeSlice(s string, start, n int) string {
	if start >= len(s) {
		return ""
	}
	end := start + n
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

func sliceFrom(s string, start int) string {
	if start >= len(s) {
		return ""
	}
	return s[start:]
}

var monthAbbrev = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// convertDate renders a fixed-layout date field as human-readable text.
func convertDate(layout, s string) (string, bool) {
	get2 := func(i int) (int, bool) {
		if i+2 > len(s) {
			return 0, false
		}
		v, err := strconv.Atoi(s[i : i+2])
		return v, err == nil
	}
	switch layout {
	case "MMDDYY":
		mm, ok1 := get2(0)
		dd, ok2 := get2(2)
		yy, ok3 := get2(4)
		if !ok1 || !ok2 || !ok3 || mm < 1 || mm > 12 {
			return "", false
		}
		return fmt.Sprintf("%d %s %d", dd, monthAbbrev[mm], 2000+yy), true
	case "YYMMDD":
		yy, ok1 := get2(0)
		mm, ok2 := get2(2)
		dd, ok3 := get2(4)
		if !ok1 || !ok2 || !ok3 || mm < 1 || mm > 12 {
			return "", false
		}
		return fmt.Sprintf("%d %s %d", dd, monthAbbrev[mm], 2000+yy), true
	case "YYMMDDHH":
		yy, ok1 := get2(0)
		mm, ok2 := get2(2)
		dd, ok3 := get2(4)
		hh, ok4 := get2(6)
		if !ok1 || !ok2 || !ok3 || !ok4 || mm < 1 || mm > 12 {
			return "", false
		}
		return fmt.Sprintf("%d %s %d %02d:00", dd, monthAbbrev[mm], 2000+yy, hh), true
	case "YYJJJ":
		yy, ok1 := get2(0)
		if !ok1 || len(s) < 5 {
			return "", false
		}
		return fmt.Sprintf("%d DAY %s", 2000+yy, s[2:5]), true
	case "YYJJJHH":
		yy, ok1 := get2(0)
		hh, ok2 := get2(5)
		if !ok1 || !ok2 || len(s) < 7 {
			return "", false
		}
		return fmt.Sprintf("%d DAY %s %02d:00", 2000+yy, s[2:5], hh), true
	case "MMYY":
		mm, ok1 := get2(0)
		yy, ok2 := get2(2)
		if !ok1 || !ok2 || mm < 1 || mm > 12 {
			return "", false
		}
		return fmt.Sprintf("%s %d", monthAbbrev[mm], 2000+yy), true
	case "YYYYMMDD":
		if len(s) < 8 {
			return "", false
		}
		yyyy, err1 := strconv.Atoi(s[0:4])
		mm, ok2 := get2(4)
		dd, ok3 := get2(6)
		if err1 != nil || !ok2 || !ok3 || mm < 1 || mm > 12 {
			return "", false
		}
		return fmt.Sprintf("%d %s %d", dd, monthAbbrev[mm], yyyy), true
	}
	return "", false
}
