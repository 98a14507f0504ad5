package gs1

import "testing"

func fixtureText() string {
	// AI 01 (GTIN, 14 fixed) + AI 13 (PACK DATE, 6 fixed) + AI 10 (BATCH/LOT, variable, runs to end).
	return "01" + "00068780000108" + "13" + "301231" + "10" + "ABC123"
}

func TestParseFixedAndVariableFields(t *testing.T) {
	fields := Parse(fixtureText())
	want := []Field{
		{AI: "01", Value: "00068780000108"},
		{AI: "13", Value: "301231"},
		{AI: "10", Value: "ABC123"},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d: %+v", len(fields), len(want), fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("field %d: got %+v want %+v", i, fields[i], want[i])
		}
	}
}

func TestHumanReadableMatchesFixture(t *testing.T) {
	fields := Parse(fixtureText())
	got := HumanReadable(fields)
	want := "STANDARD: GS1\nGTIN: 00068780000108\nPACK DATE: 31 Dec 2030\nBATCH/LOT: ABC123"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDigitalLinkURLMatchesFixture(t *testing.T) {
	fields := Parse(fixtureText())
	got := DigitalLinkURL("https://test.domain", fields)
	want := "https://test.domain/01/00068780000108/13/301231/10/ABC123"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseStopsAtUnrecognisedPrefix(t *testing.T) {
	fields := Parse("01" + "00068780000108" + "99" + "junk")
	if len(fields) != 1 {
		t.Fatalf("expected parsing to stop after the GTIN field, got %+v", fields)
	}
}
