package hibc

import "testing"

func TestDecodeMatchesFixture(t *testing.T) {
	input := "+A99912345/$$52001510X3/16D20111212/S77DEFG457"
	want := "LABELER ID: A999\n" +
		"PRODUCT ID: 1234\n" +
		"UNIT OF MEASURE: 5\n" +
		"EXPIRY: 2020 DAY 015\n" +
		"LOT NUMBER: 10X3\n" +
		"MANUFACTURE DATE YYYYMMDD: 12 Dec 2011\n" +
		"SUPPLIER SERIAL NUMBER: 77DEFG457\n"

	got, ok := Decode(input)
	if !ok {
		t.Fatalf("expected input to be recognised as HIBC")
	}
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestIsHIBCRequiresPlusPrefix(t *testing.T) {
	if IsHIBC("A99912345") {
		t.Fatalf("expected non-'+' string to not be HIBC")
	}
	if !IsHIBC("+A99912345") {
		t.Fatalf("expected '+'-prefixed string to be HIBC")
	}
}

func TestDecodeRejectsNonHIBC(t *testing.T) {
	if _, ok := Decode("plain text"); ok {
		t.Fatalf("expected Decode to reject a non-HIBC string")
	}
}
