package datamatrix

import (
	"testing"

	"github.com/lmars/dm200/bytestream"
	"github.com/lmars/dm200/imaging"
)

func TestDefaultOptionsAreUsable(t *testing.T) {
	opts := DefaultOptions()
	if opts.MinSegmentLength <= 0 {
		t.Fatalf("expected a positive minimum segment length")
	}
	if opts.TimingThreshold <= 0 || opts.TimingThreshold >= 1 {
		t.Fatalf("expected a timing threshold in (0,1), got %v", opts.TimingThreshold)
	}
	if opts.SamplingWindow != 0 {
		t.Fatalf("expected the solid sampling window by default")
	}
}

func TestDecodeReturnsErrNoSymbolOnBlankImage(t *testing.T) {
	grey := imaging.NewImage(64, 64, 1)
	for i := range grey.Pix {
		grey.Pix[i] = 200
	}
	bin := imaging.NewBinaryImage(64, 64)

	_, err := Decode(grey, bin, 0, 255, DefaultOptions())
	if err != ErrNoSymbol {
		t.Fatalf("expected ErrNoSymbol on a blank image with no edges, got %v", err)
	}
}

// The following exercise humanReadable's documented precedence directly,
// since constructing full pipeline fixtures (valid perimeters, timing
// patterns, and Reed-Solomon-encoded grids) belongs to the lower-level
// packages' own tests; this package's contract is the orchestration and
// the post-processing precedence it applies on top of a decoded payload.

func TestHumanReadablePrecedenceHIBCBeatsGS1Flag(t *testing.T) {
	text := "+A99912345/1234511"
	opts := Options{HumanReadable: true}
	outcome := &Outcome{}
	state := &bytestream.DecodeState{IsGS1: true}

	got := humanReadable(text, state, opts, outcome)
	if !outcome.IsHIBC {
		t.Fatalf("expected HIBC precedence to win, got outcome %+v, text %q", outcome, got)
	}
}

func TestHumanReadableFallsBackToGS1WhenFlagged(t *testing.T) {
	text := "010006878000010813301231"
	opts := Options{HumanReadable: true}
	outcome := &Outcome{}
	state := &bytestream.DecodeState{IsGS1: true}

	got := humanReadable(text, state, opts, outcome)
	if outcome.IsHIBC || outcome.IsISO15434 {
		t.Fatalf("did not expect HIBC or ISO 15434 to match, got outcome %+v", outcome)
	}
	if got == text {
		t.Fatalf("expected GS1 human-readable rendering to change the raw text")
	}
}

func TestHumanReadableUsesDigitalLinkWhenPrefixSet(t *testing.T) {
	text := "010006878000010813301231"
	opts := Options{HumanReadable: true, GS1URLPrefix: "https://test.domain"}
	outcome := &Outcome{}
	state := &bytestream.DecodeState{IsGS1: true}

	got := humanReadable(text, state, opts, outcome)
	want := "https://test.domain/01/00068780000108/13/301231"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHumanReadableFallsBackToRawASCII(t *testing.T) {
	text := "HELLO WORLD"
	opts := Options{HumanReadable: true}
	outcome := &Outcome{}
	state := &bytestream.DecodeState{}

	got := humanReadable(text, state, opts, outcome)
	if got != text {
		t.Fatalf("expected raw ASCII passthrough, got %q", got)
	}
	if outcome.IsHIBC || outcome.IsISO15434 {
		t.Fatalf("did not expect any post-processing flag set, got %+v", outcome)
	}
}
