package reedsolomon

import (
	"bytes"
	"testing"
)

func TestDecodeNoErrors(t *testing.T) {
	const nroots = 8
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	enc := NewEncoder(len(data)+nroots, nroots)
	block := enc.Encode(data)

	dec := NewDecoder(len(block), nroots)
	got := append([]byte(nil), block...)
	n, err := dec.Decode(got, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 corrections, got %d", n)
	}
	if !bytes.Equal(got, block) {
		t.Fatalf("decode modified a clean block")
	}
}

func TestDecodeCorrectsMaxErrors(t *testing.T) {
	const nroots = 8
	data := []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}
	enc := NewEncoder(len(data)+nroots, nroots)
	block := enc.Encode(data)

	maxErrors := ErrorBudget(nroots, 0)
	if maxErrors != 4 {
		t.Fatalf("expected error budget 4, got %d", maxErrors)
	}

	damaged := append([]byte(nil), block...)
	for i := 0; i < maxErrors; i++ {
		damaged[i*2] ^= 0xFF
	}

	dec := NewDecoder(len(block), nroots)
	n, err := dec.Decode(damaged, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != maxErrors {
		t.Fatalf("expected %d corrections, got %d", maxErrors, n)
	}
	if !bytes.Equal(damaged, block) {
		t.Fatalf("decoded block does not match original:\n got  %v\n want %v", damaged, block)
	}
}

func TestDecodeUncorrectableReturnsError(t *testing.T) {
	const nroots = 8
	data := []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}
	enc := NewEncoder(len(data)+nroots, nroots)
	block := enc.Encode(data)

	damaged := append([]byte(nil), block...)
	for i := 0; i < nroots; i++ {
		damaged[i] ^= 0xFF
	}

	dec := NewDecoder(len(block), nroots)
	if _, err := dec.Decode(damaged, nil); err != ErrUncorrectable {
		t.Fatalf("expected ErrUncorrectable, got %v", err)
	}
}

func TestDecodeRejectsOverBudgetCorrectionWithErasures(t *testing.T) {
	const nroots = 8
	data := []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}
	enc := NewEncoder(len(data)+nroots, nroots)
	block := enc.Encode(data)

	// Declare 7 positions as erasures, leaving an error budget of
	// floor((8-7)/2)=0 for any further unlocated error, then damage one
	// more position the decoder was not told about. The combined
	// corruption (2*1+7=9) exceeds the block's correcting capacity
	// (nroots=8) by one: Chien search can still land on a self-consistent
	// locator for it, but the result is not trustworthy and must be
	// rejected rather than returned as a successful correction.
	damaged := append([]byte(nil), block...)
	erasurePositions := []int{0, 1, 2, 3, 4, 5, 6}
	for _, p := range erasurePositions {
		damaged[p] ^= 0xFF
	}
	damaged[len(damaged)-1] ^= 0xFF

	dec := NewDecoder(len(block), nroots)
	if _, err := dec.Decode(damaged, erasurePositions); err != ErrUncorrectable {
		t.Fatalf("expected ErrUncorrectable for over-budget correction, got %v", err)
	}
}

func TestDecodeWithErasures(t *testing.T) {
	const nroots = 8
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	enc := NewEncoder(len(data)+nroots, nroots)
	block := enc.Encode(data)

	// With every damaged position declared an erasure, up to nroots symbols can be
	// recovered, double the no-erasure error budget.
	damaged := append([]byte(nil), block...)
	erasurePositions := []int{0, 2, 4, 6, 8, 10, 12, 14}
	for _, p := range erasurePositions {
		damaged[p] = 0
	}

	dec := NewDecoder(len(block), nroots)
	n, err := dec.Decode(damaged, erasurePositions)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(erasurePositions) {
		t.Fatalf("expected %d corrections, got %d", len(erasurePositions), n)
	}
	if !bytes.Equal(damaged, block) {
		t.Fatalf("decoded block does not match original:\n got  %v\n want %v", damaged, block)
	}
}

func TestUnusedErrorCorrection(t *testing.T) {
	if got := UnusedErrorCorrection(8, 0, 0); got != 1 {
		t.Fatalf("expected 1.0 unused with no errors, got %v", got)
	}
	if got := UnusedErrorCorrection(8, 4, 0); got != 0 {
		t.Fatalf("expected 0 unused at full error budget, got %v", got)
	}
}
