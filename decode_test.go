package dm200

import "testing"

func TestDecodeRejectsMismatchedBufferLength(t *testing.T) {
	_, err := Decode(make([]byte, 10), 10, 10, 8, Config{})
	if err != ErrInvalidImage {
		t.Fatalf("expected ErrInvalidImage for a short 8bpp buffer, got %v", err)
	}
}

func TestDecodeRejectsUnsupportedBitsPerPixel(t *testing.T) {
	_, err := Decode(make([]byte, 100), 10, 10, 16, Config{})
	if err != ErrInvalidImage {
		t.Fatalf("expected ErrInvalidImage for unsupported bits-per-pixel, got %v", err)
	}
}

func TestDecodeRejectsInvertedGridBounds(t *testing.T) {
	_, err := Decode(make([]byte, 100), 10, 10, 8, Config{MinGridDimension: 40, MaxGridDimension: 20})
	if err != ErrInvalidConfig {
		t.Fatalf("expected ErrInvalidConfig for min > max grid dimension, got %v", err)
	}
}

func TestDecodeRejectsOutOfRangeGridDimension(t *testing.T) {
	_, err := Decode(make([]byte, 100), 10, 10, 8, Config{MinGridDimension: 200})
	if err != ErrInvalidConfig {
		t.Fatalf("expected ErrInvalidConfig for a grid dimension outside [8,144], got %v", err)
	}
}

func TestDecodeReturnsErrNotFoundOnBlankImage(t *testing.T) {
	pixels := make([]byte, 64*64)
	for i := range pixels {
		pixels[i] = 220
	}
	_, err := Decode(pixels, 64, 64, 8, Config{MaxWorkers: 2})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on a blank image, got %v", err)
	}
}

func TestSizesInRangeFiltersByShortestAndLongestSide(t *testing.T) {
	sizes := sizesInRange(10, 20)
	if len(sizes) == 0 {
		t.Fatalf("expected at least one size in [10,20]")
	}
	for _, s := range sizes {
		shortest, longest := s.DimX, s.DimY
		if shortest > longest {
			shortest, longest = longest, shortest
		}
		if shortest < 10 || longest > 20 {
			t.Fatalf("size %+v escaped the [10,20] bound", s)
		}
	}
}

func TestSizesInRangeNilWhenUnbounded(t *testing.T) {
	if sizes := sizesInRange(0, 0); sizes != nil {
		t.Fatalf("expected nil sizes (no restriction) when both bounds are zero, got %v", sizes)
	}
}

func TestBuildImageHandlesAllSupportedDepths(t *testing.T) {
	if _, ok := buildImage(make([]byte, 4*4), 4, 4, 8); !ok {
		t.Fatalf("expected 8bpp buffer to build")
	}
	if _, ok := buildImage(make([]byte, 4*4*3), 4, 4, 24); !ok {
		t.Fatalf("expected 24bpp buffer to build")
	}
	if _, ok := buildImage(make([]byte, 4*4*4), 4, 4, 32); !ok {
		t.Fatalf("expected 32bpp buffer to build")
	}
	if _, ok := buildImage(make([]byte, 4*4*4), 4, 4, 24); ok {
		t.Fatalf("expected a length mismatch to be rejected")
	}
}
