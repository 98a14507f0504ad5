package imaging

// Erode shrinks the active region of b by the given number of iterations
// using a full 8-neighbour structuring element: a pixel survives only if
// all eight neighbours (and itself) are active.
func Erode(b *BinaryImage, iterations int) *BinaryImage {
	cur := b
	for i := 0; i < iterations; i++ {
		cur = erodeOnce(cur)
	}
	return cur
}

// Dilate grows the active region of b by the given number of iterations
// using a full 8-neighbour structuring element: a pixel becomes active if
// any of the eight neighbours (or itself) is active.
func Dilate(b *BinaryImage, iterations int) *BinaryImage {
	cur := b
	for i := 0; i < iterations; i++ {
		cur = dilateOnce(cur)
	}
	return cur
}

func erodeOnce(b *BinaryImage) *BinaryImage {
	out := NewBinaryImage(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			all := true
			for dy := -1; dy <= 1 && all; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if !b.Get(x+dx, y+dy) {
						all = false
						break
					}
				}
			}
			out.Set(x, y, all)
		}
	}
	return out
}

func dilateOnce(b *BinaryImage) *BinaryImage {
	out := NewBinaryImage(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			any := false
			for dy := -1; dy <= 1 && !any; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if b.Get(x+dx, y+dy) {
						any = true
						break
					}
				}
			}
			out.Set(x, y, any)
		}
	}
	return out
}
