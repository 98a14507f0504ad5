// Package canny implements automatic-threshold Canny-style edge detection
// over the greyscale image produced by the imaging package.
package canny

import (
	"math"

	"github.com/lmars/dm200/imaging"
)

// kernelRadius and kernelWidth fix the Gaussian smoothing kernel used
// before gradient estimation.
const (
	kernelRadius = 2
	kernelWidth  = 8
)

// Thresholds returns the low/high hysteresis thresholds derived from the
// dark/light contrast estimate, following low = 1.6+6.4f, high = 2.0+8.0f
// where f is a normalised contrast term.
func Thresholds(dark, light int) (low, high float64) {
	contrast := float64(light-dark) / 255
	f := (contrast*(1-0.35*contrast) - 0.048) / (0.42 - 0.048)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	low = 1.6 + 6.4*f
	high = 2.0 + 8.0*f
	return low, high
}

// Detect runs the edge detector and returns a binary edge mask the same
// shape as img: true where an edge pixel was confirmed.
func Detect(img *imaging.Image, dark, light int) *imaging.BinaryImage {
	low, high := Thresholds(dark, light)
	grey := imaging.ToGrey(img)
	smoothed := gaussianBlur(grey)
	gx, gy := sobel(smoothed)

	w, h := grey.Width, grey.Height
	mag := make([]float64, w*h)
	dir := make([]float64, w*h)
	for i := range mag {
		mag[i] = gx[i]*gx[i] + gy[i]*gy[i]
		dir[i] = math.Atan2(gy[i], gx[i])
	}

	suppressed := nonMaxSuppress(w, h, mag, dir)
	return hysteresis(w, h, suppressed, low*low, high*high)
}

func gaussianBlur(img *imaging.Image) []float64 {
	w, h := img.Width, img.Height
	sigma := float64(kernelWidth) / (2 * float64(kernelRadius+1))
	kernel := make([]float64, 2*kernelRadius+1)
	sum := 0.0
	for i := -kernelRadius; i <= kernelRadius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+kernelRadius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k := -kernelRadius; k <= kernelRadius; k++ {
				sx := clamp(x+k, 0, w-1)
				acc += kernel[k+kernelRadius] * float64(img.At(sx, y, 0))
			}
			tmp[y*w+x] = acc
		}
	}
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k := -kernelRadius; k <= kernelRadius; k++ {
				sy := clamp(y+k, 0, h-1)
				acc += kernel[k+kernelRadius] * tmp[sy*w+x]
			}
			out[y*w+x] = acc
		}
	}
	result := imaging.NewImage(w, h, 1)
	for i, v := range out {
		result.Pix[i] = byte(clampf(v, 0, 255))
	}
	return result
}

func sobel(img *imaging.Image) (gx, gy []float64) {
	w, h := img.Width, img.Height
	gx = make([]float64, w*h)
	gy = make([]float64, w*h)
	kx := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	ky := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sx, sy float64
			for j := -1; j <= 1; j++ {
				for i := -1; i <= 1; i++ {
					px := clamp(x+i, 0, w-1)
					py := clamp(y+j, 0, h-1)
					v := float64(img.At(px, py, 0))
					sx += kx[j+1][i+1] * v
					sy += ky[j+1][i+1] * v
				}
			}
			gx[y*w+x] = sx
			gy[y*w+x] = sy
		}
	}
	return gx, gy
}

// nonMaxSuppress keeps only local maxima of the squared gradient magnitude
// along the gradient direction.
func nonMaxSuppress(w, h int, mag, dir []float64) []float64 {
	out := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			angle := dir[idx]
			// quantise to one of 4 principal directions
			deg := angle * 180 / math.Pi
			if deg < 0 {
				deg += 180
			}
			var n1, n2 float64
			switch {
			case deg < 22.5 || deg >= 157.5:
				n1, n2 = mag[idx-1], mag[idx+1]
			case deg < 67.5:
				n1, n2 = mag[idx-w+1], mag[idx+w-1]
			case deg < 112.5:
				n1, n2 = mag[idx-w], mag[idx+w]
			default:
				n1, n2 = mag[idx-w-1], mag[idx+w+1]
			}
			if mag[idx] >= n1 && mag[idx] >= n2 {
				out[idx] = mag[idx]
			}
		}
	}
	return out
}

// hysteresis performs non-recursive edge following: seed from pixels above
// highSq, then propagate to connected pixels above lowSq via an explicit
// stack.
func hysteresis(w, h int, mag []float64, lowSq, highSq float64) *imaging.BinaryImage {
	out := imaging.NewBinaryImage(w, h)
	visited := make([]bool, w*h)
	var stack []int

	for i, m := range mag {
		if m >= highSq {
			stack = append(stack, i)
			visited[i] = true
		}
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out.Pix[idx] = 255
		x, y := idx%w, idx/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				nidx := ny*w + nx
				if visited[nidx] {
					continue
				}
				if mag[nidx] >= lowSq {
					visited[nidx] = true
					stack = append(stack, nidx)
				}
			}
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
