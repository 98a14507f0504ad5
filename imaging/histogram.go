package imaging

// Histogram builds a 256-bucket reflectance histogram by subsampling pixels
// inside a central rectangle whose margins are radiusPercent of the image's
// width/height, stepping sampleStep pixels at a time.
func Histogram(img *Image, sampleStep int, radiusPercent float64) [256]int {
	grey := ToGrey(img)
	var hist [256]int
	if sampleStep < 1 {
		sampleStep = 1
	}
	marginX := int(float64(grey.Width) * radiusPercent / 100)
	marginY := int(float64(grey.Height) * radiusPercent / 100)
	x0, x1 := marginX, grey.Width-marginX
	y0, y1 := marginY, grey.Height-marginY
	for y := y0; y < y1; y += sampleStep {
		for x := x0; x < x1; x += sampleStep {
			hist[grey.At(x, y, 0)]++
		}
	}
	return hist
}

// DarkLight finds the two-class variance-minimising split of the image's
// reflectance histogram, returning the mean dark and mean light levels
// rescaled into 0..255. At each candidate threshold b, every grey level g
// contributes hist[g]*(g-b)^2 to the dark-side score if g<=b or the
// light-side score otherwise; the threshold with the lowest combined score
// wins. On ties the later (higher) threshold wins, biasing light symbols on
// dark backgrounds toward correct classification.
func DarkLight(img *Image, sampleStep int, radiusPercent float64) (dark, light int) {
	hist := Histogram(img, sampleStep, radiusPercent)

	bestScore := -1.0
	bestB := 0
	for b := 0; b < 256; b++ {
		var score float64
		for g := 0; g <= b; g++ {
			if hist[g] == 0 {
				continue
			}
			d := float64(g - b)
			score += float64(hist[g]) * d * d
		}
		for g := b + 1; g < 256; g++ {
			if hist[g] == 0 {
				continue
			}
			d := float64(g - b)
			score += float64(hist[g]) * d * d
		}
		if bestScore < 0 || score <= bestScore {
			bestScore = score
			bestB = b
		}
	}

	var darkSum, darkCount, lightSum, lightCount int
	for g := 0; g <= bestB; g++ {
		darkSum += g * hist[g]
		darkCount += hist[g]
	}
	for g := bestB + 1; g < 256; g++ {
		lightSum += g * hist[g]
		lightCount += hist[g]
	}
	if darkCount > 0 {
		dark = darkSum / darkCount
	} else {
		dark = bestB
	}
	if lightCount > 0 {
		light = lightSum / lightCount
	} else {
		light = bestB
	}
	return dark, light
}

// MeanlightThreshold binarises img against the dark/light estimate. The
// cutoff sits at dark + thresholdPct*(light-dark)/100 on the side with
// fewer pixels (the "short side"): if fewer pixels sit closer to light
// than to dark, the cutoff is measured in from the light end instead,
// so the minority class controls the threshold's placement. If the
// resulting proportion of active (foreground/dark) pixels exceeds 30%, the
// image is inverted so the symbol's dark modules settle on 0 (inactive)
// and the background on 255 (active), matching the Grid/BinaryImage
// convention used by the rest of the pipeline.
func MeanlightThreshold(img *Image, dark, light int, thresholdPct float64) *BinaryImage {
	grey := ToGrey(img)

	closerToDark, closerToLight := 0, 0
	for _, v := range grey.Pix {
		g := int(v)
		if g-dark < light-g {
			closerToDark++
		} else {
			closerToLight++
		}
	}

	span := float64(light - dark)
	var cutoff float64
	if closerToLight < closerToDark {
		cutoff = float64(light) - thresholdPct*span/100
	} else {
		cutoff = float64(dark) + thresholdPct*span/100
	}

	out := NewBinaryImage(grey.Width, grey.Height)
	active := 0
	for y := 0; y < grey.Height; y++ {
		for x := 0; x < grey.Width; x++ {
			isDark := float64(grey.At(x, y, 0)) < cutoff
			out.Set(x, y, isDark)
			if isDark {
				active++
			}
		}
	}

	if float64(active)/float64(grey.Width*grey.Height) > 0.30 {
		out.Invert()
	}
	return out
}
