package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Resize scales img to newWidth x newHeight. bilinear selects
// draw.BiLinear interpolation; otherwise draw.NearestNeighbor is used, to
// match this package's bilinear/nearest resize requirement.
func Resize(img *Image, newWidth, newHeight int, bilinear bool) *Image {
	src := toStdGray(img)
	dst := image.NewGray(image.Rect(0, 0, newWidth, newHeight))

	scaler := draw.Scaler(draw.NearestNeighbor)
	if bilinear {
		scaler = draw.BiLinear
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := NewImage(newWidth, newHeight, 1)
	copy(out.Pix, dst.Pix[:newWidth*newHeight])
	return out
}

func toStdGray(img *Image) *image.Gray {
	g := ToGrey(img)
	sg := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	copy(sg.Pix, g.Pix)
	return sg
}

// toStdImage returns a standard image.Image view of an Image, e.g. for
// encoding. Nothing in this module calls it at present.
func toStdImage(img *Image) image.Image {
	if img.Channels == 1 {
		return toStdGray(img)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgba.Set(x, y, color.RGBA{
				R: img.At(x, y, 0),
				G: img.At(x, y, 1),
				B: img.At(x, y, 2),
				A: 255,
			})
		}
	}
	return rgba
}
