package chroma

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// EstimateBackground samples the four corners and the top-center pixel
// of img and averages them into an estimated background color. Icons
// are usually drawn on a uniform backdrop that touches all four
// corners, so this stays cheap; there is no majority vote or outlier
// rejection. Alpha is ignored.
//
// Degenerate images are fine: on a 1x1 image the five samples coincide
// and simply weight that pixel more heavily. Only a zero-area image is
// an error.
func EstimateBackground(img image.Image) (Color, error) {
	if img == nil {
		return Color{}, fmt.Errorf("nil image provided")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return Color{}, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	points := [5]image.Point{
		{bounds.Min.X, bounds.Min.Y},
		{bounds.Max.X - 1, bounds.Min.Y},
		{bounds.Min.X, bounds.Max.Y - 1},
		{bounds.Max.X - 1, bounds.Max.Y - 1},
		{bounds.Min.X + width/2, bounds.Min.Y},
	}

	var sumR, sumG, sumB float64
	for _, p := range points {
		c := color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA)
		sumR += float64(c.R)
		sumG += float64(c.G)
		sumB += float64(c.B)
	}

	// Per-channel mean, rounded to nearest rather than truncated.
	return Color{
		R: uint8(math.Round(sumR / 5)),
		G: uint8(math.Round(sumG / 5)),
		B: uint8(math.Round(sumB / 5)),
	}, nil
}
