// Package preview produces display-scaled renderings of a raster. The
// preview scale is what makes display and raster coordinates differ
// when mapping brush strokes back onto pixels.
package preview

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/gift"

	"github.com/MeKo-Tech/iconkey/internal/overlay"
)

// Fit scales img down to fit within maxW x maxH, preserving aspect
// ratio. Images already small enough come back at their native size.
func Fit(img image.Image, maxW, maxH int) *image.NRGBA {
	g := gift.New(gift.ResizeToFit(maxW, maxH, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// ViewportFor returns the viewport a Fit-scaled preview of raster
// occupies, anchored at the origin. Pointer positions relative to the
// rendered preview paint through this viewport onto raster pixels.
func ViewportFor(raster image.Image, maxW, maxH int) overlay.Viewport {
	g := gift.New(gift.ResizeToFit(maxW, maxH, gift.LanczosResampling))
	b := g.Bounds(raster.Bounds())
	return overlay.Viewport{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Checkerboard flattens img over a white/gray checkerboard so
// transparency stays visible in viewers without alpha support. cell is
// the checker square size in pixels; non-positive values use 8.
func Checkerboard(img image.Image, cell int) *image.NRGBA {
	if cell <= 0 {
		cell = 8
	}

	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	light := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	dark := color.NRGBA{R: 204, G: 204, B: 204, A: 255}

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			dst.SetNRGBA(x, y, c)
		}
	}

	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}
