// Package overlay records manual background strokes painted over a
// scaled on-screen rendering of the source raster.
package overlay

import (
	"fmt"
	"image"
	"math"

	"github.com/MeKo-Tech/iconkey/internal/chroma"
)

// Viewport is the rectangle the raster occupies on screen, in the same
// coordinate space as incoming pointer positions. Display and raster
// sizes may differ because of responsive layout.
type Viewport struct {
	Left, Top     float64
	Width, Height float64
}

// Overlay accumulates strokes as opaque discs of the current target
// color. It matches the source raster dimensions exactly and
// contributes nothing where its alpha is zero. Strokes persist until
// Reset; loading a new source image resets at the new dimensions.
type Overlay struct {
	img *image.NRGBA
}

// New creates an empty overlay for a raster of the given size.
func New(width, height int) (*Overlay, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid overlay dimensions %dx%d", width, height)
	}
	return &Overlay{img: image.NewNRGBA(image.Rect(0, 0, width, height))}, nil
}

// Reset discards all strokes and resizes the overlay.
func (o *Overlay) Reset(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid overlay dimensions %dx%d", width, height)
	}
	o.img = image.NewNRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Image exposes the stroke buffer for compositing. The compositor only
// reads it; all writes go through Paint.
func (o *Overlay) Image() *image.NRGBA {
	return o.img
}

// Bounds returns the overlay dimensions.
func (o *Overlay) Bounds() image.Rectangle {
	return o.img.Bounds()
}

// Paint maps a pointer position from display space to raster space and
// fills a disc of color c there. Positions outside the viewport are
// ignored and return false; that is a frequent, expected event and is
// neither clamped nor logged.
//
// brushSize is a diameter in display pixels. The raster-space radius is
// scaled by the horizontal factor only, so under non-uniform display
// scaling the brush stays circular in raster space instead of display
// space. An accepted asymmetry.
//
// Each call is a discrete event. A fast drag is a series of Paint calls
// at pointer-move frequency with no stroke interpolation between them;
// visible gaps at high drag speed are a known limitation.
func (o *Overlay) Paint(vp Viewport, pointerX, pointerY float64, brushSize int, c chroma.Color) bool {
	if vp.Width <= 0 || vp.Height <= 0 || brushSize <= 0 {
		return false
	}

	relX := pointerX - vp.Left
	relY := pointerY - vp.Top
	if relX < 0 || relY < 0 || relX > vp.Width || relY > vp.Height {
		return false
	}

	bounds := o.img.Bounds()
	scaleX := float64(bounds.Dx()) / vp.Width
	scaleY := float64(bounds.Dy()) / vp.Height

	o.fillDisc(relX*scaleX, relY*scaleY, float64(brushSize)*scaleX/2, c)
	return true
}

// fillDisc paints an opaque disc into the stroke buffer. Membership is
// tested at integer pixel coordinates with an inclusive boundary, so a
// pixel exactly radius away from the center is painted.
func (o *Overlay) fillDisc(cx, cy, radius float64, c chroma.Color) {
	bounds := o.img.Bounds()

	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	if minX < bounds.Min.X {
		minX = bounds.Min.X
	}
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxX > bounds.Max.X-1 {
		maxX = bounds.Max.X - 1
	}
	if maxY > bounds.Max.Y-1 {
		maxY = bounds.Max.Y - 1
	}

	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				i := o.img.PixOffset(x, y)
				o.img.Pix[i] = c.R
				o.img.Pix[i+1] = c.G
				o.img.Pix[i+2] = c.B
				o.img.Pix[i+3] = 255
			}
		}
	}
}
