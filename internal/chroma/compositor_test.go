package chroma

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func uniformNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestApplyClassification(t *testing.T) {
	target := Color{100, 100, 100}
	opts := Options{Target: target, Tolerance: 20, Smoothness: 30, BrushSize: 20}

	// One row of pixels at known distances from the target.
	img := image.NewNRGBA(image.Rect(0, 0, 5, 1))
	img.SetNRGBA(0, 0, color.NRGBA{100, 100, 100, 255}) // d = 0
	img.SetNRGBA(1, 0, color.NRGBA{120, 100, 100, 255}) // d = 20, boundary transparent
	img.SetNRGBA(2, 0, color.NRGBA{135, 100, 100, 255}) // d = 35, mid ramp
	img.SetNRGBA(3, 0, color.NRGBA{150, 100, 100, 255}) // d = 50, boundary opaque
	img.SetNRGBA(4, 0, color.NRGBA{200, 100, 100, 17})  // d = 100, forced opaque

	require.NoError(t, Apply(img, opts))

	require.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	require.Equal(t, uint8(0), img.NRGBAAt(1, 0).A, "d == tolerance is transparent")
	require.Equal(t, uint8(127), img.NRGBAAt(2, 0).A, "ramp truncates 127.5 to 127")
	require.Equal(t, uint8(255), img.NRGBAAt(3, 0).A, "d == tolerance+smoothness is opaque")
	require.Equal(t, uint8(255), img.NRGBAAt(4, 0).A, "opaque branch discards prior alpha")
}

func TestApplyPreservesResidualRGB(t *testing.T) {
	opts := Options{Target: Color{240, 240, 240}, Tolerance: 50, Smoothness: 10, BrushSize: 20}

	img := uniformNRGBA(3, 3, color.NRGBA{235, 240, 245, 255})
	require.NoError(t, Apply(img, opts))

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			got := img.NRGBAAt(x, y)
			require.Equal(t, uint8(0), got.A)
			require.Equal(t, color.NRGBA{235, 240, 245, 0}, got, "transparent pixels keep residual RGB")
		}
	}
}

func TestApplyRampMonotone(t *testing.T) {
	target := Color{0, 0, 0}
	opts := Options{Target: target, Tolerance: 20, Smoothness: 30, BrushSize: 20}

	img := image.NewNRGBA(image.Rect(0, 0, 31, 1))
	for i := 0; i <= 30; i++ {
		img.SetNRGBA(i, 0, color.NRGBA{uint8(20 + i), 0, 0, 255}) // d = 20..50
	}
	require.NoError(t, Apply(img, opts))

	prev := img.NRGBAAt(0, 0).A
	require.Equal(t, uint8(0), prev)
	for i := 1; i <= 30; i++ {
		a := img.NRGBAAt(i, 0).A
		require.GreaterOrEqual(t, a, prev, "alpha must not decrease along the ramp (i=%d)", i)
		prev = a
	}
	require.Equal(t, uint8(255), prev)
}

func TestApplyZeroSmoothnessBehavesAsOne(t *testing.T) {
	target := Color{100, 100, 100}
	opts := Options{Target: target, Tolerance: 20, Smoothness: 0, BrushSize: 20}

	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{120, 100, 100, 255}) // d = 20
	img.SetNRGBA(1, 0, color.NRGBA{120, 103, 100, 255}) // d = sqrt(409) ~ 20.22, inside unit band
	img.SetNRGBA(2, 0, color.NRGBA{121, 100, 100, 255}) // d = 21, past the unit band

	require.NoError(t, Apply(img, opts))

	require.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	mid := img.NRGBAAt(1, 0).A
	require.Greater(t, mid, uint8(0))
	require.Less(t, mid, uint8(255))
	require.Equal(t, uint8(255), img.NRGBAAt(2, 0).A)
}

func TestApplyIdempotentOutsideRampBand(t *testing.T) {
	target := Color{10, 20, 30}
	opts := Options{Target: target, Tolerance: 20, Smoothness: 30, BrushSize: 20}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})    // transparent after pass
	img.SetNRGBA(1, 0, color.NRGBA{15, 20, 30, 255})    // d = 5, transparent
	img.SetNRGBA(2, 0, color.NRGBA{255, 20, 30, 255})   // far outside, opaque
	img.SetNRGBA(3, 0, color.NRGBA{200, 200, 200, 255}) // far outside, opaque

	require.NoError(t, Apply(img, opts))

	first := make([]uint8, len(img.Pix))
	copy(first, img.Pix)

	require.NoError(t, Apply(img, opts))
	require.Equal(t, first, img.Pix, "a second pass with identical options must not change anything")
}

// The 4x4 scenario: half the pixels match the target exactly, the other
// half sit at distance 50, which with tolerance 20 and smoothness 30 is
// exactly the opaque boundary.
func TestApplyFourByFourScenario(t *testing.T) {
	target := Color{10, 20, 30}
	other := color.NRGBA{60, 20, 30, 255} // d = 50
	opts := Options{Target: target, Tolerance: 20, Smoothness: 30, BrushSize: 20}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if y < 2 {
				img.SetNRGBA(x, y, color.NRGBA{10, 20, 30, 255})
			} else {
				img.SetNRGBA(x, y, other)
			}
		}
	}

	require.NoError(t, Apply(img, opts))

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			a := img.NRGBAAt(x, y).A
			if y < 2 {
				require.Equal(t, uint8(0), a, "matching pixel (%d,%d)", x, y)
			} else {
				require.Equal(t, uint8(255), a, "boundary pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestApplyRejectsBadInput(t *testing.T) {
	require.Error(t, Apply(nil, Options{Tolerance: 1, BrushSize: 20}))
	require.Error(t, Apply(image.NewNRGBA(image.Rect(0, 0, 0, 0)), Options{Tolerance: 1, BrushSize: 20}))

	img := uniformNRGBA(2, 2, color.NRGBA{0, 0, 0, 255})
	require.Error(t, Apply(img, Options{Tolerance: -1, BrushSize: 20}))
	require.Error(t, Apply(img, Options{Tolerance: 1, Smoothness: -1, BrushSize: 20}))
}
