// Package composite flattens the manual stroke overlay onto a source
// raster before the keying pass runs.
package composite

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// OverlayOnto returns a new buffer holding base with over alpha-blended
// on top. The inputs are not modified. Overlay strokes are fully opaque
// so in practice they replace the source pixels underneath; partial
// alpha still blends correctly. A dimension mismatch is a programmer
// error and fails fast rather than silently cropping.
func OverlayOnto(base, over *image.NRGBA) (*image.NRGBA, error) {
	if base == nil {
		return nil, fmt.Errorf("nil base image")
	}

	bounds := base.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("invalid base dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}

	dst := image.NewNRGBA(bounds)
	copy(dst.Pix, base.Pix)

	if over == nil {
		return dst, nil
	}
	if over.Bounds() != bounds {
		return nil, fmt.Errorf("overlay bounds %v do not match base %v", over.Bounds(), bounds)
	}

	alphaOver(dst, over)
	return dst, nil
}

func alphaOver(dst, src *image.NRGBA) {
	bounds := dst.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			if s.A == 0 {
				continue
			}

			d := dst.NRGBAAt(x, y)

			sa := float64(s.A) / 255.0
			da := float64(d.A) / 255.0

			outA := sa + da*(1.0-sa)
			if outA == 0 {
				dst.SetNRGBA(x, y, color.NRGBA{})
				continue
			}

			blend := func(srcVal, dstVal uint8) uint8 {
				srcPremult := float64(srcVal) * sa
				dstPremult := float64(dstVal) * da
				outPremult := srcPremult + dstPremult*(1.0-sa)
				return uint8(math.Round(outPremult / outA))
			}

			dst.SetNRGBA(x, y, color.NRGBA{
				R: blend(s.R, d.R),
				G: blend(s.G, d.G),
				B: blend(s.B, d.B),
				A: uint8(math.Round(outA * 255.0)),
			})
		}
	}
}
