package chroma

import (
	"fmt"
	"image"
)

// Apply rewrites the alpha channel of img in place, keying out pixels
// near opts.Target. Every pixel is classified independently:
//
//	d <= tolerance                alpha 0, RGB channels untouched
//	d <= tolerance + smoothness   alpha = (d-tolerance)/smoothness * 255
//	otherwise                     alpha 255
//
// The ramp value is clamped to [0,255] and truncated on store; both
// endpoints are exact (d == tolerance gives 0, d == tolerance+smoothness
// gives 255). Transparent pixels keep their residual RGB so a later
// alpha change still reveals sensible color.
//
// The opaque branch overwrites any pre-existing alpha, so re-applying
// with different options to previous output does not round-trip;
// recomposite from the untouched source instead.
func Apply(img *image.NRGBA, opts Options) error {
	if img == nil {
		return fmt.Errorf("nil image provided")
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	tolerance := float64(opts.Tolerance)
	band := opts.falloff()
	target := opts.Target

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		offset := img.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := Color{R: img.Pix[offset], G: img.Pix[offset+1], B: img.Pix[offset+2]}
			d := Distance(px, target)

			switch {
			case d <= tolerance:
				img.Pix[offset+3] = 0
			case d <= tolerance+band:
				ramp := (d - tolerance) / band * 255
				if ramp < 0 {
					ramp = 0
				} else if ramp > 255 {
					ramp = 255
				}
				img.Pix[offset+3] = uint8(ramp)
			default:
				img.Pix[offset+3] = 255
			}

			offset += 4
		}
	}

	return nil
}
