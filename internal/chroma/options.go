package chroma

import "fmt"

// Options is the parameter snapshot for one compositing pass. Callers
// pass a fresh value per invocation; Apply never reads shared mutable
// state, so option changes made while a pass runs are not observed
// mid-pass.
type Options struct {
	// Target is the background color to key out. When AutoDetect is
	// set, callers resolve Target via EstimateBackground before the
	// pass; Apply always uses Target as given.
	Target Color

	// Tolerance is the maximum distance from Target treated as fully
	// background. The UI typically offers 0-150 but any non-negative
	// value is valid.
	Tolerance int

	// Smoothness is the width of the distance band over which alpha
	// ramps linearly from transparent to opaque. Zero behaves as one.
	Smoothness int

	// AutoDetect selects the corner-sampling detector over Target.
	AutoDetect bool

	// BrushSize is the manual-erase brush diameter in display pixels.
	BrushSize int
}

// Validate rejects configurations that would produce undefined alpha
// values in the pixel loop. Validation happens at this boundary so the
// loop itself stays total.
func (o Options) Validate() error {
	if o.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %d", o.Tolerance)
	}
	if o.Smoothness < 0 {
		return fmt.Errorf("smoothness must be non-negative, got %d", o.Smoothness)
	}
	if o.BrushSize <= 0 {
		return fmt.Errorf("brush size must be positive, got %d", o.BrushSize)
	}
	return nil
}

// falloff returns the effective smoothness band width. A zero-width
// band would divide by zero in the ramp, so it widens to one.
func (o Options) falloff() float64 {
	if o.Smoothness < 1 {
		return 1
	}
	return float64(o.Smoothness)
}
