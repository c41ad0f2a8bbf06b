package chroma

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB triple. Colors are compared only by distance,
// never by identity; alpha lives in the raster, not here.
type Color struct {
	R, G, B uint8
}

// Distance returns the Euclidean distance between two colors in RGB
// space. It is symmetric and total; the maximum for 8-bit channels is
// sqrt(3*255^2), roughly 441.67.
func Distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ParseHex parses a "#RRGGBB" or "RRGGBB" color string.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
