// Package imgio decodes source images and writes PNG output with exact
// alpha preservation.
package imgio

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Register common source formats, including WebP via x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Decode reads an image from r, returning the decoded image and the
// detected format string ("png", "jpeg", "webp", ...).
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// DecodeFile decodes the image stored at path.
func DecodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, format, nil
}

// ToNRGBA copies src into a mutable non-premultiplied buffer anchored
// at the origin. The compositor works on NRGBA so fully transparent
// pixels keep their residual RGB values.
func ToNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	if n, ok := src.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
		copy(dst.Pix, n.Pix)
		return dst
	}

	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

// CompressionLevel maps a user-facing name (default, speed, best, none)
// to a png.CompressionLevel. Unknown names fall back to the default.
func CompressionLevel(name string) png.CompressionLevel {
	switch name {
	case "speed":
		return png.BestSpeed
	case "best":
		return png.BestCompression
	case "none":
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

// EncodePNG writes img to w as PNG. PNG is lossless, which the output
// contract requires: alpha values survive a decode round trip exactly.
func EncodePNG(w io.Writer, img image.Image, level png.CompressionLevel) error {
	enc := png.Encoder{CompressionLevel: level}
	return enc.Encode(w, img)
}

// WriteFile encodes img as PNG at path, creating parent directories as
// needed.
func WriteFile(path string, img image.Image, level png.CompressionLevel) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := EncodePNG(f, img, level); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}

	return f.Close()
}
