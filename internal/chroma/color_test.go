package chroma

import (
	"math"
	"testing"
)

func TestDistanceSymmetricAndZero(t *testing.T) {
	pairs := []struct {
		a, b Color
	}{
		{Color{0, 0, 0}, Color{255, 255, 255}},
		{Color{10, 20, 30}, Color{30, 20, 10}},
		{Color{200, 200, 200}, Color{200, 200, 200}},
		{Color{255, 0, 0}, Color{0, 255, 0}},
	}

	for _, p := range pairs {
		if got, want := Distance(p.a, p.b), Distance(p.b, p.a); got != want {
			t.Fatalf("Distance(%v,%v)=%v != Distance(%v,%v)=%v", p.a, p.b, got, p.b, p.a, want)
		}
	}

	if d := Distance(Color{42, 17, 99}, Color{42, 17, 99}); d != 0 {
		t.Fatalf("expected zero distance for identical colors, got %v", d)
	}
}

func TestDistanceRange(t *testing.T) {
	max := Distance(Color{0, 0, 0}, Color{255, 255, 255})
	want := math.Sqrt(3 * 255 * 255)
	if math.Abs(max-want) > 1e-9 {
		t.Fatalf("expected max distance %v, got %v", want, max)
	}

	// Single-channel differences are exact.
	if d := Distance(Color{60, 20, 30}, Color{10, 20, 30}); d != 50 {
		t.Fatalf("expected distance 50, got %v", d)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FFFFFF", Color{255, 255, 255}, false},
		{"000000", Color{0, 0, 0}, false},
		{"#a92727", Color{169, 39, 39}, false},
		{"#FFF", Color{}, true},
		{"#GGGGGG", Color{}, true},
		{"", Color{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseHex(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := Color{R: 169, G: 39, B: 39}
	if got := c.Hex(); got != "#A92727" {
		t.Fatalf("Hex() = %q", got)
	}
	back, err := ParseHex(c.Hex())
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if back != c {
		t.Fatalf("round trip %v != %v", back, c)
	}
}
