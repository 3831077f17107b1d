package entity

import (
	"fmt"
	"math"
)

// Color is a non-linear sRGB color with alpha. Channels are in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Hex returns the color as #rrggbb, or #rrggbbaa when it is not opaque.
func (c Color) Hex() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B), channel8(c.A))
}

func channel8(v float32) uint8 {
	switch {
	case math.IsNaN(float64(v)) || v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(math.Round(float64(v) * 255))
	}
}
