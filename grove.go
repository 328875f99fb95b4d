package grove

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidParameter is returned (wrapped) by every builder when a numeric
// input is out of range: non-positive dimensions, too few segments, an empty
// or non-increasing profile, or a malformed attachment band. Test with
// errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorHex converts a 0xRRGGBB value to an opaque Color.
func ColorHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// IsZero reports whether c is the zero value (fully transparent black).
func (c Color) IsZero() bool {
	return c == Color{}
}

// Scale multiplies the RGB components by f, leaving alpha alone.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*c.A*255 + 0.5),
		G: uint8(clamp01(c.G)*c.A*255 + 0.5),
		B: uint8(clamp01(c.B)*c.A*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Range is a general-purpose min/max range. Used for forest areas, scale
// ranges and anywhere a builder draws a uniform value.
type Range struct {
	Min, Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Axis vectors shared by the builders.
var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
