package grove

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ProfilePoint is one (radius, height) control point of a ProfileCurve.
type ProfilePoint struct {
	Radius float64
	Height float64
}

// ProfileCurve is an immutable ordered list of control points with strictly
// increasing heights. A first or last point with zero radius is an apex: it
// closes the revolved surface at that end.
type ProfileCurve struct {
	points []ProfilePoint
}

// NewProfileCurve validates points and returns a curve that owns a copy.
func NewProfileCurve(points []ProfilePoint) (ProfileCurve, error) {
	if len(points) < 2 {
		return ProfileCurve{}, fmt.Errorf("grove: profile needs at least 2 points, got %d: %w", len(points), ErrInvalidParameter)
	}
	for i, p := range points {
		if p.Radius < 0 || math.IsNaN(p.Radius) || p.Height < 0 || math.IsNaN(p.Height) {
			return ProfileCurve{}, fmt.Errorf("grove: profile point %d (%g, %g) is negative: %w", i, p.Radius, p.Height, ErrInvalidParameter)
		}
		if i > 0 && p.Height <= points[i-1].Height {
			return ProfileCurve{}, fmt.Errorf("grove: profile heights not increasing at point %d: %w", i, ErrInvalidParameter)
		}
	}
	return ProfileCurve{points: append([]ProfilePoint(nil), points...)}, nil
}

// Points returns a copy of the control points.
func (c ProfileCurve) Points() []ProfilePoint {
	return append([]ProfilePoint(nil), c.points...)
}

// Len returns the number of control points.
func (c ProfileCurve) Len() int {
	return len(c.points)
}

// Height returns the height of the last control point.
func (c ProfileCurve) Height() float64 {
	if len(c.points) == 0 {
		return 0
	}
	return c.points[len(c.points)-1].Height
}

func (c ProfileCurve) bottomApex() bool {
	return len(c.points) > 0 && c.points[0].Radius == 0
}

func (c ProfileCurve) topApex() bool {
	return len(c.points) > 1 && c.points[len(c.points)-1].Radius == 0
}

// RingCount returns how many vertex rings Revolve produces for this curve.
func (c ProfileCurve) RingCount() int {
	n := len(c.points)
	if c.bottomApex() {
		n--
	}
	if c.topApex() {
		n--
	}
	return n
}

// TrunkProfileConfig parameterizes NewTrunkProfile.
type TrunkProfileConfig struct {
	Height           float64
	StartRadius      float64
	VerticalSegments int

	// AngleStart and Amplitude feed the default bulge shape
	// sin(AngleStart + i*freq)*Amplitude + StartRadius.
	AngleStart float64
	Amplitude  float64

	// Shape, when set, replaces the default shape. It receives the ring index
	// (0 at the base) and returns that ring's radius.
	Shape func(i int) float64
}

// NewTrunkProfile builds a closed trunk profile: an apex at the base, one
// ring per band at heights (i+0.5)*Height/(VerticalSegments+2) for
// i in [0, VerticalSegments+1], and an apex at Height.
//
// A shape value below zero is replaced by the straight taper
// StartRadius*(1 - h/Height) so the surface never self-intersects.
func NewTrunkProfile(cfg TrunkProfileConfig) (ProfileCurve, error) {
	if cfg.VerticalSegments < 1 {
		return ProfileCurve{}, fmt.Errorf("grove: trunk vertical segments %d < 1: %w", cfg.VerticalSegments, ErrInvalidParameter)
	}
	if !(cfg.Height > 0) {
		return ProfileCurve{}, fmt.Errorf("grove: trunk height %g must be positive: %w", cfg.Height, ErrInvalidParameter)
	}
	if !(cfg.StartRadius > 0) {
		return ProfileCurve{}, fmt.Errorf("grove: trunk start radius %g must be positive: %w", cfg.StartRadius, ErrInvalidParameter)
	}

	rings := cfg.VerticalSegments + 2
	shape := cfg.Shape
	if shape == nil {
		freq := (math.Pi - cfg.AngleStart) / float64(rings-1)
		shape = func(i int) float64 {
			return math.Sin(cfg.AngleStart+float64(i)*freq)*cfg.Amplitude + cfg.StartRadius
		}
	}

	band := cfg.Height / float64(rings)
	points := make([]ProfilePoint, 0, rings+2)
	points = append(points, ProfilePoint{Radius: 0, Height: 0})
	for i := 0; i < rings; i++ {
		h := (float64(i) + 0.5) * band
		r := shape(i)
		if r < 0 || math.IsNaN(r) {
			r = cfg.StartRadius * (1 - h/cfg.Height)
		}
		points = append(points, ProfilePoint{Radius: r, Height: h})
	}
	points = append(points, ProfilePoint{Radius: 0, Height: cfg.Height})
	return NewProfileCurve(points)
}

// Revolve sweeps curve around the vertical axis in radialSegments equal steps.
//
// Vertex layout: bottom apex (if any), then each ring from bottom to top with
// radialSegments vertices at angles j*2π/radialSegments, then the top apex (if
// any). Rings are joined by quads, apexes by triangle fans, all wound so
// normals face away from the axis.
func Revolve(curve ProfileCurve, radialSegments int, material Material) (*Mesh, error) {
	if radialSegments < 3 {
		return nil, fmt.Errorf("grove: radial segments %d < 3: %w", radialSegments, ErrInvalidParameter)
	}
	if curve.Len() < 2 {
		return nil, fmt.Errorf("grove: empty profile curve: %w", ErrInvalidParameter)
	}
	if curve.RingCount() < 1 {
		return nil, fmt.Errorf("grove: profile has no ring between its apexes: %w", ErrInvalidParameter)
	}
	return lathe(curve.points, radialSegments, material)
}

// lathe does the sweep for Revolve without the strict-height check, so flat
// caps (an apex level with its neighbouring ring) are allowed. Callers
// guarantee at least one ring and radialSegments >= 3.
func lathe(points []ProfilePoint, radialSegments int, material Material) (*Mesh, error) {
	hasBottom := points[0].Radius == 0
	hasTop := len(points) > 1 && points[len(points)-1].Radius == 0
	ringPoints := points
	if hasBottom {
		ringPoints = ringPoints[1:]
	}
	if hasTop {
		ringPoints = ringPoints[:len(ringPoints)-1]
	}
	rings := len(ringPoints)

	vertexCount := rings * radialSegments
	if hasBottom {
		vertexCount++
	}
	if hasTop {
		vertexCount++
	}
	if vertexCount > maxMeshVertices {
		return nil, fmt.Errorf("grove: revolved mesh needs %d vertices, max %d: %w", vertexCount, maxMeshVertices, ErrInvalidParameter)
	}

	sin := make([]float64, radialSegments)
	cos := make([]float64, radialSegments)
	for j := range sin {
		sin[j], cos[j] = math.Sincos(float64(j) * 2 * math.Pi / float64(radialSegments))
	}

	positions := make([]mgl64.Vec3, 0, vertexCount)
	bottom := -1
	if hasBottom {
		bottom = 0
		positions = append(positions, mgl64.Vec3{0, points[0].Height, 0})
	}
	firstRing := len(positions)
	for _, p := range ringPoints {
		for j := 0; j < radialSegments; j++ {
			positions = append(positions, mgl64.Vec3{p.Radius * cos[j], p.Height, p.Radius * sin[j]})
		}
	}
	top := -1
	if hasTop {
		top = len(positions)
		positions = append(positions, mgl64.Vec3{0, points[len(points)-1].Height, 0})
	}

	ring := func(k, j int) uint16 {
		return uint16(firstRing + k*radialSegments + j%radialSegments)
	}

	triangles := 2 * radialSegments * (rings - 1)
	if hasBottom {
		triangles += radialSegments
	}
	if hasTop {
		triangles += radialSegments
	}
	indices := make([]uint16, 0, 3*triangles)
	if hasBottom {
		for j := 0; j < radialSegments; j++ {
			indices = append(indices, uint16(bottom), ring(0, j), ring(0, j+1))
		}
	}
	for k := 0; k < rings-1; k++ {
		for j := 0; j < radialSegments; j++ {
			lo0, lo1 := ring(k, j), ring(k, j+1)
			hi0, hi1 := ring(k+1, j), ring(k+1, j+1)
			indices = append(indices, lo0, hi0, lo1, lo1, hi0, hi1)
		}
	}
	if hasTop {
		last := rings - 1
		for j := 0; j < radialSegments; j++ {
			indices = append(indices, uint16(top), ring(last, j+1), ring(last, j))
		}
	}

	return NewMesh(positions, indices, material)
}

// RingRadius returns the radius of ring k of a revolved curve.
func (c ProfileCurve) RingRadius(k int) float64 {
	if c.bottomApex() {
		k++
	}
	return c.points[k].Radius
}
