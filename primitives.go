package grove

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Sphere ---

// NewSphereMesh builds a UV sphere centered on the origin. widthSegments is
// the number of vertices per latitude ring (>= 3) and heightSegments the
// number of latitude bands (>= 2). The poles are single vertices, so the
// mesh has 2 + widthSegments*(heightSegments-1) vertices.
func NewSphereMesh(radius float64, widthSegments, heightSegments int, material Material) (*Mesh, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("grove: sphere radius %g must be positive: %w", radius, ErrInvalidParameter)
	}
	if widthSegments < 3 || heightSegments < 2 {
		return nil, fmt.Errorf("grove: sphere segments %dx%d below 3x2: %w", widthSegments, heightSegments, ErrInvalidParameter)
	}
	points := make([]ProfilePoint, 0, heightSegments+1)
	for k := 0; k <= heightSegments; k++ {
		phi := float64(k) * math.Pi / float64(heightSegments)
		r := radius * math.Sin(phi)
		if k == 0 || k == heightSegments {
			r = 0
		}
		points = append(points, ProfilePoint{Radius: r, Height: radius * (1 - math.Cos(phi))})
	}
	curve, err := NewProfileCurve(points)
	if err != nil {
		return nil, err
	}
	m, err := Revolve(curve, widthSegments, material)
	if err != nil {
		return nil, err
	}
	translateMesh(m, mgl64.Vec3{0, -radius, 0})
	return m, nil
}

// --- Cylinder ---

// NewCylinderMesh builds a closed, possibly tapered cylinder along the Y
// axis, centered on the origin: bottomRadius at -height/2, topRadius at
// +height/2, with flat caps.
func NewCylinderMesh(topRadius, bottomRadius, height float64, radialSegments int, material Material) (*Mesh, error) {
	if !(topRadius > 0) || !(bottomRadius > 0) || !(height > 0) {
		return nil, fmt.Errorf("grove: cylinder %g/%g x %g needs positive dimensions: %w", topRadius, bottomRadius, height, ErrInvalidParameter)
	}
	if radialSegments < 3 {
		return nil, fmt.Errorf("grove: radial segments %d < 3: %w", radialSegments, ErrInvalidParameter)
	}
	m, err := lathe([]ProfilePoint{
		{Radius: 0, Height: 0},
		{Radius: bottomRadius, Height: 0},
		{Radius: topRadius, Height: height},
		{Radius: 0, Height: height},
	}, radialSegments, material)
	if err != nil {
		return nil, err
	}
	translateMesh(m, mgl64.Vec3{0, -height / 2, 0})
	return m, nil
}

// --- Box ---

// boxCorners lists the eight corners of a unit cube centered on the origin.
var boxCorners = [8]mgl64.Vec3{
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
}

// boxIndices winds each face counter-clockwise seen from outside.
var boxIndices = []uint16{
	0, 2, 1, 0, 3, 2, // -Z
	4, 5, 6, 4, 6, 7, // +Z
	0, 4, 7, 0, 7, 3, // -X
	1, 2, 6, 1, 6, 5, // +X
	0, 1, 5, 0, 5, 4, // -Y
	3, 7, 6, 3, 6, 2, // +Y
}

// NewBoxMesh builds an axis-aligned box centered on the origin. Corners are
// shared between faces; renderers that want hard edges should shade per
// face (Material.FlatShading).
func NewBoxMesh(width, height, depth float64, material Material) (*Mesh, error) {
	if !(width > 0) || !(height > 0) || !(depth > 0) {
		return nil, fmt.Errorf("grove: box %gx%gx%g needs positive dimensions: %w", width, height, depth, ErrInvalidParameter)
	}
	positions := make([]mgl64.Vec3, len(boxCorners))
	for i, c := range boxCorners {
		positions[i] = mgl64.Vec3{c[0] * width, c[1] * height, c[2] * depth}
	}
	return NewMesh(positions, append([]uint16(nil), boxIndices...), material)
}

// translateMesh shifts every vertex by d. Normals are unaffected.
func translateMesh(m *Mesh, d mgl64.Vec3) {
	for i, p := range m.Positions {
		m.Positions[i] = p.Add(d)
	}
	m.InvalidateBounds()
}
