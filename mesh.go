package grove

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// maxMeshVertices is the largest vertex count addressable by uint16 indices.
const maxMeshVertices = 1 << 16

// Material describes how a mesh surface is shaded.
type Material struct {
	Color       Color
	Roughness   float64
	Metalness   float64
	FlatShading bool
}

// WoodMaterial returns the rough, flat-shaded material used for trunks and
// branches.
func WoodMaterial(c Color) Material {
	return Material{Color: c, Roughness: 0.8, Metalness: 0.1, FlatShading: true}
}

// LeafMaterial returns the material used for foliage blobs.
func LeafMaterial(c Color, flat bool) Material {
	return Material{Color: c, Roughness: 0.9, Metalness: 0, FlatShading: flat}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// Size returns the extent of the box along each axis.
func (b Box) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh is an indexed triangle surface. Its topology (Indices) is fixed at
// construction; only Positions change afterwards, and every change is
// followed by ComputeNormals so Normals stay one unit vector per vertex.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint16
	Material  Material

	bounds      Box  // cached local-space bounds
	boundsDirty bool // recompute bounds when true
}

// NewMesh builds a mesh from positions and triangle indices and computes its
// normals. Indices must come in triples and reference existing vertices.
func NewMesh(positions []mgl64.Vec3, indices []uint16, material Material) (*Mesh, error) {
	if len(positions) > maxMeshVertices {
		return nil, fmt.Errorf("grove: mesh has %d vertices, max %d: %w", len(positions), maxMeshVertices, ErrInvalidParameter)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("grove: index count %d is not a multiple of 3: %w", len(indices), ErrInvalidParameter)
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("grove: index %d out of range for %d vertices: %w", idx, len(positions), ErrInvalidParameter)
		}
	}
	m := &Mesh{
		Positions:   positions,
		Normals:     make([]mgl64.Vec3, len(positions)),
		Indices:     indices,
		Material:    material,
		boundsDirty: true,
	}
	m.ComputeNormals()
	return m, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no vertices.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c int) {
	return int(m.Indices[3*i]), int(m.Indices[3*i+1]), int(m.Indices[3*i+2])
}

// ComputeNormals recomputes per-vertex normals as the area-weighted average
// of the adjacent face normals. Faces are wound counter-clockwise when seen
// from outside. A vertex with no usable adjacent face gets +Y.
func (m *Mesh) ComputeNormals() {
	if cap(m.Normals) < len(m.Positions) {
		m.Normals = make([]mgl64.Vec3, len(m.Positions))
	}
	m.Normals = m.Normals[:len(m.Positions)]
	for i := range m.Normals {
		m.Normals[i] = mgl64.Vec3{}
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		pa, pb, pc := m.Positions[a], m.Positions[b], m.Positions[c]
		// Unnormalized cross product: length is twice the triangle area.
		fn := pb.Sub(pa).Cross(pc.Sub(pa))
		m.Normals[a] = m.Normals[a].Add(fn)
		m.Normals[b] = m.Normals[b].Add(fn)
		m.Normals[c] = m.Normals[c].Add(fn)
	}
	for i, n := range m.Normals {
		if n.Len() < 1e-12 {
			m.Normals[i] = axisY
			continue
		}
		m.Normals[i] = n.Normalize()
	}
	m.boundsDirty = true
}

// InvalidateBounds marks the cached bounds as stale. Call this after writing
// Positions directly.
func (m *Mesh) InvalidateBounds() {
	m.boundsDirty = true
}

// Bounds returns the local-space axis-aligned bounds of the mesh.
func (m *Mesh) Bounds() Box {
	if m.boundsDirty {
		m.bounds = computeBounds(m.Positions)
		m.boundsDirty = false
	}
	return m.bounds
}

func computeBounds(positions []mgl64.Vec3) Box {
	if len(positions) == 0 {
		return Box{}
	}
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range positions {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return Box{Min: lo, Max: hi}
}
