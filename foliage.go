package grove

import (
	"fmt"
	"math"
)

// FoliageConfig configures a leaf blob.
type FoliageConfig struct {
	// Radius is the blob's base radius. Must be positive.
	Radius float64
	// Color is the blob's material color.
	Color Color
	// Complex raises the sphere resolution and decorates the blob with 3-6
	// smaller sub-blobs in leaf colors.
	Complex bool
}

// Foliage is a roughly spherical leaf cluster.
type Foliage struct {
	Node     *Node
	Mesh     *Mesh
	Radius   float64
	SubBlobs []*Node
}

// NewFoliage builds a leaf blob. Every call produces a different shape for
// the same config unless rng is seeded identically.
func NewFoliage(cfg FoliageConfig, rng Rand) (*Foliage, error) {
	if !(cfg.Radius > 0) {
		return nil, fmt.Errorf("grove: foliage radius %g must be positive: %w", cfg.Radius, ErrInvalidParameter)
	}
	width := rng.Int(3, 5)
	if cfg.Complex {
		width = rng.Int(3, 10)
	}
	height := rng.Int(3, 6)
	noise := rng.Float(cfg.Radius/20, cfg.Radius/5)
	if cfg.Complex {
		noise = 0.05 * cfg.Radius
	}

	mesh, err := NewSphereMesh(cfg.Radius, width, height, LeafMaterial(cfg.Color, false))
	if err != nil {
		return nil, err
	}
	f := &Foliage{
		Node:   NewMeshNode("foliage", mesh),
		Mesh:   mesh,
		Radius: cfg.Radius,
	}
	if cfg.Complex {
		if err := f.addSubBlobs(rng); err != nil {
			return nil, err
		}
	}
	// Noise last: sub-blobs sit on the unperturbed sphere.
	if err := ApplyNoise(mesh, noise, rng); err != nil {
		return nil, err
	}
	return f, nil
}

// addSubBlobs scatters 3-6 small flat-shaded spheres over the blob's
// vertices, each with a color from the leaves palette and a small tilt.
func (f *Foliage) addSubBlobs(rng Rand) error {
	count := rng.Int(3, 6)
	for i := 0; i < count; i++ {
		v := f.Mesh.Positions[rng.Int(0, f.Mesh.VertexCount()-1)]
		r := rng.Float(0.3, 0.5) * f.Radius
		mesh, err := NewSphereMesh(r, rng.Int(3, 4), rng.Int(2, 4), LeafMaterial(pick(rng, PaletteLeaves), true))
		if err != nil {
			return err
		}
		sub := NewMeshNode("subfoliage", mesh)
		sub.Position = v
		sub.SetEuler(rng.Float(-math.Pi/8, math.Pi/8), 0, rng.Float(-math.Pi/8, math.Pi/8))
		f.Node.AddChild(sub)
		f.SubBlobs = append(f.SubBlobs, sub)
	}
	return nil
}
