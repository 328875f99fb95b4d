package grove

import (
	"fmt"
	"math"
)

const (
	branchRadialSegments = 8
	branchBaseTaper      = 0.7
	branchMaxBend        = 0.2
)

// BranchConfig configures a branch.
type BranchConfig struct {
	// Length along the branch axis. Must be positive.
	Length float64
	// Radius at the tip; the base is 0.7x thinner. Must be positive.
	Radius float64
	// Color of the bark. Zero value falls back to ColorGreyDark.
	Color Color
	// Palette, when non-empty and Complex is set, colors 1-3 foliage blobs
	// spread along the branch.
	Palette []Color
	Complex bool
}

// Branch is a tapered cylinder lying across its local up axis with a small
// random bend, optionally carrying foliage.
type Branch struct {
	Node    *Node
	Mesh    *Mesh
	Length  float64
	Radius  float64
	Foliage []*Foliage
}

// NewBranch builds a branch.
func NewBranch(cfg BranchConfig, rng Rand) (*Branch, error) {
	if !(cfg.Length > 0) || !(cfg.Radius > 0) {
		return nil, fmt.Errorf("grove: branch %g x %g needs positive length and radius: %w", cfg.Length, cfg.Radius, ErrInvalidParameter)
	}
	c := cfg.Color
	if c.IsZero() {
		c = ColorGreyDark
	}
	mesh, err := NewCylinderMesh(cfg.Radius, cfg.Radius*branchBaseTaper, cfg.Length, branchRadialSegments, WoodMaterial(c))
	if err != nil {
		return nil, err
	}
	b := &Branch{
		Node:   NewMeshNode("branch", mesh),
		Mesh:   mesh,
		Length: cfg.Length,
		Radius: cfg.Radius,
	}
	b.Node.UserData = b
	// Lay the cylinder down, then bend it slightly so sibling branches are
	// never parallel.
	b.Node.SetEuler(math.Pi/2, rng.Float(-branchMaxBend, branchMaxBend), rng.Float(-branchMaxBend, branchMaxBend))

	if cfg.Complex && len(cfg.Palette) > 0 {
		if err := b.addFoliage(cfg.Palette, rng); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// addFoliage spreads 1-3 blobs evenly along the branch axis, starting at
// the base.
func (b *Branch) addFoliage(palette []Color, rng Rand) error {
	count := rng.Int(1, 3)
	for i := 0; i < count; i++ {
		f, err := NewFoliage(FoliageConfig{
			Radius: b.Radius * rng.Float(0.5, 1),
			Color:  pick(rng, palette),
		}, rng)
		if err != nil {
			return err
		}
		f.Node.SetPosition(0, float64(i)/float64(count)*b.Length-b.Length/2, 0)
		b.Node.AddChild(f.Node)
		b.Foliage = append(b.Foliage, f)
	}
	return nil
}
