package grove

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ApplyNoise displaces every vertex of m by an independent uniform offset in
// [-intensity/2, intensity/2] on each axis, then recomputes normals. Indices
// are never touched. An intensity of zero leaves the mesh unchanged and draws
// nothing from rng.
func ApplyNoise(m *Mesh, intensity float64, rng Rand) error {
	if m == nil {
		return fmt.Errorf("grove: noise on nil mesh: %w", ErrInvalidParameter)
	}
	if intensity < 0 {
		return fmt.Errorf("grove: noise intensity %g < 0: %w", intensity, ErrInvalidParameter)
	}
	if intensity == 0 || m.IsEmpty() {
		return nil
	}
	half := intensity / 2
	for i, p := range m.Positions {
		m.Positions[i] = p.Add(mgl64.Vec3{
			rng.Float(-half, half),
			rng.Float(-half, half),
			rng.Float(-half, half),
		})
	}
	m.ComputeNormals()
	return nil
}
