package grove

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AttachmentKind selects which builder decorates an attachment point.
type AttachmentKind uint8

const (
	AttachElbowBranch AttachmentKind = iota // long branch near the crown
	AttachBranch                            // short stub branch
	AttachLeaf                              // green foliage blob
	AttachFruit                             // red foliage blob
	attachKindCount
)

var attachmentKindNames = [attachKindCount]string{"elbowBranch", "branch", "leaf", "fruit"}

// String returns the kind's name as used in configs and logs.
func (k AttachmentKind) String() string {
	if k < attachKindCount {
		return attachmentKindNames[k]
	}
	return fmt.Sprintf("AttachmentKind(%d)", uint8(k))
}

// AttachmentSpec requests Count attachments of Kind on vertices whose height,
// normalized to the mesh's vertical extent, lies in [MinHeight, MaxHeight].
type AttachmentSpec struct {
	Kind      AttachmentKind
	Count     int
	MinHeight float64
	MaxHeight float64
}

// AttachmentPoint is a resolved attachment: a vertex of the parent mesh and
// the kind of object to place there.
type AttachmentPoint struct {
	VertexIndex int
	Kind        AttachmentKind
}

func (s AttachmentSpec) validate() error {
	switch {
	case s.Kind >= attachKindCount:
		return fmt.Errorf("grove: unknown attachment kind %d: %w", s.Kind, ErrInvalidParameter)
	case s.Count < 0:
		return fmt.Errorf("grove: %s count %d < 0: %w", s.Kind, s.Count, ErrInvalidParameter)
	case !(s.MinHeight >= 0 && s.MaxHeight <= 1 && s.MinHeight <= s.MaxHeight):
		return fmt.Errorf("grove: %s band [%g, %g] outside [0, 1]: %w", s.Kind, s.MinHeight, s.MaxHeight, ErrInvalidParameter)
	}
	return nil
}

// PlanAttachments resolves specs against m and returns one point per
// requested unit, in spec order, so len(result) == sum of Count.
//
// Each spec draws uniformly from the pool of vertices inside its height
// band; pools are built once per call. A band that contains no vertex falls
// back to the vertices at the height level nearest the band's center. An
// empty mesh yields an empty result and no error.
func PlanAttachments(m *Mesh, specs []AttachmentSpec, rng Rand) ([]AttachmentPoint, error) {
	total := 0
	for _, s := range specs {
		if err := s.validate(); err != nil {
			return nil, err
		}
		total += s.Count
	}
	if m == nil || m.IsEmpty() {
		return []AttachmentPoint{}, nil
	}

	heights := normalizedHeights(m)
	points := make([]AttachmentPoint, 0, total)
	var pool []int
	for _, s := range specs {
		if s.Count == 0 {
			continue
		}
		pool = bandPool(pool[:0], heights, s.MinHeight, s.MaxHeight)
		for i := 0; i < s.Count; i++ {
			points = append(points, AttachmentPoint{
				VertexIndex: pool[rng.Int(0, len(pool)-1)],
				Kind:        s.Kind,
			})
		}
	}
	return points, nil
}

// normalizedHeights maps each vertex's Y into [0, 1] over the mesh's
// vertical extent. A flat mesh maps every vertex to 0.
func normalizedHeights(m *Mesh) []float64 {
	b := m.Bounds()
	span := b.Max[1] - b.Min[1]
	out := make([]float64, len(m.Positions))
	if span <= 0 {
		return out
	}
	for i, p := range m.Positions {
		out[i] = (p[1] - b.Min[1]) / span
	}
	return out
}

// bandEpsilon absorbs rounding in normalized heights, so rings that sit
// exactly on a band edge stay inside the band.
const bandEpsilon = 1e-9

// bandPool appends to dst the indices whose height lies in [lo, hi]. When
// none does, it appends every vertex at the height level nearest the band
// center instead. The result is never empty for a non-empty heights slice.
func bandPool(dst []int, heights []float64, lo, hi float64) []int {
	for i, h := range heights {
		if h >= lo-bandEpsilon && h <= hi+bandEpsilon {
			dst = append(dst, i)
		}
	}
	if len(dst) > 0 {
		return dst
	}
	center := (lo + hi) / 2
	bestDist := math.Inf(1)
	for _, h := range heights {
		bestDist = math.Min(bestDist, math.Abs(h-center))
	}
	for i, h := range heights {
		if math.Abs(h-center) <= bestDist+bandEpsilon {
			dst = append(dst, i)
		}
	}
	return dst
}

// Orientation returns the rotation that turns a child's local +Y onto
// normal, so attachments grow out of the surface instead of straight up.
func Orientation(normal mgl64.Vec3) mgl64.Quat {
	if normal.Len() < 1e-12 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(axisY, normal.Normalize())
}
