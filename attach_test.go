package grove

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAttachmentKindString(t *testing.T) {
	tests := []struct {
		kind AttachmentKind
		want string
	}{
		{AttachElbowBranch, "elbowBranch"},
		{AttachBranch, "branch"},
		{AttachLeaf, "leaf"},
		{AttachFruit, "fruit"},
		{AttachmentKind(9), "AttachmentKind(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPlanAttachmentsCountAndKinds(t *testing.T) {
	m := testTrunkMesh(t)
	rng := NewRand(21)
	for _, specs := range [][]AttachmentSpec{ComplexAttachments(), SimpleAttachments(), {
		{Kind: AttachLeaf, Count: 0, MinHeight: 0, MaxHeight: 1},
		{Kind: AttachFruit, Count: 7, MinHeight: 0.1, MaxHeight: 0.2},
	}} {
		points, err := PlanAttachments(m, specs, rng)
		if err != nil {
			t.Fatal(err)
		}
		var kinds []AttachmentKind
		for _, s := range specs {
			for i := 0; i < s.Count; i++ {
				kinds = append(kinds, s.Kind)
			}
		}
		if len(points) != len(kinds) {
			t.Fatalf("got %d points, want %d", len(points), len(kinds))
		}
		for i, p := range points {
			if p.Kind != kinds[i] {
				t.Errorf("point %d kind = %s, want %s", i, p.Kind, kinds[i])
			}
			if p.VertexIndex < 0 || p.VertexIndex >= m.VertexCount() {
				t.Errorf("point %d vertex %d out of range", i, p.VertexIndex)
			}
		}
	}
}

func TestPlanAttachmentsRespectsBands(t *testing.T) {
	m := testTrunkMesh(t)
	heights := normalizedHeights(m)
	specs := []AttachmentSpec{{Kind: AttachElbowBranch, Count: 50, MinHeight: 0.6, MaxHeight: 0.95}}
	points, err := PlanAttachments(m, specs, NewRand(8))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range points {
		if h := heights[p.VertexIndex]; h < 0.6 || h > 0.95 {
			t.Errorf("vertex %d at height %v outside band", p.VertexIndex, h)
		}
	}
}

func TestPlanAttachmentsEmptyBandFallsBack(t *testing.T) {
	// A 1-ring curve: vertices at normalized heights 0, 0.5 and 1 only.
	curve, _ := NewProfileCurve([]ProfilePoint{{0, 0}, {1, 1}, {0, 2}})
	m, _ := Revolve(curve, 4, Material{})
	points, err := PlanAttachments(m, []AttachmentSpec{{Kind: AttachLeaf, Count: 3, MinHeight: 0.8, MaxHeight: 0.9}}, NewRand(1))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range points {
		// Nearest to 0.85 is the top apex at 1.
		if p.VertexIndex != m.VertexCount()-1 {
			t.Errorf("fallback picked vertex %d, want top apex", p.VertexIndex)
		}
	}
}

func TestSimpleTrunkElbowBandNeverEmpty(t *testing.T) {
	elbow := SimpleAttachments()[0]
	for vs := 3; vs <= 5; vs++ {
		for k := 0; k <= 300; k++ {
			height := 70 + 30*float64(k)/300
			curve, err := NewTrunkProfile(TrunkProfileConfig{
				Height: height, StartRadius: 3, VerticalSegments: vs,
				AngleStart: math.Pi / 3, Amplitude: 2,
			})
			if err != nil {
				t.Fatal(err)
			}
			m, err := Revolve(curve, 5, Material{})
			if err != nil {
				t.Fatal(err)
			}
			heights := normalizedHeights(m)
			pool := bandPool(nil, heights, elbow.MinHeight, elbow.MaxHeight)
			if len(pool) < 5 {
				t.Fatalf("vs=%d height=%v: elbow pool has %d vertices, want a full ring", vs, height, len(pool))
			}
			for _, i := range pool {
				if h := heights[i]; h < elbow.MinHeight-bandEpsilon || h > elbow.MaxHeight+bandEpsilon {
					t.Fatalf("vs=%d height=%v: pooled vertex %d at %v outside band", vs, height, i, h)
				}
			}
		}
	}
}

func TestSimpleTrunkElbowAcrossSeeds(t *testing.T) {
	rng := NewRand(11)
	elbow := SimpleAttachments()[0]
	for n := 0; n < 500; n++ {
		p := DeriveTruncParams(false, rng)
		curve, err := NewTrunkProfile(TrunkProfileConfig{
			Height: p.Height, StartRadius: p.StartRadius, VerticalSegments: p.VerticalSegments,
			AngleStart: p.AngleStart, Amplitude: p.Amplitude,
		})
		if err != nil {
			t.Fatal(err)
		}
		m, err := Revolve(curve, p.RadialSegments, Material{})
		if err != nil {
			t.Fatal(err)
		}
		in := 0
		for _, h := range normalizedHeights(m) {
			if h >= elbow.MinHeight-bandEpsilon && h <= elbow.MaxHeight+bandEpsilon {
				in++
			}
		}
		if in == 0 {
			t.Fatalf("trunk %d (vs=%d, height=%v): elbow band empty", n, p.VerticalSegments, p.Height)
		}
	}
}

func TestBandPoolFallbackKeepsWholeLevel(t *testing.T) {
	heights := []float64{0, 0.5, 0.5, 0.5, 1}
	pool := bandPool(nil, heights, 0.55, 0.6)
	if len(pool) != 3 || pool[0] != 1 || pool[1] != 2 || pool[2] != 3 {
		t.Errorf("fallback pool = %v, want [1 2 3]", pool)
	}
}

func TestBandPoolEdgeRounding(t *testing.T) {
	// Heights one ULP outside the band edges still count as inside.
	heights := []float64{math.Nextafter(0.75, 0), math.Nextafter(0.9, 1), 0.5}
	pool := bandPool(nil, heights, 0.75, 0.9)
	if len(pool) != 2 || pool[0] != 0 || pool[1] != 1 {
		t.Errorf("pool = %v, want [0 1]", pool)
	}
}

func TestPlanAttachmentsEmptyMesh(t *testing.T) {
	m, _ := NewMesh(nil, nil, Material{})
	points, err := PlanAttachments(m, ComplexAttachments(), NewRand(1))
	if err != nil {
		t.Fatalf("empty mesh: %v", err)
	}
	if points == nil || len(points) != 0 {
		t.Errorf("points = %v, want empty non-nil", points)
	}
}

func TestPlanAttachmentsInvalidSpec(t *testing.T) {
	m := testTrunkMesh(t)
	bad := []AttachmentSpec{
		{Kind: attachKindCount, Count: 1, MaxHeight: 1},
		{Kind: AttachLeaf, Count: -1, MaxHeight: 1},
		{Kind: AttachLeaf, Count: 1, MinHeight: 0.8, MaxHeight: 0.2},
		{Kind: AttachLeaf, Count: 1, MinHeight: -0.1, MaxHeight: 0.2},
		{Kind: AttachLeaf, Count: 1, MinHeight: 0.1, MaxHeight: 1.2},
	}
	for i, s := range bad {
		_, err := PlanAttachments(m, []AttachmentSpec{s}, NewRand(1))
		assertInvalid(t, fmt.Sprintf("spec %d", i), err)
	}
}

func TestOrientation(t *testing.T) {
	normals := []mgl64.Vec3{
		{1, 0, 0}, {0, 0, -1}, {0, 1, 0}, {1, 1, 1}, {0.3, -0.2, 0.9},
	}
	for _, n := range normals {
		q := Orientation(n)
		assertVec(t, "rotated +Y", q.Rotate(axisY), n.Normalize(), 1e-9)
	}
	// Degenerate normals leave the child upright.
	q := Orientation(mgl64.Vec3{})
	assertVec(t, "zero normal", q.Rotate(axisY), axisY, 1e-12)
}

func TestOrientationOpposite(t *testing.T) {
	q := Orientation(mgl64.Vec3{0, -1, 0})
	got := q.Rotate(axisY)
	if !approxEqual(got[1], -1, 1e-9) || math.IsNaN(got[0]) {
		t.Errorf("Orientation(-Y) maps +Y to %v", got)
	}
}
