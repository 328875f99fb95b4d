package grove

import (
	"math"
	"testing"
)

func TestNewBranchGeometry(t *testing.T) {
	b, err := NewBranch(BranchConfig{Length: 5, Radius: 1}, &minRand{})
	if err != nil {
		t.Fatal(err)
	}
	if b.Mesh.VertexCount() != 2*branchRadialSegments+2 {
		t.Errorf("VertexCount = %d", b.Mesh.VertexCount())
	}
	size := b.Mesh.Bounds().Size()
	if !approxEqual(size[1], 5, 1e-9) {
		t.Errorf("length = %v, want 5", size[1])
	}
	if b.Mesh.Material.Color != ColorGreyDark {
		t.Errorf("zero color should fall back to ColorGreyDark, got %v", b.Mesh.Material.Color)
	}
	if b.Node.UserData != b {
		t.Error("UserData should point back at the branch")
	}
	// Laid down: the cylinder axis (+Y) ends up mostly along +Z.
	axis := b.Node.Rotation.Rotate(axisY)
	if math.Abs(axis[1]) > math.Sin(branchMaxBend)+1e-9 {
		t.Errorf("branch axis %v should be near horizontal", axis)
	}
}

func TestNewBranchTaper(t *testing.T) {
	b, err := NewBranch(BranchConfig{Length: 4, Radius: 2, Color: ColorRedLight}, &minRand{})
	if err != nil {
		t.Fatal(err)
	}
	var topR, bottomR float64
	for _, p := range b.Mesh.Positions {
		r := math.Hypot(p[0], p[2])
		if p[1] > 0 {
			topR = math.Max(topR, r)
		} else {
			bottomR = math.Max(bottomR, r)
		}
	}
	assertNear(t, "tip radius", topR, 2)
	assertNear(t, "base radius", bottomR, 2*branchBaseTaper)
}

func TestNewBranchFoliage(t *testing.T) {
	for seed := uint64(0); seed < 30; seed++ {
		b, err := NewBranch(BranchConfig{Length: 6, Radius: 1, Palette: PalettePinks, Complex: true}, NewRand(seed))
		if err != nil {
			t.Fatal(err)
		}
		n := len(b.Foliage)
		if n < 1 || n > 3 {
			t.Fatalf("seed %d: %d foliage blobs, want 1..3", seed, n)
		}
		for i, f := range b.Foliage {
			assertNear(t, "blob y", f.Node.Position[1], float64(i)/float64(n)*6-3)
			if f.Radius < 0.5 || f.Radius > 1 {
				t.Errorf("blob radius %v outside [0.5, 1]", f.Radius)
			}
			if len(f.SubBlobs) != 0 {
				t.Error("branch foliage should be simple")
			}
		}
	}
}

func TestNewBranchNoFoliageWhenSimple(t *testing.T) {
	b, err := NewBranch(BranchConfig{Length: 6, Radius: 1, Palette: PalettePinks}, NewRand(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Foliage) != 0 || b.Node.NumChildren() != 0 {
		t.Errorf("simple branch has %d foliage blobs", len(b.Foliage))
	}
}

func TestNewBranchInvalid(t *testing.T) {
	_, err := NewBranch(BranchConfig{Length: 0, Radius: 1}, &minRand{})
	assertInvalid(t, "zero length", err)
	_, err = NewBranch(BranchConfig{Length: 1, Radius: -1}, &minRand{})
	assertInvalid(t, "negative radius", err)
}
