package grove

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TruncParams holds every numeric choice behind a trunk. DeriveTruncParams
// fills it from the complexity profile; callers may tweak fields before
// BuildTrunc.
type TruncParams struct {
	Complex bool

	Height           float64
	StartRadius      float64
	VerticalSegments int
	RadialSegments   int
	AngleStart       float64
	Amplitude        float64
	Noise            float64

	Color          Color
	FoliagePalette []Color
	Attachments    []AttachmentSpec
}

// ComplexAttachments is the attachment profile of a complex tree: 15 points.
func ComplexAttachments() []AttachmentSpec {
	return []AttachmentSpec{
		{Kind: AttachElbowBranch, Count: 5, MinHeight: 0.75, MaxHeight: 0.95},
		{Kind: AttachBranch, Count: 1, MinHeight: 0.45, MaxHeight: 0.75},
		{Kind: AttachLeaf, Count: 5, MinHeight: 0.30, MaxHeight: 0.90},
		{Kind: AttachFruit, Count: 4, MinHeight: 0.30, MaxHeight: 0.80},
	}
}

// SimpleAttachments is the attachment profile of a simple tree: 4 points.
func SimpleAttachments() []AttachmentSpec {
	return []AttachmentSpec{
		{Kind: AttachElbowBranch, Count: 1, MinHeight: 0.75, MaxHeight: 0.90},
		{Kind: AttachBranch, Count: 1, MinHeight: 0.45, MaxHeight: 0.70},
		{Kind: AttachFruit, Count: 2, MinHeight: 0.30, MaxHeight: 0.80},
	}
}

// DeriveTruncParams picks trunk parameters. Complex trunks are fixed-size,
// dark gray and pink-flowered with a finer mesh; simple trunks randomize
// size, bark tone and blossom palette.
func DeriveTruncParams(complex bool, rng Rand) TruncParams {
	p := TruncParams{Complex: complex}
	if complex {
		p.Color = ColorGreyDark
		p.Height = 100
		p.StartRadius = 4
		p.VerticalSegments = rng.Int(9, 12)
		p.RadialSegments = rng.Int(6, 10)
	} else {
		p.Color = pick(rng, PaletteTrunk)
		p.Height = rng.Float(70, 100)
		p.StartRadius = rng.Float(2, 4)
		p.VerticalSegments = rng.Int(3, 5)
		p.RadialSegments = rng.Int(4, 6)
	}
	p.AngleStart = rng.Float(math.Pi/4, math.Pi/2)
	p.Amplitude = rng.Float(p.StartRadius/4, p.StartRadius*6)
	if complex {
		p.Noise = 0.5
		p.FoliagePalette = PalettePinks
		p.Attachments = ComplexAttachments()
	} else {
		p.Noise = rng.Float(p.StartRadius/8, p.StartRadius/4)
		p.FoliagePalette = foliagePalettes[rng.Int(0, len(foliagePalettes)-1)]
		p.Attachments = SimpleAttachments()
	}
	return p
}

// Attachment is one decoration placed on a trunk.
type Attachment struct {
	Point AttachmentPoint
	Node  *Node
	// Position is the attachment vertex's position before trunk noise.
	Position mgl64.Vec3
	// Orientation turns the child's local +Y onto the trunk normal.
	Orientation mgl64.Quat
}

// Trunc is an assembled tree trunk: a revolved, noised trunk mesh with
// branches and foliage attached at sampled surface points.
type Trunc struct {
	Params      TruncParams
	Profile     ProfileCurve
	Mesh        *Mesh
	Node        *Node
	Attachments []Attachment
}

// NewTrunc derives parameters for the given complexity and builds a trunk.
func NewTrunc(complex bool, rng Rand) (*Trunc, error) {
	return BuildTrunc(DeriveTruncParams(complex, rng), rng)
}

// BuildTrunc assembles a trunk from explicit parameters:
// profile, revolve, plan attachments, build and orient each one, then noise
// the trunk mesh alone. Errors from any step are returned unchanged.
func BuildTrunc(p TruncParams, rng Rand) (*Trunc, error) {
	profile, err := NewTrunkProfile(TrunkProfileConfig{
		Height:           p.Height,
		StartRadius:      p.StartRadius,
		VerticalSegments: p.VerticalSegments,
		AngleStart:       p.AngleStart,
		Amplitude:        p.Amplitude,
	})
	if err != nil {
		return nil, err
	}
	mesh, err := Revolve(profile, p.RadialSegments, WoodMaterial(p.Color))
	if err != nil {
		return nil, err
	}
	t := &Trunc{
		Params:  p,
		Profile: profile,
		Mesh:    mesh,
		Node:    NewMeshNode("trunc", mesh),
	}
	t.Node.UserData = t

	points, err := PlanAttachments(mesh, p.Attachments, rng)
	if err != nil {
		return nil, err
	}
	t.Attachments = make([]Attachment, 0, len(points))
	for _, pt := range points {
		v := mesh.Positions[pt.VertexIndex]
		child, err := attachmentBuilders[pt.Kind](t, v, rng)
		if err != nil {
			return nil, fmt.Errorf("grove: trunc %s attachment: %w", pt.Kind, err)
		}
		q := Orientation(mesh.Normals[pt.VertexIndex])
		child.Position = v
		child.SetRotation(q.Mul(child.Rotation))
		t.Node.AddChild(child)
		t.Attachments = append(t.Attachments, Attachment{
			Point:       pt,
			Node:        child,
			Position:    v,
			Orientation: q,
		})
	}

	if err := ApplyNoise(mesh, p.Noise, rng); err != nil {
		return nil, err
	}
	return t, nil
}

// --- Attachment builders ---

// attachmentBuilder builds the child for one attachment point at trunk
// vertex v (trunk-local). The caller positions and orients the result.
type attachmentBuilder func(t *Trunc, v mgl64.Vec3, rng Rand) (*Node, error)

var attachmentBuilders = [attachKindCount]attachmentBuilder{
	AttachElbowBranch: buildElbowBranch,
	AttachBranch:      buildStubBranch,
	AttachLeaf:        buildLeaf,
	AttachFruit:       buildFruit,
}

// buildElbowBranch grows a long branch whose thickness shrinks with the
// height of its attachment point.
func buildElbowBranch(t *Trunc, v mgl64.Vec3, rng Rand) (*Node, error) {
	p := t.Params
	height := math.Max(v[1], 0)
	b, err := NewBranch(BranchConfig{
		Length:  rng.Float(p.Height*0.05, p.Height*0.15),
		Radius:  rng.Float(p.StartRadius*40/(1+height), p.StartRadius*60/(1+height)),
		Color:   p.Color,
		Palette: p.FoliagePalette,
		Complex: p.Complex,
	}, rng)
	if err != nil {
		return nil, err
	}
	return b.Node, nil
}

func buildStubBranch(t *Trunc, _ mgl64.Vec3, rng Rand) (*Node, error) {
	p := t.Params
	b, err := NewBranch(BranchConfig{
		Length:  rng.Float(p.Height*0.03, p.Height*0.06),
		Radius:  rng.Float(p.StartRadius*0.2, p.StartRadius*0.4),
		Color:   p.Color,
		Palette: p.FoliagePalette,
		Complex: p.Complex,
	}, rng)
	if err != nil {
		return nil, err
	}
	return b.Node, nil
}

func buildLeaf(t *Trunc, _ mgl64.Vec3, rng Rand) (*Node, error) {
	f, err := NewFoliage(FoliageConfig{
		Radius:  rng.Float(0.25, 0.5) * t.Params.StartRadius,
		Color:   ColorGreenDark,
		Complex: t.Params.Complex,
	}, rng)
	if err != nil {
		return nil, err
	}
	return f.Node, nil
}

func buildFruit(t *Trunc, _ mgl64.Vec3, rng Rand) (*Node, error) {
	f, err := NewFoliage(FoliageConfig{
		Radius: rng.Float(0.5, 1) * t.Params.StartRadius,
		Color:  ColorRedDark,
	}, rng)
	if err != nil {
		return nil, err
	}
	return f.Node, nil
}
