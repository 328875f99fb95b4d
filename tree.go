package grove

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// TreeStyle selects the model a Tree wraps.
type TreeStyle uint8

const (
	TreeStyleTrunc TreeStyle = iota // revolved trunk with branches and foliage
	TreeStyleBlock                  // low-poly cluster of boxes
)

// String returns the style name used in configs.
func (s TreeStyle) String() string {
	switch s {
	case TreeStyleTrunc:
		return "trunc"
	case TreeStyleBlock:
		return "block"
	default:
		return fmt.Sprintf("TreeStyle(%d)", uint8(s))
	}
}

// parseTreeStyle maps a config name to a TreeStyle. Unknown names log a
// warning and fall back to TreeStyleTrunc.
func parseTreeStyle(name string) TreeStyle {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "trunc":
		return TreeStyleTrunc
	case "block":
		return TreeStyleBlock
	default:
		log.Printf("grove: unknown tree style %q, using trunc", name)
		return TreeStyleTrunc
	}
}

// DefaultSwayAmplitude is the tilt in radians a tree reaches at wind 1.
const DefaultSwayAmplitude = 0.05

// TreeConfig configures one tree.
type TreeConfig struct {
	// Position of the tree's base in its parent's space.
	Position mgl64.Vec3
	// Scale is a uniform scale factor. Must be positive.
	Scale float64
	Style TreeStyle
	// Complex selects the complex trunc profile (TreeStyleTrunc only).
	Complex bool
	// SwayAmplitude overrides DefaultSwayAmplitude when positive.
	SwayAmplitude float64
}

// Tree is a placed, scaled tree model with an idle sway.
type Tree struct {
	// Node is the tree's group node: Position, random heading and Scale live
	// here; the model hangs below it.
	Node  *Node
	Style TreeStyle
	// Trunc is the trunk assembly for TreeStyleTrunc, nil otherwise.
	Trunc *Trunc

	baseRotation  mgl64.Quat
	swayAmplitude float64
	sway          *swayTween
}

// NewTree builds a tree of the configured style at cfg.Position.
func NewTree(cfg TreeConfig, rng Rand) (*Tree, error) {
	if !(cfg.Scale > 0) {
		return nil, fmt.Errorf("grove: tree scale %g must be positive: %w", cfg.Scale, ErrInvalidParameter)
	}
	t := &Tree{
		Node:          NewContainer("tree"),
		Style:         cfg.Style,
		swayAmplitude: cfg.SwayAmplitude,
	}
	if t.swayAmplitude <= 0 {
		t.swayAmplitude = DefaultSwayAmplitude
	}
	t.Node.UserData = t

	switch cfg.Style {
	case TreeStyleTrunc:
		trunc, err := NewTrunc(cfg.Complex, rng)
		if err != nil {
			return nil, err
		}
		t.Trunc = trunc
		t.Node.AddChild(trunc.Node)
		t.baseRotation = mgl64.QuatRotate(rng.Float(0, 2*math.Pi), axisY)
	case TreeStyleBlock:
		model, err := newBlockModel(rng)
		if err != nil {
			return nil, err
		}
		t.Node.AddChild(model)
		t.baseRotation = mgl64.AnglesToQuat(rng.Float(-0.1, 0.1), rng.Float(0, 2*math.Pi), 0, mgl64.XYZ)
	default:
		return nil, fmt.Errorf("grove: unknown tree style %d: %w", cfg.Style, ErrInvalidParameter)
	}

	t.Node.Position = cfg.Position
	t.Node.SetRotation(t.baseRotation)
	t.Node.SetUniformScale(cfg.Scale)
	t.sway = newSwayTween(rng.Float(1.5, 3))
	return t, nil
}

// Update advances the idle sway by dt seconds. The tree tilts about the
// world Z axis through its base by up to windStrength*SwayAmplitude radians.
func (t *Tree) Update(dt, windStrength float64) {
	v := t.sway.update(float32(dt))
	angle := windStrength * t.swayAmplitude * v
	t.Node.SetRotation(mgl64.QuatRotate(angle, axisZ).Mul(t.baseRotation))
}

// SwayAngle returns the tilt angle, in radians, for the given wind strength
// at the sway's current phase.
func (t *Tree) SwayAngle(windStrength float64) float64 {
	return windStrength * t.swayAmplitude * t.sway.value
}

// Dispose releases the tree's scene graph.
func (t *Tree) Dispose() {
	t.Node.Dispose()
	t.Trunc = nil
}

// --- Block model ---

type blockMaterial uint8

const (
	blockLeafDark blockMaterial = iota
	blockLeafLight
	blockGround
	blockStem
	blockMaterialCount
)

// blockPart places one unit box: scale = base + Float(0, jitter) per axis.
type blockPart struct {
	name     string
	pos      mgl64.Vec3
	base     mgl64.Vec3
	jitter   mgl64.Vec3
	material blockMaterial
}

var blockParts = []blockPart{
	{"leaves-dark", mgl64.Vec3{0, 1.2, 0}, mgl64.Vec3{0.9, 1.7, 0.9}, mgl64.Vec3{0.3, 0.5, 0.3}, blockLeafDark},
	{"leaves-light", mgl64.Vec3{0, 1.2, 0}, mgl64.Vec3{1.0, 0.4, 1.0}, mgl64.Vec3{0.3, 0.2, 0.3}, blockLeafLight},
	{"leaves-square-1", mgl64.Vec3{0.5, 1.6, 0.5}, mgl64.Vec3{0.7, 0.7, 0.7}, mgl64.Vec3{0.4, 0.4, 0.4}, blockLeafDark},
	{"leaves-square-2", mgl64.Vec3{-0.4, 1.3, -0.4}, mgl64.Vec3{0.6, 0.6, 0.6}, mgl64.Vec3{0.3, 0.3, 0.3}, blockLeafDark},
	{"leaves-square-3", mgl64.Vec3{0.4, 1.7, -0.5}, mgl64.Vec3{0.6, 0.6, 0.6}, mgl64.Vec3{0.3, 0.3, 0.3}, blockLeafDark},
	{"ground", mgl64.Vec3{0, -1, 0}, mgl64.Vec3{2.0, 0.7, 2.0}, mgl64.Vec3{0.7, 0.2, 0.7}, blockGround},
	{"stem", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.25, 1.2, 0.25}, mgl64.Vec3{0.15, 0.7, 0.15}, blockStem},
}

// newBlockModel builds the box-cluster tree. Each part gets its own mesh so
// no geometry is shared between parts or trees.
func newBlockModel(rng Rand) (*Node, error) {
	var colors [blockMaterialCount]Color
	colors[blockLeafDark] = pick(rng, PaletteBlockLeaves)
	colors[blockLeafLight] = pick(rng, PaletteBlockLeaves)
	colors[blockGround] = pick(rng, PaletteBlockLeaves)
	colors[blockStem] = pick(rng, PaletteBlockStems)

	model := NewContainer("block-tree")
	for _, part := range blockParts {
		n, err := newBlockPart(part, colors[part.material], rng)
		if err != nil {
			return nil, err
		}
		model.AddChild(n)
	}
	return model, nil
}

func newBlockPart(part blockPart, c Color, rng Rand) (*Node, error) {
	mesh, err := NewBoxMesh(1, 1, 1, LeafMaterial(c, true))
	if err != nil {
		return nil, err
	}
	n := NewMeshNode(part.name, mesh)
	n.Position = part.pos
	n.SetScale(
		part.base[0]+rng.Float(0, part.jitter[0]),
		part.base[1]+rng.Float(0, part.jitter[1]),
		part.base[2]+rng.Float(0, part.jitter[2]),
	)
	return n, nil
}
