package grove

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// SpacingMode selects the distance metric used by forest placement.
type SpacingMode uint8

const (
	// SpacingAxisX compares only X coordinates. Trees can stack along Z.
	SpacingAxisX SpacingMode = iota
	// SpacingPlanar compares the XZ distance.
	SpacingPlanar
)

// String returns the mode name used in configs.
func (m SpacingMode) String() string {
	if m == SpacingPlanar {
		return "planar"
	}
	return "axisX"
}

// ForestConfig configures NewForest. Start from DefaultForestConfig.
type ForestConfig struct {
	// Count is the number of trees. Zero builds an empty forest.
	Count int
	// AreaX and AreaZ bound the uniform placement candidates.
	AreaX Range
	AreaZ Range
	// BaseHeight is the Y of every tree's base.
	BaseHeight float64
	// ScaleRange bounds each tree's uniform scale. Min must be positive.
	ScaleRange Range
	// MinDistance is the spacing every accepted tree keeps from earlier ones.
	MinDistance float64
	// MaxAttempts caps the candidates drawn per tree before placement is
	// relaxed. Must be at least 1.
	MaxAttempts int
	Spacing     SpacingMode
	Style       TreeStyle
	Complex     bool
	// SwayAmplitude is passed to every tree; zero uses DefaultSwayAmplitude.
	SwayAmplitude float64
	// Sink, when non-nil, receives one event per tree plus EventForestBuilt,
	// and EventTreeRemoved per tree on Dispose and Regenerate.
	Sink EventSink
}

// DefaultForestConfig returns the standard forest: 30 simple trunc trees in
// a band behind the origin.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Count:       30,
		AreaX:       Range{Min: -200, Max: 200},
		AreaZ:       Range{Min: -400, Max: -200},
		BaseHeight:  -100,
		ScaleRange:  Range{Min: 0.7, Max: 1.2},
		MinDistance: 50,
		MaxAttempts: 100,
		Spacing:     SpacingAxisX,
		Style:       TreeStyleTrunc,
	}
}

func (c ForestConfig) validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("grove: forest count %d < 0: %w", c.Count, ErrInvalidParameter)
	case c.AreaX.Min > c.AreaX.Max || c.AreaZ.Min > c.AreaZ.Max:
		return fmt.Errorf("grove: forest area X%v Z%v is inverted: %w", c.AreaX, c.AreaZ, ErrInvalidParameter)
	case !(c.ScaleRange.Min > 0) || c.ScaleRange.Min > c.ScaleRange.Max:
		return fmt.Errorf("grove: forest scale range %v must be positive and ordered: %w", c.ScaleRange, ErrInvalidParameter)
	case c.MinDistance < 0:
		return fmt.Errorf("grove: forest min distance %g < 0: %w", c.MinDistance, ErrInvalidParameter)
	case c.MaxAttempts < 1:
		return fmt.Errorf("grove: forest max attempts %d < 1: %w", c.MaxAttempts, ErrInvalidParameter)
	}
	return nil
}

// ForestStats reports placement metrics of the last build.
type ForestStats struct {
	// Relaxed counts trees placed without satisfying MinDistance.
	Relaxed int
	// Attempts is the total number of candidates drawn.
	Attempts  int
	Vertices  int
	BuildTime time.Duration
}

// Forest is a set of trees laid out under a spacing constraint.
type Forest struct {
	Config ForestConfig
	// Node groups every tree; add it to a scene root.
	Node      *Node
	Trees     []*Tree
	Positions []mgl64.Vec3
	Stats     ForestStats
}

// NewForest validates cfg and places cfg.Count trees. Any tree build error
// aborts the forest and is returned.
func NewForest(cfg ForestConfig, rng Rand) (*Forest, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	f := &Forest{Config: cfg}
	if err := f.build(rng); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Forest) build(rng Rand) error {
	start := time.Now()
	cfg := f.Config
	f.Node = NewContainer("forest")
	f.Node.UserData = f
	f.Trees = make([]*Tree, 0, cfg.Count)
	f.Positions = make([]mgl64.Vec3, 0, cfg.Count)
	f.Stats = ForestStats{}

	for i := 0; i < cfg.Count; i++ {
		pos, attempts, ok := f.place(rng)
		f.Stats.Attempts += attempts
		if !ok {
			f.Stats.Relaxed++
		}
		tree, err := NewTree(TreeConfig{
			Position:      pos,
			Scale:         rng.Float(cfg.ScaleRange.Min, cfg.ScaleRange.Max),
			Style:         cfg.Style,
			Complex:       cfg.Complex,
			SwayAmplitude: cfg.SwayAmplitude,
		}, rng)
		if err != nil {
			f.Dispose()
			f.Node = nil
			return fmt.Errorf("grove: forest tree %d: %w", i, err)
		}
		f.Node.AddChild(tree.Node)
		f.Trees = append(f.Trees, tree)
		f.Positions = append(f.Positions, pos)

		if !ok {
			f.emit(GrowthEvent{Type: EventPlacementRelaxed, TreeIndex: i, NodeID: tree.Node.ID, Position: pos, Attempts: attempts})
		}
		f.emit(GrowthEvent{Type: EventTreePlaced, TreeIndex: i, NodeID: tree.Node.ID, Position: pos, Attempts: attempts})
	}

	f.Stats.Vertices = f.Node.VertexCount()
	f.Stats.BuildTime = time.Since(start)
	f.emit(GrowthEvent{Type: EventForestBuilt, TreeIndex: len(f.Trees), Attempts: f.Stats.Attempts})
	debugLogForest(forestStats{
		buildTime: f.Stats.BuildTime,
		trees:     len(f.Trees),
		relaxed:   f.Stats.Relaxed,
		attempts:  f.Stats.Attempts,
		vertices:  f.Stats.Vertices,
	})
	return nil
}

// place draws up to MaxAttempts candidates and returns the first that keeps
// MinDistance from every placed tree. When none does, the last candidate is
// returned with ok false.
func (f *Forest) place(rng Rand) (pos mgl64.Vec3, attempts int, ok bool) {
	cfg := f.Config
	for attempts < cfg.MaxAttempts {
		attempts++
		pos = mgl64.Vec3{
			rng.Float(cfg.AreaX.Min, cfg.AreaX.Max),
			cfg.BaseHeight,
			rng.Float(cfg.AreaZ.Min, cfg.AreaZ.Max),
		}
		if f.spaced(pos) {
			return pos, attempts, true
		}
	}
	return pos, attempts, false
}

func (f *Forest) spaced(pos mgl64.Vec3) bool {
	for _, p := range f.Positions {
		if spacingDistance(f.Config.Spacing, pos, p) < f.Config.MinDistance {
			return false
		}
	}
	return true
}

func spacingDistance(mode SpacingMode, a, b mgl64.Vec3) float64 {
	if mode == SpacingPlanar {
		return math.Hypot(a[0]-b[0], a[2]-b[2])
	}
	return math.Abs(a[0] - b[0])
}

func (f *Forest) emit(e GrowthEvent) {
	if f.Config.Sink != nil {
		f.Config.Sink.EmitEvent(e)
	}
}

// Update advances every tree's sway by dt seconds under windStrength.
func (f *Forest) Update(dt, windStrength float64) {
	for _, t := range f.Trees {
		t.Update(dt, windStrength)
	}
}

// Regenerate disposes the current trees and builds a new layout with the
// same config. The new group node is added to the old one's parent, if any.
// On error the forest is left empty with a nil Node.
func (f *Forest) Regenerate(rng Rand) error {
	var parent *Node
	if f.Node != nil {
		parent = f.Node.Parent
	}
	f.Dispose()
	if err := f.build(rng); err != nil {
		return err
	}
	if parent != nil {
		parent.AddChild(f.Node)
	}
	return nil
}

// Dispose frees the forest's scene graph. Every tree still held is reported
// to the Sink with EventTreeRemoved first.
func (f *Forest) Dispose() {
	for i, t := range f.Trees {
		f.emit(GrowthEvent{Type: EventTreeRemoved, TreeIndex: i, NodeID: t.Node.ID, Position: f.Positions[i]})
	}
	if f.Node != nil {
		f.Node.Dispose()
	}
	f.Trees = nil
	f.Positions = nil
}
