package grove

import "github.com/go-gl/mathgl/mgl64"

// EventSink receives generation events. It is the hook for optional ECS
// integration; see the ecs sub-package for a Donburi adapter.
type EventSink interface {
	EmitEvent(event GrowthEvent)
}

// GrowthEventType identifies a generation event.
type GrowthEventType uint8

const (
	EventTreePlaced       GrowthEventType = iota // a tree was built and added
	EventPlacementRelaxed                        // spacing gave up; last candidate kept
	EventForestBuilt                             // all trees placed
	EventTreeRemoved                             // a placed tree was disposed
)

// String returns the event name.
func (t GrowthEventType) String() string {
	switch t {
	case EventTreePlaced:
		return "treePlaced"
	case EventPlacementRelaxed:
		return "placementRelaxed"
	case EventForestBuilt:
		return "forestBuilt"
	case EventTreeRemoved:
		return "treeRemoved"
	default:
		return "unknown"
	}
}

// GrowthEvent carries generation data for the sink.
type GrowthEvent struct {
	Type GrowthEventType
	// TreeIndex is the tree's index in Forest.Trees. For EventForestBuilt it
	// is the tree count.
	TreeIndex int
	// NodeID is the tree group node's ID, 0 for EventForestBuilt. For
	// EventTreeRemoved it is the ID the node had before disposal.
	NodeID   uint32
	Position mgl64.Vec3
	// Attempts is the number of candidates drawn for this tree.
	Attempts int
}

// FuncSink adapts a plain function to EventSink.
type FuncSink func(GrowthEvent)

// EmitEvent calls f(event).
func (f FuncSink) EmitEvent(event GrowthEvent) {
	f(event)
}
