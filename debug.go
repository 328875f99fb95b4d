package grove

import (
	"fmt"
	"os"
	"time"
)

// globalDebug enables the extra scene-graph checks and generation stats.
var globalDebug bool

// SetDebugMode enables or disables debug checks: disposed-node use panics,
// deep trees and wide nodes are reported, and forest builds print their
// stats to stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// forestStats holds per-build timing and placement metrics.
type forestStats struct {
	buildTime time.Duration
	trees     int
	relaxed   int
	attempts  int
	vertices  int
}

// debugLogForest prints forest generation stats to stderr.
func debugLogForest(stats forestStats) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[grove] forest: %d trees | %d vertices | build: %v\n",
		stats.trees, stats.vertices, stats.buildTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[grove] placement: %d attempts | %d relaxed\n",
		stats.attempts, stats.relaxed)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("grove debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[grove] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[grove] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
