package model

// Transition is an edge of the model: from Src, triggered by Event, to Dst
// (or to the final pseudo-state when Final is true).
type Transition struct {
	Src      *Node
	Dst      *Node // nil when Final is true
	Final    bool
	Event    string
	Guard    string
	Action   string
	Internal bool

	// declOrder is the global declaration sequence number. The resolver
	// does not read it: its stable sort by source depth already keeps
	// declaration order among transitions of equal depth.
	declOrder int
}

// InitialEvent is the synthetic event name of an initial transition.
// Initial transitions are recorded directly on Node (InitialTarget/
// InitialAction) rather than as entries in Model.Transitions, and
// internal/planner builds the start sequence from those fields without
// using this constant.
const InitialEvent = "initial"
