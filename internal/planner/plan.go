// Package planner computes, for every (leaf state, event) pair, the exact
// ordered sequence of exit actions, the transition action, and entry
// actions required by run-to-completion UML semantics — the LCA
// computation, composite initial descent, self-transition policy, and
// guard disambiguation described in spec.md §4.3.
package planner

import "github.com/dragomit/hsmgen/internal/model"

// ActionStep is one action invocation to emit, attributed to the state it
// logically belongs to (the state whose on_entry/on_exit/action callback
// this runs alongside).
type ActionStep struct {
	Owner *model.Node
	Name  string
}

// NodeStep is one state boundary crossing: an exit (with the node's own
// exit actions already expanded) or an entry (with the node's own entry
// actions, and — if this node is the target of its parent's initial
// designation — the parent's initial action prepended).
type NodeStep struct {
	Node         *model.Node
	Actions      []string // this node's own entry/exit actions, in order
	InitialStep  *ActionStep // non-nil only on entry steps, only when applicable
}

// Rule is one evaluated-in-order candidate for a (leaf, event) dispatch:
// optionally guarded, carrying the exit chain, transition action, entry
// chain, and the outcome (new current leaf, or termination).
type Rule struct {
	Transition *model.Transition

	Guard  string // guard name, or "" for an unconditional rule
	Action string // transition action name, or ""

	Internal bool

	ExitChain  []NodeStep // innermost (closest to source) first
	EntryChain []NodeStep // outermost (closest to LCA) first

	DestLeaf   *model.Node // nil when Terminal
	Terminal   bool
}

// StateEvents is every rule for one leaf state, grouped by event in
// catalog event order.
type StateEvents struct {
	Leaf   *model.Node
	Events []EventRules
}

// EventRules is the ordered candidate list for one (leaf, event) pair.
// Dispatch tries them in order; the first whose Guard is empty or whose
// guard callback returns true fires, and no further rule is consulted.
type EventRules struct {
	Event string
	Rules []*Rule
}

// Plan is the complete output of planning a resolved model: the start
// sequence (run once, before any event is delivered) and the per-leaf,
// per-event dispatch rules.
type Plan struct {
	Start      []NodeStep
	StartLeaf  *model.Node
	StateEvents []StateEvents
}
