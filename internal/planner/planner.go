package planner

import (
	"github.com/dragomit/hsmgen/internal/model"
	"github.com/dragomit/hsmgen/internal/resolver"
)

// Plan computes the full dispatch plan for a resolved model: the start
// sequence and, for every leaf state and every event it may receive
// (directly or by inheritance), the ordered rule list.
func Plan(r *resolver.Resolved) *Plan {
	m := r.Model

	startLeaf := m.InitialLeaf(m.Root)
	p := &Plan{
		Start:     entryChainSteps(reverse(model.PathExcluding(startLeaf, m.Root))),
		StartLeaf: startLeaf,
	}

	for _, s := range r.Catalogs.States {
		if !s.IsLeaf() {
			continue
		}
		groups, ok := r.ByLeaf[s]
		if !ok {
			continue
		}
		se := StateEvents{Leaf: s}
		for _, g := range groups {
			var rules []*Rule
			for _, t := range g.Transitions {
				rules = append(rules, planTransition(m, s, t))
			}
			se.Events = append(se.Events, EventRules{Event: g.Event, Rules: rules})
		}
		p.StateEvents = append(p.StateEvents, se)
	}

	return p
}

// planTransition computes one Rule for transition t, fired while the
// machine is in leaf state s (s == t.Src or s is a proper descendant of
// t.Src, since t was inherited down to s by the resolver).
func planTransition(m *model.Model, s *model.Node, t *model.Transition) *Rule {
	rule := &Rule{Transition: t, Guard: t.Guard, Action: t.Action}

	if t.Internal {
		rule.Internal = true
		return rule
	}

	if t.Final {
		rule.Terminal = true
		rule.ExitChain = exitChainSteps(model.PathExcluding(s, m.Root))
		return rule
	}

	src, dst := t.Src, t.Dst
	destLeaf := dst
	if dst.IsComposite() {
		destLeaf = m.InitialLeaf(dst)
	}
	rule.DestLeaf = destLeaf

	switch {
	case destLeaf.IsDescendantOf(src) && src == dst:
		// Case A: self-transition-to-self on a composite (or a leaf
		// self-transition X --> X, which reduces to the same formula
		// with src == dst == destLeaf): full exit of src, full entry of
		// src down through its initial descent to destLeaf.
		rule.ExitChain = exitChainSteps(model.PathIncluding(s, src))
		rule.EntryChain = entryChainSteps(reverse(model.PathIncluding(destLeaf, src)))

	case destLeaf.IsDescendantOf(src):
		// Case B: downward transition, dst a proper descendant of src.
		// src itself is neither exited nor re-entered.
		rule.ExitChain = exitChainSteps(model.PathExcluding(s, src))
		rule.EntryChain = entryChainSteps(reverse(model.PathExcluding(destLeaf, src)))

	case src.IsDescendantOf(dst):
		// Case C: upward-crossing — dst is an ancestor (or equal) of src.
		// Per SPEC_FULL.md §14 item 2, dst is re-entered.
		rule.ExitChain = exitChainSteps(model.PathExcluding(s, dst))
		rule.EntryChain = entryChainSteps(reverse(model.PathIncluding(destLeaf, dst)))

	default:
		// Case D: general case, via the lowest common ancestor of src and
		// the resolved destination leaf.
		lca := model.LCA(src, destLeaf)
		rule.ExitChain = exitChainSteps(model.PathExcluding(s, lca))
		rule.EntryChain = entryChainSteps(reverse(model.PathExcluding(destLeaf, lca)))
	}

	rule.DestLeaf = destLeaf
	return rule
}

func exitChainSteps(nodes []*model.Node) []NodeStep {
	steps := make([]NodeStep, len(nodes))
	for i, n := range nodes {
		steps[i] = NodeStep{Node: n, Actions: n.ExitActions}
	}
	return steps
}

// entryChainSteps builds entry steps for nodes in outermost-to-innermost
// order, attaching each node's parent's initial action when this node is
// that parent's declared initial target (§4.3's entry-chain emission
// rule). When the parent is the root sentinel, the action is attributed
// to the node itself, since the root is never a real emitted state.
func entryChainSteps(nodes []*model.Node) []NodeStep {
	steps := make([]NodeStep, len(nodes))
	for i, n := range nodes {
		step := NodeStep{Node: n, Actions: n.EntryActions}
		if p := n.Parent; p != nil && p.InitialTarget == n.Name && p.InitialAction != "" {
			owner := p
			if p.IsRoot() {
				owner = n
			}
			step.InitialStep = &ActionStep{Owner: owner, Name: p.InitialAction}
		}
		steps[i] = step
	}
	return steps
}

func reverse(nodes []*model.Node) []*model.Node {
	out := make([]*model.Node, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}
