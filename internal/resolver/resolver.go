// Package resolver closes a parsed model: it computes, for every leaf
// state, the ordered table of transitions inherited from that state and
// all its ancestors, and freezes the deterministic catalogs the emitter
// and planner consume.
package resolver

import (
	"sort"

	"github.com/dragomit/hsmgen/internal/model"
)

// EventGroup is every transition (own or inherited) a leaf state may take
// for a single event, ordered by source depth descending then by
// declaration order — see SPEC_FULL.md §14 item 1 for why a deeper,
// non-guarded transition unconditionally shadows a shallower one instead
// of falling through to it.
type EventGroup struct {
	Event       string
	Transitions []*model.Transition
}

// Resolved is the output of Resolve: the frozen catalogs plus, for each
// leaf state, its inherited transition table grouped and ordered by event.
type Resolved struct {
	Model    *model.Model
	Catalogs *model.Catalogs

	// ByLeaf maps a leaf node to its event groups, in catalog event order.
	ByLeaf map[*model.Node][]EventGroup
}

// Resolve walks m (which must already be frozen by the parser) and builds
// the Resolved view the planner operates on.
func Resolve(m *model.Model) *Resolved {
	cat := model.BuildCatalogs(m)

	r := &Resolved{
		Model:    m,
		Catalogs: cat,
		ByLeaf:   make(map[*model.Node][]EventGroup),
	}

	for _, s := range cat.States {
		if !s.IsLeaf() {
			continue
		}
		r.ByLeaf[s] = inheritedTable(s, cat.Events)
	}

	return r
}

// inheritedTable collects, for leaf, every ancestor-or-self transition
// grouped by event (in catalog event order) and sorted within each group
// by source depth descending, then declaration order. This mirrors
// statesurf.py's build_transitions_by_state.
func inheritedTable(leaf *model.Node, events []string) []EventGroup {
	byEvent := make(map[string][]*model.Transition)
	for n := leaf; n != nil && !n.IsRoot(); n = n.Parent {
		for _, t := range n.Transitions {
			if t.Event == "" {
				continue
			}
			byEvent[t.Event] = append(byEvent[t.Event], t)
		}
	}

	var groups []EventGroup
	for _, ev := range events {
		ts, ok := byEvent[ev]
		if !ok {
			continue
		}
		sorted := append([]*model.Transition(nil), ts...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Src.Depth() > sorted[j].Src.Depth()
		})
		groups = append(groups, EventGroup{Event: ev, Transitions: sorted})
	}
	return groups
}
