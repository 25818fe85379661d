// Package model is the in-memory hierarchical representation of an HSM:
// a tree of named states (Node), a flat transition list, and the catalogs
// derived from them once the tree is frozen.
package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is a state in the hierarchy: a leaf or a composite. The implicit
// root sentinel is itself a Node with an empty Name and a nil Parent; it is
// never part of any catalog and never observable as a current state.
type Node struct {
	Name     string
	Parent   *Node
	Children *orderedmap.OrderedMap[string, *Node]

	// InitialTarget names the child designated as this node's default
	// substate, set by a "[*] --> TGT" line in this node's scope. Empty
	// if the node has no explicit initial designation.
	InitialTarget string
	// InitialAction is the action named on the initial transition, if any.
	InitialAction string

	EntryActions []string
	ExitActions  []string

	// Transitions are this node's own outgoing transitions, in declaration
	// order. Inherited transitions (from ancestors) are not duplicated
	// here; see internal/resolver for the per-leaf inherited table.
	Transitions []*Transition

	// declared is true once this node has been named by an explicit
	// "state NAME" or "state NAME {" line, as opposed to merely being
	// auto-vivified by a forward reference (transition endpoint, entry/exit
	// line, or initial-target line).
	declared bool
}

func newNode(name string, parent *Node) *Node {
	return &Node{
		Name:     name,
		Parent:   parent,
		Children: orderedmap.New[string, *Node](),
	}
}

// IsRoot reports whether n is the implicit root sentinel.
func (n *Node) IsRoot() bool {
	return n.Parent == nil && n.Name == ""
}

// IsComposite reports whether n has at least one child.
func (n *Node) IsComposite() bool {
	return n.Children.Len() > 0
}

// IsLeaf reports whether n has no children. Leaves are the only nodes
// observable via the emitted machine's state() accessor.
func (n *Node) IsLeaf() bool {
	return !n.IsComposite()
}

// Depth returns the number of ancestors between n and the root, i.e. 0 for
// a top-level state.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil && !p.IsRoot(); p = p.Parent {
		d++
	}
	return d
}

// IsDescendantOf reports whether n is a (possibly indirect, possibly equal)
// descendant of other.
func (n *Node) IsDescendantOf(other *Node) bool {
	for s := n; s != nil; s = s.Parent {
		if s == other {
			return true
		}
	}
	return false
}

// IsAncestorOf reports whether n is a (possibly indirect, possibly equal)
// ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	return other.IsDescendantOf(n)
}

// LCA returns the lowest common ancestor of a and b, which may be the root
// sentinel but is never nil for two nodes belonging to the same model.
func LCA(a, b *Node) *Node {
	ancestors := make(map[*Node]bool)
	for s := a; s != nil; s = s.Parent {
		ancestors[s] = true
	}
	for s := b; s != nil; s = s.Parent {
		if ancestors[s] {
			return s
		}
	}
	return nil
}

// PathExcluding walks from leaf upward, collecting nodes (innermost first)
// until (but not including) stopAt. If leaf == stopAt the result is empty.
func PathExcluding(leaf, stopAt *Node) []*Node {
	var path []*Node
	for n := leaf; n != nil && n != stopAt; n = n.Parent {
		path = append(path, n)
	}
	return path
}

// PathIncluding walks from leaf upward, collecting nodes (innermost first)
// up to and including stopAt.
func PathIncluding(leaf, stopAt *Node) []*Node {
	path := PathExcluding(leaf, stopAt)
	if stopAt != nil {
		path = append(path, stopAt)
	}
	return path
}
