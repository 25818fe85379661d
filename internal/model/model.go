package model

import "fmt"

// Model is the mutable hierarchical representation built by the parser and
// closed by the resolver. Nodes and transitions are created and mutated
// only before Freeze; after Freeze nothing in the tree is expected to
// change, and the planner treats it as a pure value.
type Model struct {
	Root  *Node
	Nodes map[string]*Node // arena: name -> node, excludes the root sentinel

	Transitions []*Transition

	Events map[string]bool

	frozen bool
	nextDecl int
}

// New returns an empty Model containing only the root sentinel.
func New() *Model {
	return &Model{
		Root:   newNode("", nil),
		Nodes:  make(map[string]*Node),
		Events: make(map[string]bool),
	}
}

// EnsureNode returns the node named name, creating it (attached under
// scope) if it does not yet exist. declare distinguishes an explicit
// "state NAME" declaration from a mere reference (transition endpoint,
// entry/exit target, initial-target name): a reference auto-vivifies a
// stub attached to scope, while a declaration may re-parent a previously
// auto-vivified stub to its true scope. It is an error for two explicit
// declarations of the same name to name different parents.
func (m *Model) EnsureNode(name string, scope *Node, declare bool) (*Node, error) {
	if n, ok := m.Nodes[name]; ok {
		switch {
		case declare && n.declared && n.Parent != scope:
			return nil, fmt.Errorf("state %q already declared under state %q, cannot redeclare under %q",
				name, parentLabel(n.Parent), parentLabel(scope))
		case declare && !n.declared:
			// Promote the auto-vivified stub to its true, declared scope.
			if n.Parent != nil && n.Parent != scope {
				n.Parent.Children.Delete(name)
			}
			n.Parent = scope
			scope.Children.Set(name, n)
			n.declared = true
		case n.Parent == nil:
			// First reference to a name nobody has attached yet.
			n.Parent = scope
			scope.Children.Set(name, n)
		}
		return n, nil
	}
	n := newNode(name, scope)
	n.declared = declare
	m.Nodes[name] = n
	scope.Children.Set(name, n)
	return n, nil
}

func parentLabel(n *Node) string {
	if n == nil || n.IsRoot() {
		return "<top level>"
	}
	return n.Name
}

// AddTransition appends t to Model.Transitions and to t.Src's own
// transition list, stamping it with the next declaration sequence number.
func (m *Model) AddTransition(t *Transition) {
	t.declOrder = m.nextDecl
	m.nextDecl++
	m.Transitions = append(m.Transitions, t)
	t.Src.Transitions = append(t.Src.Transitions, t)
}

// Freeze marks the model closed. It is idempotent.
func (m *Model) Freeze() {
	m.frozen = true
}

// Frozen reports whether Freeze has been called.
func (m *Model) Frozen() bool {
	return m.frozen
}

// PreorderStates returns every declared-or-referenced node except the
// root, in pre-order (a node before its children, children in declaration
// order).
func (m *Model) PreorderStates() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, pair.Value)
			walk(pair.Value)
		}
	}
	walk(m.Root)
	return out
}

// InitialLeaf follows InitialTarget (or, absent one, the first child in
// declaration order) from start until it reaches a leaf. It always
// terminates because the model is a tree.
func (m *Model) InitialLeaf(start *Node) *Node {
	n := start
	for n.IsComposite() {
		if n.InitialTarget != "" {
			next, ok := m.Nodes[n.InitialTarget]
			if !ok {
				// Parser always ensures the target node exists; this is
				// unreachable in a model built exclusively by the parser.
				break
			}
			n = next
			continue
		}
		n = n.Children.Oldest().Value
	}
	return n
}
