package target

import (
	"strconv"
	"strings"

	"authoring-kit/internal/common"
	"authoring-kit/internal/diagnostic"
)

// Kind marker written on every node.
const (
	KindAttr         = "jcr:primaryType"
	KindUnstructured = "nt:unstructured"
)

// DefaultChildName is used when a requested name sanitizes to nothing.
const DefaultChildName = "node"

// Node is one element of the output tree.
type Node struct {
	name      string
	requested string

	attrs     map[string]string
	attrOrder []string

	children []*Node
	parent   *Node

	scope   string
	prefix  string
	postfix string
}

// NewRoot creates a detached root node for the given scope.
func NewRoot(name, scope string) *Node {
	n := newNode(name)
	n.scope = scope

	return n
}

func newNode(name string) *Node {
	clean := common.SanitizeNodeName(name, DefaultChildName)

	n := &Node{
		name:      clean,
		requested: clean,
		attrs:     make(map[string]string),
	}
	n.attrs[KindAttr] = KindUnstructured
	n.attrOrder = append(n.attrOrder, KindAttr)

	return n
}

// Name returns the rendered name, unique among siblings.
func (n *Node) Name() string { return n.name }

// RequestedName returns the name the node was created with, before
// de-duplication.
func (n *Node) RequestedName() string { return n.requested }

// Parent returns the parent node, nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the topmost ancestor.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}

	return cur
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// ChildNames returns the rendered child names in order.
func (n *Node) ChildNames() []string {
	names := make([]string, len(n.children))
	for i, c := range n.children {
		names[i] = c.name
	}

	return names
}

// Child returns the child with the given rendered name, falling back to the
// first child created under that name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}

	for _, c := range n.children {
		if c.requested == name {
			return c
		}
	}

	return nil
}

// Scope returns the node scope, inherited from the parent when unset.
func (n *Node) Scope() string {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.scope != "" {
			return cur.scope
		}
	}

	return ""
}

// SetScope overrides the inherited scope.
func (n *Node) SetScope(scope string) { n.scope = scope }

// Path returns the absolute slash path of the node.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}

	return b.String()
}

// IsEmpty reports whether the node has no children and no attribute besides
// the kind marker.
func (n *Node) IsEmpty() bool {
	if len(n.children) > 0 {
		return false
	}

	for _, k := range n.attrOrder {
		if k != KindAttr {
			return false
		}
	}

	return true
}

// IsAncestorOf reports whether n is other or one of its ancestors.
func (n *Node) IsAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}

	return false
}

// CreateChild appends a new child. A name already used by a sibling gets a
// "_N" suffix.
func (n *Node) CreateChild(name string) *Node {
	child := newNode(name)
	child.name = n.uniqueName(child.requested, nil)
	child.parent = n
	n.children = append(n.children, child)

	return child
}

func (n *Node) uniqueName(base string, except *Node) string {
	taken := func(candidate string) bool {
		for _, c := range n.children {
			if c != except && c.name == candidate {
				return true
			}
		}

		return false
	}

	if !taken(base) {
		return base
	}

	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// AddChild re-parents other under n at position, appending when position is
// out of range. Attaching an ancestor of n (or n itself) is rejected.
func (n *Node) AddChild(other *Node, position int) error {
	if other == nil {
		return nil
	}

	if other.IsAncestorOf(n) {
		return diagnostic.NewLayoutError(diagnostic.CodeCycle, "", other.name,
			"cannot attach %s under its descendant %s", other.Path(), n.Path())
	}

	other.Detach()

	other.name = n.uniqueName(other.requested, nil)
	other.parent = n

	if position < 0 || position >= len(n.children) {
		n.children = append(n.children, other)
		return nil
	}

	n.children = append(n.children, nil)
	copy(n.children[position+1:], n.children[position:])
	n.children[position] = other

	return nil
}

// Detach removes n from its parent. Detaching a root is a no-op.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}

	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}

	n.parent = nil
}

// Rename changes the requested name and re-renders a unique name.
func (n *Node) Rename(name string) {
	clean := common.SanitizeNodeName(name, DefaultChildName)
	n.requested = clean

	if n.parent == nil {
		n.name = clean
		return
	}

	n.name = n.parent.uniqueName(clean, n)
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}

	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Clone returns a detached deep copy of n.
func (n *Node) Clone() *Node {
	c := &Node{
		name:      n.name,
		requested: n.requested,
		attrs:     make(map[string]string, len(n.attrs)),
		attrOrder: append([]string(nil), n.attrOrder...),
		scope:     n.scope,
		prefix:    n.prefix,
		postfix:   n.postfix,
	}

	for k, v := range n.attrs {
		c.attrs[k] = v
	}

	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}

	return c
}
