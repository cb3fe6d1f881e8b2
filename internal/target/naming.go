package target

// SetNamePrefix sets the prefix this node adds to field names rendered
// below it.
func (n *Node) SetNamePrefix(prefix string) *Node {
	n.prefix = prefix
	return n
}

// SetNamePostfix sets the postfix this node adds to field names rendered
// below it.
func (n *Node) SetNamePostfix(postfix string) *Node {
	n.postfix = postfix
	return n
}

// NamePrefix composes the prefixes of n and its ancestors, outermost first.
func (n *Node) NamePrefix() string {
	if n.parent == nil {
		return n.prefix
	}

	return n.parent.NamePrefix() + n.prefix
}

// NamePostfix composes the postfixes of n and its ancestors, innermost
// first.
func (n *Node) NamePostfix() string {
	if n.parent == nil {
		return n.postfix
	}

	return n.postfix + n.parent.NamePostfix()
}

// ComposeName wraps name in the prefixes and postfixes in force at n.
func (n *Node) ComposeName(name string) string {
	return n.NamePrefix() + name + n.NamePostfix()
}
