//go:build linux

package scene

// Tree-restacking operations. Each updates the parent pointer and/or
// sibling position then calls updateNode, exactly the shape spec.md
// §4.7.1 describes; xwm's restack arbitration (xwm/stack.go) uses
// RaiseToTop and PlaceBelow, and xwm's Dissociate uses LowerToBottom.

// indexInParent returns n's position in its parent's child slice, or
// -1 if n has no parent.
func (n *Node) indexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// RaiseToTop moves n to the front of its sibling list (the tail,
// per spec.md's Z-order convention), making it the topmost sibling.
func (n *Node) RaiseToTop() {
	n.restackTo(len(n.Parent.children) - 1)
}

// LowerToBottom moves n to the back of its sibling list (the head),
// making it the bottommost sibling — the operation xwm applies to an
// override-redirect window at dissociation.
func (n *Node) LowerToBottom() {
	n.restackTo(0)
}

// PlaceAbove moves n to directly above sibling in Z-order.
func (n *Node) PlaceAbove(sibling *Node) {
	if sibling.Parent != n.Parent {
		return
	}
	n.removeSibling()
	idx := sibling.indexInParent()
	n.insertSibling(idx + 1)
}

// PlaceBelow moves n to directly below sibling in Z-order.
func (n *Node) PlaceBelow(sibling *Node) {
	if sibling.Parent != n.Parent {
		return
	}
	n.removeSibling()
	idx := sibling.indexInParent()
	n.insertSibling(idx)
}

func (n *Node) restackTo(idx int) {
	if n.Parent == nil {
		return
	}
	n.removeSibling()
	if idx > len(n.Parent.children) {
		idx = len(n.Parent.children)
	}
	n.insertSibling(idx)
}

func (n *Node) removeSibling() {
	siblings := n.Parent.children
	for i, c := range siblings {
		if c == n {
			n.Parent.children = append(siblings[:i], siblings[i+1:]...)
			return
		}
	}
}

func (n *Node) insertSibling(idx int) {
	siblings := n.Parent.children
	if idx < 0 {
		idx = 0
	}
	if idx > len(siblings) {
		idx = len(siblings)
	}
	siblings = append(siblings, nil)
	copy(siblings[idx+1:], siblings[idx:])
	siblings[idx] = n
	n.Parent.children = siblings
}

// Reparent detaches n from its current parent and attaches it as the
// topmost child of newParent, recomputing visibility over both the
// old and new locations.
func (n *Node) Reparent(newParent *Node) {
	if n.Parent == newParent {
		return
	}
	prev := n.visible.Copy()
	n.removeFromParent()
	n.Parent = newParent
	newParent.children = append(newParent.children, n)
	updateNode(n, prev)
}
