//go:build linux

package scene

import "testing"

func childOrder(tree *Node) []*Node {
	out := make([]*Node, len(tree.children))
	copy(out, tree.children)
	return out
}

func indexOf(nodes []*Node, n *Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}

func TestRaiseToTopAndLowerToBottom(t *testing.T) {
	s := NewScene(discardLogger())
	tree := NewTree(s.Root)
	a := NewRect(tree, 10, 10, opaqueColor())
	b := NewRect(tree, 10, 10, opaqueColor())
	c := NewRect(tree, 10, 10, opaqueColor())

	a.RaiseToTop()
	order := childOrder(tree)
	if order[len(order)-1] != a {
		t.Fatalf("RaiseToTop: topmost sibling = %v, want a", order[len(order)-1])
	}

	c.LowerToBottom()
	order = childOrder(tree)
	if order[0] != c {
		t.Fatalf("LowerToBottom: bottommost sibling = %v, want c", order[0])
	}

	_ = b
}

func TestPlaceAboveAndBelow(t *testing.T) {
	s := NewScene(discardLogger())
	tree := NewTree(s.Root)
	a := NewRect(tree, 10, 10, opaqueColor())
	b := NewRect(tree, 10, 10, opaqueColor())
	c := NewRect(tree, 10, 10, opaqueColor())

	a.PlaceAbove(c)
	order := childOrder(tree)
	if indexOf(order, a) != indexOf(order, c)+1 {
		t.Fatalf("PlaceAbove: a should sit directly above c, order = %v", order)
	}

	b.PlaceBelow(c)
	order = childOrder(tree)
	if indexOf(order, b) != indexOf(order, c)-1 {
		t.Fatalf("PlaceBelow: b should sit directly below c, order = %v", order)
	}
}

func TestPlaceAboveIgnoresDifferentParent(t *testing.T) {
	s := NewScene(discardLogger())
	treeA := NewTree(s.Root)
	treeB := NewTree(s.Root)
	a := NewRect(treeA, 10, 10, opaqueColor())
	b := NewRect(treeB, 10, 10, opaqueColor())

	a.PlaceAbove(b)

	if a.Parent != treeA {
		t.Fatal("PlaceAbove across different parents must be a no-op")
	}
	if len(treeB.children) != 1 {
		t.Fatalf("treeB should be unaffected, has %d children", len(treeB.children))
	}
}

func TestReparentMovesNodeToNewParentTop(t *testing.T) {
	s := NewScene(discardLogger())
	treeA := NewTree(s.Root)
	treeB := NewTree(s.Root)
	a := NewRect(treeA, 10, 10, opaqueColor())

	a.Reparent(treeB)

	if a.Parent != treeB {
		t.Fatal("Reparent should update the node's Parent")
	}
	if len(treeA.children) != 0 {
		t.Fatalf("old parent should have 0 children, has %d", len(treeA.children))
	}
	if len(treeB.children) != 1 || treeB.children[0] != a {
		t.Fatal("new parent should have the reparented node as its sole child")
	}
}

func TestIndexInParentReturnsMinusOneForRoot(t *testing.T) {
	s := NewScene(discardLogger())
	if s.Root.indexInParent() != -1 {
		t.Fatal("root node (no parent) should report index -1")
	}
}
