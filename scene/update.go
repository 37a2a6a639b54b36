//go:build linux

package scene

import "github.com/wlrcore/wlrcore/gmath"

// primaryOutputMinFraction is spec.md §4.7.3's "≥10% area threshold".
const primaryOutputMinFraction = 0.10

// maxTrackedOutputs is the width of Node.outputMask: spec.md §4.7.3
// states "outputs beyond 64 are unsupported by design".
const maxTrackedOutputs = 64

// updateNode is the central scene_node_update of spec.md §4.7.1: every
// tree mutation calls this with either the node's previous visible
// region (a loss — e.g. disabling or destroying) or nil (a gain or
// move), and it recomputes visibility and output-membership across
// the whole scene.
func updateNode(n *Node, lostVisible *gmath.Region) {
	scene := n.scene
	if scene == nil {
		return
	}
	box := n.GlobalBounds()
	affected := gmath.RegionFromBox(box)
	if lostVisible != nil && !lostVisible.Empty() {
		affected.UnionRegion(lostVisible)
	}
	scene.recompute(affected.Extents())
}

// recompute walks the whole tree recomputing visibility (§4.7.2) then
// output membership (§4.7.3). updateBox is used as the canvas when no
// scene-output has been attached yet (e.g. a scene under test with no
// real output) so visibility is still observable without one; once
// outputs exist, the canvas is their combined logical area, since
// nothing outside any output can ever be "visible" in the sense this
// package cares about.
func (s *Scene) recompute(updateBox gmath.Box) {
	incoming := s.canvas(updateBox)
	s.propagateVisibility(s.Root, incoming)
	s.updateOutputMembership()
}

func (s *Scene) canvas(fallback gmath.Box) *gmath.Region {
	if len(s.Outputs) == 0 {
		return gmath.RegionFromBox(fallback)
	}
	r := gmath.NewRegion()
	for _, so := range s.Outputs {
		r.Union(so.LogicalBox())
	}
	return r
}

// propagateVisibility implements spec.md §4.7.2: traverse descendants
// front-to-back (Z-order tail first), intersecting the incoming
// visible region with each node's bounds, then — when visibility
// culling is enabled — subtracting the node's opaque contribution
// from incoming so nodes further back see a smaller visible region.
// incoming is mutated in place as the walk proceeds, which is what
// lets a front opaque node hide everything behind it.
func (s *Scene) propagateVisibility(n *Node, incoming *gmath.Region) {
	if !n.Enabled {
		n.visible.Clear()
		return
	}

	bounds := n.GlobalBounds()

	if n.Kind == NodeTree {
		union := gmath.NewRegion()
		for i := len(n.children) - 1; i >= 0; i-- {
			s.propagateVisibility(n.children[i], incoming)
			union.UnionRegion(&n.children[i].visible)
		}
		n.visible = *union
		return
	}

	own := incoming.Copy()
	own.Intersect(bounds)
	n.visible = *own

	if s.visibilityEnabled {
		if opaque := n.opaqueRegion(); opaque != nil {
			global := opaque.Copy()
			global.Translate(bounds.X, bounds.Y)
			incoming.SubtractRegion(global)
		}
	}
}

// updateOutputMembership implements spec.md §4.7.3 for every
// rect/buffer leaf in the tree.
func (s *Scene) updateOutputMembership() {
	s.walkOutputMembership(s.Root)
}

func (s *Scene) walkOutputMembership(n *Node) {
	if n.Kind == NodeTree {
		for _, c := range n.children {
			s.walkOutputMembership(c)
		}
		return
	}
	s.updateNodeOutputMembership(n)
}

func (s *Scene) updateNodeOutputMembership(n *Node) {
	bounds := n.GlobalBounds()
	nodeArea := int64(bounds.Width) * int64(bounds.Height)

	var newMask uint64
	var primary *SceneOutput
	var primaryOverlap int64

	for i, so := range s.Outputs {
		if i >= maxTrackedOutputs {
			break
		}
		if nodeArea == 0 {
			continue
		}
		overlap := n.visible.Copy()
		overlap.Intersect(so.LogicalBox())
		overlapArea := regionArea(overlap)
		if overlapArea == 0 {
			continue
		}
		if float64(overlapArea)/float64(nodeArea) >= primaryOutputMinFraction {
			newMask |= uint64(1) << uint(i)
			if overlapArea > primaryOverlap {
				primaryOverlap = overlapArea
				primary = so
			}
		}
	}

	oldMask := n.outputMask
	for i, so := range s.Outputs {
		if i >= maxTrackedOutputs {
			break
		}
		bit := uint64(1) << uint(i)
		wasIn, isIn := oldMask&bit != 0, newMask&bit != 0
		switch {
		case isIn && !wasIn:
			n.OnOutputEnter.Emit(so)
		case wasIn && !isIn:
			n.OnOutputLeave.Emit(so)
		}
	}
	if newMask != oldMask {
		n.outputMask = newMask
		n.OnOutputsUpdate.Emit(newMask)
	}
	n.primaryOutput = primary
}

// OutputMask returns the 64-bit active-outputs mask computed by the
// last visibility pass.
func (n *Node) OutputMask() uint64 { return n.outputMask }

// PrimaryOutput returns the scene-output with the largest visible
// overlap, or nil if the node is active on none.
func (n *Node) PrimaryOutput() *SceneOutput { return n.primaryOutput }

// Visible returns a copy of the node's current visible region in
// root-scene coordinates.
func (n *Node) Visible() gmath.Region { return *n.visible.Copy() }

// regionArea sums the area of a region's constituent rectangles. The
// region invariant (non-overlapping boxes) makes this exact rather
// than an over-count.
func regionArea(r *gmath.Region) int64 {
	var total int64
	for _, b := range r.Rects() {
		total += int64(b.Width) * int64(b.Height)
	}
	return total
}
