//go:build linux

package scene

import (
	"github.com/wlrcore/wlrcore/gmath"
	"github.com/wlrcore/wlrcore/render"
	"github.com/wlrcore/wlrcore/wlrutil"
)

// NodeKind tags which field set of Node is valid, the Go rendering of
// spec.md §3's "Enum-like variant fields ... Go-idiomatic tagged
// unions: a small integer kind plus a field set valid only for that
// kind, never interface-based sum types" — chosen over one type per
// kind so a scene walk (the hot path run on every mutation) never
// allocates or type-switches through an interface.
type NodeKind uint8

const (
	NodeTree NodeKind = iota
	NodeRect
	NodeBuffer
)

func (k NodeKind) String() string {
	switch k {
	case NodeTree:
		return "tree"
	case NodeRect:
		return "rect"
	case NodeBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Node is one member of the scene tree: the Go rendering of
// wlr_scene_node, generalized to carry the rect/buffer payload inline
// rather than through an embedded "base" struct, per the tagged-union
// shape above.
type Node struct {
	Kind NodeKind

	scene  *Scene
	Parent *Node // nil only for the scene's root tree node

	// X, Y are relative to Parent's origin.
	X, Y    int32
	Enabled bool

	// RectWidth/RectHeight/RectColor are valid when Kind == NodeRect.
	RectWidth, RectHeight int32
	RectColor             gmath.Color

	// Buffer fields are valid when Kind == NodeBuffer. This is the Go
	// rendering of wlr_scene_buffer.
	Buffer          render.ClientBuffer
	BufferSrc       gmath.FBox
	BufferDstWidth  int32
	BufferDstHeight int32
	Opacity         float32
	Filter          render.FilterMode
	Transform       render.Transform
	// OpaqueRegion is the client-advertised opaque-region hint in the
	// buffer's own local coordinates, nil if the client gave none.
	OpaqueRegion *gmath.Region
	// WaitTimelineFD/WaitTimelinePt name an explicit-sync wait point
	// the renderer must honour before sampling Buffer, -1 FD if none.
	WaitTimelineFD int
	WaitTimelinePt uint64
	Primaries      gmath.Primaries
	Transfer       gmath.TransferFunction

	// scanoutPreferred/scanoutDebounce are not read or written; the
	// 30-frame dmabuf-feedback debounce of spec.md §4.7.5 keeps its
	// state on SceneOutput (see output.go).
	scanoutPreferred bool
	scanoutDebounce  int

	// children is valid when Kind == NodeTree; front of Z-order is the
	// slice tail, matching spec.md's "Core entities" wording.
	children []*Node

	// visible is this node's currently visible region in global
	// (root-tree) coordinates, recomputed by every updateVisibility
	// pass that intersects this node's bounds.
	visible gmath.Region

	// outputMask is the 64-bit bitfield of scene-outputs this node
	// currently covers ≥10% of, per spec.md §4.7.3.
	outputMask uint64
	// primaryOutput is the scene-output with the largest overlap.
	primaryOutput *SceneOutput

	OnDestroy       wlrutil.Signal[struct{}]
	OnOutputEnter   wlrutil.Signal[*SceneOutput]
	OnOutputLeave   wlrutil.Signal[*SceneOutput]
	OnOutputsUpdate wlrutil.Signal[uint64]
	// OnOutputSample fires once per scanout/render decision for a
	// buffer node, carrying whether this frame's output used direct
	// scan-out (spec.md §4.7.5).
	OnOutputSample wlrutil.Signal[bool]

	Addons wlrutil.AddonSet
}

// newNode allocates a bare node of the given kind, attaches it to
// parent (nil only for a scene's root), and registers it with the
// owning scene.
func newNode(scene *Scene, parent *Node, kind NodeKind) *Node {
	n := &Node{
		Kind:    kind,
		scene:   scene,
		Parent:  parent,
		Enabled: true,
		WaitTimelineFD: -1,
	}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// NewTree creates a tree node under parent, the container type
// establishing Z-order among its children.
func NewTree(parent *Node) *Node {
	n := newNode(parent.scene, parent, NodeTree)
	updateNode(n, nil)
	return n
}

// NewRect creates a solid-colour rectangle node under parent.
func NewRect(parent *Node, width, height int32, color gmath.Color) *Node {
	n := newNode(parent.scene, parent, NodeRect)
	n.RectWidth, n.RectHeight, n.RectColor = width, height, color
	updateNode(n, nil)
	return n
}

// NewBuffer creates a buffer node under parent, wrapping buf with its
// full extent as both source crop and destination size until the
// caller narrows them with SetBufferBox.
func NewBuffer(parent *Node, buf render.ClientBuffer) *Node {
	n := newNode(parent.scene, parent, NodeBuffer)
	n.Buffer = buf
	n.Opacity = 1
	if buf != nil {
		n.BufferSrc = gmath.NewFBox(0, 0, float64(buf.Width()), float64(buf.Height()))
		n.BufferDstWidth, n.BufferDstHeight = int32(buf.Width()), int32(buf.Height())
	}
	updateNode(n, nil)
	return n
}

// Bounds returns the node's local bounding box (origin at X,Y in the
// parent's coordinate space, size per its kind; a tree node's bounds
// are the union of its children's bounds translated into its space).
func (n *Node) Bounds() gmath.Box {
	switch n.Kind {
	case NodeRect:
		return gmath.NewBox(n.X, n.Y, n.RectWidth, n.RectHeight)
	case NodeBuffer:
		return gmath.NewBox(n.X, n.Y, n.BufferDstWidth, n.BufferDstHeight)
	case NodeTree:
		var b gmath.Box
		for _, c := range n.children {
			if !c.Enabled {
				continue
			}
			b = b.Union(c.Bounds().Translate(n.X, n.Y))
		}
		return b
	default:
		return gmath.Box{}
	}
}

// Children returns a copy of the tree node's children in Z-order
// (index 0 is the bottommost sibling), valid only when Kind ==
// NodeTree. Tests (xwm's among them) use it to observe sibling order
// without mutating it.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// GlobalBounds returns Bounds() translated into root-scene
// coordinates by walking the Parent chain.
func (n *Node) GlobalBounds() gmath.Box {
	b := n.Bounds()
	for p := n.Parent; p != nil; p = p.Parent {
		b = b.Translate(p.X, p.Y)
	}
	return b
}

// SetPosition moves the node relative to its parent and recomputes
// visibility over both the old and new bounding boxes.
func (n *Node) SetPosition(x, y int32) {
	prev := n.visible.Copy()
	n.X, n.Y = x, y
	updateNode(n, prev)
}

// SetEnabled toggles the node, recomputing visibility with the
// previous visible region as a hint when disabling (spec.md §4.7.1:
// "the node's previous visible region (when lost, e.g. disabled)").
func (n *Node) SetEnabled(enabled bool) {
	if n.Enabled == enabled {
		return
	}
	prev := n.visible.Copy()
	n.Enabled = enabled
	updateNode(n, prev)
}

// SetBufferBox narrows a buffer node's source crop and destination
// size (valid only when Kind == NodeBuffer).
func (n *Node) SetBufferBox(src gmath.FBox, dstWidth, dstHeight int32) {
	prev := n.visible.Copy()
	n.BufferSrc = src
	n.BufferDstWidth, n.BufferDstHeight = dstWidth, dstHeight
	updateNode(n, prev)
}

// SetOpacity sets a buffer node's opacity (valid only when Kind ==
// NodeBuffer); opacity < 1 means the node never contributes to the
// opaque-region subtraction step of visibility propagation.
func (n *Node) SetOpacity(opacity float32) {
	prev := n.visible.Copy()
	n.Opacity = opacity
	updateNode(n, prev)
}

// Destroy detaches the node from its parent, emits OnDestroy, runs its
// addon destroy hooks, and recomputes visibility over the region it
// previously occupied.
func (n *Node) Destroy() {
	prev := n.visible.Copy()
	n.removeFromParent()
	n.OnDestroy.Emit(struct{}{})
	n.Addons.Destroy()
	updateNode(n, prev)
}

func (n *Node) removeFromParent() {
	if n.Parent == nil {
		return
	}
	siblings := n.Parent.children
	for i, c := range siblings {
		if c == n {
			n.Parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// isOpaqueBlackBackground reports whether n is the fully opaque,
// pure-black rectangle (or single-pixel buffer) render-list
// construction culls beneath, per spec.md §4.7.4.
func (n *Node) isOpaqueBlackBackground() bool {
	switch n.Kind {
	case NodeRect:
		return n.RectColor.A >= 1 && n.RectColor.R == 0 && n.RectColor.G == 0 && n.RectColor.B == 0
	case NodeBuffer:
		if n.Opacity < 1 {
			return false
		}
		spb, ok := n.Buffer.(render.SinglePixelBuffer)
		if !ok {
			return false
		}
		r, g, b, a, ok := spb.SinglePixelColor()
		return ok && a == 0xffffffff && r == 0 && g == 0 && b == 0
	default:
		return false
	}
}

// isOpaque reports whether n fully occludes whatever lies behind it
// over its own bounds, the rule visibility propagation (§4.7.2) uses
// to decide what to subtract from the incoming visible region.
func (n *Node) isOpaque() bool {
	switch n.Kind {
	case NodeRect:
		return n.RectColor.A >= 1
	case NodeBuffer:
		if n.Opacity < 1 {
			return false
		}
		if n.OpaqueRegion == nil {
			return false
		}
		return n.OpaqueRegion.Extents() == gmath.NewBox(0, 0, n.BufferDstWidth, n.BufferDstHeight)
	default:
		return false
	}
}

// opaqueRegion returns the region (in the node's own local
// coordinates) that §4.7.2 subtracts from the incoming visible
// region: a rect's full bounds when alpha==1, a buffer's full bounds
// when opaque, its hinted opaque region otherwise, nil if opacity<1.
func (n *Node) opaqueRegion() *gmath.Region {
	switch n.Kind {
	case NodeRect:
		if n.RectColor.A < 1 {
			return nil
		}
		return gmath.RegionFromBox(gmath.NewBox(0, 0, n.RectWidth, n.RectHeight))
	case NodeBuffer:
		if n.Opacity < 1 {
			return nil
		}
		if n.OpaqueRegion != nil {
			return n.OpaqueRegion
		}
		return nil
	default:
		return nil
	}
}
