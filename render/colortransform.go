package render

import "github.com/wlrcore/wlrcore/gmath"

// ColourTransformKind names one node of a colour transform DAG.
type ColourTransformKind uint8

const (
	// ColourTransformMatrix applies a 3x3 matrix (e.g. an
	// absolute-colorimetric primaries conversion) to linear RGB.
	ColourTransformMatrix ColourTransformKind = iota
	// ColourTransformInverseEotf linearises a signal encoded with a
	// named transfer function.
	ColourTransformInverseEotf
	// ColourTransformLut3x1D applies three independent 1D lookup
	// tables, one per channel (a gamma LUT uploaded to KMS, or a
	// client-supplied per-channel curve).
	ColourTransformLut3x1D
	// ColourTransformLcms2 delegates to a Little CMS 2 transform
	// built from an embedded ICC profile; wlrcore carries the node
	// type but does not itself link against lcms2 (see DESIGN.md).
	ColourTransformLcms2
	// ColourTransformPipeline composes a fixed sequence of child
	// transforms, applied in order.
	ColourTransformPipeline
)

// ColourTransform is one node of a reference-counted DAG describing a
// colour conversion. The scene render pass builds one per buffer node
// from the node's primaries and transfer function only; the output's
// image description and gamma LUT are not part of it. A renderer walks
// it once per pixel (conceptually; a real renderer fuses the walk into
// a shader).
//
// Nodes are immutable once built and may be shared by multiple
// parents (a BT.2020-to-sRGB matrix computed once and reused by every
// buffer with that primaries pair), hence the reference count rather
// than a owning tree.
type ColourTransform struct {
	Kind     ColourTransformKind
	Matrix   gmath.Matrix3
	Transfer gmath.TransferFunction
	LUT      [3][]uint16
	Children []*ColourTransform

	refs int
}

// NewIdentityTransform returns the no-op transform: a Matrix node
// holding the identity matrix.
func NewIdentityTransform() *ColourTransform {
	return &ColourTransform{Kind: ColourTransformMatrix, Matrix: gmath.Identity3(), refs: 1}
}

// NewMatrixTransform wraps a 3x3 matrix.
func NewMatrixTransform(m gmath.Matrix3) *ColourTransform {
	return &ColourTransform{Kind: ColourTransformMatrix, Matrix: m, refs: 1}
}

// NewInverseEotfTransform wraps a transfer function's inverse EOTF.
func NewInverseEotfTransform(tf gmath.TransferFunction) *ColourTransform {
	return &ColourTransform{Kind: ColourTransformInverseEotf, Transfer: tf, refs: 1}
}

// NewPipeline composes children in order, taking a reference on each.
func NewPipeline(children ...*ColourTransform) *ColourTransform {
	p := &ColourTransform{Kind: ColourTransformPipeline, Children: children, refs: 1}
	for _, c := range children {
		c.Ref()
	}
	return p
}

// Ref increments the reference count and returns the receiver, so
// call sites can write `child: shared.Ref()`.
func (t *ColourTransform) Ref() *ColourTransform {
	t.refs++
	return t
}

// Unref decrements the reference count, recursively unreffing
// pipeline children once the count reaches zero.
func (t *ColourTransform) Unref() {
	t.refs--
	if t.refs > 0 {
		return
	}
	for _, c := range t.Children {
		c.Unref()
	}
}

// IsIdentity reports whether the transform is a pure no-op matrix,
// letting the render pass skip inserting it into the shader chain.
func (t *ColourTransform) IsIdentity() bool {
	if t.Kind != ColourTransformMatrix {
		return false
	}
	return t.Matrix == gmath.Identity3()
}
