package render

import "github.com/wlrcore/wlrcore/gmath"

// FilterMode selects the sampling filter a textured quad is drawn
// with, chosen per scene-buffer from whether its destination box is
// scaled relative to its source crop.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// RectOptions describes one opaque or translucent solid-colour rect
// submitted to a BufferPass: the scene graph's background-cull and
// single-pixel-buffer fast paths both draw rects rather than textured
// quads.
type RectOptions struct {
	Box   gmath.Box
	Color gmath.Color
}

// TextureOptions describes one textured quad submitted to a
// BufferPass, carrying every per-node attribute the render pass
// composes in front-to-back order.
type TextureOptions struct {
	Texture     Texture
	Src         gmath.FBox
	Dst         gmath.Box
	Transform   Transform
	Filter      FilterMode
	Opacity     float32
	ColorSpace  *ColourTransform
	WaitPointFD int // -1 if the texture has no explicit-sync wait point
}

// BufferPass accumulates draw commands for a single output commit and
// submits them as one GPU command buffer. It is the Go rendering of
// wlr_render_pass: a BufferPass is created fresh for each frame via
// Renderer.BeginBufferPass and is not reused across frames.
type BufferPass interface {
	// AddRect draws an axis-aligned solid-colour rectangle.
	AddRect(opts RectOptions)
	// AddTexture draws a textured quad.
	AddTexture(opts TextureOptions)
	// Submit finalises and submits the accumulated commands, signalling
	// BufferPassOptions.SignalTimelineFD (when >= 0) once the GPU work
	// completes, and returns a Timer when one was requested from
	// BeginBufferPass's options.
	Submit() (Timer, error)
}

// BufferPassOptions configures a BufferPass at creation.
type BufferPassOptions struct {
	// SignalTimelineFD, if >= 0, is an explicit-sync timeline fd the
	// renderer signals at a new point once the submitted commands
	// complete, instead of (or in addition to) any implicit fence.
	SignalTimelineFD int
	// Timer requests a GPU timer query for this pass.
	Timer bool
}
