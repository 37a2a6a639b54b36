package render

import "errors"

// ErrUnsupportedFormat is returned when a client buffer or render
// target names a Format the renderer cannot import or present.
var ErrUnsupportedFormat = errors.New("render: unsupported format")

// ErrLost is returned by any operation attempted after the renderer's
// backing GPU device has been lost (reset, unplugged, or the
// compositor's session went inactive while a DRM device was in use).
var ErrLost = errors.New("render: renderer lost")

// Capabilities reports what a Renderer backend can do, consulted by
// the output and scene packages before they rely on a feature rather
// than discovering its absence from a failed call.
type Capabilities struct {
	// DMABUF reports whether TextureFromBuffer can import a dmabuf
	// directly rather than requiring a shared-memory buffer.
	DMABUF bool
	// ExplicitSync reports whether BufferPass submission can wait on
	// and signal sync-file backed timeline points rather than relying
	// on an implicit GPU fence.
	ExplicitSync bool
	// Timers reports whether BeginBufferPass honours
	// BufferPassOptions.Timer.
	Timers bool
	// ARGB2101010 reports 10-bit-per-channel render-target support,
	// consulted when an output's image description asks for more than
	// 8 bits of precision.
	ARGB2101010 bool
}

// Renderer is the backend-agnostic rendering contract the scene graph
// and the output commit pipeline both consume: the Go rendering of
// wlroots's wlr_renderer vtable, generalised from one concrete GPU API
// to an interface so a headless or software backend can stand in for
// testing.
type Renderer interface {
	Capabilities() Capabilities

	// PreferredFormats returns the render-target formats this renderer
	// can produce, most preferred first, used to intersect against a
	// backend's supported scanout formats when sizing a swapchain.
	PreferredFormats() []Format

	// TextureFromBuffer imports a client buffer, consulting and
	// populating the renderer's client-buffer cache keyed on
	// buf.ClientBufferKey(). The returned Texture holds a reference
	// until Destroy is called.
	TextureFromBuffer(buf ClientBuffer) (Texture, error)

	// BeginBufferPass starts accumulating draw commands for a render
	// target of the given size and format.
	BeginBufferPass(width, height int, format Format, opts BufferPassOptions) (BufferPass, error)

	// NewTimer allocates a GPU timer query for use in a future
	// BufferPassOptions.Timer pass. Returns an error if Capabilities
	// reports Timers false.
	NewTimer() (Timer, error)

	Destroy()
}
