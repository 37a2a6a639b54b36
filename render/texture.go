package render

// Format names a renderer-side pixel format: the subset the
// compositor's texture upload and scanout paths actually need.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatARGB8888
	FormatXRGB8888
	FormatABGR8888
	FormatXBGR8888
	FormatARGB2101010
	FormatABGR16161616F
)

// HasAlpha reports whether f carries a meaningful alpha channel.
func (f Format) HasAlpha() bool {
	switch f {
	case FormatARGB8888, FormatABGR8888, FormatARGB2101010, FormatABGR16161616F:
		return true
	default:
		return false
	}
}

// ClientBuffer is anything a client attached to a surface or layer:
// a wl_shm pool region or a dmabuf. The renderer's client-buffer cache
// keys on ClientBufferKey rather than the buffer's own identity, since
// the same dmabuf can be re-attached across commits and re-imports
// are expensive.
type ClientBuffer interface {
	// ClientBufferKey identifies the buffer's backing storage for the
	// renderer's import cache. Two ClientBuffers with the same key
	// import to the same Texture without a new upload.
	ClientBufferKey() uintptr
	Width() int
	Height() int
	Format() Format
	// HasDMABUF reports whether the buffer is backed by a dmabuf the
	// renderer can import directly (zero-copy) rather than needing a
	// CPU-side upload from shared memory.
	HasDMABUF() bool
}

// Texture is an image the renderer can sample from a BufferPass: the
// result of importing a ClientBuffer, or a standalone upload (a
// cursor image, a solid-colour fallback).
type Texture interface {
	Width() int
	Height() int
	Format() Format
	// Destroy releases the renderer resources backing the texture.
	// Textures obtained from the client-buffer cache are reference
	// counted internally; Destroy drops this holder's reference.
	Destroy()
}

// SinglePixelBuffer reports whether a ClientBuffer is the
// wp_single_pixel_buffer_manager 1x1 fast path, letting scene-buffer
// composition draw a solid rect instead of sampling a 1x1 texture.
type SinglePixelBuffer interface {
	ClientBuffer
	SinglePixelColor() (r, g, b, a uint32, ok bool)
}
