//go:build linux

package output

import (
	"fmt"

	"github.com/wlrcore/wlrcore/render"
)

// Swapchain is an output's primary swapchain: a small ring of render
// targets sized to the output's current resolution, in a format
// chosen by intersecting the backend's and renderer's supported
// formats. It is destroyed (and a fresh one allocated) whenever the
// output is disabled or its resolution changes.
type Swapchain struct {
	renderer render.Renderer
	width    int
	height   int
	format   render.Format

	slots []*swapchainSlot
}

type swapchainSlot struct {
	buf      *swapchainBuffer
	busy     bool
}

// swapchainBuffer is a dummy render-target-backed ClientBuffer: the
// ephemeral back buffer CommitState allocates when a caller tests or
// commits without attaching a real client buffer, freed once the
// commit that used it completes.
type swapchainBuffer struct {
	key    uintptr
	width  int
	height int
	format render.Format
}

func (b *swapchainBuffer) ClientBufferKey() uintptr { return b.key }
func (b *swapchainBuffer) Width() int                { return b.width }
func (b *swapchainBuffer) Height() int                { return b.height }
func (b *swapchainBuffer) Format() render.Format      { return b.format }
func (b *swapchainBuffer) HasDMABUF() bool            { return false }

var nextSwapchainKey uintptr = 1

// NewSwapchain chooses a render-format by intersecting backendFormats
// (what the connector/CRTC can scan out) with rend.PreferredFormats(),
// in the renderer's preference order, and sizes the chain to
// width/height.
func NewSwapchain(rend render.Renderer, backendFormats []render.Format, width, height int) (*Swapchain, error) {
	chosen, ok := intersectFormat(rend.PreferredFormats(), backendFormats)
	if !ok {
		return nil, fmt.Errorf("output: no common render format between backend and renderer")
	}
	return &Swapchain{renderer: rend, width: width, height: height, format: chosen}, nil
}

func intersectFormat(preferred, supported []render.Format) (render.Format, bool) {
	supportedSet := make(map[render.Format]bool, len(supported))
	for _, f := range supported {
		supportedSet[f] = true
	}
	for _, f := range preferred {
		if supportedSet[f] {
			return f, true
		}
	}
	return render.FormatUnknown, false
}

// AcquireDummyBuffer returns a throwaway ClientBuffer sized to the
// swapchain's current dimensions, used by TestState/CommitState when
// a caller omits FieldBuffer: the basic tests still need something to
// validate a source/destination box against.
func (s *Swapchain) AcquireDummyBuffer() render.ClientBuffer {
	key := nextSwapchainKey
	nextSwapchainKey++
	return &swapchainBuffer{key: key, width: s.width, height: s.height, format: s.format}
}

// Resize replaces the swapchain's dimensions; existing slots are
// dropped rather than resized in place, since a resized render target
// is a new allocation either way.
func (s *Swapchain) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.slots = nil
}

// Format returns the swapchain's chosen render format.
func (s *Swapchain) Format() render.Format { return s.format }
