//go:build linux

package output

import "github.com/wlrcore/wlrcore/drm"

// ModeVariant selects whether a pending or current mode names one of
// the connector's listed modes, or a synthetic width/height/refresh
// triple the backend (or a headless/virtual output) accepts without
// it appearing in any mode list.
type ModeVariant uint8

const (
	ModeVariantNone ModeVariant = iota
	ModeVariantFixed
	ModeVariantCustom
)

// ModeRequest is the mode half of a staged OutputState: either a
// pointer into the connector's advertised mode list (Fixed), or a
// custom width/height/refresh triple CRTC-timing-generated on the
// fly (Custom).
type ModeRequest struct {
	Variant ModeVariant
	Fixed   *drm.Mode
	Width   int32
	Height  int32
	Refresh int32 // mHz, 0 lets the backend pick
}

// Resolution returns the width and height the mode would produce, and
// false if the request names no mode at all.
func (m ModeRequest) Resolution() (width, height int32, ok bool) {
	switch m.Variant {
	case ModeVariantFixed:
		if m.Fixed == nil {
			return 0, 0, false
		}
		return int32(m.Fixed.Width), int32(m.Fixed.Height), true
	case ModeVariantCustom:
		return m.Width, m.Height, true
	default:
		return 0, 0, false
	}
}
