//go:build linux

package drm

import "github.com/wlrcore/wlrcore/gmath"

// CommitFlags controls how a commit is applied, mirroring the DRM
// atomic ioctl's flag bits shared across all three drivers.
type CommitFlags uint32

const (
	CommitFlagTestOnly CommitFlags = 1 << iota
	CommitFlagNonblock
	CommitFlagAllowModeset
	CommitFlagPageFlipEvent
)

func (f CommitFlags) String() string {
	if f == 0 {
		return "none"
	}
	parts := []struct {
		bit  CommitFlags
		name string
	}{
		{CommitFlagPageFlipEvent, "PAGE_FLIP_EVENT"},
		{CommitFlagTestOnly, "ATOMIC_TEST_ONLY"},
		{CommitFlagNonblock, "ATOMIC_NONBLOCK"},
		{CommitFlagAllowModeset, "ATOMIC_ALLOW_MODESET"},
	}
	out := ""
	for _, p := range parts {
		if f&p.bit == 0 {
			continue
		}
		if out != "" {
			out += " | "
		}
		out += p.name
	}
	if out == "" {
		return "none"
	}
	return out
}

// HDRMetadata packs the fields needed for the HDR_OUTPUT_METADATA
// blob: PQ EOTF code-point, chromaticities in 0.00002 units, mastering
// luminance, and max content/frame-average light level.
type HDRMetadata struct {
	EOTF                uint8
	RedX, RedY          uint16
	GreenX, GreenY      uint16
	BlueX, BlueY        uint16
	WhiteX, WhiteY      uint16
	MaxMasteringLum     uint16
	MinMasteringLum     uint16
	MaxCLL              uint16
	MaxFALL             uint16
}

// ImageDescription names the colour properties of an output or a
// scene buffer: the primaries/transfer-function pair plus optional
// HDR metadata when the transfer function requires it.
type ImageDescription struct {
	Primaries        gmath.Primaries
	TransferFunction gmath.TransferFunction
	HDR              *HDRMetadata
}

// PlaneState is the staged commit state of one plane: the framebuffer
// it should scan out, and its source (in the buffer) and destination
// (on the CRTC) geometry.
type PlaneState struct {
	FB       *Framebuffer
	SrcX, SrcY, SrcW, SrcH gmath.Fixed1616
	DstX, DstY             int32
	DstW, DstH             uint32
}

// CRTCState is the staged commit state of one CRTC.
type CRTCState struct {
	Active     bool
	ModeBlobID uint32
	Mode       *Mode
	GammaLUT   []uint16 // nil to leave gamma untouched

	Primary *PlaneState
	Cursor  *PlaneState
	Overlay []*PlaneState
}

// ConnectorState is the staged commit state attached to a connector:
// which CRTC it's routed through, plus colour-management fields that
// live on the connector's properties rather than the CRTC's.
type ConnectorState struct {
	CRTCID      uint32
	Image       *ImageDescription
	MaxBPC      uint32
	ContentType uint32
}

// DeviceState is a full commit: the set of CRTC/connector states to
// apply atomically (or sequentially, for the legacy driver).
type DeviceState struct {
	CRTCs      map[uint32]*CRTCState // keyed by CRTC ID
	Connectors map[uint32]*ConnectorState
}

// CommitDriver is the shared interface the atomic, legacy, and
// libliftoff backends implement. Grounded on original_source/wlroots
// backend/drm/iface.h's wlr_drm_interface vtable (crtc_commit, reset,
// vsync -- here collapsed to a single TestOrCommit, which the three
// drivers interpret differently).
type CommitDriver interface {
	// TestOrCommit validates (and, unless flags includes
	// CommitFlagTestOnly, applies) state. Returns ErrTestFailed or
	// ErrCommitFailed (wrapped with the kernel's errno) on rejection.
	TestOrCommit(state *DeviceState, flags CommitFlags) error

	// Name identifies the driver for logging ("atomic", "legacy",
	// "liftoff").
	Name() string
}
