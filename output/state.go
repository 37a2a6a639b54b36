//go:build linux

package output

import (
	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/gmath"
	"github.com/wlrcore/wlrcore/render"
)

// Field is one bit of the committed-field bitmask a State carries:
// only fields whose bit is set are considered staged, letting a
// caller build up a State across several setter calls and have the
// commit pipeline touch only what actually changed.
type Field uint32

const (
	FieldBuffer Field = 1 << iota
	FieldMode
	FieldEnabled
	FieldAdaptiveSync
	FieldScale
	FieldTransform
	FieldRenderFormat
	FieldGamma
	FieldLayers
	FieldSubpixel
	FieldColorTransform
	FieldImageDescription
	FieldWaitTimeline
	FieldSignalTimeline
	FieldDamage
	FieldAllowReconfiguration
	FieldTearing
)

// Subpixel names a connector's sub-pixel geometry, mirrored from the
// connector so a State commit can override it without an output
// package dependency on drm's connector type.
type Subpixel uint8

const (
	SubpixelUnknown Subpixel = iota
	SubpixelNone
	SubpixelHorizontalRGB
	SubpixelHorizontalBGR
	SubpixelVerticalRGB
	SubpixelVerticalBGR
)

// ImageDescription names the colour characteristics of an output's
// (or a buffer's) signal: the primaries/transfer-function pair a
// commit requests, plus HDR mastering metadata when the transfer
// function needs it.
type ImageDescription struct {
	Primaries         gmath.Primaries
	Transfer          gmath.TransferFunction
	MasteringMinLum   float32 // cd/m^2
	MasteringMaxLum   float32 // cd/m^2
	MaxCLL            float32 // cd/m^2, 0 if unset
	MaxFALL           float32 // cd/m^2, 0 if unset
}

// Layer is one plane-composable surface committed alongside the
// primary buffer: a cursor, or a libliftoff-promoted overlay.
type Layer struct {
	ID        uint32
	Buffer    render.ClientBuffer
	Src       gmath.FBox
	Dst       gmath.Box
	ZPos      uint64
}

// State is the staged change set a caller builds up before calling
// TestState or CommitState: the Go rendering of wlr_output_state.
// Fields are only considered set when their Field bit is present in
// Committed; the zero State commits nothing.
type State struct {
	Committed Field

	Buffer         render.ClientBuffer
	BufferSrc      gmath.FBox
	BufferDst      gmath.Box
	Tearing        bool

	Mode ModeRequest

	Enabled      bool
	AdaptiveSync bool

	Scale     float64
	Transform render.Transform

	RenderFormat render.Format

	Gamma [3][]uint16 // per-channel LUT, nil to clear to linear

	Layers []Layer

	Subpixel Subpixel

	ColorTransform *render.ColourTransform

	ImageDescription ImageDescription

	WaitTimelineFD   int
	WaitTimelinePt   uint64
	SignalTimelineFD int
	SignalTimelinePt uint64

	Damage *gmath.Region

	AllowReconfiguration bool
}

func (s *State) has(f Field) bool { return s.Committed&f != 0 }

// SetBuffer stages a new buffer with its source and destination boxes.
func (s *State) SetBuffer(buf render.ClientBuffer, src gmath.FBox, dst gmath.Box) {
	s.Buffer, s.BufferSrc, s.BufferDst = buf, src, dst
	s.Committed |= FieldBuffer
}

// SetEnabled stages the enabled flag.
func (s *State) SetEnabled(enabled bool) {
	s.Enabled = enabled
	s.Committed |= FieldEnabled
}

// SetFixedMode stages a mode from the connector's listed modes.
func (s *State) SetFixedMode(m *drm.Mode) {
	s.Mode = ModeRequest{Variant: ModeVariantFixed, Fixed: m}
	s.Committed |= FieldMode
}

// SetCustomMode stages a synthetic mode.
func (s *State) SetCustomMode(width, height, refreshMHz int32) {
	s.Mode = ModeRequest{Variant: ModeVariantCustom, Width: width, Height: height, Refresh: refreshMHz}
	s.Committed |= FieldMode
}

// SetAdaptiveSync stages the adaptive-sync request.
func (s *State) SetAdaptiveSync(enabled bool) {
	s.AdaptiveSync = enabled
	s.Committed |= FieldAdaptiveSync
}

// SetScale stages the output scale factor.
func (s *State) SetScale(scale float64) {
	s.Scale = scale
	s.Committed |= FieldScale
}

// SetTransform stages the output transform.
func (s *State) SetTransform(t render.Transform) {
	s.Transform = t
	s.Committed |= FieldTransform
}

// SetRenderFormat stages the render-format override.
func (s *State) SetRenderFormat(f render.Format) {
	s.RenderFormat = f
	s.Committed |= FieldRenderFormat
}

// SetGamma stages a per-channel gamma LUT; pass three nil slices to
// request linear gamma.
func (s *State) SetGamma(r, g, b []uint16) {
	s.Gamma = [3][]uint16{r, g, b}
	s.Committed |= FieldGamma
}

// SetLayers stages the full layer list.
func (s *State) SetLayers(layers []Layer) {
	s.Layers = layers
	s.Committed |= FieldLayers
}

// SetTearing stages the tearing (async page-flip) request.
func (s *State) SetTearing(tearing bool) {
	s.Tearing = tearing
	s.Committed |= FieldTearing
}

// SetSubpixel stages the sub-pixel layout override.
func (s *State) SetSubpixel(sp Subpixel) {
	s.Subpixel = sp
	s.Committed |= FieldSubpixel
}

// SetImageDescription stages the colour image description.
func (s *State) SetImageDescription(desc ImageDescription) {
	s.ImageDescription = desc
	s.Committed |= FieldImageDescription
}

// SetDamage stages an explicit damage region for this commit.
func (s *State) SetDamage(r *gmath.Region) {
	s.Damage = r
	s.Committed |= FieldDamage
}

// StripRedundant clears bits for fields whose staged value already
// equals cur's current value, the idempotent-commit optimisation
// named in spec.md §4.6: a caller that re-sets an output's existing
// scale every frame shouldn't cause the driver to redo that work.
func (s *State) StripRedundant(cur *Output) {
	if s.has(FieldEnabled) && s.Enabled == cur.Enabled {
		s.Committed &^= FieldEnabled
	}
	if s.has(FieldScale) && s.Scale == cur.Scale {
		s.Committed &^= FieldScale
	}
	if s.has(FieldTransform) && s.Transform == cur.Transform {
		s.Committed &^= FieldTransform
	}
	if s.has(FieldAdaptiveSync) && s.AdaptiveSync == cur.AdaptiveSyncEnabled {
		s.Committed &^= FieldAdaptiveSync
	}
	if s.has(FieldRenderFormat) && s.RenderFormat == cur.RenderFormat {
		s.Committed &^= FieldRenderFormat
	}
	if s.has(FieldSubpixel) && s.Subpixel == cur.Subpixel {
		s.Committed &^= FieldSubpixel
	}
}
