//go:build linux

package output

import (
	"fmt"

	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/gmath"
)

// basicChecks runs every check from spec.md §4.6 that applies to both
// TestState and CommitState.
func basicChecks(o *Output, s *State) error {
	if s.has(FieldBuffer) && s.Buffer != nil {
		if s.BufferSrc.Empty() {
			return ErrBufferOutOfBounds
		}
		if s.BufferSrc.X < 0 || s.BufferSrc.Y < 0 ||
			s.BufferSrc.X+s.BufferSrc.Width > float64(s.Buffer.Width()) ||
			s.BufferSrc.Y+s.BufferSrc.Height > float64(s.Buffer.Height()) {
			return ErrBufferOutOfBounds
		}

		pending := o.pendingResolution(s)
		if s.BufferDst.Intersection(pending).Empty() {
			return ErrDestinationEmpty
		}
	}

	if s.has(FieldTearing) && s.Tearing && !s.has(FieldBuffer) {
		return ErrTearingRequiresNewBuffer
	}

	if s.has(FieldEnabled) && s.Enabled {
		mode := s.Mode
		if mode.Variant == ModeVariantNone {
			mode = o.Mode
		}
		w, h, ok := mode.Resolution()
		if !ok {
			return ErrNoMode
		}
		if w <= 0 || h <= 0 {
			return ErrEmptyResolution
		}
	}

	if s.has(FieldAdaptiveSync) && s.AdaptiveSync && !connectorSupportsAdaptiveSync(o.Connector) {
		return ErrAdaptiveSyncUnsupported
	}

	if s.has(FieldLayers) {
		if err := checkLayersSuperset(o, s.Layers); err != nil {
			return err
		}
	}

	timelineRequested := (s.has(FieldWaitTimeline) || s.has(FieldSignalTimeline))
	if timelineRequested && !o.caps.Timelines {
		return ErrTimelineUnsupported
	}

	if s.has(FieldImageDescription) && !connectorSupportsImageDescription(o.Connector, s.ImageDescription) {
		return ErrImageDescriptionUnsupported
	}

	return nil
}

// connectorSupportsAdaptiveSync reports VRR_CAPABLE on the connector's
// property set.
func connectorSupportsAdaptiveSync(c *drm.Connector) bool {
	if c == nil {
		return false
	}
	p, ok := c.Properties["vrr_capable"]
	return ok && p.Value != 0
}

// connectorSupportsImageDescription reports whether the connector
// advertises an HDR_OUTPUT_METADATA property, the prerequisite for
// accepting anything beyond the default sRGB/BT.1886 signal.
func connectorSupportsImageDescription(c *drm.Connector, desc ImageDescription) bool {
	if desc.Primaries == gmath.PrimariesSRGB && desc.Transfer != gmath.TransferST2084PQ {
		return true
	}
	if c == nil {
		return false
	}
	_, ok := c.Properties["HDR_OUTPUT_METADATA"]
	return ok
}

// checkLayersSuperset requires every layer currently present on the
// output to also appear (by ID) in the committed list.
func checkLayersSuperset(o *Output, committed []Layer) error {
	present := make(map[uint32]bool, len(committed))
	for _, l := range committed {
		present[l.ID] = true
	}
	for _, existing := range o.layers {
		if !present[existing.ID] {
			return ErrLayerMissing
		}
	}
	return nil
}

func (o *Output) pendingResolution(s *State) gmath.Box {
	mode := o.Mode
	if s.has(FieldMode) {
		mode = s.Mode
	}
	w, h, ok := mode.Resolution()
	if !ok {
		return gmath.Box{}
	}
	return gmath.NewBox(0, 0, w, h)
}

// TestState runs the basic checks, ensures a back buffer is available
// (allocating a dummy one from the primary swapchain when the caller
// didn't attach a real buffer), then delegates to the backend driver
// in test-only mode.
func (o *Output) TestState(s *State) error {
	if err := basicChecks(o, s); err != nil {
		return err
	}

	working := *s
	o.ensureBackBuffer(&working)

	devState := o.buildDeviceState(&working)
	if err := o.driver.TestOrCommit(devState, drm.CommitFlagTestOnly|drm.CommitFlagAllowModeset); err != nil {
		return fmt.Errorf("%w: %v", ErrKmsRejected, err)
	}
	return nil
}

// CommitState runs the basic checks, ensures a back buffer, emits the
// precommit signal so observers can attach fences, calls the driver,
// and on success applies the staged fields and emits the commit
// signal.
func (o *Output) CommitState(s *State) error {
	if err := basicChecks(o, s); err != nil {
		return err
	}

	working := *s
	o.ensureBackBuffer(&working)

	o.OnPrecommit.Emit(&working)

	devState := o.buildDeviceState(&working)

	flags := drm.CommitFlagPageFlipEvent
	if working.has(FieldMode) || working.has(FieldEnabled) {
		flags |= drm.CommitFlagAllowModeset
	}

	if err := o.driver.TestOrCommit(devState, flags); err != nil {
		return fmt.Errorf("%w: %v", ErrKmsRejected, err)
	}

	o.CommitSeq++
	o.applyCommitted(&working)

	if working.has(FieldBuffer) {
		o.suppressScheduledFrame()
	}

	o.OnCommit.Emit(&working)
	return nil
}

// ensureBackBuffer allocates a dummy buffer from the primary
// swapchain when s has no buffer staged.
func (o *Output) ensureBackBuffer(s *State) {
	if s.has(FieldBuffer) && s.Buffer != nil {
		return
	}
	if o.swapchain == nil {
		return
	}
	buf := o.swapchain.AcquireDummyBuffer()
	full := gmath.NewFBox(0, 0, float64(buf.Width()), float64(buf.Height()))
	s.SetBuffer(buf, full, o.Resolution())
}

// buildDeviceState translates a staged State into the wire-level
// DeviceState the commit driver understands; blob creation (mode,
// gamma LUT) happens inside the driver itself once it sees a non-nil
// Mode/GammaLUT.
func (o *Output) buildDeviceState(s *State) *drm.DeviceState {
	crtc := &drm.CRTCState{
		Active: s.Enabled || (!s.has(FieldEnabled) && o.Enabled),
	}

	mode := o.Mode
	if s.has(FieldMode) {
		mode = s.Mode
	}
	if mode.Variant == ModeVariantFixed {
		crtc.Mode = mode.Fixed
	}

	if s.has(FieldGamma) {
		crtc.GammaLUT = s.Gamma[0]
	}

	if s.has(FieldBuffer) && s.Buffer != nil {
		// FB is attached by the backend glue that owns the framebuffer
		// import cache (it imports s.Buffer through drm.FBCache and
		// fills PlaneState.FB before handing this DeviceState to the
		// driver); this package only knows the geometry.
		crtc.Primary = &drm.PlaneState{
			SrcX: gmath.FixedFromFloat(s.BufferSrc.X), SrcY: gmath.FixedFromFloat(s.BufferSrc.Y),
			SrcW: gmath.FixedFromFloat(s.BufferSrc.Width), SrcH: gmath.FixedFromFloat(s.BufferSrc.Height),
			DstX: s.BufferDst.X, DstY: s.BufferDst.Y,
			DstW: uint32(s.BufferDst.Width), DstH: uint32(s.BufferDst.Height),
		}
	}

	conn := &drm.ConnectorState{CRTCID: o.CRTCID}
	if s.has(FieldImageDescription) {
		conn.Image = &drm.ImageDescription{
			Primaries:        s.ImageDescription.Primaries,
			TransferFunction: s.ImageDescription.Transfer,
		}
		if s.ImageDescription.Transfer.IsHDR() {
			conn.Image.HDR = &drm.HDRMetadata{
				EOTF:            2, // SMPTE ST.2084 (PQ) code-point
				MaxMasteringLum: uint16(s.ImageDescription.MasteringMaxLum),
				MinMasteringLum: uint16(s.ImageDescription.MasteringMinLum),
				MaxCLL:          uint16(s.ImageDescription.MaxCLL),
				MaxFALL:         uint16(s.ImageDescription.MaxFALL),
			}
		}
	}

	return &drm.DeviceState{
		CRTCs:      map[uint32]*drm.CRTCState{o.CRTCID: crtc},
		Connectors: map[uint32]*drm.ConnectorState{o.Connector.ID: conn},
	}
}

// applyCommitted copies every field s staged into the output's
// current values.
func (o *Output) applyCommitted(s *State) {
	if s.has(FieldMode) {
		o.Mode = s.Mode
	}
	if s.has(FieldEnabled) {
		o.Enabled = s.Enabled
	}
	if s.has(FieldAdaptiveSync) {
		o.AdaptiveSyncEnabled = s.AdaptiveSync
	}
	if s.has(FieldScale) {
		o.Scale = s.Scale
	}
	if s.has(FieldTransform) {
		o.Transform = s.Transform
	}
	if s.has(FieldRenderFormat) {
		o.RenderFormat = s.RenderFormat
	}
	if s.has(FieldSubpixel) {
		o.Subpixel = s.Subpixel
	}
	if s.has(FieldImageDescription) {
		o.ImageDescription = s.ImageDescription
	}
	if s.has(FieldLayers) {
		o.layers = s.Layers
	}
}
