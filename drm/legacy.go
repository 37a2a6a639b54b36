//go:build linux

package drm

import (
	"fmt"
	"log/slog"
	"os"
)

// legacyDriver implements CommitDriver using drmModeSetCrtc and
// drmModePageFlip for devices without atomic modesetting support.
// Only the primary plane is driven; cursor and overlay planes are not
// touched by this driver (spec.md's legacy
// driver exists because the original spec names it, with no attempt
// at matching atomic's feature set — see DESIGN.md).
type legacyDriver struct {
	file *os.File
	log  *slog.Logger
	res  *Resources
}

func newLegacyDriver(f *os.File, log *slog.Logger, res *Resources) *legacyDriver {
	return &legacyDriver{file: f, log: log, res: res}
}

func (d *legacyDriver) Name() string { return "legacy" }

func (d *legacyDriver) TestOrCommit(state *DeviceState, flags CommitFlags) error {
	// The legacy ioctls have no test-only mode; report success without
	// touching hardware so the output commit pipeline's TestState step
	// degrades to "assume compatible", matching wlroots's legacy
	// backend behaviour.
	if flags&CommitFlagTestOnly != 0 {
		return nil
	}

	for crtcID, cs := range state.CRTCs {
		connIDs := connectorIDsForCRTC(state, crtcID)

		if !cs.Active {
			if err := setCrtcLegacy(d.file, crtcID, 0, 0, 0, nil, nil); err != nil {
				return fmt.Errorf("%w: disable CRTC %d: %v", ErrCommitFailed, crtcID, err)
			}
			continue
		}

		if cs.Primary == nil || cs.Primary.FB == nil {
			return fmt.Errorf("%w: CRTC %d active with no primary framebuffer", ErrCommitFailed, crtcID)
		}

		var rawMode *modeModeInfo
		if cs.Mode != nil {
			rawMode = &cs.Mode.raw
		}

		if err := setCrtcLegacy(d.file, crtcID, cs.Primary.FB.ID, uint32(cs.Primary.DstX), uint32(cs.Primary.DstY), connIDs, rawMode); err != nil {
			return fmt.Errorf("%w: SETCRTC %d: %v", ErrCommitFailed, crtcID, err)
		}

		if flags&CommitFlagPageFlipEvent != 0 {
			var pageFlipFlags uint32 = 0x01 // DRM_MODE_PAGE_FLIP_EVENT
			if err := pageFlipLegacy(d.file, crtcID, cs.Primary.FB.ID, pageFlipFlags, 0); err != nil {
				d.log.Warn("legacy page flip failed", "crtc_id", crtcID, "error", err)
			}
		}
	}
	return nil
}

func connectorIDsForCRTC(state *DeviceState, crtcID uint32) []uint32 {
	var ids []uint32
	for connID, cs := range state.Connectors {
		if cs.CRTCID == crtcID {
			ids = append(ids, connID)
		}
	}
	return ids
}
