//go:build linux

package drm

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
)

const (
	drmEventFlipComplete = 0x01
	drmEventVblank       = 0x02
	drmEventCRTCSequence = 0x03

	drmEventHeaderSize = 8  // struct drm_event{type,length}
	drmEventVblankSize = 32 // struct drm_event_vblank
)

// FlipEvent reports a completed page flip for one CRTC: the vblank
// sequence and timestamp the kernel delivered with it.
type FlipEvent struct {
	CRTCID   uint32
	Sequence uint32
	TimeSec  uint32
	TimeUsec uint32
	UserData uint64
}

// PageFlipTracker reads DRM character-device events (page-flip
// completions, vblanks) off the card fd and dispatches them to
// per-commit callbacks, the same role as wlroots's drmHandleEvent
// combined with its page-flip bookkeeping in drm/drm.c.
type PageFlipTracker struct {
	file *os.File
	log  *slog.Logger

	pending map[uint64]func(FlipEvent)
}

func NewPageFlipTracker(f *os.File, log *slog.Logger) *PageFlipTracker {
	return &PageFlipTracker{
		file:    f,
		log:     log,
		pending: make(map[uint64]func(FlipEvent)),
	}
}

// Expect registers onComplete to be called the next time a
// DRM_EVENT_FLIP_COMPLETE event carrying userData arrives. The atomic
// and legacy drivers submit every flip with userData 0 and do not call
// Expect themselves.
func (t *PageFlipTracker) Expect(userData uint64, onComplete func(FlipEvent)) {
	t.pending[userData] = onComplete
}

// ReadEvents performs one blocking read of the card fd and dispatches
// every complete DRM event found in the buffer, returning once the
// read's worth of events has been processed. Callers typically drive
// this from an event-loop fd-readable callback rather than calling it
// in a tight loop.
func (t *PageFlipTracker) ReadEvents(ctx context.Context) error {
	buf := make([]byte, 4096)
	n, err := t.file.Read(buf)
	if err != nil {
		return fmt.Errorf("read DRM events: %w", err)
	}
	buf = buf[:n]

	for len(buf) >= drmEventHeaderSize {
		typ := binary.LittleEndian.Uint32(buf[0:4])
		length := binary.LittleEndian.Uint32(buf[4:8])
		if length < drmEventHeaderSize || int(length) > len(buf) {
			t.log.Warn("malformed DRM event, dropping remainder", "type", typ, "length", length)
			return nil
		}
		event := buf[:length]
		buf = buf[length:]

		switch typ {
		case drmEventFlipComplete:
			t.dispatchFlipComplete(ctx, event)
		case drmEventVblank:
			// Plain vblank events (not tied to a page flip) are not
			// surfaced; nothing in this package's commit pipeline
			// requests DRM_IOCTL_WAIT_VBLANK today.
		case drmEventCRTCSequence:
			t.dispatchFlipComplete(ctx, event)
		default:
			t.log.Debug("unhandled DRM event type", "type", typ)
		}
	}
	return nil
}

func (t *PageFlipTracker) dispatchFlipComplete(ctx context.Context, event []byte) {
	if len(event) < drmEventVblankSize {
		return
	}
	userData := binary.LittleEndian.Uint64(event[8:16])
	tvSec := binary.LittleEndian.Uint32(event[16:20])
	tvUsec := binary.LittleEndian.Uint32(event[20:24])
	sequence := binary.LittleEndian.Uint32(event[24:28])
	crtcID := binary.LittleEndian.Uint32(event[28:32])

	cb, ok := t.pending[userData]
	if !ok {
		t.log.Debug("page flip event with no matching commit", "user_data", userData, "crtc_id", crtcID)
		return
	}
	delete(t.pending, userData)
	cb(FlipEvent{
		CRTCID:   crtcID,
		Sequence: sequence,
		TimeSec:  tvSec,
		TimeUsec: tvUsec,
		UserData: userData,
	})
}

// Outstanding reports how many commits are still waiting on a
// page-flip completion event, for diagnosing a CRTC that stopped
// flipping (a symptom of a wedged driver or a disconnected cable).
func (t *PageFlipTracker) Outstanding() int {
	return len(t.pending)
}
