//go:build linux

package drm

import "testing"

func testCRTCWithOverlays(formats ...[]uint32) *CRTC {
	crtc := &CRTC{ID: 1}
	for i, f := range formats {
		crtc.Overlay = append(crtc.Overlay, &Plane{
			ID:      uint32(10 + i),
			Type:    PlaneTypeOverlay,
			Formats: f,
		})
	}
	return crtc
}

func TestLiftoffComposeAssignsMatchingPlane(t *testing.T) {
	d := newLiftoffDriver(nil, discardLogger(), &Resources{})
	crtc := testCRTCWithOverlays([]uint32{fourccXRGB8888})

	layers := []Layer{
		{Format: fourccXRGB8888, ZPos: 1},
	}

	cs, unassigned := d.Compose(crtc, layers)
	if len(unassigned) != 0 {
		t.Fatalf("expected layer to be assigned to a plane, got %d unassigned", len(unassigned))
	}
	if len(cs.Overlay) != 1 {
		t.Fatalf("expected 1 overlay plane state, got %d", len(cs.Overlay))
	}
}

func TestLiftoffComposeFallsBackWhenNoPlaneFits(t *testing.T) {
	d := newLiftoffDriver(nil, discardLogger(), &Resources{})
	crtc := testCRTCWithOverlays([]uint32{fourccXRGB8888})

	var feedbacks []LayerFeedback
	d.OnFeedback(func(fb LayerFeedback) {
		feedbacks = append(feedbacks, fb)
	})

	layers := []Layer{
		{Format: fourccABGR8888, ZPos: 1},
	}

	cs, unassigned := d.Compose(crtc, layers)
	if len(cs.Overlay) != 0 {
		t.Fatalf("expected no overlay plane assigned, got %d", len(cs.Overlay))
	}
	if len(unassigned) != 1 {
		t.Fatalf("expected 1 unassigned layer, got %d", len(unassigned))
	}
	if len(feedbacks) != 1 {
		t.Fatalf("expected 1 feedback callback, got %d", len(feedbacks))
	}
	if feedbacks[0].CandidateFormats == nil || !feedbacks[0].CandidateFormats.Has(fourccXRGB8888, modifierLinear) {
		t.Error("feedback should list the rejecting plane's supported formats")
	}
}

func TestLiftoffComposeDoesNotReuseAssignedPlane(t *testing.T) {
	d := newLiftoffDriver(nil, discardLogger(), &Resources{})
	crtc := testCRTCWithOverlays([]uint32{fourccXRGB8888})

	layers := []Layer{
		{Format: fourccXRGB8888, ZPos: 2},
		{Format: fourccXRGB8888, ZPos: 1},
	}

	cs, unassigned := d.Compose(crtc, layers)
	if len(cs.Overlay) != 1 {
		t.Fatalf("only one plane exists, expected exactly 1 assignment, got %d", len(cs.Overlay))
	}
	if len(unassigned) != 1 {
		t.Fatalf("expected the second layer to be unassigned, got %d", len(unassigned))
	}
}
