//go:build linux

package output

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/gmath"
	"github.com/wlrcore/wlrcore/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDriver struct {
	rejectErr error
	commits   []drm.CommitFlags
}

func (f *fakeDriver) Name() string { return "fake" }
func (f *fakeDriver) TestOrCommit(state *drm.DeviceState, flags drm.CommitFlags) error {
	f.commits = append(f.commits, flags)
	return f.rejectErr
}

type fakeBuffer struct {
	w, h int
	fmt  render.Format
}

func (b *fakeBuffer) ClientBufferKey() uintptr { return 1 }
func (b *fakeBuffer) Width() int               { return b.w }
func (b *fakeBuffer) Height() int              { return b.h }
func (b *fakeBuffer) Format() render.Format    { return b.fmt }
func (b *fakeBuffer) HasDMABUF() bool          { return false }

func testOutput(driver drm.CommitDriver) *Output {
	conn := &drm.Connector{ID: 1, Name: "HDMI-A-1", Properties: map[string]drm.Property{}}
	o := New("HDMI-A-1", conn, 10, driver, Capabilities{Timelines: true}, discardLogger())
	mode := &drm.Mode{Width: 1920, Height: 1080, Refresh: 60000}
	o.Mode = ModeRequest{Variant: ModeVariantFixed, Fixed: mode}
	o.Enabled = true
	return o
}

func TestCommitStateRejectsOutOfBoundsSrcBox(t *testing.T) {
	o := testOutput(&fakeDriver{})
	buf := &fakeBuffer{w: 100, h: 100, fmt: render.FormatXRGB8888}

	var s State
	s.SetBuffer(buf, gmath.NewFBox(0, 0, 200, 200), gmath.NewBox(0, 0, 1920, 1080))

	err := o.CommitState(&s)
	if !errors.Is(err, ErrBufferOutOfBounds) {
		t.Fatalf("err = %v, want ErrBufferOutOfBounds", err)
	}
}

func TestCommitStateRejectsEmptyDestination(t *testing.T) {
	o := testOutput(&fakeDriver{})
	buf := &fakeBuffer{w: 100, h: 100, fmt: render.FormatXRGB8888}

	var s State
	// Destination entirely outside the output's 1920x1080 resolution.
	s.SetBuffer(buf, gmath.NewFBox(0, 0, 100, 100), gmath.NewBox(5000, 5000, 100, 100))

	err := o.CommitState(&s)
	if !errors.Is(err, ErrDestinationEmpty) {
		t.Fatalf("err = %v, want ErrDestinationEmpty", err)
	}
}

func TestCommitStateRejectsTearingWithoutNewBuffer(t *testing.T) {
	o := testOutput(&fakeDriver{})
	var s State
	s.SetTearing(true)

	err := o.CommitState(&s)
	if !errors.Is(err, ErrTearingRequiresNewBuffer) {
		t.Fatalf("err = %v, want ErrTearingRequiresNewBuffer", err)
	}
}

func TestCommitStateRejectsEnableWithoutMode(t *testing.T) {
	conn := &drm.Connector{ID: 1, Name: "HDMI-A-1"}
	o := New("HDMI-A-1", conn, 10, &fakeDriver{}, Capabilities{}, discardLogger())

	var s State
	s.SetEnabled(true)

	err := o.CommitState(&s)
	if !errors.Is(err, ErrNoMode) {
		t.Fatalf("err = %v, want ErrNoMode", err)
	}
}

func TestCommitStateRejectsAdaptiveSyncWithoutSupport(t *testing.T) {
	o := testOutput(&fakeDriver{})
	var s State
	s.SetAdaptiveSync(true)

	err := o.CommitState(&s)
	if !errors.Is(err, ErrAdaptiveSyncUnsupported) {
		t.Fatalf("err = %v, want ErrAdaptiveSyncUnsupported", err)
	}
}

func TestCommitStateAcceptsAdaptiveSyncWhenAdvertised(t *testing.T) {
	o := testOutput(&fakeDriver{})
	o.Connector.Properties["vrr_capable"] = drm.Property{Name: "vrr_capable", Value: 1}

	var s State
	s.SetAdaptiveSync(true)

	if err := o.CommitState(&s); err != nil {
		t.Fatalf("CommitState() = %v, want nil", err)
	}
	if !o.AdaptiveSyncEnabled {
		t.Error("AdaptiveSyncEnabled should be true after commit")
	}
}

func TestCommitStateRejectsMissingLayer(t *testing.T) {
	o := testOutput(&fakeDriver{})
	o.layers = []Layer{{ID: 1}, {ID: 2}}

	var s State
	s.SetLayers([]Layer{{ID: 1}})

	err := o.CommitState(&s)
	if !errors.Is(err, ErrLayerMissing) {
		t.Fatalf("err = %v, want ErrLayerMissing", err)
	}
}

func TestCommitStateRejectsTimelineWhenUnsupported(t *testing.T) {
	conn := &drm.Connector{ID: 1, Name: "HDMI-A-1", Properties: map[string]drm.Property{}}
	o := New("HDMI-A-1", conn, 10, &fakeDriver{}, Capabilities{Timelines: false}, discardLogger())
	o.Mode = ModeRequest{Variant: ModeVariantFixed, Fixed: &drm.Mode{Width: 1920, Height: 1080}}
	o.Enabled = true

	var s State
	s.WaitTimelineFD = 3
	s.Committed |= FieldWaitTimeline

	err := o.CommitState(&s)
	if !errors.Is(err, ErrTimelineUnsupported) {
		t.Fatalf("err = %v, want ErrTimelineUnsupported", err)
	}
}

func TestCommitStateBumpsCommitSeqAndAppliesFields(t *testing.T) {
	o := testOutput(&fakeDriver{})

	var s State
	s.SetScale(2.0)

	if err := o.CommitState(&s); err != nil {
		t.Fatalf("CommitState() = %v, want nil", err)
	}
	if o.CommitSeq != 1 {
		t.Errorf("CommitSeq = %d, want 1", o.CommitSeq)
	}
	if o.Scale != 2.0 {
		t.Errorf("Scale = %f, want 2.0", o.Scale)
	}
}

func TestCommitStatePropagatesDriverRejection(t *testing.T) {
	driver := &fakeDriver{rejectErr: errors.New("EINVAL")}
	o := testOutput(driver)

	var s State
	s.SetScale(2.0)

	err := o.CommitState(&s)
	if !errors.Is(err, ErrKmsRejected) {
		t.Fatalf("err = %v, want ErrKmsRejected", err)
	}
	if o.CommitSeq != 0 {
		t.Errorf("CommitSeq = %d, want 0 after a rejected commit", o.CommitSeq)
	}
}

func TestTestStateDoesNotMutateOutput(t *testing.T) {
	o := testOutput(&fakeDriver{})

	var s State
	s.SetScale(3.0)

	if err := o.TestState(&s); err != nil {
		t.Fatalf("TestState() = %v, want nil", err)
	}
	if o.Scale != 1.0 {
		t.Errorf("Scale = %f, want unchanged 1.0 after TestState", o.Scale)
	}
}
