//go:build linux

package scene

import (
	"io"
	"log/slog"

	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/gmath"
	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDriver struct {
	rejectErr error
	commits   int
}

func (f *fakeDriver) Name() string { return "fake" }
func (f *fakeDriver) TestOrCommit(state *drm.DeviceState, flags drm.CommitFlags) error {
	f.commits++
	return f.rejectErr
}

type fakeBuffer struct {
	w, h      int
	format    render.Format
	transform render.Transform
}

func (b *fakeBuffer) ClientBufferKey() uintptr { return 1 }
func (b *fakeBuffer) Width() int               { return b.w }
func (b *fakeBuffer) Height() int              { return b.h }
func (b *fakeBuffer) Format() render.Format    { return b.format }
func (b *fakeBuffer) HasDMABUF() bool          { return true }

type fakeSinglePixelBuffer struct {
	fakeBuffer
	r, g, b, a uint32
}

func (s *fakeSinglePixelBuffer) SinglePixelColor() (r, g, b, a uint32, ok bool) {
	return s.r, s.g, s.b, s.a, true
}

// testOutput builds a 1920x1080 enabled Output with no software
// cursors and TransformNormal, matching a scene-output's default
// scan-out-eligible candidate.
func testOutput(driver drm.CommitDriver) *output.Output {
	conn := &drm.Connector{ID: 1, Name: "HDMI-A-1", Properties: map[string]drm.Property{}}
	o := output.New("HDMI-A-1", conn, 10, driver, output.Capabilities{Timelines: true}, discardLogger())
	mode := &drm.Mode{Width: 1920, Height: 1080, Refresh: 60000}
	o.Mode = output.ModeRequest{Variant: output.ModeVariantFixed, Fixed: mode}
	o.Enabled = true
	return o
}

func opaqueBlackBuffer(w, h int) *fakeSinglePixelBuffer {
	return &fakeSinglePixelBuffer{
		fakeBuffer: fakeBuffer{w: w, h: h, format: render.FormatXRGB8888},
		r:          0, g: 0, b: 0, a: 0xffffffff,
	}
}

func opaqueColor() gmath.Color {
	return gmath.RGBA(1, 1, 1, 1)
}
