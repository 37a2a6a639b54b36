//go:build linux

package output

import (
	"log/slog"
	"sync"

	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/gmath"
	"github.com/wlrcore/wlrcore/render"
	"github.com/wlrcore/wlrcore/wlrutil"
)

// Capabilities reports what the backend driving an Output can do,
// consulted by the basic tests in commit.go before they rely on a
// feature rather than discovering its absence from a failed ioctl.
type Capabilities struct {
	Timelines bool
}

// Output is the compositor-facing handle exposing a Wayland wl_output
// global: the Go rendering of wlr_output. Every field here changes
// only through a successful CommitState call; Name/Connector are
// immutable for the Output's lifetime.
type Output struct {
	log *slog.Logger

	Name      string
	Connector *drm.Connector
	CRTCID    uint32
	driver    drm.CommitDriver
	caps      Capabilities

	mu sync.Mutex

	Mode                ModeRequest
	Enabled             bool
	AdaptiveSyncEnabled bool
	Scale               float64
	Transform           render.Transform
	RenderFormat        render.Format
	Subpixel            Subpixel
	ImageDescription    ImageDescription

	// CommitSeq increments on every successful commit and is quoted in
	// presentation events so a late event can be matched back to the
	// commit that produced it.
	CommitSeq uint64

	// SoftwareCursorLocks counts cursors the backend could not promote
	// to a hardware plane; direct scan-out is refused while > 0.
	SoftwareCursorLocks int

	swapchain *Swapchain
	layers    []Layer

	OnDestroy   wlrutil.Signal[struct{}]
	OnPrecommit wlrutil.Signal[*State]
	OnCommit    wlrutil.Signal[*State]
	OnFrame     wlrutil.Signal[struct{}]

	// frameScheduled is set by ScheduleFrame and cleared once SendFrame
	// fires, so a commit that already carries a new buffer can suppress
	// the idle-dispatch fallback.
	frameScheduled bool
}

// New creates an Output bound to a connector and the CRTC the backend
// assigned it.
func New(name string, conn *drm.Connector, crtcID uint32, driver drm.CommitDriver, caps Capabilities, log *slog.Logger) *Output {
	return &Output{
		log:          log,
		Name:         name,
		Connector:    conn,
		CRTCID:       crtcID,
		driver:       driver,
		caps:         caps,
		Scale:        1.0,
		RenderFormat: render.FormatXRGB8888,
	}
}

// LockSoftwareCursor increments the software-cursor lock count; call
// when a cursor can't be promoted to a hardware plane.
func (o *Output) LockSoftwareCursor() {
	o.mu.Lock()
	o.SoftwareCursorLocks++
	o.mu.Unlock()
}

// UnlockSoftwareCursor decrements the software-cursor lock count.
func (o *Output) UnlockSoftwareCursor() {
	o.mu.Lock()
	if o.SoftwareCursorLocks > 0 {
		o.SoftwareCursorLocks--
	}
	o.mu.Unlock()
}

// HasSoftwareCursors reports whether any cursor is currently
// software-composited, which the scene graph's direct-scanout check
// must refuse.
func (o *Output) HasSoftwareCursors() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.SoftwareCursorLocks > 0
}

// Resolution returns the output's current resolution in output space
// (pre-scale, pre-transform).
func (o *Output) Resolution() gmath.Box {
	w, h, ok := o.Mode.Resolution()
	if !ok {
		return gmath.Box{}
	}
	return gmath.NewBox(0, 0, w, h)
}

// SendFrame emits the frame signal, but only when the output is
// enabled: a disabled output has nothing to present and should not
// drive the compositor's repaint loop.
func (o *Output) SendFrame() {
	o.mu.Lock()
	enabled := o.Enabled
	o.frameScheduled = false
	o.mu.Unlock()

	if !enabled {
		return
	}
	o.OnFrame.Emit(struct{}{})
}

// ScheduleFrame guarantees a future frame event even when the
// compositor's next commit carries no new buffer, by posting an idle
// callback that will call SendFrame. A commit that does carry a new
// buffer (CommitState observing FieldBuffer) clears the pending
// request via suppressScheduledFrame, since SendFrame already fired
// as part of page-flip completion.
func (o *Output) ScheduleFrame(postIdle func(func())) {
	o.mu.Lock()
	already := o.frameScheduled
	o.frameScheduled = true
	o.mu.Unlock()

	if !already && postIdle != nil {
		postIdle(func() {
			o.mu.Lock()
			pending := o.frameScheduled
			o.mu.Unlock()
			if pending {
				o.SendFrame()
			}
		})
	}
}

// suppressScheduledFrame clears a pending ScheduleFrame request
// because a commit with a new buffer will produce its own frame event
// via the page-flip path instead.
func (o *Output) suppressScheduledFrame() {
	o.mu.Lock()
	o.frameScheduled = false
	o.mu.Unlock()
}

// SetSwapchain attaches the primary swapchain backing this output's
// back buffers, sized and formatted per the intersection spec.md
// §4.6 describes (the backend's scanout formats against the
// renderer's supported formats). Called by the backend glue that
// owns both the renderer and the output; nil clears it (disable, or
// resolution change ahead of a fresh allocation).
func (o *Output) SetSwapchain(sc *Swapchain) {
	o.mu.Lock()
	o.swapchain = sc
	o.mu.Unlock()
}

// Swapchain returns the output's current primary swapchain, or nil if
// none is attached (e.g. before the backend has wired one up).
func (o *Output) Swapchain() *Swapchain {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.swapchain
}
