//go:build linux

package drm

import (
	"log/slog"
	"os"
)

// LayerFeedback is emitted when a layer cannot be promoted to a
// hardware plane: the format set of every plane that was considered
// and rejected it, so the caller (the scene graph's render list
// builder) can decide whether composing this layer in is worth a
// format conversion upstream.
//
// Grounded on original_source/wlroots backend/drm/libliftoff.c's
// layer-feedback mechanism (spec.md §10 supplemented feature).
type LayerFeedback struct {
	LayerIndex       int
	CandidateFormats *FormatSet
}

// Layer is one scene-graph render-list entry being offered to
// liftoffDriver for direct plane composition, in front-to-back Z
// order (ZPos descending).
type Layer struct {
	FB       *Framebuffer
	Format   uint32
	Modifier uint64
	ZPos     uint64
	PlaneState
}

// liftoffDriver greedily assigns scene-graph layers to free hardware
// planes in Z-order, falling back to the composited primary plane
// (the renderer's output) for any layer that doesn't fit. This is a
// simplified, allocation-light analogue of libliftoff's constraint
// solver: real libliftoff also considers overlapping-plane cost and
// backtracks, which this driver does not attempt.
type liftoffDriver struct {
	file *os.File
	log  *slog.Logger
	res  *Resources

	atomic *atomicDriver

	onFeedback func(LayerFeedback)
}

func newLiftoffDriver(f *os.File, log *slog.Logger, res *Resources) *liftoffDriver {
	return &liftoffDriver{
		file:   f,
		log:    log,
		res:    res,
		atomic: newAtomicDriver(f, log, res),
	}
}

func (d *liftoffDriver) Name() string { return "liftoff" }

// OnFeedback registers a callback invoked once per layer that could
// not be promoted to a plane during the most recent Compose call.
func (d *liftoffDriver) OnFeedback(fn func(LayerFeedback)) {
	d.onFeedback = fn
}

// Compose assigns layers to crtc's free overlay planes (after its
// primary), in front-to-back order, and returns the state the atomic
// driver should commit: assigned layers go straight to a plane,
// unassigned layers are left for the caller to composite into the
// primary plane's framebuffer via the render pass.
func (d *liftoffDriver) Compose(crtc *CRTC, layers []Layer) (*CRTCState, []Layer) {
	cs := &CRTCState{Active: true}
	planes := make([]*Plane, 0, len(crtc.Overlay)+1)
	planes = append(planes, crtc.Overlay...)

	var unassigned []Layer
	used := make(map[uint32]bool)

	for i, layer := range layers {
		plane := d.pickPlane(planes, used, layer)
		if plane == nil {
			unassigned = append(unassigned, layer)
			if d.onFeedback != nil {
				d.onFeedback(LayerFeedback{
					LayerIndex:       i,
					CandidateFormats: combinedFormats(planes, used),
				})
			}
			continue
		}
		used[plane.ID] = true
		ps := layer.PlaneState
		cs.Overlay = append(cs.Overlay, &ps)
	}

	return cs, unassigned
}

func (d *liftoffDriver) pickPlane(planes []*Plane, used map[uint32]bool, layer Layer) *Plane {
	for _, p := range planes {
		if used[p.ID] {
			continue
		}
		if !NewFormatSet(p.Formats).Has(layer.Format, layer.Modifier) {
			continue
		}
		return p
	}
	return nil
}

func combinedFormats(planes []*Plane, used map[uint32]bool) *FormatSet {
	fs := &FormatSet{entries: make(map[uint32]map[uint64]bool)}
	for _, p := range planes {
		if used[p.ID] {
			continue
		}
		for _, f := range p.Formats {
			fs.Add(f, modifierLinear)
		}
	}
	return fs
}

// TestOrCommit delegates to the underlying atomic driver; liftoff
// only changes how a DeviceState is constructed (via Compose), not
// how it's submitted to the kernel.
func (d *liftoffDriver) TestOrCommit(state *DeviceState, flags CommitFlags) error {
	return d.atomic.TestOrCommit(state, flags)
}
