//go:build linux

package scene

import (
	"fmt"
	"log/slog"

	"github.com/wlrcore/wlrcore/gmath"
	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/wlrutil"
)

// scanoutDebounceFrames is spec.md §4.7.5's "delays flipping
// dmabuf-feedback between scanout-preferred and composition-preferred
// recommendations for 30 frames" and SPEC_FULL.md §10's "debounced
// dmabuf-feedback scanout hinting ... scanout_debounce_count/30-frame
// window".
const scanoutDebounceFrames = 30

// SceneOutput binds a Scene to a wlr_output-equivalent Output: the Go
// rendering of wlr_scene_output. Destroying either side destroys the
// pairing (AttachOutput subscribes to the output's destroy signal),
// matching spec.md's cross-entity ownership invariant.
type SceneOutput struct {
	Scene  *Scene
	Output *output.Output
	log    *slog.Logger

	// box is this output's logical position and size within the
	// scene's shared coordinate space.
	box gmath.Box

	damage      *DamageRing
	debugDamage DebugDamageMode
	highlights  []highlightRegion

	// inputTimelinePt is the scene's syncobj input timeline point the
	// next render pass signals at, monotonically increasing.
	inputTimelinePt uint64

	// scanoutPreferred is the debounced dmabuf-feedback recommendation
	// exposed to clients; scanoutPending/scanoutDebounce implement the
	// 30-frame hysteresis that keeps a single flickering frame from
	// flipping it.
	scanoutPreferred bool
	scanoutPending   bool
	scanoutDebounce  int
	// lastScanout records whether the most recently submitted frame
	// actually used direct scan-out, spec.md's "previous scan-out
	// flag".
	lastScanout bool

	OnDestroy wlrutil.Signal[struct{}]
}

// AttachOutput creates the scene-output binding and registers it with
// scene, positioning the output's logical box at (x, y). It subscribes
// to the output's destroy signal so tearing down the backend output
// also tears down the scene-output, per the addon-ownership invariant
// in spec.md's cross-entity invariants.
func AttachOutput(scene *Scene, out *output.Output, x, y int32, log *slog.Logger) *SceneOutput {
	res := out.Resolution()
	so := &SceneOutput{
		Scene:  scene,
		Output: out,
		log:    log,
		box:    gmath.NewBox(x, y, res.Width, res.Height),
		damage: NewDamageRing(),
	}
	scene.Outputs = append(scene.Outputs, so)

	out.OnDestroy.Subscribe(func(struct{}) { so.Destroy() })

	scene.recompute(so.box)
	return so
}

// LogicalBox returns the scene-output's position and size in the
// scene's coordinate space.
func (so *SceneOutput) LogicalBox() gmath.Box { return so.box }

// Destroy unregisters the scene-output from its scene and emits
// OnDestroy; visibility and output-membership are recomputed
// afterward since every node previously active on this output has
// lost it.
func (so *SceneOutput) Destroy() {
	for i, o := range so.Scene.Outputs {
		if o == so {
			so.Scene.Outputs = append(so.Scene.Outputs[:i], so.Scene.Outputs[i+1:]...)
			break
		}
	}
	so.OnDestroy.Emit(struct{}{})
	so.Scene.recompute(so.box)
}

// BuildRenderList implements spec.md §4.7.4: collect every visible,
// non-transparent node intersecting the output's logical box in
// front-to-back Z-order, culling beneath an opaque background.
func (so *SceneOutput) BuildRenderList() []*Node {
	var list []*Node
	collectRenderList(so.Scene.Root, so.box, so.Scene.visibilityEnabled, &list)
	return list
}

// collectRenderList walks front-to-back (Z-order tail first, the
// topmost sibling visited first within each tree level), appending
// visible rect/buffer leaves that intersect box. It stops descending
// further back once an opaque pure-black rectangle or single-pixel
// buffer is found with visibility enabled, since the clear step would
// produce that background anyway (spec.md §4.7.4's optimisation).
func collectRenderList(n *Node, box gmath.Box, visibilityEnabled bool, out *[]*Node) (stop bool) {
	if !n.Enabled || n.visible.Empty() {
		return false
	}
	if !n.GlobalBounds().Intersects(box) {
		return false
	}

	if n.Kind == NodeTree {
		for i := len(n.children) - 1; i >= 0; i-- {
			if collectRenderList(n.children[i], box, visibilityEnabled, out) {
				return true
			}
		}
		return false
	}

	if visibilityEnabled && n.isOpaqueBlackBackground() {
		return true
	}
	*out = append(*out, n)
	return false
}

// AttemptDirectScanout implements spec.md §4.7.5: when the output's
// render list is eligible, it builds a candidate output state cloning
// the current one with the sole buffer node's buffer/src/dst, tests
// and (on success) commits it directly, bypassing the render pass
// entirely. Ineligibility or a rejected candidate both fall through
// to the caller, which must then run the render path instead; either
// way the frame-count debouncer in updateScanoutDebounce is fed so
// the externally visible dmabuf-feedback hint only changes after 30
// consecutive frames agree.
func (so *SceneOutput) AttemptDirectScanout(list []*Node) error {
	eligible, reason := so.checkScanoutEligible(list)
	so.updateScanoutDebounce(eligible)

	if !eligible {
		so.lastScanout = false
		return reason
	}

	node := list[0]
	bounds := node.GlobalBounds()

	candidate := &output.State{}
	candidate.SetBuffer(node.Buffer, node.BufferSrc, gmath.NewBox(bounds.X, bounds.Y, node.BufferDstWidth, node.BufferDstHeight))
	candidate.SetTransform(node.Transform)

	if err := so.Output.TestState(candidate); err != nil {
		node.OnOutputSample.Emit(false)
		so.lastScanout = false
		return fmt.Errorf("%w: %v", ErrScanoutRejected, err)
	}
	if err := so.Output.CommitState(candidate); err != nil {
		node.OnOutputSample.Emit(false)
		so.lastScanout = false
		return fmt.Errorf("%w: %v", ErrScanoutRejected, err)
	}

	node.OnOutputSample.Emit(true)
	so.lastScanout = true
	return nil
}

// checkScanoutEligible runs every refusal check named in spec.md
// §4.7.5, in the order a caller can cheaply short-circuit them.
func (so *SceneOutput) checkScanoutEligible(list []*Node) (bool, error) {
	if len(list) != 1 {
		return false, ErrScanoutNotSingleNode
	}
	node := list[0]
	if node.Kind != NodeBuffer {
		return false, ErrScanoutNotBuffer
	}
	if so.debugDamage == DebugDamageHighlight {
		return false, ErrScanoutDebugHighlight
	}
	if so.Output.HasSoftwareCursors() {
		return false, ErrScanoutSoftwareCursor
	}
	if node.Transform != so.Output.Transform {
		return false, ErrScanoutTransformMismatch
	}
	if requiresColorTransform(node, so.Output) {
		return false, ErrScanoutColorTransform
	}
	return true, nil
}

// requiresColorTransform reports whether node carries colour metadata
// that differs from the output's current signal, which would need the
// render pass's colour-transform DAG rather than a raw scan-out.
func requiresColorTransform(node *Node, out *output.Output) bool {
	if node.Transfer == gmath.TransferUnknown && node.Primaries == gmath.PrimariesUnknown {
		return false
	}
	return node.Transfer != out.ImageDescription.Transfer || node.Primaries != out.ImageDescription.Primaries
}

// updateScanoutDebounce implements the 30-frame hysteresis: the
// externally visible ScanoutPreferred() only flips once eligible has
// held steady, different from the current preference, for
// scanoutDebounceFrames consecutive calls.
func (so *SceneOutput) updateScanoutDebounce(eligible bool) {
	if eligible == so.scanoutPreferred {
		so.scanoutDebounce = 0
		return
	}
	if eligible == so.scanoutPending {
		so.scanoutDebounce++
	} else {
		so.scanoutPending = eligible
		so.scanoutDebounce = 1
	}
	if so.scanoutDebounce >= scanoutDebounceFrames {
		so.scanoutPreferred = eligible
		so.scanoutDebounce = 0
	}
}

// ScanoutPreferred reports the debounced dmabuf-feedback recommendation.
func (so *SceneOutput) ScanoutPreferred() bool { return so.scanoutPreferred }

// LastScanout reports whether the most recently submitted frame
// actually used direct scan-out.
func (so *SceneOutput) LastScanout() bool { return so.lastScanout }
