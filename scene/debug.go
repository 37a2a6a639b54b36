//go:build linux

package scene

import (
	"time"

	"github.com/wlrcore/wlrcore/gmath"
)

// DebugDamageMode selects a scene-output's debug damage behaviour,
// mirroring WLR_SCENE_DEBUG_DAMAGE (spec.md §4.7.8). Kept as its own
// type rather than importing the root package's equivalent string
// enum to avoid an import cycle back through wlrcore; the root
// facade converts one to the other when wiring a scene-output.
type DebugDamageMode uint8

const (
	DebugDamageNone DebugDamageMode = iota
	// DebugDamageRerender damages the whole output every frame.
	DebugDamageRerender
	// DebugDamageHighlight accumulates 250ms-lived damaged regions
	// drawn as translucent red rects atop the final pass, and refuses
	// direct scan-out so every frame goes through the render path.
	DebugDamageHighlight
)

// highlightRegionDuration is spec.md §4.7.8's "250 ms regions".
const highlightRegionDuration = 250 * time.Millisecond

type highlightRegion struct {
	box     gmath.Box
	expires time.Time
}

// SetDebugDamage sets the scene-output's debug damage mode.
func (so *SceneOutput) SetDebugDamage(mode DebugDamageMode) {
	so.debugDamage = mode
	if mode != DebugDamageHighlight {
		so.highlights = nil
	}
}

// recordHighlight appends rendered's rectangles as highlight regions
// expiring 250ms from now, a no-op unless highlight mode is active.
func (so *SceneOutput) recordHighlight(rendered *gmath.Region, now time.Time) {
	if so.debugDamage != DebugDamageHighlight {
		return
	}
	for _, b := range rendered.Rects() {
		so.highlights = append(so.highlights, highlightRegion{box: b, expires: now.Add(highlightRegionDuration)})
	}
}

// highlightRects prunes expired entries and returns the boxes still
// live, to be drawn as translucent red rects atop the final pass.
func (so *SceneOutput) highlightRects(now time.Time) []gmath.Box {
	kept := so.highlights[:0]
	for _, h := range so.highlights {
		if h.expires.After(now) {
			kept = append(kept, h)
		}
	}
	so.highlights = kept

	out := make([]gmath.Box, len(so.highlights))
	for i, h := range so.highlights {
		out[i] = h.box
	}
	return out
}

// frameDamage computes the region this frame must redraw: the whole
// output box in rerender mode, otherwise the damage ring's age-based
// rotation.
func (so *SceneOutput) frameDamage(bufferAge int) *gmath.Region {
	if so.debugDamage == DebugDamageRerender {
		return gmath.RegionFromBox(so.box)
	}
	return so.damage.Rotate(bufferAge, so.box)
}
