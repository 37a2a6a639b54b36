//go:build linux

package scene

import "github.com/wlrcore/wlrcore/gmath"

// damageRingCapacity bounds how many past frames' damage a ring
// retains for buffer-age-based recomputation, matching a typical
// triple-buffered swapchain depth.
const damageRingCapacity = 4

// DamageRing is a scene-output's per-frame damage history plus its
// not-yet-acknowledged accumulator: the Go rendering of
// wlr_damage_ring (spec.md §4.7.7).
type DamageRing struct {
	history []gmath.Region
	pending gmath.Region
}

// NewDamageRing creates an empty ring.
func NewDamageRing() *DamageRing {
	return &DamageRing{}
}

// AddDamage merges newly damaged area into the pending accumulator,
// the region a render pass must redraw on its next frame.
func (d *DamageRing) AddDamage(r *gmath.Region) {
	d.pending.UnionRegion(r)
}

// AddBox is a convenience wrapper around AddDamage for a single box.
func (d *DamageRing) AddBox(b gmath.Box) {
	d.pending.Union(b)
}

// Rotate returns the damage a swapchain slot last used `age` frames
// ago needs redrawn: the pending accumulator unioned with the last
// age history entries, since that slot is missing exactly those
// frames' damage. age <= 0 or age beyond the retained history means
// the slot's contents are unknown, so the whole output box is
// returned.
func (d *DamageRing) Rotate(age int, outputBox gmath.Box) *gmath.Region {
	if age <= 0 || age > len(d.history) {
		return gmath.RegionFromBox(outputBox)
	}
	combined := d.pending.Copy()
	for i := len(d.history) - age; i < len(d.history); i++ {
		combined.UnionRegion(&d.history[i])
	}
	return combined
}

// Acknowledge pushes a copy of the pending accumulator into history as
// this frame's damage (evicting the oldest entry past
// damageRingCapacity), then subtracts rendered from the pending
// accumulator — spec.md §4.7.7's
// "On commit with STATE_BUFFER, the acknowledged damage is subtracted
// from the pending accumulator."
func (d *DamageRing) Acknowledge(rendered *gmath.Region) {
	d.history = append(d.history, *d.pending.Copy())
	if len(d.history) > damageRingCapacity {
		d.history = d.history[len(d.history)-damageRingCapacity:]
	}
	d.pending.SubtractRegion(rendered)
}

// Pending returns a copy of the accumulator not yet acknowledged by
// any commit.
func (d *DamageRing) Pending() gmath.Region {
	return *d.pending.Copy()
}
