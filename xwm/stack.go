//go:build linux

package xwm

import "github.com/wlrcore/wlrcore/gmath"

// RestackVisible implements spec.md §4.8's restack arbitration: called
// during a scene update with the update region and the set of
// candidate managed windows (in whatever order the caller discovered
// them, typically front-to-back scene order). A visible, non-override
// window whose bounding box lies entirely inside the update region is
// restacked below the previous such window this call already
// restacked; the first one found is restacked above all others
// instead, so consecutive qualifying windows collapse into a
// contiguous run just under the top of the stack while keeping their
// relative order.
func (m *Manager) RestackVisible(updateRegion gmath.Box, candidates []*ManagedWindow) {
	var prev *ManagedWindow
	for _, w := range candidates {
		if w == nil || w.OverrideRedirect || w.Node == nil {
			continue
		}
		if !w.Node.Enabled {
			continue
		}
		if !updateRegion.ContainsBox(w.Node.GlobalBounds()) {
			continue
		}

		if prev == nil {
			w.Node.RaiseToTop()
			m.moveToTopOfStackOrder(w.ID)
		} else {
			w.Node.PlaceBelow(prev.Node)
			m.movePlaceBelowInStackOrder(w.ID, prev.ID)
		}
		prev = w
	}

	if prev != nil {
		m.syncStackingOrder()
	}
}

// moveToTopOfStackOrder mirrors scene.Node.RaiseToTop's effect on the
// parallel stackOrder slice: id becomes the last (topmost) entry.
func (m *Manager) moveToTopOfStackOrder(id WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stackOrder = removeWindowID(m.stackOrder, id)
	m.stackOrder = append(m.stackOrder, id)
}

// movePlaceBelowInStackOrder mirrors scene.Node.PlaceBelow's effect:
// id is moved to directly before sibling in stackOrder.
func (m *Manager) movePlaceBelowInStackOrder(id, sibling WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stackOrder = removeWindowID(m.stackOrder, id)
	idx := indexOfWindowID(m.stackOrder, sibling)
	if idx < 0 {
		m.stackOrder = append(m.stackOrder, id)
		return
	}
	m.stackOrder = insertWindowID(m.stackOrder, idx, id)
}

func indexOfWindowID(ids []WindowID, target WindowID) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

func insertWindowID(ids []WindowID, idx int, id WindowID) []WindowID {
	ids = append(ids, WindowID(0))
	copy(ids[idx+1:], ids[idx:])
	ids[idx] = id
	return ids
}
