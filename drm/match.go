package drm

import "math"

// unmatched marks a CRTC slot in the match result as having no
// connector assigned.
const unmatched = math.MaxUint32

// matchState carries the matcher's recursion state: which connector
// each CRTC (by index) is tentatively assigned, the best solution
// found so far, and the search cutoff once a perfect, no-change
// solution is found.
type matchState struct {
	possibleCrtcs []uint32 // per connector, bitmask of CRTC indices it can drive
	numCRTCs      int

	score     int
	replaced  int
	result    []uint32 // per CRTC index, assigned connector index or unmatched
	best      []uint32
	prev      []uint32 // per CRTC index, the previous assignment (to minimize churn)
	exitEarly bool
}

// MatchConnectorsToCRTCs runs exhaustive backtracking maximum
// bipartite matching between connectors and CRTCs, returning one
// assignment per CRTC (the connector index it should drive, or
// unmatched). Among solutions tying on the number of matched
// connectors, it prefers the one closest to prevAssignment, so a
// commit doesn't needlessly move an already-lit connector to a
// different CRTC.
//
// Grounded on original_source/wlroots backend/drm/util.c's
// match_connectors_with_crtcs: a naive maximum-bipartite-matching
// search (O(num_crtcs!) worst case) that is acceptable here because
// the connector/CRTC counts on real hardware are single digits.
func MatchConnectorsToCRTCs(possibleCrtcs []uint32, numCRTCs int, prevAssignment []uint32) []uint32 {
	best := make([]uint32, numCRTCs)
	for i := range best {
		best[i] = unmatched
	}
	prev := make([]uint32, numCRTCs)
	copy(prev, prevAssignment)
	for len(prev) < numCRTCs {
		prev = append(prev, unmatched)
	}

	st := &matchState{
		possibleCrtcs: possibleCrtcs,
		numCRTCs:      numCRTCs,
		replaced:      math.MaxInt32,
		result:        make([]uint32, numCRTCs),
		best:          best,
		prev:          prev,
	}
	for i := range st.result {
		st.result[i] = unmatched
	}

	st.search(0, 0, 0)
	return best
}

func (st *matchState) search(score, replaced, crtcIndex int) bool {
	if crtcIndex >= st.numCRTCs {
		if score > st.score || (score == st.score && replaced < st.replaced) {
			st.score = score
			st.replaced = replaced
			copy(st.best, st.result)
			st.exitEarly = (st.score == st.numCRTCs || st.score == len(st.possibleCrtcs)) && st.replaced == 0
			return true
		}
		return false
	}

	hasBest := false

	// Try the previous assignment first, to minimize churn and to
	// short-circuit the search when nothing has changed.
	if prevConn := st.prev[crtcIndex]; prevConn != unmatched && !isTaken(st.result[:crtcIndex], prevConn) {
		st.result[crtcIndex] = prevConn
		score2 := score
		if st.possibleCrtcs[prevConn] != 0 {
			score2++
		}
		if st.search(score2, replaced, crtcIndex+1) {
			hasBest = true
		}
	}
	if st.exitEarly {
		return true
	}

	if st.prev[crtcIndex] != unmatched {
		replaced++
	}

	for candidate := 0; candidate < len(st.possibleCrtcs); candidate++ {
		conn := uint32(candidate)
		if conn == st.prev[crtcIndex] {
			continue
		}
		if st.possibleCrtcs[candidate]&(1<<uint(crtcIndex)) == 0 {
			continue
		}
		if isTaken(st.result[:crtcIndex], conn) {
			continue
		}

		st.result[crtcIndex] = conn
		score2 := score
		if st.possibleCrtcs[candidate] != 0 {
			score2++
		}
		if st.search(score2, replaced, crtcIndex+1) {
			hasBest = true
		}
		if st.exitEarly {
			return true
		}
	}

	st.result[crtcIndex] = unmatched
	if st.search(score, replaced, crtcIndex+1) {
		hasBest = true
	}
	return hasBest
}

func isTaken(assigned []uint32, key uint32) bool {
	for _, v := range assigned {
		if v == key {
			return true
		}
	}
	return false
}
