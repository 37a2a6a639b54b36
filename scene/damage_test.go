//go:build linux

package scene

import (
	"testing"

	"github.com/wlrcore/wlrcore/gmath"
)

func TestDamageRingAccumulatesAndAcknowledges(t *testing.T) {
	// spec.md §8 scenario 2: commit a 1920x1080 output with damage
	// {(0,0,800,600), (1000,0,400,400)}, then commit again with only
	// the first rect still dirty; the pending accumulator after the
	// second commit must equal exactly the first rect.
	ring := NewDamageRing()

	ring.AddBox(gmath.NewBox(0, 0, 800, 600))
	ring.AddBox(gmath.NewBox(1000, 0, 400, 400))

	full := ring.Pending()
	if full.Empty() {
		t.Fatal("pending damage should not be empty after two AddBox calls")
	}
	wantArea := int64(800*600 + 400*400)
	if got := regionArea(&full); got != wantArea {
		t.Fatalf("pending area = %d, want %d", got, wantArea)
	}

	rendered := full.Copy()
	ring.Acknowledge(rendered)

	ring.AddBox(gmath.NewBox(0, 0, 800, 600))

	pending := ring.Pending()
	if got := regionArea(&pending); got != int64(800*600) {
		t.Fatalf("pending area after ack+recommit = %d, want %d", got, 800*600)
	}
}

func TestDamageRingRotateAgeZeroReturnsFullBox(t *testing.T) {
	ring := NewDamageRing()
	box := gmath.NewBox(0, 0, 1920, 1080)
	r := ring.Rotate(0, box)
	if r.Extents() != box {
		t.Fatalf("Rotate(0, box) = %v, want full box %v", r.Extents(), box)
	}
}

func TestDamageRingRotateBeyondHistoryReturnsFullBox(t *testing.T) {
	ring := NewDamageRing()
	box := gmath.NewBox(0, 0, 1920, 1080)
	r := ring.Rotate(damageRingCapacity+5, box)
	if r.Extents() != box {
		t.Fatalf("Rotate beyond retained history = %v, want full box %v", r.Extents(), box)
	}
}

func TestDamageRingAcknowledgeSubtractsRendered(t *testing.T) {
	ring := NewDamageRing()
	ring.AddBox(gmath.NewBox(0, 0, 100, 100))

	rendered := gmath.RegionFromBox(gmath.NewBox(0, 0, 100, 100))
	ring.Acknowledge(rendered)

	pending := ring.Pending()
	if !pending.Empty() {
		t.Fatalf("pending should be empty after acknowledging exactly what was added, got %v", pending.Rects())
	}
}
