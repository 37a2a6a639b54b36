package render

import "testing"

func TestIdentityTransformIsIdentity(t *testing.T) {
	id := NewIdentityTransform()
	if !id.IsIdentity() {
		t.Error("NewIdentityTransform() should report IsIdentity")
	}
}

func TestInverseEotfIsNotIdentity(t *testing.T) {
	tr := NewInverseEotfTransform(0)
	if tr.IsIdentity() {
		t.Error("an InverseEotf node should never report IsIdentity")
	}
}

func TestPipelineRefCounting(t *testing.T) {
	child := NewIdentityTransform()
	if child.refs != 1 {
		t.Fatalf("fresh node refs = %d, want 1", child.refs)
	}

	p := NewPipeline(child)
	if child.refs != 2 {
		t.Errorf("child refs after NewPipeline = %d, want 2", child.refs)
	}

	p.Unref()
	if child.refs != 1 {
		t.Errorf("child refs after pipeline Unref = %d, want 1", child.refs)
	}
}
