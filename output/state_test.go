//go:build linux

package output

import "testing"

func TestStateSettersOrCommittedBit(t *testing.T) {
	var s State
	s.SetScale(1.5)
	if s.Committed&FieldScale == 0 {
		t.Error("SetScale should set FieldScale")
	}
	s.SetEnabled(true)
	if s.Committed&(FieldScale|FieldEnabled) != FieldScale|FieldEnabled {
		t.Error("SetEnabled should add FieldEnabled without clearing FieldScale")
	}
}

func TestStripRedundantClearsUnchangedFields(t *testing.T) {
	o := &Output{Scale: 1.0, Enabled: true}

	var s State
	s.SetScale(1.0)
	s.SetEnabled(false)

	s.StripRedundant(o)

	if s.Committed&FieldScale != 0 {
		t.Error("StripRedundant should clear FieldScale when the value is unchanged")
	}
	if s.Committed&FieldEnabled == 0 {
		t.Error("StripRedundant should keep FieldEnabled when the value changed")
	}
}
