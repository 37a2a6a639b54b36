package wlrcore

import "testing"

func TestAddonSetAddFind(t *testing.T) {
	var s AddonSet
	s.Add("fb-cache", 42, nil)

	a, ok := s.Find("fb-cache")
	if !ok {
		t.Fatal("expected addon to be found")
	}
	if a.Value.(int) != 42 {
		t.Errorf("Value = %v, want 42", a.Value)
	}
}

func TestAddonSetDestroyReverseOrder(t *testing.T) {
	var s AddonSet
	var order []string
	s.Add("first", nil, func() { order = append(order, "first") })
	s.Add("second", nil, func() { order = append(order, "second") })
	s.Add("third", nil, func() { order = append(order, "third") })

	s.Destroy()

	want := []string{"third", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestAddonSetRemoveSkipsDestroyHook(t *testing.T) {
	var s AddonSet
	called := false
	s.Add("removable", nil, func() { called = true })
	s.Remove("removable")
	s.Destroy()

	if called {
		t.Error("destroy hook should not run for a removed addon")
	}
}
