package wlrcore

import "testing"

func TestFromEnvironParsesListsAndBools(t *testing.T) {
	t.Setenv("WLR_BACKENDS", "drm,headless")
	t.Setenv("WLR_DRM_DEVICES", "/dev/dri/card0, /dev/dri/card1")
	t.Setenv("WLR_DRM_NO_ATOMIC", "1")
	t.Setenv("WLR_RENDERER", "vulkan")
	t.Setenv("WLR_SCENE_DEBUG_DAMAGE", "highlight")
	t.Setenv("WLR_HEADLESS_OUTPUTS", "3")

	c := FromEnviron()

	if len(c.Backends) != 2 || c.Backends[0] != "drm" || c.Backends[1] != "headless" {
		t.Errorf("Backends = %v, want [drm headless]", c.Backends)
	}
	if len(c.DRMDevices) != 2 || c.DRMDevices[1] != "/dev/dri/card1" {
		t.Errorf("DRMDevices = %v, want trimmed two-element list", c.DRMDevices)
	}
	if !c.DRMNoAtomic {
		t.Error("DRMNoAtomic should be true")
	}
	if c.Renderer != RendererVulkan {
		t.Errorf("Renderer = %v, want vulkan", c.Renderer)
	}
	if c.SceneDebugDamage != SceneDebugDamageHighlight {
		t.Errorf("SceneDebugDamage = %v, want highlight", c.SceneDebugDamage)
	}
	if c.HeadlessOutputs != 3 {
		t.Errorf("HeadlessOutputs = %d, want 3", c.HeadlessOutputs)
	}
}

func TestDefaultConfigUnaffectedByUnsetEnv(t *testing.T) {
	c := DefaultConfig()
	if c.Renderer != RendererAuto {
		t.Errorf("default Renderer = %v, want auto", c.Renderer)
	}
	if c.DRMNoAtomic || c.NoHardwareCursors {
		t.Error("default Config should have every override bool false")
	}
}
