package wlrcore

import (
	"os"
	"strconv"
	"strings"
)

// RendererKind selects the render package's GPU backend, mirroring
// WLR_RENDERER's enum.
type RendererKind string

const (
	RendererAuto   RendererKind = "auto"
	RendererGLES2  RendererKind = "gles2"
	RendererVulkan RendererKind = "vulkan"
	RendererPixman RendererKind = "pixman"
)

// SceneDebugDamage selects the scene package's debug-damage mode
// (spec.md §4.7.8).
type SceneDebugDamage string

const (
	SceneDebugDamageNone      SceneDebugDamage = "none"
	SceneDebugDamageRerender  SceneDebugDamage = "rerender"
	SceneDebugDamageHighlight SceneDebugDamage = "highlight"
)

// Config collects every environment-variable-driven tunable named in
// spec.md §6, mirroring the teacher's Config struct with a
// Default*/With* pair, generalized to FromEnviron as the primary
// constructor since these are process environment switches rather
// than caller-supplied application options.
type Config struct {
	// Backends is the explicit comma-separated backend priority list
	// (WLR_BACKENDS); empty means run the normal autocreate logic.
	Backends []string

	DRMDevices         []string // WLR_DRM_DEVICES
	WaylandOutputs     []string // WLR_WL_OUTPUTS
	X11Outputs         []string // WLR_X11_OUTPUTS
	HeadlessOutputs    int      // WLR_HEADLESS_OUTPUTS

	DRMNoAtomic          bool // WLR_DRM_NO_ATOMIC
	DRMForceLibliftoff   bool // WLR_DRM_FORCE_LIBLIFTOFF
	DRMNoModifiers       bool // WLR_DRM_NO_MODIFIERS
	LibinputNoDevices    bool // WLR_LIBINPUT_NO_DEVICES

	Renderer              RendererKind // WLR_RENDERER
	RenderDRMDevice       string       // WLR_RENDER_DRM_DEVICE
	RendererForceSoftware bool         // WLR_RENDERER_FORCE_SOFTWARE
	RenderNoExplicitSync  bool         // WLR_RENDER_NO_EXPLICIT_SYNC

	NoHardwareCursors bool // WLR_NO_HARDWARE_CURSORS

	SceneDebugDamage               SceneDebugDamage // WLR_SCENE_DEBUG_DAMAGE
	SceneDisableDirectScanout       bool             // WLR_SCENE_DISABLE_DIRECT_SCANOUT
	SceneDisableVisibility          bool             // WLR_SCENE_DISABLE_VISIBILITY
	SceneHighlightTransparentRegion bool             // WLR_SCENE_HIGHLIGHT_TRANSPARENT_REGION
}

// DefaultConfig returns every switch at its spec-named default: no
// backend override, auto renderer, explicit sync and hardware cursors
// enabled, debug damage off.
func DefaultConfig() Config {
	return Config{
		Renderer:         RendererAuto,
		SceneDebugDamage: SceneDebugDamageNone,
	}
}

// FromEnviron builds a Config by reading spec.md §6's environment
// variables on top of DefaultConfig, the same shape as the teacher's
// WithTitle/WithSize chain but driven by os.Environ instead of
// explicit caller calls.
func FromEnviron() Config {
	c := DefaultConfig()

	if v, ok := os.LookupEnv("WLR_BACKENDS"); ok {
		c.Backends = splitNonEmpty(v)
	}
	if v, ok := os.LookupEnv("WLR_DRM_DEVICES"); ok {
		c.DRMDevices = splitNonEmpty(v)
	}
	if v, ok := os.LookupEnv("WLR_WL_OUTPUTS"); ok {
		c.WaylandOutputs = splitNonEmpty(v)
	}
	if v, ok := os.LookupEnv("WLR_X11_OUTPUTS"); ok {
		c.X11Outputs = splitNonEmpty(v)
	}
	if v, ok := os.LookupEnv("WLR_HEADLESS_OUTPUTS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.HeadlessOutputs = n
		}
	}

	c.DRMNoAtomic = envBool("WLR_DRM_NO_ATOMIC")
	c.DRMForceLibliftoff = envBool("WLR_DRM_FORCE_LIBLIFTOFF")
	c.DRMNoModifiers = envBool("WLR_DRM_NO_MODIFIERS")
	c.LibinputNoDevices = envBool("WLR_LIBINPUT_NO_DEVICES")
	c.RendererForceSoftware = envBool("WLR_RENDERER_FORCE_SOFTWARE")
	c.RenderNoExplicitSync = envBool("WLR_RENDER_NO_EXPLICIT_SYNC")
	c.NoHardwareCursors = envBool("WLR_NO_HARDWARE_CURSORS")
	c.SceneDisableDirectScanout = envBool("WLR_SCENE_DISABLE_DIRECT_SCANOUT")
	c.SceneDisableVisibility = envBool("WLR_SCENE_DISABLE_VISIBILITY")
	c.SceneHighlightTransparentRegion = envBool("WLR_SCENE_HIGHLIGHT_TRANSPARENT_REGION")

	if v, ok := os.LookupEnv("WLR_RENDERER"); ok {
		c.Renderer = RendererKind(v)
	}
	if v, ok := os.LookupEnv("WLR_RENDER_DRM_DEVICE"); ok {
		c.RenderDRMDevice = v
	}
	if v, ok := os.LookupEnv("WLR_SCENE_DEBUG_DAMAGE"); ok {
		c.SceneDebugDamage = SceneDebugDamage(v)
	}

	return c
}

func envBool(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	return v != "" && v != "0"
}

func splitNonEmpty(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
