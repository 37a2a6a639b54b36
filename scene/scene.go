//go:build linux

package scene

import (
	"log/slog"

	"github.com/wlrcore/wlrcore/gmath"
)

// Scene owns the root of the composition tree and the list of
// scene-outputs rendering it: the Go rendering of wlr_scene, the
// top-level entity spec.md's "Core entities" section calls out as
// owning the output list.
type Scene struct {
	log  *slog.Logger
	Root *Node

	Outputs []*SceneOutput

	// visibilityEnabled gates the opaque-region subtraction step of
	// propagateVisibility; false mirrors WLR_SCENE_DISABLE_VISIBILITY,
	// used to diagnose whether a compositing bug is in the culling
	// logic itself.
	visibilityEnabled bool
}

// NewScene creates an empty scene with visibility propagation enabled
// and no attached outputs.
func NewScene(log *slog.Logger) *Scene {
	s := &Scene{log: log, visibilityEnabled: true}
	root := newNode(s, nil, NodeTree)
	s.Root = root
	return s
}

// SetVisibilityEnabled toggles opaque-region subtraction during
// visibility propagation, mirroring WLR_SCENE_DISABLE_VISIBILITY.
// Disabling it does not change correctness of the render list (the
// background-cull optimisation in output.go separately checks this
// flag), only whether occluded nodes are pruned from descendants'
// visible regions.
func (s *Scene) SetVisibilityEnabled(enabled bool) {
	if s.visibilityEnabled == enabled {
		return
	}
	s.visibilityEnabled = enabled
	s.recompute(gmath.Box{})
}
