// Package wlrcore provides a Wayland compositor support library: a
// uniform abstraction over the DRM/KMS output subsystem, a
// backend-agnostic output abstraction with staged commit semantics,
// and a retained-mode scene graph, plus the subset of Xwayland
// window-management glue that consumes the scene's stacking order.
//
// # Architecture
//
//   - drm: connector/CRTC/plane enumeration, framebuffer import,
//     atomic/legacy/libliftoff commit drivers, page-flip tracking.
//   - output: the compositor-facing Output type, staged OutputState,
//     test/commit pipeline, swapchain coupling.
//   - render: the renderer/buffer-pass/texture/timer contract the
//     scene graph and DRM backend both consume.
//   - scene: the retained composition tree, visibility propagation,
//     per-output render list, direct scan-out, damage tracking.
//   - xwm: Xwayland restack arbitration and client-list maintenance.
//
// The root package ties these together: backend selection
// (Autocreate), process-wide session state, and the cooperative
// single-threaded event loop that drives every file descriptor.
//
// # Configuration
//
// Every tunable is driven by an environment variable, collected into
// a Config via FromEnviron:
//
//	cfg := wlrcore.FromEnviron()
//	backend, err := wlrcore.Autocreate(cfg, logger)
//
// # Dependencies
//
// wlrcore depends on:
//   - golang.org/x/sys/unix - DRM ioctls, netlink, epoll
//   - github.com/go-webgpu/webgpu, github.com/gogpu/wgpu - the
//     render package's GPU backend
package wlrcore
