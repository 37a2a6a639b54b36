//go:build linux

package wlrcore

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/wlrutil"
)

// Backend is the Go rendering of wlr_backend: a source of Output
// instances, driven by the event loop, backed by one of several
// concrete transports (real DRM/KMS hardware, a nested Wayland or X11
// client connection, or a headless virtual set for testing). Grounded
// on the teacher's gpu.Backend interface + gpu/registry.go's
// name-keyed factory registry, generalized from "a GPU rendering API"
// to "a source of compositor outputs".
type Backend interface {
	// Name identifies the backend variant ("drm", "wayland", "x11",
	// "headless", "multi").
	Name() string

	// Start registers the backend's file descriptors with loop and
	// begins producing outputs. Outputs discovered before Start is
	// called (e.g. DRM connectors already connected at open time) are
	// announced via OnNewOutput during Start, not before.
	Start(loop *EventLoop) error

	// Destroy tears down every output and releases the backend's
	// resources. Safe to call even if Start was never called.
	Destroy() error

	// Outputs returns a snapshot of every output currently live on
	// this backend.
	Outputs() []*output.Output

	OnNewOutput() *wlrutil.Signal[*output.Output]
	OnDestroy() *wlrutil.Signal[struct{}]
}

// BackendFactory creates a backend instance from configuration. Unlike
// gpu.BackendFactory (which takes no arguments, since GPU backend
// selection is capability-only), a display backend needs the subset
// of Config naming its devices/outputs and a logger.
type BackendFactory func(cfg Config, log *slog.Logger) (Backend, error)

var (
	backendRegistryMu sync.RWMutex
	backendRegistry    = make(map[string]BackendFactory)
	// backendPriority mirrors gpu/registry.go's backendPriority: the
	// order Autocreate tries variants in in the no-override,
	// no-nested-display-env-vars case (spec.md §3's "session+DRM+
	// libinput" default path comes first).
	backendPriority = []string{"drm", "wayland", "x11", "headless"}
)

// RegisterBackend registers a backend factory under name, typically
// called from a variant file's init().
func RegisterBackend(name string, factory BackendFactory) {
	backendRegistryMu.Lock()
	defer backendRegistryMu.Unlock()
	backendRegistry[name] = factory
}

// IsBackendRegistered reports whether name has a registered factory.
func IsBackendRegistered(name string) bool {
	backendRegistryMu.RLock()
	defer backendRegistryMu.RUnlock()
	_, ok := backendRegistry[name]
	return ok
}

// AvailableBackends lists every registered backend variant name.
func AvailableBackends() []string {
	backendRegistryMu.RLock()
	defer backendRegistryMu.RUnlock()
	names := make([]string, 0, len(backendRegistry))
	for name := range backendRegistry {
		names = append(names, name)
	}
	return names
}

func createBackend(name string, cfg Config, log *slog.Logger) (Backend, error) {
	backendRegistryMu.RLock()
	factory, ok := backendRegistry[name]
	backendRegistryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("wlrcore: backend %q is not registered", name)
	}
	return factory(cfg, log)
}

// nestedDisplayEnv reports which nested variant, if any, the process
// is running inside: a parent Wayland compositor (WAYLAND_DISPLAY) is
// preferred over a parent X11 server (DISPLAY), matching wlr_backend_
// autocreate's own preference order.
func nestedDisplayEnv() (variant string, ok bool) {
	if v := os.Getenv("WAYLAND_DISPLAY"); v != "" {
		return "wayland", true
	}
	if v := os.Getenv("DISPLAY"); v != "" {
		return "x11", true
	}
	return "", false
}

// Autocreate implements spec.md §3's Backend selection rule: an
// explicit WLR_BACKENDS override wins outright; absent that, a nested
// display environment (WAYLAND_DISPLAY, then DISPLAY) selects the
// matching nested backend; absent both, it falls back to the
// priority-list-with-fallback shape gpu.SelectBestBackend uses,
// trying "drm" first and "headless" last.
//
// On success the returned Backend has not yet been Started; the
// caller registers it with an EventLoop via Start once ready to begin
// producing outputs.
func Autocreate(cfg Config, log *slog.Logger) (Backend, error) {
	if log == nil {
		log = slog.Default()
	}

	if len(cfg.Backends) > 0 {
		var lastErr error
		for _, name := range cfg.Backends {
			b, err := createBackend(name, cfg, log)
			if err == nil {
				return b, nil
			}
			lastErr = err
		}
		return nil, fmt.Errorf("wlrcore: WLR_BACKENDS override exhausted: %w", lastErr)
	}

	if variant, ok := nestedDisplayEnv(); ok {
		b, err := createBackend(variant, cfg, log)
		if err == nil {
			return b, nil
		}
		log.Warn("wlrcore: nested display backend failed, falling back", "variant", variant, "error", err)
	}

	var lastErr error
	for _, name := range backendPriority {
		if name == "wayland" || name == "x11" {
			// Already tried above under the nested-display-env path;
			// trying again here without a parent display present
			// would only fail.
			continue
		}
		b, err := createBackend(name, cfg, log)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrNoBackendRegistered, lastErr)
}
