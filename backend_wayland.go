//go:build linux

package wlrcore

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/internal/platform/wayland"
	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/wlrutil"
)

func init() {
	RegisterBackend("wayland", newWaylandBackend)
}

const waylandWaitForGlobalsAttempts = 10

// waylandBackend nests the compositor inside a parent Wayland
// session: cfg.WaylandOutputs (or a single default) each become one
// xdg_toplevel window presented as an Output, the same role wlroots's
// backend/wayland fills for running a compositor-under-test inside a
// desktop session. Grounded on internal/platform/wayland's client
// protocol implementation (Display/Registry/XdgWmBase), previously
// unwired on Linux (platform_linux.go was a stub).
type waylandBackend struct {
	log     *slog.Logger
	display *wayland.Display
	wmBase  *wayland.XdgWmBase

	mu      sync.Mutex
	windows []*waylandOutputWindow

	onNewOutput wlrutil.Signal[*output.Output]
	onDestroy   wlrutil.Signal[struct{}]
}

type waylandOutputWindow struct {
	surface  *wayland.WlSurface
	xdgSurf  *wayland.XdgSurface
	toplevel *wayland.XdgToplevel
	out      *output.Output
}

func newWaylandBackend(cfg Config, log *slog.Logger) (Backend, error) {
	display, err := wayland.Connect()
	if err != nil {
		return nil, fmt.Errorf("wlrcore: wayland backend: %w", err)
	}

	registry, err := display.GetRegistry()
	if err != nil {
		display.Close()
		return nil, fmt.Errorf("wlrcore: wayland backend: get_registry: %w", err)
	}
	if err := registry.WaitForGlobals(wayland.RequiredGlobals(), waylandWaitForGlobalsAttempts); err != nil {
		display.Close()
		return nil, fmt.Errorf("wlrcore: wayland backend: %w", err)
	}

	compositorID, err := registry.BindCompositor(1)
	if err != nil {
		display.Close()
		return nil, fmt.Errorf("wlrcore: wayland backend: bind compositor: %w", err)
	}
	wmBaseID, err := registry.BindXdgWmBase(1)
	if err != nil {
		display.Close()
		return nil, fmt.Errorf("wlrcore: wayland backend: bind xdg_wm_base: %w", err)
	}

	compositor := wayland.NewWlCompositor(display, compositorID)
	wmBase := wayland.NewXdgWmBase(display, wmBaseID)

	names := cfg.WaylandOutputs
	if len(names) == 0 {
		names = []string{"WL-1"}
	}

	b := &waylandBackend{log: log, display: display, wmBase: wmBase}
	for i, name := range names {
		surface, err := compositor.CreateSurface()
		if err != nil {
			b.Destroy()
			return nil, fmt.Errorf("wlrcore: wayland backend: create_surface: %w", err)
		}
		xdgSurf, err := wmBase.GetXdgSurface(surface)
		if err != nil {
			b.Destroy()
			return nil, fmt.Errorf("wlrcore: wayland backend: get_xdg_surface: %w", err)
		}
		toplevel, err := xdgSurf.GetToplevel()
		if err != nil {
			b.Destroy()
			return nil, fmt.Errorf("wlrcore: wayland backend: get_toplevel: %w", err)
		}
		_ = toplevel.SetTitle(name)
		_ = surface.Commit()

		conn := &drm.Connector{
			ID:     uint32(i + 1),
			Name:   name,
			Status: drm.ConnectorConnected,
			Modes: []drm.Mode{{
				Width:     1920,
				Height:    1080,
				Refresh:   60000,
				Preferred: true,
			}},
		}
		out := output.New(name, conn, uint32(i), headlessDriver{}, output.Capabilities{}, log)

		b.windows = append(b.windows, &waylandOutputWindow{
			surface:  surface,
			xdgSurf:  xdgSurf,
			toplevel: toplevel,
			out:      out,
		})
	}

	if err := display.Roundtrip(); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("wlrcore: wayland backend: initial roundtrip: %w", err)
	}

	return b, nil
}

func (b *waylandBackend) Name() string { return "wayland" }

func (b *waylandBackend) Start(loop *EventLoop) error {
	if err := loop.AddFD(b.display.Fd(), unix.EPOLLIN, b.onReadable); err != nil {
		return err
	}
	b.mu.Lock()
	windows := append([]*waylandOutputWindow(nil), b.windows...)
	b.mu.Unlock()
	for _, w := range windows {
		b.onNewOutput.Emit(w.out)
	}
	return nil
}

func (b *waylandBackend) onReadable(mask uint32) error {
	return b.display.Dispatch()
}

func (b *waylandBackend) Destroy() error {
	b.mu.Lock()
	windows := append([]*waylandOutputWindow(nil), b.windows...)
	b.windows = nil
	b.mu.Unlock()

	for _, w := range windows {
		_ = w.toplevel.Destroy()
		_ = w.xdgSurf.Destroy()
		_ = w.surface.Destroy()
	}
	err := b.display.Close()
	b.onDestroy.Emit(struct{}{})
	return err
}

func (b *waylandBackend) Outputs() []*output.Output {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*output.Output, len(b.windows))
	for i, w := range b.windows {
		out[i] = w.out
	}
	return out
}

func (b *waylandBackend) OnNewOutput() *wlrutil.Signal[*output.Output] { return &b.onNewOutput }
func (b *waylandBackend) OnDestroy() *wlrutil.Signal[struct{}]        { return &b.onDestroy }
