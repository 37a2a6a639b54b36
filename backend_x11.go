//go:build linux

package wlrcore

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/internal/platform/x11"
	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/wlrutil"
)

func init() {
	RegisterBackend("x11", newX11Backend)
}

const (
	x11DefaultOutputWidth  = 1920
	x11DefaultOutputHeight = 1080
)

// x11Backend nests the compositor inside a parent X11 server:
// cfg.X11Outputs (or a single default) each become one top-level
// window presented as an Output, wlroots's backend/x11 role.
// Grounded on internal/platform/x11's client protocol implementation
// (Connection/CreateWindow/atoms), previously unwired on Linux.
type x11Backend struct {
	log  *slog.Logger
	conn *x11.Connection

	mu      sync.Mutex
	windows []*x11OutputWindow

	onNewOutput wlrutil.Signal[*output.Output]
	onDestroy   wlrutil.Signal[struct{}]
}

type x11OutputWindow struct {
	window x11.ResourceID
	out    *output.Output
}

func newX11Backend(cfg Config, log *slog.Logger) (Backend, error) {
	conn, err := x11.Connect()
	if err != nil {
		return nil, fmt.Errorf("wlrcore: x11 backend: %w", err)
	}
	atoms, err := conn.InternStandardAtoms()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("wlrcore: x11 backend: intern atoms: %w", err)
	}

	names := cfg.X11Outputs
	if len(names) == 0 {
		names = []string{"X11-1"}
	}

	b := &x11Backend{log: log, conn: conn}
	for i, name := range names {
		win, err := conn.CreateWindow(x11.WindowConfig{
			Title:  name,
			Width:  x11DefaultOutputWidth,
			Height: x11DefaultOutputHeight,
		})
		if err != nil {
			b.Destroy()
			return nil, fmt.Errorf("wlrcore: x11 backend: create_window: %w", err)
		}
		_ = conn.SetWindowTitle(win, name, atoms)
		_ = conn.SetWMProtocols(win, atoms)
		if err := conn.MapWindow(win); err != nil {
			b.Destroy()
			return nil, fmt.Errorf("wlrcore: x11 backend: map_window: %w", err)
		}

		connector := &drm.Connector{
			ID:     uint32(i + 1),
			Name:   name,
			Status: drm.ConnectorConnected,
			Modes: []drm.Mode{{
				Width:     x11DefaultOutputWidth,
				Height:    x11DefaultOutputHeight,
				Refresh:   60000,
				Preferred: true,
			}},
		}
		out := output.New(name, connector, uint32(i), headlessDriver{}, output.Capabilities{}, log)

		b.windows = append(b.windows, &x11OutputWindow{window: win, out: out})
	}

	if err := conn.Flush(); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("wlrcore: x11 backend: flush: %w", err)
	}

	return b, nil
}

func (b *x11Backend) Name() string { return "x11" }

func (b *x11Backend) Start(loop *EventLoop) error {
	if err := loop.AddFD(b.conn.Fd(), unix.EPOLLIN, b.onReadable); err != nil {
		return err
	}
	b.mu.Lock()
	windows := append([]*x11OutputWindow(nil), b.windows...)
	b.mu.Unlock()
	for _, w := range windows {
		b.onNewOutput.Emit(w.out)
	}
	return nil
}

func (b *x11Backend) onReadable(mask uint32) error {
	// No X11 events are read or dispatched here: the callback returns
	// without draining the connection, and nothing in this backend
	// parses the parent server's input or configure events.
	return nil
}

func (b *x11Backend) Destroy() error {
	b.mu.Lock()
	windows := append([]*x11OutputWindow(nil), b.windows...)
	b.windows = nil
	b.mu.Unlock()

	for _, w := range windows {
		_ = b.conn.DestroyWindow(w.window)
	}
	err := b.conn.Close()
	b.onDestroy.Emit(struct{}{})
	return err
}

func (b *x11Backend) Outputs() []*output.Output {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*output.Output, len(b.windows))
	for i, w := range b.windows {
		out[i] = w.out
	}
	return out
}

func (b *x11Backend) OnNewOutput() *wlrutil.Signal[*output.Output] { return &b.onNewOutput }
func (b *x11Backend) OnDestroy() *wlrutil.Signal[struct{}]        { return &b.onDestroy }
