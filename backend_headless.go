//go:build linux

package wlrcore

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/wlrutil"
)

func init() {
	RegisterBackend("headless", newHeadlessBackend)
}

// headlessDriver implements drm.CommitDriver without touching any
// device: every TestOrCommit succeeds immediately. Used by the
// headless backend (virtual outputs, no hardware) and by the nested
// Wayland/X11 backends until their presentation path grows its own
// commit model (see DESIGN.md).
type headlessDriver struct{}

func (headlessDriver) TestOrCommit(state *drm.DeviceState, flags drm.CommitFlags) error {
	return nil
}

func (headlessDriver) Name() string { return "headless" }

// headlessBackend creates cfg.HeadlessOutputs virtual outputs with no
// backing hardware, the same role wlroots's headless backend fills for
// testing and for compositors with no display attached yet. Grounded
// on the teacher's gpu/backend/native stub pattern (a registered
// backend that satisfies the interface with software-only behavior).
type headlessBackend struct {
	log *slog.Logger

	mu      sync.Mutex
	outputs []*output.Output

	onNewOutput wlrutil.Signal[*output.Output]
	onDestroy   wlrutil.Signal[struct{}]
}

func newHeadlessBackend(cfg Config, log *slog.Logger) (Backend, error) {
	n := cfg.HeadlessOutputs
	if n <= 0 {
		n = 1
	}
	return &headlessBackend{log: log, outputs: make([]*output.Output, 0, n)}, nil
}

func (b *headlessBackend) Name() string { return "headless" }

func (b *headlessBackend) Start(loop *EventLoop) error {
	n := cap(b.outputs)
	for i := 0; i < n; i++ {
		conn := &drm.Connector{
			ID:     uint32(i + 1),
			Name:   fmt.Sprintf("HEADLESS-%d", i+1),
			Status: drm.ConnectorConnected,
			Modes: []drm.Mode{{
				Width:     1920,
				Height:    1080,
				Refresh:   60000,
				Preferred: true,
			}},
		}
		out := output.New(conn.Name, conn, uint32(i), headlessDriver{}, output.Capabilities{}, b.log)
		b.mu.Lock()
		b.outputs = append(b.outputs, out)
		b.mu.Unlock()
		b.onNewOutput.Emit(out)
	}
	return nil
}

func (b *headlessBackend) Destroy() error {
	b.onDestroy.Emit(struct{}{})
	return nil
}

func (b *headlessBackend) Outputs() []*output.Output {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*output.Output, len(b.outputs))
	copy(out, b.outputs)
	return out
}

func (b *headlessBackend) OnNewOutput() *wlrutil.Signal[*output.Output] { return &b.onNewOutput }
func (b *headlessBackend) OnDestroy() *wlrutil.Signal[struct{}]        { return &b.onDestroy }
