//go:build linux

package wlrcore

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/wlrcore/wlrcore/drm"
	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/wlrutil"
)

func init() {
	RegisterBackend("drm", newDRMBackend)
}

// drmBackend drives real KMS hardware through a drm.Session, the
// spec.md §3 "session+DRM+libinput" default path. One output.Output is
// created per connected connector once a CRTC can be matched to it.
type drmBackend struct {
	log     *slog.Logger
	session *drm.Session

	mu      sync.Mutex
	outputs map[string]*output.Output

	onNewOutput wlrutil.Signal[*output.Output]
	onDestroy   wlrutil.Signal[struct{}]
}

func newDRMBackend(cfg Config, log *slog.Logger) (Backend, error) {
	paths := cfg.DRMDevices
	if len(paths) == 0 {
		var err error
		paths, err = discoverDRMDevices()
		if err != nil {
			return nil, err
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("wlrcore: no DRM devices found")
	}

	session, err := drm.OpenSession(log)
	if err != nil {
		return nil, fmt.Errorf("wlrcore: drm backend: %w", err)
	}

	b := &drmBackend{
		log:     log,
		session: session,
		outputs: make(map[string]*output.Output),
	}

	for _, path := range paths {
		useLiftoff := cfg.DRMForceLibliftoff
		if _, err := session.AddDevice(path, useLiftoff); err != nil {
			log.Warn("wlrcore: failed to open DRM device", "path", path, "error", err)
			continue
		}
	}
	if len(session.Devices()) == 0 {
		_ = session.Close()
		return nil, fmt.Errorf("wlrcore: no DRM devices could be opened")
	}

	return b, nil
}

func discoverDRMDevices() ([]string, error) {
	matches, err := filepath.Glob("/dev/dri/card*")
	if err != nil {
		return nil, fmt.Errorf("wlrcore: enumerate /dev/dri: %w", err)
	}
	return matches, nil
}

func (b *drmBackend) Name() string { return "drm" }

// Start registers every DRM device's hotplug-relevant state and
// creates an Output for each connected connector that a CRTC can be
// matched to, mirroring AssignCRTCs' pageflip-free preference for
// keeping a connector on the CRTC it already has.
func (b *drmBackend) Start(loop *EventLoop) error {
	if err := loop.AddFD(b.session.HotplugFD(), unix.EPOLLIN, b.onHotplug(loop)); err != nil {
		return err
	}

	for _, dev := range b.session.Devices() {
		connected := make([]*drm.Connector, 0, len(dev.Resources.Connectors))
		for _, c := range dev.Resources.Connectors {
			if c.Status == drm.ConnectorConnected {
				connected = append(connected, c)
			}
		}
		if len(connected) == 0 {
			continue
		}

		assignment, err := dev.AssignCRTCs(connected)
		if err != nil {
			b.log.Warn("wlrcore: drm backend: CRTC assignment failed", "error", err)
			continue
		}

		for _, conn := range connected {
			crtcID, ok := assignment[conn.ID]
			if !ok {
				continue
			}
			out := output.New(conn.Name, conn, crtcID, dev.Driver(), output.Capabilities{}, b.log)
			b.mu.Lock()
			b.outputs[conn.Name] = out
			b.mu.Unlock()
			b.onNewOutput.Emit(out)
		}
	}
	return nil
}

// onHotplug returns the hotplug-fd callback, which rescans the
// session's device resources through PollHotplug. Outputs are neither
// created for newly connected connectors nor destroyed for
// disconnected ones.
func (b *drmBackend) onHotplug(loop *EventLoop) FDCallback {
	return func(mask uint32) error {
		_, err := b.session.PollHotplug(context.Background())
		return err
	}
}

func (b *drmBackend) Destroy() error {
	err := b.session.Close()
	b.onDestroy.Emit(struct{}{})
	return err
}

func (b *drmBackend) Outputs() []*output.Output {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*output.Output, 0, len(b.outputs))
	for _, o := range b.outputs {
		out = append(out, o)
	}
	return out
}

func (b *drmBackend) OnNewOutput() *wlrutil.Signal[*output.Output] { return &b.onNewOutput }
func (b *drmBackend) OnDestroy() *wlrutil.Signal[struct{}]        { return &b.onDestroy }
