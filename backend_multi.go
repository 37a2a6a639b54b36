//go:build linux

package wlrcore

import (
	"log/slog"
	"sync"

	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/wlrutil"
)

func init() {
	RegisterBackend("multi", newMultiBackend)
}

// multiBackend composes several sub-backends into one, re-emitting
// each sub-backend's OnNewOutput/OnDestroy as its own. This is the
// variant a compositor driving several DRM cards (or a DRM card plus a
// headless set of test outputs) selects explicitly via WLR_BACKENDS,
// mirroring wlroots's backend/multi.c aggregation.
type multiBackend struct {
	log *slog.Logger
	subs []Backend

	onNewOutput wlrutil.Signal[*output.Output]
	onDestroy   wlrutil.Signal[struct{}]

	unsubscribe []func()
	mu          sync.Mutex
}

func newMultiBackend(cfg Config, log *slog.Logger) (Backend, error) {
	m := &multiBackend{log: log}

	variants := cfg.Backends
	if len(variants) == 0 {
		variants = []string{"drm", "headless"}
	}
	for _, name := range variants {
		if name == "multi" {
			continue // a multi backend cannot contain itself
		}
		sub, err := createBackend(name, cfg, log)
		if err != nil {
			log.Warn("wlrcore: multi backend: sub-backend unavailable", "variant", name, "error", err)
			continue
		}
		m.addSub(sub)
	}
	if len(m.subs) == 0 {
		return nil, ErrNoBackendRegistered
	}
	return m, nil
}

func (m *multiBackend) addSub(sub Backend) {
	m.mu.Lock()
	m.subs = append(m.subs, sub)
	unsub := sub.OnNewOutput().Subscribe(func(o *output.Output) { m.onNewOutput.Emit(o) })
	m.unsubscribe = append(m.unsubscribe, unsub)
	unsubDestroy := sub.OnDestroy().Subscribe(func(struct{}) { m.onDestroy.Emit(struct{}{}) })
	m.unsubscribe = append(m.unsubscribe, unsubDestroy)
	m.mu.Unlock()
}

func (m *multiBackend) Name() string { return "multi" }

func (m *multiBackend) Start(loop *EventLoop) error {
	m.mu.Lock()
	subs := append([]Backend(nil), m.subs...)
	m.mu.Unlock()

	for _, sub := range subs {
		if err := sub.Start(loop); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiBackend) Destroy() error {
	m.mu.Lock()
	subs := append([]Backend(nil), m.subs...)
	unsubs := append([]func(), m.unsubscribe...)
	m.subs = nil
	m.unsubscribe = nil
	m.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	var firstErr error
	for _, sub := range subs {
		if err := sub.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.onDestroy.Emit(struct{}{})
	return firstErr
}

func (m *multiBackend) Outputs() []*output.Output {
	m.mu.Lock()
	subs := append([]Backend(nil), m.subs...)
	m.mu.Unlock()

	var out []*output.Output
	for _, sub := range subs {
		out = append(out, sub.Outputs()...)
	}
	return out
}

func (m *multiBackend) OnNewOutput() *wlrutil.Signal[*output.Output] { return &m.onNewOutput }
func (m *multiBackend) OnDestroy() *wlrutil.Signal[struct{}]        { return &m.onDestroy }
