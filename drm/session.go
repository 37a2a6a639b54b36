//go:build linux

package drm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wlrcore/wlrcore/wlrutil"
)

// sessionActivationTimeout is spec.md §5's "the initial
// session-activation wait (bounded to 10 s)" — the one mandatory
// blocking wait the single-threaded event loop is allowed.
const sessionActivationTimeout = 10 * time.Second

// Session is the process-wide Session/Device entity spec.md's "Core
// entities" section describes: the VT-switch-aware handle every DRM
// Backend in the process is opened under. There is at most one
// Session; spec.md §9's "treat it as an explicit singleton passed by
// handle" is honoured by never storing one in a package-level
// variable — the caller (the root backend facade) creates exactly one
// and threads it through.
type Session struct {
	log *slog.Logger

	mu      sync.Mutex
	active  bool
	activeC chan struct{}
	devices []*Backend

	watcher *HotplugWatcher

	OnActivate   wlrutil.Signal[struct{}]
	OnDeactivate wlrutil.Signal[struct{}]
	OnDestroy    wlrutil.Signal[struct{}]
}

// OpenSession opens the uevent hotplug watcher and returns a Session
// assumed active (foreground VT) until told otherwise via SetActive.
func OpenSession(log *slog.Logger) (*Session, error) {
	watcher, err := NewHotplugWatcher()
	if err != nil {
		return nil, fmt.Errorf("drm: open session: %w", err)
	}
	return &Session{
		log:     log,
		active:  true,
		activeC: make(chan struct{}),
		watcher: watcher,
	}, nil
}

// AddDevice opens path as a DRM backend under this session and tracks
// it for Close/Activate/Deactivate propagation.
func (s *Session) AddDevice(path string, useLiftoff bool) (*Backend, error) {
	b, err := Open(path, s.log, useLiftoff)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.devices = append(s.devices, b)
	s.mu.Unlock()
	return b, nil
}

// Devices returns a snapshot of every device opened under this session.
func (s *Session) Devices() []*Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Backend, len(s.devices))
	copy(out, s.devices)
	return out
}

// Active reports whether the session currently holds the foreground
// VT (and therefore DRM master on its devices).
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// GuardCommit implements spec.md §7's SessionInactive error kind: a
// caller about to commit should check this first and short-circuit
// to false/error without touching the kernel while the session is
// inactive (VT switched away).
func (s *Session) GuardCommit() error {
	if !s.Active() {
		return ErrSessionInactive
	}
	return nil
}

// SetActive transitions the session's activity state, re-taking or
// dropping DRM master on every tracked device and emitting
// OnActivate/OnDeactivate. The event loop calls this in response to a
// VT-switch signal (SIGUSR1/SIGUSR2 under the kernel's VT_PROCESS
// switching convention); the signal plumbing itself lives in the root
// facade's event loop, not here.
func (s *Session) SetActive(active bool) {
	s.mu.Lock()
	if s.active == active {
		s.mu.Unlock()
		return
	}
	s.active = active
	devices := append([]*Backend(nil), s.devices...)
	var woke chan struct{}
	if active {
		woke = s.activeC
		s.activeC = make(chan struct{})
	}
	s.mu.Unlock()

	for _, d := range devices {
		var err error
		if active {
			err = d.Activate()
		} else {
			err = d.Deactivate()
		}
		if err != nil && s.log != nil {
			s.log.Warn("drm: session device master transition failed", "active", active, "error", err)
		}
	}

	if active {
		close(woke)
		s.OnActivate.Emit(struct{}{})
	} else {
		s.OnDeactivate.Emit(struct{}{})
	}
}

// WaitActive blocks until the session becomes active or
// sessionActivationTimeout elapses, whichever is first — the one
// mandatory blocking wait spec.md §5 permits. Returns immediately if
// the session is already active.
func (s *Session) WaitActive(ctx context.Context) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil
	}
	waitC := s.activeC
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, sessionActivationTimeout)
	defer cancel()

	select {
	case <-waitC:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrSessionActivationTimeout, ctx.Err())
	}
}

// HotplugFD returns the session's uevent netlink socket descriptor for
// registration with an event loop's readable-fd watch.
func (s *Session) HotplugFD() int {
	return s.watcher.FD()
}

// PollHotplug reads and classifies one pending uevent, rescanning
// every tracked device's resources when it names the DRM subsystem.
func (s *Session) PollHotplug(ctx context.Context) (isDRM bool, err error) {
	isDRM, err = s.watcher.ReadEvent(ctx)
	if err != nil || !isDRM {
		return isDRM, err
	}
	for _, d := range s.Devices() {
		if err := d.Rescan(); err != nil && s.log != nil {
			s.log.Warn("drm: rescan after hotplug failed", "error", err)
		}
	}
	return true, nil
}

// Close releases every tracked device and the hotplug watcher, then
// emits OnDestroy.
func (s *Session) Close() error {
	devices := s.Devices()

	var firstErr error
	for _, d := range devices {
		if err := d.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.watcher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	s.OnDestroy.Emit(struct{}{})
	return firstErr
}
