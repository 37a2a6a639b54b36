//go:build linux

package wlrcore

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// FDCallback is invoked when its registered file descriptor becomes
// ready. mask carries the raw epoll event bits observed (EPOLLIN,
// EPOLLHUP, EPOLLERR); a callback returning a non-nil error has its fd
// removed from the loop by the same Dispatch call that invoked it.
type FDCallback func(mask uint32) error

// EventLoop is the cooperative, single-threaded reactor every file
// descriptor in the process is driven through: DRM device nodes, a
// Session's uevent netlink socket, Wayland client connections,
// Xwayland's X11 connection. It generalizes the teacher's
// internal/platform/wayland.Display pattern of one object draining
// many sockets from "the wl_display connection" to "every fd the
// compositor owns", built on unix.EpollWait directly since the corpus
// carries no off-the-shelf reactor dependency for this (see DESIGN.md).
type EventLoop struct {
	epfd int

	mu        sync.Mutex
	callbacks map[int]FDCallback
	idle      []func()
	closed    bool
}

// NewEventLoop creates an epoll instance ready for AddFD registrations.
func NewEventLoop() (*EventLoop, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("wlrcore: epoll_create1: %w", err)
	}
	return &EventLoop{
		epfd:      epfd,
		callbacks: make(map[int]FDCallback),
	}, nil
}

// AddFD registers fd for the given epoll event mask (typically
// unix.EPOLLIN), invoking cb on each Dispatch iteration where it's
// ready.
func (l *EventLoop) AddFD(fd int, events uint32, cb FDCallback) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("wlrcore: event loop is closed")
	}
	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("wlrcore: epoll_ctl(ADD, %d): %w", fd, err)
	}
	l.callbacks[fd] = cb
	return nil
}

// RemoveFD unregisters fd. Safe to call even if fd was never added.
func (l *EventLoop) RemoveFD(fd int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.callbacks, fd)
	if l.closed {
		return nil
	}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("wlrcore: epoll_ctl(DEL, %d): %w", fd, err)
	}
	return nil
}

// PostIdle queues fn to run on the next Dispatch once the current
// batch of fd readiness callbacks has been drained. This is the
// postIdle hook output.Output.ScheduleFrame expects, so a commit with
// no new buffer still produces a frame event on the next loop
// iteration instead of being lost.
func (l *EventLoop) PostIdle(fn func()) {
	l.mu.Lock()
	l.idle = append(l.idle, fn)
	l.mu.Unlock()
}

// Dispatch waits up to timeoutMS milliseconds (-1 blocks indefinitely,
// 0 polls without blocking) for fd readiness, runs every ready
// callback, then drains the idle queue. A callback returning an error
// deregisters its fd and the error is returned to the caller after the
// rest of the ready set has been serviced.
func (l *EventLoop) Dispatch(timeoutMS int) error {
	var events [32]unix.EpollEvent

	n, err := unix.EpollWait(l.epfd, events[:], timeoutMS)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return fmt.Errorf("wlrcore: epoll_wait: %w", err)
	}

	var firstErr error
	for i := 0; i < n; i++ {
		fd := int(events[i].Fd)
		l.mu.Lock()
		cb := l.callbacks[fd]
		l.mu.Unlock()
		if cb == nil {
			continue
		}
		if err := cb(events[i].Events); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			_ = l.RemoveFD(fd)
		}
	}

	l.mu.Lock()
	idle := l.idle
	l.idle = nil
	l.mu.Unlock()
	for _, fn := range idle {
		fn()
	}

	return firstErr
}

// Run dispatches in a loop until stop is closed or Dispatch returns an
// error.
func (l *EventLoop) Run(stop <-chan struct{}) error {
	for {
		select {
		case <-stop:
			return nil
		default:
		}
		if err := l.Dispatch(1000); err != nil {
			return err
		}
	}
}

// Close releases the epoll instance. Registered fds are not closed;
// callers own their own lifetime.
func (l *EventLoop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()
	return unix.Close(l.epfd)
}
