//go:build linux

package drm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Backend owns one DRM device node: its enumerated resources, its
// framebuffer import cache, the commit driver chosen for it, and the
// connector→CRTC assignment currently in effect. One Backend exists
// per GPU; a multi-GPU session holds one per card plus a blit path
// for secondary GPUs whose buffers must be copied to the primary
// GPU's scanout memory (spec.md's "Non-goals: n.04" clarifies the
// blit path itself is out of scope here — only the handle is kept).
type Backend struct {
	file *os.File
	log  *slog.Logger
	path string

	Resources *Resources
	FBs       *FBCache

	driver    CommitDriver
	liftoff   *liftoffDriver
	PageFlips *PageFlipTracker

	// prevAssignment is indexed by CRTC, holding the connector index
	// it drove last time AssignCRTCs ran (or unmatched); this is the
	// shape MatchConnectorsToCRTCs both expects and returns.
	prevAssignment []uint32
}

// Open probes path (e.g. "/dev/dri/card0"), takes DRM master, and
// enumerates its resources. It prefers the atomic driver, optionally
// wrapped with libliftoff-style plane composition, and falls back to
// the legacy driver when DRM_CLIENT_CAP_ATOMIC isn't available.
func Open(path string, log *slog.Logger, useLiftoff bool) (*Backend, error) {
	f, err := openCard(path)
	if err != nil {
		return nil, err
	}
	if err := setMaster(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("take DRM master on %s: %w", path, err)
	}

	res, err := loadResources(f, log)
	if err != nil {
		f.Close()
		return nil, err
	}

	addfb2Modifiers := supportsAtomic(f)
	b := &Backend{
		file:      f,
		log:       log,
		path:      path,
		Resources: res,
		FBs:       newFBCache(f, log, addfb2Modifiers),
		PageFlips: NewPageFlipTracker(f, log),
	}

	if addfb2Modifiers {
		atomic := newAtomicDriver(f, log, res)
		if useLiftoff {
			b.liftoff = newLiftoffDriver(f, log, res)
			b.driver = b.liftoff
		} else {
			b.driver = atomic
		}
	} else {
		log.Warn("device has no atomic modesetting support, using legacy driver", "path", path)
		b.driver = newLegacyDriver(f, log, res)
	}

	return b, nil
}

// Driver returns the commit driver this backend is using ("atomic",
// "liftoff", or "legacy").
func (b *Backend) Driver() CommitDriver { return b.driver }

// Close releases DRM master and the underlying device fd. Any
// outstanding framebuffers and leases must be released by the caller
// first; Close does not attempt to reset hardware state.
func (b *Backend) Close() error {
	_ = dropMaster(b.file)
	return b.file.Close()
}

// AssignCRTCs matches connectors that must be enabled to free CRTCs,
// preferring to keep each connector on the CRTC it had last time this
// was called (pageflip-free mode switches where nothing else
// changed). Disabled connectors are omitted from mustEnable.
func (b *Backend) AssignCRTCs(mustEnable []*Connector) (map[uint32]uint32, error) {
	possible := make([]uint32, len(mustEnable))
	for i, c := range mustEnable {
		possible[i] = c.PossibleCrtcs
	}

	assignment := MatchConnectorsToCRTCs(possible, len(b.Resources.CRTCs), b.prevAssignment)

	out := make(map[uint32]uint32, len(mustEnable))
	seen := make([]bool, len(mustEnable))
	for crtcIdx, connIdx := range assignment {
		if connIdx == unmatched {
			continue
		}
		out[mustEnable[connIdx].ID] = b.Resources.CRTCs[crtcIdx].ID
		seen[connIdx] = true
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: connector %s", ErrNoFreeCrtc, mustEnable[i].Name)
		}
	}
	b.prevAssignment = assignment
	return out, nil
}

// CreateLease hands a set of connectors, CRTCs, and planes to a
// separate DRM master (e.g. a VR runtime or a nested compositor under
// test), as raw object IDs, matching wlroots's drm_lease.c surface.
func (b *Backend) CreateLease(objectIDs []uint32) (leaseFD int, lesseeID uint32, err error) {
	return createLease(b.file, objectIDs)
}

// RevokeLease terminates a previously granted lease; the lessee's fd
// starts returning ENXIO on every ioctl after this succeeds.
func (b *Backend) RevokeLease(lesseeID uint32) error {
	return revokeLease(b.file, lesseeID)
}

// Activate re-takes DRM master on this device, called by a Session
// after a VT-switch back into the compositor's session.
func (b *Backend) Activate() error {
	return setMaster(b.file)
}

// Deactivate drops DRM master on this device without closing it,
// called by a Session ahead of a VT switch away so another session
// (e.g. a VT-switched-to login manager) can take master itself.
func (b *Backend) Deactivate() error {
	return dropMaster(b.file)
}

// Rescan reloads connector/CRTC/plane state from the kernel, used
// after a hotplug uevent to pick up newly connected or disconnected
// displays.
func (b *Backend) Rescan() error {
	res, err := loadResources(b.file, b.log)
	if err != nil {
		return err
	}
	b.Resources = res
	return nil
}

// HotplugWatcher listens on the kernel's uevent netlink socket for
// "change" events naming a DRM subsystem device, the same signal
// wlroots's udev backend glue reacts to on a connector hotplug or
// lease-revocation notification.
type HotplugWatcher struct {
	fd int
}

// NewHotplugWatcher opens and binds a netlink kobject-uevent socket.
// Callers select()/epoll() on FD() and call ReadEvent when it becomes
// readable.
func NewHotplugWatcher() (*HotplugWatcher, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_KOBJECT_UEVENT)
	if err != nil {
		return nil, fmt.Errorf("open uevent netlink socket: %w", err)
	}
	addr := &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Groups: 1}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind uevent netlink socket: %w", err)
	}
	return &HotplugWatcher{fd: fd}, nil
}

// FD returns the socket descriptor for registration with an event
// loop's readable-fd watch.
func (w *HotplugWatcher) FD() int { return w.fd }

// ReadEvent reads and parses one uevent datagram, returning true if
// it names the "drm" subsystem (a connector hotplug or lease change),
// false for uevents belonging to unrelated devices that should be
// ignored.
func (w *HotplugWatcher) ReadEvent(ctx context.Context) (isDRM bool, err error) {
	buf := make([]byte, 4096)
	n, _, err := unix.Recvfrom(w.fd, buf, 0)
	if err != nil {
		return false, fmt.Errorf("read uevent: %w", err)
	}
	msg := string(buf[:n])
	for _, field := range strings.Split(msg, "\x00") {
		if field == "SUBSYSTEM=drm" {
			return true, nil
		}
	}
	return false, nil
}

// Close releases the netlink socket.
func (w *HotplugWatcher) Close() error {
	return unix.Close(w.fd)
}
