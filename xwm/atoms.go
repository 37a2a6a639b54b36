//go:build linux

// Package xwm implements the Xwayland restack-arbitration subset
// spec.md §4.8 describes: keeping X11 windows' stacking order in sync
// with scene Z-order and maintaining the ICCCM/EWMH client-list
// properties a window manager advertises. The X11 wire protocol
// itself (connection setup, property encoding, selection ownership)
// is out of scope per spec.md §1's "X11 WM glue beyond restack
// arbitration" non-goal; this package only consumes a small
// AtomSource/PropertySetter seam an Xwayland backend would implement.
package xwm

import (
	"fmt"
	"sync"
)

// Atom is an X11 atom identifier.
type Atom uint32

// AtomNone is the X11 "no such atom" sentinel.
const AtomNone Atom = 0

// Atom names this package interns, grounded on spec.md §4.8's
// "_NET_CLIENT_LIST and _NET_CLIENT_LIST_STACKING" plus the ICCCM
// WM_STATE property every managed window carries.
const (
	AtomNameNetClientList         = "_NET_CLIENT_LIST"
	AtomNameNetClientListStacking = "_NET_CLIENT_LIST_STACKING"
	AtomNameWMState               = "WM_STATE"
)

// AtomSource interns an atom name into its X11 ID. An Xwayland
// backend's real connection supplies this; this package never speaks
// the X11 wire protocol itself.
type AtomSource interface {
	InternAtom(name string) (Atom, error)
}

// AtomCache interns and caches atom IDs by name, the same
// check-cache-then-request-and-fill shape as the teacher's
// internal/platform/x11.Connection.InternAtom, generalized away from
// that package's own wire-protocol-bound Connection type.
type AtomCache struct {
	source AtomSource

	mu    sync.RWMutex
	atoms map[string]Atom
}

// NewAtomCache creates an empty cache backed by source.
func NewAtomCache(source AtomSource) *AtomCache {
	return &AtomCache{source: source, atoms: make(map[string]Atom)}
}

// Get returns name's interned atom, querying source and caching the
// result on a miss.
func (c *AtomCache) Get(name string) (Atom, error) {
	c.mu.RLock()
	atom, ok := c.atoms[name]
	c.mu.RUnlock()
	if ok {
		return atom, nil
	}

	atom, err := c.source.InternAtom(name)
	if err != nil {
		return AtomNone, fmt.Errorf("xwm: intern atom %q: %w", name, err)
	}

	c.mu.Lock()
	c.atoms[name] = atom
	c.mu.Unlock()
	return atom, nil
}
