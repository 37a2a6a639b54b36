//go:build linux

package xwm

import (
	"log/slog"
	"sync"

	"github.com/wlrcore/wlrcore/scene"
)

// WindowID is an X11 window ID (XID).
type WindowID uint32

// PropertySetter writes a window property as a list of 32-bit values,
// the one X11 request this package needs (CHANGE_PROPERTY with
// format 32). An Xwayland backend's connection implements this; the
// request's wire encoding is out of this package's scope.
type PropertySetter interface {
	SetWindowPropertyAtoms(win WindowID, property Atom, values []WindowID) error
}

// ManagedWindow pairs an X11 window with the scene node representing
// it, the association xwm.c keeps per window in the teacher's
// generalized domain.
type ManagedWindow struct {
	ID               WindowID
	Node             *scene.Node
	OverrideRedirect bool
}

// Manager maintains the mapping between X11 windows and scene nodes,
// the window manager's client list and stacking list, and runs
// restack arbitration on scene updates (stack.go). It is the Go
// rendering of xwm.c's client-list bookkeeping plus struct wlr_xwm's
// window table, narrowed to the restack-arbitration subset spec.md
// §1 scopes this module to.
type Manager struct {
	log   *slog.Logger
	atoms *AtomCache
	conn  PropertySetter
	root  WindowID

	mu sync.Mutex
	// windows indexes every associated window by ID.
	windows map[WindowID]*ManagedWindow
	// clientList is _NET_CLIENT_LIST: initial-mapping order.
	clientList []WindowID
	// stackOrder is _NET_CLIENT_LIST_STACKING: bottom-to-top Z-order,
	// kept in lock-step with each window's scene node position.
	stackOrder []WindowID
}

// NewManager creates a Manager that interns atoms via atoms and syncs
// client-list properties onto root through conn.
func NewManager(atoms *AtomCache, conn PropertySetter, root WindowID, log *slog.Logger) *Manager {
	return &Manager{
		log:     log,
		atoms:   atoms,
		conn:    conn,
		root:    root,
		windows: make(map[WindowID]*ManagedWindow),
	}
}

// Associate registers a newly mapped X11 window, appending it to both
// the client list and the top of the stacking order, and syncs both
// properties.
func (m *Manager) Associate(id WindowID, node *scene.Node, overrideRedirect bool) *ManagedWindow {
	m.mu.Lock()
	w := &ManagedWindow{ID: id, Node: node, OverrideRedirect: overrideRedirect}
	m.windows[id] = w
	m.clientList = append(m.clientList, id)
	m.stackOrder = append(m.stackOrder, id)
	m.mu.Unlock()

	m.syncClientList()
	m.syncStackingOrder()
	return w
}

// Dissociate unregisters a window. Per spec.md §4.8, an
// override-redirect window is restacked to the bottom of its scene
// siblings at dissociation before it's dropped from tracking.
func (m *Manager) Dissociate(id WindowID) {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.windows, id)
	m.clientList = removeWindowID(m.clientList, id)
	m.stackOrder = removeWindowID(m.stackOrder, id)
	m.mu.Unlock()

	if ok && w.OverrideRedirect && w.Node != nil {
		w.Node.LowerToBottom()
	}

	m.syncClientList()
	m.syncStackingOrder()
}

// Windows returns a snapshot of every currently associated window.
func (m *Manager) Windows() []*ManagedWindow {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ManagedWindow, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, w)
	}
	return out
}

// syncClientList writes the current mapping order to _NET_CLIENT_LIST.
func (m *Manager) syncClientList() {
	atom, err := m.atoms.Get(AtomNameNetClientList)
	if err != nil {
		if m.log != nil {
			m.log.Warn("xwm: failed to intern _NET_CLIENT_LIST", "error", err)
		}
		return
	}
	m.mu.Lock()
	ids := append([]WindowID(nil), m.clientList...)
	m.mu.Unlock()
	if err := m.conn.SetWindowPropertyAtoms(m.root, atom, ids); err != nil && m.log != nil {
		m.log.Warn("xwm: failed to set _NET_CLIENT_LIST", "error", err)
	}
}

// syncStackingOrder writes the current Z-order to
// _NET_CLIENT_LIST_STACKING.
func (m *Manager) syncStackingOrder() {
	atom, err := m.atoms.Get(AtomNameNetClientListStacking)
	if err != nil {
		if m.log != nil {
			m.log.Warn("xwm: failed to intern _NET_CLIENT_LIST_STACKING", "error", err)
		}
		return
	}
	m.mu.Lock()
	ids := append([]WindowID(nil), m.stackOrder...)
	m.mu.Unlock()
	if err := m.conn.SetWindowPropertyAtoms(m.root, atom, ids); err != nil && m.log != nil {
		m.log.Warn("xwm: failed to set _NET_CLIENT_LIST_STACKING", "error", err)
	}
}

func removeWindowID(ids []WindowID, target WindowID) []WindowID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
