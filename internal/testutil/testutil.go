// Package testutil provides an in-memory file-browser host for tabmerge tests.
//
// Host implements every capability the core consumes (surface, hierarchy,
// messaging, window closing and shell launching) so merge and open flows can
// be exercised deterministically without a desktop session.
package testutil

import (
	"errors"
	"sync"
	"time"

	"github.com/Iron-Ham/tabmerge/internal/explorer"
)

// ErrNoIdentity is returned by tabs created without an identity.
var ErrNoIdentity = errors.New("identity unavailable")

// Tab is a fake tab. Exported fields may be adjusted between polls.
type Tab struct {
	host *Host

	// Key is the tab's identity; zero makes BaseInterface fail.
	Key         uintptr
	Hwnd        explorer.WindowID
	Location    string
	Path        string
	LocationErr error
	PathErr     error
	NavigateErr error

	Navigations []string
	Released    int
}

// Window implements explorer.Item.
func (t *Tab) Window() (explorer.WindowID, error) {
	return t.Hwnd, nil
}

// LocationURL implements explorer.Item.
func (t *Tab) LocationURL() (string, error) {
	return t.Location, t.LocationErr
}

// FolderPath implements explorer.Item.
func (t *Tab) FolderPath() (string, error) {
	return t.Path, t.PathErr
}

// Navigate implements explorer.Content and records the destination.
func (t *Tab) Navigate(url string) error {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()

	if t.NavigateErr != nil {
		return t.NavigateErr
	}
	t.Navigations = append(t.Navigations, url)
	t.Location = url
	return nil
}

// BaseInterface implements explorer.BaseInterfacer.
func (t *Tab) BaseInterface() (uintptr, error) {
	if t.Key == 0 {
		return 0, ErrNoIdentity
	}
	return t.Key, nil
}

// Release implements explorer.Releaser.
func (t *Tab) Release() {
	t.host.mu.Lock()
	t.Released++
	t.host.mu.Unlock()
}

// Command is one recorded new-tab command.
type Command struct {
	Control explorer.WindowID
	Code    uint16
}

// TabHostClassFor returns the control id used for window w's tab host.
func TabHostClassFor(w explorer.WindowID) explorer.WindowID {
	return w + 0x10
}

type pendingTab struct {
	window   explorer.WindowID
	identity bool
	polls    int
}

// Host is an in-memory file-browser host.
type Host struct {
	mu sync.Mutex

	tabs    []*Tab
	nextKey uintptr
	pending []pendingTab
	closed  map[explorer.WindowID]bool
	noHost  map[explorer.WindowID]bool

	// Unavailable makes Windows fail as if the automation surface were gone.
	Unavailable bool
	// ItemErrors makes Item(i) fail for the given indexes.
	ItemErrors map[int]error

	// OnCommand runs for each command after it is recorded, with the host
	// lock held; it must not call other Host methods.
	OnCommand func(h *Host, window explorer.WindowID)

	// NewTabNavigateErr is given to tabs created by commands.
	NewTabNavigateErr error

	// LaunchErr is returned by OpenPath when set.
	LaunchErr error

	Commands []Command
	Closed   []explorer.WindowID
	Launched []string
	Slept    []time.Duration
	Polls    int
}

// NewHost creates an empty Host.
func NewHost() *Host {
	return &Host{
		nextKey: 0x1000,
		closed:  make(map[explorer.WindowID]bool),
		noHost:  make(map[explorer.WindowID]bool),
	}
}

// AddTab adds a tab with an identity to window w.
func (h *Host) AddTab(w explorer.WindowID, location string) *Tab {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addTabLocked(w, location, true)
}

// AddAnonymousTab adds a tab whose identity cannot be resolved.
func (h *Host) AddAnonymousTab(w explorer.WindowID, location string) *Tab {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addTabLocked(w, location, false)
}

func (h *Host) addTabLocked(w explorer.WindowID, location string, identity bool) *Tab {
	t := &Tab{host: h, Hwnd: w, Location: location}
	if identity {
		h.nextKey += 0x10
		t.Key = h.nextKey
	}
	h.tabs = append(h.tabs, t)
	return t
}

// RemoveTabHost makes window w report no tab-host control.
func (h *Host) RemoveTabHost(w explorer.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.noHost[w] = true
}

// CreateTabOnCommand makes every command open a blank tab in the commanded
// window after the given number of polls. identity controls whether the
// new tab's identity resolves.
func (h *Host) CreateTabOnCommand(afterPolls int, identity bool) {
	h.OnCommand = func(h *Host, window explorer.WindowID) {
		h.pending = append(h.pending, pendingTab{window: window, identity: identity, polls: afterPolls})
	}
}

// TabsIn returns the tabs currently owned by w.
func (h *Host) TabsIn(w explorer.WindowID) []*Tab {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []*Tab
	for _, t := range h.tabs {
		if t.Hwnd == w {
			out = append(out, t)
		}
	}
	return out
}

// Windows implements explorer.Surface. Each call counts as one poll and
// materializes pending tabs whose delay has elapsed.
func (h *Host) Windows() (explorer.Collection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Unavailable {
		return nil, errors.New("ShellWindows unavailable")
	}

	h.Polls++
	var still []pendingTab
	for _, p := range h.pending {
		if p.polls <= 0 {
			t := h.addTabLocked(p.window, "", p.identity)
			t.NavigateErr = h.NewTabNavigateErr
			continue
		}
		p.polls--
		still = append(still, p)
	}
	h.pending = still

	items := make([]*Tab, 0, len(h.tabs))
	for _, t := range h.tabs {
		if !h.closed[t.Hwnd] {
			items = append(items, t)
		}
	}
	return &collection{items: items, errs: h.ItemErrors}, nil
}

type collection struct {
	items []*Tab
	errs  map[int]error
}

func (c *collection) Count() (int, error) {
	return len(c.items), nil
}

func (c *collection) Item(i int) (explorer.Item, error) {
	if err := c.errs[i]; err != nil {
		return nil, err
	}
	return c.items[i], nil
}

func (c *collection) Release() {}

// Children implements explorer.Hierarchy: each window has a frame child
// which in turn holds the tab host.
func (h *Host) Children(id explorer.WindowID) ([]explorer.WindowID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.knownLocked(id) {
		if h.noHost[id] {
			return []explorer.WindowID{id + 1}, nil
		}
		return []explorer.WindowID{id + 1, id + 2}, nil
	}
	if h.knownLocked(id - 2) {
		return []explorer.WindowID{TabHostClassFor(id - 2)}, nil
	}
	return nil, nil
}

// ClassName implements explorer.Hierarchy.
func (h *Host) ClassName(id explorer.WindowID) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case h.knownLocked(id):
		return "CabinetWClass", nil
	case h.knownLocked(id - 1):
		return "WorkerW", nil
	case h.knownLocked(id - 2):
		return "ShellTabWindowContainer", nil
	case h.knownLocked(id - 0x10):
		return explorer.TabHostClass, nil
	default:
		return "", errors.New("invalid window handle")
	}
}

func (h *Host) knownLocked(w explorer.WindowID) bool {
	if h.closed[w] {
		return false
	}
	for _, t := range h.tabs {
		if t.Hwnd == w {
			return true
		}
	}
	return false
}

// SendCommand records a new-tab command sent to a tab-host control.
func (h *Host) SendCommand(control explorer.WindowID, code uint16) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Commands = append(h.Commands, Command{Control: control, Code: code})
	if h.OnCommand != nil {
		h.OnCommand(h, control-0x10)
	}
	return nil
}

// IsWindow reports whether w still has tabs and was not closed.
func (h *Host) IsWindow(w explorer.WindowID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.knownLocked(w)
}

// CloseWindow records a close request and hides the window's tabs.
func (h *Host) CloseWindow(w explorer.WindowID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Closed = append(h.Closed, w)
	h.closed[w] = true
	return nil
}

// OpenPath records an OS-level launch.
func (h *Host) OpenPath(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Launched = append(h.Launched, path)
	return h.LaunchErr
}

// Sleep records a watcher pause without blocking.
func (h *Host) Sleep(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Slept = append(h.Slept, d)
}

// TotalSlept sums every recorded pause.
func (h *Host) TotalSlept() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()

	var total time.Duration
	for _, d := range h.Slept {
		total += d
	}
	return total
}
