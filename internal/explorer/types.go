// Package explorer discovers file-browser windows and their tabs and
// reconciles them across snapshots.
//
// The host is never held between calls: every Discover produces a fresh,
// immutable Snapshot, and snapshots are compared only through identity
// tokens. Everything host-specific is reached through the small interfaces
// in surface.go, so the package runs unchanged against in-memory fakes.
package explorer

import "fmt"

// WindowID is a top-level window handle.
type WindowID uintptr

// String formats the handle the way Windows tools print HWNDs.
func (id WindowID) String() string {
	return fmt.Sprintf("0x%X", uintptr(id))
}

// Token is an opaque identity for a tab's content object. The zero Token
// means "identity unknown" and never matches another token, zero included.
type Token uintptr

// Known reports whether the token carries an identity.
func (t Token) Known() bool {
	return t != 0
}

// TabRecord is one tab as captured by a single Discover call. It is a value:
// later host-side changes are not reflected in it.
type TabRecord struct {
	// Content is the tab's navigable object. It stays valid until the
	// owning Snapshot is released.
	Content Content
	// URL is the tab's location, possibly a synthesized shell: URL, or
	// empty when neither the location nor the folder path resolved.
	URL string
	// Window is the top-level window hosting the tab.
	Window WindowID
	// Token identifies Content; zero when unresolvable.
	Token Token
}

// WindowOrder lists distinct windows in first-seen enumeration order.
// Element 0 is the merge and open target for a run. The order reflects
// enumeration, not creation time or z-order.
type WindowOrder []WindowID

// Target returns the first discovered window.
func (o WindowOrder) Target() (WindowID, bool) {
	if len(o) == 0 {
		return 0, false
	}
	return o[0], true
}

// Contains reports whether id is in the order.
func (o WindowOrder) Contains(id WindowID) bool {
	for _, w := range o {
		if w == id {
			return true
		}
	}
	return false
}

// Snapshot is the immutable result of one Discover call.
type Snapshot struct {
	Tabs  []TabRecord
	Order WindowOrder
}

// Empty reports whether no windows were discovered. Callers treat this
// as "nothing to do", not as a failure.
func (s Snapshot) Empty() bool {
	return len(s.Order) == 0
}

// InWindow returns the tabs owned by id, in discovery order.
func (s Snapshot) InWindow(id WindowID) []TabRecord {
	var tabs []TabRecord
	for _, tab := range s.Tabs {
		if tab.Window == id {
			tabs = append(tabs, tab)
		}
	}
	return tabs
}

// Release drops the host references held by the snapshot's records.
// A baseline snapshot must stay unreleased until detection completes,
// otherwise the host may recycle an object address into a new tab.
func (s Snapshot) Release() {
	for _, tab := range s.Tabs {
		if r, ok := tab.Content.(Releaser); ok {
			r.Release()
		}
	}
}

// DiscoverFunc captures a fresh Snapshot of the host.
type DiscoverFunc func() Snapshot
