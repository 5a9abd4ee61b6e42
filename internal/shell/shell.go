// Package shell connects tabmerge to the Windows desktop shell.
//
// A Session wraps the Shell.Application automation object and the user32
// window primitives. It satisfies every host capability the core consumes:
// explorer.Surface and explorer.Hierarchy for discovery, newtab.Messenger
// for the new-tab command, and the orchestrator's Desktop and Launcher.
//
// COM objects are apartment threaded, so a Session pins the calling
// goroutine to its OS thread between Open and Close and must only be used
// from that goroutine.
package shell

import (
	"github.com/Iron-Ham/tabmerge/internal/explorer"
)

const (
	wmClose   = 0x0010
	wmCommand = 0x0111

	gwHwndNext = 2
	gwChild    = 5

	// maxChildren guards GW_HWNDNEXT chains that never terminate.
	maxChildren = 1 << 14
)

// Session capabilities, checked at compile time on every platform.
var (
	_ explorer.Surface   = (*Session)(nil)
	_ explorer.Hierarchy = (*Session)(nil)
)
