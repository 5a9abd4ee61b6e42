package orchestrator

import (
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/newtab"
)

// Desktop closes top-level windows.
type Desktop interface {
	// IsWindow reports whether id still names an open window.
	IsWindow(id explorer.WindowID) bool
	// CloseWindow asks id to close without waiting for it to do so.
	CloseWindow(id explorer.WindowID) error
}

// Launcher opens a path through the operating system shell.
type Launcher interface {
	OpenPath(path string) error
}

// TabCreator opens one navigated tab. *newtab.Watcher implements it.
type TabCreator interface {
	CreateAndNavigate(req newtab.Request) newtab.Outcome
}

// Host bundles the capabilities the merge and open flows drive.
type Host struct {
	Discover  explorer.DiscoverFunc
	Hierarchy explorer.Hierarchy
	Tabs      TabCreator
	Desktop   Desktop
	Launcher  Launcher
}

// TabHostOptions locate the tab-host control inside a window.
type TabHostOptions struct {
	// ClassName defaults to explorer.TabHostClass.
	ClassName string
	// MaxNodes defaults to explorer.DefaultMaxNodes.
	MaxNodes int
}

func (h Host) findTabHost(window explorer.WindowID, opts TabHostOptions) (explorer.WindowID, bool) {
	return explorer.FindTabHost(h.Hierarchy, window, opts.ClassName, opts.MaxNodes)
}
