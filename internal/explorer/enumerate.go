package explorer

import (
	"strings"

	"github.com/Iron-Ham/tabmerge/internal/logging"
)

const (
	// virtualMarker prefixes the parsing name of a virtual folder, e.g.
	// "::{20D04FE0-3AEA-1069-A2D8-08002B30309D}" for This PC.
	virtualMarker = "::"
	// shellScheme turns a virtual parsing name into a navigable URL.
	shellScheme = "shell:"
)

// Enumerator snapshots every browsing window the host exposes.
type Enumerator struct {
	surface Surface
	logger  *logging.Logger
}

// NewEnumerator creates an Enumerator over surface. A nil logger discards output.
func NewEnumerator(surface Surface, logger *logging.Logger) *Enumerator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Enumerator{
		surface: surface,
		logger:  logger.WithPhase("discover"),
	}
}

// Discover captures a fresh Snapshot. Items that fail individually are
// logged and skipped; an unavailable surface yields an empty Snapshot.
func (e *Enumerator) Discover() Snapshot {
	var snap Snapshot

	coll, err := e.surface.Windows()
	if err != nil {
		e.logger.Warn("host surface unavailable", "error", err)
		return snap
	}
	defer coll.Release()

	count, err := coll.Count()
	if err != nil {
		e.logger.Warn("failed to count browsing windows", "error", err)
		return snap
	}

	for i := 0; i < count; i++ {
		item, err := coll.Item(i)
		if err != nil || item == nil {
			e.logger.Warn("skipping window item", "index", i, "error", err)
			continue
		}

		tab, ok := e.capture(i, item)
		if !ok {
			if r, isReleaser := item.(Releaser); isReleaser {
				r.Release()
			}
			continue
		}

		if !snap.Order.Contains(tab.Window) {
			snap.Order = append(snap.Order, tab.Window)
		}
		snap.Tabs = append(snap.Tabs, tab)
	}

	e.logger.Debug("discovery complete", "tabs", len(snap.Tabs), "windows", len(snap.Order))
	return snap
}

// capture keeps only items exposing a window handle and a location query.
func (e *Enumerator) capture(index int, item Item) (TabRecord, bool) {
	hwnd, err := item.Window()
	if err != nil || hwnd == 0 {
		e.logger.Debug("skipping item without window handle", "index", index, "error", err)
		return TabRecord{}, false
	}

	location, err := item.LocationURL()
	if err != nil {
		e.logger.Debug("skipping item without location", "index", index, "hwnd", hwnd.String(), "error", err)
		return TabRecord{}, false
	}

	url := strings.TrimSpace(location)
	if url == "" {
		path, err := item.FolderPath()
		if err != nil {
			e.logger.Warn("failed to resolve virtual folder path", "index", index, "hwnd", hwnd.String(), "error", err)
		} else {
			url = SynthesizeURL(path)
		}
	}

	tab := TabRecord{
		Content: item,
		URL:     url,
		Window:  hwnd,
		Token:   IdentityOf(item),
	}
	e.logger.Debug("tab found", "index", index, "hwnd", hwnd.String(), "token", uintptr(tab.Token), "url", url)
	return tab, true
}

// SynthesizeURL turns a folder parsing path into a navigable URL.
// Virtual parsing names ("::{GUID}...") gain a "shell:" scheme, names that
// already carry it pass through, and anything else yields "".
func SynthesizeURL(path string) string {
	path = strings.TrimSpace(path)
	switch {
	case strings.HasPrefix(path, shellScheme+":"):
		return path
	case strings.HasPrefix(path, virtualMarker):
		return shellScheme + path
	default:
		return ""
	}
}
