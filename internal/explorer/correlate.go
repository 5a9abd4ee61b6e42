package explorer

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/tabmerge/internal/logging"
)

// Classification is the merge plan derived from one Snapshot.
type Classification struct {
	// Target is the window tabs are merged into (Order[0]).
	Target WindowID
	// InTarget counts the tabs the target already owns.
	InTarget int
	// MergeList holds the URLs to reopen in the target, in discovery order.
	MergeList []string
	// Close lists source windows to close afterwards, deduplicated, never
	// containing Target.
	Close []WindowID
	// Excluded holds URLs skipped because they matched an exclude pattern.
	Excluded []string
}

// Empty reports whether there is nothing to merge.
func (c Classification) Empty() bool {
	return len(c.MergeList) == 0
}

// ClassifyOptions tunes Classify. The zero value merges everything.
type ClassifyOptions struct {
	// Exclude drops matching URLs from the merge list.
	Exclude *ExcludeMatcher
	// CloseExcluded closes windows even when they hold excluded tabs.
	CloseExcluded bool
}

// Classify splits a Snapshot into tabs already in the target window and
// tabs to merge. Tabs without a URL are dropped; their windows are still
// closed.
func Classify(snap Snapshot, opts ClassifyOptions, logger *logging.Logger) Classification {
	if logger == nil {
		logger = logging.NopLogger()
	}

	var c Classification
	target, ok := snap.Order.Target()
	if !ok {
		return c
	}
	c.Target = target

	keepOpen := make(map[WindowID]bool)
	seen := make(map[WindowID]bool)
	var sources []WindowID

	for _, tab := range snap.Tabs {
		if tab.Window == target {
			c.InTarget++
			continue
		}

		if !seen[tab.Window] {
			seen[tab.Window] = true
			sources = append(sources, tab.Window)
		}

		switch {
		case tab.URL == "":
			logger.Warn("dropping tab without url", "hwnd", tab.Window.String())
		case opts.Exclude.Match(tab.URL):
			logger.Info("excluding tab", "hwnd", tab.Window.String(), "url", tab.URL)
			c.Excluded = append(c.Excluded, tab.URL)
			if !opts.CloseExcluded {
				keepOpen[tab.Window] = true
			}
		default:
			c.MergeList = append(c.MergeList, tab.URL)
		}
	}

	for _, id := range sources {
		if !keepOpen[id] {
			c.Close = append(c.Close, id)
		}
	}

	return c
}

// ExcludeMatcher matches URLs against case-insensitive glob patterns.
// A nil *ExcludeMatcher matches nothing.
type ExcludeMatcher struct {
	patterns []string
	globs    []glob.Glob
}

// CompileExcludes compiles patterns such as "shell:::{*}" or
// "c:\\users\\*\\appdata*". Blank patterns are ignored.
func CompileExcludes(patterns []string) (*ExcludeMatcher, error) {
	m := &ExcludeMatcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, p)
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether url matches any pattern.
func (m *ExcludeMatcher) Match(url string) bool {
	if m == nil {
		return false
	}
	lower := strings.ToLower(url)
	for _, g := range m.globs {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// Patterns returns the compiled patterns as given.
func (m *ExcludeMatcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}
