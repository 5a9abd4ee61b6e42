// Package newtab opens a tab in a file-browser window and navigates it.
//
// The host offers no call that creates a tab and returns it, so the Watcher
// asks for a new tab with a window command and then discovers it by diffing
// snapshots against a baseline taken just before the command was sent.
package newtab

import (
	"fmt"
	"time"

	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/logging"
)

const (
	// DefaultInterval is the pause between polls.
	DefaultInterval = 300 * time.Millisecond
	// DefaultTimeout bounds the cumulative wait for the new tab.
	DefaultTimeout = 8000 * time.Millisecond
	// DefaultCommandCode is the undocumented "new tab" command understood by
	// the tab-host control.
	DefaultCommandCode uint16 = 0xA21B
)

// State is a step of one CreateAndNavigate call.
type State int

const (
	StateBaseline State = iota
	StateCommandSent
	StatePolling
	StateFound
	StateTimedOut
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateBaseline:
		return "baseline"
	case StateCommandSent:
		return "command_sent"
	case StatePolling:
		return "polling"
	case StateFound:
		return "found"
	case StateTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Method records how the new tab was recognised.
type Method string

const (
	// MethodPrecise means the tab carried an identity token absent from the
	// baseline.
	MethodPrecise Method = "precise"
	// MethodApproximate means the window's tab count grew and the last tab
	// in discovery order was taken. A tab the user opens during polling can
	// be picked instead of ours.
	MethodApproximate Method = "approximate"
)

// Messenger delivers the new-tab command to a tab-host control. Delivery is
// fire-and-forget: a nil error says nothing about whether a tab appeared.
type Messenger interface {
	SendCommand(control explorer.WindowID, code uint16) error
}

// Options configures a Watcher. Zero fields take their defaults.
type Options struct {
	Interval    time.Duration
	Timeout     time.Duration
	CommandCode uint16
	// Sleep pauses between polls; time.Sleep when nil.
	Sleep func(time.Duration)
}

// DefaultOptions returns the stock polling options.
func DefaultOptions() Options {
	return Options{
		Interval:    DefaultInterval,
		Timeout:     DefaultTimeout,
		CommandCode: DefaultCommandCode,
		Sleep:       time.Sleep,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Interval <= 0 {
		o.Interval = d.Interval
	}
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	if o.CommandCode == 0 {
		o.CommandCode = d.CommandCode
	}
	if o.Sleep == nil {
		o.Sleep = d.Sleep
	}
	return o
}

// Request names the window to grow, its tab-host control and the
// destination of the new tab.
type Request struct {
	Window  explorer.WindowID
	TabHost explorer.WindowID
	URL     string
}

// Outcome is the state threaded through one CreateAndNavigate call.
type Outcome struct {
	State State
	// Polls counts discovery passes made while polling.
	Polls int
	// Waited is the total time spent sleeping.
	Waited time.Duration
	Method Method
	// Baseline is the number of tabs the window owned before the command.
	Baseline int
	// Tab is the tab that was navigated, when one was found. Its Content has
	// already been released.
	Tab explorer.TabRecord
	Err error
}

// Success reports whether a tab was found and navigated.
func (o Outcome) Success() bool {
	return o.State == StateFound && o.Err == nil
}

// Watcher creates tabs one at a time. It is not safe for concurrent use and
// must not be: each call diffs against a baseline of shared host state that a
// parallel call would disturb.
type Watcher struct {
	discover  explorer.DiscoverFunc
	messenger Messenger
	opts      Options
	logger    *logging.Logger
}

// New creates a Watcher.
func New(discover explorer.DiscoverFunc, messenger Messenger, opts Options, logger *logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Watcher{
		discover:  discover,
		messenger: messenger,
		opts:      opts.withDefaults(),
		logger:    logger.WithPhase("watch"),
	}
}

// baseline is the target window's tab set before the command.
type baseline struct {
	tokens  []explorer.Token
	count   int
	precise bool
}

func newBaseline(tabs []explorer.TabRecord) baseline {
	b := baseline{tokens: make([]explorer.Token, 0, len(tabs)), count: len(tabs)}
	known := 0
	for _, tab := range tabs {
		b.tokens = append(b.tokens, tab.Token)
		if tab.Token.Known() {
			known++
		}
	}
	// With no resolvable token in a non-empty window any resolvable token
	// later on could be an old tab; only the count is trustworthy.
	b.precise = b.count == 0 || known > 0
	return b
}

// seen reports whether t identifies a tab already in the window.
func (b baseline) seen(t explorer.Token) bool {
	for _, old := range b.tokens {
		if explorer.SameObject(old, t) {
			return true
		}
	}
	return false
}

// match looks for the new tab among the window's current tabs. A tab with
// an unknown token can't be told apart from the old ones.
func (b baseline) match(current []explorer.TabRecord) (explorer.TabRecord, Method, bool) {
	if b.precise {
		for _, tab := range current {
			if tab.Token.Known() && !b.seen(tab.Token) {
				return tab, MethodPrecise, true
			}
		}
	}
	if len(current) > b.count {
		return current[len(current)-1], MethodApproximate, true
	}
	return explorer.TabRecord{}, "", false
}

// CreateAndNavigate asks req.Window for a new tab, waits for it to appear
// and navigates it to req.URL. Navigation is attempted once. The call never
// blocks longer than the configured timeout plus one discovery pass.
func (w *Watcher) CreateAndNavigate(req Request) Outcome {
	out := Outcome{State: StateBaseline}
	logger := w.logger.WithWindow(uintptr(req.Window)).With("url", req.URL)

	if req.Window == 0 || req.TabHost == 0 || req.URL == "" {
		out.Err = errors.NewValidationError("window, tab host and url are required").WithCause(errors.ErrInvalidInput)
		logger.Warn("refusing to create tab", "error", out.Err)
		return out
	}

	// The baseline keeps its host references until detection is over so a
	// released object's address cannot come back as the new tab's token.
	base := w.discover()
	defer base.Release()

	known := newBaseline(base.InWindow(req.Window))
	out.Baseline = known.count
	logger.Debug("baseline captured", "tabs", known.count, "tokens", len(known.tokens), "precise", known.precise)

	out.State = StateCommandSent
	if err := w.messenger.SendCommand(req.TabHost, w.opts.CommandCode); err != nil {
		out.Err = errors.NewHostError("new tab command failed", err).
			WithWindow(uintptr(req.TabHost)).
			WithOperation("send_command")
		logger.Warn("failed to send new tab command", "error", err)
		return out
	}

	out.State = StatePolling
	for waited := time.Duration(0); waited <= w.opts.Timeout; waited += w.opts.Interval {
		out.Polls++
		snap := w.discover()

		tab, method, ok := known.match(snap.InWindow(req.Window))
		if ok {
			out.State = StateFound
			out.Method = method
			out.Tab = tab
			logger.Debug("new tab detected", "method", string(method), "polls", out.Polls, "token", uintptr(tab.Token))

			if err := tab.Content.Navigate(req.URL); err != nil {
				out.Err = errors.NewHostError("navigate failed", errors.Join(errors.ErrNavigateFailed, err)).
					WithWindow(uintptr(req.Window)).
					WithOperation("navigate")
				logger.Warn("navigation failed", "error", err)
			}
			snap.Release()
			return out
		}
		snap.Release()

		if waited+w.opts.Interval > w.opts.Timeout {
			break
		}
		w.opts.Sleep(w.opts.Interval)
		out.Waited += w.opts.Interval
	}

	out.State = StateTimedOut
	out.Err = errors.NewTimeoutError("waiting for new tab", w.opts.Timeout).WithCause(errors.ErrTimeout)
	logger.Warn("no new tab appeared", "polls", out.Polls, "waited", out.Waited.String())
	return out
}
