package history

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/vango-dev/vrouter/pkg/location"
)

// Driver carries navigation commands to the document that owns the real
// browser history, typically over a live connection.
type Driver interface {
	// PushState adds an entry with the given href.
	PushState(href string, state any) error

	// ReplaceState overwrites the current entry.
	ReplaceState(href string, state any) error

	// Go moves delta entries; the client later reports the result as a pop.
	Go(delta int) error

	// Reload performs a full page load of href.
	Reload(href string) error
}

// EntryState is the state a BrowserHistory stores with each pushed entry.
type EntryState struct {
	Key   string `json:"key"`
	State any    `json:"state,omitempty"`
}

type nopDriver struct{}

func (nopDriver) PushState(string, any) error    { return nil }
func (nopDriver) ReplaceState(string, any) error { return nil }
func (nopDriver) Go(int) error                   { return nil }
func (nopDriver) Reload(string) error            { return nil }

// pathCodec maps between an application path and what the client stores.
type pathCodec struct {
	href   func(basename, path string) string
	decode func(raw string) string
}

// remoteHistory is the shared core of BrowserHistory and HashHistory. It
// mirrors a history stack that lives in a client and tracks entry ids so a
// refused pop can be reverted.
type remoteHistory struct {
	mu       sync.Mutex
	basename string
	codec    pathCodec
	driver   Driver
	logger   *slog.Logger
	tm       *transitionManager

	location location.Location
	action   Action

	// ids holds one id per known entry, in stack order.
	ids []string
	id  func(location.Location) string

	// forceNextPop skips confirmation for the pop that reverts a refused one.
	forceNextPop bool
}

func newRemote(basename string, codec pathCodec, driver Driver, confirm ConfirmFunc, logger *slog.Logger) *remoteHistory {
	if driver == nil {
		driver = nopDriver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &remoteHistory{
		basename: location.NormalizeBasename(basename),
		codec:    codec,
		driver:   driver,
		logger:   logger,
		tm:       newTransitionManager(confirm, logger),
		action:   ActionPop,
	}
}

func (h *remoteHistory) init(raw string) error {
	loc, err := location.Normalize(location.Path(h.codec.decode(raw)), "")
	if err != nil {
		return err
	}
	if h.basename != "" && !location.HasBasename(loc.Pathname, h.basename) {
		h.logger.Warn("attempting to use a basename on a page whose URL path does not begin with the basename",
			"path", loc.Pathname, "basename", h.basename)
	}
	h.location = location.StripBasename(h.basename, loc)
	return nil
}

// Basename returns the normalized basename.
func (h *remoteHistory) Basename() string { return h.basename }

// Length implements History.
func (h *remoteHistory) Length() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ids)
}

// Action implements History.
func (h *remoteHistory) Action() Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.action
}

// Location implements History.
func (h *remoteHistory) Location() location.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.location
}

// ResolveHref maps an href made by CreateHref, such as the target of a
// clicked link, back to an application path. The path is not decoded.
func (h *remoteHistory) ResolveHref(href string) location.Path {
	raw := location.Location(location.Parse(h.codec.decode(href)))
	return location.Path(location.CreatePath(location.StripBasename(h.basename, raw)))
}

// CreateHref implements History.
func (h *remoteHistory) CreateHref(to location.Input) string {
	return h.codec.href(h.basename, hrefPath(to))
}

// Go implements History. The location changes when the client reports the pop.
func (h *remoteHistory) Go(n int) error { return h.driver.Go(n) }

// GoBack implements History.
func (h *remoteHistory) GoBack() error { return h.Go(-1) }

// GoForward implements History.
func (h *remoteHistory) GoForward() error { return h.Go(1) }

// Block implements History.
func (h *remoteHistory) Block(prompt Prompt) func() { return h.tm.setPrompt(prompt) }

// Listen implements History.
func (h *remoteHistory) Listen(listener Listener) func() { return h.tm.listen(listener) }

// commit applies a transition and notifies listeners.
func (h *remoteHistory) commit(loc location.Location, action Action) {
	h.mu.Lock()
	id := h.id(loc)
	current := slices.Index(h.ids, h.id(h.location))
	switch action {
	case ActionPush:
		h.ids = append(h.ids[:current+1:current+1], id)
	case ActionReplace:
		if current >= 0 {
			h.ids[current] = id
		}
	}
	h.location = loc
	h.action = action
	h.mu.Unlock()

	h.tm.notify(loc, action)
}

// pop handles a back/forward move reported by the client.
func (h *remoteHistory) pop(loc location.Location) error {
	h.mu.Lock()
	force := h.forceNextPop
	h.forceNextPop = false
	h.mu.Unlock()

	if force || h.tm.confirmTransitionTo(loc, ActionPop) {
		h.commit(loc, ActionPop)
		return nil
	}

	h.mu.Lock()
	to := slices.Index(h.ids, h.id(h.location))
	from := slices.Index(h.ids, h.id(loc))
	if to == -1 || from == -1 || to == from {
		h.mu.Unlock()
		return nil
	}
	h.forceNextPop = true
	h.mu.Unlock()
	return h.driver.Go(to - from)
}
