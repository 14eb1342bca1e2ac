package history

import (
	"log/slog"

	"github.com/vango-dev/vrouter/pkg/location"
)

// BrowserOptions configures a BrowserHistory.
type BrowserOptions struct {
	// Basename is the URL prefix the application is mounted under.
	Basename string

	// ForceRefresh performs full page loads instead of pushState.
	ForceRefresh bool

	// KeyLength is the length of generated entry keys (default 6).
	KeyLength int

	// GetUserConfirmation resolves prompts installed with Block.
	GetUserConfirmation ConfirmFunc

	// Initial is the URL path the client is on, basename included.
	Initial location.Input

	// Driver sends commands to the client. Without one, commands are dropped.
	Driver Driver

	// Logger receives warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// BrowserHistory mirrors window.history for a connected client.
type BrowserHistory struct {
	*remoteHistory

	forceRefresh bool
	keyLength    int
}

// NewBrowser creates a browser history.
func NewBrowser(opts BrowserOptions) (*BrowserHistory, error) {
	codec := pathCodec{
		href: func(basename, path string) string {
			return basename + path
		},
		decode: func(raw string) string { return raw },
	}

	h := &BrowserHistory{
		remoteHistory: newRemote(opts.Basename, codec, opts.Driver, opts.GetUserConfirmation, opts.Logger),
		forceRefresh:  opts.ForceRefresh,
		keyLength:     opts.KeyLength,
	}
	if h.keyLength <= 0 {
		h.keyLength = DefaultKeyLength
	}
	h.id = func(l location.Location) string { return l.Key }

	initial := opts.Initial
	if initial == nil {
		initial = location.Path("/")
	}
	p := initial.AsPartial()
	if err := h.init(hrefPath(initial)); err != nil {
		return nil, err
	}
	h.location.State = p.State
	h.location.Key = p.Key
	if h.location.Key == "" {
		h.location.Key = createKey(h.keyLength)
	}
	h.ids = []string{h.location.Key}
	return h, nil
}

// Push implements History.
func (h *BrowserHistory) Push(to location.Input, state any) error {
	return h.navigate(to, state, ActionPush)
}

// Replace implements History.
func (h *BrowserHistory) Replace(to location.Input, state any) error {
	return h.navigate(to, state, ActionReplace)
}

func (h *BrowserHistory) navigate(to location.Input, state any, action Action) error {
	current := h.Location()
	loc, err := location.Create(location.WithState(to, state), &current)
	if err != nil {
		return err
	}
	loc.Key = createKey(h.keyLength)

	if !h.tm.confirmTransitionTo(loc, action) {
		return nil
	}

	href := h.CreateHref(loc)
	if h.forceRefresh {
		return h.driver.Reload(href)
	}

	entry := EntryState{Key: loc.Key, State: loc.State}
	if action == ActionPush {
		err = h.driver.PushState(href, entry)
	} else {
		err = h.driver.ReplaceState(href, entry)
	}
	if err != nil {
		return err
	}

	h.commit(loc, action)
	return nil
}

// HandlePop applies a back/forward move the client reported. url is the
// client's path, search and hash; key and state come from the popped entry.
// If a prompt refuses the move, the client is sent back to the current entry.
func (h *BrowserHistory) HandlePop(url string, entry EntryState) error {
	loc, err := location.Normalize(location.Path(url), h.basename)
	if err != nil {
		return err
	}
	loc.Key = entry.Key
	loc.State = entry.State
	return h.pop(loc)
}
