package history

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/vrouter/pkg/location"
)

// MemoryOptions configures a MemoryHistory.
type MemoryOptions struct {
	// InitialEntries seeds the stack. Defaults to a single "/" entry.
	InitialEntries []location.Input

	// InitialIndex selects the current entry; it is clamped into range.
	// Defaults to the last entry.
	InitialIndex *int

	// KeyLength is the length of generated entry keys (default 6).
	KeyLength int

	// GetUserConfirmation resolves prompts installed with Block.
	GetUserConfirmation ConfirmFunc

	// Logger receives warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// MemoryHistory keeps its entry stack in memory.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []location.Location
	index     int
	action    Action
	keyLength int

	tm *transitionManager
}

// NewMemory creates a memory history.
func NewMemory(opts MemoryOptions) (*MemoryHistory, error) {
	h := &MemoryHistory{
		action:    ActionPop,
		keyLength: opts.KeyLength,
		tm:        newTransitionManager(opts.GetUserConfirmation, opts.Logger),
	}
	if h.keyLength <= 0 {
		h.keyLength = DefaultKeyLength
	}

	initial := opts.InitialEntries
	if len(initial) == 0 {
		initial = []location.Input{location.Path("/")}
	}
	h.entries = make([]location.Location, 0, len(initial))
	for _, in := range initial {
		loc, err := location.Create(in, nil)
		if err != nil {
			return nil, err
		}
		if loc.Key == "" {
			loc.Key = createKey(h.keyLength)
		}
		h.entries = append(h.entries, loc)
	}

	h.index = len(h.entries) - 1
	if opts.InitialIndex != nil {
		h.index = clamp(*opts.InitialIndex, 0, len(h.entries)-1)
	}
	return h, nil
}

// Length implements History.
func (h *MemoryHistory) Length() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Index is the position of the current entry.
func (h *MemoryHistory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Entries returns a copy of the entry stack.
func (h *MemoryHistory) Entries() []location.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]location.Location, len(h.entries))
	copy(out, h.entries)
	return out
}

// Action implements History.
func (h *MemoryHistory) Action() Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.action
}

// Location implements History.
func (h *MemoryHistory) Location() location.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// CreateHref implements History. Memory histories have no basename.
func (h *MemoryHistory) CreateHref(to location.Input) string {
	return hrefPath(to)
}

// Push implements History.
func (h *MemoryHistory) Push(to location.Input, state any) error {
	current := h.Location()
	loc, err := location.Create(location.WithState(to, state), &current)
	if err != nil {
		return err
	}
	loc.Key = createKey(h.keyLength)

	if !h.tm.confirmTransitionTo(loc, ActionPush) {
		return nil
	}

	h.mu.Lock()
	next := h.index + 1
	entries := make([]location.Location, next, next+1)
	copy(entries, h.entries[:next])
	h.entries = append(entries, loc)
	h.index = next
	h.action = ActionPush
	h.mu.Unlock()

	h.tm.notify(loc, ActionPush)
	return nil
}

// Replace implements History.
func (h *MemoryHistory) Replace(to location.Input, state any) error {
	current := h.Location()
	loc, err := location.Create(location.WithState(to, state), &current)
	if err != nil {
		return err
	}
	loc.Key = createKey(h.keyLength)

	if !h.tm.confirmTransitionTo(loc, ActionReplace) {
		return nil
	}

	h.mu.Lock()
	h.entries[h.index] = loc
	h.action = ActionReplace
	h.mu.Unlock()

	h.tm.notify(loc, ActionReplace)
	return nil
}

// Go implements History. The target index is clamped into range.
func (h *MemoryHistory) Go(n int) error {
	h.mu.Lock()
	next := clamp(h.index+n, 0, len(h.entries)-1)
	loc := h.entries[next]
	h.mu.Unlock()

	if !h.tm.confirmTransitionTo(loc, ActionPop) {
		return nil
	}

	h.mu.Lock()
	h.index = next
	h.action = ActionPop
	h.mu.Unlock()

	h.tm.notify(loc, ActionPop)
	return nil
}

// GoBack implements History.
func (h *MemoryHistory) GoBack() error { return h.Go(-1) }

// GoForward implements History.
func (h *MemoryHistory) GoForward() error { return h.Go(1) }

// CanGo reports whether Go(n) would land on an existing entry.
func (h *MemoryHistory) CanGo(n int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.index + n
	return next >= 0 && next < len(h.entries)
}

// Block implements History.
func (h *MemoryHistory) Block(prompt Prompt) func() {
	return h.tm.setPrompt(prompt)
}

// Listen implements History.
func (h *MemoryHistory) Listen(listener Listener) func() {
	return h.tm.listen(listener)
}
