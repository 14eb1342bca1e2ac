package history

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/vrouter/pkg/location"
)

// transitionManager owns the blocking prompt and the listeners of a history.
type transitionManager struct {
	listeners listenerSet

	mu      sync.Mutex
	prompt  Prompt
	promptN uint64
	confirm ConfirmFunc
	logger  *slog.Logger

	warnedNoConfirm bool
}

func newTransitionManager(confirm ConfirmFunc, logger *slog.Logger) *transitionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &transitionManager{confirm: confirm, logger: logger}
}

func (tm *transitionManager) setPrompt(p Prompt) func() {
	tm.mu.Lock()
	if tm.prompt != nil {
		tm.logger.Warn("a history supports only one prompt at a time; the previous prompt was replaced")
	}
	tm.prompt = p
	tm.promptN++
	n := tm.promptN
	tm.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			tm.mu.Lock()
			// Only clear the prompt this call installed.
			if tm.promptN == n {
				tm.prompt = nil
			}
			tm.mu.Unlock()
		})
	}
}

// confirmTransitionTo reports whether a transition may proceed.
func (tm *transitionManager) confirmTransitionTo(loc location.Location, action Action) bool {
	tm.mu.Lock()
	prompt, confirm := tm.prompt, tm.confirm
	tm.mu.Unlock()

	if prompt == nil {
		return true
	}
	message := prompt(loc, action)
	if message == "" {
		return true
	}
	if confirm != nil {
		return confirm(message)
	}

	tm.mu.Lock()
	warn := !tm.warnedNoConfirm
	tm.warnedNoConfirm = true
	tm.mu.Unlock()
	if warn {
		tm.logger.Warn("history needs a GetUserConfirmation function in order to use a prompt message; allowing the transition",
			"message", message)
	}
	return true
}

func (tm *transitionManager) listen(fn Listener) func() {
	return tm.listeners.add(fn)
}

func (tm *transitionManager) notify(loc location.Location, action Action) {
	tm.listeners.notify(loc, action)
}
