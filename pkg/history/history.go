package history

import (
	"github.com/vango-dev/vrouter/pkg/location"
)

// Action is the kind of transition that produced the current location.
type Action string

const (
	// ActionPop is the initial action and the action of back/forward moves.
	ActionPop Action = "POP"

	// ActionPush adds a new entry.
	ActionPush Action = "PUSH"

	// ActionReplace overwrites the current entry.
	ActionReplace Action = "REPLACE"
)

// String returns the action name.
func (a Action) String() string { return string(a) }

// Listener is notified after every transition.
type Listener func(loc location.Location, action Action)

// Prompt is consulted before a transition. A non-empty return value is the
// message shown to the user; an empty string lets the transition through.
type Prompt func(loc location.Location, action Action) string

// ConfirmFunc asks the user to confirm a blocked transition.
type ConfirmFunc func(message string) bool

// History is the navigation facade shared by all router variants.
type History interface {
	// Length is the number of entries in the history stack.
	Length() int

	// Action is the action that produced the current location.
	Action() Action

	// Location is the current location, without basename.
	Location() location.Location

	// CreateHref serializes a navigation target into an href, basename included.
	CreateHref(to location.Input) string

	// Push navigates to a new entry. A non-nil state overrides the target's state.
	Push(to location.Input, state any) error

	// Replace overwrites the current entry.
	Replace(to location.Input, state any) error

	// Go moves n entries through the stack.
	Go(n int) error

	// GoBack is Go(-1).
	GoBack() error

	// GoForward is Go(1).
	GoForward() error

	// Block installs a prompt consulted before transitions.
	Block(prompt Prompt) (unblock func())

	// Listen registers a listener and returns a function that removes it.
	Listen(listener Listener) (unlisten func())
}

// hrefPath serializes a target without basename. A raw Path or Partial is
// used as written; a decoded Location has its pathname escaped again.
func hrefPath(to location.Input) string {
	switch to := to.(type) {
	case location.Path:
		return string(to)
	case location.Location:
		return location.EscapePath(to)
	}
	return location.CreatePath(location.Location(to.AsPartial()))
}
