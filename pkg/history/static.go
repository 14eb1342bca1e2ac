package history

import (
	"errors"
	"fmt"
	"log/slog"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/location"
)

// ErrStaticNavigation is returned by navigation a static history cannot perform.
var ErrStaticNavigation = errors.New("navigation not supported by a static history")

// StaticOptions configures a StaticHistory.
type StaticOptions struct {
	// Basename is stripped from Location and prepended to hrefs.
	Basename string

	// Location is the request location. Defaults to "/".
	Location location.Input

	// Context receives redirects. When non-nil a Reporter is attached.
	Context *StaticContext

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// StaticHistory is a history for a single server render pass. Its location
// never changes; pushes and replaces are only reported to listeners.
type StaticHistory struct {
	basename string
	location location.Location
	logger   *slog.Logger

	listeners listenerSet
	reporter  *Reporter
}

// NewStatic creates a static history.
func NewStatic(opts StaticOptions) (*StaticHistory, error) {
	in := opts.Location
	if in == nil {
		in = location.Path("/")
	}
	loc, err := location.Normalize(in, opts.Basename)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &StaticHistory{
		basename: location.NormalizeBasename(opts.Basename),
		location: loc,
		logger:   logger,
	}
	if opts.Context != nil {
		h.reporter = NewReporter(opts.Context, h)
	}
	return h, nil
}

// Basename returns the normalized basename.
func (h *StaticHistory) Basename() string { return h.basename }

// Reporter returns the attached reporter, or nil without a context.
func (h *StaticHistory) Reporter() *Reporter { return h.reporter }

// Length implements History.
func (h *StaticHistory) Length() int { return 1 }

// Action implements History. A static history always sits on its initial entry.
func (h *StaticHistory) Action() Action { return ActionPop }

// Location implements History.
func (h *StaticHistory) Location() location.Location { return h.location }

// CreateHref implements History. The result never starts with "//" when the
// basename is empty.
func (h *StaticHistory) CreateHref(to location.Input) string {
	return location.AddLeadingSlash(h.basename + hrefPath(to))
}

// Push implements History.
func (h *StaticHistory) Push(to location.Input, state any) error {
	return h.navigate(to, state, ActionPush)
}

// Replace implements History.
func (h *StaticHistory) Replace(to location.Input, state any) error {
	return h.navigate(to, state, ActionReplace)
}

func (h *StaticHistory) navigate(to location.Input, state any, action Action) error {
	loc, err := location.Create(location.WithState(to, state), &h.location)
	if err != nil {
		return err
	}
	h.listeners.notify(loc, action)
	return nil
}

// Go implements History. Static histories cannot move.
func (h *StaticHistory) Go(int) error { return staticInvariant("go") }

// GoBack implements History.
func (h *StaticHistory) GoBack() error { return staticInvariant("goBack") }

// GoForward implements History.
func (h *StaticHistory) GoForward() error { return staticInvariant("goForward") }

// Block implements History. Nothing is ever blocked during a server render.
func (h *StaticHistory) Block(Prompt) func() { return func() {} }

// Listen implements History.
func (h *StaticHistory) Listen(listener Listener) func() {
	return h.listeners.add(listener)
}

func staticInvariant(method string) error {
	return rerrors.New("E101").
		WithMessage(fmt.Sprintf("You cannot %s with <StaticRouter>", method)).
		Wrap(ErrStaticNavigation)
}
