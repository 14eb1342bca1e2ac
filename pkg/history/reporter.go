package history

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/vrouter/pkg/location"
)

// StaticContext is the caller-owned record a Reporter writes into. Zero values
// mean "not set". Use a fresh StaticContext for every render.
type StaticContext struct {
	// Action is PUSH or REPLACE once a redirect was reported.
	Action Action `json:"action,omitempty"`

	// Location is the redirect target, without basename.
	Location *location.Location `json:"location,omitempty"`

	// URL is the redirect target as an href: basename applied, pathname escaped.
	URL string `json:"url,omitempty"`

	// StatusCode may be set by rendered routes, such as a not-found page.
	StatusCode int `json:"statusCode,omitempty"`

	// Overwrites counts redirects replaced by a later one in the same render.
	Overwrites int `json:"overwrites,omitempty"`
}

// NavigationEvent is one captured redirect.
type NavigationEvent struct {
	Action   Action            `json:"action"`
	Location location.Location `json:"location"`
	URL      string            `json:"url"`
}

// Redirect returns the captured redirect, if any.
func (c *StaticContext) Redirect() (NavigationEvent, bool) {
	if c == nil || c.Action == "" || c.Location == nil {
		return NavigationEvent{}, false
	}
	return NavigationEvent{Action: c.Action, Location: *c.Location, URL: c.URL}, true
}

// ReporterState is the state of a Reporter.
type ReporterState int

const (
	// Idle means no redirect has been reported yet.
	Idle ReporterState = iota

	// Reported means the context holds a redirect.
	Reported
)

// String returns the state name.
func (s ReporterState) String() string {
	if s == Reported {
		return "Reported"
	}
	return "Idle"
}

// Reporter records the last navigation of a StaticHistory into a StaticContext.
// It never navigates. A reporter is scoped to one render; it has no way back
// to Idle.
type Reporter struct {
	mu       sync.Mutex
	ctx      *StaticContext
	href     func(location.Input) string
	state    ReporterState
	logger   *slog.Logger
	unlisten func()
}

// NewReporter attaches a reporter for ctx to h.
func NewReporter(ctx *StaticContext, h *StaticHistory) *Reporter {
	r := &Reporter{
		ctx:    ctx,
		href:   h.CreateHref,
		logger: h.logger,
	}
	r.unlisten = h.Listen(r.record)
	return r
}

// State returns the current state.
func (r *Reporter) State() ReporterState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Context returns the record the reporter writes into.
func (r *Reporter) Context() *StaticContext { return r.ctx }

// Detach stops recording.
func (r *Reporter) Detach() { r.unlisten() }

func (r *Reporter) record(loc location.Location, action Action) {
	if action != ActionPush && action != ActionReplace {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	url := r.href(loc)
	if r.state == Reported {
		r.ctx.Overwrites++
		r.logger.Debug("redirect overwritten by a later redirect in the same render",
			"previous", r.ctx.URL, "next", url)
	}
	r.ctx.Action = action
	r.ctx.Location = &loc
	r.ctx.URL = url
	r.state = Reported
}
