package router

import (
	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/history"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/match"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// Context is what a router exposes to its descendants.
type Context struct {
	// History is the router's history.
	History history.History

	// Location is the location being rendered.
	Location location.Location

	// Match is the closest route match; nil below a Route that did not match.
	Match *match.Match

	// StaticContext is set during a server render only.
	StaticContext *history.StaticContext

	prompts *promptSet
}

type contextKey struct{}

// FromScope returns the router context of the closest router, if any.
func FromScope(s *vdom.Scope) (*Context, bool) {
	ctx, ok := s.Value(contextKey{}).(*Context)
	return ctx, ok && ctx != nil
}

// requireContext is FromScope for components that cannot work without a router.
func requireContext(s *vdom.Scope, component string) (*Context, error) {
	ctx, ok := FromScope(s)
	if !ok {
		return nil, rerrors.New("E102").
			WithComponent(component).
			WithMessage("You should not use <" + component + "> outside a <Router>")
	}
	return ctx, nil
}

// IsStatic reports whether the context belongs to a server render.
func (c *Context) IsStatic() bool {
	if c.StaticContext != nil {
		return true
	}
	_, ok := c.History.(*history.StaticHistory)
	return ok
}

// Params returns the parameters of the closest match.
func (c *Context) Params() map[string]string {
	if c.Match == nil {
		return map[string]string{}
	}
	return c.Match.Params
}

// derive returns a copy for a nested route.
func (c *Context) derive(loc location.Location, m *match.Match) *Context {
	next := *c
	next.Location = loc
	next.Match = m
	return &next
}

func (c *Context) provide(children ...any) *vdom.VNode {
	return vdom.Provide(contextKey{}, c, children...)
}

// WithRouter adapts a render function that needs the router context.
func WithRouter(render func(ctx *Context) (*vdom.VNode, error)) vdom.Component {
	return vdom.ComponentFunc(func(s *vdom.Scope) (*vdom.VNode, error) {
		ctx, err := requireContext(s, "withRouter")
		if err != nil {
			return nil, err
		}
		return render(ctx)
	})
}

// UseRouteMatch matches opts against the current location. With an empty
// pattern it returns the closest match.
func UseRouteMatch(s *vdom.Scope, opts match.Options) (*match.Match, error) {
	ctx, err := requireContext(s, "useRouteMatch")
	if err != nil {
		return nil, err
	}
	if opts.Path == "" && len(opts.Paths) == 0 {
		return ctx.Match, nil
	}
	return match.Path(ctx.Location.Pathname, opts)
}
