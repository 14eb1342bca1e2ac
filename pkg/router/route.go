package router

import (
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/match"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// Route renders its content when Path matches the current location.
//
// When the route matches, the first of Children, Component and RenderFunc
// that is set renders. ChildrenFunc takes precedence over all of them and
// runs whether or not the route matched.
type Route struct {
	Path      string
	Paths     []string
	Exact     bool
	Strict    bool
	Sensitive bool

	// Location overrides the router location for this route.
	Location location.Input

	Children     []any
	Component    func(ctx *Context) (*vdom.VNode, error)
	RenderFunc   func(ctx *Context) *vdom.VNode
	ChildrenFunc func(ctx *Context) *vdom.VNode

	// Set by Switch.
	computedMatch *match.Match
	matched       bool
}

// Render implements vdom.Component.
func (r *Route) Render(s *vdom.Scope) (*vdom.VNode, error) {
	parent, err := requireContext(s, "Route")
	if err != nil {
		return nil, err
	}

	loc := parent.Location
	if r.Location != nil {
		loc, err = location.Create(r.Location, &parent.Location)
		if err != nil {
			return nil, err
		}
	}

	m := r.computedMatch
	if !r.matched {
		if r.Path == "" && len(r.Paths) == 0 {
			m = parent.Match
		} else {
			m, err = match.Path(loc.Pathname, match.Options{
				Path:      r.Path,
				Paths:     r.Paths,
				Exact:     r.Exact,
				Strict:    r.Strict,
				Sensitive: r.Sensitive,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	ctx := parent.derive(loc, m)
	var out *vdom.VNode
	switch {
	case r.ChildrenFunc != nil:
		out = r.ChildrenFunc(ctx)
	case m == nil:
		return nil, nil
	case len(r.Children) > 0:
		out = vdom.Fragment(r.Children...)
	case r.Component != nil:
		out, err = r.Component(ctx)
		if err != nil {
			return nil, err
		}
	case r.RenderFunc != nil:
		out = r.RenderFunc(ctx)
	}
	if out == nil {
		return nil, nil
	}
	return ctx.provide(out), nil
}

// withMatch returns a copy that renders with m and loc instead of matching.
func (r *Route) withMatch(m *match.Match, loc location.Input) *Route {
	next := *r
	next.computedMatch = m
	next.matched = true
	if loc != nil {
		next.Location = loc
	}
	return &next
}
