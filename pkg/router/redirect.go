package router

import (
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/match"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// Redirect navigates to To when it renders. It replaces the current entry
// unless Push is set.
//
// Inside a Switch, From is matched like a Route path and its parameters
// are substituted into To's pathname.
type Redirect struct {
	To        location.Input
	Push      bool
	From      string
	Exact     bool
	Strict    bool
	Sensitive bool

	computedMatch *match.Match
}

// Render implements vdom.Component. It never produces output.
func (r *Redirect) Render(s *vdom.Scope) (*vdom.VNode, error) {
	ctx, err := requireContext(s, "Redirect")
	if err != nil {
		return nil, err
	}

	to, err := r.target()
	if err != nil {
		return nil, err
	}
	loc, err := location.Create(to, &ctx.Location)
	if err != nil {
		return nil, err
	}

	// A live router re-renders after the navigation; redirecting to the
	// location being rendered would loop.
	if !ctx.IsStatic() && samePath(loc, ctx.Location) {
		return nil, nil
	}

	if r.Push {
		err = ctx.History.Push(loc, nil)
	} else {
		err = ctx.History.Replace(loc, nil)
	}
	return nil, err
}

func (r *Redirect) target() (location.Input, error) {
	if r.computedMatch == nil || len(r.computedMatch.Params) == 0 {
		return r.To, nil
	}
	switch to := r.To.(type) {
	case location.Path:
		p := location.Parse(string(to))
		pathname, err := match.GeneratePath(p.Pathname, r.computedMatch.Params)
		if err != nil {
			return nil, err
		}
		p.Pathname = pathname
		return p, nil
	case location.Partial:
		if to.Pathname == "" {
			return to, nil
		}
		pathname, err := match.GeneratePath(to.Pathname, r.computedMatch.Params)
		if err != nil {
			return nil, err
		}
		to.Pathname = pathname
		return to, nil
	}
	return r.To, nil
}

func (r *Redirect) withMatch(m *match.Match) *Redirect {
	next := *r
	next.computedMatch = m
	return &next
}

func samePath(a, b location.Location) bool {
	return a.Pathname == b.Pathname && a.Search == b.Search && a.Hash == b.Hash
}
