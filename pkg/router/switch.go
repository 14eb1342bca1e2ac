package router

import (
	"fmt"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/match"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// SwitchComponent renders the first child Route or Redirect that matches.
type SwitchComponent struct {
	// Location overrides the router location.
	Location location.Input
	Children []any
}

// Switch renders the first of children that matches the current location.
// Children must be *Route or *Redirect values, directly or as component
// nodes; fragments are flattened and nil children are skipped.
func Switch(children ...any) *vdom.VNode {
	return vdom.Comp(&SwitchComponent{Children: children})
}

// SwitchAt is Switch against loc instead of the router location.
func SwitchAt(loc location.Input, children ...any) *vdom.VNode {
	return vdom.Comp(&SwitchComponent{Location: loc, Children: children})
}

// Render implements vdom.Component.
func (sw *SwitchComponent) Render(s *vdom.Scope) (*vdom.VNode, error) {
	ctx, err := requireContext(s, "Switch")
	if err != nil {
		return nil, err
	}

	loc := ctx.Location
	if sw.Location != nil {
		loc, err = location.Create(sw.Location, &ctx.Location)
		if err != nil {
			return nil, err
		}
	}

	candidates, err := switchChildren(sw.Children, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		var opts match.Options
		switch c := c.(type) {
		case *Route:
			opts = match.Options{Path: c.Path, Paths: c.Paths, Exact: c.Exact, Strict: c.Strict, Sensitive: c.Sensitive}
		case *Redirect:
			opts = match.Options{Path: c.From, Exact: c.Exact, Strict: c.Strict, Sensitive: c.Sensitive}
		}

		m := ctx.Match
		if opts.Path != "" || len(opts.Paths) > 0 {
			m, err = match.Path(loc.Pathname, opts)
			if err != nil {
				return nil, err
			}
		}
		if m == nil {
			continue
		}

		switch c := c.(type) {
		case *Route:
			return vdom.Comp(c.withMatch(m, sw.Location)), nil
		case *Redirect:
			return vdom.Comp(c.withMatch(m)), nil
		}
	}
	return nil, nil
}

func switchChildren(children []any, out []vdom.Component) ([]vdom.Component, error) {
	for _, child := range children {
		switch c := child.(type) {
		case nil:
		case *Route:
			if c != nil {
				out = append(out, c)
			}
		case *Redirect:
			if c != nil {
				out = append(out, c)
			}
		case *vdom.VNode:
			if c == nil {
				continue
			}
			var err error
			out, err = switchNode(c, out)
			if err != nil {
				return nil, err
			}
		case []*vdom.VNode:
			for _, n := range c {
				if n == nil {
					continue
				}
				var err error
				out, err = switchNode(n, out)
				if err != nil {
					return nil, err
				}
			}
		case []any:
			var err error
			out, err = switchChildren(c, out)
			if err != nil {
				return nil, err
			}
		default:
			return nil, invalidSwitchChild(fmt.Sprintf("%T", child))
		}
	}
	return out, nil
}

func switchNode(n *vdom.VNode, out []vdom.Component) ([]vdom.Component, error) {
	switch n.Kind {
	case vdom.KindFragment:
		for _, child := range n.Children {
			if child == nil {
				continue
			}
			var err error
			out, err = switchNode(child, out)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	case vdom.KindComponent:
		switch c := n.Comp.(type) {
		case *Route, *Redirect:
			return append(out, c), nil
		}
		return nil, invalidSwitchChild(fmt.Sprintf("%T", n.Comp))
	case vdom.KindElement:
		return nil, invalidSwitchChild("<" + n.Tag + ">")
	}
	return nil, invalidSwitchChild(n.Kind.String())
}

func invalidSwitchChild(what string) error {
	return rerrors.New("E103").
		WithComponent("Switch").
		WithDetail(what + " is not a <Route> or <Redirect>")
}
