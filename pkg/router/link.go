package router

import (
	"strings"

	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/match"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// Link renders an anchor for client-side navigation. The live client
// intercepts clicks on anchors carrying data-link and sends a navigate
// frame instead of loading the page; data-replace asks for a replace.
type Link struct {
	To       location.Input
	Replace  bool
	Class    string
	Attrs    []vdom.Attr
	Children []any
}

// LinkTo is a Link to path.
func LinkTo(path string, children ...any) *vdom.VNode {
	return vdom.Comp(&Link{To: location.Path(path), Children: children})
}

// Render implements vdom.Component.
func (l *Link) Render(s *vdom.Scope) (*vdom.VNode, error) {
	ctx, err := requireContext(s, "Link")
	if err != nil {
		return nil, err
	}
	href, _, err := l.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return l.anchor(href, l.Class, nil), nil
}

// resolve returns the href and the target location. Absolute string paths
// are kept as written; anything else resolves against the current location.
func (l *Link) resolve(ctx *Context) (string, location.Location, error) {
	if p, ok := l.To.(location.Path); ok && strings.HasPrefix(string(p), "/") {
		target, err := location.Create(p, nil)
		if err != nil {
			return "", location.Location{}, err
		}
		return ctx.History.CreateHref(p), target, nil
	}
	to := l.To
	if to == nil {
		to = location.Path("")
	}
	target, err := location.Create(to, &ctx.Location)
	if err != nil {
		return "", location.Location{}, err
	}
	return ctx.History.CreateHref(target), target, nil
}

func (l *Link) anchor(href, class string, extra []vdom.Attr) *vdom.VNode {
	args := make([]any, 0, len(l.Attrs)+len(extra)+len(l.Children)+4)
	args = append(args, vdom.Href(href), vdom.Data("link", ""))
	if l.Replace {
		args = append(args, vdom.Data("replace", ""))
	}
	if class != "" {
		args = append(args, vdom.Class(class))
	}
	for _, a := range l.Attrs {
		args = append(args, a)
	}
	for _, a := range extra {
		args = append(args, a)
	}
	args = append(args, l.Children...)
	return vdom.A(args...)
}

// NavLink is a Link that is styled when its target matches the current
// location.
type NavLink struct {
	Link

	// ActiveClass is added while active. Defaults to "active".
	ActiveClass string

	// AriaCurrent is the aria-current value while active. Defaults to "page".
	AriaCurrent string

	Exact     bool
	Strict    bool
	Sensitive bool

	// IsActive overrides the default check, which is m != nil.
	IsActive func(m *match.Match, loc location.Location) bool
}

// Render implements vdom.Component.
func (n *NavLink) Render(s *vdom.Scope) (*vdom.VNode, error) {
	ctx, err := requireContext(s, "NavLink")
	if err != nil {
		return nil, err
	}
	href, target, err := n.resolve(ctx)
	if err != nil {
		return nil, err
	}

	var m *match.Match
	if target.Pathname != "" {
		m, err = match.Path(ctx.Location.Pathname, match.Options{
			Path:      match.Escape(target.Pathname),
			Exact:     n.Exact,
			Strict:    n.Strict,
			Sensitive: n.Sensitive,
		})
		if err != nil {
			return nil, err
		}
	}
	active := m != nil
	if n.IsActive != nil {
		active = n.IsActive(m, ctx.Location)
	}
	if !active {
		return n.anchor(href, n.Class, nil), nil
	}

	activeClass := n.ActiveClass
	if activeClass == "" {
		activeClass = "active"
	}
	aria := n.AriaCurrent
	if aria == "" {
		aria = "page"
	}
	class := strings.TrimSpace(n.Class + " " + activeClass)
	return n.anchor(href, class, []vdom.Attr{vdom.AriaCurrent(aria)}), nil
}
