// Package site turns a declarative configuration into a route tree.
package site

import (
	"sort"
	"strings"

	"github.com/vango-dev/vrouter/internal/config"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/router"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// DefaultNotFound is rendered when no route matches and the configuration
// has no not-found text.
const DefaultNotFound = "Page not found"

// Root returns a function building the tree for cfg. Routes are placed in
// a Switch in configuration order, followed by a catch-all that renders
// the not-found text with status 404.
func Root(cfg *config.Config) func() *vdom.VNode {
	children := make([]any, 0, len(cfg.Routes)+1)
	for _, r := range cfg.Routes {
		children = append(children, routeChildren(r)...)
	}

	notFound := cfg.NotFound
	if notFound == "" {
		notFound = DefaultNotFound
	}
	children = append(children, &router.Route{
		RenderFunc: func(*router.Context) *vdom.VNode {
			return vdom.Comp(&router.Status{
				Code:     404,
				Children: []any{vdom.Main(vdom.P(notFound))},
			})
		},
	})

	return func() *vdom.VNode { return router.Switch(children...) }
}

func routeChildren(r config.RouteConfig) []any {
	if r.Redirect != "" {
		var out []any
		for _, from := range routePaths(r) {
			out = append(out, &router.Redirect{
				From:      from,
				To:        location.Path(r.Redirect),
				Push:      r.Push,
				Exact:     r.Exact,
				Strict:    r.Strict,
				Sensitive: r.Sensitive,
			})
		}
		return out
	}

	page := r
	return []any{&router.Route{
		Path:      r.Path,
		Paths:     r.Paths,
		Exact:     r.Exact,
		Strict:    r.Strict,
		Sensitive: r.Sensitive,
		RenderFunc: func(ctx *router.Context) *vdom.VNode {
			return renderPage(page, ctx.Params())
		},
	}}
}

func routePaths(r config.RouteConfig) []string {
	var paths []string
	if r.Path != "" {
		paths = append(paths, r.Path)
	}
	return append(paths, r.Paths...)
}

func renderPage(r config.RouteConfig, params map[string]string) *vdom.VNode {
	fill := Substitute(params)

	var nav *vdom.VNode
	if len(r.Links) > 0 {
		items := make([]*vdom.VNode, 0, len(r.Links))
		for _, l := range r.Links {
			label := l.Label
			if label == "" {
				label = l.To
			}
			items = append(items, vdom.Li(vdom.Comp(&router.NavLink{
				Link:  router.Link{To: location.Path(fill(l.To)), Children: []any{fill(label)}},
				Exact: l.Exact,
			})))
		}
		nav = vdom.Nav(vdom.Ul(items))
	}

	page := vdom.Main(
		nav,
		vdom.If(r.Title != "", vdom.H1(fill(r.Title))),
		vdom.When(r.Content != "", func() *vdom.VNode { return vdom.P(fill(r.Content)) }),
	)
	if r.Status != 0 {
		return vdom.Comp(&router.Status{Code: r.Status, Children: []any{page}})
	}
	return page
}

// Substitute returns a function replacing "{name}" with the value of the
// parameter name.
func Substitute(params map[string]string) func(string) string {
	if len(params) == 0 {
		return func(s string) string { return s }
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", params[name])
	}
	return strings.NewReplacer(pairs...).Replace
}
