// Package router provides history-backed router components for vdom trees.
//
// A router puts a *Context (history, location, match and, for server
// renders, the StaticContext) into the render scope. Descendants read it
// with FromScope; Route, Switch, Redirect, Prompt, Link and NavLink do so
// for you and fail with error E102 when rendered outside a router.
//
// # Router Variants
//
//	NewRouter(h, children...)             any history.History
//	NewMemoryRouter(props, children...)   in-memory entries, for tests and CLIs
//	NewStaticRouter(props, children...)   one server render; records redirects
//	NewBrowserRouter(props, children...)  mirrors a live browser's history
//	NewHashRouter(props, children...)     mirrors a live browser's URL hash
//
// The managed variants create their own history. Passing History to one of
// them logs a single warning and the value is ignored; use NewRouter to
// supply a custom history.
//
// # Server Rendering
//
//	ctx := &history.StaticContext{}
//	sr, err := router.NewStaticRouter(router.StaticRouterProps{
//	    Location: location.Path(r.URL.RequestURI()),
//	    Context:  ctx,
//	}, app)
//	html, err := renderer.RenderToString(sr.Node(), scope)
//	if ev, ok := ctx.Redirect(); ok {
//	    http.Redirect(w, r, ev.URL, http.StatusFound)
//	}
//
// A Redirect rendered during the pass records into ctx instead of moving the
// history. When several redirects render, the last one wins.
package router
