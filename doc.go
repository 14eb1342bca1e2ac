// Package vrouter serves a route tree over HTTP.
//
// An App renders each request with a StaticRouter. A redirect made during
// the render becomes an HTTP redirect, a Status component sets the
// response status and everything else is written as an HTML document.
// With live navigation enabled the page also loads a small client that
// keeps the browser in sync with a server-side history over a websocket.
//
//	app := vrouter.New(vrouter.DefaultConfig(), func() *vdom.VNode {
//	    return router.Switch(
//	        &router.Route{Path: "/", Exact: true, RenderFunc: home},
//	        &router.Redirect{From: "/old", To: location.Path("/")},
//	    )
//	})
//	http.ListenAndServe(":3000", app.Handler())
package vrouter
