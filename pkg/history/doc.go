// Package history implements the navigation state behind every router variant.
//
// A History exposes the current Location, push/replace/go navigation, href
// construction and synchronous change listeners. Four implementations are
// provided:
//
//   - MemoryHistory keeps its own entry stack (tests, non-browser sessions).
//   - StaticHistory never moves; pushes and replaces are reported to listeners
//     so a server can inspect them after a render pass.
//   - BrowserHistory mirrors window.history for a connected client, sending
//     pushState/replaceState commands through a Driver.
//   - HashHistory mirrors window.location.hash the same way.
//
// # Redirect reporting
//
// For server rendering, a Reporter attached to a StaticHistory records the last
// navigation into a caller-owned StaticContext:
//
//	sc := &history.StaticContext{}
//	h, _ := history.NewStatic(history.StaticOptions{
//	    Basename: "/the-base",
//	    Location: location.Path(r.URL.RequestURI()),
//	    Context:  sc,
//	})
//	_ = h.Replace(location.Path("/somewhere-else"), nil)
//	// sc.Action == history.ActionReplace
//	// sc.URL    == "/the-base/somewhere-else"
//
// Listeners run synchronously in registration order, once per transition.
package history
