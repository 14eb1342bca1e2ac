// Package live keeps a browser's session history in sync with a server-side
// router over a websocket.
//
// The server owns a BrowserHistory or HashHistory per connection. The page
// loads the client script, which opens the socket and reports link clicks
// and back/forward moves. Every history change on the server re-renders
// the root and sends the HTML back, while pushes and replaces are mirrored
// into the real browser history.
//
// # Frames
//
// Frames are JSON text messages.
//
//	client -> server
//	  {"type":"navigate","url":"/docs/intro","replace":false}
//	  {"type":"pop","url":"/docs","key":"ab12cd","state":null}
//
//	server -> client
//	  {"type":"render","html":"..."}
//	  {"type":"push","url":"/docs/intro","key":"ab12cd"}
//	  {"type":"replace","url":"/docs/intro","key":"ab12cd"}
//	  {"type":"go","delta":-1}
//	  {"type":"reload","url":"/docs/intro"}
//	  {"type":"error","error":"..."}
package live
