// Package vdom is the host component model router components render into.
//
// A tree is built from VNodes: elements, text, fragments, raw HTML,
// components and providers. Components receive the Scope of their position in
// the tree; a provider node extends that scope for its children. There is no
// diffing and no hydration; pkg/render turns a tree into HTML in one pass.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P("Content"),
//	)
//
// # Scope
//
// A Scope is an immutable linked list of key/value pairs plus a
// context.Context. With returns a child scope; Value looks a key up through
// the parents. Keys should be unexported types, as with context.WithValue.
package vdom
