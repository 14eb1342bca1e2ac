// Package render provides server-side rendering of vdom trees.
//
// The renderer walks a tree depth first, renders every component in the scope
// of its position, and writes HTML with escaped text and attributes:
//
//   - void elements (input, br, img, ...) have no closing tag
//   - boolean attributes (disabled, checked, ...) are written bare when true
//   - attributes are sorted for deterministic output
//   - provider nodes extend the scope of their children
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node, vdom.NewScope(ctx))
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Body:  bodyNode,
//	    Title: "My Page",
//	}, scope)
//
// # Security
//
// All text content is escaped by default. Raw HTML can be inserted using
// KindRaw nodes, but should only be used with trusted content.
package render
