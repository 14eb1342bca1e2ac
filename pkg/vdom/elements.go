package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}

	var children []any
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		default:
			children = append(children, arg)
		}
	}
	node.Children = appendChildren(make([]*VNode, 0, len(children)), children)
	return node
}

func (n *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			n.Key = s
		}
		return
	}
	n.Props[a.Key] = a.Value
}

// appendChildren converts child arguments to nodes. Unknown argument types
// are ignored so conditional helpers can return nil of any type.
func appendChildren(dst []*VNode, args []any) []*VNode {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				dst = append(dst, v)
			}
		case []*VNode:
			for _, child := range v {
				if child != nil {
					dst = append(dst, child)
				}
			}
		case Component:
			if n := Comp(v); n != nil {
				dst = append(dst, n)
			}
		case string:
			dst = append(dst, Text(v))
		}
	}
	return dst
}

// Document elements

func Html(args ...any) *VNode   { return createElement("html", args) }
func Head(args ...any) *VNode   { return createElement("head", args) }
func Body(args ...any) *VNode   { return createElement("body", args) }
func Title(args ...any) *VNode  { return createElement("title", args) }
func Meta(args ...any) *VNode   { return createElement("meta", args) }
func LinkEl(args ...any) *VNode { return createElement("link", args) }
func Script(args ...any) *VNode { return createElement("script", args) }
func Style(args ...any) *VNode  { return createElement("style", args) }

// Sectioning elements

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Article(args ...any) *VNode { return createElement("article", args) }
func Aside(args ...any) *VNode   { return createElement("aside", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }

// Content elements

func Div(args ...any) *VNode    { return createElement("div", args) }
func P(args ...any) *VNode      { return createElement("p", args) }
func Span(args ...any) *VNode   { return createElement("span", args) }
func Pre(args ...any) *VNode    { return createElement("pre", args) }
func Ul(args ...any) *VNode     { return createElement("ul", args) }
func Ol(args ...any) *VNode     { return createElement("ol", args) }
func Li(args ...any) *VNode     { return createElement("li", args) }
func Hr(args ...any) *VNode     { return createElement("hr", args) }
func Br(args ...any) *VNode     { return createElement("br", args) }
func A(args ...any) *VNode      { return createElement("a", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Em(args ...any) *VNode     { return createElement("em", args) }
func Code(args ...any) *VNode   { return createElement("code", args) }
func Img(args ...any) *VNode    { return createElement("img", args) }

// Form elements

func Form(args ...any) *VNode   { return createElement("form", args) }
func Input(args ...any) *VNode  { return createElement("input", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
func Label(args ...any) *VNode  { return createElement("label", args) }

// Element creates an element with any tag name.
func Element(tag string, args ...any) *VNode {
	return createElement(tag, args)
}
