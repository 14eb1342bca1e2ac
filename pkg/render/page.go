package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/vrouter/pkg/vdom"
)

// DefaultRootID is the id of the element the page body is rendered into.
const DefaultRootID = "app"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// RootID is the id of the element wrapping Body. Live sessions replace
	// its contents. Defaults to DefaultRootID.
	RootID string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Scripts are appended to the end of the body.
	Scripts []ScriptTag
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Property  string
	HTTPEquiv string
	Content   string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Module bool
	Defer  bool

	// Inline is written verbatim; it must be trusted.
	Inline string
}

// RenderPage renders a complete HTML document to the given writer. The body
// is rendered before anything is written, so a component error leaves w
// untouched.
func (r *Renderer) RenderPage(w io.Writer, page PageData, scope *vdom.Scope) error {
	body, err := r.RenderToString(page.Body, scope)
	if err != nil {
		return err
	}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	rootID := page.RootID
	if rootID == "" {
		rootID = DefaultRootID
	}

	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
		vdom.If(page.Title != "", vdom.Title(page.Title)),
		vdom.Range(page.Meta, func(m MetaTag, _ int) *vdom.VNode {
			return vdom.Meta(
				optional("name", m.Name),
				optional("property", m.Property),
				optional("http-equiv", m.HTTPEquiv),
				optional("content", m.Content),
			)
		}),
		vdom.Range(page.StyleSheets, func(href string, _ int) *vdom.VNode {
			return vdom.LinkEl(vdom.Rel("stylesheet"), vdom.Href(href))
		}),
	)

	scripts := vdom.Range(page.Scripts, func(s ScriptTag, _ int) *vdom.VNode {
		typ := vdom.Attr{}
		if s.Module {
			typ = vdom.Type("module")
		}
		return vdom.Script(
			optional("src", s.Src),
			typ,
			vdom.Prop("defer", s.Defer),
			vdom.If(s.Inline != "", vdom.Raw(s.Inline)),
		)
	})

	doc := vdom.Html(
		vdom.Lang(lang),
		head,
		vdom.Body(
			vdom.Div(vdom.ID(rootID), vdom.Raw(body)),
			scripts,
		),
	)

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, doc, scope); err != nil {
		return fmt.Errorf("render page shell: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// optional returns an attribute only when value is non-empty.
func optional(key, value string) vdom.Attr {
	if value == "" {
		return vdom.Attr{}
	}
	return vdom.Prop(key, value)
}
