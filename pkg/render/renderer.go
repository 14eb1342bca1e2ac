package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/vrouter/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer turns a VNode tree into HTML. Components are rendered
// synchronously, depth first, in document order. A Renderer holds no per-render
// state and may be shared.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode, scope *vdom.Scope) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node, scope); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer. The first
// component error stops the render and is returned unchanged.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode, scope *vdom.Scope) error {
	if scope == nil {
		scope = vdom.NewScope(nil)
	}
	return r.renderNode(w, node, scope, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, scope *vdom.Scope, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, scope, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		return r.renderChildren(w, node.Children, scope, depth)
	case vdom.KindProvider:
		return r.renderChildren(w, node.Children, scope.With(node.ProvideKey, node.ProvideValue), depth)
	case vdom.KindComponent:
		return r.renderComponent(w, node, scope, depth)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func (r *Renderer) renderChildren(w io.Writer, children []*vdom.VNode, scope *vdom.Scope, depth int) error {
	for _, child := range children {
		if err := r.renderNode(w, child, scope, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderComponent renders a component's output in the component's scope.
func (r *Renderer) renderComponent(w io.Writer, node *vdom.VNode, scope *vdom.Scope, depth int) error {
	if node.Comp == nil {
		return nil
	}
	output, err := node.Comp.Render(scope)
	if err != nil {
		return err
	}
	return r.renderNode(w, output, scope, depth)
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, scope *vdom.Scope, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := renderAttributes(w, node.Props); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := !isInlineElement(tag) && hasElementChild(node.Children)
	if r.config.Pretty && block {
		io.WriteString(w, "\n")
	}
	if err := r.renderChildren(w, node.Children, scope, depth+1); err != nil {
		return err
	}
	if r.config.Pretty && block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

func hasElementChild(children []*vdom.VNode) bool {
	for _, c := range children {
		if c != nil && c.Kind != vdom.KindText {
			return true
		}
	}
	return false
}

// renderAttributes writes attributes in sorted order for deterministic output.
func renderAttributes(w io.Writer, props vdom.Props) error {
	if len(props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		if strings.HasPrefix(key, "_") || key == "key" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		s := attrToString(value)
		if s == "" {
			// Valueless attributes such as data-link are written bare.
			if value == "" {
				if _, err := fmt.Fprintf(w, " %s", key); err != nil {
					return err
				}
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s)); err != nil {
			return err
		}
	}
	return nil
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
