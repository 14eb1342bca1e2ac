package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <a>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
	KindProvider               // Scope value for the children
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	case KindProvider:
		return "Provider"
	default:
		return "Unknown"
	}
}

// VNode is a node of the component tree.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes
	Children []*VNode  // Child nodes
	Key      string    // Optional identity among siblings
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent

	// ProvideKey and ProvideValue are set on KindProvider nodes.
	ProvideKey   any
	ProvideValue any
}

// Props holds attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode in a scope.
// Returning a nil node renders nothing.
type Component interface {
	Render(s *Scope) (*VNode, error)
}

// ComponentFunc adapts a render function to Component.
type ComponentFunc func(s *Scope) (*VNode, error)

// Render implements Component.
func (f ComponentFunc) Render(s *Scope) (*VNode, error) {
	return f(s)
}

// Func creates a component from a render function that cannot fail.
func Func(render func(s *Scope) *VNode) Component {
	return ComponentFunc(func(s *Scope) (*VNode, error) {
		return render(s), nil
	})
}

// Comp wraps a component in a node.
func Comp(c Component) *VNode {
	if c == nil {
		return nil
	}
	return &VNode{Kind: KindComponent, Comp: c}
}

// Provide makes value available under key to every descendant of children.
func Provide(key, value any, children ...any) *VNode {
	node := &VNode{
		Kind:         KindProvider,
		ProvideKey:   key,
		ProvideValue: value,
	}
	node.Children = appendChildren(nil, children)
	return node
}
