package router

import "github.com/vango-dev/vrouter/pkg/vdom"

// Status sets the response status of a server render, typically from a
// not-found route. Outside a server render it only renders its children.
type Status struct {
	Code     int
	Children []any
}

// Render implements vdom.Component.
func (st *Status) Render(s *vdom.Scope) (*vdom.VNode, error) {
	ctx, err := requireContext(s, "Status")
	if err != nil {
		return nil, err
	}
	if ctx.StaticContext != nil {
		ctx.StaticContext.StatusCode = st.Code
	}
	return vdom.Fragment(st.Children...), nil
}
