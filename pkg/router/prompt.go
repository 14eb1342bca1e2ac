package router

import (
	"sync"

	"github.com/vango-dev/vrouter/pkg/history"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// Prompt asks for confirmation before the router's history leaves the
// current location. It is a no-op during a server render and while
// Disabled is set.
type Prompt struct {
	Message string

	// MessageFunc, when set, takes precedence over Message. Returning ""
	// allows the transition.
	MessageFunc func(loc location.Location, action history.Action) string

	Disabled bool
}

// Render implements vdom.Component. It never produces output.
func (p *Prompt) Render(s *vdom.Scope) (*vdom.VNode, error) {
	ctx, err := requireContext(s, "Prompt")
	if err != nil {
		return nil, err
	}
	if p.Disabled || ctx.IsStatic() {
		return nil, nil
	}

	fn := p.MessageFunc
	if fn == nil {
		message := p.Message
		fn = func(location.Location, history.Action) string { return message }
	}
	if ctx.prompts != nil {
		ctx.prompts.add(fn)
	}
	return nil, nil
}

// promptSet collects the prompts rendered below one Router during a render
// pass. A single combined prompt is installed on the history the first
// time a Prompt renders.
type promptSet struct {
	mu      sync.Mutex
	history history.History
	fns     []func(location.Location, history.Action) string
	unblock func()
}

// begin starts a new render pass.
func (p *promptSet) begin() {
	p.mu.Lock()
	p.fns = nil
	p.mu.Unlock()
}

func (p *promptSet) add(fn func(location.Location, history.Action) string) {
	p.mu.Lock()
	p.fns = append(p.fns, fn)
	install := p.unblock == nil
	if install {
		p.unblock = func() {}
	}
	p.mu.Unlock()

	if install {
		unblock := p.history.Block(p.message)
		p.mu.Lock()
		p.unblock = unblock
		p.mu.Unlock()
	}
}

// message returns the first non-empty message of the current pass.
func (p *promptSet) message(loc location.Location, action history.Action) string {
	p.mu.Lock()
	fns := append([]func(location.Location, history.Action) string(nil), p.fns...)
	p.mu.Unlock()

	for _, fn := range fns {
		if msg := fn(loc, action); msg != "" {
			return msg
		}
	}
	return ""
}

// release drops the collected prompts and unblocks the history.
func (p *promptSet) release() {
	p.mu.Lock()
	p.fns = nil
	unblock := p.unblock
	p.unblock = nil
	p.mu.Unlock()
	if unblock != nil {
		unblock()
	}
}
