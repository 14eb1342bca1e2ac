package router

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vango-dev/vrouter/pkg/history"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/match"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// ErrNoHistory is returned when a Router renders without a history.
var ErrNoHistory = errors.New("router: no history")

// Router is the base router. It puts a Context built from History into the
// scope of its children.
//
// Prompts rendered below a Router belong to it, so the same *Router must be
// rendered again for a later pass to replace them. Call ReleasePrompts when
// a long-lived router is discarded.
type Router struct {
	History       history.History
	StaticContext *history.StaticContext
	Children      []any

	prompts *promptSet
}

// NewRouter returns a router node for a caller-owned history.
func NewRouter(h history.History, children ...any) *vdom.VNode {
	return vdom.Comp(&Router{History: h, Children: children})
}

// Render implements vdom.Component.
func (r *Router) Render(s *vdom.Scope) (*vdom.VNode, error) {
	if r.History == nil {
		return nil, ErrNoHistory
	}
	loc := r.History.Location()
	ctx := &Context{
		History:       r.History,
		Location:      loc,
		Match:         match.Root(loc.Pathname),
		StaticContext: r.StaticContext,
	}
	if !ctx.IsStatic() {
		if r.prompts == nil || r.prompts.history != r.History {
			r.ReleasePrompts()
			r.prompts = &promptSet{history: r.History}
		}
		r.prompts.begin()
		ctx.prompts = r.prompts
	}
	return ctx.provide(r.Children...), nil
}

// ReleasePrompts removes the prompts rendered below r and unblocks its
// history.
func (r *Router) ReleasePrompts() {
	if r.prompts != nil {
		r.prompts.release()
	}
}

func warnIgnoredHistory(logger *slog.Logger, component string) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(fmt.Sprintf(
		"<%s> ignores the History option. To use a custom history, use router.NewRouter instead of router.New%s.",
		component, component))
}

// MemoryRouterProps configures a MemoryRouter.
type MemoryRouterProps struct {
	InitialEntries      []location.Input
	InitialIndex        *int
	KeyLength           int
	GetUserConfirmation history.ConfirmFunc

	// History is ignored; a warning is logged when it is set.
	History history.History
	Logger  *slog.Logger
}

// MemoryRouter keeps its entries in memory.
type MemoryRouter struct {
	history *history.MemoryHistory
	base    *Router
}

// NewMemoryRouter creates a router with its own memory history.
func NewMemoryRouter(props MemoryRouterProps, children ...any) (*MemoryRouter, error) {
	if props.History != nil {
		warnIgnoredHistory(props.Logger, "MemoryRouter")
	}
	h, err := history.NewMemory(history.MemoryOptions{
		InitialEntries:      props.InitialEntries,
		InitialIndex:        props.InitialIndex,
		KeyLength:           props.KeyLength,
		GetUserConfirmation: props.GetUserConfirmation,
		Logger:              props.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &MemoryRouter{history: h, base: &Router{History: h, Children: children}}, nil
}

// History returns the router's history.
func (r *MemoryRouter) History() *history.MemoryHistory { return r.history }

// Node returns the router as a vdom node.
func (r *MemoryRouter) Node() *vdom.VNode { return vdom.Comp(r) }

// Render implements vdom.Component.
func (r *MemoryRouter) Render(s *vdom.Scope) (*vdom.VNode, error) {
	return r.base.Render(s)
}

// Release unblocks the history from the router's prompts.
func (r *MemoryRouter) Release() { r.base.ReleasePrompts() }

// StaticRouterProps configures a StaticRouter.
type StaticRouterProps struct {
	Basename string

	// Location defaults to "/".
	Location location.Input

	// Context receives the navigation made during the render. A fresh one
	// is created when nil.
	Context *history.StaticContext

	// History is ignored; a warning is logged when it is set.
	History history.History
	Logger  *slog.Logger
}

// StaticRouter renders a single location on the server.
type StaticRouter struct {
	history *history.StaticHistory
	context *history.StaticContext
	base    *Router
}

// NewStaticRouter creates a router for one server render.
func NewStaticRouter(props StaticRouterProps, children ...any) (*StaticRouter, error) {
	if props.History != nil {
		warnIgnoredHistory(props.Logger, "StaticRouter")
	}
	sc := props.Context
	if sc == nil {
		sc = &history.StaticContext{}
	}
	h, err := history.NewStatic(history.StaticOptions{
		Basename: props.Basename,
		Location: props.Location,
		Context:  sc,
		Logger:   props.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &StaticRouter{
		history: h,
		context: sc,
		base:    &Router{History: h, StaticContext: sc, Children: children},
	}, nil
}

// History returns the router's history.
func (r *StaticRouter) History() *history.StaticHistory { return r.history }

// Context returns the context navigation is recorded into.
func (r *StaticRouter) Context() *history.StaticContext { return r.context }

// Node returns the router as a vdom node.
func (r *StaticRouter) Node() *vdom.VNode { return vdom.Comp(r) }

// Render implements vdom.Component.
func (r *StaticRouter) Render(s *vdom.Scope) (*vdom.VNode, error) {
	return r.base.Render(s)
}

// BrowserRouterProps configures a BrowserRouter.
type BrowserRouterProps struct {
	Basename            string
	ForceRefresh        bool
	KeyLength           int
	GetUserConfirmation history.ConfirmFunc
	Initial             location.Input
	Driver              history.Driver

	// History is ignored; a warning is logged when it is set.
	History history.History
	Logger  *slog.Logger
}

// BrowserRouter follows a remote browser's session history.
type BrowserRouter struct {
	history *history.BrowserHistory
	base    *Router
}

// NewBrowserRouter creates a router with its own browser history.
func NewBrowserRouter(props BrowserRouterProps, children ...any) (*BrowserRouter, error) {
	if props.History != nil {
		warnIgnoredHistory(props.Logger, "BrowserRouter")
	}
	h, err := history.NewBrowser(history.BrowserOptions{
		Basename:            props.Basename,
		ForceRefresh:        props.ForceRefresh,
		KeyLength:           props.KeyLength,
		GetUserConfirmation: props.GetUserConfirmation,
		Initial:             props.Initial,
		Driver:              props.Driver,
		Logger:              props.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &BrowserRouter{history: h, base: &Router{History: h, Children: children}}, nil
}

// History returns the router's history.
func (r *BrowserRouter) History() *history.BrowserHistory { return r.history }

// Node returns the router as a vdom node.
func (r *BrowserRouter) Node() *vdom.VNode { return vdom.Comp(r) }

// Render implements vdom.Component.
func (r *BrowserRouter) Render(s *vdom.Scope) (*vdom.VNode, error) {
	return r.base.Render(s)
}

// Release unblocks the history from the router's prompts.
func (r *BrowserRouter) Release() { r.base.ReleasePrompts() }

// HashRouterProps configures a HashRouter.
type HashRouterProps struct {
	Basename            string
	HashType            history.HashType
	GetUserConfirmation history.ConfirmFunc
	Initial             string
	Driver              history.Driver

	// History is ignored; a warning is logged when it is set.
	History history.History
	Logger  *slog.Logger
}

// HashRouter follows a remote browser's URL hash.
type HashRouter struct {
	history *history.HashHistory
	base    *Router
}

// NewHashRouter creates a router with its own hash history.
func NewHashRouter(props HashRouterProps, children ...any) (*HashRouter, error) {
	if props.History != nil {
		warnIgnoredHistory(props.Logger, "HashRouter")
	}
	h, err := history.NewHash(history.HashOptions{
		Basename:            props.Basename,
		HashType:            props.HashType,
		GetUserConfirmation: props.GetUserConfirmation,
		Initial:             props.Initial,
		Driver:              props.Driver,
		Logger:              props.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &HashRouter{history: h, base: &Router{History: h, Children: children}}, nil
}

// History returns the router's history.
func (r *HashRouter) History() *history.HashHistory { return r.history }

// Node returns the router as a vdom node.
func (r *HashRouter) Node() *vdom.VNode { return vdom.Comp(r) }

// Render implements vdom.Component.
func (r *HashRouter) Render(s *vdom.Scope) (*vdom.VNode, error) {
	return r.base.Render(s)
}

// Release unblocks the history from the router's prompts.
func (r *HashRouter) Release() { r.base.ReleasePrompts() }
