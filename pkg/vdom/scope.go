package vdom

import "context"

// Scope carries values down the tree during a render.
type Scope struct {
	ctx    context.Context
	parent *Scope
	key    any
	value  any
}

// NewScope returns a root scope bound to ctx.
func NewScope(ctx context.Context) *Scope {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Scope{ctx: ctx}
}

// Context returns the context the render runs under.
func (s *Scope) Context() context.Context {
	if s == nil {
		return context.Background()
	}
	return s.ctx
}

// With returns a child scope that maps key to value.
func (s *Scope) With(key, value any) *Scope {
	if s == nil {
		s = NewScope(nil)
	}
	return &Scope{ctx: s.ctx, parent: s, key: key, value: value}
}

// Lookup returns the nearest value stored under key.
func (s *Scope) Lookup(key any) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.parent != nil && cur.key == key {
			return cur.value, true
		}
	}
	return nil, false
}

// Value returns the nearest value stored under key, or nil.
func (s *Scope) Value(key any) any {
	v, _ := s.Lookup(key)
	return v
}
