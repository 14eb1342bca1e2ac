package location

import "reflect"

// Location is a normalized URL decomposition.
type Location struct {
	Pathname string `json:"pathname"`
	Search   string `json:"search"`
	Hash     string `json:"hash"`

	// State is opaque data attached by the navigation that produced the location.
	State any `json:"state,omitempty"`

	// Key identifies a history entry. Static locations have no key.
	Key string `json:"key,omitempty"`
}

// Partial is a location whose fields may be missing.
type Partial struct {
	Pathname string `json:"pathname,omitempty" yaml:"pathname,omitempty"`
	Search   string `json:"search,omitempty" yaml:"search,omitempty"`
	Hash     string `json:"hash,omitempty" yaml:"hash,omitempty"`
	State    any    `json:"state,omitempty" yaml:"state,omitempty"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Path is a raw "/pathname?search#hash" navigation target.
type Path string

// Input is a navigation target: a Path, a Partial or a Location.
type Input interface {
	AsPartial() Partial
}

// AsPartial splits the raw string into its components without decoding.
func (p Path) AsPartial() Partial { return Parse(string(p)) }

// AsPartial returns p unchanged.
func (p Partial) AsPartial() Partial { return p }

// AsPartial returns the location as a partial record.
func (l Location) AsPartial() Partial { return Partial(l) }

// String serializes the location without a basename.
func (l Location) String() string { return CreatePath(l) }

// Equal reports whether two locations describe the same entry.
func Equal(a, b Location) bool {
	return a.Pathname == b.Pathname &&
		a.Search == b.Search &&
		a.Hash == b.Hash &&
		a.Key == b.Key &&
		reflect.DeepEqual(a.State, b.State)
}

// WithState returns in with its state replaced, unless state is nil.
func WithState(in Input, state any) Input {
	if state == nil {
		return in
	}
	if l, ok := in.(Location); ok {
		l.State = state
		return l
	}
	p := in.AsPartial()
	p.State = state
	return p
}
