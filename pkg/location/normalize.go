package location

import "strings"

// Normalize turns a navigation target into a complete, decoded Location and
// strips basename from its pathname when the pathname starts with it.
//
// A *DecodeError is returned when the pathname holds a malformed escape.
func Normalize(in Input, basename string) (Location, error) {
	loc, err := Create(in, nil)
	if err != nil {
		return Location{}, err
	}
	return StripBasename(basename, loc), nil
}

// NormalizeOrRaw is Normalize for lenient callers: on a decode failure it
// returns the location with its raw pathname alongside the error.
func NormalizeOrRaw(in Input, basename string) (Location, error) {
	loc, err := Normalize(in, basename)
	if err == nil {
		return loc, nil
	}
	raw := fromPartial(in.AsPartial())
	if raw.Pathname == "" {
		raw.Pathname = "/"
	}
	return StripBasename(basename, raw), err
}

// Create builds a Location from in. When current is non-nil, a missing
// pathname takes the current one and a relative pathname is resolved against
// it; otherwise a missing pathname becomes "/".
//
// A Path or Partial pathname is decoded. A Location is already decoded and is
// taken as is.
func Create(in Input, current *Location) (Location, error) {
	loc := fromPartial(in.AsPartial())

	if _, decoded := in.(Location); !decoded {
		pathname, err := DecodePathname(loc.Pathname)
		if err != nil {
			return Location{}, err
		}
		loc.Pathname = pathname
	}

	switch {
	case current != nil && loc.Pathname == "":
		loc.Pathname = current.Pathname
	case current != nil && !strings.HasPrefix(loc.Pathname, "/"):
		loc.Pathname = ResolvePathname(loc.Pathname, current.Pathname)
	case loc.Pathname == "":
		loc.Pathname = "/"
	}
	return loc, nil
}

func fromPartial(p Partial) Location {
	return Location{
		Pathname: p.Pathname,
		Search:   normalizeSearch(p.Search),
		Hash:     normalizeHash(p.Hash),
		State:    p.State,
		Key:      p.Key,
	}
}

// ResolvePathname resolves to against the directory of from, the way a
// browser resolves a relative link. Dot segments are applied and a trailing
// slash is kept when to ends in "/", "." or "..".
func ResolvePathname(to, from string) string {
	if to == "" {
		return from
	}
	if strings.HasPrefix(to, "/") {
		return to
	}

	// stack[0] is the empty root segment so Join yields a leading slash.
	stack := []string{""}
	if from != "" {
		fromParts := strings.Split(strings.TrimPrefix(from, "/"), "/")
		stack = append(stack, fromParts[:len(fromParts)-1]...)
	}

	parts := strings.Split(to, "/")
	last := parts[len(parts)-1]
	trailing := last == "" || last == "." || last == ".."

	for _, part := range parts {
		switch part {
		case "", ".":
		case "..":
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, part)
		}
	}

	result := strings.Join(stack, "/")
	if trailing && !strings.HasSuffix(result, "/") {
		result += "/"
	}
	return AddLeadingSlash(result)
}
