package location

import "strings"

// Parse splits a raw path into pathname, search and hash.
// Everything before the first "?" or "#" is the pathname, the "?..." segment up
// to "#" is the search, and the trailing "#..." is the hash. Nothing is decoded
// and missing parts stay empty.
func Parse(path string) Partial {
	var p Partial

	pathname := path
	if i := strings.IndexByte(pathname, '#'); i != -1 {
		p.Hash = pathname[i:]
		pathname = pathname[:i]
	}
	if i := strings.IndexByte(pathname, '?'); i != -1 {
		p.Search = pathname[i:]
		pathname = pathname[:i]
	}
	p.Pathname = pathname

	p.Search = normalizeSearch(p.Search)
	p.Hash = normalizeHash(p.Hash)
	return p
}

// CreatePath serializes a location back into "pathname?search#hash".
func CreatePath(l Location) string {
	var b strings.Builder
	b.Grow(len(l.Pathname) + len(l.Search) + len(l.Hash) + 2)

	pathname := l.Pathname
	if pathname == "" {
		pathname = "/"
	}
	b.WriteString(pathname)
	b.WriteString(normalizeSearch(l.Search))
	b.WriteString(normalizeHash(l.Hash))
	return b.String()
}

func normalizeSearch(search string) string {
	return normalizePrefixed(search, '?')
}

func normalizeHash(hash string) string {
	return normalizePrefixed(hash, '#')
}

// normalizePrefixed drops a lone prefix character and adds a missing one.
func normalizePrefixed(s string, prefix byte) string {
	if s == "" || (len(s) == 1 && s[0] == prefix) {
		return ""
	}
	if s[0] != prefix {
		return string(prefix) + s
	}
	return s
}
