package location

import "strings"

// AddLeadingSlash prefixes path with "/" unless it already starts with one.
func AddLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// StripLeadingSlash removes a single leading "/".
func StripLeadingSlash(path string) string {
	return strings.TrimPrefix(path, "/")
}

// StripTrailingSlash removes a single trailing "/".
func StripTrailingSlash(path string) string {
	return strings.TrimSuffix(path, "/")
}

// NormalizeBasename gives a basename a leading slash and no trailing slash.
// An empty basename and "/" both normalize to "".
func NormalizeBasename(basename string) string {
	if basename == "" {
		return ""
	}
	return StripTrailingSlash(AddLeadingSlash(basename))
}

// HasBasename reports whether pathname starts with the normalized basename.
// The comparison is case-sensitive.
func HasBasename(pathname, basename string) bool {
	basename = NormalizeBasename(basename)
	return basename != "" && strings.HasPrefix(pathname, basename)
}

// StripBasename removes basename from the front of l's pathname.
// A pathname that does not start with the basename passes through unmodified.
// Stripping a pathname equal to the basename yields "/".
func StripBasename(basename string, l Location) Location {
	basename = NormalizeBasename(basename)
	if basename == "" || !strings.HasPrefix(l.Pathname, basename) {
		return l
	}
	l.Pathname = l.Pathname[len(basename):]
	if l.Pathname == "" {
		l.Pathname = "/"
	}
	return l
}

// AddBasename prefixes l's pathname with the normalized basename.
func AddBasename(basename string, l Location) Location {
	basename = NormalizeBasename(basename)
	if basename == "" {
		return l
	}
	l.Pathname = basename + AddLeadingSlash(l.Pathname)
	return l
}
