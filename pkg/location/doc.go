// Package location normalizes URLs into Location records.
//
// A Location is the decomposition of a URL into its pathname, search and hash
// parts. Every field is always present after normalization: a missing pathname
// becomes "/", a missing search or hash becomes "", search always starts with
// "?" and hash with "#". The pathname is percent-decoded the way a browser's
// decodeURI does it, so escapes of reserved characters (such as %2F) survive.
//
// # Inputs
//
// Navigation targets are either a raw string or a partial record:
//
//	location.Path("/the/path?the=query#the-hash")
//	location.Partial{Pathname: "/test"}
//
// Both satisfy Input, and so does a Location, so a normalized value can be
// handed back to any function that accepts a navigation target. A Location is
// never decoded twice: Normalize(loc, "") returns loc unchanged. EscapePath
// turns a decoded Location back into a valid URL path.
//
// # Basenames
//
// A basename is a path prefix under which an application is mounted. Normalize
// strips it from incoming pathnames; histories add it back when building hrefs.
//
//	loc, err := location.Normalize(location.Path("/the-base/path"), "/the-base")
//	// loc.Pathname == "/path"
package location
