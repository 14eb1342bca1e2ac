// Package match decides whether a pathname matches a route pattern.
//
// Patterns are literal path text with parameters:
//
//	/users/:id          named parameter, one segment
//	/users/:id?         optional parameter
//	/files/:path+       one or more segments
//	/files/:path*       zero or more segments
//	/orders/:id(\d+)    parameter with a custom pattern
//	/assets/*           unnamed catch-all, param "0"
//	/a\:b               backslash escapes a special character
//
// Matching is case-insensitive unless Sensitive is set, tolerates a trailing
// slash unless Strict is set, and matches a prefix of the pathname unless Exact
// is set. Compiled patterns are cached.
package match
