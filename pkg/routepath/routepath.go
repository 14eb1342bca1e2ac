// Package routepath checks navigation targets that come from outside the
// process: request paths, live client frames and export paths.
//
// Checks never rewrite a target that is routed, because trailing slashes
// and case are significant to route matching. Clean is only for turning a
// path into a file location.
package routepath

import (
	"errors"
	"strings"
)

// Target errors.
var (
	ErrInvalidTarget = errors.New("invalid navigation target")
	ErrBackslash     = errors.New("path contains backslash")
	ErrNullByte      = errors.New("path contains null byte")
	ErrEscapesRoot   = errors.New("path escapes root via ..")
	ErrAbsoluteURL   = errors.New("navigation target is not a local path")
)

// SplitTarget splits "path?query#hash" into the path and the rest.
func SplitTarget(target string) (path, rest string) {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		return target[:i], target[i:]
	}
	return target, ""
}

// Check rejects paths that are unsafe to route or to map onto storage.
//
// The following are rejected:
//   - backslashes, which some clients treat as "/"
//   - NUL bytes, literal or encoded
//   - ".." segments (also "%2e%2e") that climb above the root
func Check(target string) error {
	path, _ := SplitTarget(target)

	// SECURITY: Reject backslash.
	if strings.Contains(path, "\\") || strings.Contains(strings.ToUpper(path), "%5C") {
		return ErrBackslash
	}

	// SECURITY: Reject NUL byte (both literal and encoded).
	if strings.Contains(path, "\x00") || strings.Contains(path, "%00") {
		return ErrNullByte
	}

	depth := 0
	for _, seg := range strings.Split(path, "/") {
		switch dotSegment(seg) {
		case "", ".":
		case "..":
			// SECURITY: ".." escapes root.
			if depth == 0 {
				return ErrEscapesRoot
			}
			depth--
		default:
			depth++
		}
	}
	return nil
}

// CheckNav validates a target sent by a client for in-app navigation. It
// must be a local absolute path; full and protocol-relative URLs are
// rejected to prevent open redirects. The target is returned unchanged.
func CheckNav(target string) (string, error) {
	// SECURITY: Reject absolute URLs to prevent open-redirect attacks.
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "", ErrAbsoluteURL
	}
	if !strings.HasPrefix(target, "/") {
		if hasScheme(target) {
			return "", ErrAbsoluteURL
		}
		return "", ErrInvalidTarget
	}
	for i := 0; i < len(target); i++ {
		if target[i] < 0x20 || target[i] == 0x7f {
			return "", ErrInvalidTarget
		}
	}
	if err := Check(target); err != nil {
		return "", err
	}
	return target, nil
}

// IsLocal reports whether url can be sent in a Location header without
// leaving the site.
func IsLocal(url string) bool {
	_, err := CheckNav(url)
	return err == nil
}

// Clean normalizes path for use as a storage key: slashes are collapsed,
// "." and ".." segments resolved and the leading slash removed. The root
// becomes "".
func Clean(path string) (string, error) {
	path, _ = SplitTarget(path)
	if err := Check(path); err != nil {
		return "", err
	}

	var out []string
	for _, seg := range strings.Split(path, "/") {
		switch dotSegment(seg) {
		case "", ".":
		case "..":
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/"), nil
}

// dotSegment maps encoded dot segments onto their decoded form.
func dotSegment(seg string) string {
	switch strings.ToLower(seg) {
	case ".", "%2e":
		return "."
	case "..", ".%2e", "%2e.", "%2e%2e":
		return ".."
	}
	return seg
}

func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return false
			}
		case c == ':':
			return i > 0
		default:
			return false
		}
	}
	return false
}
