package location

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Decoding errors.
var (
	ErrMalformedEscape = errors.New("malformed percent escape")
	ErrInvalidUTF8     = errors.New("escape sequence is not valid UTF-8")
)

// DecodeError reports a pathname that could not be percent-decoded.
type DecodeError struct {
	// Pathname is the raw, undecoded pathname.
	Pathname string

	// Err is ErrMalformedEscape or ErrInvalidUTF8.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("pathname %q could not be decoded: %v (this is likely caused by an invalid percent-encoding)", e.Pathname, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// reservedURISet holds characters whose escapes decodeURI leaves encoded.
const reservedURISet = ";/?:@&=+$,#"

// DecodePathname percent-decodes a pathname with decodeURI semantics: every
// valid escape is decoded except those producing a reserved URI character.
func DecodePathname(pathname string) (string, error) {
	if !strings.Contains(pathname, "%") {
		return pathname, nil
	}

	var b strings.Builder
	b.Grow(len(pathname))

	for i := 0; i < len(pathname); {
		c := pathname[i]
		if c != '%' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+2 >= len(pathname) || !isHexDigit(pathname[i+1]) || !isHexDigit(pathname[i+2]) {
			return "", &DecodeError{Pathname: pathname, Err: ErrMalformedEscape}
		}
		v := unhex(pathname[i+1])<<4 | unhex(pathname[i+2])
		if v < utf8.RuneSelf && strings.IndexByte(reservedURISet, v) != -1 {
			b.WriteString(pathname[i : i+3])
		} else {
			b.WriteByte(v)
		}
		i += 3
	}

	decoded := b.String()
	if !utf8.ValidString(decoded) {
		return "", &DecodeError{Pathname: pathname, Err: ErrInvalidUTF8}
	}
	return decoded, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// EncodePathname escapes a decoded pathname so it can be used in a URL. It
// reverses DecodePathname: a "%" that starts a reserved escape kept by
// decoding stays as is, any other "%" becomes "%25".
func EncodePathname(pathname string) string {
	var b strings.Builder
	for i := 0; i < len(pathname); i++ {
		c := pathname[i]
		switch {
		case c == '%' && reservedEscapeAt(pathname, i):
			b.WriteByte(c)
		case shouldEscapePath(c):
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// EscapePath is CreatePath with the pathname escaped by EncodePathname.
func EscapePath(l Location) string {
	l.Pathname = EncodePathname(l.Pathname)
	return CreatePath(l)
}

const upperhex = "0123456789ABCDEF"

func reservedEscapeAt(s string, i int) bool {
	if i+2 >= len(s) || !isHexDigit(s[i+1]) || !isHexDigit(s[i+2]) {
		return false
	}
	v := unhex(s[i+1])<<4 | unhex(s[i+2])
	return v < utf8.RuneSelf && strings.IndexByte(reservedURISet, v) != -1
}

// shouldEscapePath reports whether c may not appear unescaped in a URL path.
func shouldEscapePath(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	return strings.IndexByte("-._~!$&'()*+,;=:@/", c) == -1
}
