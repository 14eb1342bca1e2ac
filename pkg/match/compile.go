package match

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
)

// cacheLimit bounds the number of compiled patterns kept in memory.
const cacheLimit = 10000

// Key describes one parameter of a pattern.
type Key struct {
	// Name is the parameter name, or its index for unnamed groups.
	Name string

	// Prefix is the "/" or "." that introduces the parameter, if any.
	Prefix string

	// Pattern is the regular expression a single segment must match.
	Pattern string

	Optional bool
	Repeat   bool

	// Partial is set when an optional parameter is followed by more text.
	Partial bool

	// Asterisk is set for a bare "*".
	Asterisk bool
}

// token is either a literal or a parameter.
type token struct {
	literal string
	key     *Key
}

// Pattern is a compiled route pattern.
type Pattern struct {
	source string
	tokens []token
	keys   []Key
	re     *regexp.Regexp
}

// Source returns the pattern text.
func (p *Pattern) Source() string { return p.source }

// Keys returns the parameters in order of appearance.
func (p *Pattern) Keys() []Key { return p.keys }

type compileOptions struct {
	end       bool
	strict    bool
	sensitive bool
}

type cacheKey struct {
	pattern string
	opts    compileOptions
}

var cache = struct {
	sync.RWMutex
	m map[cacheKey]*Pattern
}{m: make(map[cacheKey]*Pattern)}

func compileCached(pattern string, opts compileOptions) (*Pattern, error) {
	k := cacheKey{pattern, opts}

	cache.RLock()
	p, ok := cache.m[k]
	cache.RUnlock()
	if ok {
		return p, nil
	}

	p, err := compile(pattern, opts)
	if err != nil {
		return nil, err
	}

	cache.Lock()
	if len(cache.m) < cacheLimit {
		cache.m[k] = p
	}
	cache.Unlock()
	return p, nil
}

func compile(pattern string, opts compileOptions) (*Pattern, error) {
	tokens, err := parse(pattern)
	if err != nil {
		return nil, err
	}

	p := &Pattern{source: pattern, tokens: tokens}
	for _, t := range tokens {
		if t.key != nil {
			p.keys = append(p.keys, *t.key)
		}
	}

	expr := buildRegexp(tokens, opts)
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, rerrors.New("E104").WithPath(pattern).Wrap(err)
	}
	p.re = re
	return p, nil
}

// parse splits a pattern into literals and parameters.
func parse(pattern string) ([]token, error) {
	var (
		tokens  []token
		literal strings.Builder
		index   int
	)

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '\\' && i+1 < len(pattern) {
			literal.WriteByte(pattern[i+1])
			i += 2
			continue
		}

		// A "/" or "." directly before a parameter becomes its prefix.
		prefix := ""
		j := i
		if (c == '/' || c == '.') && i+1 < len(pattern) && startsParam(pattern[i+1:]) {
			prefix = string(c)
			j = i + 1
		} else if !startsParam(pattern[i:]) {
			literal.WriteByte(c)
			i++
			continue
		}

		key := &Key{Prefix: prefix}
		switch pattern[j] {
		case ':':
			k := j + 1
			for k < len(pattern) && isWordChar(pattern[k]) {
				k++
			}
			key.Name = pattern[j+1 : k]
			j = k
			if j < len(pattern) && pattern[j] == '(' {
				group, end, err := readGroup(pattern, j)
				if err != nil {
					return nil, err
				}
				key.Pattern = group
				j = end
			}
		case '(':
			group, end, err := readGroup(pattern, j)
			if err != nil {
				return nil, err
			}
			key.Name = strconv.Itoa(index)
			index++
			key.Pattern = group
			j = end
		case '*':
			key.Name = strconv.Itoa(index)
			index++
			key.Asterisk = true
			key.Pattern = ".*"
			j++
		}

		if !key.Asterisk && j < len(pattern) {
			switch pattern[j] {
			case '?':
				key.Optional = true
				j++
			case '*':
				key.Optional, key.Repeat = true, true
				j++
			case '+':
				key.Repeat = true
				j++
			}
		}

		if key.Pattern == "" {
			delimiter := prefix
			if delimiter == "" {
				delimiter = "/"
			}
			key.Pattern = "[^" + regexp.QuoteMeta(delimiter) + "]+?"
		}
		key.Partial = prefix != "" && j < len(pattern) && string(pattern[j]) != prefix

		flush()
		tokens = append(tokens, token{key: key})
		i = j
	}
	flush()
	return tokens, nil
}

// startsParam reports whether s begins with ":name", "(group)" or "*".
func startsParam(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case ':':
		return len(s) > 1 && isWordChar(s[1])
	case '(', '*':
		return true
	}
	return false
}

// readGroup reads a "(...)" group starting at pattern[start]. Groups may not
// nest; escaped characters inside are kept as-is.
func readGroup(pattern string, start int) (string, int, error) {
	var b strings.Builder
	for i := start + 1; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '\\':
			if i+1 < len(pattern) {
				b.WriteByte(c)
				b.WriteByte(pattern[i+1])
				i++
			}
		case '(':
			return "", 0, rerrors.New("E104").
				WithPath(pattern).
				WithDetail("Capturing groups are not allowed inside a parameter pattern; use (?:...) outside the pattern or escape the parenthesis.")
		case ')':
			if b.Len() == 0 {
				return "", 0, rerrors.New("E104").WithPath(pattern).WithDetail("Empty parameter pattern.")
			}
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, rerrors.New("E104").WithPath(pattern).WithDetail("Unterminated parameter pattern.")
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// buildRegexp renders tokens as a regular expression. Group 1 is the matched
// URL; parameter groups follow in order.
func buildRegexp(tokens []token, opts compileOptions) string {
	var route strings.Builder
	for _, t := range tokens {
		if t.key == nil {
			route.WriteString(regexp.QuoteMeta(t.literal))
			continue
		}
		k := t.key
		prefix := regexp.QuoteMeta(k.Prefix)
		capture := "(?:" + k.Pattern + ")"
		if k.Repeat {
			capture += "(?:" + prefix + capture + ")*"
		}
		switch {
		case k.Optional && !k.Partial:
			capture = "(?:" + prefix + "(" + capture + "))?"
		case k.Optional:
			capture = prefix + "(" + capture + ")?"
		default:
			capture = prefix + "(" + capture + ")"
		}
		route.WriteString(capture)
	}

	body := route.String()
	endsWithDelimiter := strings.HasSuffix(body, "/")
	if !opts.strict {
		body = strings.TrimSuffix(body, "/") + "(?:/$)?"
	}

	var expr strings.Builder
	if !opts.sensitive {
		expr.WriteString("(?i)")
	}
	expr.WriteString("^(")
	expr.WriteString(body)
	expr.WriteString(")")
	switch {
	case opts.end:
		expr.WriteString("$")
	case opts.strict && endsWithDelimiter:
		expr.WriteString(".*$")
	default:
		expr.WriteString("(?:/.*)?$")
	}
	return expr.String()
}

// Escape backslash-escapes the characters that have a meaning in patterns.
func Escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ':', '(', ')', '*', '?', '+', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
