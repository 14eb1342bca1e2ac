package match

import (
	"fmt"
	"regexp"
	"strings"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
)

// GeneratePath fills a pattern's parameters from params. Values are
// URI-encoded; "/" is encoded too except in catch-all and repeated
// parameters, where it separates segments.
func GeneratePath(pattern string, params map[string]string) (string, error) {
	if pattern == "/" {
		return pattern, nil
	}
	p, err := compileCached(pattern, compileOptions{end: true})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, t := range p.tokens {
		if t.key == nil {
			b.WriteString(t.literal)
			continue
		}
		k := t.key

		value, ok := params[k.Name]
		if !ok || value == "" {
			if k.Optional {
				if k.Partial {
					b.WriteString(k.Prefix)
				}
				continue
			}
			return "", missingParam(pattern, k.Name)
		}

		delimiter := k.Prefix
		if delimiter == "" {
			delimiter = "/"
		}
		segments := []string{value}
		if k.Repeat {
			segments = strings.Split(value, delimiter)
		}

		check, err := regexp.Compile("^(?:" + k.Pattern + ")$")
		if err != nil {
			return "", rerrors.New("E104").WithPath(pattern).Wrap(err)
		}
		for i, seg := range segments {
			var encoded string
			if k.Asterisk {
				encoded = encodeAsterisk(seg)
			} else {
				encoded = encodePretty(seg)
			}
			if !check.MatchString(encoded) {
				return "", rerrors.New("E105").
					WithPath(pattern).
					WithMessage(fmt.Sprintf("Expected %q to match %q, but received %q", k.Name, k.Pattern, encoded))
			}
			if i == 0 {
				b.WriteString(k.Prefix)
			} else {
				b.WriteString(delimiter)
			}
			b.WriteString(encoded)
		}
	}
	return b.String(), nil
}

func missingParam(pattern, name string) error {
	return rerrors.New("E105").
		WithPath(pattern).
		WithMessage(fmt.Sprintf("Expected %q to be defined", name))
}

// uriSafe are the characters encodeURI leaves alone, minus "/", "?" and "#".
const uriSafe = "-_.!~*'();,:@&=+$"

func encodePretty(s string) string {
	return encodeExcept(s, uriSafe)
}

// encodeAsterisk keeps "/" so catch-all values can span segments.
func encodeAsterisk(s string) string {
	return encodeExcept(s, uriSafe+"/")
}

func encodeExcept(s, safe string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlnum(c) || strings.IndexByte(safe, c) != -1 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
