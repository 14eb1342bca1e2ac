package match

// Options control how a pattern is matched.
type Options struct {
	// Path is the pattern. An empty Path never matches.
	Path string

	// Paths are alternative patterns, tried in order after Path.
	Paths []string

	// Exact requires the whole pathname to match.
	Exact bool

	// Strict makes a trailing slash significant.
	Strict bool

	// Sensitive makes matching case-sensitive.
	Sensitive bool
}

// Match is the result of a successful match.
type Match struct {
	// Path is the pattern that matched.
	Path string `json:"path"`

	// URL is the matched portion of the pathname.
	URL string `json:"url"`

	// IsExact reports whether the whole pathname was matched.
	IsExact bool `json:"isExact"`

	// Params holds parameter values by name. Absent optional parameters are
	// left out.
	Params map[string]string `json:"params"`
}

// Param returns the named parameter, or "" when absent.
func (m *Match) Param(name string) string {
	if m == nil {
		return ""
	}
	return m.Params[name]
}

// Root is the match a router provides at the top of the tree.
func Root(pathname string) *Match {
	return &Match{Path: "/", URL: "/", IsExact: pathname == "/", Params: map[string]string{}}
}

// Path matches pathname against the patterns in opts. It returns nil when
// nothing matches. An error is returned only for an invalid pattern.
func Path(pathname string, opts Options) (*Match, error) {
	patterns := opts.Paths
	if opts.Path != "" {
		patterns = append([]string{opts.Path}, opts.Paths...)
	}

	copts := compileOptions{end: opts.Exact, strict: opts.Strict, sensitive: opts.Sensitive}
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		p, err := compileCached(pattern, copts)
		if err != nil {
			return nil, err
		}
		if m := p.match(pathname); m != nil {
			if opts.Exact && !m.IsExact {
				continue
			}
			return m, nil
		}
	}
	return nil, nil
}

func (p *Pattern) match(pathname string) *Match {
	groups := p.re.FindStringSubmatchIndex(pathname)
	if groups == nil {
		return nil
	}

	url := pathname[groups[2]:groups[3]]
	if p.source == "/" && url == "" {
		url = "/"
	}

	params := make(map[string]string, len(p.keys))
	for i, k := range p.keys {
		start, end := groups[4+2*i], groups[5+2*i]
		if start < 0 {
			continue
		}
		params[k.Name] = pathname[start:end]
	}

	return &Match{
		Path:    p.source,
		URL:     url,
		IsExact: pathname == url,
		Params:  params,
	}
}
