package match

import (
	"reflect"
	"testing"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name     string
		pathname string
		opts     Options
		wantURL  string
		exact    bool
		params   map[string]string
		noMatch  bool
	}{
		{
			name:     "param prefix match",
			pathname: "/users/42/posts",
			opts:     Options{Path: "/users/:id"},
			wantURL:  "/users/42",
			params:   map[string]string{"id": "42"},
		},
		{
			name:     "param whole match",
			pathname: "/users/42",
			opts:     Options{Path: "/users/:id"},
			wantURL:  "/users/42",
			exact:    true,
			params:   map[string]string{"id": "42"},
		},
		{
			name:     "exact rejects longer pathname",
			pathname: "/users/42/posts",
			opts:     Options{Path: "/users/:id", Exact: true},
			noMatch:  true,
		},
		{
			name:     "insensitive by default",
			pathname: "/Users",
			opts:     Options{Path: "/users"},
			wantURL:  "/Users",
			exact:    true,
			params:   map[string]string{},
		},
		{
			name:     "sensitive",
			pathname: "/Users",
			opts:     Options{Path: "/users", Sensitive: true},
			noMatch:  true,
		},
		{
			name:     "trailing slash tolerated",
			pathname: "/users/",
			opts:     Options{Path: "/users", Exact: true},
			wantURL:  "/users/",
			exact:    true,
			params:   map[string]string{},
		},
		{
			name:     "pattern slash tolerated",
			pathname: "/users",
			opts:     Options{Path: "/users/"},
			wantURL:  "/users",
			exact:    true,
			params:   map[string]string{},
		},
		{
			name:     "strict pattern slash required",
			pathname: "/users",
			opts:     Options{Path: "/users/", Strict: true},
			noMatch:  true,
		},
		{
			name:     "strict exact rejects trailing slash",
			pathname: "/users/",
			opts:     Options{Path: "/users", Strict: true, Exact: true},
			noMatch:  true,
		},
		{
			name:     "root matches everything",
			pathname: "/anything/here",
			opts:     Options{Path: "/"},
			wantURL:  "/",
			params:   map[string]string{},
		},
		{
			name:     "root exact",
			pathname: "/",
			opts:     Options{Path: "/", Exact: true},
			wantURL:  "/",
			exact:    true,
			params:   map[string]string{},
		},
		{
			name:     "optional param absent",
			pathname: "/users",
			opts:     Options{Path: "/users/:id?", Exact: true},
			wantURL:  "/users",
			exact:    true,
			params:   map[string]string{},
		},
		{
			name:     "optional param present",
			pathname: "/users/7",
			opts:     Options{Path: "/users/:id?", Exact: true},
			wantURL:  "/users/7",
			exact:    true,
			params:   map[string]string{"id": "7"},
		},
		{
			name:     "one or more segments",
			pathname: "/files/a/b/c",
			opts:     Options{Path: "/files/:path+", Exact: true},
			wantURL:  "/files/a/b/c",
			exact:    true,
			params:   map[string]string{"path": "a/b/c"},
		},
		{
			name:     "zero or more segments",
			pathname: "/files",
			opts:     Options{Path: "/files/:path*", Exact: true},
			wantURL:  "/files",
			exact:    true,
			params:   map[string]string{},
		},
		{
			name:     "custom pattern",
			pathname: "/orders/12",
			opts:     Options{Path: `/orders/:id(\d+)`},
			wantURL:  "/orders/12",
			exact:    true,
			params:   map[string]string{"id": "12"},
		},
		{
			name:     "custom pattern rejects",
			pathname: "/orders/abc",
			opts:     Options{Path: `/orders/:id(\d+)`},
			noMatch:  true,
		},
		{
			name:     "catch-all",
			pathname: "/assets/css/site.css",
			opts:     Options{Path: "/assets/*"},
			wantURL:  "/assets/css/site.css",
			exact:    true,
			params:   map[string]string{"0": "css/site.css"},
		},
		{
			name:     "escaped colon",
			pathname: "/a:b",
			opts:     Options{Path: `/a\:b`},
			wantURL:  "/a:b",
			exact:    true,
			params:   map[string]string{},
		},
		{
			name:     "alternative paths",
			pathname: "/b/c",
			opts:     Options{Paths: []string{"/a", "/b"}},
			wantURL:  "/b",
			params:   map[string]string{},
		},
		{
			name:     "no pattern",
			pathname: "/x",
			opts:     Options{},
			noMatch:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Path(tt.pathname, tt.opts)
			if err != nil {
				t.Fatalf("Path() error = %v", err)
			}
			if tt.noMatch {
				if m != nil {
					t.Fatalf("Path() = %+v, want no match", m)
				}
				return
			}
			if m == nil {
				t.Fatal("Path() = nil, want a match")
			}
			if m.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", m.URL, tt.wantURL)
			}
			if m.IsExact != tt.exact {
				t.Errorf("IsExact = %v, want %v", m.IsExact, tt.exact)
			}
			if !reflect.DeepEqual(m.Params, tt.params) {
				t.Errorf("Params = %v, want %v", m.Params, tt.params)
			}
		})
	}
}

func TestPathInvalidPattern(t *testing.T) {
	_, err := Path("/x", Options{Path: "/x/:id((a)"})
	if !rerrors.HasCode(err, "E104") {
		t.Fatalf("err = %v, want E104", err)
	}
	_, err = Path("/x", Options{Path: "/x/:id(a"})
	if !rerrors.HasCode(err, "E104") {
		t.Fatalf("err = %v, want E104", err)
	}
}

func TestRoot(t *testing.T) {
	if m := Root("/"); !m.IsExact || m.URL != "/" || m.Path != "/" {
		t.Errorf("Root(/) = %+v", m)
	}
	if Root("/x").IsExact {
		t.Error("Root(/x) should not be exact")
	}
}

func TestGeneratePath(t *testing.T) {
	tests := []struct {
		pattern string
		params  map[string]string
		want    string
		code    string
	}{
		{"/", nil, "/", ""},
		{"/users/:id", map[string]string{"id": "42"}, "/users/42", ""},
		{"/users/:id", nil, "", "E105"},
		{"/users/:id?", nil, "/users", ""},
		{"/files/:path+", map[string]string{"path": "a/b"}, "/files/a/b", ""},
		{"/search/:q", map[string]string{"q": "a b/c"}, "/search/a%20b%2Fc", ""},
		{"/assets/*", map[string]string{"0": "css/site.css"}, "/assets/css/site.css", ""},
		{`/orders/:id(\d+)`, map[string]string{"id": "x"}, "", "E105"},
		{`/orders/:id(\d+)`, map[string]string{"id": "9"}, "/orders/9", ""},
	}

	for _, tt := range tests {
		got, err := GeneratePath(tt.pattern, tt.params)
		if tt.code != "" {
			if !rerrors.HasCode(err, tt.code) {
				t.Errorf("GeneratePath(%q) error = %v, want %s", tt.pattern, err, tt.code)
			}
			continue
		}
		if err != nil {
			t.Errorf("GeneratePath(%q) error = %v", tt.pattern, err)
			continue
		}
		if got != tt.want {
			t.Errorf("GeneratePath(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestEscape(t *testing.T) {
	got := Escape("/a:b(c)")
	if got != `/a\:b\(c\)` {
		t.Fatalf("Escape() = %q", got)
	}
	m, err := Path("/a:b(c)", Options{Path: got, Exact: true})
	if err != nil || m == nil {
		t.Fatalf("escaped pattern should match its literal: %v %v", m, err)
	}
}

func TestBind(t *testing.T) {
	m, err := Path("/users/42/files/a/b", Options{Path: "/users/:id/files/:path+/:missing?"})
	if err != nil || m == nil {
		t.Fatalf("Path() = %v, %v", m, err)
	}

	var p struct {
		ID      int      `param:"id"`
		Path    []string `param:"path"`
		Missing string   `param:"missing"`
		Ignored string
	}
	p.Missing = "keep"
	if err := m.Bind(&p); err != nil {
		t.Fatal(err)
	}
	if p.ID != 42 {
		t.Errorf("ID = %d, want 42", p.ID)
	}
	if !reflect.DeepEqual(p.Path, []string{"a", "b"}) {
		t.Errorf("Path = %v", p.Path)
	}
	if p.Missing != "keep" {
		t.Errorf("absent param overwrote the field: %q", p.Missing)
	}
}

func TestBindErrors(t *testing.T) {
	m := &Match{Params: map[string]string{"id": "abc"}}

	var notPtr struct{}
	if err := m.Bind(notPtr); err == nil {
		t.Error("non-pointer target should fail")
	}

	var p struct {
		ID int `param:"id"`
	}
	if err := m.Bind(&p); err == nil {
		t.Error("non-numeric id should fail")
	}

	var nilMatch *Match
	if err := nilMatch.Bind(&p); err != nil {
		t.Errorf("nil match should bind nothing, got %v", err)
	}
}

func TestCompileCached(t *testing.T) {
	a, err := compileCached("/cached/:x", compileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := compileCached("/cached/:x", compileOptions{})
	if a != b {
		t.Error("same pattern and options should share a compiled pattern")
	}
	c, _ := compileCached("/cached/:x", compileOptions{end: true})
	if a == c {
		t.Error("different options should compile separately")
	}
}
