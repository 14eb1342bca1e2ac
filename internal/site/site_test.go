package site

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/vrouter/internal/config"
	"github.com/vango-dev/vrouter/pkg/history"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/render"
	"github.com/vango-dev/vrouter/pkg/router"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
routes:
  - path: /
    exact: true
    title: Home
    links:
      - to: /
        label: Home
        exact: true
      - to: /users/7
        label: User 7
  - path: /users/:id
    title: "User {id}"
    content: "Profile of {id}"
  - path: /old/:id
    redirect: /users/:id
  - paths: [/gone, /removed]
    title: Gone
    status: 410
notFound: Nothing here
`), true)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return cfg
}

func renderAt(t *testing.T, cfg *config.Config, path string) (string, *history.StaticContext) {
	t.Helper()
	r, err := router.NewStaticRouter(router.StaticRouterProps{Location: location.Path(path)}, Root(cfg)())
	if err != nil {
		t.Fatal(err)
	}
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(r.Node(), vdom.NewScope(context.Background()))
	if err != nil {
		t.Fatalf("render %s: %v", path, err)
	}
	return html, r.Context()
}

func TestRootPages(t *testing.T) {
	cfg := testConfig(t)
	tests := []struct {
		path   string
		want   []string
		status int
	}{
		{"/", []string{"<h1>Home</h1>", `aria-current="page"`, `href="/users/7"`}, 0},
		{"/users/7", []string{"<h1>User 7</h1>", "<p>Profile of 7</p>"}, 0},
		{"/removed", []string{"<h1>Gone</h1>"}, 410},
		{"/nowhere", []string{"<p>Nothing here</p>"}, 404},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			html, ctx := renderAt(t, cfg, tt.path)
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("html = %q, missing %q", html, want)
				}
			}
			if ctx.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", ctx.StatusCode, tt.status)
			}
			if ctx.URL != "" {
				t.Errorf("unexpected redirect to %q", ctx.URL)
			}
		})
	}
}

func TestRootRedirect(t *testing.T) {
	_, ctx := renderAt(t, testConfig(t), "/old/42")
	if ctx.URL != "/users/42" {
		t.Errorf("URL = %q, want /users/42", ctx.URL)
	}
	if ctx.Action != history.ActionReplace {
		t.Errorf("Action = %q, want REPLACE", ctx.Action)
	}
}

func TestSubstitute(t *testing.T) {
	fill := Substitute(map[string]string{"id": "7", "tab": "info"})
	if got := fill("/users/{id}?tab={tab}&x={other}"); got != "/users/7?tab=info&x={other}" {
		t.Errorf("fill = %q", got)
	}
	if got := Substitute(nil)("{id}"); got != "{id}" {
		t.Errorf("fill without params = %q", got)
	}
}
