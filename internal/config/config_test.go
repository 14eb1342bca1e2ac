package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vango-dev/vrouter/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.PushStatus != 302 || cfg.Server.ReplaceStatus != 303 {
		t.Errorf("statuses = %d/%d, want 302/303", cfg.Server.PushStatus, cfg.Server.ReplaceStatus)
	}
	if !cfg.Server.Live || cfg.Server.LivePath != DefaultLivePath {
		t.Errorf("live = %v %q", cfg.Server.Live, cfg.Server.LivePath)
	}
	if cfg.Export.Output != DefaultOutput {
		t.Errorf("Export.Output = %q, want %q", cfg.Export.Output, DefaultOutput)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{
  "name": "docs",
  "basename": "/docs",
  "server": {"port": 8080, "live": false},
  "routes": [
    {"path": "/", "exact": true, "title": "Home", "content": "Welcome"},
    {"path": "/old/:slug", "redirect": "/guide/:slug", "push": true}
  ]
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "docs" || cfg.Basename != "/docs" {
		t.Errorf("Name/Basename = %q/%q", cfg.Name, cfg.Basename)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Live {
		t.Error("Server.Live should be false")
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if len(cfg.Routes) != 2 || !cfg.Routes[1].Push {
		t.Errorf("Routes = %+v", cfg.Routes)
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) || cfg.Dir() != dir {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "routerd.yaml", `
name: docs
server:
  replaceStatus: 307
page:
  title: Docs
  styleSheets: [/static/site.css]
routes:
  - path: /guide/:slug
    content: "Reading {slug}"
export:
  paths: [/, /guide/intro]
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.ReplaceStatus != 307 || cfg.Server.PushStatus != 302 {
		t.Errorf("statuses = %d/%d", cfg.Server.PushStatus, cfg.Server.ReplaceStatus)
	}
	if !cfg.Server.Live {
		t.Error("Server.Live should default to true")
	}
	if cfg.Page.Title != "Docs" || len(cfg.Page.StyleSheets) != 1 {
		t.Errorf("Page = %+v", cfg.Page)
	}
	if got := cfg.ExportPaths(); !reflect.DeepEqual(got, []string{"/", "/guide/intro"}) {
		t.Errorf("ExportPaths() = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode string
	}{
		{"missing", "", "", "E141"},
		{"bad json", ConfigFileName, `{"server": `, "E121"},
		{"bad yaml", "routerd.yml", "server: [", "E121"},
		{"port", ConfigFileName, `{"server": {"port": 70000}}`, "E122"},
		{"status", ConfigFileName, `{"server": {"pushStatus": 200}}`, "E120"},
		{"basename", ConfigFileName, `{"basename": "docs"}`, "E120"},
		{"no path", ConfigFileName, `{"routes": [{"content": "x"}]}`, "E120"},
		{"bad pattern", ConfigFileName, `{"routes": [{"path": "/a/:id(("}]}`, "E120"},
		{"redirect and content", ConfigFileName, `{"routes": [{"path": "/", "redirect": "/x", "content": "y"}]}`, "E120"},
		{"route status", ConfigFileName, `{"routes": [{"path": "/", "status": 999}]}`, "E120"},
		{"static cache", ConfigFileName, `{"static": {"dir": "public", "cache": "forever"}}`, "E120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "" {
				writeFile(t, dir, tt.file, tt.content)
			}
			_, err := Load(dir)
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadFileSetsPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), ConfigFileName, `{"server": {"port": -1}}`)
	_, err := LoadFile(path)
	re, ok := err.(*errors.RouterError)
	if !ok {
		t.Fatalf("err = %T, want *errors.RouterError", err)
	}
	if re.Path != path {
		t.Errorf("Path = %q, want %q", re.Path, path)
	}
}

func TestJSONPreferredOverYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"name": "json"}`)
	writeFile(t, dir, "routerd.yaml", "name: yaml\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "json" {
		t.Errorf("Name = %q, want json", cfg.Name)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := New()
			cfg.Name = "site"
			cfg.Routes = []RouteConfig{{Path: "/", Exact: true, Content: "hi"}}

			path := filepath.Join(t.TempDir(), name)
			if err := cfg.SaveTo(path); err != nil {
				t.Fatal(err)
			}
			got, err := LoadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != "site" || len(got.Routes) != 1 || got.Routes[0].Content != "hi" {
				t.Errorf("loaded %+v", got)
			}
		})
	}
}

func TestExportPathsFromRoutes(t *testing.T) {
	cfg := New()
	cfg.Routes = []RouteConfig{
		{Path: "/", Exact: true},
		{Path: "/about", Paths: []string{"/team"}},
		{Path: "/users/:id"},
		{Path: "/about"},
	}
	want := []string{"/", "/about", "/team"}
	if got := cfg.ExportPaths(); !reflect.DeepEqual(got, want) {
		t.Errorf("ExportPaths() = %v, want %v", got, want)
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routerd.yml", "name: x\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != root {
		t.Errorf("FindRoot() = %q, want %q", got, root)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists mismatch")
	}
}

func TestAddress(t *testing.T) {
	cfg := New()
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 9000
	if got := cfg.Address(); got != "0.0.0.0:9000" {
		t.Errorf("Address() = %q", got)
	}
}

func TestStaticPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "routerd.yaml", "static:\n  dir: public\n  prefix: /assets\n  cache: production\n")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.StaticPath(); got != filepath.Join(dir, "public") {
		t.Errorf("StaticPath() = %q", got)
	}
	if cfg.Static.Prefix != "/assets" || cfg.Static.Cache != "production" {
		t.Errorf("Static = %+v", cfg.Static)
	}

	cfg.Static.Dir = "/srv/public"
	if got := cfg.StaticPath(); got != "/srv/public" {
		t.Errorf("absolute StaticPath() = %q", got)
	}
	if got := New().StaticPath(); got != "" {
		t.Errorf("StaticPath() without a dir = %q", got)
	}
}
