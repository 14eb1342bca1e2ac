package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/match"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "routerd.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default export directory.
	DefaultOutput = "dist"

	// DefaultLivePath is where the live websocket endpoint is mounted.
	DefaultLivePath = "/_live"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// fileNames are tried in order by Load.
var fileNames = []string{ConfigFileName, "routerd.yaml", "routerd.yml"}

// Config is a complete site configuration.
type Config struct {
	// Name is the site name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Basename is the URL prefix the site is served under.
	Basename string `json:"basename,omitempty" yaml:"basename,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Page contains the HTML shell around every render.
	Page PageConfig `json:"page,omitempty" yaml:"page,omitempty"`

	// Routes are matched in order; the first match renders.
	Routes []RouteConfig `json:"routes,omitempty" yaml:"routes,omitempty"`

	// NotFound is rendered with status 404 when no route matches.
	NotFound string `json:"notFound,omitempty" yaml:"notFound,omitempty"`

	// Static is an asset directory served next to the routes and copied by
	// an export.
	Static StaticConfig `json:"static,omitempty" yaml:"static,omitempty"`

	// Export contains static export configuration.
	Export ExportConfig `json:"export,omitempty" yaml:"export,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// PushStatus is the status for a redirect made with push (default 302).
	PushStatus int `json:"pushStatus,omitempty" yaml:"pushStatus,omitempty"`

	// ReplaceStatus is the status for a redirect made with replace (default 303).
	ReplaceStatus int `json:"replaceStatus,omitempty" yaml:"replaceStatus,omitempty"`

	// Live enables the websocket endpoint for client-side navigation.
	Live     bool   `json:"live" yaml:"live"`
	LivePath string `json:"livePath,omitempty" yaml:"livePath,omitempty"`

	// MetricsPath serves Prometheus metrics; "-" disables it.
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`

	// Pretty indents the rendered HTML.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// PageConfig describes the document around the rendered body.
type PageConfig struct {
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Lang        string            `json:"lang,omitempty" yaml:"lang,omitempty"`
	Meta        map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
	StyleSheets []string          `json:"styleSheets,omitempty" yaml:"styleSheets,omitempty"`
	Scripts     []string          `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

// RouteConfig is one declarative route.
type RouteConfig struct {
	Path      string   `json:"path" yaml:"path"`
	Paths     []string `json:"paths,omitempty" yaml:"paths,omitempty"`
	Exact     bool     `json:"exact,omitempty" yaml:"exact,omitempty"`
	Strict    bool     `json:"strict,omitempty" yaml:"strict,omitempty"`
	Sensitive bool     `json:"sensitive,omitempty" yaml:"sensitive,omitempty"`

	// Title and Content render a page. "{name}" in either is replaced by
	// the route parameter of that name.
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Links are rendered as a navigation list on the page.
	Links []LinkConfig `json:"links,omitempty" yaml:"links,omitempty"`

	// Redirect makes the route redirect instead of rendering. Parameters
	// of Path are substituted into it.
	Redirect string `json:"redirect,omitempty" yaml:"redirect,omitempty"`

	// Push records the redirect as a PUSH instead of a REPLACE.
	Push bool `json:"push,omitempty" yaml:"push,omitempty"`

	// Status overrides the response status of a rendered page.
	Status int `json:"status,omitempty" yaml:"status,omitempty"`
}

// LinkConfig is a navigation link.
type LinkConfig struct {
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Exact bool   `json:"exact,omitempty" yaml:"exact,omitempty"`
}

// StaticConfig names the asset directory.
type StaticConfig struct {
	// Dir is relative to the config file. Empty disables assets.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Prefix is the site path assets are served under (default "/").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Cache is "none" or "production".
	Cache string `json:"cache,omitempty" yaml:"cache,omitempty"`
}

// ExportConfig contains static export settings.
type ExportConfig struct {
	// Output is the export directory.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Bucket exports to S3 instead of Output.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Paths are the URLs to export. Defaults to every route path without
	// parameters.
	Paths []string `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          DefaultHost,
			Port:          DefaultPort,
			PushStatus:    http.StatusFound,
			ReplaceStatus: http.StatusSeeOther,
			Live:          true,
			LivePath:      DefaultLivePath,
			MetricsPath:   DefaultMetricsPath,
		},
		Page: PageConfig{
			Lang: "en",
		},
		Export: ExportConfig{
			Output: DefaultOutput,
		},
	}
}

// Load reads configuration from the specified directory.
func Load(dir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No " + strings.Join(fileNames, ", ") + " found in " + dir).
		WithSuggestion("Create routerd.json or pass --config")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithPath(path)
		}
		return nil, errors.New("E120").WithPath(path).Wrap(err)
	}

	cfg, err := Parse(data, isYAML(path))
	if err != nil {
		if re, ok := err.(*errors.RouterError); ok {
			re.Path = path
		}
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes a configuration, applies defaults and validates it.
func Parse(data []byte, asYAML bool) (*Config, error) {
	cfg := New()
	var err error
	format := "JSON"
	if asYAML {
		format = "YAML"
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E121").
			WithDetail("Failed to parse configuration: " + err.Error()).
			WithSuggestion("Check that the file is valid " + format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").WithPath(path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.PushStatus == 0 {
		c.Server.PushStatus = http.StatusFound
	}
	if c.Server.ReplaceStatus == 0 {
		c.Server.ReplaceStatus = http.StatusSeeOther
	}
	if c.Server.LivePath == "" {
		c.Server.LivePath = DefaultLivePath
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Page.Lang == "" {
		c.Page.Lang = "en"
	}
	if c.Export.Output == "" {
		c.Export.Output = DefaultOutput
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if !isRedirectStatus(c.Server.PushStatus) || !isRedirectStatus(c.Server.ReplaceStatus) {
		return errors.New("E120").
			WithDetail(fmt.Sprintf("Redirect statuses must be 3xx, got push=%d replace=%d",
				c.Server.PushStatus, c.Server.ReplaceStatus))
	}
	if c.Static.Cache != "" && c.Static.Cache != "none" && c.Static.Cache != "production" {
		return errors.New("E120").
			WithDetail("static.cache must be \"none\" or \"production\", got " + strconv.Quote(c.Static.Cache))
	}
	if c.Basename != "" && !strings.HasPrefix(c.Basename, "/") {
		return errors.New("E120").
			WithDetail("basename must start with \"/\", got " + strconv.Quote(c.Basename))
	}

	for i, r := range c.Routes {
		if r.Path == "" && len(r.Paths) == 0 {
			return errors.New("E120").
				WithDetail(fmt.Sprintf("routes[%d] has no path", i))
		}
		if _, err := match.Path("/", match.Options{Path: r.Path, Paths: r.Paths}); err != nil {
			return errors.New("E120").
				WithDetail(fmt.Sprintf("routes[%d] has an invalid path", i)).
				Wrap(err)
		}
		if r.Redirect != "" && r.Content != "" {
			return errors.New("E120").
				WithDetail(fmt.Sprintf("routes[%d] sets both redirect and content", i))
		}
		if r.Status != 0 && (r.Status < 100 || r.Status > 599) {
			return errors.New("E120").
				WithDetail(fmt.Sprintf("routes[%d] has invalid status %d", i, r.Status))
		}
	}
	return nil
}

// Address returns the address the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// OutputPath returns the absolute path to the export directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Export.Output) {
		return c.Export.Output
	}
	return filepath.Join(c.Dir(), c.Export.Output)
}

// StaticPath returns the absolute path to the asset directory, or "" when
// none is configured.
func (c *Config) StaticPath() string {
	if c.Static.Dir == "" || filepath.IsAbs(c.Static.Dir) {
		return c.Static.Dir
	}
	return filepath.Join(c.Dir(), c.Static.Dir)
}

// ExportPaths returns Export.Paths, or every parameterless route path.
func (c *Config) ExportPaths() []string {
	if len(c.Export.Paths) > 0 {
		return c.Export.Paths
	}
	var paths []string
	seen := map[string]bool{}
	for _, r := range c.Routes {
		for _, p := range append([]string{r.Path}, r.Paths...) {
			if p == "" || seen[p] || strings.ContainsAny(p, ":*(") {
				continue
			}
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range fileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindRoot walks up directories to find the site root.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No routerd configuration found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isRedirectStatus(code int) bool {
	return code >= 300 && code < 400
}
