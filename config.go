package vrouter

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vrouter/pkg/history"
	"github.com/vango-dev/vrouter/pkg/middleware"
	"github.com/vango-dev/vrouter/pkg/render"
)

// Config is the application configuration.
type Config struct {
	// Basename is the URL prefix the app is served under.
	Basename string

	// PushStatus is the response status for a redirect made with push.
	// Default: 302 Found.
	PushStatus int

	// ReplaceStatus is the response status for a redirect made with
	// replace. Default: 303 See Other.
	ReplaceStatus int

	// Page configures the document around every render.
	Page PageConfig

	// Static configures static file serving.
	Static StaticConfig

	// Live configures client-side navigation over a websocket.
	Live LiveConfig

	// MetricsPath serves Prometheus metrics from Handler. Empty disables it.
	MetricsPath string

	// Metrics records request and render metrics. When nil and MetricsPath
	// is set, the default registry is used.
	Metrics *middleware.Metrics

	// Gatherer backs the metrics endpoint. Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Tracing configures the OpenTelemetry middleware installed by Handler.
	Tracing []middleware.TracingOption

	// Pretty indents the rendered HTML.
	Pretty bool

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// PageConfig describes the HTML document.
type PageConfig struct {
	Title       string
	Lang        string
	Meta        []render.MetaTag
	StyleSheets []string
	Scripts     []render.ScriptTag
}

// LiveConfig configures live navigation.
type LiveConfig struct {
	Enabled bool

	// Path is the websocket endpoint. Default: "/_live".
	Path string

	// Hash keeps the location in the URL hash instead of the path.
	Hash     bool
	HashType history.HashType

	// GetUserConfirmation answers Prompt messages. Without it every
	// navigation is allowed.
	GetUserConfirmation history.ConfirmFunc

	// CheckOrigin validates the websocket Origin header.
	// Default: same origin only.
	CheckOrigin func(r *http.Request) bool
}

// StaticConfig configures the asset tree served next to the routes and
// copied by an export.
type StaticConfig struct {
	// Dir holds the assets. public/app.css is served at <basename><Prefix>app.css.
	Dir string

	// FS replaces Dir, for example with an embedded tree.
	FS fs.FS

	// Prefix is the site path assets live under. Default: "/".
	Prefix string

	// CacheControl selects the Cache-Control header of asset responses.
	CacheControl CacheControlStrategy

	// Headers are added to every asset response.
	Headers map[string]string
}

// CacheControlStrategy selects asset caching headers.
type CacheControlStrategy int

const (
	// CacheControlNone forbids caching.
	CacheControlNone CacheControlStrategy = iota

	// CacheControlProduction caches fingerprinted names (app.a1b2c3d4.js)
	// for a year and everything else for an hour.
	CacheControlProduction
)

// DefaultLivePath is the default live endpoint.
const DefaultLivePath = "/_live"

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		PushStatus:    http.StatusFound,
		ReplaceStatus: http.StatusSeeOther,
		Page:          PageConfig{Lang: "en"},
		Static:        DefaultStaticConfig(),
		Live:          LiveConfig{Path: DefaultLivePath},
		MetricsPath:   "/metrics",
	}
}

// DefaultStaticConfig returns default static file configuration.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		Prefix:       "/",
		CacheControl: CacheControlNone,
	}
}

func (c Config) withDefaults() Config {
	if c.PushStatus == 0 {
		c.PushStatus = http.StatusFound
	}
	if c.ReplaceStatus == 0 {
		c.ReplaceStatus = http.StatusSeeOther
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/"
	}
	if c.Live.Path == "" {
		c.Live.Path = DefaultLivePath
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
