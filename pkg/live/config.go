package live

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/vrouter/pkg/history"
	"github.com/vango-dev/vrouter/pkg/middleware"
	"github.com/vango-dev/vrouter/pkg/render"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// Config configures live sessions.
type Config struct {
	// Root builds the tree rendered inside the session's router.
	Root func() *vdom.VNode

	// Basename is the URL prefix the site is served under.
	Basename string

	// Hash selects a hash history instead of a browser history.
	Hash     bool
	HashType history.HashType

	// KeyLength is the length of generated entry keys.
	KeyLength int

	// GetUserConfirmation resolves Prompt messages on the server.
	GetUserConfirmation history.ConfirmFunc

	// Renderer renders the root. Default: a compact renderer.
	Renderer *render.Renderer

	// CheckOrigin validates the websocket Origin header.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	ReadBufferSize  int
	WriteBufferSize int

	// ReadTimeout bounds the silence allowed from the client, pongs included.
	ReadTimeout time.Duration

	// WriteTimeout bounds each write.
	WriteTimeout time.Duration

	// PingInterval is the heartbeat period; it must be below ReadTimeout.
	PingInterval time.Duration

	// MaxMessageSize is the largest client frame accepted.
	MaxMessageSize int64

	// MaxRenders bounds the renders one frame may cause, which stops
	// redirect loops.
	MaxRenders int

	Metrics *middleware.Metrics
	Logger  *slog.Logger
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		CheckOrigin:     SameOriginCheck,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  64 * 1024,
		MaxRenders:      10,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Renderer == nil {
		c.Renderer = render.NewRenderer(render.RendererConfig{})
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.MaxRenders <= 0 {
		c.MaxRenders = d.MaxRenders
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host equals the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., same-origin request or curl)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
