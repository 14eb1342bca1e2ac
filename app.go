package vrouter

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vrouter/pkg/history"
	"github.com/vango-dev/vrouter/pkg/live"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/middleware"
	"github.com/vango-dev/vrouter/pkg/render"
	"github.com/vango-dev/vrouter/pkg/routepath"
	"github.com/vango-dev/vrouter/pkg/router"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// RootFunc builds the route tree. It is called once per render.
type RootFunc func() *vdom.VNode

// App renders a route tree for HTTP requests.
//
// Create an App with vrouter.New():
//
//	app := vrouter.New(vrouter.Config{
//	    Basename: "/docs",
//	    Live:     vrouter.LiveConfig{Enabled: true},
//	}, routes)
//
//	http.ListenAndServe(":3000", app.Handler())
type App struct {
	root     RootFunc
	renderer *render.Renderer
	live     *live.Handler

	assets fs.FS

	config  Config
	metrics *middleware.Metrics
	logger  *slog.Logger
}

// New creates an application rendering root.
func New(cfg Config, root RootFunc) *App {
	cfg = cfg.withDefaults()

	metrics := cfg.Metrics
	if metrics == nil && cfg.MetricsPath != "" {
		metrics = middleware.NewMetrics()
	}

	app := &App{
		root:     root,
		renderer: render.NewRenderer(render.RendererConfig{Pretty: cfg.Pretty}),
		config:   cfg,
		metrics:  metrics,
		logger:   cfg.Logger,
	}

	switch {
	case cfg.Static.FS != nil:
		app.assets = cfg.Static.FS
	case cfg.Static.Dir != "":
		app.assets = os.DirFS(cfg.Static.Dir)
	}

	if cfg.Live.Enabled {
		app.live = live.NewHandler(live.Config{
			Root:                root,
			Basename:            cfg.Basename,
			Hash:                cfg.Live.Hash,
			HashType:            cfg.Live.HashType,
			GetUserConfirmation: cfg.Live.GetUserConfirmation,
			Renderer:            render.NewRenderer(render.RendererConfig{}),
			CheckOrigin:         cfg.Live.CheckOrigin,
			Metrics:             metrics,
			Logger:              cfg.Logger,
		})
	}

	return app
}

// Result is the outcome of one server render.
type Result struct {
	// HTML is the complete document. It is empty for redirects.
	HTML []byte

	// Status is the response status: 200 unless a Status component or a
	// redirect set it.
	Status int

	// Redirect is set when the render navigated.
	Redirect *Redirect

	// Context is the render's static context.
	Context *history.StaticContext
}

// Redirect is a navigation captured during a render.
type Redirect struct {
	Action history.Action
	URL    string
	Status int
}

// Render renders url, a path with optional query and hash, including the
// basename. Each call records into a fresh StaticContext.
func (a *App) Render(ctx context.Context, url string) (*Result, error) {
	if err := routepath.Check(url); err != nil {
		return nil, err
	}

	sctx := &history.StaticContext{}
	sr, err := router.NewStaticRouter(router.StaticRouterProps{
		Basename: a.config.Basename,
		Location: location.Path(url),
		Context:  sctx,
		Logger:   a.logger,
	}, a.root())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := a.renderer.RenderPage(&buf, a.pageData(sr.Node()), vdom.NewScope(ctx)); err != nil {
		return nil, err
	}

	res := &Result{Status: http.StatusOK, Context: sctx}
	if sctx.URL != "" {
		status := a.config.ReplaceStatus
		if sctx.Action == history.ActionPush {
			status = a.config.PushStatus
		}
		res.Redirect = &Redirect{Action: sctx.Action, URL: sctx.URL, Status: status}
		res.Status = status
		if sctx.Overwrites > 0 {
			a.logger.Debug("render redirected more than once; the last redirect wins",
				"url", url, "redirect", sctx.URL, "overwrites", sctx.Overwrites)
		}
		return res, nil
	}

	if sctx.StatusCode != 0 {
		res.Status = sctx.StatusCode
	}
	res.HTML = buf.Bytes()
	return res, nil
}

func (a *App) pageData(body *vdom.VNode) render.PageData {
	page := render.PageData{
		Body:        body,
		Title:       a.config.Page.Title,
		Lang:        a.config.Page.Lang,
		Meta:        a.config.Page.Meta,
		StyleSheets: a.config.Page.StyleSheets,
		Scripts:     a.config.Page.Scripts,
	}
	if a.live != nil {
		page.Scripts = append(page.Scripts[:len(page.Scripts):len(page.Scripts)], live.ScriptTag(live.ClientOptions{
			Path: a.config.Live.Path,
			Hash: a.config.Live.Hash,
		}))
	}
	return page
}

// ServeHTTP implements http.Handler. It serves static files when
// configured and renders everything else.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if a.serveAsset(w, r) {
		return
	}

	target := r.URL.RequestURI()
	res, err := a.Render(r.Context(), target)
	middleware.AnnotateRender(r.Context(), target, err)
	if err != nil {
		a.metrics.RecordRenderError(err)
		if ErrorStatus(err) == http.StatusBadRequest {
			a.logger.Debug("rejected request path", "path", target, "error", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		a.logger.Error("render failed", "path", target, "error", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}

	if rd := res.Redirect; rd != nil {
		a.metrics.RecordRedirect(rd.Action.String())
		middleware.AnnotateRedirect(r.Context(), rd.Action.String(), rd.URL, rd.Status)
		// SECURITY: only follow local redirects.
		if !routepath.IsLocal(rd.URL) {
			a.logger.Error("refusing non-local redirect", "path", target, "redirect", rd.URL)
			http.Error(w, "Render error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, rd.URL, rd.Status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(res.Status)
	if r.Method != http.MethodHead {
		w.Write(res.HTML)
	}
}

// ErrorStatus maps a Render error to a response status: 400 for targets
// that cannot be routed, 500 for anything else.
func ErrorStatus(err error) int {
	var decodeErr *location.DecodeError
	if errors.As(err, &decodeErr) ||
		errors.Is(err, routepath.ErrBackslash) ||
		errors.Is(err, routepath.ErrNullByte) ||
		errors.Is(err, routepath.ErrEscapesRoot) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Handler returns the app mounted on a chi router with request ids, panic
// recovery, metrics, tracing, the live endpoint and the metrics endpoint.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if a.metrics != nil {
		r.Use(a.metrics.Handler)
	}
	r.Use(middleware.Tracing(a.config.Tracing...))

	if a.config.MetricsPath != "" {
		r.Method(http.MethodGet, a.config.MetricsPath, promhttp.HandlerFor(a.config.Gatherer, promhttp.HandlerOpts{}))
	}
	if a.live != nil {
		r.Method(http.MethodGet, a.config.Live.Path, a.live)
	}
	r.Handle("/*", a)
	return r
}

// Config returns the app's configuration with defaults applied.
func (a *App) Config() Config { return a.config }
