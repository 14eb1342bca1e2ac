package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"path"
	"strings"
	"sync"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/middleware"
	"github.com/vango-dev/vrouter/pkg/routepath"
)

const (
	// ManifestKey is the key of the redirect manifest.
	ManifestKey = "_redirects"

	// NotFoundKey is where the not-found page is written.
	NotFoundKey = "404.html"

	htmlType = "text/html; charset=utf-8"
	textType = "text/plain; charset=utf-8"
)

// Page is the outcome of rendering one path.
type Page struct {
	HTML []byte

	// Status is the response status the render asked for; 0 means 200.
	Status int

	// RedirectURL is set when the render redirected.
	RedirectURL    string
	RedirectStatus int
}

// RenderFunc renders the page at path.
type RenderFunc func(ctx context.Context, path string) (*Page, error)

// Redirect is one manifest line.
type Redirect struct {
	From   string
	To     string
	Status int
}

// String formats r as a manifest line.
func (r Redirect) String() string {
	return fmt.Sprintf("%s %s %d", r.From, r.To, r.Status)
}

// Options configures an export.
type Options struct {
	Sink   Sink
	Render RenderFunc

	// NotFound, when set, is rendered to NotFoundKey.
	NotFound string

	// Basename prefixes the source paths in the manifest.
	Basename string

	// Concurrency bounds parallel renders. Default: 4.
	Concurrency int

	// Assets, when set, is copied under the site path AssetPrefix before
	// any page is written. A page wins over an asset with the same key.
	Assets      fs.FS
	AssetPrefix string

	Metrics *middleware.Metrics
	Logger  *slog.Logger
}

// Report lists what an export wrote.
type Report struct {
	// Pages maps each exported path to its key, in input order.
	Pages     []PageEntry
	Redirects []Redirect
	Failed    []string

	// Assets lists the keys of copied assets in walk order.
	Assets []string
}

// PageEntry is one exported page.
type PageEntry struct {
	Path string
	Key  string
}

// Key returns the storage key for the page at path.
func Key(path string) (string, error) {
	clean, err := routepath.Clean(path)
	if err != nil {
		return "", err
	}
	if clean == "" {
		return "index.html", nil
	}
	return clean + "/index.html", nil
}

type result struct {
	page     *PageEntry
	redirect *Redirect
	err      error
}

// Export renders every path and writes the pages and the redirect manifest
// to the sink. Failed paths do not stop the export; their errors are
// joined into the returned error.
func Export(ctx context.Context, paths []string, opts Options) (*Report, error) {
	if opts.Sink == nil || opts.Render == nil {
		return nil, errors.New("export: Sink and Render are required")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	report := &Report{}
	var errs []error
	if opts.Assets != nil {
		report.Assets, errs = exportAssets(ctx, opts)
	}

	results := make([]result, len(paths))
	sem := make(chan struct{}, opts.Concurrency)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = exportPath(ctx, path, opts)
		}(i, path)
	}
	wg.Wait()

	for i, r := range results {
		switch {
		case r.err != nil:
			report.Failed = append(report.Failed, paths[i])
			errs = append(errs, r.err)
			opts.Metrics.RecordExport("error")
			logger.Warn("export failed", "path", paths[i], "error", r.err)
		case r.redirect != nil:
			report.Redirects = append(report.Redirects, *r.redirect)
			opts.Metrics.RecordExport("redirect")
			logger.Debug("export redirect", "from", r.redirect.From, "to", r.redirect.To)
		default:
			report.Pages = append(report.Pages, *r.page)
			opts.Metrics.RecordExport("page")
			logger.Debug("export page", "path", r.page.Path, "key", r.page.Key)
		}
	}

	if opts.NotFound != "" {
		if err := exportNotFound(ctx, opts); err != nil {
			errs = append(errs, err)
		}
	}

	if len(report.Redirects) > 0 {
		if err := opts.Sink.Put(ctx, ManifestKey, textType, []byte(Manifest(report.Redirects))); err != nil {
			errs = append(errs, rerrors.New("E150").WithPath(ManifestKey).Wrap(err))
		}
	}

	return report, errors.Join(errs...)
}

func exportPath(ctx context.Context, path string, opts Options) result {
	if err := ctx.Err(); err != nil {
		return result{err: err}
	}
	key, err := Key(path)
	if err != nil {
		return result{err: rerrors.New("E151").WithPath(path).Wrap(err)}
	}

	page, err := opts.Render(ctx, path)
	if err != nil {
		return result{err: rerrors.New("E151").WithPath(path).Wrap(err)}
	}
	if page.RedirectURL != "" {
		from := location.NormalizeBasename(opts.Basename) + path
		return result{redirect: &Redirect{From: from, To: page.RedirectURL, Status: page.RedirectStatus}}
	}

	if err := opts.Sink.Put(ctx, key, htmlType, page.HTML); err != nil {
		return result{err: rerrors.New("E150").WithPath(key).Wrap(err)}
	}
	return result{page: &PageEntry{Path: path, Key: key}}
}

func exportNotFound(ctx context.Context, opts Options) error {
	page, err := opts.Render(ctx, opts.NotFound)
	if err != nil {
		return rerrors.New("E151").WithPath(opts.NotFound).Wrap(err)
	}
	if page.RedirectURL != "" {
		return rerrors.New("E151").WithPath(opts.NotFound).
			WithDetail("The not-found path redirected to " + page.RedirectURL + ".")
	}
	if err := opts.Sink.Put(ctx, NotFoundKey, htmlType, page.HTML); err != nil {
		return rerrors.New("E150").WithPath(NotFoundKey).Wrap(err)
	}
	return nil
}

// exportAssets copies every file of opts.Assets to the sink. A file that
// cannot be copied is reported and the walk continues.
func exportAssets(ctx context.Context, opts Options) ([]string, []error) {
	prefix, err := routepath.Clean(opts.AssetPrefix)
	if err != nil {
		return nil, []error{rerrors.New("E151").WithPath(opts.AssetPrefix).Wrap(err)}
	}

	var keys []string
	var errs []error
	walkErr := fs.WalkDir(opts.Assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return ctx.Err()
		}
		key := name
		if prefix != "" {
			key = prefix + "/" + name
		}
		body, err := fs.ReadFile(opts.Assets, name)
		if err == nil {
			err = opts.Sink.Put(ctx, key, assetType(name), body)
		}
		if err != nil {
			errs = append(errs, rerrors.New("E150").WithPath(key).Wrap(err))
			opts.Metrics.RecordExport("error")
			return nil
		}
		keys = append(keys, key)
		opts.Metrics.RecordExport("asset")
		return nil
	})
	if walkErr != nil {
		errs = append(errs, rerrors.New("E150").WithPath(prefix).Wrap(walkErr))
	}
	return keys, errs
}

func assetType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Manifest formats redirects as a _redirects file.
func Manifest(redirects []Redirect) string {
	var b strings.Builder
	for _, r := range redirects {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}
