package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vrouter"
	"github.com/vango-dev/vrouter/internal/config"
	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/export"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/middleware"
)

func exportCmd(g *globals) *cobra.Command {
	var (
		output string
		bucket string
		prefix string
		region string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every route to static files",
		Long: `Render every configured path and write the pages as <path>/index.html.

Redirecting paths are listed in a _redirects manifest instead. The
not-found page is written to 404.html. Pages go to the export directory
or, with --bucket, to S3 using the default AWS credential chain.

Examples:
  routerd export
  routerd export --output=public
  routerd export --bucket=my-site --prefix=docs --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Export.Output = output
			}
			if bucket != "" {
				cfg.Export.Bucket = bucket
			}
			if prefix != "" {
				cfg.Export.Prefix = prefix
			}
			if region != "" {
				cfg.Export.Region = region
			}
			return runExport(cmd.Context(), g, cfg, jobs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Export directory (default from config)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Export to this S3 bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&region, "region", "", "AWS region of the bucket")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Paths rendered in parallel")

	return cmd
}

func runExport(ctx context.Context, g *globals, cfg *config.Config, jobs int) error {
	logger := g.logger()

	var sink export.Sink
	dest := cfg.OutputPath()
	if cfg.Export.Bucket != "" {
		s3Sink, err := export.LoadS3Sink(ctx, cfg.Export.Bucket, cfg.Export.Prefix, cfg.Export.Region)
		if err != nil {
			return err
		}
		sink = s3Sink
		dest = "s3://" + cfg.Export.Bucket + "/" + s3Sink.Key("")
	} else {
		sink = export.NewDirSink(dest)
	}

	app := newApp(cfg, logger)
	basename := location.NormalizeBasename(cfg.Basename)
	assets, assetPrefix := app.Assets()
	report, err := export.Export(ctx, cfg.ExportPaths(), export.Options{
		Assets:      assets,
		AssetPrefix: assetPrefix,
		Sink:        sink,
		Render:      renderFunc(app, basename),
		NotFound:    notFoundPath,
		Basename:    basename,
		Concurrency: jobs,
		Metrics:     middleware.NewMetrics(),
		Logger:      logger,
	})
	if report != nil {
		for _, p := range report.Pages {
			info("%s → %s", p.Path, p.Key)
		}
		for _, r := range report.Redirects {
			info("%s", r)
		}
		if err == nil {
			success("Exported %d pages, %d redirects and %d assets to %s",
				len(report.Pages), len(report.Redirects), len(report.Assets), dest)
		}
	}
	if err == nil {
		return nil
	}
	errs := unjoin(err)
	for _, e := range errs {
		warn("%s", describe(e).FormatCompact())
	}
	return rerrors.Newf(rerrors.CategoryExport, "export finished with %d errors", len(errs)).Wrap(err)
}

// unjoin splits an errors.Join result.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// notFoundPath is rendered to 404.html. No route is expected to match it,
// so the site's catch-all renders.
const notFoundPath = "/404"

// renderFunc adapts App.Render to the exporter. Paths are site paths;
// the basename is added before rendering.
func renderFunc(app *vrouter.App, basename string) export.RenderFunc {
	return func(ctx context.Context, path string) (*export.Page, error) {
		res, err := app.Render(ctx, basename+path)
		if err != nil {
			return nil, err
		}
		page := &export.Page{HTML: res.HTML, Status: res.Status}
		if rd := res.Redirect; rd != nil {
			page.RedirectURL = rd.URL
			page.RedirectStatus = rd.Status
		}
		return page, nil
	}
}
