package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port int
		host string
		live bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Long: `Serve the site over HTTP.

Every request is rendered on the server. Redirects become HTTP
redirects (302 for push, 303 for replace unless configured) and
not-found routes answer 404.

Examples:
  routerd serve
  routerd serve --port=8080 --live
  routerd serve -c site/routerd.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if live {
				cfg.Server.Live = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), g, cfg.Address(), newApp(cfg, g.logger()).Handler())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&live, "live", false, "Enable live navigation")

	return cmd
}

func runServe(ctx context.Context, g *globals, addr string, handler http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	success("Serving on http://%s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	fmt.Println("\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		g.logger().Warn("shutdown incomplete", "error", err)
	}
	return nil
}
